// =============================================================================
// Ledger Export - Validate Command
// =============================================================================
//
// This file defines the 'validate' command, supporting the validate-before-
// commit workflow in two modes:
//
//   ledgerexport validate --year 2025 [--month 3]
//     Build the batch for the period and print its validation report without
//     writing anything.
//
//   ledgerexport validate --file output/EXPORT_2025_03_20250830_153000.xlsx
//     Check an existing artifact on disk: column schema, parseable dates,
//     amount signs, plus its statistics.
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/ledger-export/internal/export"
	"github.com/ginjaninja78/ledger-export/internal/source"
	"github.com/ginjaninja78/ledger-export/internal/validation"
	"github.com/ginjaninja78/ledger-export/internal/xlsxwriter"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// validateYear/validateMonth scope batch validation.
var validateYear int
var validateMonth int

// validateFile points at an existing artifact to check instead.
var validateFile string

// =============================================================================
// VALIDATE COMMAND DEFINITION
// =============================================================================

// validateCmd represents the 'validate' command.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a period's batch or an existing artifact",
	Long: `The validate command runs validation without exporting.

With --year (and optionally --month) it builds the batch exactly as the
export command would and prints the full validation report, so problems can
be fixed before committing to an export.

With --file it instead checks an .xlsx artifact on disk against the expected
schema and prints any findings along with the file's statistics.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		if validateFile != "" {
			return runValidateFile()
		}
		return runValidateBatch()
	},
}

// init registers the validate command and its flags.
func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().IntVar(&validateYear, "year", 0, "Calendar year to validate")
	validateCmd.Flags().IntVar(&validateMonth, "month", 0, "Month within the year (1-12)")
	validateCmd.Flags().StringVar(&validateFile, "file", "", "Path to an existing .xlsx artifact to check")
}

// =============================================================================
// BATCH VALIDATION
// =============================================================================

// runValidateBatch builds the period's batch and prints its report.
func runValidateBatch() error {
	if validateYear == 0 {
		return fmt.Errorf("either --year or --file is required")
	}

	period, err := periodFromFlags(validateYear, validateMonth)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := setupLogger(cfg)

	aggregator := export.NewAggregator(
		source.NewCSVStore(cfg.DataDir),
		loadLookups(cfg, log),
	)

	batch, err := aggregator.BuildBatch(cmdContext(), period, true, true)
	if err != nil {
		return err
	}

	report := validation.Validate(batch)
	fmt.Print(validation.FormatReport(report))

	if report.Exportable() {
		fmt.Printf("\nBatch of %d entries is exportable.\n", batch.Len())
		return nil
	}

	return fmt.Errorf("batch is not exportable (%d errors)", report.ErrorCount)
}

// =============================================================================
// FILE VALIDATION
// =============================================================================

// runValidateFile checks an artifact on disk.
func runValidateFile() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	setupLogger(cfg)

	report, err := xlsxwriter.ValidateFile(validateFile)
	if err != nil {
		return err
	}

	fmt.Printf("=== Artifact Validation: %s ===\n", validateFile)

	for i, msg := range report.Errors {
		fmt.Printf("Error %d: %s\n", i+1, msg)
	}
	for i, msg := range report.Warnings {
		fmt.Printf("Warning %d: %s\n", i+1, msg)
	}
	if len(report.Errors) == 0 && len(report.Warnings) == 0 {
		fmt.Println("No issues found.")
	}

	if report.Stats.Count > 0 {
		fmt.Printf("\nTransactions:  %d\n", report.Stats.Count)
		fmt.Printf("Date range:    %s\n", report.Stats.DateRange())
		fmt.Printf("Debit total:   %s\n", report.Stats.DebitTotal.StringFixed(2))
		fmt.Printf("Credit total:  %s\n", report.Stats.CreditTotal.StringFixed(2))
		fmt.Printf("Balance:       %s\n", report.Stats.Balance.StringFixed(2))
	}

	if !report.Valid {
		return fmt.Errorf("artifact failed validation (%d errors)", len(report.Errors))
	}

	return nil
}
