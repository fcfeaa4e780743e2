// =============================================================================
// Ledger Export - Export Command
// =============================================================================
//
// This file defines the 'export' command, the main command for producing an
// export artifact. It runs the full pipeline:
//
//   1. Load configuration and lookup tables
//   2. Build the batch for the requested period
//   3. Validate; refuse on any error, printing every issue
//   4. Print the statistics summary
//   5. Write the artifact and archive a copy (skipped with --dry-run)
//
// COMMAND USAGE:
//   ledgerexport export --year 2025 [--month 3] [flags]
//
// FLAGS:
//   --year           Calendar year to export (required)
//   --month          Month within the year (1-12); omit for the whole year
//   --expenses-only  Export only expense records
//   --income-only    Export only income records
//                    (the two restriction flags are mutually exclusive)
//   --dry-run        Validate and preview without writing an artifact
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/ledger-export/internal/export"
	"github.com/ginjaninja78/ledger-export/internal/ledger"
	"github.com/ginjaninja78/ledger-export/internal/source"
	"github.com/ginjaninja78/ledger-export/internal/validation"
	"github.com/ginjaninja78/ledger-export/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// exportYear is the calendar year to export.
var exportYear int

// exportMonth is the month within the year, 0 meaning the whole year.
var exportMonth int

// expensesOnly restricts the export to expense records.
var expensesOnly bool

// incomeOnly restricts the export to income records.
var incomeOnly bool

// dryRun validates and previews without writing an artifact.
var dryRun bool

// =============================================================================
// EXPORT COMMAND DEFINITION
// =============================================================================

// exportCmd represents the 'export' command.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export transactions for a period to a spreadsheet artifact",
	Long: `The export command fetches the expense and income records for the requested
period, normalizes them into a date-ordered ledger, validates the batch and
writes it as an .xlsx artifact into the output directory.

The batch is validated before anything touches disk. If validation finds
errors the export is refused and every issue is printed, not just the first.
Warnings are printed but do not block the export.

On success the artifact is also copied into the archive directory. Use
--dry-run to see the validation outcome and statistics without writing.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport()
	},
}

// init registers the export command and its flags.
func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().IntVar(&exportYear, "year", 0, "Calendar year to export (required)")
	exportCmd.Flags().IntVar(&exportMonth, "month", 0, "Month within the year (1-12); omit for the whole year")
	exportCmd.Flags().BoolVar(&expensesOnly, "expenses-only", false, "Export only expense records")
	exportCmd.Flags().BoolVar(&incomeOnly, "income-only", false, "Export only income records")
	exportCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate and preview without writing an artifact")

	exportCmd.MarkFlagRequired("year")
	exportCmd.MarkFlagsMutuallyExclusive("expenses-only", "income-only")
}

// =============================================================================
// MAIN EXPORT FUNCTION
// =============================================================================

// runExport wires the configured collaborators together and runs the
// pipeline once.
func runExport() error {
	period, err := periodFromFlags(exportYear, exportMonth)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := setupLogger(cfg)

	files := utils.NewFileManager(cfg.OutputDir, cfg.ArchiveDir)
	if err := files.EnsureDirectories(); err != nil {
		return err
	}

	exporter := export.NewExporter(
		source.NewCSVStore(cfg.DataDir),
		loadLookups(cfg, log),
		files,
		log,
	)

	result, err := exporter.Run(cmdContext(), export.Request{
		Period:          period,
		IncludeExpenses: !incomeOnly,
		IncludeIncome:   !expensesOnly,
		DryRun:          dryRun,
	})
	if err != nil {
		var validationErr *export.ValidationError
		if errors.As(err, &validationErr) {
			fmt.Print(validation.FormatReport(validationErr.Report))
		}
		return err
	}

	// =========================================================================
	// SUMMARY
	// =========================================================================

	fmt.Println("=== Export Summary ===")
	fmt.Printf("Period:        %s\n", period.String())
	fmt.Printf("Entries:       %d\n", result.Stats.Count)
	fmt.Printf("Date range:    %s\n", result.Stats.DateRange())
	fmt.Printf("Debit total:   %s %s\n", cfg.CurrencySymbol, result.Stats.DebitTotal.StringFixed(2))
	fmt.Printf("Credit total:  %s %s\n", cfg.CurrencySymbol, result.Stats.CreditTotal.StringFixed(2))
	fmt.Printf("Balance:       %s %s\n", cfg.CurrencySymbol, result.Stats.Balance.StringFixed(2))
	fmt.Printf("Warnings:      %d\n", result.Report.WarningCount)
	fmt.Printf("Time elapsed:  %s\n", result.Elapsed)

	if dryRun {
		fmt.Println("\nDry run: no artifact written.")
		return nil
	}

	fmt.Printf("\nArtifact: %s\n", result.OutputFile)
	if result.ArchiveFile != "" {
		fmt.Printf("Archived: %s\n", result.ArchiveFile)
	}

	return nil
}

// =============================================================================
// HELPERS
// =============================================================================

// periodFromFlags builds and checks the period filter.
func periodFromFlags(year, month int) (ledger.Period, error) {
	if year < 1900 || year > 9999 {
		return ledger.Period{}, fmt.Errorf("invalid year %d", year)
	}
	if month < 0 || month > 12 {
		return ledger.Period{}, fmt.Errorf("invalid month %d (expected 1-12)", month)
	}
	return ledger.Period{Year: year, Month: time.Month(month)}, nil
}
