// =============================================================================
// Ledger Export - Stats Command
// =============================================================================
//
// This file defines the 'stats' command: a preview of the aggregate figures
// for a period without validating, exporting or writing anything.
//
// COMMAND USAGE:
//   ledgerexport stats --year 2025 [--month 3]
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/ledger-export/internal/export"
	"github.com/ginjaninja78/ledger-export/internal/source"
	"github.com/ginjaninja78/ledger-export/internal/stats"
)

// statsYear/statsMonth scope the preview.
var statsYear int
var statsMonth int

// statsCmd represents the 'stats' command.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Preview the aggregate figures for a period",
	Long: `The stats command builds the batch for a period and prints entry count,
date span, debit/credit totals and balance, without writing a file. Totals
are computed with decimal arithmetic, so what is shown is exactly what an
export would contain.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runStats()
	},
}

// init registers the stats command and its flags.
func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().IntVar(&statsYear, "year", 0, "Calendar year to summarize (required)")
	statsCmd.Flags().IntVar(&statsMonth, "month", 0, "Month within the year (1-12)")

	statsCmd.MarkFlagRequired("year")
}

// runStats builds the period's batch and prints its statistics.
func runStats() error {
	period, err := periodFromFlags(statsYear, statsMonth)
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

	figures := stats.Summarize(batch)

	fmt.Println("=== Period Statistics ===")
	fmt.Printf("Period:        %s\n", period.String())
	fmt.Printf("Entries:       %d\n", figures.Count)
	fmt.Printf("Date range:    %s\n", figures.DateRange())
	fmt.Printf("Debit total:   %s %s\n", cfg.CurrencySymbol, figures.DebitTotal.StringFixed(2))
	fmt.Printf("Credit total:  %s %s\n", cfg.CurrencySymbol, figures.CreditTotal.StringFixed(2))
	fmt.Printf("Balance:       %s %s\n", cfg.CurrencySymbol, figures.Balance.StringFixed(2))

	return nil
}
