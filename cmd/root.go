// =============================================================================
// Ledger Export - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands are attached to:
//
//   ledgerexport
//   ├── export    (build, validate and write an export artifact)
//   ├── validate  (validate a batch or an existing artifact)
//   ├── stats     (preview statistics for a period)
//   └── version
//
// The root command owns the global flags (--config, --verbose) and the
// structured logger setup shared by every subcommand.
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/ledger-export/internal/config"
)

// =============================================================================
// GLOBAL FLAGS
// =============================================================================

// cfgFile holds the path to the main configuration file.
// Overridden with the --config flag.
var cfgFile string

// verbose enables debug logging regardless of the configured level.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "ledgerexport",
	Short: "Ledger Export - Export equipment-rental transactions for accounting import",

	Long: `Ledger Export pulls expense and income records for a period, normalizes
them into a single canonical ledger, enforces the structural rules required by
the downstream accounting system and writes the result as a spreadsheet
artifact.

Key Features:
  - Expense and income records merged into one date-ordered ledger
  - Validation with per-entry reason codes before anything is written
  - Decimal-exact debit/credit totals and balance preview
  - Fixed five-column artifact schema with native date and number cells
  - Atomic artifact writes with automatic archival

Example Usage:
  ledgerexport export --year 2025 --month 3   # Export March 2025
  ledgerexport export --year 2025 --dry-run   # Validate and preview only
  ledgerexport validate --file export.xlsx    # Check an existing artifact
  ledgerexport stats --year 2025              # Totals without writing a file`,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and runs it.
// Called once from main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init sets up the global flags.
func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// =============================================================================
// SHARED SETUP
// =============================================================================

// loadConfig loads the configuration file named by --config. When the file
// does not exist the defaults are used, so the tool works out of the box in
// an empty directory.
func loadConfig() (*config.Config, error) {
	if _, err := os.Stat(cfgFile); os.IsNotExist(err) {
		return config.Default(), nil
	}
	return config.Load(cfgFile)
}

// setupLogger configures the default structured logger from the configured
// level. --verbose forces debug.
func setupLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if verbose {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

// cmdContext returns the context commands run under: cancelled on interrupt
// so a record source fetch can be abandoned cleanly.
func cmdContext() context.Context {
	ctx, _ := signal.NotifyContext(context.Background(), os.Interrupt)
	return ctx
}

// loadLookups loads the reference name tables. A missing lookups file is not
// fatal: resolution degrades to the literal reference ids.
func loadLookups(cfg *config.Config, log *slog.Logger) *config.Lookups {
	lookups, err := config.LoadLookups(cfg.LookupsFile)
	if err != nil {
		log.Warn("lookups unavailable, falling back to literal references",
			slog.String("file", cfg.LookupsFile),
			slog.String("error", err.Error()))
		return config.EmptyLookups()
	}
	return lookups
}
