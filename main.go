// =============================================================================
// Ledger Export - Main Entry Point
// =============================================================================
//
// This is the main entry point for the Ledger Export CLI application.
// It initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   ledgerexport export     - Build, validate and write an export artifact
//   ledgerexport validate   - Validate a batch or an existing artifact
//   ledgerexport stats      - Preview statistics for a period
//   ledgerexport version    - Display the application version
//
// ARCHITECTURE:
//   This application follows a modular design where:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Core engine (not for external import)
//       ledger/      : Canonical types (entries, batches, periods)
//       source/      : Record source interface + CSV store
//       normalize/   : Raw record -> ledger entry conversion
//       export/      : Aggregation and pipeline orchestration
//       validation/  : Batch validation with reason codes
//       stats/       : Decimal-exact aggregate figures
//       xlsxwriter/  : Artifact serialization and re-reading
//   - pkg/           : Shared utilities (file management)
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/ledger-export/cmd"
)

// main is the entry point of the application.
func main() {
	cmd.Execute()
}
