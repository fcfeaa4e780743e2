// =============================================================================
// Ledger Export - Artifact Reader and File Validation
// =============================================================================
//
// This module re-reads produced .xlsx artifacts. It serves two workflows:
//   1. Round-trip verification: ReadArtifact reconstructs the
//      (date, concept, detail, debit, credit) tuples from a written file.
//   2. Standalone file validation: ValidateFile checks an artifact that may
//      not have been produced by this program at all (required columns,
//      parseable dates, amount signs) and computes its statistics.
//
// File-level checks are softer than batch validation: an already-written row
// with both sides set is reported as a warning, since the file exists and the
// caller is diagnosing it rather than deciding whether to write it.
//
// =============================================================================

package xlsxwriter

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/ledger-export/internal/ledger"
	"github.com/ginjaninja78/ledger-export/internal/stats"
)

// =============================================================================
// ARTIFACT READING
// =============================================================================

// ReadArtifact reads the data rows of a produced artifact back into ledger
// entries, in sheet order.
func ReadArtifact(path string) ([]ledger.LedgerEntry, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open artifact: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("artifact has no header row")
	}

	if err := checkHeader(rows[0]); err != nil {
		return nil, err
	}

	entries := make([]ledger.LedgerEntry, 0, len(rows)-1)
	for i, row := range rows[1:] {
		entry, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// checkHeader verifies the fixed five-column schema.
func checkHeader(header []string) error {
	if len(header) != len(ColumnHeaders) {
		return fmt.Errorf("expected %d columns, found %d", len(ColumnHeaders), len(header))
	}
	for i, want := range ColumnHeaders {
		if header[i] != want {
			return fmt.Errorf("column %d: expected header %q, found %q", i+1, want, header[i])
		}
	}
	return nil
}

// parseRow converts one formatted sheet row back into a ledger entry.
func parseRow(row []string) (ledger.LedgerEntry, error) {
	// Trailing empty cells are omitted by the sheet reader; pad them back.
	for len(row) < len(ColumnHeaders) {
		row = append(row, "")
	}

	date, err := time.ParseInLocation("2006-01-02", row[0], time.UTC)
	if err != nil {
		return ledger.LedgerEntry{}, fmt.Errorf("invalid date %q: %w", row[0], err)
	}

	debit, err := parseAmountCell(row[3])
	if err != nil {
		return ledger.LedgerEntry{}, fmt.Errorf("invalid debit %q: %w", row[3], err)
	}

	credit, err := parseAmountCell(row[4])
	if err != nil {
		return ledger.LedgerEntry{}, fmt.Errorf("invalid credit %q: %w", row[4], err)
	}

	return ledger.LedgerEntry{
		Date:    date,
		Concept: row[1],
		Detail:  row[2],
		Debit:   debit,
		Credit:  credit,
	}, nil
}

// parseAmountCell parses a formatted amount cell. The display format inserts
// thousands separators, so they are stripped before parsing; an empty cell
// reads as zero.
func parseAmountCell(value string) (decimal.Decimal, error) {
	value = strings.ReplaceAll(strings.TrimSpace(value), ",", "")
	if value == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(value)
}

// =============================================================================
// FILE VALIDATION
// =============================================================================

// FileReport is the outcome of validating an artifact on disk.
type FileReport struct {
	// Valid is true when no errors were found. Warnings do not affect it.
	Valid bool

	// Errors lists the blocking problems, each with its row number.
	Errors []string

	// Warnings lists advisory findings.
	Warnings []string

	// Stats are the aggregate figures over the file's rows. Only meaningful
	// when the rows could be read at all.
	Stats stats.Statistics
}

// ValidateFile checks that an .xlsx file conforms to the export schema and
// computes its statistics.
func ValidateFile(path string) (*FileReport, error) {
	report := &FileReport{Valid: true}

	entries, err := ReadArtifact(path)
	if err != nil {
		report.Valid = false
		report.Errors = append(report.Errors, err.Error())
		return report, nil
	}

	if len(entries) == 0 {
		report.Valid = false
		report.Errors = append(report.Errors, "file contains no transactions")
		return report, nil
	}

	for i, entry := range entries {
		rowNum := i + 2 // sheet row, header is row 1

		if entry.Debit.Sign() < 0 {
			report.Valid = false
			report.Errors = append(report.Errors,
				fmt.Sprintf("row %d: negative debit (%s)", rowNum, entry.Debit.String()))
		}
		if entry.Credit.Sign() < 0 {
			report.Valid = false
			report.Errors = append(report.Errors,
				fmt.Sprintf("row %d: negative credit (%s)", rowNum, entry.Credit.String()))
		}

		debitSet := !entry.Debit.IsZero()
		creditSet := !entry.Credit.IsZero()
		if debitSet && creditSet {
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("row %d: both debit and credit carry values (expected only one)", rowNum))
		}
		if !debitSet && !creditSet {
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("row %d: both debit and credit are zero", rowNum))
		}
	}

	batch := &ledger.ExportBatch{Entries: entries}
	report.Stats = stats.Summarize(batch)

	return report, nil
}
