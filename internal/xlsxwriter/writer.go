// =============================================================================
// Ledger Export - XLSX Writer Module
// =============================================================================
//
// This module renders a validated export batch into the spreadsheet artifact
// consumed by the downstream accounting system. The artifact contains exactly
// one header row plus the data rows, five columns in fixed order:
//
//   | Date       | Concept       | Detail                       | Debit    | Credit   |
//   | 2025-01-15 | FUEL          | [CAT 320] Diesel full tank   | 15000.50 |     0.00 |
//   | 2025-01-16 | INCOME RENTAL | CAT 320 - ABC                |     0.00 | 25000.00 |
//
// TYPE FIDELITY:
//   - Date cells hold native date values (not formatted strings), displayed
//     in ISO ordering (yyyy-mm-dd) so the consuming system parses them
//     without locale ambiguity.
//   - Debit/Credit cells hold native numbers rounded to two fractional
//     digits. Thousands separators and currency symbols exist only in the
//     display format, never in the stored value.
//
// STYLING:
//   Header fill #366092 with bold white text, fixed column widths, centered
//   date column, right-aligned amount columns. All of it is cosmetic; none of
//   it changes cell value types.
//
// WRITE SAFETY:
//   The workbook is saved to a temporary name in the destination directory
//   and renamed into place on success, so a failed write never leaves a
//   partial artifact behind.
//
// =============================================================================

package xlsxwriter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/ledger-export/internal/ledger"
)

// =============================================================================
// COLUMN SCHEMA
// =============================================================================

// SheetName is the worksheet holding the ledger rows.
const SheetName = "Sheet1"

// ColumnHeaders is the fixed five-column schema, in artifact order.
var ColumnHeaders = []string{"Date", "Concept", "Detail", "Debit", "Credit"}

// Column widths, matching the accounting system's import template.
var columnWidths = map[string]float64{
	"A": 12, // Date
	"B": 25, // Concept
	"C": 50, // Detail
	"D": 15, // Debit
	"E": 15, // Credit
}

// =============================================================================
// RESULT AND ERRORS
// =============================================================================

// Result describes a completed write.
type Result struct {
	// Path is the final artifact location.
	Path string

	// RowsWritten is the number of data rows (header excluded).
	RowsWritten int
}

// UnbalancedBatchError is returned when a batch contains entries with both
// sides set or neither side set. Writing such rows would silently corrupt the
// downstream accounting import, so the writer refuses even though full
// validation is the caller's responsibility.
type UnbalancedBatchError struct {
	// Positions are the zero-based indexes of the offending entries.
	Positions []int
}

// Error implements the error interface.
func (e *UnbalancedBatchError) Error() string {
	return fmt.Sprintf("validation failed: %d entries have both or neither of debit/credit set (positions %v)",
		len(e.Positions), e.Positions)
}

// =============================================================================
// WRITE FUNCTION
// =============================================================================

// Write renders the batch to an .xlsx artifact at destination.
//
// Precondition: the caller has already validated the batch. The writer does
// not re-validate, except for the side invariant (see UnbalancedBatchError).
// Rows are written in batch order; the writer performs no sorting.
func Write(batch *ledger.ExportBatch, destination string) (*Result, error) {
	if positions := unbalancedPositions(batch); len(positions) > 0 {
		return nil, &UnbalancedBatchError{Positions: positions}
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := writeHeader(f); err != nil {
		return nil, err
	}

	if err := writeRows(f, batch); err != nil {
		return nil, err
	}

	if err := applyStyles(f, batch.Len()); err != nil {
		return nil, err
	}

	if err := saveAtomic(f, destination); err != nil {
		return nil, err
	}

	return &Result{
		Path:        destination,
		RowsWritten: batch.Len(),
	}, nil
}

// unbalancedPositions returns the indexes of entries violating the
// one-side-set invariant.
func unbalancedPositions(batch *ledger.ExportBatch) []int {
	var positions []int
	for i, entry := range batch.Entries {
		debitSet := !entry.Debit.IsZero()
		creditSet := !entry.Credit.IsZero()
		if debitSet == creditSet {
			positions = append(positions, i)
		}
	}
	return positions
}

// =============================================================================
// SHEET CONSTRUCTION
// =============================================================================

// writeHeader writes the fixed header row.
func writeHeader(f *excelize.File) error {
	header := make([]interface{}, len(ColumnHeaders))
	for i, h := range ColumnHeaders {
		header[i] = h
	}

	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	return nil
}

// writeRows writes one data row per ledger entry, in batch order.
func writeRows(f *excelize.File, batch *ledger.ExportBatch) error {
	for i, entry := range batch.Entries {
		// Data starts on row 2, under the header.
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", i+2, err)
		}

		// Native types throughout: time.Time for the date, float64 for the
		// amounts. Rounding to two fractional digits happens here, once, on
		// the decimal value.
		row := []interface{}{
			entry.Date,
			entry.Concept,
			entry.Detail,
			entry.Debit.Round(2).InexactFloat64(),
			entry.Credit.Round(2).InexactFloat64(),
		}

		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	return nil
}

// applyStyles applies the cosmetic formatting: header fill, column widths,
// alignments and display formats.
func applyStyles(f *excelize.File, rowCount int) error {
	for column, width := range columnWidths {
		if err := f.SetColWidth(SheetName, column, column, width); err != nil {
			return fmt.Errorf("failed to set width of column %s: %w", column, err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"366092"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	if err := f.SetCellStyle(SheetName, "A1", "E1", headerStyle); err != nil {
		return fmt.Errorf("failed to style header row: %w", err)
	}

	if rowCount == 0 {
		return nil
	}
	lastRow := rowCount + 1

	// Date column: centered, ISO display format on a native date value.
	dateFormat := "yyyy-mm-dd"
	dateStyle, err := f.NewStyle(&excelize.Style{
		CustomNumFmt: &dateFormat,
		Alignment:    &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create date style: %w", err)
	}
	if err := f.SetCellStyle(SheetName, "A2", fmt.Sprintf("A%d", lastRow), dateStyle); err != nil {
		return fmt.Errorf("failed to style date column: %w", err)
	}

	// Text columns: left-aligned.
	textStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "left"},
	})
	if err != nil {
		return fmt.Errorf("failed to create text style: %w", err)
	}
	if err := f.SetCellStyle(SheetName, "B2", fmt.Sprintf("C%d", lastRow), textStyle); err != nil {
		return fmt.Errorf("failed to style text columns: %w", err)
	}

	// Amount columns: right-aligned, grouped two-decimal display format.
	// Display only; the stored value carries no separators.
	amountFormat := "#,##0.00"
	amountStyle, err := f.NewStyle(&excelize.Style{
		CustomNumFmt: &amountFormat,
		Alignment:    &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return fmt.Errorf("failed to create amount style: %w", err)
	}
	if err := f.SetCellStyle(SheetName, "D2", fmt.Sprintf("E%d", lastRow), amountStyle); err != nil {
		return fmt.Errorf("failed to style amount columns: %w", err)
	}

	return nil
}

// =============================================================================
// ATOMIC SAVE
// =============================================================================

// saveAtomic saves the workbook to a temporary name next to the destination
// and renames it into place. On failure the temporary file is removed, so the
// destination is never left in a partially-written state.
func saveAtomic(f *excelize.File, destination string) error {
	dir := filepath.Dir(destination)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	// SaveAs rejects unknown workbook extensions, so the temporary name must
	// keep the .xlsx suffix.
	tmpName := fmt.Sprintf(".%s.%s.tmp.xlsx",
		strings.TrimSuffix(filepath.Base(destination), filepath.Ext(destination)),
		uuid.NewString()[:8])
	tmpPath := filepath.Join(dir, tmpName)

	if err := f.SaveAs(tmpPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	if err := os.Rename(tmpPath, destination); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to finalize %s: %w", destination, err)
	}

	return nil
}
