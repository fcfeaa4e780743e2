// =============================================================================
// Ledger Export - CSV Record Store
// =============================================================================
//
// CSVStore is the file-backed RecordSource implementation. It reads expense
// and income records from CSV extracts dropped into the configured data
// directory and filters them by period.
//
// EXPECTED FILES:
//   <data_dir>/expenses.csv
//     id,date,category_id,equipment_id,description,comment,amount
//   <data_dir>/income.csv
//     id,date,equipment_id,client_id,project_id,amount
//
// Dates use ISO ordering (2006-01-02). Amounts are plain decimals with no
// thousands separators or currency symbols.
//
// PARSING STRATEGY:
//   - Headers are matched by name, not position, so column reordering in the
//     extracts does not break the store.
//   - A malformed row is an error with its row number, never a silent skip:
//     the engine's contract is to fail loudly and specifically.
//
// =============================================================================

package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/ledger-export/internal/ledger"
)

// File names the store looks for inside its data directory.
const (
	ExpensesFileName = "expenses.csv"
	IncomeFileName   = "income.csv"
)

// dateLayout is the calendar date format used by the CSV extracts.
const dateLayout = "2006-01-02"

// =============================================================================
// CSV STORE
// =============================================================================

// CSVStore reads raw records from CSV extracts in a data directory.
// It implements the RecordSource interface.
type CSVStore struct {
	// DataDir is the directory containing expenses.csv and income.csv.
	DataDir string
}

// NewCSVStore creates a store rooted at the given data directory.
func NewCSVStore(dataDir string) *CSVStore {
	return &CSVStore{DataDir: dataDir}
}

// FetchExpenses returns the expense records whose date falls inside the
// period, in file order.
func (s *CSVStore) FetchExpenses(ctx context.Context, period ledger.Period) ([]RawExpenseRecord, error) {
	path := filepath.Join(s.DataDir, ExpensesFileName)

	rows, err := readRecordFile(ctx, path)
	if err != nil {
		return nil, err
	}

	var records []RawExpenseRecord
	for _, row := range rows {
		date, err := parseRecordDate(row)
		if err != nil {
			return nil, err
		}
		if !period.Contains(date) {
			continue
		}

		amount, err := parseRecordAmount(row)
		if err != nil {
			return nil, err
		}

		records = append(records, RawExpenseRecord{
			ID:           row.get("id"),
			Date:         date,
			CategoryRef:  row.get("category_id"),
			EquipmentRef: row.get("equipment_id"),
			Description:  row.get("description"),
			Comment:      row.get("comment"),
			Amount:       amount,
		})
	}

	return records, nil
}

// FetchIncome returns the income records whose date falls inside the period,
// in file order.
func (s *CSVStore) FetchIncome(ctx context.Context, period ledger.Period) ([]RawIncomeRecord, error) {
	path := filepath.Join(s.DataDir, IncomeFileName)

	rows, err := readRecordFile(ctx, path)
	if err != nil {
		return nil, err
	}

	var records []RawIncomeRecord
	for _, row := range rows {
		date, err := parseRecordDate(row)
		if err != nil {
			return nil, err
		}
		if !period.Contains(date) {
			continue
		}

		amount, err := parseRecordAmount(row)
		if err != nil {
			return nil, err
		}

		records = append(records, RawIncomeRecord{
			ID:           row.get("id"),
			Date:         date,
			EquipmentRef: row.get("equipment_id"),
			ClientRef:    row.get("client_id"),
			ProjectRef:   row.get("project_id"),
			Amount:       amount,
		})
	}

	return records, nil
}

// =============================================================================
// ROW READING
// =============================================================================

// recordRow is one data row keyed by header name, tagged with its original
// row number for error reporting.
type recordRow struct {
	file   string
	number int
	fields map[string]string
}

// get returns the trimmed value of the named column, or "" when the column
// is absent from the file.
func (r recordRow) get(header string) string {
	return strings.TrimSpace(r.fields[header])
}

// readRecordFile reads a CSV extract into header-keyed rows.
//
// The entire file is materialized up front: extracts are small (one period of
// records) and downstream stages consume fully-materialized input anyway.
func readRecordFile(ctx context.Context, path string) ([]recordRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open record file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}

	if len(allRows) == 0 {
		return nil, fmt.Errorf("record file %s is empty", filepath.Base(path))
	}

	// First row is the header row.
	headers := make([]string, len(allRows[0]))
	for i, h := range allRows[0] {
		headers[i] = strings.ToLower(strings.TrimSpace(h))
	}

	rows := make([]recordRow, 0, len(allRows)-1)
	for i, raw := range allRows[1:] {
		fields := make(map[string]string, len(headers))
		for j, value := range raw {
			if j < len(headers) {
				fields[headers[j]] = value
			}
		}
		rows = append(rows, recordRow{
			file:   filepath.Base(path),
			number: i + 2, // 1-indexed, row 1 is the header
			fields: fields,
		})
	}

	return rows, nil
}

// =============================================================================
// FIELD PARSING
// =============================================================================

// parseRecordDate parses the row's date column as a calendar date.
func parseRecordDate(row recordRow) (time.Time, error) {
	value := row.get("date")
	if value == "" {
		return time.Time{}, fmt.Errorf("%s row %d: missing date", row.file, row.number)
	}

	date, err := time.ParseInLocation(dateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s row %d: invalid date %q: %w", row.file, row.number, value, err)
	}

	return ledger.DateOnly(date), nil
}

// parseRecordAmount parses the row's amount column as a decimal. The sign is
// preserved as-is; rejecting non-positive amounts is the validator's job.
func parseRecordAmount(row recordRow) (decimal.Decimal, error) {
	value := row.get("amount")
	if value == "" {
		return decimal.Zero, fmt.Errorf("%s row %d: missing amount", row.file, row.number)
	}

	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s row %d: invalid amount %q: %w", row.file, row.number, value, err)
	}

	return amount, nil
}
