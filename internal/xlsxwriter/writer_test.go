package xlsxwriter

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/ledger-export/internal/ledger"
)

func date(value string) time.Time {
	t, err := time.ParseInLocation("2006-01-02", value, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func amount(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func sampleBatch() *ledger.ExportBatch {
	return &ledger.ExportBatch{
		Entries: []ledger.LedgerEntry{
			{
				Date:    date("2025-01-15"),
				Concept: "FUEL",
				Detail:  "[CAT 320] Diesel full tank",
				Debit:   amount("15000.50"),
			},
			{
				Date:    date("2025-01-16"),
				Concept: ledger.IncomeConcept,
				Detail:  "CAT 320 - ABC Construction",
				Credit:  amount("25000.00"),
			},
		},
	}
}

// =============================================================================
// WRITE AND ROUND TRIP
// =============================================================================

func TestWrite_RoundTrip(t *testing.T) {
	destination := filepath.Join(t.TempDir(), "export.xlsx")
	batch := sampleBatch()

	result, err := Write(batch, destination)
	require.NoError(t, err)
	assert.Equal(t, destination, result.Path)
	assert.Equal(t, 2, result.RowsWritten)

	entries, err := ReadArtifact(destination)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	for i, want := range batch.Entries {
		got := entries[i]
		assert.True(t, got.Date.Equal(want.Date), "row %d date", i)
		assert.Equal(t, want.Concept, got.Concept, "row %d concept", i)
		assert.Equal(t, want.Detail, got.Detail, "row %d detail", i)
		assert.True(t, got.Debit.Equal(want.Debit), "row %d debit: %s", i, got.Debit)
		assert.True(t, got.Credit.Equal(want.Credit), "row %d credit: %s", i, got.Credit)
	}
}

func TestWrite_RoundsAmountsToTwoDecimals(t *testing.T) {
	destination := filepath.Join(t.TempDir(), "export.xlsx")
	batch := &ledger.ExportBatch{
		Entries: []ledger.LedgerEntry{
			{Date: date("2025-01-15"), Concept: "FUEL", Detail: "x", Debit: amount("10.005")},
		},
	}

	_, err := Write(batch, destination)
	require.NoError(t, err)

	entries, err := ReadArtifact(destination)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Debit.Equal(amount("10.01")), "got %s", entries[0].Debit)
}

func TestWrite_EmptyBatchHeaderOnly(t *testing.T) {
	destination := filepath.Join(t.TempDir(), "export.xlsx")

	result, err := Write(&ledger.ExportBatch{}, destination)
	require.NoError(t, err)
	assert.Equal(t, 0, result.RowsWritten)

	entries, err := ReadArtifact(destination)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWrite_RefusesUnbalancedEntries(t *testing.T) {
	destination := filepath.Join(t.TempDir(), "export.xlsx")
	batch := &ledger.ExportBatch{
		Entries: []ledger.LedgerEntry{
			{Date: date("2025-01-15"), Concept: "FUEL", Detail: "ok", Debit: amount("100")},
			{Date: date("2025-01-16"), Concept: "FUEL", Detail: "both sides",
				Debit: amount("100"), Credit: amount("100")},
			{Date: date("2025-01-17"), Concept: "FUEL", Detail: "neither side"},
		},
	}

	_, err := Write(batch, destination)

	var unbalanced *UnbalancedBatchError
	require.ErrorAs(t, err, &unbalanced)
	assert.Equal(t, []int{1, 2}, unbalanced.Positions)

	_, statErr := os.Stat(destination)
	assert.True(t, os.IsNotExist(statErr), "refused write must not create the artifact")
}

func TestWrite_OverwritesExistingArtifact(t *testing.T) {
	destination := filepath.Join(t.TempDir(), "export.xlsx")

	_, err := Write(sampleBatch(), destination)
	require.NoError(t, err)

	second := &ledger.ExportBatch{
		Entries: sampleBatch().Entries[:1],
	}
	_, err = Write(second, destination)
	require.NoError(t, err)

	entries, err := ReadArtifact(destination)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSaveAtomic_FinalizesWorkbook(t *testing.T) {
	dir := t.TempDir()
	destination := filepath.Join(dir, "export.xlsx")

	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, saveAtomic(f, destination))

	// Only the finalized artifact remains; the intermediate name is gone.
	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "export.xlsx", files[0].Name())

	opened, err := excelize.OpenFile(destination)
	require.NoError(t, err)
	require.NoError(t, opened.Close())
}

func TestWrite_LeavesNoTemporaryFiles(t *testing.T) {
	dir := t.TempDir()

	_, err := Write(sampleBatch(), filepath.Join(dir, "export.xlsx"))
	require.NoError(t, err)

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "export.xlsx", files[0].Name())
}

// =============================================================================
// ARTIFACT READING
// =============================================================================

func TestReadArtifact_RejectsWrongSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "foreign.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow(SheetName, "A1",
		&[]interface{}{"Fecha", "Concepto", "Detalle", "Monto"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	_, err := ReadArtifact(path)
	assert.ErrorContains(t, err, "expected")
}

func TestReadArtifact_MissingFile(t *testing.T) {
	_, err := ReadArtifact(filepath.Join(t.TempDir(), "absent.xlsx"))
	assert.Error(t, err)
}

// =============================================================================
// FILE VALIDATION
// =============================================================================

// writeRawArtifact builds an artifact directly, bypassing the writer's side
// invariant, so file validation can be exercised on rows the writer refuses.
func writeRawArtifact(t *testing.T, rows [][]interface{}) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "raw.xlsx")
	f := excelize.NewFile()

	header := make([]interface{}, len(ColumnHeaders))
	for i, h := range ColumnHeaders {
		header[i] = h
	}
	require.NoError(t, f.SetSheetRow(SheetName, "A1", &header))

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(SheetName, cell, &row))
	}

	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
	return path
}

func TestValidateFile_CleanArtifact(t *testing.T) {
	destination := filepath.Join(t.TempDir(), "export.xlsx")
	_, err := Write(sampleBatch(), destination)
	require.NoError(t, err)

	report, err := ValidateFile(destination)
	require.NoError(t, err)

	assert.True(t, report.Valid)
	assert.Empty(t, report.Errors)
	assert.Empty(t, report.Warnings)
	assert.Equal(t, 2, report.Stats.Count)
	assert.True(t, report.Stats.Balance.Equal(amount("9999.50")))
}

func TestValidateFile_NegativeAmountIsError(t *testing.T) {
	destination := filepath.Join(t.TempDir(), "export.xlsx")
	batch := &ledger.ExportBatch{
		Entries: []ledger.LedgerEntry{
			{Date: date("2025-01-15"), Concept: "FUEL", Detail: "refund", Debit: amount("-250")},
		},
	}
	_, err := Write(batch, destination)
	require.NoError(t, err)

	report, err := ValidateFile(destination)
	require.NoError(t, err)

	assert.False(t, report.Valid)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "row 2")
	assert.Contains(t, report.Errors[0], "negative debit")
}

func TestValidateFile_SideConflictsAreWarnings(t *testing.T) {
	path := writeRawArtifact(t, [][]interface{}{
		{"2025-01-15", "FUEL", "both sides", 100.00, 100.00},
		{"2025-01-16", "FUEL", "neither side", 0.00, 0.00},
	})

	report, err := ValidateFile(path)
	require.NoError(t, err)

	assert.True(t, report.Valid, "side conflicts in an existing file are advisory")
	assert.Empty(t, report.Errors)
	require.Len(t, report.Warnings, 2)
	assert.Contains(t, report.Warnings[0], "row 2")
	assert.Contains(t, report.Warnings[0], "both debit and credit carry values")
	assert.Contains(t, report.Warnings[1], "row 3")
	assert.Contains(t, report.Warnings[1], "both debit and credit are zero")
}

func TestValidateFile_EmptyFileIsError(t *testing.T) {
	path := writeRawArtifact(t, nil)

	report, err := ValidateFile(path)
	require.NoError(t, err)

	assert.False(t, report.Valid)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "no transactions")
}

func TestValidateFile_UnreadableFile(t *testing.T) {
	report, err := ValidateFile(filepath.Join(t.TempDir(), "absent.xlsx"))
	require.NoError(t, err)

	assert.False(t, report.Valid)
	assert.NotEmpty(t, report.Errors)
}
