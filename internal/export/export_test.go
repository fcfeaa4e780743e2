package export

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/ledger-export/internal/config"
	"github.com/ginjaninja78/ledger-export/internal/ledger"
	"github.com/ginjaninja78/ledger-export/internal/source"
	"github.com/ginjaninja78/ledger-export/pkg/utils"
)

// fakeSource is an in-memory RecordSource with injectable failures.
type fakeSource struct {
	expenses []source.RawExpenseRecord
	income   []source.RawIncomeRecord

	expensesErr error
	incomeErr   error

	fetchCalls int
}

func (f *fakeSource) FetchExpenses(ctx context.Context, period ledger.Period) ([]source.RawExpenseRecord, error) {
	f.fetchCalls++
	if f.expensesErr != nil {
		return nil, f.expensesErr
	}
	var out []source.RawExpenseRecord
	for _, r := range f.expenses {
		if period.Contains(r.Date) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeSource) FetchIncome(ctx context.Context, period ledger.Period) ([]source.RawIncomeRecord, error) {
	f.fetchCalls++
	if f.incomeErr != nil {
		return nil, f.incomeErr
	}
	var out []source.RawIncomeRecord
	for _, r := range f.income {
		if period.Contains(r.Date) {
			out = append(out, r)
		}
	}
	return out, nil
}

func testLookups() *config.Lookups {
	return &config.Lookups{
		Categories: map[string]string{"cat-fuel": "FUEL", "cat-parts": "PARTS"},
		Equipment:  map[string]string{"eq-320": "CAT 320"},
		Clients:    map[string]string{"cli-abc": "ABC"},
	}
}

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

func expenseOn(day, category, description, amt string) source.RawExpenseRecord {
	return source.RawExpenseRecord{
		Date:         date(day),
		CategoryRef:  category,
		EquipmentRef: "eq-320",
		Description:  description,
		Amount:       amount(amt),
	}
}

func incomeOn(day, amt string) source.RawIncomeRecord {
	return source.RawIncomeRecord{
		Date:         date(day),
		EquipmentRef: "eq-320",
		ClientRef:    "cli-abc",
		Amount:       amount(amt),
	}
}

// =============================================================================
// AGGREGATOR
// =============================================================================

func TestBuildBatch_EmptySelectionRejectedBeforeFetch(t *testing.T) {
	src := &fakeSource{}
	agg := NewAggregator(src, testLookups())

	batch, err := agg.BuildBatch(context.Background(), ledger.Period{Year: 2025}, false, false)

	assert.Nil(t, batch)
	assert.ErrorIs(t, err, ErrEmptySelection)
	assert.Equal(t, 0, src.fetchCalls, "no fetch may occur for an empty selection")
}

func TestBuildBatch_InterleavesKindsByDate(t *testing.T) {
	src := &fakeSource{
		expenses: []source.RawExpenseRecord{
			expenseOn("2025-01-15", "cat-fuel", "Diesel", "100"),
			expenseOn("2025-01-20", "cat-parts", "Filter", "50"),
		},
		income: []source.RawIncomeRecord{
			incomeOn("2025-01-16", "500"),
			incomeOn("2025-01-10", "300"),
		},
	}
	agg := NewAggregator(src, testLookups())

	batch, err := agg.BuildBatch(context.Background(), ledger.Period{Year: 2025}, true, true)
	require.NoError(t, err)
	require.Equal(t, 4, batch.Len())

	var days []string
	for _, e := range batch.Entries {
		days = append(days, e.Date.Format("2006-01-02"))
	}
	assert.Equal(t, []string{"2025-01-10", "2025-01-15", "2025-01-16", "2025-01-20"}, days)

	// Kinds interleave by date instead of sitting in separate blocks.
	assert.Equal(t, ledger.IncomeConcept, batch.Entries[0].Concept)
	assert.Equal(t, "FUEL", batch.Entries[1].Concept)
}

func TestBuildBatch_StableForEqualDates(t *testing.T) {
	src := &fakeSource{
		expenses: []source.RawExpenseRecord{
			expenseOn("2025-01-15", "cat-fuel", "first", "1"),
			expenseOn("2025-01-15", "cat-fuel", "second", "2"),
		},
		income: []source.RawIncomeRecord{
			incomeOn("2025-01-15", "3"),
		},
	}
	agg := NewAggregator(src, testLookups())

	batch, err := agg.BuildBatch(context.Background(), ledger.Period{Year: 2025}, true, true)
	require.NoError(t, err)
	require.Equal(t, 3, batch.Len())

	// Fetch order survives the sort: both expenses in file order, income
	// after the expense group it was concatenated behind.
	assert.Contains(t, batch.Entries[0].Detail, "first")
	assert.Contains(t, batch.Entries[1].Detail, "second")
	assert.Equal(t, ledger.IncomeConcept, batch.Entries[2].Concept)
}

func TestBuildBatch_SingleKind(t *testing.T) {
	src := &fakeSource{
		expenses: []source.RawExpenseRecord{expenseOn("2025-01-15", "cat-fuel", "Diesel", "100")},
		income:   []source.RawIncomeRecord{incomeOn("2025-01-16", "500")},
	}
	agg := NewAggregator(src, testLookups())

	batch, err := agg.BuildBatch(context.Background(), ledger.Period{Year: 2025}, true, false)
	require.NoError(t, err)
	require.Equal(t, 1, batch.Len())
	assert.Equal(t, "FUEL", batch.Entries[0].Concept)
	assert.True(t, batch.IncludeExpenses)
	assert.False(t, batch.IncludeIncome)
}

func TestBuildBatch_PeriodFilter(t *testing.T) {
	src := &fakeSource{
		expenses: []source.RawExpenseRecord{
			expenseOn("2025-03-15", "cat-fuel", "in scope", "100"),
			expenseOn("2025-04-15", "cat-fuel", "other month", "100"),
			expenseOn("2024-03-15", "cat-fuel", "other year", "100"),
		},
	}
	agg := NewAggregator(src, testLookups())

	batch, err := agg.BuildBatch(context.Background(),
		ledger.Period{Year: 2025, Month: time.March}, true, false)
	require.NoError(t, err)
	require.Equal(t, 1, batch.Len())
	assert.Contains(t, batch.Entries[0].Detail, "in scope")
}

func TestBuildBatch_EmptyResultIsValid(t *testing.T) {
	agg := NewAggregator(&fakeSource{}, testLookups())

	batch, err := agg.BuildBatch(context.Background(), ledger.Period{Year: 2025}, true, true)
	require.NoError(t, err)
	assert.True(t, batch.Empty())
}

func TestBuildBatch_SourceErrorWrapped(t *testing.T) {
	cause := errors.New("connection refused")
	agg := NewAggregator(&fakeSource{expensesErr: cause}, testLookups())

	_, err := agg.BuildBatch(context.Background(), ledger.Period{Year: 2025}, true, true)

	var srcErr *SourceError
	require.ErrorAs(t, err, &srcErr)
	assert.Equal(t, "expenses", srcErr.Kind)
	assert.ErrorIs(t, err, cause)
}

// =============================================================================
// EXPORTER
// =============================================================================

func newTestExporter(t *testing.T, src source.RecordSource) (*Exporter, *utils.FileManager) {
	t.Helper()

	dir := t.TempDir()
	files := utils.NewFileManager(dir+"/output", dir+"/archive")
	require.NoError(t, files.EnsureDirectories())

	return NewExporter(src, testLookups(), files, nil), files
}

func TestExporterRun_WritesArtifact(t *testing.T) {
	src := &fakeSource{
		expenses: []source.RawExpenseRecord{expenseOn("2025-01-15", "cat-fuel", "Diesel", "15000.50")},
		income:   []source.RawIncomeRecord{incomeOn("2025-01-16", "25000.00")},
	}
	exporter, _ := newTestExporter(t, src)

	result, err := exporter.Run(context.Background(), Request{
		Period:          ledger.Period{Year: 2025},
		IncludeExpenses: true,
		IncludeIncome:   true,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Stats.Count)
	assert.True(t, result.Stats.Balance.Equal(amount("9999.50")))
	assert.True(t, result.Report.Exportable())

	info, err := os.Stat(result.OutputFile)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	_, err = os.Stat(result.ArchiveFile)
	assert.NoError(t, err, "artifact must be archived")
}

func TestExporterRun_DryRunWritesNothing(t *testing.T) {
	src := &fakeSource{
		expenses: []source.RawExpenseRecord{expenseOn("2025-01-15", "cat-fuel", "Diesel", "100")},
	}
	exporter, files := newTestExporter(t, src)

	result, err := exporter.Run(context.Background(), Request{
		Period:          ledger.Period{Year: 2025},
		IncludeExpenses: true,
		DryRun:          true,
	})
	require.NoError(t, err)

	assert.Empty(t, result.OutputFile)
	entries, err := os.ReadDir(files.OutputDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "dry run must not write into the output directory")
}

func TestExporterRun_RefusesInvalidBatch(t *testing.T) {
	src := &fakeSource{
		expenses: []source.RawExpenseRecord{expenseOn("2025-01-15", "cat-fuel", "Refund", "-250")},
	}
	exporter, files := newTestExporter(t, src)

	_, err := exporter.Run(context.Background(), Request{
		Period:          ledger.Period{Year: 2025},
		IncludeExpenses: true,
	})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, 1, validationErr.Report.ErrorCount)

	entries, readErr := os.ReadDir(files.OutputDir)
	require.NoError(t, readErr)
	assert.Empty(t, entries, "refused export must not leave files behind")
}

func TestExporterRun_EmptySelection(t *testing.T) {
	exporter, _ := newTestExporter(t, &fakeSource{})

	_, err := exporter.Run(context.Background(), Request{
		Period: ledger.Period{Year: 2025},
	})

	assert.ErrorIs(t, err, ErrEmptySelection)
}

func TestArtifactName(t *testing.T) {
	exporter, _ := newTestExporter(t, &fakeSource{})
	now := time.Date(2025, 8, 30, 15, 30, 0, 0, time.UTC)

	assert.Equal(t, "EXPORT_2025_03_20250830_153000.xlsx",
		exporter.ArtifactName(ledger.Period{Year: 2025, Month: time.March}, now))
	assert.Equal(t, "EXPORT_2025_ALL_20250830_153000.xlsx",
		exporter.ArtifactName(ledger.Period{Year: 2025}, now))
}
