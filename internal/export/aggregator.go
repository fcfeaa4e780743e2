// =============================================================================
// Ledger Export - Batch Aggregator
// =============================================================================
//
// The aggregator turns a filter (period + included kinds) into an ordered
// export batch: it fetches the raw records for each included kind, drives the
// normalizer over every record, concatenates the groups and stable-sorts the
// result by date.
//
// ORDERING:
//   The sort is stable, so entries sharing a date keep their fetch order and
//   expenses and income interleave by date rather than sitting in separate
//   blocks.
//
// An empty batch is a valid result, not an error: downstream callers decide
// whether there is anything to export.
//
// =============================================================================

package export

import (
	"context"
	"sort"

	"github.com/ginjaninja78/ledger-export/internal/ledger"
	"github.com/ginjaninja78/ledger-export/internal/normalize"
	"github.com/ginjaninja78/ledger-export/internal/source"
)

// Aggregator builds export batches from a record source.
type Aggregator struct {
	source source.RecordSource
	names  normalize.Resolver
}

// NewAggregator creates an aggregator over the given source and name
// resolver.
func NewAggregator(src source.RecordSource, names normalize.Resolver) *Aggregator {
	return &Aggregator{
		source: src,
		names:  names,
	}
}

// BuildBatch fetches and normalizes the records for the period and returns
// the ordered batch.
//
// Requesting a batch with both kinds excluded is rejected with
// ErrEmptySelection before any fetch occurs. A fetch failure is wrapped in a
// SourceError and never retried.
func (a *Aggregator) BuildBatch(ctx context.Context, period ledger.Period, includeExpenses, includeIncome bool) (*ledger.ExportBatch, error) {
	if !includeExpenses && !includeIncome {
		return nil, ErrEmptySelection
	}

	var entries []ledger.LedgerEntry

	if includeExpenses {
		expenses, err := a.source.FetchExpenses(ctx, period)
		if err != nil {
			return nil, &SourceError{Kind: "expenses", Err: err}
		}
		for _, raw := range expenses {
			entries = append(entries, normalize.Expense(raw, a.names))
		}
	}

	if includeIncome {
		income, err := a.source.FetchIncome(ctx, period)
		if err != nil {
			return nil, &SourceError{Kind: "income", Err: err}
		}
		for _, raw := range income {
			entries = append(entries, normalize.Income(raw, a.names))
		}
	}

	// Stable sort: equal dates keep concatenation order (all expenses of a
	// day before that day's income, each group in fetch order).
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})

	return &ledger.ExportBatch{
		Entries:         entries,
		Period:          period,
		IncludeExpenses: includeExpenses,
		IncludeIncome:   includeIncome,
	}, nil
}
