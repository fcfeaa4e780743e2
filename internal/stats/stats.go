// =============================================================================
// Ledger Export - Batch Statistics
// =============================================================================
//
// This module computes the aggregate figures shown before an export is
// committed: entry count, date span, debit/credit totals and balance.
//
// Totals accumulate in decimal arithmetic, never binary floats, so repeated
// currency additions cannot drift. Statistics are recomputed on demand;
// batches are immutable, so there is nothing to cache or invalidate.
//
// =============================================================================

package stats

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/ledger-export/internal/ledger"
)

// Statistics is the aggregate view over one export batch.
type Statistics struct {
	// Count is the number of entries in the batch.
	Count int

	// MinDate and MaxDate bound the dates seen. Only meaningful when
	// HasDates is true; an empty batch has no date span.
	MinDate time.Time
	MaxDate time.Time

	// HasDates reports whether the batch contained at least one entry.
	HasDates bool

	// DebitTotal is the sum of all debit amounts.
	DebitTotal decimal.Decimal

	// CreditTotal is the sum of all credit amounts.
	CreditTotal decimal.Decimal

	// Balance is CreditTotal minus DebitTotal.
	Balance decimal.Decimal
}

// Summarize computes statistics over a batch in a single pass.
//
// On an empty batch it returns count 0 and zero totals; the date span is
// reported as absent rather than defaulting to an epoch value.
func Summarize(batch *ledger.ExportBatch) Statistics {
	s := Statistics{
		DebitTotal:  decimal.Zero,
		CreditTotal: decimal.Zero,
		Balance:     decimal.Zero,
	}

	for _, entry := range batch.Entries {
		s.Count++

		if !s.HasDates || entry.Date.Before(s.MinDate) {
			s.MinDate = entry.Date
		}
		if !s.HasDates || entry.Date.After(s.MaxDate) {
			s.MaxDate = entry.Date
		}
		s.HasDates = true

		s.DebitTotal = s.DebitTotal.Add(entry.Debit)
		s.CreditTotal = s.CreditTotal.Add(entry.Credit)
	}

	s.Balance = s.CreditTotal.Sub(s.DebitTotal)

	return s
}

// DateRange returns the span as "2006-01-02 .. 2006-01-02", or "no data"
// when the batch was empty.
func (s Statistics) DateRange() string {
	if !s.HasDates {
		return "no data"
	}
	return fmt.Sprintf("%s .. %s", s.MinDate.Format("2006-01-02"), s.MaxDate.Format("2006-01-02"))
}
