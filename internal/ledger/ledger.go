// =============================================================================
// Ledger Export - Canonical Ledger Types
// =============================================================================
//
// This package contains the canonical ledger representation shared across the
// export pipeline. Types defined here are used by:
//   - export (aggregation)
//   - validation
//   - stats
//   - xlsxwriter
//
// A LedgerEntry is the normalized form of one source record (expense or
// income). An ExportBatch is the ordered, immutable collection of entries
// produced for a single export request.
//
// =============================================================================

package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// PERIOD
// =============================================================================

// Period constrains an export to a calendar year and, optionally, a specific
// month within that year. A Month of zero means the whole year is in scope.
type Period struct {
	// Year is the calendar year, e.g. 2025. Required.
	Year int

	// Month is the month within Year (1-12), or 0 for the whole year.
	Month time.Month
}

// WholeYear reports whether the period covers the entire year.
func (p Period) WholeYear() bool {
	return p.Month == 0
}

// Contains reports whether the given date falls inside the period.
func (p Period) Contains(date time.Time) bool {
	if date.Year() != p.Year {
		return false
	}
	if p.WholeYear() {
		return true
	}
	return date.Month() == p.Month
}

// Label returns the period in the form used by export file names:
// "2025_03" for a single month, "2025_ALL" for a whole year.
func (p Period) Label() string {
	if p.WholeYear() {
		return fmt.Sprintf("%d_ALL", p.Year)
	}
	return fmt.Sprintf("%d_%02d", p.Year, int(p.Month))
}

// String returns a human-readable form for logs and error messages.
func (p Period) String() string {
	if p.WholeYear() {
		return fmt.Sprintf("%d", p.Year)
	}
	return fmt.Sprintf("%d-%02d", p.Year, int(p.Month))
}

// =============================================================================
// LEDGER ENTRY
// =============================================================================

// IncomeConcept is the fixed concept label assigned to every income-derived
// entry. The downstream accounting import keys on this literal.
const IncomeConcept = "INCOME RENTAL"

// LedgerEntry is one normalized row of the export ledger.
//
// Exactly one of Debit/Credit must be strictly positive and the other exactly
// zero. The normalizer produces entries that satisfy this for well-formed
// source records; the validation package enforces it for everything else.
type LedgerEntry struct {
	// Date is the calendar date of the underlying record. The time component
	// is always midnight UTC; only the date part is meaningful.
	Date time.Time

	// Concept is the short classification label: a resolved category name for
	// expense-derived entries, or IncomeConcept for income-derived entries.
	Concept string

	// Detail is the free-text composed description. The composition format
	// differs between expense and income entries (see the normalize package).
	Detail string

	// Debit is the expense-side amount. Zero for income-derived entries.
	Debit decimal.Decimal

	// Credit is the income-side amount. Zero for expense-derived entries.
	Credit decimal.Decimal
}

// Balanced reports whether exactly one of Debit/Credit is strictly positive
// and the other is exactly zero.
func (e LedgerEntry) Balanced() bool {
	debitSet := !e.Debit.IsZero()
	creditSet := !e.Credit.IsZero()
	if debitSet == creditSet {
		return false
	}
	if debitSet {
		return e.Debit.Sign() > 0
	}
	return e.Credit.Sign() > 0
}

// DateOnly normalizes t to midnight UTC so entries compare by calendar date
// only.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// =============================================================================
// EXPORT BATCH
// =============================================================================

// ExportBatch is an ordered sequence of ledger entries plus the filter
// criteria that produced it.
//
// The batch is created by the aggregator and treated as immutable thereafter:
// validation, statistics and serialization all take it read-only, so they may
// safely run concurrently over the same batch.
//
// Ordering invariant: entries are sorted by Date ascending; entries sharing a
// date keep their relative fetch order.
type ExportBatch struct {
	// Entries are the normalized ledger rows, date-ascending.
	Entries []LedgerEntry

	// Period is the filter that scoped the source fetch.
	Period Period

	// IncludeExpenses records whether expense records were in scope.
	IncludeExpenses bool

	// IncludeIncome records whether income records were in scope.
	IncludeIncome bool
}

// Len returns the number of entries in the batch.
func (b *ExportBatch) Len() int {
	return len(b.Entries)
}

// Empty reports whether the batch has zero entries. An empty batch is a valid
// aggregation result, not an error; callers decide whether it is actionable.
func (b *ExportBatch) Empty() bool {
	return len(b.Entries) == 0
}
