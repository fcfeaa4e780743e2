// =============================================================================
// Ledger Export - Record Source Interface
// =============================================================================
//
// This package defines the record source collaborator: the component that
// supplies raw expense and income records for a period. The export engine
// consumes the RecordSource interface; the concrete implementation shipped
// here reads the records from CSV extracts (see csvstore.go).
//
// The raw record types are owned by the source side and are read-only to the
// rest of the engine. Normalization into ledger entries happens in the
// normalize package.
//
// =============================================================================

package source

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/ledger-export/internal/ledger"
)

// =============================================================================
// RAW RECORD TYPES
// =============================================================================

// RawExpenseRecord is one expense record as supplied by the record source.
type RawExpenseRecord struct {
	// ID is the source-assigned record identifier. Used only for error
	// reporting; it never appears in the export artifact.
	ID string

	// Date is the calendar date of the expense.
	Date time.Time

	// CategoryRef is the opaque reference to the expense category.
	CategoryRef string

	// EquipmentRef is the opaque reference to the equipment the expense
	// was incurred for.
	EquipmentRef string

	// Description is the free-text description of the expense.
	Description string

	// Comment is an optional free-text comment. May be empty.
	Comment string

	// Amount is the monetary amount. Well-formed records carry a positive
	// value; the sign is preserved as-is so validation can catch bad data.
	Amount decimal.Decimal
}

// RawIncomeRecord is one income (rental) record as supplied by the record
// source.
type RawIncomeRecord struct {
	// ID is the source-assigned record identifier.
	ID string

	// Date is the calendar date of the rental income.
	Date time.Time

	// EquipmentRef is the opaque reference to the rented equipment.
	EquipmentRef string

	// ClientRef is the opaque reference to the client.
	ClientRef string

	// ProjectRef is the opaque reference to the project. Optional; empty
	// when the rental is not tied to a project.
	ProjectRef string

	// Amount is the monetary amount. Sign is preserved as-is.
	Amount decimal.Decimal
}

// =============================================================================
// RECORD SOURCE INTERFACE
// =============================================================================

// RecordSource supplies raw records matching a period filter.
//
// Fetching is the only potentially blocking stage of the export pipeline
// (network or storage latency), so both methods take a context for
// cancellation. Implementations do not retry; retry policy belongs to the
// collaborator behind the interface.
type RecordSource interface {
	// FetchExpenses returns all expense records whose date falls inside the
	// period, in the source's stable order.
	FetchExpenses(ctx context.Context, period ledger.Period) ([]RawExpenseRecord, error)

	// FetchIncome returns all income records whose date falls inside the
	// period, in the source's stable order.
	FetchIncome(ctx context.Context, period ledger.Period) ([]RawIncomeRecord, error)
}
