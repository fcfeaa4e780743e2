// =============================================================================
// Ledger Export - Error Taxonomy
// =============================================================================
//
// Structured error types for the export pipeline. Every failure falls into
// one of four categories so callers can branch on errors.As/Is:
//
//   ErrEmptySelection  - export requested with no record kinds included
//   SourceError        - the record source fetch failed (not retried here)
//   ValidationError    - the batch carries error-severity issues; the full
//                        report rides along so every issue can be shown
//   WriteError         - the artifact could not be written
//
// The engine performs no silent recovery: amounts are never clamped, dates
// never invented. Failing loudly and specifically is the contract.
//
// =============================================================================

package export

import (
	"errors"
	"fmt"

	"github.com/ginjaninja78/ledger-export/internal/validation"
)

// ErrEmptySelection is returned when an export is requested with both
// IncludeExpenses and IncludeIncome false. No fetch occurs.
var ErrEmptySelection = errors.New("export: no record kinds selected")

// SourceError wraps a record source fetch failure. The fetch is never
// retried by the engine; retry policy belongs to the source collaborator.
type SourceError struct {
	// Kind is the record kind being fetched: "expenses" or "income".
	Kind string

	// Err is the underlying fetch error, surfaced verbatim.
	Err error
}

// Error implements the error interface.
func (e *SourceError) Error() string {
	return fmt.Sprintf("record source unavailable fetching %s: %v", e.Kind, e.Err)
}

// Unwrap returns the underlying fetch error.
func (e *SourceError) Unwrap() error {
	return e.Err
}

// ValidationError is returned when a batch fails validation. Export is
// refused; the report carries every issue, not just the first.
type ValidationError struct {
	// Report is the full validation report.
	Report *validation.Report
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("export refused: batch failed validation with %d error(s)", e.Report.ErrorCount)
}

// WriteError wraps an artifact write failure. No partial file is left in a
// readable state at Path.
type WriteError struct {
	// Path is the intended artifact destination.
	Path string

	// Err is the underlying cause (permission, locked file, disk full).
	Err error
}

// Error implements the error interface.
func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write artifact %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e *WriteError) Unwrap() error {
	return e.Err
}
