// =============================================================================
// Ledger Export - Batch Validation Engine
// =============================================================================
//
// This module inspects an export batch for the structural and semantic
// violations that would corrupt the downstream accounting import:
//   - Missing concept or detail text
//   - Absent or invalid dates
//   - Non-positive amounts on the active side of an entry
//   - Entries with both sides set, or neither side set
//   - Batches that are not date-ascending
//
// ERROR HANDLING:
//   - Issues are collected, not thrown immediately
//   - Each issue carries the offending entry's position and a reason code
//   - Issues are either errors (block export) or warnings (surfaced only)
//   - A report with zero error-severity issues means the batch is exportable
//
// The validator takes no dependencies beyond the batch itself, so it can be
// invoked standalone on externally-constructed batches; the ordering check is
// deliberately redundant with the aggregator for that reason.
//
// =============================================================================

package validation

import (
	"fmt"
	"strings"

	"github.com/ginjaninja78/ledger-export/internal/ledger"
)

// =============================================================================
// REASON CODES AND SEVERITIES
// =============================================================================

// Code identifies the rule an issue was raised under.
type Code string

const (
	// CodeEmptyBatch flags a batch with zero entries. Warning only: an empty
	// batch is valid, callers decide whether it is actionable.
	CodeEmptyBatch Code = "EmptyBatch"

	// CodeMissingField flags an entry with an empty concept or detail.
	CodeMissingField Code = "MissingField"

	// CodeInvalidDate flags an entry whose date is absent or not a valid
	// calendar date.
	CodeInvalidDate Code = "InvalidDate"

	// CodeNonPositiveAmount flags an entry whose nonzero side is negative.
	CodeNonPositiveAmount Code = "NonPositiveAmount"

	// CodeBothSidesSet flags an entry with nonzero debit and nonzero credit.
	CodeBothSidesSet Code = "BothSidesSet"

	// CodeNeitherSideSet flags an entry with zero debit and zero credit.
	CodeNeitherSideSet Code = "NeitherSideSet"

	// CodeOutOfOrder flags an entry dated earlier than its predecessor.
	CodeOutOfOrder Code = "OutOfOrder"
)

// Severity classifies an issue as blocking or advisory.
type Severity string

const (
	// SeverityError blocks export.
	SeverityError Severity = "error"

	// SeverityWarning is surfaced to the caller but does not block export.
	SeverityWarning Severity = "warning"
)

// =============================================================================
// ISSUES AND REPORT
// =============================================================================

// Issue is a single validation finding.
type Issue struct {
	// Severity is SeverityError or SeverityWarning.
	Severity Severity

	// Code is the reason code of the violated rule.
	Code Code

	// Position is the zero-based index of the offending entry in the batch.
	// -1 for batch-level issues (EmptyBatch).
	Position int

	// Field names the offending field where one applies ("concept",
	// "detail", "date", "debit", "credit"). Empty otherwise.
	Field string

	// Message is a human-readable description of the finding.
	Message string
}

// Error implements the error interface.
func (i *Issue) Error() string {
	if i.Position < 0 {
		return fmt.Sprintf("[%s] %s: %s", strings.ToUpper(string(i.Severity)), i.Code, i.Message)
	}
	return fmt.Sprintf("[%s] entry %d, %s: %s", strings.ToUpper(string(i.Severity)), i.Position, i.Code, i.Message)
}

// Report contains the results of validating one batch.
type Report struct {
	// Issues contains every finding, errors and warnings, in batch order.
	Issues []*Issue

	// ErrorCount is the number of error-severity issues.
	ErrorCount int

	// WarningCount is the number of warning-severity issues.
	WarningCount int

	// EntriesValidated is the number of entries inspected.
	EntriesValidated int
}

// Exportable reports whether the batch carries zero error-severity issues.
// Warnings do not block export.
func (r *Report) Exportable() bool {
	return r.ErrorCount == 0
}

// Errors returns only the error-severity issues.
func (r *Report) Errors() []*Issue {
	var errs []*Issue
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			errs = append(errs, issue)
		}
	}
	return errs
}

// Warnings returns only the warning-severity issues.
func (r *Report) Warnings() []*Issue {
	var warns []*Issue
	for _, issue := range r.Issues {
		if issue.Severity == SeverityWarning {
			warns = append(warns, issue)
		}
	}
	return warns
}

// add appends an issue and updates the severity counters.
func (r *Report) add(issue *Issue) {
	r.Issues = append(r.Issues, issue)
	if issue.Severity == SeverityError {
		r.ErrorCount++
	} else {
		r.WarningCount++
	}
}

// =============================================================================
// MAIN VALIDATION FUNCTION
// =============================================================================

// Validate inspects a batch and returns a report of every finding.
//
// Validation never stops at the first problem: the caller gets the full
// picture so every issue can be presented at once.
func Validate(batch *ledger.ExportBatch) *Report {
	report := &Report{
		EntriesValidated: batch.Len(),
	}

	if batch.Empty() {
		report.add(&Issue{
			Severity: SeverityWarning,
			Code:     CodeEmptyBatch,
			Position: -1,
			Message:  "batch contains no entries",
		})
		return report
	}

	for i := range batch.Entries {
		validateEntry(report, i, batch.Entries[i])
	}

	validateOrdering(report, batch)

	return report
}

// validateEntry runs the per-entry checks.
func validateEntry(report *Report, position int, entry ledger.LedgerEntry) {
	// =========================================================================
	// FIELD PRESENCE
	// =========================================================================

	if entry.Concept == "" {
		report.add(&Issue{
			Severity: SeverityError,
			Code:     CodeMissingField,
			Position: position,
			Field:    "concept",
			Message:  "concept is empty",
		})
	}

	if entry.Detail == "" {
		report.add(&Issue{
			Severity: SeverityError,
			Code:     CodeMissingField,
			Position: position,
			Field:    "detail",
			Message:  "detail is empty",
		})
	}

	// =========================================================================
	// DATE
	// =========================================================================

	if entry.Date.IsZero() {
		report.add(&Issue{
			Severity: SeverityError,
			Code:     CodeInvalidDate,
			Position: position,
			Field:    "date",
			Message:  "date is absent",
		})
	}

	// =========================================================================
	// AMOUNT SIDES
	// =========================================================================
	// Exactly one of debit/credit must be strictly positive, the other
	// exactly zero. The checks are mutually exclusive so each bad entry
	// produces exactly one amount issue.

	debitSet := !entry.Debit.IsZero()
	creditSet := !entry.Credit.IsZero()

	switch {
	case debitSet && creditSet:
		report.add(&Issue{
			Severity: SeverityError,
			Code:     CodeBothSidesSet,
			Position: position,
			Message: fmt.Sprintf("both debit (%s) and credit (%s) are set",
				entry.Debit.String(), entry.Credit.String()),
		})

	case !debitSet && !creditSet:
		report.add(&Issue{
			Severity: SeverityError,
			Code:     CodeNeitherSideSet,
			Position: position,
			Message:  "both debit and credit are zero",
		})

	case debitSet && entry.Debit.Sign() <= 0:
		report.add(&Issue{
			Severity: SeverityError,
			Code:     CodeNonPositiveAmount,
			Position: position,
			Field:    "debit",
			Message:  fmt.Sprintf("debit %s is not positive", entry.Debit.String()),
		})

	case creditSet && entry.Credit.Sign() <= 0:
		report.add(&Issue{
			Severity: SeverityError,
			Code:     CodeNonPositiveAmount,
			Position: position,
			Field:    "credit",
			Message:  fmt.Sprintf("credit %s is not positive", entry.Credit.String()),
		})
	}
}

// validateOrdering checks that the batch is non-decreasing by date. The
// aggregator always produces sorted batches; this catches batches constructed
// elsewhere.
func validateOrdering(report *Report, batch *ledger.ExportBatch) {
	for i := 1; i < len(batch.Entries); i++ {
		prev := batch.Entries[i-1]
		curr := batch.Entries[i]

		// Skip pairs involving absent dates; those are already reported as
		// InvalidDate and a zero time would raise spurious ordering noise.
		if prev.Date.IsZero() || curr.Date.IsZero() {
			continue
		}

		if curr.Date.Before(prev.Date) {
			report.add(&Issue{
				Severity: SeverityError,
				Code:     CodeOutOfOrder,
				Position: i,
				Field:    "date",
				Message: fmt.Sprintf("entry dated %s precedes entry %d dated %s",
					curr.Date.Format("2006-01-02"), i-1, prev.Date.Format("2006-01-02")),
			})
		}
	}
}

// =============================================================================
// REPORT FORMATTING
// =============================================================================

// FormatReport formats a validation report for display or logging.
func FormatReport(report *Report) string {
	if len(report.Issues) == 0 {
		return "No validation issues."
	}

	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("Validation completed with %d error(s) and %d warning(s):\n\n",
		report.ErrorCount, report.WarningCount))

	for i, issue := range report.Issues {
		builder.WriteString(fmt.Sprintf("%d. %s\n", i+1, issue.Error()))
	}

	return builder.String()
}
