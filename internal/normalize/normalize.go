// =============================================================================
// Ledger Export - Record Normalizer
// =============================================================================
//
// This module converts raw source records into canonical ledger entries.
// Normalization is the only place where the two source kinds (expenses and
// income) are mapped onto the single five-field ledger shape consumed by
// validation, statistics and serialization.
//
// MAPPING RULES:
//   Expense:
//     concept = resolved category name (literal reference when unresolved)
//     detail  = "[{equipment}] {description} ({comment})"
//               empty segments omitted entirely; the concept stands in when
//               every segment is empty
//     debit   = amount, credit = 0
//   Income:
//     concept = "INCOME RENTAL" (fixed)
//     detail  = "{equipment} - {client}" plus " - {project}" when a project
//               reference is present
//     debit   = 0, credit = amount
//
// The functions here are pure: no I/O, no clock, no hidden lookups. Name
// resolution is an injected capability so the normalizer has no dependency on
// the load order of any external data layer.
//
// Amount signs are preserved as-is. A negative source amount produces a
// negative ledger side, which the validator then rejects; the normalizer
// never coerces.
//
// =============================================================================

package normalize

import (
	"fmt"
	"strings"

	"github.com/ginjaninja78/ledger-export/internal/ledger"
	"github.com/ginjaninja78/ledger-export/internal/source"
)

// maxTextLength caps concept and detail text. Longer values are truncated to
// maxTextLength-3 runes plus "..." so the downstream accounting import never
// sees an oversized field.
const maxTextLength = 200

// =============================================================================
// NAME RESOLUTION
// =============================================================================

// Resolver maps opaque reference identifiers to display names. Each method
// reports whether the reference was known; callers degrade to the literal
// reference text when it was not.
type Resolver interface {
	CategoryName(ref string) (string, bool)
	EquipmentName(ref string) (string, bool)
	ClientName(ref string) (string, bool)
	ProjectName(ref string) (string, bool)
}

// resolveOr returns the resolved name, or the literal reference when the
// lookup misses. An unresolved reference is degraded data, not an error.
func resolveOr(name string, ok bool, ref string) string {
	if ok {
		return name
	}
	return ref
}

// =============================================================================
// EXPENSE NORMALIZATION
// =============================================================================

// Expense converts one raw expense record into a ledger entry.
func Expense(raw source.RawExpenseRecord, names Resolver) ledger.LedgerEntry {
	name, ok := names.CategoryName(raw.CategoryRef)
	concept := resolveOr(name, ok, raw.CategoryRef)

	name, ok = names.EquipmentName(raw.EquipmentRef)
	equipment := resolveOr(name, ok, raw.EquipmentRef)

	// Only non-empty segments are joined, so a record without a description
	// or comment never produces stray separators. With no segments at all the
	// concept stands in as the detail.
	var segments []string
	if equipment != "" {
		segments = append(segments, fmt.Sprintf("[%s]", equipment))
	}
	if description := strings.TrimSpace(raw.Description); description != "" {
		segments = append(segments, description)
	}
	if comment := strings.TrimSpace(raw.Comment); comment != "" {
		segments = append(segments, fmt.Sprintf("(%s)", comment))
	}

	detail := strings.Join(segments, " ")
	if detail == "" {
		detail = concept
	}

	return ledger.LedgerEntry{
		Date:    ledger.DateOnly(raw.Date),
		Concept: truncate(concept),
		Detail:  truncate(detail),
		Debit:   raw.Amount,
	}
}

// =============================================================================
// INCOME NORMALIZATION
// =============================================================================

// Income converts one raw income (rental) record into a ledger entry.
func Income(raw source.RawIncomeRecord, names Resolver) ledger.LedgerEntry {
	name, ok := names.EquipmentName(raw.EquipmentRef)
	equipment := resolveOr(name, ok, raw.EquipmentRef)

	name, ok = names.ClientName(raw.ClientRef)
	client := resolveOr(name, ok, raw.ClientRef)

	detail := fmt.Sprintf("%s - %s", equipment, client)
	if raw.ProjectRef != "" {
		name, ok = names.ProjectName(raw.ProjectRef)
		detail = fmt.Sprintf("%s - %s", detail, resolveOr(name, ok, raw.ProjectRef))
	}

	return ledger.LedgerEntry{
		Date:    ledger.DateOnly(raw.Date),
		Concept: ledger.IncomeConcept,
		Detail:  truncate(detail),
		Credit:  raw.Amount,
	}
}

// =============================================================================
// HELPERS
// =============================================================================

// truncate limits text to maxTextLength runes, marking the cut with "...".
func truncate(text string) string {
	runes := []rune(text)
	if len(runes) <= maxTextLength {
		return text
	}
	return string(runes[:maxTextLength-3]) + "..."
}
