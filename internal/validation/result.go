package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/catenarytransit/fleetcheck/internal/fleet"
)

// ValidationError represents a single schema violation with location and context.
type ValidationError struct {
	Path     string // field location (e.g., "vehicles[0].roster[1].fleet_selection")
	Line     int    // 1-based line number in source file
	Column   int    // 1-based column number in source file
	Message  string // Human-readable error description
	Expected string // What was expected (type, shape)
	Actual   string // What was found
	Hint     string // Suggestion for fixing the error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var sb strings.Builder
	if e.Line > 0 {
		sb.WriteString(fmt.Sprintf("line %d", e.Line))
		if e.Column > 0 {
			sb.WriteString(fmt.Sprintf(":%d", e.Column))
		}
		sb.WriteString(": ")
	}
	if e.Path != "" {
		sb.WriteString(fmt.Sprintf("%s: ", e.Path))
	}
	sb.WriteString(e.Message)
	if e.Expected != "" || e.Actual != "" {
		sb.WriteString(fmt.Sprintf(" (expected %s, found %s)", orUnknown(e.Expected), orUnknown(e.Actual)))
	}
	return sb.String()
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

// FormatFull returns a detailed multi-line error message.
func (e *ValidationError) FormatFull() string {
	var sb strings.Builder

	if e.Line > 0 {
		sb.WriteString(fmt.Sprintf("  Line %d", e.Line))
		if e.Column > 0 {
			sb.WriteString(fmt.Sprintf(", Column %d", e.Column))
		}
		sb.WriteString("\n")
	}

	if e.Path != "" {
		sb.WriteString(fmt.Sprintf("  Path: %s\n", e.Path))
	}

	sb.WriteString(fmt.Sprintf("  Error: %s\n", e.Message))

	if e.Expected != "" {
		sb.WriteString(fmt.Sprintf("  Expected: %s\n", e.Expected))
	}
	if e.Actual != "" {
		sb.WriteString(fmt.Sprintf("  Got: %s\n", e.Actual))
	}

	if e.Hint != "" {
		sb.WriteString(fmt.Sprintf("  Hint: %s\n", e.Hint))
	}

	return sb.String()
}

// DocumentSummary contains counts for a valid document.
type DocumentSummary struct {
	Counts map[string]int
}

// Keys returns the count names in sorted order.
func (s *DocumentSummary) Keys() []string {
	if s == nil {
		return nil
	}
	keys := make([]string, 0, len(s.Counts))
	for k := range s.Counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ValidationResult represents the complete validation outcome for one file.
type ValidationResult struct {
	Valid    bool                // True if the document conforms to the schema
	Errors   []*ValidationError  // Violations in document order
	Summary  *DocumentSummary    // Populated on valid documents
	Document *fleet.RootDocument // Typed document, populated on valid documents
}

// HasErrors returns true if there are any validation errors.
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// AddError adds a validation error to the result.
func (r *ValidationResult) AddError(err *ValidationError) {
	r.Errors = append(r.Errors, err)
	r.Valid = false
}

// FirstError returns the first recorded violation, or nil.
func (r *ValidationResult) FirstError() *ValidationError {
	if len(r.Errors) == 0 {
		return nil
	}
	return r.Errors[0]
}
