// Package report tests console output for validation outcomes.
// Related: internal/report/report.go
// Tags: report, output, console, color, summary
package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/catenarytransit/fleetcheck/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func invalidResult(errs ...*validation.ValidationError) *validation.ValidationResult {
	r := &validation.ValidationResult{Valid: true}
	for _, e := range errs {
		r.AddError(e)
	}
	return r
}

func TestReporter_TwoLinesPerFile(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		result   *validation.ValidationResult
		wantLine string
	}{
		"valid file": {
			result:   &validation.ValidationResult{Valid: true},
			wantLine: "File vehicles/acme.json is valid",
		},
		"invalid file": {
			result: invalidResult(&validation.ValidationError{
				Path:    "vehicles[0].manufacturer",
				Line:    1,
				Column:  14,
				Message: "missing required field: manufacturer",
			}),
			wantLine: "File vehicles/acme.json is invalid: line 1:14: vehicles[0].manufacturer: missing required field: manufacturer",
		},
		"invalid file with several errors": {
			result: invalidResult(
				&validation.ValidationError{Path: "vehicles", Message: "type mismatch", Expected: "array", Actual: "null"},
				&validation.ValidationError{Path: "other", Message: "second"},
				&validation.ValidationError{Path: "third", Message: "third"},
			),
			wantLine: "File vehicles/acme.json is invalid: vehicles: type mismatch (expected array, found null) (and 2 more)",
		},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			r := New(&buf, Options{})
			r.Checking("vehicles/acme.json")
			r.Result("vehicles/acme.json", tc.result)

			lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
			require.Len(t, lines, 2)
			assert.Equal(t, "Checking file vehicles/acme.json", lines[0])
			assert.Equal(t, tc.wantLine, lines[1])
		})
	}
}

func TestReporter_Summary(t *testing.T) {
	t.Parallel()

	result := &validation.ValidationResult{
		Valid:   true,
		Summary: &validation.DocumentSummary{Counts: map[string]int{"vehicles": 2, "roster_entries": 7}},
	}

	var quiet bytes.Buffer
	New(&quiet, Options{}).Result("a.json", result)
	assert.Equal(t, "File a.json is valid\n", quiet.String())

	var withSummary bytes.Buffer
	New(&withSummary, Options{ShowSummary: true}).Result("a.json", result)
	assert.Equal(t, "File a.json is valid (roster entries: 7, vehicles: 2)\n", withSummary.String())
}

func TestReporter_Verbose(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	New(&buf, Options{Verbose: true}).Result("a.json", invalidResult(
		&validation.ValidationError{Path: "vehicles[0].model", Line: 3, Message: "type mismatch", Expected: "string", Actual: "integer 4", Hint: "Quote the model"},
	))

	out := buf.String()
	assert.Contains(t, out, "File a.json is invalid:")
	assert.Contains(t, out, "Error 1:\n")
	assert.Contains(t, out, "  Path: vehicles[0].model\n")
	assert.Contains(t, out, "  Got: integer 4\n")
	assert.Contains(t, out, "Hint: Quote the model")
}

func TestReporter_ColorMarks(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	r := New(&buf, Options{Color: true, Checkmark: "✓", Failure: "✗"})
	r.Result("a.json", &validation.ValidationResult{Valid: true})
	r.Result("b.json", invalidResult(&validation.ValidationError{Message: "bad"}))

	out := buf.String()
	assert.Contains(t, out, "✓")
	assert.Contains(t, out, "✗")
	assert.Contains(t, out, "\x1b[")

	var plain bytes.Buffer
	New(&plain, Options{Checkmark: "[OK]"}).Result("a.json", &validation.ValidationResult{Valid: true})
	assert.Equal(t, "[OK] File a.json is valid\n", plain.String())
}

func TestReporter_Totals(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	New(&buf, Options{}).Totals(Totals{Valid: 3, Invalid: 1})
	assert.Equal(t, "Checked 4 file(s): 3 valid, 1 invalid\n", buf.String())
}
