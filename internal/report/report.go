// Package report prints per-file validation outcomes to the console.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/catenarytransit/fleetcheck/internal/validation"
	"github.com/fatih/color"
)

// Options controls reporter output.
type Options struct {
	Color       bool   // colorize marks and hints
	Checkmark   string // prefix for valid lines, empty for none
	Failure     string // prefix for invalid lines, empty for none
	Verbose     bool   // print every diagnostic in full after an invalid line
	ShowSummary bool   // append document counts to valid lines
}

// Totals tallies outcomes over a run.
type Totals struct {
	Valid   int
	Invalid int
}

// Files returns the number of files reported.
func (t Totals) Files() int {
	return t.Valid + t.Invalid
}

// Reporter writes the console lines for each checked file.
type Reporter struct {
	out    io.Writer
	opts   Options
	green  *color.Color
	red    *color.Color
	yellow *color.Color
}

// New creates a Reporter writing to out.
func New(out io.Writer, opts Options) *Reporter {
	r := &Reporter{
		out:    out,
		opts:   opts,
		green:  color.New(color.FgGreen),
		red:    color.New(color.FgRed),
		yellow: color.New(color.FgYellow),
	}
	for _, c := range []*color.Color{r.green, r.red, r.yellow} {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

// Checking announces the file about to be validated.
func (r *Reporter) Checking(path string) {
	fmt.Fprintf(r.out, "Checking file %s\n", path)
}

// Result prints the outcome line for path.
func (r *Reporter) Result(path string, result *validation.ValidationResult) {
	if result.Valid {
		fmt.Fprintf(r.out, "%sFile %s is valid%s\n", r.mark(r.green, r.opts.Checkmark), path, r.summary(result.Summary))
		return
	}

	first := result.FirstError()
	diagnostic := "unknown error"
	if first != nil {
		diagnostic = first.Error()
	}
	if more := len(result.Errors) - 1; more > 0 {
		diagnostic = fmt.Sprintf("%s (and %d more)", diagnostic, more)
	}
	fmt.Fprintf(r.out, "%sFile %s is invalid: %s\n", r.mark(r.red, r.opts.Failure), path, diagnostic)

	if !r.opts.Verbose {
		return
	}
	for i, err := range result.Errors {
		fmt.Fprintf(r.out, "Error %d:\n", i+1)
		full := err.FormatFull()
		if err.Hint != "" {
			full = strings.Replace(full, "  Hint:", "  "+r.yellow.Sprint("Hint:"), 1)
		}
		fmt.Fprint(r.out, full)
	}
}

// Totals prints the closing tally.
func (r *Reporter) Totals(t Totals) {
	fmt.Fprintf(r.out, "Checked %d file(s): %d valid, %d invalid\n", t.Files(), t.Valid, t.Invalid)
}

func (r *Reporter) mark(c *color.Color, symbol string) string {
	if symbol == "" {
		return ""
	}
	return c.Sprint(symbol) + " "
}

func (r *Reporter) summary(s *validation.DocumentSummary) string {
	if !r.opts.ShowSummary || s == nil {
		return ""
	}
	parts := make([]string, 0, len(s.Counts))
	for _, key := range s.Keys() {
		parts = append(parts, fmt.Sprintf("%s: %d", strings.ReplaceAll(key, "_", " "), s.Counts[key]))
	}
	return " (" + strings.Join(parts, ", ") + ")"
}
