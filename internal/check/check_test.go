// Package check tests the sequential discover, validate and report pipeline.
// Related: internal/check/check.go
// Tags: check, pipeline, discovery, validation, report, exit
package check

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/catenarytransit/fleetcheck/internal/discovery"
	"github.com/catenarytransit/fleetcheck/internal/report"
	"github.com/catenarytransit/fleetcheck/internal/testutil"
	"github.com/catenarytransit/fleetcheck/internal/validation"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticFinder struct {
	paths []string
	err   error
}

func (f staticFinder) Discover(string) ([]string, error) {
	return f.paths, f.err
}

type recordingValidator struct {
	events  *[]string
	invalid map[string]bool
}

func (v recordingValidator) Validate(path string) *validation.ValidationResult {
	*v.events = append(*v.events, "validate "+path)
	if v.invalid[path] {
		r := &validation.ValidationResult{}
		r.AddError(&validation.ValidationError{Message: "bad"})
		return r
	}
	return &validation.ValidationResult{Valid: true}
}

type recordingReporter struct {
	events *[]string
}

func (r recordingReporter) Checking(path string) {
	*r.events = append(*r.events, "checking "+path)
}

func (r recordingReporter) Result(path string, result *validation.ValidationResult) {
	state := "valid"
	if !result.Valid {
		state = "invalid"
	}
	*r.events = append(*r.events, "result "+path+" "+state)
}

func (r recordingReporter) Totals(t report.Totals) {
	*r.events = append(*r.events, "totals")
}

type recordingProgress struct {
	events *[]string
}

func (p recordingProgress) Start(msg string) { *p.events = append(*p.events, "start "+msg) }
func (p recordingProgress) Stop()            { *p.events = append(*p.events, "stop") }

func TestPipeline_Order(t *testing.T) {
	t.Parallel()

	var events []string
	p := New(
		staticFinder{paths: []string{"vehicles/a.json", "vehicles/b.json"}},
		recordingValidator{events: &events, invalid: map[string]bool{"vehicles/a.json": true}},
		recordingReporter{events: &events},
		WithProgress(recordingProgress{events: &events}),
		WithLogger(zerolog.Nop()),
	)

	totals, err := p.Run(context.Background(), "vehicles")
	require.NoError(t, err)
	assert.Equal(t, report.Totals{Valid: 1, Invalid: 1}, totals)
	assert.Equal(t, []string{
		"start Scanning vehicles",
		"stop",
		"checking vehicles/a.json",
		"validate vehicles/a.json",
		"result vehicles/a.json invalid",
		"checking vehicles/b.json",
		"validate vehicles/b.json",
		"result vehicles/b.json valid",
		"totals",
	}, events)
}

func TestPipeline_DiscoveryFailureReportsNothing(t *testing.T) {
	t.Parallel()

	var events []string
	discoveryErr := &discovery.Error{Dir: "vehicles/x", Err: os.ErrPermission}
	p := New(
		staticFinder{err: discoveryErr},
		recordingValidator{events: &events},
		recordingReporter{events: &events},
		WithProgress(recordingProgress{events: &events}),
	)

	totals, err := p.Run(context.Background(), "vehicles")
	require.Error(t, err)
	assert.True(t, discovery.IsDiscoveryError(err))
	assert.Zero(t, totals.Files())
	assert.Equal(t, []string{"start Scanning vehicles", "stop"}, events)
}

func TestPipeline_EmptyTree(t *testing.T) {
	t.Parallel()

	var events []string
	p := New(staticFinder{}, recordingValidator{events: &events}, recordingReporter{events: &events})

	totals, err := p.Run(context.Background(), "vehicles")
	require.NoError(t, err)
	assert.Zero(t, totals.Files())
	assert.Equal(t, []string{"totals"}, events)
}

func TestPipeline_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var events []string
	p := New(
		staticFinder{paths: []string{"vehicles/a.json"}},
		recordingValidator{events: &events},
		recordingReporter{events: &events},
	)

	_, err := p.Run(ctx, "vehicles")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Empty(t, events)
}

func TestPipeline_EndToEnd(t *testing.T) {
	t.Parallel()

	root := testutil.WriteTree(t, filepath.Join(t.TempDir(), "vehicles"), map[string]string{
		"acme.json":              testutil.FleetJSON(),
		"broken.json":            `{"vehicles": [`,
		"nested/deep/gamma.json": testutil.FleetJSON(testutil.WithManufacturer("Gamma"), testutil.Without("model"), testutil.WithRoster()),
		"notes.txt":              "ignored",
	})

	var out bytes.Buffer
	p := New(
		discovery.New(discovery.DefaultExtension, zerolog.Nop()),
		validation.NewFleetValidator(),
		report.New(&out, report.Options{}),
	)

	totals, err := p.Run(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, report.Totals{Valid: 1, Invalid: 2}, totals)

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, 7)

	acme := filepath.Join(root, "acme.json")
	broken := filepath.Join(root, "broken.json")
	gamma := filepath.Join(root, "nested", "deep", "gamma.json")

	assert.Equal(t, "Checking file "+acme, lines[0])
	assert.Equal(t, "File "+acme+" is valid", lines[1])
	assert.Equal(t, "Checking file "+broken, lines[2])
	assert.True(t, strings.HasPrefix(lines[3], "File "+broken+" is invalid: "), lines[3])
	assert.Contains(t, lines[3], "failed to parse JSON")
	assert.Equal(t, "Checking file "+gamma, lines[4])
	assert.True(t, strings.HasPrefix(lines[5], "File "+gamma+" is invalid: "), lines[5])
	assert.Contains(t, lines[5], "missing required field: model")
	assert.Equal(t, "Checked 3 file(s): 1 valid, 2 invalid", lines[6])
}

func TestPipeline_Idempotent(t *testing.T) {
	t.Parallel()

	root := testutil.WriteTree(t, filepath.Join(t.TempDir(), "vehicles"), map[string]string{
		"acme.json":           testutil.FleetJSON(),
		"broken.json":         `{"vehicles": [`,
		"east/bolt.json":      testutil.FleetJSON(testutil.WithManufacturer("Bolt"), testutil.Without("roster")),
		"east/west/tram.json": testutil.FleetJSON(testutil.WithModel("T2")),
	})

	run := func() (report.Totals, string) {
		var out bytes.Buffer
		p := New(
			discovery.New(discovery.DefaultExtension, zerolog.Nop()),
			validation.NewFleetValidator(),
			report.New(&out, report.Options{Verbose: true, ShowSummary: true}),
		)
		totals, err := p.Run(context.Background(), root)
		require.NoError(t, err)
		return totals, out.String()
	}

	firstTotals, firstOut := run()
	secondTotals, secondOut := run()

	assert.Equal(t, report.Totals{Valid: 2, Invalid: 2}, firstTotals)
	assert.Equal(t, firstTotals, secondTotals)
	assert.Equal(t, firstOut, secondOut)
}

func TestPipeline_MissingRoot(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	p := New(
		discovery.New(discovery.DefaultExtension, zerolog.Nop()),
		validation.NewFleetValidator(),
		report.New(&out, report.Options{}),
	)

	_, err := p.Run(context.Background(), filepath.Join(t.TempDir(), "vehicles"))
	require.Error(t, err)
	assert.True(t, discovery.IsNotExist(err))
	assert.Empty(t, out.String())
}
