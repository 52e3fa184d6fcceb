// Package check runs the discover, validate and report pipeline over a
// fleet directory tree.
package check

import (
	"context"
	"fmt"

	"github.com/catenarytransit/fleetcheck/internal/report"
	"github.com/catenarytransit/fleetcheck/internal/validation"
	"github.com/rs/zerolog"
)

// Finder lists the files to check beneath root.
type Finder interface {
	Discover(root string) ([]string, error)
}

// Validator checks a single file.
type Validator interface {
	Validate(path string) *validation.ValidationResult
}

// Reporter receives the outcome of each file.
type Reporter interface {
	Checking(path string)
	Result(path string, result *validation.ValidationResult)
	Totals(t report.Totals)
}

// Progress is shown while discovery runs.
type Progress interface {
	Start(msg string)
	Stop()
}

// Pipeline checks every discovered file in order, one at a time.
type Pipeline struct {
	finder    Finder
	validator Validator
	reporter  Reporter
	progress  Progress
	logger    zerolog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithProgress shows p while the tree is scanned.
func WithProgress(p Progress) Option {
	return func(pl *Pipeline) {
		pl.progress = p
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(pl *Pipeline) {
		pl.logger = logger
	}
}

// New creates a Pipeline.
func New(finder Finder, validator Validator, reporter Reporter, opts ...Option) *Pipeline {
	p := &Pipeline{
		finder:    finder,
		validator: validator,
		reporter:  reporter,
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run discovers files under root and reports each one. A discovery failure
// stops the run before any file is reported. Invalid files never produce an
// error; they are counted in the returned totals.
func (p *Pipeline) Run(ctx context.Context, root string) (report.Totals, error) {
	var totals report.Totals

	if p.progress != nil {
		p.progress.Start(fmt.Sprintf("Scanning %s", root))
	}
	paths, err := p.finder.Discover(root)
	if p.progress != nil {
		p.progress.Stop()
	}
	if err != nil {
		return totals, err
	}
	p.logger.Debug().Str("root", root).Int("files", len(paths)).Msg("discovery complete")

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return totals, fmt.Errorf("check interrupted before %s: %w", path, err)
		}

		p.reporter.Checking(path)
		result := p.validator.Validate(path)
		p.reporter.Result(path, result)

		if result.Valid {
			totals.Valid++
		} else {
			totals.Invalid++
			p.logger.Debug().Str("path", path).Int("errors", len(result.Errors)).Msg("file invalid")
		}
	}

	p.reporter.Totals(totals)
	return totals, nil
}
