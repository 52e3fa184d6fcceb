package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/catenarytransit/fleetcheck/internal/check"
	"github.com/catenarytransit/fleetcheck/internal/cli/shared"
	"github.com/catenarytransit/fleetcheck/internal/config"
	"github.com/catenarytransit/fleetcheck/internal/discovery"
	"github.com/catenarytransit/fleetcheck/internal/logging"
	"github.com/catenarytransit/fleetcheck/internal/progress"
	"github.com/catenarytransit/fleetcheck/internal/report"
	"github.com/catenarytransit/fleetcheck/internal/validation"
)

// streams bundles the output writers with their detected capabilities.
type streams struct {
	out     io.Writer
	errOut  io.Writer
	outCaps progress.TerminalCapabilities
	errCaps progress.TerminalCapabilities
}

func terminalStreams(cmd interface {
	OutOrStdout() io.Writer
	ErrOrStderr() io.Writer
}) streams {
	s := streams{out: cmd.OutOrStdout(), errOut: cmd.ErrOrStderr()}
	if f, ok := s.out.(*os.File); ok {
		s.outCaps = progress.DetectTerminalCapabilities(f)
	}
	if f, ok := s.errOut.(*os.File); ok {
		s.errCaps = progress.DetectTerminalCapabilities(f)
	}
	return s
}

// runCheck validates every fleet file under root and maps the outcome to an
// exit status.
func runCheck(ctx context.Context, cfg *config.Configuration, root string, s streams) error {
	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.EffectiveLogLevel()
	if cfg.LogFormat != "" {
		logCfg.Format = cfg.LogFormat
	}
	logCfg.NoColor = cfg.NoColor || !s.errCaps.SupportsColor
	logger := logging.New(logCfg, s.errOut)

	opts := report.Options{
		Color:       !cfg.NoColor && s.outCaps.SupportsColor,
		Verbose:     cfg.Verbose,
		ShowSummary: cfg.ShowSummary,
	}
	if s.outCaps.IsTTY {
		symbols := progress.SelectSymbols(s.outCaps)
		opts.Checkmark = symbols.Checkmark
		opts.Failure = symbols.Failure
	}

	policy := validation.UnknownFieldsIgnore
	if cfg.StrictUnknownFields {
		policy = validation.UnknownFieldsReject
	}

	pipelineOpts := []check.Option{check.WithLogger(logging.WithComponent(logger, "check"))}
	if cfg.Progress {
		pipelineOpts = append(pipelineOpts, check.WithProgress(progress.NewScanDisplay(s.errCaps, s.errOut)))
	}

	validator := validation.NewFleetValidator(validation.WithUnknownFieldPolicy(policy))
	pipeline := check.New(
		discovery.New(discovery.DefaultExtension, logger),
		validator,
		report.New(s.out, opts),
		pipelineOpts...,
	)

	logger.Debug().
		Str("root", root).
		Str("unknown_fields", validator.UnknownFields().String()).
		Bool("fail_on_invalid", cfg.FailOnInvalid).
		Msg("starting check")

	totals, err := pipeline.Run(ctx, root)
	if err != nil {
		fmt.Fprintf(s.errOut, "Error: %v\n", err)
		if discovery.IsDiscoveryError(err) {
			return shared.NewExitError(shared.ExitDiscoveryFailed)
		}
		return shared.NewExitError(shared.ExitInvalidFiles)
	}

	if cfg.FailOnInvalid && totals.Invalid > 0 {
		return shared.NewExitError(shared.ExitInvalidFiles)
	}
	return nil
}
