package shared

import (
	"github.com/catenarytransit/fleetcheck/internal/config"
	"github.com/spf13/cobra"
)

// Flag names shared by commands that run a check.
const (
	DebugFlagName         = "debug"
	VerboseFlagName       = "verbose"
	NoColorFlagName       = "no-color"
	SummaryFlagName       = "summary"
	FailOnInvalidFlagName = "fail-on-invalid"
	StrictFlagName        = "strict"
	NoProgressFlagName    = "no-progress"
)

// AddCheckFlags adds the flags that override check settings for a single run.
func AddCheckFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP(DebugFlagName, "d", false, "Enable debug logging")
	cmd.Flags().BoolP(VerboseFlagName, "v", false, "Print every diagnostic of an invalid file")
	cmd.Flags().Bool(NoColorFlagName, false, "Disable colored output")
	cmd.Flags().Bool(SummaryFlagName, false, "Append vehicle and roster counts to valid files")
	cmd.Flags().Bool(FailOnInvalidFlagName, false, "Exit with status 1 when any file is invalid")
	cmd.Flags().Bool(StrictFlagName, false, "Reject fields not declared by the schema")
	cmd.Flags().Bool(NoProgressFlagName, false, "Hide the scanning spinner")
}

// ApplyFlagOverrides updates cfg from flags set on the command line.
// Priority: flag > environment > config file > default.
// Returns the number of overrides applied.
func ApplyFlagOverrides(cmd *cobra.Command, cfg *config.Configuration) int {
	applied := 0
	set := func(name string, apply func(bool)) {
		if !cmd.Flags().Changed(name) {
			return
		}
		v, _ := cmd.Flags().GetBool(name)
		apply(v)
		applied++
	}

	set(DebugFlagName, func(v bool) { cfg.Debug = v })
	set(VerboseFlagName, func(v bool) { cfg.Verbose = v })
	set(NoColorFlagName, func(v bool) { cfg.NoColor = v })
	set(SummaryFlagName, func(v bool) { cfg.ShowSummary = v })
	set(FailOnInvalidFlagName, func(v bool) { cfg.FailOnInvalid = v })
	set(StrictFlagName, func(v bool) { cfg.StrictUnknownFields = v })
	set(NoProgressFlagName, func(v bool) { cfg.Progress = !v })
	return applied
}
