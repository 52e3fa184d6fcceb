package cli

import (
	"fmt"

	"github.com/catenarytransit/fleetcheck/internal/cli/shared"
	"github.com/catenarytransit/fleetcheck/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Show every configuration key with its effective value.

Values come from defaults, then the config file (default .fleetcheck.json),
then FLEETCHECK_* environment variables.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			return shared.NewExitError(shared.ExitConfigInvalid)
		}
		values := configValues(cfg)
		out := cmd.OutOrStdout()
		for _, key := range config.SortedKeys() {
			fmt.Fprintf(out, "%-22s %-6v %s\n", key, values[key], config.KnownKeys[key].Description)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func configValues(cfg *config.Configuration) map[string]interface{} {
	return map[string]interface{}{
		"log_level":             cfg.LogLevel,
		"log_format":            cfg.LogFormat,
		"debug":                 cfg.Debug,
		"no_color":              cfg.NoColor,
		"show_summary":          cfg.ShowSummary,
		"verbose":               cfg.Verbose,
		"fail_on_invalid":       cfg.FailOnInvalid,
		"strict_unknown_fields": cfg.StrictUnknownFields,
		"progress":              cfg.Progress,
	}
}
