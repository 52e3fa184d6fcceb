// Package cli provides the Cobra-based fleetcheck command line. The root
// command validates every fleet file beneath the vehicles directory;
// subcommands print the schema, the effective configuration and build info.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/catenarytransit/fleetcheck/internal/cli/shared"
	"github.com/catenarytransit/fleetcheck/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fleetcheck",
	Short: "Validate vehicle fleet roster files",
	Long: `fleetcheck validates vehicle fleet roster files.

Every .json file beneath ./vehicles is checked against the fleet schema.
Each file gets a "Checking file" line followed by a valid or invalid line.
Invalid files do not change the exit status unless --fail-on-invalid is set;
an unreadable directory stops the run with exit status 2.`,
	Example: `  # Check every fleet file
  fleetcheck

  # Fail CI when any file is invalid, with full diagnostics
  fleetcheck --fail-on-invalid --verbose

  # Show the fleet schema
  fleetcheck schema`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

// Execute runs the root command with a context cancelled on interrupt.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil && !shared.IsExitError(err) {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", config.LocalConfigFile, "Path to config file")
	shared.AddCheckFlags(rootCmd)
}

// loadConfig loads the config file named by --config and applies flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Configuration, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	shared.ApplyFlagOverrides(cmd, cfg)
	return cfg, nil
}

func runRoot(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return shared.NewExitError(shared.ExitConfigInvalid)
	}
	return runCheck(cmd.Context(), cfg, shared.DefaultRoot, terminalStreams(cmd))
}
