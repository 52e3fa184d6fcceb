package cli

import (
	"github.com/catenarytransit/fleetcheck/internal/cli/shared"
)

// Exit codes for the fleetcheck CLI (re-exported from shared)
const (
	// ExitSuccess indicates the run completed
	ExitSuccess = shared.ExitSuccess

	// ExitInvalidFiles indicates invalid files with --fail-on-invalid, or an interrupted run
	ExitInvalidFiles = shared.ExitInvalidFiles

	// ExitDiscoveryFailed indicates a directory could not be listed
	ExitDiscoveryFailed = shared.ExitDiscoveryFailed

	// ExitConfigInvalid indicates the configuration could not be loaded
	ExitConfigInvalid = shared.ExitConfigInvalid
)

// NewExitError creates a new exit error with the given code (re-exported from shared).
func NewExitError(code int) error {
	return shared.NewExitError(code)
}

// ExitCode returns the exit code from an error (re-exported from shared).
func ExitCode(err error) int {
	return shared.ExitCode(err)
}
