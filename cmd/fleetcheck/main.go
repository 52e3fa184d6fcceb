// fleetcheck - vehicle fleet roster validator

package main

import (
	"os"

	"github.com/catenarytransit/fleetcheck/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
