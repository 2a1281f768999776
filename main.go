package main

import (
	"os"

	"github.com/noelruault/ecsh/internal/cli"
)

// Entry point - errors are printed by the command itself
func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
