// Package main implements the hub CLI.
package main

import (
	"fmt"
	"os"

	"github.com/fivetwenty-io/hubapi/cmd/hub/commands"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := commands.NewRootCommand(version, commit, date)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
