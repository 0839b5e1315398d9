// Package main implements pipelinectl, a command line client for checking
// pipeline files locally and smoke testing a running pipeline API.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "pipelinectl",
		Short:        "Validate pipeline graphs and smoke test the pipeline API",
		SilenceUsage: true,
	}

	root.AddCommand(newValidateCmd())
	root.AddCommand(newSmokeCmd())

	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
