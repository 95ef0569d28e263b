package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/synthkit/cli/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show CLI version information",
		Long: `Display version information for the synthkit CLI.

Shows the CLI version, build information, and the manifest schema version
this build emits.`,
		RunE: runVersion,
	}
}

func runVersion(cmd *cobra.Command, _ []string) error {
	fmt.Fprintln(cmd.OutOrStdout(), version.GetInfo().String())
	return nil
}
