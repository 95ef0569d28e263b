package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/synthkit/cli/internal/output"
)

func newDiffCmd() *cobra.Command {
	var exitCode bool

	c := &cobra.Command{
		Use:   "diff <old-manifest> <new-manifest>",
		Short: "Compare two synthesized manifests",
		Long: `Compare two manifest files and print a YAML-aware diff.

Examples:
  # Compare the previous assembly against a fresh one
  synthkit diff synth.out/manifest.yaml next.out/manifest.yaml

  # Exit with code 3 when the manifests differ
  synthkit diff old.yaml new.yaml --exit-code`,
		Args: cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			return runDiff(args[0], args[1], exitCode)
		},
	}

	c.Flags().BoolVar(&exitCode, "exit-code", false,
		"Exit with a non-zero code when the manifests differ")
	return c
}

func runDiff(oldPath, newPath string, exitCode bool) error {
	result, err := output.DiffManifestFiles(oldPath, newPath, output.IsTTY())
	if err != nil {
		return err
	}

	styles := output.GetStyles()
	if !result.HasChanges {
		output.Println(output.FormatCheckmark(result.Summary()))
		return nil
	}

	output.Println(styles.Summary.Render(result.Summary()))
	output.Print(output.IndentDiff(result.Report, "  "))

	if exitCode {
		return &ExitError{
			Err:     fmt.Errorf("manifests %s and %s differ", oldPath, newPath),
			Code:    ExitDiffChanges,
			Printed: true,
		}
	}
	return nil
}
