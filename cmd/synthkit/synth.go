package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"cuelang.org/go/cue/cuecontext"
	"github.com/spf13/cobra"

	"github.com/synthkit/cli/internal/assembly"
	"github.com/synthkit/cli/internal/core"
	"github.com/synthkit/cli/internal/engine"
	"github.com/synthkit/cli/internal/loader"
	"github.com/synthkit/cli/internal/output"
)

func newSynthCmd() *cobra.Command {
	var (
		outputFlag  string
		outDirFlag  string
		accountFlag string
		regionFlag  string
		printTree   bool
		requireEnv  bool
	)

	c := &cobra.Command{
		Use:   "synth <blueprint>",
		Short: "Synthesize a blueprint into a deployment manifest",
		Long: `Compile a blueprint file into a deployment manifest.

The blueprint describes an app: its stages, stacks, resources, and
dependencies. Synthesis builds the construct tree, validates it, and
emits one manifest per isolation boundary.

Examples:
  # Synthesize to stdout as YAML
  synthkit synth app.cue

  # Synthesize to an assembly directory
  synthkit synth app.cue -o dir --out-dir ./synth.out

  # Print the construct tree before synthesizing
  synthkit synth app.cue --print-tree

  # Fail if any stack has an unresolved account or region
  synthkit synth app.cue --require-env`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runSynth(args[0], outputFlag, outDirFlag, accountFlag, regionFlag, printTree, requireEnv)
		},
	}

	c.Flags().StringVarP(&outputFlag, "output", "o", "yaml",
		"Output format: yaml, json, dir")
	c.Flags().StringVar(&outDirFlag, "out-dir", "",
		"Directory for assembly output (default: config outDir)")
	c.Flags().StringVar(&accountFlag, "account", "",
		"Default account for stacks that inherit no other value")
	c.Flags().StringVar(&regionFlag, "region", "",
		"Default region for stacks that inherit no other value")
	c.Flags().BoolVar(&printTree, "print-tree", false,
		"Print the construct tree before synthesizing")
	c.Flags().BoolVar(&requireEnv, "require-env", false,
		"Fail when any stack's account or region is unresolved")
	return c
}

func runSynth(blueprintPath, outputFmt, outDir, account, region string, printTree, requireEnv bool) error {
	ctx := context.Background()

	format := output.OutputFormat(strings.ToLower(outputFmt))
	if !format.IsValid() {
		return NewExitError(
			fmt.Errorf("invalid output format %q (valid: %s)", outputFmt, strings.Join(output.ValidFormats(), ", ")),
			ExitGeneralError)
	}

	bp, err := loader.LoadBlueprint(cuecontext.New(), blueprintPath)
	if err != nil {
		return err
	}

	defaultEnv := globalCfg.DefaultEnv()
	if account != "" || region != "" {
		merged := core.Environment{Account: account, Region: region}
		if defaultEnv != nil {
			if merged.Account == "" {
				merged.Account = defaultEnv.Account
			}
			if merged.Region == "" {
				merged.Region = defaultEnv.Region
			}
		}
		defaultEnv = &merged
	}

	app, err := loader.Build(bp, defaultEnv)
	if err != nil {
		return err
	}

	if printTree {
		output.Print(output.RenderConstructTree(app))
	}

	if requireEnv {
		for _, s := range collectStacks(app) {
			if err := core.RequireResolved(s); err != nil {
				return NewExitError(err, ExitUnresolvedEnvironment)
			}
		}
	}

	var manifest *assembly.Manifest
	err = output.RunWithSpinner(ctx, func() error {
		var synthErr error
		manifest, synthErr = engine.Synth(app)
		return synthErr
	}, output.WithTitle("Synthesizing "+bp.Name+"..."))
	if err != nil {
		return err
	}

	if format == output.FormatDir {
		if outDir == "" {
			outDir = globalCfg.OutDir
		}
		if err := assembly.NewWriter().Persist(manifest, outDir); err != nil {
			return NewExitError(fmt.Errorf("writing assembly: %w", err), ExitGeneralError)
		}
		output.Println(output.FormatCheckmark(fmt.Sprintf(
			"synthesized %d stacks and %d stages to %s",
			len(manifest.Stacks()), len(manifest.Stages()), outDir)))
		return nil
	}

	return output.WriteManifest(manifest, output.ManifestOptions{
		Format: format,
		Writer: os.Stdout,
	})
}

// collectStacks gathers every stack in the tree, stage subtrees included.
func collectStacks(c core.Construct) []*core.Stack {
	var stacks []*core.Stack
	var walk func(core.Construct)
	walk = func(c core.Construct) {
		for _, child := range c.Node().Children() {
			if s, ok := child.(*core.Stack); ok {
				stacks = append(stacks, s)
			}
			walk(child)
		}
	}
	walk(c)
	return stacks
}
