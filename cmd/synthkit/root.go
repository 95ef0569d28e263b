package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/synthkit/cli/internal/config"
	"github.com/synthkit/cli/internal/output"
	"github.com/synthkit/cli/internal/version"
)

var (
	// Global flags
	flagConfig     string
	flagVerbose    bool
	flagTimestamps bool

	// globalCfg is loaded once by initializeGlobals and read by subcommands.
	globalCfg *config.Config
)

// rootCmd is the base command for the synthkit CLI.
var rootCmd = &cobra.Command{
	Use:   "synthkit",
	Short: "Construct tree synthesis CLI",
	Long: `synthkit compiles declarative app blueprints into deployment manifests.

It provides commands to:
  - Synthesize a blueprint into a manifest or assembly directory
  - Diff two synthesized manifests
  - Show version information`,
	PersistentPreRunE: initializeGlobals,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "path to config file (env: SYNTHKIT_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "increase output verbosity")
	rootCmd.PersistentFlags().BoolVar(&flagTimestamps, "timestamps", false, "show timestamps in log output")

	// Add subcommands
	rootCmd.AddCommand(newSynthCmd())
	rootCmd.AddCommand(newDiffCmd())
	rootCmd.AddCommand(newVersionCmd())
}

// initializeGlobals sets up logging and config based on global flags.
func initializeGlobals(cmd *cobra.Command, _ []string) error {
	logCfg := output.LogConfig{Verbose: flagVerbose}
	if cmd.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(flagTimestamps)
	}
	output.SetupLogging(logCfg)

	cfg, err := config.NewLoader().LoadWithDefaults(GetConfigFile())
	if err != nil {
		return err
	}
	globalCfg = cfg

	info := version.GetInfo()
	output.Debug("synthkit started",
		"version", info.Version,
		"manifest_schema", info.ManifestVersion,
	)
	return nil
}

// GetConfigFile returns the config file path from flags or environment.
func GetConfigFile() string {
	if flagConfig != "" {
		return flagConfig
	}
	if env := os.Getenv("SYNTHKIT_CONFIG"); env != "" {
		return env
	}
	return ""
}
