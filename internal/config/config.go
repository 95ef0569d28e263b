// Package config provides configuration loading and management.
package config

import "github.com/synthkit/cli/internal/core"

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: off unless verbose. Override with --timestamps flag.
	Timestamps *bool `json:"timestamps,omitempty" mapstructure:"timestamps"`
}

// Config represents the synthkit CLI configuration.
// Loaded from ~/.synthkit/config.yaml, merged with SYNTHKIT_* env vars.
type Config struct {
	// Account is the process-wide default account for stacks that neither
	// set one explicitly nor inherit one from a stage.
	// Env: SYNTHKIT_ACCOUNT
	Account string `json:"account,omitempty" mapstructure:"account"`

	// Region is the process-wide default region.
	// Env: SYNTHKIT_REGION
	Region string `json:"region,omitempty" mapstructure:"region"`

	// OutDir is the directory synthesized assemblies are written to.
	// Env: SYNTHKIT_OUT, Default: "synth.out"
	OutDir string `json:"outDir,omitempty" mapstructure:"outDir"`

	// Log contains logging-related settings.
	Log LogConfig `json:"log,omitempty" mapstructure:"log"`
}

// WithDefaults returns a copy with unset fields populated.
func (c *Config) WithDefaults() *Config {
	out := *c
	if out.OutDir == "" {
		out.OutDir = "synth.out"
	}
	return &out
}

// DefaultEnv returns the app-wide default environment described by the
// config, or nil when neither field is set.
func (c *Config) DefaultEnv() *core.Environment {
	if c.Account == "" && c.Region == "" {
		return nil
	}
	return &core.Environment{Account: c.Account, Region: c.Region}
}
