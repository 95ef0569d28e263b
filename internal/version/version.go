// Package version provides version information for the synthkit CLI.
package version

import (
	"fmt"
	"runtime"

	"github.com/synthkit/cli/internal/assembly"
)

// Build-time variables set via ldflags.
var (
	// Version is the CLI version (set via ldflags).
	Version = "v0.0.0-dev"

	// GitCommit is the git commit hash.
	GitCommit = "unknown"

	// BuildDate is the build timestamp.
	BuildDate = "unknown"
)

// ManifestVersion is the manifest schema version this CLI emits.
const ManifestVersion = assembly.ManifestVersion

// Info contains version information.
type Info struct {
	// Version is the CLI version (set via ldflags).
	Version string `json:"version"`

	// GitCommit is the git commit hash.
	GitCommit string `json:"gitCommit"`

	// BuildDate is the build timestamp.
	BuildDate string `json:"buildDate"`

	// GoVersion is the Go version used to build.
	GoVersion string `json:"goVersion"`

	// ManifestVersion is the manifest schema version this build emits.
	ManifestVersion string `json:"manifestVersion"`
}

// GetInfo returns the current version information.
func GetInfo() Info {
	return Info{
		Version:         Version,
		GitCommit:       GitCommit,
		BuildDate:       BuildDate,
		GoVersion:       runtime.Version(),
		ManifestVersion: ManifestVersion,
	}
}

// String returns a human-readable version string.
func (i Info) String() string {
	return fmt.Sprintf("synthkit:\n  Version:  %s\n  Build ID: %s/%s\n  Go:       %s\n\nManifest:\n  Schema Version: %s",
		i.Version, i.BuildDate, i.GitCommit, i.GoVersion, i.ManifestVersion)
}
