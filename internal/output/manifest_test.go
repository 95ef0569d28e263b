package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sigs.k8s.io/yaml"

	"github.com/synthkit/cli/internal/assembly"
	"github.com/synthkit/cli/internal/core"
)

func sampleManifest() *assembly.Manifest {
	return assembly.Assemble("", []assembly.StackArtifact{
		{
			Identity:    "Stack1",
			Environment: core.Environment{Account: "acct", Region: "region"},
			Template:    map[string]any{"identity": "Stack1"},
		},
	}, nil)
}

func TestWriteManifestYAML(t *testing.T) {
	var buf bytes.Buffer
	err := WriteManifest(sampleManifest(), ManifestOptions{Format: FormatYAML, Writer: &buf})
	require.NoError(t, err)

	var loaded assembly.Manifest
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &loaded))
	assert.Equal(t, assembly.ManifestVersion, loaded.Version)
	require.Len(t, loaded.Artifacts, 1)
	assert.Equal(t, "Stack1", loaded.Artifacts[0].ID)
}

func TestWriteManifestJSON(t *testing.T) {
	var buf bytes.Buffer
	err := WriteManifest(sampleManifest(), ManifestOptions{Format: FormatJSON, Writer: &buf})
	require.NoError(t, err)

	var loaded assembly.Manifest
	require.NoError(t, json.Unmarshal(buf.Bytes(), &loaded))
	assert.Equal(t, "Stack1", loaded.Artifacts[0].ID)
}

func TestWriteManifestNil(t *testing.T) {
	var buf bytes.Buffer
	err := WriteManifest(nil, ManifestOptions{Format: FormatYAML, Writer: &buf})
	assert.Error(t, err)
}
