package output

import (
	"encoding/json"
	"fmt"
	"io"

	yamlv3 "gopkg.in/yaml.v3"
	"sigs.k8s.io/yaml"

	"github.com/synthkit/cli/internal/assembly"
)

// ManifestOptions controls manifest output formatting.
type ManifestOptions struct {
	// Format specifies output format: "yaml" or "json".
	Format OutputFormat
	// Writer is the output destination.
	Writer io.Writer
}

// WriteManifest writes a synthesized manifest to the writer in the
// specified format. Artifact order is the manifest's declaration order;
// nothing is re-sorted here.
func WriteManifest(m *assembly.Manifest, opts ManifestOptions) error {
	if m == nil {
		return fmt.Errorf("cannot write a nil manifest")
	}

	switch opts.Format {
	case FormatJSON:
		return writeManifestJSON(m, opts.Writer)
	case FormatYAML, FormatDir:
		return writeManifestYAML(m, opts.Writer)
	}
	return writeManifestYAML(m, opts.Writer) // Default to YAML
}

// writeManifestYAML marshals through sigs.k8s.io/yaml so the JSON struct
// tags drive field names, then re-encodes with the yaml.v3 encoder for
// stable two-space indentation.
func writeManifestYAML(m *assembly.Manifest, w io.Writer) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("re-parsing manifest: %w", err)
	}

	encoder := yamlv3.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("encoding manifest YAML: %w", err)
	}
	return encoder.Close()
}

func writeManifestJSON(m *assembly.Manifest, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(m); err != nil {
		return fmt.Errorf("encoding manifest JSON: %w", err)
	}
	return nil
}
