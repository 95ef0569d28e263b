package assembly

import (
	"fmt"
	"os"
	"path/filepath"

	"sigs.k8s.io/yaml"
)

const (
	manifestFileName = "manifest.yaml"
	templatesDirName = "templates"
	stagesDirName    = "stages"
)

// Writer persists a manifest to a directory tree:
//
//	<dir>/manifest.yaml
//	<dir>/templates/<identity>.template.yaml
//	<dir>/stages/<stage>/...   (recursively, one subtree per nested manifest)
type Writer struct{}

// NewWriter creates a manifest writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Persist writes the manifest and its unit templates under dir, creating
// the directory if needed. Nested stage manifests recurse into stages/.
func (w *Writer) Persist(m *Manifest, dir string) error {
	if m == nil {
		return fmt.Errorf("cannot persist a nil manifest")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", dir, err)
	}

	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshaling manifest for %s: %w", m.Scope, err)
	}
	if err := os.WriteFile(filepath.Join(dir, manifestFileName), data, 0o644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}

	for _, a := range m.Stacks() {
		if err := w.writeTemplate(a, dir); err != nil {
			return err
		}
	}
	for _, a := range m.Stages() {
		nested := filepath.Join(dir, stagesDirName, a.ID)
		if err := w.Persist(a.Manifest, nested); err != nil {
			return fmt.Errorf("persisting nested manifest %s: %w", a.ID, err)
		}
	}
	return nil
}

func (w *Writer) writeTemplate(a Artifact, dir string) error {
	tmplDir := filepath.Join(dir, templatesDirName)
	if err := os.MkdirAll(tmplDir, 0o755); err != nil {
		return fmt.Errorf("creating templates directory: %w", err)
	}
	data, err := yaml.Marshal(a.Template)
	if err != nil {
		return fmt.Errorf("marshaling template for %s: %w", a.ID, err)
	}
	path := filepath.Join(tmplDir, a.ID+".template.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing template for %s: %w", a.ID, err)
	}
	return nil
}
