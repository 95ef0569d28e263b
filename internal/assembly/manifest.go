// Package assembly models the output of a synthesis run: rendered
// deployment-unit artifacts, dependency edges, and embedded nested-stage
// manifests.
package assembly

import "github.com/synthkit/cli/internal/core"

// ManifestVersion identifies the manifest schema emitted by this build.
const ManifestVersion = "1.0"

// ArtifactType distinguishes the two artifact kinds in a manifest.
type ArtifactType string

const (
	// ArtifactStack is a rendered deployment unit.
	ArtifactStack ArtifactType = "deployment-unit"

	// ArtifactStage is an embedded nested-stage manifest.
	ArtifactStage ArtifactType = "stage"
)

// Artifact is one entry in a manifest: either a rendered deployment unit
// (Template set) or an embedded stage (Manifest set).
type Artifact struct {
	ID           string            `json:"id"`
	Type         ArtifactType      `json:"type"`
	Environment  *core.Environment `json:"environment,omitempty"`
	Dependencies []string          `json:"dependencies,omitempty"`
	Template     map[string]any    `json:"template,omitempty"`
	Manifest     *Manifest         `json:"manifest,omitempty"`
}

// Manifest is the immutable result of synthesizing one scope. Artifacts
// appear in declaration order; a nested stage's units never appear directly,
// only through the stage's embedded manifest.
type Manifest struct {
	Version   string     `json:"version"`
	Scope     string     `json:"scope,omitempty"`
	Artifacts []Artifact `json:"artifacts"`
}

// Stacks returns the deployment-unit artifacts, in order.
func (m *Manifest) Stacks() []Artifact {
	return m.byType(ArtifactStack)
}

// Stages returns the embedded stage artifacts, in order.
func (m *Manifest) Stages() []Artifact {
	return m.byType(ArtifactStage)
}

// Stack returns the deployment-unit artifact with the given identity, or nil.
func (m *Manifest) Stack(id string) *Artifact {
	for i := range m.Artifacts {
		if m.Artifacts[i].Type == ArtifactStack && m.Artifacts[i].ID == id {
			return &m.Artifacts[i]
		}
	}
	return nil
}

func (m *Manifest) byType(t ArtifactType) []Artifact {
	var out []Artifact
	for _, a := range m.Artifacts {
		if a.Type == t {
			out = append(out, a)
		}
	}
	return out
}

// StackArtifact describes a rendered unit handed to the assembler.
type StackArtifact struct {
	Identity     string
	Environment  core.Environment
	Dependencies []string
	Template     map[string]any
}

// StageArtifact describes a nested manifest handed to the assembler.
type StageArtifact struct {
	Name     string
	Manifest *Manifest
}

// Assemble aggregates rendered units and nested-stage manifests into a
// manifest for the given scope. Pure aggregation: validation has already
// happened by the time artifacts reach the assembler, and declaration order
// is preserved as-is.
func Assemble(scope string, stacks []StackArtifact, stages []StageArtifact) *Manifest {
	m := &Manifest{
		Version:   ManifestVersion,
		Scope:     scope,
		Artifacts: make([]Artifact, 0, len(stacks)+len(stages)),
	}
	for _, s := range stacks {
		env := s.Environment
		m.Artifacts = append(m.Artifacts, Artifact{
			ID:           s.Identity,
			Type:         ArtifactStack,
			Environment:  &env,
			Dependencies: s.Dependencies,
			Template:     s.Template,
		})
	}
	for _, s := range stages {
		m.Artifacts = append(m.Artifacts, Artifact{
			ID:       s.Name,
			Type:     ArtifactStage,
			Manifest: s.Manifest,
		})
	}
	return m
}
