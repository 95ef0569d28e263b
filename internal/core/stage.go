package core

import "strings"

// StageProps configures an isolation stage.
type StageProps struct {
	// Env is inherited, field by field, by descendant stacks that do not
	// override the corresponding field.
	Env Environment
}

// Stage is a synthesis boundary. Everything beneath a stage is compiled into
// the stage's own nested manifest and never appears directly in an
// ancestor's manifest.
type Stage struct {
	node *Node
	env  Environment

	// manifest is the nested assembly produced by the stage's own synthesis
	// run. Opaque here; the engine sets it and the assembler embeds it.
	manifest any
}

// NewStage creates an isolation stage under scope.
func NewStage(scope Construct, id string, props StageProps) (*Stage, error) {
	s := &Stage{env: props.Env}
	n, err := attach(scope, id, s, KindStage)
	if err != nil {
		return nil, err
	}
	s.node = n
	return s, nil
}

// Node returns the tree node backing this construct.
func (s *Stage) Node() *Node { return s.node }

// Env returns the stage's explicit environment. Empty fields inherit.
func (s *Stage) Env() Environment { return s.env }

// StageName returns the stage's qualified name: the names of all enclosing
// stages plus its own, joined with "-", outermost first. Nested stages
// therefore compose hierarchical prefixes for their stacks' identities.
func (s *Stage) StageName() string {
	var parts []string
	for _, outer := range enclosingStages(s.node) {
		parts = append(parts, outer.node.id)
	}
	parts = append(parts, s.node.id)
	return strings.Join(parts, "-")
}

// SetManifest records the nested manifest produced by synthesizing this
// stage. Called by the engine; the value is opaque to the tree.
func (s *Stage) SetManifest(m any) { s.manifest = m }

// Manifest returns the nested manifest from the stage's most recent
// synthesis run, or nil if the stage has not been synthesized.
func (s *Stage) Manifest() any { return s.manifest }
