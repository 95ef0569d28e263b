// Package engine orchestrates synthesis: the two-phase prepare-then-emit
// pipeline that compiles a construct scope into a deployment manifest.
package engine

import (
	"fmt"

	"github.com/synthkit/cli/internal/assembly"
	"github.com/synthkit/cli/internal/core"
	"github.com/synthkit/cli/internal/dag"
	"github.com/synthkit/cli/internal/output"
	"github.com/synthkit/cli/internal/render"
)

// Engine runs one synthesis pass over a scope. Engines are single-use:
// create one per Synthesize call. Re-running synthesis on an unchanged tree
// with a fresh engine produces a structurally identical manifest; nothing
// is cached across runs.
type Engine struct {
	renderer render.Renderer
	state    State
}

// New creates an engine that renders stacks with the given renderer.
func New(renderer render.Renderer) *Engine {
	return &Engine{renderer: renderer, state: StateIdle}
}

// Synth synthesizes a scope with the default template renderer.
func Synth(scope core.Construct) (*assembly.Manifest, error) {
	return New(render.NewTemplateRenderer()).Synthesize(scope)
}

// State returns the engine's current lifecycle state.
func (e *Engine) State() State { return e.state }

// Synthesize compiles the subtree rooted at scope into a manifest. The
// scope must be the root app or an isolation stage. Any error leaves the
// engine in the Failed state and produces no manifest, partial or
// otherwise.
func (e *Engine) Synthesize(scope core.Construct) (*assembly.Manifest, error) {
	if e.state != StateIdle {
		prior := e.state
		e.state = StateFailed
		return nil, &core.InvalidLifecycleStateError{Op: fmt.Sprintf("synthesize (engine is %s)", prior)}
	}
	if scope == nil {
		e.state = StateFailed
		return nil, fmt.Errorf("cannot synthesize a nil scope")
	}
	kind := scope.Node().Kind()
	if kind != core.KindApp && kind != core.KindStage {
		e.state = StateFailed
		return nil, fmt.Errorf("synthesis scope must be the app or a stage, got %s %q", kind, scope.Node().Path())
	}

	scopeName := describeScope(scope)
	output.Debug("synthesis started", "scope", scopeName)

	e.state = StatePreparing
	if err := prepareNode(scope, nil); err != nil {
		e.state = StateFailed
		return nil, err
	}

	e.state = StateValidating
	// A nested run arrives with the subtree already locked by its parent;
	// in that case the parent owns the unlock.
	ownsLock := !scope.Node().Locked()
	if ownsLock {
		scope.Node().Lock()
		defer scope.Node().Unlock()
	}
	stacks := inScopeStacks(scope)
	if err := validateDependencies(stacks); err != nil {
		e.state = StateFailed
		return nil, err
	}

	e.state = StateRendering
	stackArtifacts := make([]assembly.StackArtifact, 0, len(stacks))
	for _, s := range stacks {
		payload, err := e.renderer.Render(s)
		if err != nil {
			e.state = StateFailed
			return nil, err
		}
		stackArtifacts = append(stackArtifacts, assembly.StackArtifact{
			Identity:     s.Identity(),
			Environment:  s.Environment(),
			Dependencies: s.DependencyIdentities(),
			Template:     payload.Object,
		})
	}

	stages := inScopeStages(scope)
	stageArtifacts := make([]assembly.StageArtifact, 0, len(stages))
	for _, st := range stages {
		nested, err := New(e.renderer).Synthesize(st)
		if err != nil {
			e.state = StateFailed
			return nil, err
		}
		st.SetManifest(nested)
		stageArtifacts = append(stageArtifacts, assembly.StageArtifact{
			Name:     st.StageName(),
			Manifest: nested,
		})
	}

	m := assembly.Assemble(scopeName, stackArtifacts, stageArtifacts)
	e.state = StateAssembled
	output.Debug("synthesis assembled",
		"scope", scopeName,
		"stacks", len(stackArtifacts),
		"stages", len(stageArtifacts),
	)
	return m, nil
}

// prepareNode runs the post-order prepare walk: every child is fully
// prepared before its parent's hook runs. Aspects inherited from ancestors
// within the scope run first (attachment order, ancestor before
// descendant), then the node's own aspects, then its Prepare hook. Child
// stages are skipped entirely; a stage's subtree is prepared by the stage's
// own synthesis run, which also bounds aspect propagation.
func prepareNode(c core.Construct, inherited []core.Aspect) error {
	n := c.Node()
	aspects := make([]core.Aspect, 0, len(inherited)+len(n.Aspects()))
	aspects = append(aspects, inherited...)
	aspects = append(aspects, n.Aspects()...)

	for _, child := range n.Children() {
		if child.Node().Kind() == core.KindStage {
			continue
		}
		if err := prepareNode(child, aspects); err != nil {
			return err
		}
	}

	for _, a := range aspects {
		if err := a.Visit(c); err != nil {
			return fmt.Errorf("aspect failed at %q: %w", n.Path(), err)
		}
	}
	if p, ok := c.(core.Preparer); ok {
		if err := p.Prepare(); err != nil {
			return err
		}
	}
	return nil
}

// validateDependencies re-checks every recorded edge against the boundary
// rule (automatic edges surface violations here) and rejects dependency
// cycles among the in-scope stacks.
func validateDependencies(stacks []*core.Stack) error {
	d := dag.NewDirectedAcyclicGraph[string]()
	for i, s := range stacks {
		if err := d.AddVertex(s.Identity(), i); err != nil {
			return err
		}
	}
	for _, s := range stacks {
		for _, edge := range s.Dependencies() {
			if edge.Source.Node().Boundary() != edge.Target.Node().Boundary() {
				return &core.CrossBoundaryDependencyError{
					Source: edge.Source,
					Target: edge.Target,
					Auto:   edge.Auto,
				}
			}
			if err := d.AddDependencies(s.Identity(), []string{edge.Target.Identity()}); err != nil {
				return err
			}
		}
	}
	return nil
}

// inScopeStacks collects the stacks whose nearest enclosing boundary is the
// scope, in declaration order. The walk does not descend into child stages.
func inScopeStacks(scope core.Construct) []*core.Stack {
	var stacks []*core.Stack
	var walk func(c core.Construct)
	walk = func(c core.Construct) {
		for _, child := range c.Node().Children() {
			if child.Node().Kind() == core.KindStage {
				continue
			}
			if s, ok := child.(*core.Stack); ok {
				stacks = append(stacks, s)
			}
			walk(child)
		}
	}
	walk(scope)
	return stacks
}

// inScopeStages collects the stages whose nearest enclosing boundary is the
// scope, in declaration order. Stages nested inside another stage belong to
// that stage's run.
func inScopeStages(scope core.Construct) []*core.Stage {
	var stages []*core.Stage
	var walk func(c core.Construct)
	walk = func(c core.Construct) {
		for _, child := range c.Node().Children() {
			if st, ok := child.(*core.Stage); ok {
				stages = append(stages, st)
				continue
			}
			walk(child)
		}
	}
	walk(scope)
	return stages
}

func describeScope(scope core.Construct) string {
	if st, ok := scope.(*core.Stage); ok {
		return st.StageName()
	}
	return ""
}
