package core

import (
	"fmt"

	serrors "github.com/synthkit/cli/internal/errors"
)

// CrossBoundaryDependencyError reports a dependency edge whose endpoints
// live under different isolation boundaries. The edge is never recorded.
type CrossBoundaryDependencyError struct {
	Source *Stack
	Target *Stack
	Auto   bool
}

func (e *CrossBoundaryDependencyError) Error() string {
	kind := "dependency"
	if e.Auto {
		kind = "resource reference"
	}
	return fmt.Sprintf(
		"%s from %q (in %s) to %q (in %s): dependency cannot cross stage boundaries",
		kind,
		e.Source.Node().Path(), describeBoundary(e.Source.Node().Boundary()),
		e.Target.Node().Path(), describeBoundary(e.Target.Node().Boundary()),
	)
}

// Unwrap allows errors.Is(err, errors.ErrCrossBoundary).
func (e *CrossBoundaryDependencyError) Unwrap() error { return serrors.ErrCrossBoundary }

// InvalidLifecycleStateError reports a mutation or synthesis call that
// arrived after the relevant phase had already passed.
type InvalidLifecycleStateError struct {
	Op   string
	Path string
}

func (e *InvalidLifecycleStateError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("cannot %s: invalid lifecycle state", e.Op)
	}
	return fmt.Sprintf("cannot %s at %q: construct tree is locked for synthesis", e.Op, e.Path)
}

// Unwrap allows errors.Is(err, errors.ErrLifecycle).
func (e *InvalidLifecycleStateError) Unwrap() error { return serrors.ErrLifecycle }

// UnresolvedEnvironmentError reports a stack whose resolved environment
// still carries an unresolved account or region.
type UnresolvedEnvironmentError struct {
	Path  string
	Field string
}

func (e *UnresolvedEnvironmentError) Error() string {
	return fmt.Sprintf("stack %q has an unresolved %s; set it on the stack, an enclosing stage, or the app default", e.Path, e.Field)
}

// Unwrap allows errors.Is(err, errors.ErrUnresolvedEnvironment).
func (e *UnresolvedEnvironmentError) Unwrap() error { return serrors.ErrUnresolvedEnvironment }

func describeBoundary(b Construct) string {
	if s, ok := b.(*Stage); ok {
		return fmt.Sprintf("stage %q", s.StageName())
	}
	return "the root scope"
}
