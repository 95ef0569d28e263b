package errors

import "errors"

// Sentinel errors for known synthesis failure classes. Typed errors in the
// domain packages unwrap to these so callers can branch with errors.Is.
var (
	// ErrNameCollision indicates a duplicate name under one parent scope.
	ErrNameCollision = errors.New("name collision")

	// ErrCrossBoundary indicates a dependency edge spanning two isolation boundaries.
	ErrCrossBoundary = errors.New("dependency cannot cross stage boundaries")

	// ErrRender indicates a deployment unit's resource graph could not be rendered.
	ErrRender = errors.New("render error")

	// ErrLifecycle indicates an operation arrived in the wrong synthesis phase.
	ErrLifecycle = errors.New("invalid lifecycle state")

	// ErrUnresolvedEnvironment indicates a required account or region is unresolved.
	ErrUnresolvedEnvironment = errors.New("unresolved environment")

	// ErrCycle indicates a dependency cycle between deployment units.
	ErrCycle = errors.New("dependency cycle")

	// ErrNotFound indicates a construct, file, or reference target was not found.
	ErrNotFound = errors.New("not found")
)
