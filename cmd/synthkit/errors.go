package main

import (
	"errors"

	serrors "github.com/synthkit/cli/internal/errors"
)

// Exit codes for the synthkit CLI.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError = 1

	// ExitValidationError indicates the construct tree failed validation:
	// name collisions, cross-boundary dependencies, or dependency cycles.
	ExitValidationError = 2

	// ExitDiffChanges indicates the compared manifests differ.
	ExitDiffChanges = 3

	// ExitNotFound indicates a blueprint, construct, or reference target
	// was not found.
	ExitNotFound = 5

	// ExitUnresolvedEnvironment indicates --require-env found a stack with
	// an unresolved account or region.
	ExitUnresolvedEnvironment = 6
)

// ExitError wraps an error with a process exit code.
type ExitError struct {
	Err  error
	Code int

	// Printed marks errors the command layer already reported, so main
	// does not print them twice.
	Printed bool
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the wrapped error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given error and exit code.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{Err: err, Code: code}
}

// ExitCodeFromError determines the appropriate exit code for an error.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	switch {
	case errors.Is(err, serrors.ErrNameCollision),
		errors.Is(err, serrors.ErrCrossBoundary),
		errors.Is(err, serrors.ErrCycle),
		errors.Is(err, serrors.ErrLifecycle):
		return ExitValidationError
	case errors.Is(err, serrors.ErrNotFound):
		return ExitNotFound
	case errors.Is(err, serrors.ErrUnresolvedEnvironment):
		return ExitUnresolvedEnvironment
	default:
		return ExitGeneralError
	}
}
