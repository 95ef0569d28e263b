// Package errors provides sentinel errors and structured error details
// for the synthkit CLI and synthesis engine.
package errors

import (
	"fmt"
	"strings"
)

// DetailError captures structured error information for user-facing output.
type DetailError struct {
	// Type is the error category (required).
	Type string

	// Message is the specific description (required).
	Message string

	// Path is the construct tree path where the error occurred (optional).
	Path string

	// Context contains additional key-value context (optional).
	Context map[string]string

	// Hint provides actionable guidance (optional).
	Hint string

	// Cause is the underlying error (optional).
	Cause error
}

// Error implements the error interface.
func (e *DetailError) Error() string {
	var b strings.Builder

	b.WriteString("Error: ")
	b.WriteString(e.Type)
	b.WriteString("\n")

	if e.Path != "" {
		b.WriteString("  Path: ")
		b.WriteString(e.Path)
		b.WriteString("\n")
	}
	for k, v := range e.Context {
		b.WriteString("  ")
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(v)
		b.WriteString("\n")
	}

	b.WriteString("\n  ")
	b.WriteString(e.Message)
	b.WriteString("\n")

	if e.Hint != "" {
		b.WriteString("\nHint: ")
		b.WriteString(e.Hint)
		b.WriteString("\n")
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *DetailError) Unwrap() error {
	return e.Cause
}

// NewNameCollisionError creates a name-collision error with details.
func NewNameCollisionError(message, path, hint string) error {
	return &DetailError{
		Type:    "name collision",
		Message: message,
		Path:    path,
		Hint:    hint,
		Cause:   ErrNameCollision,
	}
}

// NewCrossBoundaryError creates a cross-boundary dependency error with details.
func NewCrossBoundaryError(message string, context map[string]string) error {
	return &DetailError{
		Type:    "cross-boundary dependency",
		Message: message,
		Context: context,
		Hint:    "dependencies must stay within one stage; move both stacks under the same stage or remove the dependency",
		Cause:   ErrCrossBoundary,
	}
}

// NewRenderError creates a render error with details.
func NewRenderError(message, path string, cause error) error {
	if cause == nil {
		cause = ErrRender
	} else {
		cause = fmt.Errorf("%w: %w", ErrRender, cause)
	}
	return &DetailError{
		Type:    "render failed",
		Message: message,
		Path:    path,
		Cause:   cause,
	}
}

// NewNotFoundError creates a not-found error with details.
func NewNotFoundError(message, path, hint string) error {
	return &DetailError{
		Type:    "not found",
		Message: message,
		Path:    path,
		Hint:    hint,
		Cause:   ErrNotFound,
	}
}

// Wrap wraps an error with a sentinel error type.
func Wrap(sentinel error, message string) error {
	return fmt.Errorf("%s: %w", message, sentinel)
}
