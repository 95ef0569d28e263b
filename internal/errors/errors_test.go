package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetailErrorUnwrapsToSentinel(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"name collision", NewNameCollisionError("dup", "a/b", "rename it"), ErrNameCollision},
		{"cross boundary", NewCrossBoundaryError("edge crosses", nil), ErrCrossBoundary},
		{"render", NewRenderError("bad graph", "a/b", nil), ErrRender},
		{"not found", NewNotFoundError("missing", "a/b", ""), ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.sentinel)
		})
	}
}

func TestDetailErrorMessage(t *testing.T) {
	err := NewNameCollisionError("duplicate name", "MyStage/Stack1", "rename the construct")

	msg := err.Error()
	assert.Contains(t, msg, "name collision")
	assert.Contains(t, msg, "MyStage/Stack1")
	assert.Contains(t, msg, "duplicate name")
	assert.Contains(t, msg, "Hint: rename the construct")
}

func TestRenderErrorKeepsCause(t *testing.T) {
	cause := errors.New("broken template")
	err := NewRenderError("render failed", "Stack1", cause)

	assert.ErrorIs(t, err, ErrRender)
	assert.ErrorIs(t, err, cause)
}

func TestWrap(t *testing.T) {
	err := Wrap(ErrCycle, "stack depends on itself")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCycle)
	assert.Contains(t, err.Error(), "stack depends on itself")
}

func TestSentinelsAreDistinct(t *testing.T) {
	sentinels := []error{
		ErrNameCollision, ErrCrossBoundary, ErrRender, ErrLifecycle,
		ErrUnresolvedEnvironment, ErrCycle, ErrNotFound,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j {
				assert.NotErrorIs(t, a, b)
			}
		}
	}
}
