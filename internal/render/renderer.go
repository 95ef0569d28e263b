// Package render turns a single deployment unit's resource graph into its
// template payload. The concrete template format is opaque to the engine;
// payloads are generic unstructured objects.
package render

import (
	"fmt"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"github.com/synthkit/cli/internal/core"
	serrors "github.com/synthkit/cli/internal/errors"
)

// Renderer is the collaborator contract the engine consumes: ask a stack to
// render itself to a template payload.
type Renderer interface {
	Render(s *core.Stack) (*unstructured.Unstructured, error)
}

// TemplateRenderer is the default Renderer. It emits a payload carrying the
// stack's resources keyed by logical id. Reference tokens pass through
// untouched; resolving them is the deployment target's concern.
type TemplateRenderer struct{}

// NewTemplateRenderer creates the default renderer.
func NewTemplateRenderer() *TemplateRenderer {
	return &TemplateRenderer{}
}

// Render builds the template payload for a stack. A structurally invalid
// resource graph (a resource without a type) fails with a render error;
// the engine treats that as fatal for the enclosing synthesis run.
func (r *TemplateRenderer) Render(s *core.Stack) (*unstructured.Unstructured, error) {
	if s == nil {
		return nil, serrors.NewRenderError("cannot render a nil stack", "", nil)
	}

	resources := make(map[string]any, len(s.Resources()))
	for _, res := range s.Resources() {
		if res.Type() == "" {
			return nil, serrors.NewRenderError(
				fmt.Sprintf("resource %q has no type", res.LogicalID()),
				s.Node().Path(), nil)
		}
		resources[res.LogicalID()] = map[string]any{
			"type":       res.Type(),
			"properties": res.Properties(),
		}
	}

	env := s.Environment()
	return &unstructured.Unstructured{Object: map[string]any{
		"identity": s.Identity(),
		"environment": map[string]any{
			"account": env.Account,
			"region":  env.Region,
		},
		"resources": resources,
	}}, nil
}
