package core

import (
	"fmt"

	serrors "github.com/synthkit/cli/internal/errors"
)

// StackProps configures a deployment unit.
type StackProps struct {
	// Env supplies explicit account/region values. Empty fields inherit from
	// the nearest enclosing stage, then the app default.
	Env *Environment
}

// Stack is a deployment unit: the minimal independently-deployable grouping
// of resources. Its environment and identity are computed once, at
// construction, and never recomputed.
type Stack struct {
	node     *Node
	env      Environment
	identity string

	resources []*Resource
	byID      map[string]*Resource

	deps []*Edge // explicit, boundary-checked at insertion
	auto []*Edge // discovered from resource references during preparation
}

// Edge is a directed "depends on" relation between two stacks.
type Edge struct {
	Source *Stack
	Target *Stack
	Reason string
	Auto   bool
}

// NewStack creates a deployment unit under scope.
func NewStack(scope Construct, id string, props StackProps) (*Stack, error) {
	s := &Stack{byID: make(map[string]*Resource)}
	n, err := attach(scope, id, s, KindStack)
	if err != nil {
		return nil, err
	}
	s.node = n
	s.env = resolveEnvironment(n, props.Env)
	s.identity = stackIdentity(n)
	return s, nil
}

// Node returns the tree node backing this construct.
func (s *Stack) Node() *Node { return s.node }

// Identity returns the stack's unique name within its enclosing assembly.
func (s *Stack) Identity() string { return s.identity }

// Environment returns the stack's resolved environment.
func (s *Stack) Environment() Environment { return s.env }

// AddResource adds a resource to the stack's resource graph. Logical ids
// are unique per stack.
func (s *Stack) AddResource(logicalID, resourceType string, properties map[string]any) (*Resource, error) {
	if s.node.locked {
		return nil, &InvalidLifecycleStateError{Op: "add resource " + logicalID, Path: s.node.Path()}
	}
	if _, exists := s.byID[logicalID]; exists {
		return nil, serrors.NewNameCollisionError(
			fmt.Sprintf("stack %q already has a resource with logical id %q", s.identity, logicalID),
			s.node.Path(),
			"resource logical ids must be unique per stack")
	}
	if properties == nil {
		properties = make(map[string]any)
	}
	r := &Resource{logicalID: logicalID, resourceType: resourceType, properties: properties, owner: s}
	s.resources = append(s.resources, r)
	s.byID[logicalID] = r
	return r, nil
}

// Resources returns the stack's resources in declaration order.
func (s *Stack) Resources() []*Resource {
	out := make([]*Resource, len(s.resources))
	copy(out, s.resources)
	return out
}

// Resource returns the resource with the given logical id, or nil.
func (s *Stack) Resource(logicalID string) *Resource { return s.byID[logicalID] }

// AddDependency records that this stack depends on target. Both endpoints
// must share the same nearest enclosing isolation boundary; an edge that
// would cross a stage boundary fails and records nothing. Adding the same
// ordered pair twice is a no-op.
func (s *Stack) AddDependency(target *Stack, reason string) error {
	if s.node.locked {
		return &InvalidLifecycleStateError{Op: "add dependency", Path: s.node.Path()}
	}
	if target == nil {
		return serrors.Wrap(serrors.ErrNotFound, "dependency target is nil")
	}
	if target == s {
		return serrors.Wrap(serrors.ErrCycle, fmt.Sprintf("stack %q cannot depend on itself", s.identity))
	}
	if s.node.Boundary() != target.node.Boundary() {
		return &CrossBoundaryDependencyError{Source: s, Target: target}
	}
	if s.hasEdge(target) {
		return nil
	}
	s.deps = append(s.deps, &Edge{Source: s, Target: target, Reason: reason})
	return nil
}

// recordAutoDependency records an edge discovered from a resource
// reference. The boundary check is deferred to the validation phase, which
// is where automatic edges are required to surface violations.
func (s *Stack) recordAutoDependency(target *Stack, reason string) {
	if target == s || s.hasEdge(target) {
		return
	}
	s.auto = append(s.auto, &Edge{Source: s, Target: target, Reason: reason, Auto: true})
}

// Dependencies returns all recorded edges, explicit first, then automatic,
// each group in discovery order.
func (s *Stack) Dependencies() []*Edge {
	out := make([]*Edge, 0, len(s.deps)+len(s.auto))
	out = append(out, s.deps...)
	out = append(out, s.auto...)
	return out
}

// DependencyIdentities returns the identities of all dependency targets in
// edge order.
func (s *Stack) DependencyIdentities() []string {
	edges := s.Dependencies()
	out := make([]string, len(edges))
	for i, e := range edges {
		out[i] = e.Target.Identity()
	}
	return out
}

func (s *Stack) hasEdge(target *Stack) bool {
	for _, e := range s.deps {
		if e.Target == target {
			return true
		}
	}
	for _, e := range s.auto {
		if e.Target == target {
			return true
		}
	}
	return false
}

// Prepare implements the two-phase preparation hook. It scans the stack's
// resource graph for reference tokens and records an automatic dependency
// edge for every reference into another stack. Resolution failures are
// fatal: a manifest with dangling references would be incorrect.
func (s *Stack) Prepare() error {
	root := s.node.Root()
	for _, r := range s.resources {
		for _, ref := range findRefs(r.properties) {
			if ref.OwnerPath == s.node.Path() {
				continue
			}
			owner := FindStack(root, ref.OwnerPath)
			if owner == nil {
				return serrors.NewNotFoundError(
					fmt.Sprintf("resource %q references %q, which does not name a stack", r.logicalID, ref.OwnerPath),
					s.node.Path(),
					"check the reference token's owner path")
			}
			if owner.Resource(ref.LogicalID) == nil {
				return serrors.NewNotFoundError(
					fmt.Sprintf("resource %q references %s/%s, which does not exist", r.logicalID, ref.OwnerPath, ref.LogicalID),
					s.node.Path(),
					"the referenced resource must be declared before synthesis")
			}
			s.recordAutoDependency(owner, fmt.Sprintf("resource %s references %s.%s", r.logicalID, ref.LogicalID, ref.Attr))
		}
	}
	return nil
}

// Resource is a single entry in a stack's resource graph. The property
// schema is opaque to the tree; only reference tokens are interpreted.
type Resource struct {
	logicalID    string
	resourceType string
	properties   map[string]any
	owner        *Stack
}

// LogicalID returns the resource's per-stack unique id.
func (r *Resource) LogicalID() string { return r.logicalID }

// Type returns the resource type string.
func (r *Resource) Type() string { return r.resourceType }

// Properties returns the live property map. Aspects mutate it in place
// during preparation; mutations are visible to the render pass.
func (r *Resource) Properties() map[string]any { return r.properties }

// Owner returns the stack that owns this resource.
func (r *Resource) Owner() *Stack { return r.owner }

// Attr returns a reference token for an attribute of this resource,
// embeddable in another stack's resource properties. Consuming the token
// from a different stack creates an automatic dependency on this resource's
// owner during synthesis.
func (r *Resource) Attr(name string) string {
	return Ref{OwnerPath: r.owner.node.Path(), LogicalID: r.logicalID, Attr: name}.Token()
}

// SetProperty sets a top-level property value. Exposed for aspects.
func (r *Resource) SetProperty(key string, value any) {
	r.properties[key] = value
}
