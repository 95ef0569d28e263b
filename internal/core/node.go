// Package core implements the construct tree: the ownership hierarchy of
// apps, stages, stacks, and plain containers that the synthesis engine
// compiles into deployment manifests.
package core

import (
	"fmt"
	"strings"

	serrors "github.com/synthkit/cli/internal/errors"
)

// Kind identifies a construct's role in the tree. The set is closed; aspects
// and the engine match on kind rather than runtime type inspection.
type Kind int

const (
	// KindContainer is a plain grouping node with no synthesis semantics.
	KindContainer Kind = iota

	// KindApp is the root application.
	KindApp

	// KindStage is an isolation stage (a synthesis boundary).
	KindStage

	// KindStack is a deployment unit.
	KindStack
)

// String returns the kind name used in paths, logs, and manifests.
func (k Kind) String() string {
	switch k {
	case KindApp:
		return "app"
	case KindStage:
		return "stage"
	case KindStack:
		return "stack"
	default:
		return "container"
	}
}

// Construct is anything that participates in the construct tree.
type Construct interface {
	// Node returns the tree node backing this construct.
	Node() *Node
}

// Node is the tree bookkeeping shared by every construct kind. The parent
// reference is assigned exactly once at creation, which rules out both
// re-parenting and cycles.
type Node struct {
	id       string
	parent   *Node
	host     Construct
	kind     Kind
	children map[string]*Node
	order    []*Node
	aspects  []Aspect
	boundary Construct
	locked   bool
}

// attach creates the node for host under scope with the given id and
// registers it with its parent. The root app passes a nil scope and an
// empty id; every other construct must supply both.
func attach(scope Construct, id string, host Construct, kind Kind) (*Node, error) {
	n := &Node{
		id:       id,
		host:     host,
		kind:     kind,
		children: make(map[string]*Node),
	}

	if scope == nil {
		if id != "" {
			return nil, serrors.NewNameCollisionError(
				fmt.Sprintf("root construct must have an empty id, got %q", id), id, "")
		}
		return n, nil
	}

	if id == "" {
		return nil, serrors.NewNameCollisionError("construct id must not be empty", scope.Node().Path(), "")
	}
	if strings.ContainsAny(id, "/:") {
		return nil, serrors.NewNameCollisionError(
			fmt.Sprintf("construct id %q must not contain '/' or ':'", id), scope.Node().Path(), "")
	}

	parent := scope.Node()
	if parent.locked {
		return nil, &InvalidLifecycleStateError{Op: "add child " + id, Path: parent.Path()}
	}
	if _, exists := parent.children[id]; exists {
		return nil, serrors.NewNameCollisionError(
			fmt.Sprintf("there is already a construct named %q under %s", id, parent.describe()),
			parent.Path(),
			"sibling construct names must be unique")
	}

	n.parent = parent
	parent.children[id] = n
	parent.order = append(parent.order, n)
	return n, nil
}

// ID returns the node's name, unique among its siblings.
func (n *Node) ID() string { return n.id }

// Kind returns the construct kind tag.
func (n *Node) Kind() Kind { return n.kind }

// Host returns the construct that owns this node.
func (n *Node) Host() Construct { return n.host }

// Parent returns the parent construct, or nil for the root.
func (n *Node) Parent() Construct {
	if n.parent == nil {
		return nil
	}
	return n.parent.host
}

// Path returns the slash-joined ancestor ids, skipping the root's empty id.
func (n *Node) Path() string {
	var parts []string
	for cur := n; cur != nil; cur = cur.parent {
		if cur.id != "" {
			parts = append(parts, cur.id)
		}
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, "/")
}

// Root returns the root construct of the tree this node belongs to.
func (n *Node) Root() Construct {
	cur := n
	for cur.parent != nil {
		cur = cur.parent
	}
	return cur.host
}

// Children returns the node's direct children in declaration order.
func (n *Node) Children() []Construct {
	out := make([]Construct, len(n.order))
	for i, c := range n.order {
		out[i] = c.host
	}
	return out
}

// FindChild returns the direct child with the given id, or nil.
func (n *Node) FindChild(id string) Construct {
	if c, ok := n.children[id]; ok {
		return c.host
	}
	return nil
}

// ApplyAspect attaches a visitor to the subtree rooted at this node. The
// aspect runs once per in-scope node during the preparation phase; it never
// propagates across a nested stage boundary.
func (n *Node) ApplyAspect(a Aspect) error {
	if n.locked {
		return &InvalidLifecycleStateError{Op: "apply aspect", Path: n.Path()}
	}
	n.aspects = append(n.aspects, a)
	return nil
}

// Aspects returns the aspects attached directly to this node, in
// attachment order.
func (n *Node) Aspects() []Aspect {
	out := make([]Aspect, len(n.aspects))
	copy(out, n.aspects)
	return out
}

// Boundary returns the nearest enclosing isolation boundary: the closest
// ancestor stage, or the tree root when no stage encloses the node. A stage
// is its own parent scope's citizen, so Boundary of a stage construct is the
// boundary that contains the stage, not the stage itself. The result is
// memoized; the ancestor chain is immutable after construction.
func (n *Node) Boundary() Construct {
	if n.boundary != nil {
		return n.boundary
	}
	cur := n.parent
	for cur != nil {
		if cur.kind == KindStage {
			n.boundary = cur.host
			return n.boundary
		}
		cur = cur.parent
	}
	n.boundary = n.Root()
	return n.boundary
}

// Lock freezes the subtree for synthesis. Further structural mutation
// (children, aspects, resources, dependencies) fails with an
// InvalidLifecycleStateError until Unlock.
func (n *Node) Lock() {
	n.locked = true
	for _, c := range n.order {
		c.Lock()
	}
}

// Unlock releases a previously locked subtree.
func (n *Node) Unlock() {
	n.locked = false
	for _, c := range n.order {
		c.Unlock()
	}
}

// Locked reports whether the node is currently locked for synthesis.
func (n *Node) Locked() bool { return n.locked }

func (n *Node) describe() string {
	if n.id == "" {
		return "the root app"
	}
	return fmt.Sprintf("%s %q", n.kind, n.Path())
}

// Container is a plain grouping construct. It owns children and can carry
// aspects but contributes nothing to the manifest itself.
type Container struct {
	node *Node
}

// NewContainer creates a grouping construct under scope.
func NewContainer(scope Construct, id string) (*Container, error) {
	c := &Container{}
	n, err := attach(scope, id, c, KindContainer)
	if err != nil {
		return nil, err
	}
	c.node = n
	return c, nil
}

// Node returns the tree node backing this construct.
func (c *Container) Node() *Node { return c.node }
