package core

import (
	"fmt"
	"regexp"
)

// Ref is a reference to an attribute of a resource owned by some stack.
// Refs travel through resource properties as string tokens of the form
// ${ref:<owner-path>:<logical-id>:<attribute>} and are resolved back to
// their owning stack during preparation to derive automatic dependencies.
type Ref struct {
	OwnerPath string
	LogicalID string
	Attr      string
}

// Token returns the embeddable string form of the reference.
func (r Ref) Token() string {
	return fmt.Sprintf("${ref:%s:%s:%s}", r.OwnerPath, r.LogicalID, r.Attr)
}

var refPattern = regexp.MustCompile(`\$\{ref:([^:}]+):([^:}]+):([^:}]+)\}`)

// findRefs walks an arbitrarily nested property value (maps, slices,
// strings) and collects every reference token it contains.
func findRefs(v any) []Ref {
	var refs []Ref
	walkValue(v, func(s string) {
		for _, m := range refPattern.FindAllStringSubmatch(s, -1) {
			refs = append(refs, Ref{OwnerPath: m[1], LogicalID: m[2], Attr: m[3]})
		}
	})
	return refs
}

// walkValue visits every string reachable from v.
func walkValue(v any, fn func(string)) {
	switch t := v.(type) {
	case string:
		fn(t)
	case map[string]any:
		for _, e := range t {
			walkValue(e, fn)
		}
	case []any:
		for _, e := range t {
			walkValue(e, fn)
		}
	}
}

// FindStack resolves a tree path to the stack that owns it, searching the
// whole tree from root. Returns nil when the path does not name a stack.
func FindStack(root Construct, path string) *Stack {
	n := root.Node()
	if n.parent != nil {
		n = root.Node().Root().Node()
	}
	var found *Stack
	var walk func(cur *Node)
	walk = func(cur *Node) {
		if found != nil {
			return
		}
		if cur.kind == KindStack && cur.Path() == path {
			found = cur.host.(*Stack)
			return
		}
		for _, c := range cur.order {
			walk(c)
		}
	}
	walk(n)
	return found
}
