// Package dag provides a minimal directed acyclic graph used by the
// synthesis engine to validate dependency edges between deployment units.
package dag

import (
	"fmt"
	"sort"

	serrors "github.com/synthkit/cli/internal/errors"
)

// Vertex is a node in the graph, ordered by insertion for deterministic
// traversal.
type Vertex[T comparable] struct {
	ID        T
	Order     int
	DependsOn map[T]struct{}
}

// DirectedAcyclicGraph rejects edges that would introduce a cycle.
type DirectedAcyclicGraph[T comparable] struct {
	Vertices map[T]*Vertex[T]
}

// NewDirectedAcyclicGraph creates an empty graph.
func NewDirectedAcyclicGraph[T comparable]() *DirectedAcyclicGraph[T] {
	return &DirectedAcyclicGraph[T]{Vertices: make(map[T]*Vertex[T])}
}

// AddVertex adds a node with the given insertion order. Duplicate ids fail.
func (d *DirectedAcyclicGraph[T]) AddVertex(id T, order int) error {
	if _, exists := d.Vertices[id]; exists {
		return fmt.Errorf("vertex %v already exists", id)
	}
	d.Vertices[id] = &Vertex[T]{ID: id, Order: order, DependsOn: make(map[T]struct{})}
	return nil
}

// AddDependencies records that from depends on each of deps. Both ends must
// exist, self references are rejected, and an edge that closes a cycle is
// rolled back and reported as a CycleError.
func (d *DirectedAcyclicGraph[T]) AddDependencies(from T, deps []T) error {
	source, ok := d.Vertices[from]
	if !ok {
		return fmt.Errorf("vertex %v does not exist", from)
	}
	for _, dep := range deps {
		if dep == from {
			return fmt.Errorf("self reference on vertex %v: %w", from, serrors.ErrCycle)
		}
		if _, ok := d.Vertices[dep]; !ok {
			return fmt.Errorf("dependency %v of vertex %v does not exist", dep, from)
		}
		source.DependsOn[dep] = struct{}{}
		if cyclic, cycle := d.hasCycle(); cyclic {
			delete(source.DependsOn, dep)
			return &CycleError[T]{Cycle: cycle}
		}
	}
	return nil
}

// TopologicalSort returns the vertices in dependency order (dependencies
// first), breaking ties by insertion order.
func (d *DirectedAcyclicGraph[T]) TopologicalSort() ([]T, error) {
	if cyclic, cycle := d.hasCycle(); cyclic {
		return nil, &CycleError[T]{Cycle: cycle}
	}

	visited := make(map[T]bool, len(d.Vertices))
	var order []T
	var visit func(id T)
	visit = func(id T) {
		if visited[id] {
			return
		}
		visited[id] = true
		for _, dep := range d.sortedDeps(d.Vertices[id]) {
			visit(dep)
		}
		order = append(order, id)
	}
	for _, v := range d.sortedVertices() {
		visit(v.ID)
	}
	return order, nil
}

// hasCycle runs a depth-first search over every vertex and returns one
// offending cycle when found.
func (d *DirectedAcyclicGraph[T]) hasCycle() (bool, []T) {
	visited := make(map[T]bool, len(d.Vertices))
	inStack := make(map[T]bool, len(d.Vertices))
	var stack []T

	var visit func(id T) []T
	visit = func(id T) []T {
		visited[id] = true
		inStack[id] = true
		stack = append(stack, id)
		for dep := range d.Vertices[id].DependsOn {
			if inStack[dep] {
				// Close the loop for the error message.
				return append(cycleFrom(stack, dep), dep)
			}
			if !visited[dep] {
				if cycle := visit(dep); cycle != nil {
					return cycle
				}
			}
		}
		inStack[id] = false
		stack = stack[:len(stack)-1]
		return nil
	}

	for id := range d.Vertices {
		if !visited[id] {
			if cycle := visit(id); cycle != nil {
				return true, cycle
			}
		}
	}
	return false, nil
}

func cycleFrom[T comparable](stack []T, start T) []T {
	for i, id := range stack {
		if id == start {
			out := make([]T, len(stack)-i)
			copy(out, stack[i:])
			return out
		}
	}
	return stack
}

func (d *DirectedAcyclicGraph[T]) sortedVertices() []*Vertex[T] {
	out := make([]*Vertex[T], 0, len(d.Vertices))
	for _, v := range d.Vertices {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

func (d *DirectedAcyclicGraph[T]) sortedDeps(v *Vertex[T]) []T {
	out := make([]T, 0, len(v.DependsOn))
	for dep := range v.DependsOn {
		out = append(out, dep)
	}
	sort.Slice(out, func(i, j int) bool { return d.Vertices[out[i]].Order < d.Vertices[out[j]].Order })
	return out
}

// CycleError reports a dependency cycle.
type CycleError[T comparable] struct {
	Cycle []T
}

func (e *CycleError[T]) Error() string {
	return fmt.Sprintf("graph contains a cycle: %v", e.Cycle)
}

// Unwrap allows errors.Is(err, errors.ErrCycle).
func (e *CycleError[T]) Unwrap() error { return serrors.ErrCycle }

// AsCycleError returns the typed cycle error inside err, or nil.
func AsCycleError[T comparable](err error) *CycleError[T] {
	for err != nil {
		if ce, ok := err.(*CycleError[T]); ok {
			return ce
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return nil
		}
		err = u.Unwrap()
	}
	return nil
}
