package core

// Aspect is a visitor-style transformation applied once per node during the
// preparation phase. An aspect attached at node N visits N's subtree in the
// same post-order walk as the prepare hooks, stopping at nested stage
// boundaries; nodes inside a descendant stage belong to that stage's own
// synthesis run.
type Aspect interface {
	// Visit is called with each in-scope construct. Mutations made here are
	// visible to the subsequent render pass.
	Visit(c Construct) error
}

// AspectFunc adapts a plain function to the Aspect interface.
type AspectFunc func(c Construct) error

// Visit implements Aspect.
func (f AspectFunc) Visit(c Construct) error { return f(c) }

// Preparer is the optional two-phase preparation hook. The engine invokes
// Prepare exactly once per node per synthesis run, after all of the node's
// children have been prepared.
type Preparer interface {
	Prepare() error
}
