package engine

// State is the synthesis engine's lifecycle position. Every run moves
// Idle → Preparing → Validating → Rendering → Assembled, or drops into
// Failed from any state on an unrecovered error. Both Assembled and Failed
// are terminal; an engine is single-use.
type State int

const (
	// StateIdle is the initial state before Synthesize is called.
	StateIdle State = iota

	// StatePreparing covers the post-order prepare walk and aspect pass.
	StatePreparing

	// StateValidating covers the dependency boundary and cycle checks.
	StateValidating

	// StateRendering covers unit rendering and nested-stage recursion.
	StateRendering

	// StateAssembled is the terminal success state.
	StateAssembled

	// StateFailed is the terminal error state; no manifest was produced.
	StateFailed
)

// String returns the state name for logs and errors.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePreparing:
		return "preparing"
	case StateValidating:
		return "validating"
	case StateRendering:
		return "rendering"
	case StateAssembled:
		return "assembled"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}
