package sched

import "encoding/json"

// State is the lifecycle state of a placeholder. Transitions are owned
// exclusively by the Scheduler and always move forward:
// Unobserved → Visible → Rendering → Rendered.
type State int

const (
	// StateUnobserved means the placeholder has not entered the viewport yet.
	StateUnobserved State = iota

	// StateVisible means the placeholder has been seen and its render task
	// is queued.
	StateVisible

	// StateRendering means a render task for the placeholder is in flight.
	StateRendering

	// StateRendered is terminal. It is reached on success and on failure
	// alike; failed placeholders are never retried.
	StateRendered
)

// String returns the lowercase state name.
func (s State) String() string {
	switch s {
	case StateUnobserved:
		return "unobserved"
	case StateVisible:
		return "visible"
	case StateRendering:
		return "rendering"
	case StateRendered:
		return "rendered"
	}
	return "unknown"
}

// Placeholder is one not-yet-rendered chart container. The embedded spec is
// immutable once emitted into a page; the scheduler never inspects it, only
// hands it to the renderer.
type Placeholder struct {
	// ID uniquely identifies the placeholder within a page.
	ID string

	// Module is the plot module that produced the spec, if known. The
	// simulator uses it to look up estimated render times.
	Module string

	// Spec is the embedded chart specification.
	Spec json.RawMessage
}
