// Package sched implements the lazy render scheduler used by the gallery's
// client-side script, as a Go library suitable for offline simulation and
// testing.
//
// A Scheduler owns a set of chart placeholders. When a placeholder becomes
// visible for the first time, a render task is enqueued for it; tasks start
// strictly in enqueue order (FIFO), and the number of in-flight renders never
// exceeds the configured cap. Visibility is one-shot: a placeholder that
// leaves and re-enters the viewport is not enqueued twice, and once rendered
// (successfully or not) a placeholder is never rendered again.
//
// Render failures are contained per placeholder. They are logged, the slot is
// returned to the budget, and the placeholder is marked rendered so it is
// never retried. An in-flight render that never completes permanently
// occupies one slot of the budget: the scheduler deliberately has no timeout
// or cancellation, matching the behavior of the browser-side script it
// mirrors.
//
// The scheduler is a single logical event loop. Its entry points
// (MarkVisible, render completion) may be invoked from any goroutine; a
// mutex serializes them so all state transitions happen one at a time.
package sched
