package sched

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultCap is the render concurrency budget used when no cap is given.
// It matches the cap compiled into the browser-side script.
const DefaultCap = 6

// RenderFunc starts rendering a placeholder and must arrange for done to be
// called exactly once when the render finishes, with a nil error on success.
// The scheduler tolerates duplicate done invocations (extras are ignored) and
// never cancels a render it has started. A RenderFunc may call done
// synchronously before returning.
type RenderFunc func(p *Placeholder, done func(error))

// task is one pending or in-flight render operation bound to exactly one
// placeholder.
type task struct {
	p          *Placeholder
	enqueuedAt time.Time
	completed  bool // duplicate-completion guard, guarded by Scheduler.mu
}

// Stats is a point-in-time snapshot of scheduler state.
type Stats struct {
	Tracked  int // placeholders registered with the scheduler
	Queued   int // render tasks waiting for a slot
	InFlight int // render tasks currently running
	Rendered int // placeholders in the terminal state (success or failure)
	Failed   int // renders that completed with an error
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithLogger sets the logger used for per-placeholder diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(s *Scheduler) { s.logger = l }
}

// Scheduler decides when and in what order placeholders are rendered. Create
// one per page load with New; there is no teardown beyond dropping the
// reference.
type Scheduler struct {
	capacity int
	render   RenderFunc
	logger   *log.Logger

	mu       sync.Mutex
	states   map[string]State
	byID     map[string]*Placeholder
	cancels  map[string]func()
	queue    []*task
	inflight int
	rendered int
	failed   int
}

// New creates a scheduler with the given concurrency cap and renderer.
// A cap of zero or less falls back to DefaultCap.
func New(capacity int, render RenderFunc, opts ...Option) *Scheduler {
	if capacity <= 0 {
		capacity = DefaultCap
	}
	s := &Scheduler{
		capacity: capacity,
		render:   render,
		logger:   log.NewWithOptions(io.Discard, log.Options{}),
		states:   make(map[string]State),
		byID:     make(map[string]*Placeholder),
		cancels:  make(map[string]func()),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Cap returns the configured concurrency cap.
func (s *Scheduler) Cap() int { return s.capacity }

// Track registers placeholders without attaching a visibility source.
// Visibility events are then delivered by calling MarkVisible directly.
// Already-tracked IDs are ignored.
func (s *Scheduler) Track(ps ...*Placeholder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range ps {
		if _, ok := s.states[p.ID]; ok {
			continue
		}
		s.states[p.ID] = StateUnobserved
		s.byID[p.ID] = p
	}
}

// Attach registers placeholders and subscribes each one to the visibility
// source. The subscription is one-shot: after the first event the scheduler
// unsubscribes. A placeholder whose subscription fails is treated as visible
// immediately, so an untrackable chart renders rather than staying blank.
func (s *Scheduler) Attach(src VisibilitySource, ps ...*Placeholder) {
	s.Track(ps...)
	for _, p := range ps {
		id := p.ID
		cancel, err := src.Subscribe(id, func() { s.MarkVisible(id) })
		if err != nil {
			s.logger.Warn("cannot observe placeholder, rendering eagerly",
				"placeholder", id, "err", err)
			s.MarkVisible(id)
			continue
		}

		// The callback may have fired during Subscribe (placeholder visible
		// at attach time). In that case the state already advanced and the
		// subscription is spent.
		s.mu.Lock()
		if s.states[id] == StateUnobserved {
			s.cancels[id] = cancel
			s.mu.Unlock()
			continue
		}
		s.mu.Unlock()
		cancel()
	}
}

// MarkVisible records that the placeholder with the given id entered the
// viewport. The first event enqueues a render task and unsubscribes the
// placeholder; subsequent events for the same id are ignored. Unknown ids
// are ignored.
func (s *Scheduler) MarkVisible(id string) {
	s.mu.Lock()
	state, ok := s.states[id]
	if !ok || state != StateUnobserved {
		s.mu.Unlock()
		return
	}
	s.states[id] = StateVisible
	cancel := s.cancels[id]
	delete(s.cancels, id)
	s.queue = append(s.queue, &task{p: s.byID[id], enqueuedAt: time.Now()})
	ready := s.dequeueReady()
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	s.startTasks(ready)
}

// StateOf returns the current state of the placeholder with the given id.
func (s *Scheduler) StateOf(id string) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.states[id]
}

// Snapshot returns current scheduler statistics.
func (s *Scheduler) Snapshot() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{
		Tracked:  len(s.states),
		Queued:   len(s.queue),
		InFlight: s.inflight,
		Rendered: s.rendered,
		Failed:   s.failed,
	}
}

// dequeueReady pops tasks off the FIFO queue while budget remains, marking
// their placeholders rendering. Caller must hold mu; the returned tasks must
// be passed to startTasks after unlocking.
func (s *Scheduler) dequeueReady() []*task {
	var ready []*task
	for s.inflight < s.capacity && len(s.queue) > 0 {
		t := s.queue[0]
		s.queue = s.queue[1:]
		s.inflight++
		s.states[t.p.ID] = StateRendering
		ready = append(ready, t)
	}
	return ready
}

// startTasks begins rendering outside the lock so a renderer that completes
// synchronously can re-enter the scheduler.
func (s *Scheduler) startTasks(ready []*task) {
	for _, t := range ready {
		t := t
		s.logger.Debug("render start",
			"placeholder", t.p.ID, "waited", time.Since(t.enqueuedAt))
		s.render(t.p, func(err error) { s.complete(t, err) })
	}
}

// complete handles a render finishing. Failures are swallowed here: the
// placeholder is marked rendered either way so it is never retried, and the
// freed slot immediately starts the next queued task.
func (s *Scheduler) complete(t *task, err error) {
	s.mu.Lock()
	if t.completed {
		s.mu.Unlock()
		return
	}
	t.completed = true
	s.inflight--
	s.states[t.p.ID] = StateRendered
	s.rendered++
	if err != nil {
		s.failed++
	}
	ready := s.dequeueReady()
	s.mu.Unlock()

	if err != nil {
		s.logger.Warn("render failed", "placeholder", t.p.ID, "err", err)
	}
	s.startTasks(ready)
}
