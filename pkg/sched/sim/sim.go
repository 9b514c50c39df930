// Package sim replays synthetic visibility patterns against the lazy render
// scheduler. It is the offline counterpart to loading a generated page in a
// browser and scrolling: each placeholder "renders" by sleeping its module's
// estimated render time, and the run reports how the schedule unfolded.
package sim

import (
	"context"
	"io"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vegagallery/vegagallery/pkg/errors"
	"github.com/vegagallery/vegagallery/pkg/observability"
	"github.com/vegagallery/vegagallery/pkg/sched"
)

// Pattern names a visibility event sequence.
type Pattern string

const (
	// PatternBurst marks every placeholder visible in a single event tick,
	// the worst case for the concurrency budget.
	PatternBurst Pattern = "burst"

	// PatternTopDown walks placeholders in document order with a fixed
	// interval, approximating a steady scroll.
	PatternTopDown Pattern = "topdown"

	// PatternRandom visits placeholders in shuffled order, approximating a
	// user jumping around the page.
	PatternRandom Pattern = "random"
)

// ValidPatterns is the set of supported visibility patterns.
var ValidPatterns = map[Pattern]bool{
	PatternBurst:   true,
	PatternTopDown: true,
	PatternRandom:  true,
}

// Item is one placeholder to simulate.
type Item struct {
	ID         string
	Module     string
	RenderTime time.Duration
}

// Options configures a simulation run.
type Options struct {
	// Cap is the render concurrency budget. Zero uses sched.DefaultCap.
	Cap int

	// Pattern selects the visibility sequence. Empty defaults to burst.
	Pattern Pattern

	// Interval is the delay between visibility events for the topdown and
	// random patterns.
	Interval time.Duration

	// Seed shuffles the random pattern reproducibly.
	Seed int64

	// TimeScale divides every render sleep, letting long galleries simulate
	// quickly. Zero or negative means 1 (real time).
	TimeScale float64

	// Logger receives per-placeholder scheduling events.
	Logger *log.Logger
}

// Result summarizes a completed simulation.
type Result struct {
	StartOrder   []string      // placeholder IDs in render start order
	PeakInFlight int           // highest number of simultaneous renders
	Rendered     int           // placeholders that completed
	Elapsed      time.Duration // wall-clock duration of the run
}

// Run simulates rendering items under the given options and blocks until
// every placeholder has rendered or ctx is cancelled.
func Run(ctx context.Context, items []Item, opts Options) (Result, error) {
	if opts.Pattern == "" {
		opts.Pattern = PatternBurst
	}
	if !ValidPatterns[opts.Pattern] {
		return Result{}, errors.New(errors.ErrCodeInvalidInput, "unknown pattern: %s", opts.Pattern)
	}
	if len(items) == 0 {
		return Result{}, errors.New(errors.ErrCodeInvalidInput, "nothing to simulate")
	}
	scale := opts.TimeScale
	if scale <= 0 {
		scale = 1
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	renderTimes := make(map[string]time.Duration, len(items))
	ps := make([]*sched.Placeholder, len(items))
	for i, it := range items {
		renderTimes[it.ID] = it.RenderTime
		ps[i] = &sched.Placeholder{ID: it.ID, Module: it.Module}
	}

	var (
		mu         sync.Mutex
		startOrder []string
		inflight   int64
		peak       int64
		wg         sync.WaitGroup
	)
	wg.Add(len(items))

	render := func(p *sched.Placeholder, done func(error)) {
		mu.Lock()
		startOrder = append(startOrder, p.ID)
		mu.Unlock()

		cur := atomic.AddInt64(&inflight, 1)
		for {
			prev := atomic.LoadInt64(&peak)
			if cur <= prev || atomic.CompareAndSwapInt64(&peak, prev, cur) {
				break
			}
		}
		observability.Scheduler().OnRenderStart(ctx, p.ID, int(cur))

		d := time.Duration(float64(renderTimes[p.ID]) / scale)
		start := time.Now()
		go func() {
			defer wg.Done()
			select {
			case <-time.After(d):
			case <-ctx.Done():
			}
			atomic.AddInt64(&inflight, -1)
			done(nil)
			observability.Scheduler().OnRenderComplete(ctx, p.ID, time.Since(start), nil)
		}()
	}

	s := sched.New(opts.Cap, render, sched.WithLogger(logger))
	s.Track(ps...)

	begin := time.Now()
	if err := emitVisibility(ctx, s, items, opts); err != nil {
		return Result{}, err
	}

	finished := make(chan struct{})
	go func() {
		wg.Wait()
		close(finished)
	}()
	select {
	case <-finished:
	case <-ctx.Done():
		return Result{}, errors.Wrap(errors.ErrCodeInternal, ctx.Err(), "simulation interrupted")
	}

	st := s.Snapshot()
	mu.Lock()
	order := make([]string, len(startOrder))
	copy(order, startOrder)
	mu.Unlock()

	return Result{
		StartOrder:   order,
		PeakInFlight: int(atomic.LoadInt64(&peak)),
		Rendered:     st.Rendered,
		Elapsed:      time.Since(begin),
	}, nil
}

// emitVisibility feeds visibility events to the scheduler per the pattern.
func emitVisibility(ctx context.Context, s *sched.Scheduler, items []Item, opts Options) error {
	order := make([]string, len(items))
	for i, it := range items {
		order[i] = it.ID
	}

	switch opts.Pattern {
	case PatternBurst:
		for _, id := range order {
			s.MarkVisible(id)
			observability.Scheduler().OnEnqueue(ctx, id, s.Snapshot().Queued)
		}
		return nil
	case PatternRandom:
		rng := rand.New(rand.NewSource(opts.Seed))
		rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
	case PatternTopDown:
		// document order as-is
	}

	for _, id := range order {
		s.MarkVisible(id)
		observability.Scheduler().OnEnqueue(ctx, id, s.Snapshot().Queued)
		if opts.Interval > 0 {
			select {
			case <-time.After(opts.Interval):
			case <-ctx.Done():
				return errors.Wrap(errors.ErrCodeInternal, ctx.Err(), "simulation interrupted")
			}
		}
	}
	return nil
}
