package sim

import (
	"context"
	"testing"
	"time"

	"github.com/vegagallery/vegagallery/pkg/errors"
	"github.com/vegagallery/vegagallery/pkg/sched"
)

func testItems(n int) []Item {
	items := make([]Item, n)
	for i := range items {
		items[i] = Item{
			ID:         string(rune('A' + i)),
			Module:     "scatter",
			RenderTime: 5 * time.Millisecond,
		}
	}
	return items
}

func TestRunBurstRespectsCap(t *testing.T) {
	res, err := Run(context.Background(), testItems(10), Options{
		Cap:     3,
		Pattern: PatternBurst,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if res.Rendered != 10 {
		t.Errorf("Rendered = %d, want 10", res.Rendered)
	}
	if res.PeakInFlight > 3 {
		t.Errorf("PeakInFlight = %d, cap was 3", res.PeakInFlight)
	}
	if len(res.StartOrder) != 10 {
		t.Errorf("StartOrder has %d entries, want 10", len(res.StartOrder))
	}
}

func TestRunTopDownIsFIFO(t *testing.T) {
	items := testItems(6)
	res, err := Run(context.Background(), items, Options{
		Cap:     1,
		Pattern: PatternTopDown,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	for i, it := range items {
		if res.StartOrder[i] != it.ID {
			t.Fatalf("StartOrder = %v, want document order", res.StartOrder)
		}
	}
}

func TestRunRandomIsReproducible(t *testing.T) {
	a, err := Run(context.Background(), testItems(8), Options{Cap: 1, Pattern: PatternRandom, Seed: 7})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	b, err := Run(context.Background(), testItems(8), Options{Cap: 1, Pattern: PatternRandom, Seed: 7})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	for i := range a.StartOrder {
		if a.StartOrder[i] != b.StartOrder[i] {
			t.Fatalf("same seed produced different orders: %v vs %v", a.StartOrder, b.StartOrder)
		}
	}
}

func TestRunDefaultsToBurstAndDefaultCap(t *testing.T) {
	res, err := Run(context.Background(), testItems(12), Options{TimeScale: 10})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.PeakInFlight > sched.DefaultCap {
		t.Errorf("PeakInFlight = %d, default cap is %d", res.PeakInFlight, sched.DefaultCap)
	}
}

func TestRunValidation(t *testing.T) {
	tests := []struct {
		name  string
		items []Item
		opts  Options
	}{
		{name: "unknown pattern", items: testItems(1), opts: Options{Pattern: "spiral"}},
		{name: "no items", items: nil, opts: Options{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Run(context.Background(), tt.items, tt.opts)
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("Run() error = %v, want INVALID_INPUT", err)
			}
		})
	}
}
