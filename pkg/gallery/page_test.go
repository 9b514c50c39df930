package gallery

import (
	"encoding/json"
	"testing"

	"github.com/vegagallery/vegagallery/pkg/errors"
	"github.com/vegagallery/vegagallery/pkg/plots"
)

func TestPageSpecFor(t *testing.T) {
	ca := *FindState("CA")
	tx := *FindState("TX")

	five := 5
	grid := 20
	seed := int64(999)
	cfg := DefaultConfig()
	cfg.Modules = []string{"scatter", "bar"}
	cfg.Overrides = map[string]Override{
		"CA": {PlotsPerPage: &five, Modules: []string{"heatmap"}, GridSize: &grid, Seed: &seed},
	}

	spec := cfg.PageSpecFor(tx, 42)
	if spec.Plots != cfg.PlotsPerPage {
		t.Errorf("TX plots = %d, want %d", spec.Plots, cfg.PlotsPerPage)
	}
	if spec.Seed != 42 {
		t.Errorf("TX seed = %d, want 42", spec.Seed)
	}
	if len(spec.Modules) != 2 {
		t.Errorf("TX modules = %v, want scatter,bar", spec.Modules)
	}

	spec = cfg.PageSpecFor(ca, 42)
	if spec.Plots != 5 {
		t.Errorf("CA plots = %d, want 5", spec.Plots)
	}
	if spec.Seed != 999 {
		t.Errorf("CA seed = %d, want override seed 999", spec.Seed)
	}
	if spec.GridSize != 20 {
		t.Errorf("CA grid size = %d, want 20", spec.GridSize)
	}
	if len(spec.Modules) != 1 || spec.Modules[0] != "heatmap" {
		t.Errorf("CA modules = %v, want [heatmap]", spec.Modules)
	}
}

func TestBuildPage(t *testing.T) {
	st := *FindState("CA")
	spec := PageSpec{
		State:   st,
		Plots:   6,
		Modules: []string{"scatter", "bar"},
		Seed:    100,
	}

	page, err := BuildPage(spec, nil)
	if err != nil {
		t.Fatalf("BuildPage: %v", err)
	}
	if len(page.Placeholders) != 6 {
		t.Fatalf("placeholders = %d, want 6", len(page.Placeholders))
	}

	for i, p := range page.Placeholders {
		wantModule := spec.Modules[i%2]
		if p.Module != wantModule {
			t.Errorf("placeholder %d module = %q, want %q", i, p.Module, wantModule)
		}
		if p.Seed != 100+int64(i) {
			t.Errorf("placeholder %d seed = %d, want %d", i, p.Seed, 100+int64(i))
		}
		if p.EstMillis <= 0 {
			t.Errorf("placeholder %d estimate = %d, want > 0", i, p.EstMillis)
		}
	}
	if got := page.Placeholders[0].ID; got != "vis-ca-1" {
		t.Errorf("first id = %q, want vis-ca-1", got)
	}
	if got := page.Placeholders[5].ID; got != "vis-ca-6" {
		t.Errorf("last id = %q, want vis-ca-6", got)
	}
}

func TestBuildPageErrors(t *testing.T) {
	st := *FindState("CA")

	_, err := BuildPage(PageSpec{State: st, Plots: 1}, nil)
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("empty rotation error = %v, want INVALID_CONFIG", err)
	}

	_, err = BuildPage(PageSpec{State: st, Plots: 1, Modules: []string{"violin"}}, nil)
	if !errors.Is(err, errors.ErrCodeModuleNotFound) {
		t.Errorf("unknown module error = %v, want MODULE_NOT_FOUND", err)
	}

	failing := func(string, int64, plots.Params) (json.RawMessage, error) {
		return nil, errors.New(errors.ErrCodeInternal, "boom")
	}
	_, err = BuildPage(PageSpec{State: st, Plots: 1, Modules: []string{"scatter"}}, failing)
	if !errors.Is(err, errors.ErrCodeRenderFailed) {
		t.Errorf("builder failure = %v, want RENDER_FAILED", err)
	}
}

func TestBuildPageUsesBuilder(t *testing.T) {
	st := *FindState("TX")
	var calls int
	builder := func(moduleID string, seed int64, p plots.Params) (json.RawMessage, error) {
		calls++
		return DirectBuilder(moduleID, seed, p)
	}

	page, err := BuildPage(PageSpec{State: st, Plots: 3, Modules: []string{"line"}, Seed: 1}, builder)
	if err != nil {
		t.Fatalf("BuildPage: %v", err)
	}
	if calls != 3 {
		t.Errorf("builder calls = %d, want 3", calls)
	}
	if len(page.Placeholders) != 3 {
		t.Errorf("placeholders = %d, want 3", len(page.Placeholders))
	}
}
