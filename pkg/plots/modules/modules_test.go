package modules

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/vegagallery/vegagallery/pkg/plots"
)

func TestFind(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want bool
	}{
		{name: "scatter", id: "scatter", want: true},
		{name: "bar", id: "bar", want: true},
		{name: "line", id: "line", want: true},
		{name: "heatmap", id: "heatmap", want: true},
		{name: "unknown", id: "sankey", want: false},
		{name: "empty", id: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Find(tt.id)
			if (m != nil) != tt.want {
				t.Errorf("Find(%q) = %v, want found=%v", tt.id, m, tt.want)
			}
			if m != nil && m.Meta.ID != tt.id {
				t.Errorf("Find(%q).Meta.ID = %q", tt.id, m.Meta.ID)
			}
		})
	}
}

func TestAllModulesComplete(t *testing.T) {
	want := []string{"scatter", "bar", "line", "heatmap"}
	if got := IDs(); !reflect.DeepEqual(got, want) {
		t.Errorf("IDs() = %v, want %v", got, want)
	}

	for _, m := range All {
		if m.Meta.Title == "" {
			t.Errorf("module %q has no title", m.Meta.ID)
		}
		if len(m.Meta.Tags) == 0 {
			t.Errorf("module %q has no tags", m.Meta.ID)
		}
		if m.Meta.EstimatedRenderTime <= 0 {
			t.Errorf("module %q has no estimated render time", m.Meta.ID)
		}
		if m.Build == nil {
			t.Errorf("module %q has no build function", m.Meta.ID)
		}
	}
}

func TestBuildDeterministic(t *testing.T) {
	for _, m := range All {
		t.Run(m.Meta.ID, func(t *testing.T) {
			a, err := json.Marshal(m.Build(42, plots.Params{}))
			if err != nil {
				t.Fatalf("marshal first build: %v", err)
			}
			b, err := json.Marshal(m.Build(42, plots.Params{}))
			if err != nil {
				t.Fatalf("marshal second build: %v", err)
			}
			if string(a) != string(b) {
				t.Error("same seed produced different specs")
			}

			c, err := json.Marshal(m.Build(43, plots.Params{}))
			if err != nil {
				t.Fatalf("marshal third build: %v", err)
			}
			if string(a) == string(c) {
				t.Error("different seeds produced identical specs")
			}
		})
	}
}

func TestBuildRespectsParams(t *testing.T) {
	spec := Find("scatter").Build(7, plots.Params{Points: 10, Width: 500, Height: 400})
	if len(spec.Data.Values) != 10 {
		t.Errorf("scatter with Points=10 produced %d values", len(spec.Data.Values))
	}
	if spec.Width != 500 || spec.Height != 400 {
		t.Errorf("spec size = %dx%d, want 500x400", spec.Width, spec.Height)
	}

	hm := Find("heatmap").Build(7, plots.Params{GridSize: 4})
	if len(hm.Data.Values) != 16 {
		t.Errorf("heatmap with GridSize=4 produced %d cells, want 16", len(hm.Data.Values))
	}

	br := Find("bar").Build(7, plots.Params{Categories: 3})
	if len(br.Data.Values) != 3 {
		t.Errorf("bar with Categories=3 produced %d values", len(br.Data.Values))
	}
}
