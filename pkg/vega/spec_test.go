package vega

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestSpecMarshal(t *testing.T) {
	spec := New()
	spec.Title = "Plot 1"
	spec.Width = 300
	spec.Height = 300
	spec.Data = Data{Values: []map[string]any{{"x": 1.5, "y": -0.25, "category": "A"}}}
	spec.Mark = Mark{Type: "circle", Size: 60}
	spec.Encoding = Encoding{
		X:       &Channel{Field: "x", Type: Quantitative, Scale: &Scale{Domain: []float64{-4, 4}}},
		Y:       &Channel{Field: "y", Type: Quantitative, Scale: &Scale{Domain: []float64{-4, 4}}},
		Color:   &Channel{Field: "category", Type: Nominal, Legend: &Legend{Title: "Category"}},
		Tooltip: []Channel{{Field: "x", Type: Quantitative}, {Field: "category", Type: Nominal}},
	}
	spec.Params = []Param{PanZoom()}
	spec.Config = NeutralTheme()

	data, err := json.Marshal(spec)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if decoded["$schema"] != SchemaURL {
		t.Errorf("$schema = %v, want %v", decoded["$schema"], SchemaURL)
	}

	mark, ok := decoded["mark"].(map[string]any)
	if !ok {
		t.Fatalf("mark is %T, want object", decoded["mark"])
	}
	if mark["type"] != "circle" {
		t.Errorf("mark.type = %v, want circle", mark["type"])
	}

	params, ok := decoded["params"].([]any)
	if !ok || len(params) != 1 {
		t.Fatalf("params = %v, want one entry", decoded["params"])
	}
	p := params[0].(map[string]any)
	if p["select"] != "interval" || p["bind"] != "scales" {
		t.Errorf("pan/zoom param = %v", p)
	}
}

func TestHiddenLegendMarshalsToNull(t *testing.T) {
	ch := Channel{Field: "category", Type: Nominal, Legend: NoLegend}
	data, err := json.Marshal(ch)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.Contains(string(data), `"legend":null`) {
		t.Errorf("hidden legend did not marshal to null: %s", data)
	}
}

func TestOmittedLegend(t *testing.T) {
	ch := Channel{Field: "x", Type: Quantitative}
	data, err := json.Marshal(ch)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if strings.Contains(string(data), "legend") {
		t.Errorf("nil legend should be omitted: %s", data)
	}
}

func TestNeutralThemeFrameless(t *testing.T) {
	cfg := NeutralTheme()
	data, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	// strokeWidth: 0 must survive marshaling; that is what removes the frame.
	if !strings.Contains(string(data), `"strokeWidth":0`) {
		t.Errorf("view strokeWidth 0 missing: %s", data)
	}
}
