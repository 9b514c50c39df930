// Package bar builds categorical bar charts with random values.
package bar

import (
	"fmt"
	"time"

	"github.com/vegagallery/vegagallery/pkg/dataset"
	"github.com/vegagallery/vegagallery/pkg/plots"
	"github.com/vegagallery/vegagallery/pkg/vega"
)

var categories = []string{"Category A", "Category B", "Category C", "Category D", "Category E"}

// Module is the bar chart module.
var Module = &plots.Module{
	Meta: plots.Metadata{
		ID:                  "bar",
		Title:               "Categorical Bar Chart",
		Tags:                []string{"bar", "categorical", "comparison"},
		EstimatedRenderTime: 120 * time.Millisecond,
	},
	Build: Build,
}

// Build produces a bar chart with p.Categories bars valued in [10, 100).
func Build(seed int64, p plots.Params) vega.Spec {
	p = p.WithDefaults()
	n := p.Categories
	if n > len(categories) {
		n = len(categories)
	}

	src := dataset.New(seed)
	vals := src.IntsBetween(n, 10, 100)

	values := make([]map[string]any, n)
	for i := range values {
		values[i] = map[string]any{"category": categories[i], "value": vals[i]}
	}

	spec := vega.New()
	spec.Title = fmt.Sprintf("Bar Chart %d", seed)
	spec.Width = p.Width
	spec.Height = p.Height
	spec.Data = vega.Data{Values: values}
	spec.Mark = vega.Mark{Type: "bar"}
	spec.Encoding = vega.Encoding{
		X: &vega.Channel{Field: "category", Type: vega.Nominal, Title: "Category"},
		Y: &vega.Channel{Field: "value", Type: vega.Quantitative, Title: "Value"},
		Color: &vega.Channel{
			Field:  "category",
			Type:   vega.Nominal,
			Scale:  &vega.Scale{Range: vega.Grays},
			Legend: vega.NoLegend,
		},
		Tooltip: []vega.Channel{
			{Field: "category", Type: vega.Nominal},
			{Field: "value", Type: vega.Quantitative},
		},
	}
	spec.Config = vega.NeutralTheme()
	return spec
}
