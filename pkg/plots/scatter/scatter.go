// Package scatter builds interactive scatter plots with normally distributed
// points in four categories.
package scatter

import (
	"fmt"
	"time"

	"github.com/vegagallery/vegagallery/pkg/dataset"
	"github.com/vegagallery/vegagallery/pkg/plots"
	"github.com/vegagallery/vegagallery/pkg/vega"
)

var categories = []string{"A", "B", "C", "D"}

// Module is the scatter plot module.
var Module = &plots.Module{
	Meta: plots.Metadata{
		ID:                  "scatter",
		Title:               "Interactive Scatter Plot",
		Tags:                []string{"scatter", "interactive", "points", "categories"},
		EstimatedRenderTime: 150 * time.Millisecond,
	},
	Build: Build,
}

// Build produces a pan/zoomable scatter plot with p.Points random points.
func Build(seed int64, p plots.Params) vega.Spec {
	p = p.WithDefaults()
	if p.Points == 0 {
		p.Points = plots.DefaultPoints
	}
	src := dataset.New(seed)

	xs := src.Normals(p.Points)
	ys := src.Normals(p.Points)
	cats := src.Choices(p.Points, categories)

	values := make([]map[string]any, p.Points)
	for i := range values {
		values[i] = map[string]any{"x": xs[i], "y": ys[i], "category": cats[i]}
	}

	spec := vega.New()
	spec.Title = fmt.Sprintf("Plot %d", seed)
	spec.Width = p.Width
	spec.Height = p.Height
	spec.Data = vega.Data{Values: values}
	spec.Mark = vega.Mark{Type: "circle", Size: 60}
	spec.Encoding = vega.Encoding{
		X: &vega.Channel{Field: "x", Type: vega.Quantitative, Scale: &vega.Scale{Domain: []float64{-4, 4}}},
		Y: &vega.Channel{Field: "y", Type: vega.Quantitative, Scale: &vega.Scale{Domain: []float64{-4, 4}}},
		Color: &vega.Channel{
			Field:  "category",
			Type:   vega.Nominal,
			Scale:  &vega.Scale{Range: vega.Grays[:len(categories)]},
			Legend: &vega.Legend{Title: "Category"},
		},
		Tooltip: []vega.Channel{
			{Field: "x", Type: vega.Quantitative},
			{Field: "y", Type: vega.Quantitative},
			{Field: "category", Type: vega.Nominal},
		},
	}
	spec.Params = []vega.Param{vega.PanZoom()}
	spec.Config = vega.NeutralTheme()
	return spec
}
