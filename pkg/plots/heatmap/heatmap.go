// Package heatmap builds rectangular intensity heatmaps.
package heatmap

import (
	"fmt"
	"time"

	"github.com/vegagallery/vegagallery/pkg/dataset"
	"github.com/vegagallery/vegagallery/pkg/plots"
	"github.com/vegagallery/vegagallery/pkg/vega"
)

// Module is the heatmap module.
var Module = &plots.Module{
	Meta: plots.Metadata{
		ID:                  "heatmap",
		Title:               "Correlation Heatmap",
		Tags:                []string{"heatmap", "matrix", "correlation", "intensity"},
		EstimatedRenderTime: 180 * time.Millisecond,
	},
	Build: Build,
}

// Build produces a p.GridSize x p.GridSize heatmap with uniform random
// intensities in [0, 1).
func Build(seed int64, p plots.Params) vega.Spec {
	p = p.WithDefaults()
	side := p.GridSize

	src := dataset.New(seed)
	intensities := src.Floats(side * side)

	values := make([]map[string]any, 0, side*side)
	for i := 0; i < side; i++ {
		for j := 0; j < side; j++ {
			values = append(values, map[string]any{
				"x":     i,
				"y":     j,
				"value": intensities[i*side+j],
			})
		}
	}

	spec := vega.New()
	spec.Title = fmt.Sprintf("Heatmap %d", seed)
	spec.Width = p.Width
	spec.Height = p.Height
	spec.Data = vega.Data{Values: values}
	spec.Mark = vega.Mark{Type: "rect"}
	spec.Encoding = vega.Encoding{
		X: &vega.Channel{Field: "x", Type: vega.Ordinal, Title: "X Axis"},
		Y: &vega.Channel{Field: "y", Type: vega.Ordinal, Title: "Y Axis"},
		Color: &vega.Channel{
			Field:  "value",
			Type:   vega.Quantitative,
			Scale:  &vega.Scale{Scheme: "greys"},
			Legend: &vega.Legend{Title: "Intensity"},
		},
		Tooltip: []vega.Channel{
			{Field: "x", Type: vega.Ordinal},
			{Field: "y", Type: vega.Ordinal},
			{Field: "value", Type: vega.Quantitative},
		},
	}
	spec.Config = vega.NeutralTheme()
	return spec
}
