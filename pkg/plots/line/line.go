// Package line builds time-series line charts with a noisy upward trend.
package line

import (
	"fmt"
	"time"

	"github.com/vegagallery/vegagallery/pkg/dataset"
	"github.com/vegagallery/vegagallery/pkg/plots"
	"github.com/vegagallery/vegagallery/pkg/vega"
)

// seriesStart anchors every series so charts are comparable across pages.
var seriesStart = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// Module is the line chart module.
var Module = &plots.Module{
	Meta: plots.Metadata{
		ID:                  "line",
		Title:               "Time Series Line Chart",
		Tags:                []string{"line", "time-series", "trend", "temporal"},
		EstimatedRenderTime: 130 * time.Millisecond,
	},
	Build: Build,
}

// Build produces a daily time series of p.Points values: a linear trend from
// 0 to 10 with gaussian noise at twice unit scale.
func Build(seed int64, p plots.Params) vega.Spec {
	p = p.WithDefaults()
	n := p.Points
	if n == 0 {
		n = plots.DefaultLinePoints
	}

	src := dataset.New(seed)
	trend := dataset.Trend(0, 10, n)
	noise := src.Normals(n)
	days := dataset.Days(seriesStart, n)

	values := make([]map[string]any, n)
	for i := range values {
		values[i] = map[string]any{
			"date":  days[i].Format("2006-01-02"),
			"value": trend[i] + noise[i]*2,
		}
	}

	spec := vega.New()
	spec.Title = fmt.Sprintf("Line Chart %d", seed)
	spec.Width = p.Width
	spec.Height = p.Height
	spec.Data = vega.Data{Values: values}
	spec.Mark = vega.Mark{Type: "line", Point: true, StrokeWidth: 2}
	spec.Encoding = vega.Encoding{
		X: &vega.Channel{Field: "date", Type: vega.Temporal, Title: "Date"},
		Y: &vega.Channel{Field: "value", Type: vega.Quantitative, Title: "Value"},
		Tooltip: []vega.Channel{
			{Field: "date", Type: vega.Temporal},
			{Field: "value", Type: vega.Quantitative},
		},
	}
	cfg := vega.NeutralTheme()
	cfg.Line = &vega.MarkConfig{Color: "#6c757d"}
	cfg.Point = &vega.MarkConfig{Color: "#6c757d", Size: 50}
	spec.Config = cfg
	return spec
}
