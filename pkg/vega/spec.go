// Package vega declares the subset of the Vega-Lite v5 specification the
// gallery emits. Specs are plain data: plot modules build them, the generator
// serializes them into page HTML, and the browser-side embed library does the
// actual drawing.
package vega

import "encoding/json"

// SchemaURL identifies the Vega-Lite version the emitted specs target.
const SchemaURL = "https://vega.github.io/schema/vega-lite/v5.json"

// Spec is a single top-level Vega-Lite chart specification.
type Spec struct {
	Schema   string   `json:"$schema"`
	Title    string   `json:"title,omitempty"`
	Width    int      `json:"width,omitempty"`
	Height   int      `json:"height,omitempty"`
	Data     Data     `json:"data"`
	Mark     Mark     `json:"mark"`
	Encoding Encoding `json:"encoding"`
	Params   []Param  `json:"params,omitempty"`
	Config   *Config  `json:"config,omitempty"`
}

// New returns a Spec with the schema URL set.
func New() Spec {
	return Spec{Schema: SchemaURL}
}

// Data holds inline data values. The gallery always inlines data so pages
// are self-contained.
type Data struct {
	Values []map[string]any `json:"values"`
}

// Mark describes how data points are drawn.
type Mark struct {
	Type        string  `json:"type"`
	Size        float64 `json:"size,omitempty"`
	Point       bool    `json:"point,omitempty"`
	StrokeWidth float64 `json:"strokeWidth,omitempty"`
}

// Encoding maps data fields to visual channels.
type Encoding struct {
	X       *Channel  `json:"x,omitempty"`
	Y       *Channel  `json:"y,omitempty"`
	Color   *Channel  `json:"color,omitempty"`
	Tooltip []Channel `json:"tooltip,omitempty"`
}

// Channel binds one data field to one visual channel.
type Channel struct {
	Field  string  `json:"field"`
	Type   string  `json:"type"`
	Title  string  `json:"title,omitempty"`
	Scale  *Scale  `json:"scale,omitempty"`
	Legend *Legend `json:"legend,omitempty"`
}

// Field type constants for Channel.Type.
const (
	Quantitative = "quantitative"
	Nominal      = "nominal"
	Ordinal      = "ordinal"
	Temporal     = "temporal"
)

// Scale customizes the mapping from data domain to visual range.
type Scale struct {
	Domain []float64 `json:"domain,omitempty"`
	Range  []string  `json:"range,omitempty"`
	Scheme string    `json:"scheme,omitempty"`
}

// Legend configures a channel legend. A Legend with Hidden set marshals to
// JSON null, which is how Vega-Lite suppresses the legend entirely.
type Legend struct {
	Title  string `json:"title,omitempty"`
	Hidden bool   `json:"-"`
}

// NoLegend suppresses the legend for a channel.
var NoLegend = &Legend{Hidden: true}

// MarshalJSON emits null for hidden legends.
func (l Legend) MarshalJSON() ([]byte, error) {
	if l.Hidden {
		return []byte("null"), nil
	}
	type alias Legend
	return json.Marshal(alias(l))
}

// Param declares a chart parameter. The only parameter the gallery uses is
// the scale-bound interval selection that makes charts pan/zoomable.
type Param struct {
	Name   string `json:"name"`
	Select string `json:"select,omitempty"`
	Bind   string `json:"bind,omitempty"`
}

// PanZoom returns the interval selection parameter bound to the chart scales.
func PanZoom() Param {
	return Param{Name: "pan_zoom", Select: "interval", Bind: "scales"}
}

// Config holds top-level chart configuration.
type Config struct {
	Axis  *AxisConfig `json:"axis,omitempty"`
	View  *ViewConfig `json:"view,omitempty"`
	Line  *MarkConfig `json:"line,omitempty"`
	Point *MarkConfig `json:"point,omitempty"`
}

// AxisConfig styles chart axes.
type AxisConfig struct {
	GridColor   string  `json:"gridColor,omitempty"`
	GridOpacity float64 `json:"gridOpacity,omitempty"`
	GridWidth   float64 `json:"gridWidth,omitempty"`
}

// ViewConfig styles the chart view frame.
type ViewConfig struct {
	StrokeWidth *float64 `json:"strokeWidth,omitempty"`
}

// MarkConfig styles a mark type globally.
type MarkConfig struct {
	Color string  `json:"color,omitempty"`
	Size  float64 `json:"size,omitempty"`
}

// NeutralTheme is the shared muted gray styling applied by every plot module.
// Frameless views with faint grid lines keep hundreds of charts on one page
// visually quiet.
func NeutralTheme() *Config {
	zero := 0.0
	return &Config{
		Axis: &AxisConfig{
			GridColor:   "#e9ecef",
			GridOpacity: 0.5,
			GridWidth:   0.5,
		},
		View: &ViewConfig{StrokeWidth: &zero},
	}
}

// Grays is the neutral categorical color range shared by the plot modules.
var Grays = []string{"#6c757d", "#868e96", "#adb5bd", "#ced4da", "#dee2e6"}
