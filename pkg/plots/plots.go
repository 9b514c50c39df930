// Package plots defines the plot module contract for the gallery.
//
// A plot module is a pure function from a seed and parameters to a Vega-Lite
// chart specification, plus metadata describing the module. Modules are
// stateless and independent; the same seed and parameters always produce the
// same spec. Registration is compile-time via [modules.All]: consumers that
// need the full module list import the modules subpackage, which breaks the
// import cycle between this package and the individual module packages.
package plots

import (
	"time"

	"github.com/vegagallery/vegagallery/pkg/vega"
)

// Default parameter values shared across modules.
const (
	DefaultPoints     = 100
	DefaultLinePoints = 50
	DefaultCategories = 5
	DefaultGridSize   = 10
	DefaultWidth      = 300
	DefaultHeight     = 300
)

// Metadata describes a plot module for discovery and simulation.
type Metadata struct {
	// ID is the module identifier used in configuration (e.g. "scatter").
	ID string

	// Title is the human-readable module name.
	Title string

	// Tags classify the module for listing.
	Tags []string

	// EstimatedRenderTime is the approximate browser-side render cost of one
	// chart from this module, used by the scroll simulator.
	EstimatedRenderTime time.Duration
}

// Params carries per-chart build parameters. Zero values mean "use the
// module default". Points defaults are module-specific (scatter draws 100
// points, line charts 50), so WithDefaults leaves Points alone.
type Params struct {
	Points     int // data points for scatter and line charts
	Categories int // category count for bar charts (max 5)
	GridSize   int // cells per side for heatmaps
	Width      int // chart width in pixels
	Height     int // chart height in pixels
}

// WithDefaults returns a copy of p with zero fields filled in.
func (p Params) WithDefaults() Params {
	if p.Categories == 0 {
		p.Categories = DefaultCategories
	}
	if p.GridSize == 0 {
		p.GridSize = DefaultGridSize
	}
	if p.Width == 0 {
		p.Width = DefaultWidth
	}
	if p.Height == 0 {
		p.Height = DefaultHeight
	}
	return p
}

// BuildFunc produces a chart spec from a seed and parameters.
type BuildFunc func(seed int64, p Params) vega.Spec

// Module pairs metadata with a build function.
type Module struct {
	Meta  Metadata
	Build BuildFunc
}

// FindModule returns the module with the given id from the provided list,
// or nil if not found.
func FindModule(id string, mods []*Module) *Module {
	for _, m := range mods {
		if m.Meta.ID == id {
			return m
		}
	}
	return nil
}
