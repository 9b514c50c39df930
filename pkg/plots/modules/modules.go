// Package modules provides the complete list of registered plot modules.
//
// This package exists to break import cycles: the individual module packages
// (scatter, bar, etc.) import pkg/plots, so pkg/plots cannot import them
// back. Consumers that need the full module list import this package.
//
// Usage:
//
//	import "github.com/vegagallery/vegagallery/pkg/plots/modules"
//
//	for _, m := range modules.All {
//	    fmt.Println(m.Meta.ID)
//	}
package modules

import (
	"github.com/vegagallery/vegagallery/pkg/plots"
	"github.com/vegagallery/vegagallery/pkg/plots/bar"
	"github.com/vegagallery/vegagallery/pkg/plots/heatmap"
	"github.com/vegagallery/vegagallery/pkg/plots/line"
	"github.com/vegagallery/vegagallery/pkg/plots/scatter"
)

// All is the canonical list of registered plot modules.
var All = []*plots.Module{
	scatter.Module,
	bar.Module,
	line.Module,
	heatmap.Module,
}

// Find returns the module with the given id, or nil if not found.
func Find(id string) *plots.Module {
	return plots.FindModule(id, All)
}

// IDs returns the identifiers of all registered modules, in registry order.
func IDs() []string {
	ids := make([]string, len(All))
	for i, m := range All {
		ids[i] = m.Meta.ID
	}
	return ids
}
