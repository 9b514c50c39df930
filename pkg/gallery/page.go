package gallery

import (
	"encoding/json"
	"fmt"

	"github.com/vegagallery/vegagallery/pkg/errors"
	"github.com/vegagallery/vegagallery/pkg/plots"
	"github.com/vegagallery/vegagallery/pkg/plots/modules"
)

// PageSpec is the fully resolved recipe for one state page: the top-level
// configuration with the state's override folded in.
type PageSpec struct {
	State    State
	Plots    int
	Modules  []string
	Points   int // 0 = module default
	GridSize int // 0 = module default
	Seed     int64
}

// Placeholder is one chart slot on a generated page.
type Placeholder struct {
	// ID is the DOM container id, unique within the gallery.
	ID string

	// Module is the plot module that produced the spec.
	Module string

	// Seed the spec was built from.
	Seed int64

	// EstMillis is the module's estimated render time in milliseconds,
	// carried into the page for simulation and diagnostics.
	EstMillis int

	// Spec is the serialized chart specification embedded in the page.
	// Keeping it as raw JSON makes cached pages byte-identical to fresh
	// builds.
	Spec json.RawMessage
}

// Page is one generated state page.
type Page struct {
	State        State
	Placeholders []Placeholder
}

// SpecBuilder produces serialized chart specs for a module, seed and
// parameters. The default builder calls the module directly; the pipeline
// substitutes a caching builder.
type SpecBuilder func(moduleID string, seed int64, p plots.Params) (json.RawMessage, error)

// DirectBuilder builds specs straight from the module registry.
func DirectBuilder(moduleID string, seed int64, p plots.Params) (json.RawMessage, error) {
	m := modules.Find(moduleID)
	if m == nil {
		return nil, errors.New(errors.ErrCodeModuleNotFound, "unknown plot module: %s", moduleID)
	}
	spec := m.Build(seed, p)
	data, err := json.Marshal(spec)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "marshal %s spec", moduleID)
	}
	return data, nil
}

// PageSpecFor resolves the page recipe for a state, applying its override if
// present. firstSeed is the seed of the page's first placeholder.
func (c Config) PageSpecFor(st State, firstSeed int64) PageSpec {
	spec := PageSpec{
		State:   st,
		Plots:   c.PlotsPerPage,
		Modules: c.ModuleRotation(),
		Seed:    firstSeed,
	}
	ov, ok := c.Overrides[st.Code]
	if !ok {
		return spec
	}
	if ov.PlotsPerPage != nil {
		spec.Plots = *ov.PlotsPerPage
	}
	if len(ov.Modules) > 0 {
		spec.Modules = ov.Modules
	}
	if ov.Points != nil {
		spec.Points = *ov.Points
	}
	if ov.GridSize != nil {
		spec.GridSize = *ov.GridSize
	}
	if ov.Seed != nil {
		spec.Seed = *ov.Seed
	}
	return spec
}

// BuildPage produces the page for one state: spec.Plots placeholders cycling
// through the module rotation, seeded consecutively from spec.Seed.
func BuildPage(spec PageSpec, build SpecBuilder) (Page, error) {
	if build == nil {
		build = DirectBuilder
	}
	if len(spec.Modules) == 0 {
		return Page{}, errors.New(errors.ErrCodeInvalidConfig, "page %s has no modules", spec.State.Code)
	}

	page := Page{
		State:        spec.State,
		Placeholders: make([]Placeholder, 0, spec.Plots),
	}
	params := plots.Params{Points: spec.Points, GridSize: spec.GridSize}

	for i := 0; i < spec.Plots; i++ {
		moduleID := spec.Modules[i%len(spec.Modules)]
		m := modules.Find(moduleID)
		if m == nil {
			return Page{}, errors.New(errors.ErrCodeModuleNotFound, "unknown plot module: %s", moduleID)
		}
		seed := spec.Seed + int64(i)

		chart, err := build(moduleID, seed, params)
		if err != nil {
			return Page{}, errors.Wrap(errors.ErrCodeRenderFailed, err,
				"build chart %d on page %s", i+1, spec.State.Code)
		}

		page.Placeholders = append(page.Placeholders, Placeholder{
			ID:        fmt.Sprintf("vis-%s-%d", spec.State.Slug(), i+1),
			Module:    moduleID,
			Seed:      seed,
			EstMillis: int(m.Meta.EstimatedRenderTime.Milliseconds()),
			Spec:      chart,
		})
	}
	return page, nil
}
