// Package gallery builds the static gallery: it resolves YAML configuration
// into per-state page specifications, invokes plot modules to produce chart
// specs, and renders the HTML pages that embed them together with the
// lazy-load client script.
package gallery

import (
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vegagallery/vegagallery/pkg/errors"
	"github.com/vegagallery/vegagallery/pkg/plots/modules"
	"github.com/vegagallery/vegagallery/pkg/sched"
)

// Default configuration values.
const (
	DefaultTitle        = "Vega Gallery"
	DefaultOutput       = "docs"
	DefaultPlotsPerPage = 50
	DefaultBaseSeed     = 1
)

// Config is the YAML gallery configuration.
type Config struct {
	// Title is the gallery name shown on every page.
	Title string `yaml:"title"`

	// Output is the directory generated files are written to.
	Output string `yaml:"output"`

	// PlotsPerPage is the default number of charts per state page.
	PlotsPerPage int `yaml:"plots_per_page"`

	// ConcurrencyCap bounds simultaneous in-flight renders in the client
	// script. Zero uses the scheduler default.
	ConcurrencyCap int `yaml:"concurrency_cap"`

	// BaseSeed is the first chart seed; placeholders are seeded
	// consecutively from it across pages so every chart is distinct and
	// the whole gallery is reproducible.
	BaseSeed int64 `yaml:"base_seed"`

	// Modules is the plot module rotation for pages without an override.
	// Empty means all registered modules.
	Modules []string `yaml:"modules"`

	// States narrows the gallery to the listed state codes. Empty means
	// all fifty states.
	States []string `yaml:"states"`

	// Overrides customizes individual state pages, keyed by state code.
	Overrides map[string]Override `yaml:"overrides"`
}

// Override adjusts one state's page. Nil pointer fields inherit the
// top-level configuration.
type Override struct {
	PlotsPerPage *int     `yaml:"plots_per_page"`
	Modules      []string `yaml:"modules"`
	Points       *int     `yaml:"points"`
	GridSize     *int     `yaml:"grid_size"`
	Seed         *int64   `yaml:"seed"`
}

// DefaultConfig returns the configuration used when no file is given: the
// full fifty-state gallery with every registered module.
func DefaultConfig() Config {
	return Config{
		Title:          DefaultTitle,
		Output:         DefaultOutput,
		PlotsPerPage:   DefaultPlotsPerPage,
		ConcurrencyCap: sched.DefaultCap,
		BaseSeed:       DefaultBaseSeed,
	}
}

// LoadConfig reads and validates a YAML configuration file.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, errors.New(errors.ErrCodeFileNotFound, "config file not found: %s", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeIO, err, "open config %s", path)
	}
	defer f.Close()
	return ParseConfig(f)
}

// ParseConfig decodes and validates YAML configuration from r.
func ParseConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks module ids and state codes and fills zero values with
// defaults.
func (c *Config) Validate() error {
	if c.Title == "" {
		c.Title = DefaultTitle
	}
	if c.Output == "" {
		c.Output = DefaultOutput
	}
	if c.PlotsPerPage <= 0 {
		c.PlotsPerPage = DefaultPlotsPerPage
	}
	if c.ConcurrencyCap <= 0 {
		c.ConcurrencyCap = sched.DefaultCap
	}
	if c.BaseSeed == 0 {
		c.BaseSeed = DefaultBaseSeed
	}
	if err := errors.ValidateOutputDir(c.Output); err != nil {
		return err
	}

	for _, id := range c.Modules {
		if modules.Find(id) == nil {
			return errors.New(errors.ErrCodeInvalidModule, "unknown plot module: %s", id)
		}
	}
	for _, code := range c.States {
		if FindState(code) == nil {
			return errors.New(errors.ErrCodeInvalidState, "unknown state code: %s", code)
		}
	}
	for code, ov := range c.Overrides {
		if FindState(code) == nil {
			return errors.New(errors.ErrCodeInvalidState, "override for unknown state code: %s", code)
		}
		for _, id := range ov.Modules {
			if modules.Find(id) == nil {
				return errors.New(errors.ErrCodeInvalidModule, "override for %s names unknown module: %s", code, id)
			}
		}
		if ov.PlotsPerPage != nil && *ov.PlotsPerPage <= 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "override for %s: plots_per_page must be positive", code)
		}
	}
	return nil
}

// SelectedStates resolves the configured state filter to concrete states, in
// canonical order.
func (c Config) SelectedStates() []State {
	if len(c.States) == 0 {
		out := make([]State, len(States))
		copy(out, States)
		return out
	}
	selected := make(map[string]bool, len(c.States))
	for _, code := range c.States {
		if st := FindState(code); st != nil {
			selected[st.Code] = true
		}
	}
	var out []State
	for _, st := range States {
		if selected[st.Code] {
			out = append(out, st)
		}
	}
	return out
}

// ModuleRotation returns the module ids charts cycle through on a default
// page.
func (c Config) ModuleRotation() []string {
	if len(c.Modules) > 0 {
		return c.Modules
	}
	return modules.IDs()
}
