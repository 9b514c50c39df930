// Package pipeline provides the core generation pipeline for the gallery.
//
// This package implements the complete build → render → write pipeline that
// can be used by CLI and server components. By centralizing this logic, we
// ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Build: Resolve configuration into state pages of chart specs
//  2. Render: Produce the HTML documents that embed the specs
//  3. Write: Emit pages, the index, and static assets to the output directory
//
// Build results are cached per chart spec and per assembled page, so repeat
// runs with an unchanged configuration skip spec construction entirely.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{Config: cfg}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Stats.ChartCount, "charts written")
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vegagallery/vegagallery/pkg/errors"
	"github.com/vegagallery/vegagallery/pkg/gallery"
)

// Options contains all configuration for the generation pipeline.
type Options struct {
	// Config is the resolved gallery configuration.
	Config gallery.Config `json:"config"`

	// Output overrides the configured output directory when non-empty.
	Output string `json:"output,omitempty"`

	// RunID tags the generated pages. A fresh ID is assigned when empty.
	RunID string `json:"run_id,omitempty"`

	// Refresh skips cache reads so every spec is rebuilt.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger  *log.Logger         `json:"-"`
	Builder gallery.SpecBuilder `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.Config.Validate(); err != nil {
		return err
	}
	if o.Output == "" {
		o.Output = o.Config.Output
	}
	if o.RunID == "" {
		o.RunID = uuid.NewString()
	}
	if o.Builder == nil {
		o.Builder = gallery.DirectBuilder
	}
	if len(o.Config.SelectedStates()) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "no states selected")
	}
	o.validated = true
	return nil
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Site is the fully built gallery.
	Site *gallery.Site

	// Files lists the paths written, relative to the output directory.
	Files []string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks cache effectiveness per stage.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	PageCount  int
	ChartCount int
	BuildTime  time.Duration
	WriteTime  time.Duration
}

// CacheInfo tracks cache hits during the build stage.
type CacheInfo struct {
	PageHits   int // Pages served whole from cache
	SpecHits   int // Individual specs served from cache
	SpecMisses int // Individual specs built fresh
}
