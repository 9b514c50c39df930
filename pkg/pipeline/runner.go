package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vegagallery/vegagallery/pkg/cache"
	"github.com/vegagallery/vegagallery/pkg/errors"
	"github.com/vegagallery/vegagallery/pkg/gallery"
	"github.com/vegagallery/vegagallery/pkg/observability"
	"github.com/vegagallery/vegagallery/pkg/plots"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete build → render → write pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	logger := r.logger(opts)
	result := &Result{}

	// Stage 1: Build
	buildStart := time.Now()
	site, err := r.BuildSite(ctx, opts, &result.CacheInfo)
	if err != nil {
		return nil, err
	}
	result.Site = site
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.PageCount = len(site.Pages)
	result.Stats.ChartCount = site.TotalCharts()

	logger.Info("built pages",
		"pages", result.Stats.PageCount,
		"charts", result.Stats.ChartCount,
		"pageHits", result.CacheInfo.PageHits,
		"specHits", result.CacheInfo.SpecHits,
		"duration", result.Stats.BuildTime)

	// Stages 2+3: Render and write
	writeStart := time.Now()
	files, err := r.WriteSite(ctx, site, opts.Output)
	if err != nil {
		return nil, err
	}
	result.Files = files
	result.Stats.WriteTime = time.Since(writeStart)

	logger.Info("wrote gallery",
		"dir", opts.Output,
		"files", len(files),
		"duration", result.Stats.WriteTime)

	return result, nil
}

// BuildSite builds every selected state page. Pages consume consecutive
// seeds from the configured base seed, so the full gallery is reproducible
// from the configuration alone.
func (r *Runner) BuildSite(ctx context.Context, opts Options, info *CacheInfo) (*gallery.Site, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if info == nil {
		info = &CacheInfo{}
	}

	site := &gallery.Site{
		Config:      opts.Config,
		RunID:       opts.RunID,
		GeneratedAt: time.Now().UTC(),
	}

	seed := opts.Config.BaseSeed
	for _, st := range opts.Config.SelectedStates() {
		pageSpec := opts.Config.PageSpecFor(st, seed)

		observability.Generator().OnPageStart(ctx, st.Code, pageSpec.Plots)
		pageStart := time.Now()
		page, hit, err := r.BuildPageWithCacheInfo(ctx, pageSpec, opts, info)
		observability.Generator().OnPageComplete(ctx, st.Code, pageSpec.Plots, time.Since(pageStart), err)
		if err != nil {
			return nil, err
		}
		if hit {
			info.PageHits++
		}

		r.logger(opts).Debug("built page",
			"state", st.Code,
			"charts", len(page.Placeholders),
			"cached", hit)

		site.Pages = append(site.Pages, page)
		seed += int64(pageSpec.Plots)
	}
	return site, nil
}

// BuildPageWithCacheInfo builds one state page, serving it whole from the
// cache when possible and caching it after a fresh build.
func (r *Runner) BuildPageWithCacheInfo(ctx context.Context, spec gallery.PageSpec, opts Options, info *CacheInfo) (gallery.Page, bool, error) {
	pageKey := r.Keyer.PageKey(spec.State.Code, cache.PageKeyOpts{
		Plots:    spec.Plots,
		Modules:  spec.Modules,
		Points:   spec.Points,
		GridSize: spec.GridSize,
		Seed:     spec.Seed,
	})

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, pageKey); err == nil && hit {
			var page gallery.Page
			if err := json.Unmarshal(data, &page); err == nil {
				observability.Cache().OnCacheHit(ctx, "page")
				return page, true, nil
			}
		}
	}
	observability.Cache().OnCacheMiss(ctx, "page")

	page, err := gallery.BuildPage(spec, r.cachingBuilder(ctx, opts, info))
	if err != nil {
		return gallery.Page{}, false, err
	}

	// Cache the result
	if data, err := json.Marshal(page); err == nil {
		_ = r.Cache.Set(ctx, pageKey, data, cache.TTLPage)
		observability.Cache().OnCacheSet(ctx, "page", len(data))
	}
	return page, false, nil
}

// BuildPage is a convenience wrapper that calls BuildPageWithCacheInfo and
// discards the cache hit info.
func (r *Runner) BuildPage(ctx context.Context, spec gallery.PageSpec, opts Options) (gallery.Page, error) {
	page, _, err := r.BuildPageWithCacheInfo(ctx, spec, opts, &CacheInfo{})
	return page, err
}

// cachingBuilder wraps the configured spec builder with per-spec caching.
// Specs are deterministic in their key, so cached bytes are returned as-is.
func (r *Runner) cachingBuilder(ctx context.Context, opts Options, info *CacheInfo) gallery.SpecBuilder {
	return func(moduleID string, seed int64, p plots.Params) (json.RawMessage, error) {
		key := r.Keyer.SpecKey(moduleID, seed, cache.SpecKeyOpts{
			Points:     p.Points,
			Categories: p.Categories,
			GridSize:   p.GridSize,
			Width:      p.Width,
			Height:     p.Height,
		})

		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				info.SpecHits++
				observability.Cache().OnCacheHit(ctx, "spec")
				return data, nil
			}
		}

		data, err := opts.Builder(moduleID, seed, p)
		if err != nil {
			return nil, err
		}
		info.SpecMisses++
		observability.Cache().OnCacheMiss(ctx, "spec")

		_ = r.Cache.Set(ctx, key, data, cache.TTLSpec)
		observability.Cache().OnCacheSet(ctx, "spec", len(data))
		return data, nil
	}
}

// WriteSite renders the site and writes pages, the index and static assets
// under dir. It returns the written file names, relative to dir.
func (r *Runner) WriteSite(ctx context.Context, site *gallery.Site, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "create output dir %s", dir)
	}

	// Pages, index and assets
	fileCount := len(site.Pages) + 1 + len(gallery.AssetNames)
	observability.Generator().OnWriteStart(ctx, dir, fileCount)
	writeStart := time.Now()

	files, err := r.writeSiteFiles(site, dir)
	observability.Generator().OnWriteComplete(ctx, dir, fileCount, time.Since(writeStart), err)
	return files, err
}

func (r *Runner) writeSiteFiles(site *gallery.Site, dir string) ([]string, error) {
	var files []string
	var buf bytes.Buffer

	for _, page := range site.Pages {
		buf.Reset()
		if err := gallery.RenderPage(&buf, site, page); err != nil {
			return nil, err
		}
		name := gallery.PageFilename(page.State)
		if err := writeFile(dir, name, buf.Bytes()); err != nil {
			return nil, err
		}
		files = append(files, name)
	}

	buf.Reset()
	if err := gallery.RenderIndex(&buf, site); err != nil {
		return nil, err
	}
	if err := writeFile(dir, "index.html", buf.Bytes()); err != nil {
		return nil, err
	}
	files = append(files, "index.html")

	for _, name := range gallery.AssetNames {
		data, err := gallery.Asset(name)
		if err != nil {
			return nil, err
		}
		if err := writeFile(dir, name, data); err != nil {
			return nil, err
		}
		files = append(files, name)
	}
	return files, nil
}

func writeFile(dir, name string, data []byte) error {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	return nil
}

// logger prefers the per-run logger over the runner's own.
func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}

// Close releases the runner's cache resources.
func (r *Runner) Close() error {
	return r.Cache.Close()
}
