package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vegagallery/vegagallery/pkg/gallery"
	"github.com/vegagallery/vegagallery/pkg/pipeline"
)

// generateFlags holds the command-line flags for the generate command.
// Flags override the corresponding fields of the YAML configuration.
type generateFlags struct {
	configPath   string
	output       string
	title        string
	states       []string
	modules      []string
	plotsPerPage int
	baseSeed     int64
	cap          int
	refresh      bool
	noCache      bool
	interactive  bool
}

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	var flags generateFlags

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the static gallery",
		Long: `Generate the static HTML gallery from a YAML configuration.

Without a configuration file, generate builds the full fifty-state gallery
with every plot module and fifty charts per page. Flags override individual
configuration fields.

Chart specs are cached between runs, so regeneration with an unchanged
configuration is fast. Use --refresh to rebuild everything.

Examples:
  vegagallery generate                                # full gallery into ./docs
  vegagallery generate -c gallery.yaml -o public      # from config, custom dir
  vegagallery generate --states CA,TX --plots 10      # small test gallery
  vegagallery generate -i                             # pick states interactively`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd.Context(), flags)
		},
	}

	cmd.Flags().StringVarP(&flags.configPath, "config", "c", "", "gallery configuration file (YAML)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output directory")
	cmd.Flags().StringVar(&flags.title, "title", "", "gallery title")
	cmd.Flags().StringSliceVar(&flags.states, "states", nil, "state codes to generate (default: all fifty)")
	cmd.Flags().StringSliceVar(&flags.modules, "modules", nil, "plot module rotation (default: all modules)")
	cmd.Flags().IntVar(&flags.plotsPerPage, "plots", 0, "charts per page")
	cmd.Flags().Int64Var(&flags.baseSeed, "seed", 0, "base seed for the first chart")
	cmd.Flags().IntVar(&flags.cap, "cap", 0, "render concurrency cap embedded in pages")
	cmd.Flags().BoolVar(&flags.refresh, "refresh", false, "bypass cache and rebuild all specs")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVarP(&flags.interactive, "interactive", "i", false, "pick states interactively")

	return cmd
}

func (c *CLI) runGenerate(ctx context.Context, flags generateFlags) error {
	cfg, err := c.resolveConfig(flags)
	if err != nil {
		return err
	}

	if flags.interactive {
		picked, err := pickStates(cfg.States)
		if err != nil {
			return err
		}
		if picked == nil {
			printInfo("No states selected")
			return nil
		}
		cfg.States = picked
	}

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	opts := pipeline.Options{
		Config:  cfg,
		Output:  flags.output,
		Refresh: flags.refresh,
		Logger:  c.Logger,
	}
	if opts.Output == "" && c.Tool.Output != "" {
		opts.Output = c.Tool.Output
	}

	prog := newProgress(c.Logger)
	spin := newSpinnerWithContext(ctx, "Generating gallery...")
	spin.Start()

	result, err := runner.Execute(ctx, opts)
	spin.Stop()
	if err != nil {
		if spin.Cancelled() {
			return ctx.Err()
		}
		return err
	}
	prog.done(fmt.Sprintf("Generated %d pages", result.Stats.PageCount))

	printSuccess("Gallery written to %s", opts.Output)
	printStats(result.Stats.PageCount, result.Stats.ChartCount, result.CacheInfo.PageHits)
	printFile(filepath.Join(opts.Output, "index.html"))
	printNextStep("Preview the gallery", fmt.Sprintf("%s serve --dir %s", appName, opts.Output))
	return nil
}

// resolveConfig loads the gallery configuration and applies flag overrides.
func (c *CLI) resolveConfig(flags generateFlags) (gallery.Config, error) {
	cfg := gallery.DefaultConfig()
	if flags.configPath != "" {
		loaded, err := gallery.LoadConfig(flags.configPath)
		if err != nil {
			return gallery.Config{}, err
		}
		cfg = loaded
	}

	if flags.title != "" {
		cfg.Title = flags.title
	}
	if len(flags.states) > 0 {
		cfg.States = normalizeCodes(flags.states)
	}
	if len(flags.modules) > 0 {
		cfg.Modules = flags.modules
	}
	if flags.plotsPerPage > 0 {
		cfg.PlotsPerPage = flags.plotsPerPage
	}
	if flags.baseSeed != 0 {
		cfg.BaseSeed = flags.baseSeed
	}
	if flags.cap > 0 {
		cfg.ConcurrencyCap = flags.cap
	}

	if err := cfg.Validate(); err != nil {
		return gallery.Config{}, err
	}
	return cfg, nil
}

// normalizeCodes uppercases state codes so CA and ca are equivalent.
func normalizeCodes(codes []string) []string {
	out := make([]string, len(codes))
	for i, code := range codes {
		out[i] = strings.ToUpper(strings.TrimSpace(code))
	}
	return out
}
