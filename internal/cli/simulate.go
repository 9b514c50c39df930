package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vegagallery/vegagallery/pkg/errors"
	"github.com/vegagallery/vegagallery/pkg/gallery"
	"github.com/vegagallery/vegagallery/pkg/plots/modules"
	"github.com/vegagallery/vegagallery/pkg/sched/sim"
)

// simulateFlags holds the command-line flags for the simulate command.
type simulateFlags struct {
	configPath string
	state      string
	charts     int
	cap        int
	pattern    string
	interval   time.Duration
	seed       int64
	timeScale  float64
}

// simulateCommand creates the simulate command.
func (c *CLI) simulateCommand() *cobra.Command {
	flags := simulateFlags{
		state:     "CA",
		pattern:   string(sim.PatternBurst),
		interval:  50 * time.Millisecond,
		timeScale: 10,
	}

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Replay a visibility pattern against the render scheduler",
		Long: `Replay a synthetic visibility pattern against the render scheduler.

The simulation mirrors what the lazy-load script does in the browser: each
chart waits for a visibility event, renders for its module's estimated
render time, and at most the configured cap render simultaneously.

Patterns:
  burst    every chart becomes visible at once (worst case)
  topdown  charts become visible in document order (steady scroll)
  random   charts become visible in shuffled order

Examples:
  vegagallery simulate
  vegagallery simulate --pattern topdown --interval 20ms
  vegagallery simulate --charts 200 --cap 4 --time-scale 50`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSimulate(cmd.Context(), flags)
		},
	}

	cmd.Flags().StringVarP(&flags.configPath, "config", "c", "", "gallery configuration file (YAML)")
	cmd.Flags().StringVar(&flags.state, "state", flags.state, "state page to simulate")
	cmd.Flags().IntVar(&flags.charts, "charts", 0, "chart count (overrides the page size)")
	cmd.Flags().IntVar(&flags.cap, "cap", 0, "render concurrency cap (default from config)")
	cmd.Flags().StringVar(&flags.pattern, "pattern", flags.pattern, "visibility pattern: burst, topdown, random")
	cmd.Flags().DurationVar(&flags.interval, "interval", flags.interval, "delay between visibility events")
	cmd.Flags().Int64Var(&flags.seed, "seed", 0, "shuffle seed for the random pattern")
	cmd.Flags().Float64Var(&flags.timeScale, "time-scale", flags.timeScale, "divide render sleeps by this factor")

	return cmd
}

func (c *CLI) runSimulate(ctx context.Context, flags simulateFlags) error {
	cfg := gallery.DefaultConfig()
	if flags.configPath != "" {
		loaded, err := gallery.LoadConfig(flags.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	st := gallery.FindState(flags.state)
	if st == nil {
		return errors.New(errors.ErrCodeInvalidState, "unknown state code: %s", flags.state)
	}

	items, err := simulationItems(cfg, *st, flags.charts)
	if err != nil {
		return err
	}

	budget := flags.cap
	if budget <= 0 {
		budget = cfg.ConcurrencyCap
	}

	printInfo("Simulating %d charts, cap %d, pattern %s", len(items), budget, flags.pattern)

	result, err := sim.Run(ctx, items, sim.Options{
		Cap:       budget,
		Pattern:   sim.Pattern(flags.pattern),
		Interval:  flags.interval,
		Seed:      flags.seed,
		TimeScale: flags.timeScale,
		Logger:    loggerFromContext(ctx),
	})
	if err != nil {
		return err
	}

	printSuccess("Rendered %d charts in %s", result.Rendered, result.Elapsed.Round(time.Millisecond))
	printDetail("Peak in-flight: %d", result.PeakInFlight)
	printDetail("First renders:  %s", strings.Join(head(result.StartOrder, 8), ", "))
	if result.PeakInFlight > budget {
		printWarning("Concurrency cap exceeded: peak %d > cap %d", result.PeakInFlight, budget)
	}
	return nil
}

// simulationItems derives the simulated placeholders from the page the
// configuration would generate for the state.
func simulationItems(cfg gallery.Config, st gallery.State, charts int) ([]sim.Item, error) {
	spec := cfg.PageSpecFor(st, cfg.BaseSeed)
	if charts > 0 {
		spec.Plots = charts
	}

	items := make([]sim.Item, spec.Plots)
	for i := 0; i < spec.Plots; i++ {
		moduleID := spec.Modules[i%len(spec.Modules)]
		m := modules.Find(moduleID)
		if m == nil {
			return nil, errors.New(errors.ErrCodeModuleNotFound, "unknown plot module: %s", moduleID)
		}
		items[i] = sim.Item{
			ID:         fmt.Sprintf("vis-%s-%d", st.Slug(), i+1),
			Module:     moduleID,
			RenderTime: m.Meta.EstimatedRenderTime,
		}
	}
	return items, nil
}

// head returns at most n leading elements.
func head(s []string, n int) []string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
