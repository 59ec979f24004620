package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/akotu235/species-formation-simulation/config"
	"github.com/akotu235/species-formation-simulation/report"
	"github.com/akotu235/species-formation-simulation/sim"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = config seed, or time-based if that is 0 too)")
	generations := flag.Int("generations", -1, "Number of generations (-1 = use config)")
	barrier := flag.String("barrier", "", "Barrier type: vertical, horizontal or none (empty = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs, config snapshot and plots")
	logStats := flag.Bool("log-stats", false, "Log every generation record via slog")
	plots := flag.Bool("plot", false, "Write series.png and population.png into the output directory")
	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if *seed != 0 {
		cfg.Seed = *seed
	} else if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if *generations >= 0 {
		cfg.Generations = *generations
	}
	if *barrier != "" {
		b, err := config.ParseBarrierType(*barrier)
		if err != nil {
			slog.Error("invalid -barrier flag", "error", err)
			os.Exit(1)
		}
		cfg.BarrierType = b
	}
	if err := cfg.Finalize(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	if *plots && *outputDir == "" {
		slog.Error("-plot requires -output-dir")
		os.Exit(1)
	}

	slog.Info("starting simulation",
		"seed", cfg.Seed,
		"grid_size", cfg.GridSize,
		"initial_pop_size", cfg.InitialPopSize,
		"generations", cfg.Generations,
		"barrier_type", string(cfg.BarrierType),
		"barrier_index", cfg.Derived.BarrierIndex,
		"capacity_policy", string(cfg.Model.CapacityPolicy),
	)

	start := time.Now()
	res, err := sim.Run(cfg, sim.Options{
		LogStats:  *logStats,
		OutputDir: *outputDir,
	})
	if err != nil {
		slog.Error("simulation failed", "error", err)
		os.Exit(1)
	}

	slog.Info("simulation complete",
		"elapsed", time.Since(start).String(),
		"final_population", len(res.Final),
		"summary", res.Summary,
	)

	if *plots {
		writePlots(res, *outputDir)
	}

	verdict := "no speciation"
	if res.Summary.Speciated {
		verdict = "speciation"
	}
	fmt.Printf("sub-populations: %d, divergence: %.4f (%s), clusters: %d\n",
		res.Summary.NumPopulations, res.Summary.Divergence, verdict, res.Summary.Clusters)
}

// writePlots renders the series of a run. Failures are logged, not fatal.
func writePlots(res *sim.Result, dir string) {
	var sides *[2]string
	if res.Barrier.Split() {
		names := res.Barrier.SideNames()
		sides = &names
	}

	path := filepath.Join(dir, "series.png")
	if err := report.PlotGenetics(res.Series, "Genetic diversity and fitness", path); err != nil {
		slog.Error("failed to plot series", "error", err)
	} else {
		slog.Info("plot saved", "path", path)
	}

	path = filepath.Join(dir, "population.png")
	if err := report.PlotPopulation(res.Series, sides, "Population", path); err != nil {
		slog.Error("failed to plot population", "error", err)
	} else {
		slog.Info("plot saved", "path", path)
	}
}
