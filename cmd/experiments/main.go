// Package main runs the speciation experiments: barrier against free gene
// flow, a mutation rate sweep and a founder size sweep, each over several seeds.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/akotu235/species-formation-simulation/config"
	"github.com/akotu235/species-formation-simulation/report"
)

// formatDuration formats a duration as MM:SS or HH:MM:SS.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	name := flag.String("experiment", "all", "Experiment to run: barrier, mutation, population or all")
	numSeeds := flag.Int("seeds", 5, "Number of seeds per variant")
	generations := flag.Int("generations", -1, "Override generations per run (-1 = experiment default)")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if *numSeeds < 1 {
		log.Fatal("--seeds must be at least 1")
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	base, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	exps, err := lookupExperiments(*name)
	if err != nil {
		log.Fatal(err)
	}

	seeds := make([]int64, *numSeeds)
	for i := range seeds {
		seeds[i] = int64(i*1000 + 42)
	}

	var rows []RunRow
	var summaries []VariantSummary
	start := time.Now()

	for _, exp := range exps {
		fmt.Printf("Experiment %s: %s (%d variants x %d seeds)\n", exp.Name, exp.Description, len(exp.Variants), len(seeds))

		lines := make([]report.Line, 0, len(exp.Variants))
		for _, v := range exp.Variants {
			res, err := runVariant(base, exp, v, seeds, *generations)
			if err != nil {
				log.Fatalf("experiment %s failed: %v", exp.Name, err)
			}
			rows = append(rows, res.Rows...)
			summaries = append(summaries, res.Summary)
			lines = append(lines, report.Line{Label: v.Label, Values: res.Diversity})

			slog.Info("variant complete",
				"experiment", exp.Name,
				"variant", v.Label,
				"divergence_mean", res.Summary.DivergenceMean,
				"divergence_std", res.Summary.DivergenceStd,
				"speciated_share", res.Summary.SpeciatedShare,
				"final_population_mean", res.Summary.FinalPopulationMean,
			)
			fmt.Printf("  %-14s divergence=%.4f±%.4f speciated=%.0f%% population=%.0f | elapsed: %s\n",
				v.Label, res.Summary.DivergenceMean, res.Summary.DivergenceStd,
				res.Summary.SpeciatedShare*100, res.Summary.FinalPopulationMean,
				formatDuration(time.Since(start)))
		}

		plotPath := filepath.Join(*outputDir, exp.Name+"_diversity.png")
		title := fmt.Sprintf("Genetic diversity: %s (mean of %d seeds)", exp.Name, len(seeds))
		if err := report.PlotLines(title, "Genetic diversity", lines, plotPath); err != nil {
			log.Printf("failed to plot %s: %v", exp.Name, err)
		} else {
			fmt.Printf("  plot saved to: %s\n", plotPath)
		}
	}

	if err := writeCSV(filepath.Join(*outputDir, "experiments.csv"), rows); err != nil {
		log.Fatalf("failed to write results: %v", err)
	}
	if err := writeCSV(filepath.Join(*outputDir, "experiments_summary.csv"), summaries); err != nil {
		log.Fatalf("failed to write summary: %v", err)
	}
	fmt.Printf("\nDone in %s, results in %s\n", formatDuration(time.Since(start)), *outputDir)
}

// writeCSV writes records, a slice of csv-tagged structs, to path.
func writeCSV(path string, records any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	if err := gocsv.Marshal(records, f); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
