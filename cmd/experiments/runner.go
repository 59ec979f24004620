package main

import (
	"sync"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/akotu235/species-formation-simulation/config"
	"github.com/akotu235/species-formation-simulation/sim"
	"github.com/akotu235/species-formation-simulation/telemetry"
)

// RunRow is the outcome of one seed of one variant.
type RunRow struct {
	Experiment        string  `csv:"experiment"`
	Variant           string  `csv:"variant"`
	Seed              int64   `csv:"seed"`
	FinalPopulation   int     `csv:"final_population"`
	NumPopulations    int     `csv:"num_populations"`
	Divergence        float64 `csv:"divergence"`
	Speciated         bool    `csv:"speciated"`
	FinalDiversity    float64 `csv:"final_diversity"`
	FinalFitness      float64 `csv:"final_fitness"`
	Clusters          int     `csv:"clusters"`
	ConnectedClusters int     `csv:"connected_clusters"`
}

// VariantSummary aggregates the rows of one variant over all seeds.
type VariantSummary struct {
	Experiment          string  `csv:"experiment"`
	Variant             string  `csv:"variant"`
	Runs                int     `csv:"runs"`
	DivergenceMean      float64 `csv:"divergence_mean"`
	DivergenceStd       float64 `csv:"divergence_std"`
	SpeciatedShare      float64 `csv:"speciated_share"`
	FinalPopulationMean float64 `csv:"final_population_mean"`
	FinalDiversityMean  float64 `csv:"final_diversity_mean"`
}

// variantResult holds everything one variant produced.
type variantResult struct {
	Rows      []RunRow
	Summary   VariantSummary
	Diversity []float64 // Mean genetic diversity per generation over seeds
}

// seedResult holds the result from one seed evaluation.
type seedResult struct {
	row       RunRow
	diversity []float64
	err       error
}

// runVariant runs one variant for every seed in parallel. Runs share
// nothing, so each goroutine owns its simulation.
func runVariant(base *config.Config, exp Experiment, v Variant, seeds []int64, generations int) (variantResult, error) {
	results := make([]seedResult, len(seeds))
	var wg sync.WaitGroup

	for i, seed := range seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = runSeed(base, exp, v, s, generations)
		}(i, seed)
	}
	wg.Wait()

	out := variantResult{Rows: make([]RunRow, 0, len(seeds))}
	series := make([][]float64, 0, len(seeds))
	for _, r := range results {
		if r.err != nil {
			return variantResult{}, r.err
		}
		out.Rows = append(out.Rows, r.row)
		series = append(series, r.diversity)
	}
	out.Summary = summarizeRows(exp.Name, v.Label, out.Rows)
	out.Diversity = meanSeries(series)
	return out, nil
}

func runSeed(base *config.Config, exp Experiment, v Variant, seed int64, generations int) seedResult {
	cfg, err := variantConfig(base, exp, v, seed, generations)
	if err != nil {
		return seedResult{err: err}
	}
	res, err := sim.Run(cfg, sim.Options{})
	if err != nil {
		return seedResult{err: err}
	}

	return seedResult{
		row: RunRow{
			Experiment:        exp.Name,
			Variant:           v.Label,
			Seed:              seed,
			FinalPopulation:   len(res.Final),
			NumPopulations:    res.Summary.NumPopulations,
			Divergence:        res.Summary.Divergence,
			Speciated:         res.Summary.Speciated,
			FinalDiversity:    res.Series.Last(telemetry.MetricGeneticDiversity),
			FinalFitness:      res.Series.Last(telemetry.MetricFitness),
			Clusters:          res.Summary.Clusters,
			ConnectedClusters: res.Summary.LinkedClusters,
		},
		diversity: res.Series[telemetry.MetricGeneticDiversity],
	}
}

// summarizeRows aggregates per-seed rows. The deviation is 0 for a single run.
func summarizeRows(experiment, variant string, rows []RunRow) VariantSummary {
	s := VariantSummary{Experiment: experiment, Variant: variant, Runs: len(rows)}
	if len(rows) == 0 {
		return s
	}

	div := make([]float64, len(rows))
	pop := make([]float64, len(rows))
	diversity := make([]float64, len(rows))
	var speciated int
	for i, r := range rows {
		div[i] = r.Divergence
		pop[i] = float64(r.FinalPopulation)
		diversity[i] = r.FinalDiversity
		if r.Speciated {
			speciated++
		}
	}

	if len(rows) > 1 {
		s.DivergenceMean, s.DivergenceStd = stat.MeanStdDev(div, nil)
	} else {
		s.DivergenceMean = div[0]
	}
	s.SpeciatedShare = float64(speciated) / float64(len(rows))
	s.FinalPopulationMean = stat.Mean(pop, nil)
	s.FinalDiversityMean = stat.Mean(diversity, nil)
	return s
}

// meanSeries averages equally long series element-wise.
func meanSeries(series [][]float64) []float64 {
	if len(series) == 0 {
		return nil
	}
	mean := make([]float64, len(series[0]))
	for _, s := range series {
		floats.Add(mean, s)
	}
	floats.Scale(1/float64(len(series)), mean)
	return mean
}
