// Package telemetry samples population statistics each generation and
// exports them as series, CSV files, bookmarks and timing data.
package telemetry

import (
	"gonum.org/v1/gonum/stat"

	"github.com/akotu235/species-formation-simulation/analysis"
	"github.com/akotu235/species-formation-simulation/components"
	"github.com/akotu235/species-formation-simulation/systems"
)

// Collector turns a settled population into a GenerationStats record.
type Collector struct {
	env     *systems.Environment
	divider analysis.Divider

	// Scratch buffer reused across samples
	fitness []float64
}

// NewCollector creates a collector for the given environment. divider may be
// nil when the grid has no barrier.
func NewCollector(env *systems.Environment, divider analysis.Divider) *Collector {
	return &Collector{env: env, divider: divider}
}

// Sample computes the statistics of pop after the step for generation.
// Empty populations report zero fitness; fewer than two agents report zero diversity.
func (c *Collector) Sample(generation int, pop components.Population, events StepEvents) GenerationStats {
	stats := GenerationStats{
		Generation: generation,
		Population: len(pop),
		Births:     events.Births,
		Culled:     events.Culled,
		Migrated:   events.Migrated,
		Blocked:    events.Blocked,
	}

	if len(pop) > 0 {
		c.fitness = c.fitness[:0]
		for i := range pop {
			a := &pop[i]
			c.fitness = append(c.fitness, c.env.Fitness(a.Genotype, a.X, a.Y))
		}
		stats.MeanFitness = stat.Mean(c.fitness, nil)
	}

	stats.Diversity = analysis.Diversity(pop)

	if c.divider != nil && c.divider.Split() {
		stats.HasSides = true
		stats.BeforeBarrier, stats.AfterBarrier = analysis.CountSides(pop, c.divider)
	}
	stats.NumPopulations = len(analysis.Partition(pop, c.divider))

	return stats
}
