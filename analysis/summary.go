package analysis

import (
	"log/slog"

	"github.com/akotu235/species-formation-simulation/components"
)

// SpeciationThreshold is the mean-genotype divergence above which
// sub-populations are reported as speciated.
const SpeciationThreshold = 0.25

// Speciated reports whether a divergence score indicates speciation.
func Speciated(divergence float64) bool {
	return divergence > SpeciationThreshold
}

// Summary is the end-of-run verdict over the partitioned population.
type Summary struct {
	NumPopulations int     `csv:"num_populations"`
	TotalSize      int     `csv:"total_size"`
	Divergence     float64 `csv:"divergence"`
	Speciated      bool    `csv:"speciated"`
	Clusters       int     `csv:"clusters"`           // Greedy clusters over the whole population
	LinkedClusters int     `csv:"connected_clusters"` // Transitive clusters over the whole population
}

// Summarize scores the sub-populations. Clusters are detected over all
// agents, sub-population by sub-population in order, with the given
// Hamming threshold.
func Summarize(subpops []components.Population, clusterThreshold float64) Summary {
	var all components.Population
	for _, p := range subpops {
		all = append(all, p...)
	}

	div := PairwiseDivergence(subpops)
	return Summary{
		NumPopulations: len(subpops),
		TotalSize:      len(all),
		Divergence:     div,
		Speciated:      Speciated(div),
		Clusters:       len(DetectClusters(all, clusterThreshold)),
		LinkedClusters: len(ConnectedClusters(all, clusterThreshold)),
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (s Summary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("num_populations", s.NumPopulations),
		slog.Int("total_size", s.TotalSize),
		slog.Float64("divergence", s.Divergence),
		slog.Bool("speciated", s.Speciated),
		slog.Int("clusters", s.Clusters),
		slog.Int("connected_clusters", s.LinkedClusters),
	)
}
