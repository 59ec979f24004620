package analysis

import (
	"gonum.org/v1/gonum/floats"

	"github.com/akotu235/species-formation-simulation/components"
	"github.com/akotu235/species-formation-simulation/genetics"
)

// Diversity returns the mean pairwise normalized Hamming distance of pop, in [0,1].
func Diversity(pop components.Population) float64 {
	return genetics.MeanPairwiseDistance(pop.Genotypes())
}

// MeanGenotype returns the per-position mean allele of pop, or nil if pop is empty.
func MeanGenotype(pop components.Population) []float64 {
	return genetics.MeanVector(pop.Genotypes())
}

// PairwiseDivergence averages, over every unordered pair of non-empty
// sub-populations, the Euclidean distance between their mean genotypes.
// It is 0 when fewer than two sub-populations are non-empty.
func PairwiseDivergence(subpops []components.Population) float64 {
	means := make([][]float64, 0, len(subpops))
	for _, p := range subpops {
		if len(p) == 0 {
			continue
		}
		means = append(means, MeanGenotype(p))
	}
	if len(means) < 2 {
		return 0
	}

	var total float64
	var pairs int
	for i := 0; i < len(means); i++ {
		for j := i + 1; j < len(means); j++ {
			total += floats.Distance(means[i], means[j], 2)
			pairs++
		}
	}
	return total / float64(pairs)
}
