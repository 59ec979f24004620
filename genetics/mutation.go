package genetics

import "math/rand/v2"

// Mutate returns a mutated copy of g. Each gene is resampled uniformly with
// probability p; resampling may draw the current value again. g is not modified.
func Mutate(rng *rand.Rand, g Genotype, p float64) Genotype {
	child := g.Clone()
	for i := range child {
		if rng.Float64() < p {
			child[i] = uint8(rng.IntN(NumAlleles))
		}
	}
	return child
}
