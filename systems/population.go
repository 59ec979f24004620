package systems

import (
	"math/rand/v2"

	"github.com/akotu235/species-formation-simulation/components"
	"github.com/akotu235/species-formation-simulation/genetics"
)

// SpawnPopulation creates count founders at uniform random cells with uniform
// random genotypes. Placement ignores the barrier: founders may start on it.
func SpawnPopulation(rng *rand.Rand, count, height, width, genomeLength int) components.Population {
	pop := make(components.Population, count)
	for i := range pop {
		x := rng.IntN(width)
		y := rng.IntN(height)
		pop[i] = components.Agent{
			X:        x,
			Y:        y,
			Genotype: genetics.Random(rng, genomeLength),
			Birth:    0,
		}
	}
	return pop
}
