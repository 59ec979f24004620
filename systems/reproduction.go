package systems

import (
	"math/rand/v2"

	"github.com/mlange-42/ark/ecs"

	"github.com/akotu235/species-formation-simulation/components"
	"github.com/akotu235/species-formation-simulation/genetics"
)

// ReproductionParams holds the per-step reproduction rates.
type ReproductionParams struct {
	BaseRate     float64 // Reproduction probability at fitness 1
	MutationRate float64 // Per-gene mutation probability of offspring
	Generation   int     // Birth generation stamped on offspring
}

// ReproductionSystem handles asexual reproduction with mutation.
type ReproductionSystem struct {
	filter *ecs.Filter2[components.Position, components.Genome]
	mapper *ecs.Map3[components.Position, components.Genome, components.Birth]

	// Offspring collected during the pass; created once the query is done.
	pending []components.Agent
}

// NewReproductionSystem creates a new reproduction system.
func NewReproductionSystem(w *ecs.World) *ReproductionSystem {
	return &ReproductionSystem{
		filter: ecs.NewFilter2[components.Position, components.Genome](w),
		mapper: ecs.NewMap3[components.Position, components.Genome, components.Birth](w),
	}
}

// Update lets every current agent reproduce once with probability
// BaseRate × fitness at its cell. Offspring share the parent's cell, carry a
// mutated copy of its genotype, and are added after all parents were
// visited, so they do not reproduce in the same step. Parents are kept.
// Returns the number of offspring.
func (s *ReproductionSystem) Update(rng *rand.Rand, env *Environment, p ReproductionParams) int {
	s.pending = s.pending[:0]

	query := s.filter.Query()
	for query.Next() {
		pos, genome := query.Get()
		fit := env.Fitness(genome.Genotype, pos.X, pos.Y)
		if rng.Float64() >= p.BaseRate*fit {
			continue
		}
		s.pending = append(s.pending, components.Agent{
			X:        pos.X,
			Y:        pos.Y,
			Genotype: genetics.Mutate(rng, genome.Genotype, p.MutationRate),
			Birth:    p.Generation,
		})
	}

	for i := range s.pending {
		child := &s.pending[i]
		s.mapper.NewEntity(
			&components.Position{X: child.X, Y: child.Y},
			&components.Genome{Genotype: child.Genotype},
			&components.Birth{Generation: child.Birth},
		)
	}

	return len(s.pending)
}
