package systems

import (
	"fmt"
	"math/rand/v2"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/stat/sampleuv"

	"github.com/akotu235/species-formation-simulation/components"
	"github.com/akotu235/species-formation-simulation/config"
)

// Culler decides which occupants of an overcrowded cell survive.
type Culler interface {
	// Keep returns capacity distinct indices into fitness, the local fitness
	// of each occupant. It is only called when len(fitness) > capacity.
	Keep(rng *rand.Rand, fitness []float64, capacity int) []int
}

// RandomCuller keeps a uniform random sample. Fitness is ignored, so the
// bottleneck acts as genetic drift.
type RandomCuller struct{}

// Keep implements Culler.
func (RandomCuller) Keep(rng *rand.Rand, fitness []float64, capacity int) []int {
	keep := make([]int, capacity)
	sampleuv.WithoutReplacement(keep, len(fitness), rng)
	return keep
}

// FitnessWeightedCuller samples survivors without replacement with
// probability proportional to local fitness, so the bottleneck selects.
type FitnessWeightedCuller struct{}

// Keep implements Culler.
func (FitnessWeightedCuller) Keep(rng *rand.Rand, fitness []float64, capacity int) []int {
	weighted := sampleuv.NewWeighted(fitness, rng)
	keep := make([]int, 0, capacity)
	for len(keep) < capacity {
		idx, ok := weighted.Take()
		if !ok {
			break
		}
		keep = append(keep, idx)
	}
	return keep
}

// NewCuller returns the culler for a capacity policy.
func NewCuller(policy config.CapacityPolicy) (Culler, error) {
	switch policy {
	case config.CapacityRandom, "":
		return RandomCuller{}, nil
	case config.CapacityFitnessWeighted:
		return FitnessWeightedCuller{}, nil
	}
	return nil, &config.ConfigurationError{
		Field:  "model.capacity_policy",
		Value:  string(policy),
		Reason: fmt.Sprintf("must be %q or %q", config.CapacityRandom, config.CapacityFitnessWeighted),
	}
}

// CapacitySystem enforces the per-cell population limit.
type CapacitySystem struct {
	filter    *ecs.Filter2[components.Position, components.Genome]
	posMap    *ecs.Map[components.Position]
	genomeMap *ecs.Map[components.Genome]
	occupancy *Occupancy
	culler    Culler

	// Scratch buffers reused across updates
	fitness []float64
	kept    []bool
	remove  []ecs.Entity
}

// NewCapacitySystem creates a capacity system for a width×height grid.
func NewCapacitySystem(w *ecs.World, width, height int, culler Culler) *CapacitySystem {
	if culler == nil {
		culler = RandomCuller{}
	}
	return &CapacitySystem{
		filter:    ecs.NewFilter2[components.Position, components.Genome](w),
		posMap:    ecs.NewMap[components.Position](w),
		genomeMap: ecs.NewMap[components.Genome](w),
		occupancy: NewOccupancy(width, height),
		culler:    culler,
	}
}

// Update groups all agents by cell and culls every cell holding more than
// capacity agents down to exactly capacity. Cells are visited in row-major
// order so the random draws are reproducible. Returns the number removed.
func (s *CapacitySystem) Update(w *ecs.World, rng *rand.Rand, env *Environment, capacity int) int {
	s.occupancy.Clear()

	query := s.filter.Query()
	for query.Next() {
		pos, _ := query.Get()
		s.occupancy.Insert(query.Entity(), pos.X, pos.Y)
	}

	s.remove = s.remove[:0]
	for idx := 0; idx < s.occupancy.NumCells(); idx++ {
		occupants := s.occupancy.Cell(idx)
		if len(occupants) <= capacity {
			continue
		}

		s.fitness = s.fitness[:0]
		for _, e := range occupants {
			pos := s.posMap.Get(e)
			genome := s.genomeMap.Get(e)
			s.fitness = append(s.fitness, env.Fitness(genome.Genotype, pos.X, pos.Y))
		}

		s.kept = s.kept[:0]
		for range occupants {
			s.kept = append(s.kept, false)
		}
		for _, i := range s.culler.Keep(rng, s.fitness, capacity) {
			s.kept[i] = true
		}
		for i, e := range occupants {
			if !s.kept[i] {
				s.remove = append(s.remove, e)
			}
		}
	}

	for _, e := range s.remove {
		w.RemoveEntity(e)
	}
	return len(s.remove)
}
