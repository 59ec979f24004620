package systems

import (
	"math/rand/v2"

	"github.com/mlange-42/ark/ecs"

	"github.com/akotu235/species-formation-simulation/components"
)

// MigrationSystem moves agents to adjacent cells.
type MigrationSystem struct {
	filter *ecs.Filter1[components.Position]
}

// NewMigrationSystem creates a new migration system.
func NewMigrationSystem(w *ecs.World) *MigrationSystem {
	return &MigrationSystem{
		filter: ecs.NewFilter1[components.Position](w),
	}
}

// MigrationResult counts the outcome of one migration pass.
type MigrationResult struct {
	Attempts int // Agents that tried to move
	Moved    int // Attempts that changed cell
	Blocked  int // Attempts that picked a barrier cell
}

// Update gives every agent one migration attempt with probability rate.
// An attempt picks one in-bounds neighbour uniformly; a barrier cell consumes
// the attempt without moving. There is no retry.
func (s *MigrationSystem) Update(rng *rand.Rand, barrier *Barrier, rate float64) MigrationResult {
	var res MigrationResult
	var candidates [4][2]int

	query := s.filter.Query()
	for query.Next() {
		pos := query.Get()
		if rng.Float64() >= rate {
			continue
		}
		res.Attempts++

		n := neighbors(&candidates, pos.X, pos.Y, barrier.W, barrier.H)
		if n == 0 {
			continue
		}
		target := candidates[rng.IntN(n)]
		if barrier.Blocked(target[0], target[1]) {
			res.Blocked++
			continue
		}
		pos.X, pos.Y = target[0], target[1]
		res.Moved++
	}

	return res
}
