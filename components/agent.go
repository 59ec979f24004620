// Package components defines the ECS components of an agent and the Agent
// value used outside the ECS world.
package components

import (
	"bytes"
	"cmp"
	"slices"

	"github.com/akotu235/species-formation-simulation/genetics"
)

// Agent is the value form of one individual: where it is, what it carries,
// and when it was born.
type Agent struct {
	X, Y     int
	Genotype genetics.Genotype
	Birth    int
}

// Position returns the agent's cell.
func (a Agent) Position() Position {
	return Position{X: a.X, Y: a.Y}
}

// Clone returns a copy that shares no storage with a.
func (a Agent) Clone() Agent {
	a.Genotype = a.Genotype.Clone()
	return a
}

// Population is an unordered collection of agents. Its order only matters
// to order-dependent analyses such as greedy clustering.
type Population []Agent

// Genotypes returns the genotypes of all agents, sharing storage with p.
func (p Population) Genotypes() []genetics.Genotype {
	gs := make([]genetics.Genotype, len(p))
	for i := range p {
		gs[i] = p[i].Genotype
	}
	return gs
}

// Clone deep-copies the population.
func (p Population) Clone() Population {
	if p == nil {
		return nil
	}
	cp := make(Population, len(p))
	for i := range p {
		cp[i] = p[i].Clone()
	}
	return cp
}

// SortByCell orders p in place by cell in row-major order (y, then x), then
// by birth generation, then by genotype. Agents that compare equal are
// identical in every field, so the result does not depend on input order.
func (p Population) SortByCell() {
	slices.SortFunc(p, func(a, b Agent) int {
		return cmp.Or(
			cmp.Compare(a.Y, b.Y),
			cmp.Compare(a.X, b.X),
			cmp.Compare(a.Birth, b.Birth),
			bytes.Compare(a.Genotype, b.Genotype),
		)
	})
}
