// Package analysis splits final populations by barrier side and measures
// how far the resulting sub-populations have diverged genetically.
package analysis

import (
	"github.com/akotu235/species-formation-simulation/components"
)

// Divider assigns grid cells to one of two sides of a barrier line.
// Side counts and partitioning go through this interface so that layouts
// other than a single full row or column only need a new implementation.
type Divider interface {
	// Split reports whether the grid is divided at all.
	Split() bool
	// Side returns 0 for cells before the line and 1 for cells on or after it.
	Side(x, y int) int
}

// CountSides counts the agents on each side of d.
func CountSides(pop components.Population, d Divider) (before, after int) {
	for i := range pop {
		if d.Side(pop[i].X, pop[i].Y) == 0 {
			before++
		} else {
			after++
		}
	}
	return before, after
}

// Partition splits pop by barrier side. Sides without agents are omitted.
// Without a divider, or with one that does not split the grid, the result is
// the whole population as a single sub-population (none at all when pop is empty).
// Agents keep their relative order within each side.
func Partition(pop components.Population, d Divider) []components.Population {
	if len(pop) == 0 {
		return nil
	}
	if d == nil || !d.Split() {
		return []components.Population{pop}
	}

	var sides [2]components.Population
	for i := range pop {
		s := d.Side(pop[i].X, pop[i].Y)
		sides[s] = append(sides[s], pop[i])
	}

	out := make([]components.Population, 0, 2)
	for _, side := range sides {
		if len(side) > 0 {
			out = append(out, side)
		}
	}
	return out
}
