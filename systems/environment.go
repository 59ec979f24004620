package systems

import (
	"math/rand/v2"

	"github.com/akotu235/species-formation-simulation/genetics"
)

// Environment is the fixed per-cell condition field: one value in {0,1,2}
// per cell, stored row-major.
type Environment struct {
	W, H   int
	Values []uint8
}

// NewEnvironment draws every cell independently and uniformly from {0,1,2}.
func NewEnvironment(rng *rand.Rand, height, width int) *Environment {
	env := &Environment{
		W:      width,
		H:      height,
		Values: make([]uint8, width*height),
	}
	for i := range env.Values {
		env.Values[i] = uint8(rng.IntN(genetics.NumAlleles))
	}
	return env
}

// At returns the environment value of cell (x, y).
func (e *Environment) At(x, y int) int {
	return int(e.Values[y*e.W+x])
}

// Rows returns the field as a height×width matrix.
func (e *Environment) Rows() [][]int {
	rows := make([][]int, e.H)
	for y := range rows {
		rows[y] = make([]int, e.W)
		for x := range rows[y] {
			rows[y][x] = e.At(x, y)
		}
	}
	return rows
}

// Fitness scores a genotype against the value of cell (x, y).
func (e *Environment) Fitness(g genetics.Genotype, x, y int) float64 {
	return genetics.Fitness(g, e.At(x, y))
}
