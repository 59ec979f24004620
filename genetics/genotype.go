// Package genetics holds the genotype representation and the pure functions
// over it: fitness, mutation, and genetic distances.
package genetics

import (
	"math/rand/v2"
)

// NumAlleles is the number of allele values per gene: {0, 1, 2}.
const NumAlleles = 3

// Genotype is a fixed-length sequence of alleles, each in [0, NumAlleles).
type Genotype []uint8

// Random draws a genotype of the given length, each gene uniform over the alleles.
func Random(rng *rand.Rand, length int) Genotype {
	g := make(Genotype, length)
	for i := range g {
		g[i] = uint8(rng.IntN(NumAlleles))
	}
	return g
}

// Clone returns an independent copy.
func (g Genotype) Clone() Genotype {
	if g == nil {
		return nil
	}
	cp := make(Genotype, len(g))
	copy(cp, g)
	return cp
}

// Sum returns the sum of all alleles.
func (g Genotype) Sum() int {
	var s int
	for _, a := range g {
		s += int(a)
	}
	return s
}

// Valid reports whether every allele lies in the allowed domain.
func (g Genotype) Valid() bool {
	for _, a := range g {
		if a >= NumAlleles {
			return false
		}
	}
	return true
}

// Equal reports whether two genotypes carry the same alleles.
func (g Genotype) Equal(other Genotype) bool {
	if len(g) != len(other) {
		return false
	}
	for i := range g {
		if g[i] != other[i] {
			return false
		}
	}
	return true
}
