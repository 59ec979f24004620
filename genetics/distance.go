package genetics

import "gonum.org/v1/gonum/floats"

// Hamming returns the number of positions at which a and b differ.
// Genotypes of one run share a length; extra positions of the longer one count as differences.
func Hamming(a, b Genotype) int {
	n, m := len(a), len(b)
	if m < n {
		n, m = m, n
	}
	d := m - n
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			d++
		}
	}
	return d
}

// NormalizedHamming returns the fraction of differing positions, in [0,1].
func NormalizedHamming(a, b Genotype) float64 {
	l := max(len(a), len(b))
	if l == 0 {
		return 0
	}
	return float64(Hamming(a, b)) / float64(l)
}

// MeanPairwiseDistance returns the normalized Hamming distance averaged over
// all unordered pairs, or 0 for fewer than two genotypes.
//
// The sum over pairs is computed per position from allele counts: with c_a
// carriers of allele a among n genotypes, (n² - Σ c_a²)/2 pairs differ there.
// This is exact and linear in the population size.
func MeanPairwiseDistance(gs []Genotype) float64 {
	n := len(gs)
	if n < 2 {
		return 0
	}
	length := len(gs[0])
	if length == 0 {
		return 0
	}

	var differing int64
	var counts [NumAlleles]int64
	for pos := 0; pos < length; pos++ {
		counts = [NumAlleles]int64{}
		for _, g := range gs {
			counts[g[pos]]++
		}
		same := int64(0)
		for _, c := range counts {
			same += c * c
		}
		differing += (int64(n)*int64(n) - same) / 2
	}

	pairs := int64(n) * int64(n-1) / 2
	return float64(differing) / (float64(pairs) * float64(length))
}

// MeanVector returns the per-position mean allele value, or nil for no genotypes.
func MeanVector(gs []Genotype) []float64 {
	if len(gs) == 0 {
		return nil
	}
	mean := make([]float64, len(gs[0]))
	for _, g := range gs {
		for i, a := range g {
			mean[i] += float64(a)
		}
	}
	floats.Scale(1/float64(len(gs)), mean)
	return mean
}
