package genetics

// Fitness scores how well a genotype suits a cell's environment value.
// The target genotype sum is twice the environment value; the score is
// 1/(1+|sum-target|), so it lies in (0,1] and equals 1 exactly on target.
func Fitness(g Genotype, envValue int) float64 {
	diff := g.Sum() - 2*envValue
	if diff < 0 {
		diff = -diff
	}
	return 1.0 / (1.0 + float64(diff))
}
