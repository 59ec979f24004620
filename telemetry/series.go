package telemetry

// Metric names in a Series.
const (
	MetricTotalPopulation  = "total_population"
	MetricGeneticDiversity = "genetic_diversity"
	MetricFitness          = "fitness"
	MetricNumPopulations   = "num_populations"
	MetricBirths           = "births"
	MetricCulled           = "culled"
)

// Series maps a metric name to its per-generation values. Every sequence has
// one entry per generation.
type Series map[string][]float64

// SideMetric returns the series key for a barrier side, e.g. "left_population".
func SideMetric(side string) string {
	return side + "_population"
}

// BuildSeries converts generation records into a Series. Side metrics are
// included only when sides is non-nil; sides[0] names the side before the
// barrier line and sides[1] the side after it. With no records every
// sequence is empty.
func BuildSeries(records []GenerationStats, sides *[2]string) Series {
	n := len(records)
	s := Series{
		MetricTotalPopulation:  make([]float64, 0, n),
		MetricGeneticDiversity: make([]float64, 0, n),
		MetricFitness:          make([]float64, 0, n),
		MetricNumPopulations:   make([]float64, 0, n),
		MetricBirths:           make([]float64, 0, n),
		MetricCulled:           make([]float64, 0, n),
	}
	var before, after string
	if sides != nil {
		before, after = SideMetric(sides[0]), SideMetric(sides[1])
		s[before] = make([]float64, 0, n)
		s[after] = make([]float64, 0, n)
	}

	for _, r := range records {
		s[MetricTotalPopulation] = append(s[MetricTotalPopulation], float64(r.Population))
		s[MetricGeneticDiversity] = append(s[MetricGeneticDiversity], r.Diversity)
		s[MetricFitness] = append(s[MetricFitness], r.MeanFitness)
		s[MetricNumPopulations] = append(s[MetricNumPopulations], float64(r.NumPopulations))
		s[MetricBirths] = append(s[MetricBirths], float64(r.Births))
		s[MetricCulled] = append(s[MetricCulled], float64(r.Culled))
		if sides != nil {
			s[before] = append(s[before], float64(r.BeforeBarrier))
			s[after] = append(s[after], float64(r.AfterBarrier))
		}
	}
	return s
}

// Len returns the number of generations recorded.
func (s Series) Len() int {
	return len(s[MetricTotalPopulation])
}

// Last returns the final value of a metric, or 0 if it is missing or empty.
func (s Series) Last(metric string) float64 {
	v := s[metric]
	if len(v) == 0 {
		return 0
	}
	return v[len(v)-1]
}
