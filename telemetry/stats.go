package telemetry

import (
	"log/slog"
)

// GenerationStats is the statistics record sampled after one simulation step.
// Records are append-only: a record is never changed after it is produced.
type GenerationStats struct {
	Generation int `csv:"generation"`

	// Population state after the step
	Population     int     `csv:"total_population"`
	MeanFitness    float64 `csv:"fitness"`
	Diversity      float64 `csv:"genetic_diversity"`
	NumPopulations int     `csv:"num_populations"`

	// Side counts; both are 0 when barrier_split is false
	HasSides      bool `csv:"barrier_split"`
	BeforeBarrier int  `csv:"before_barrier"` // left or top
	AfterBarrier  int  `csv:"after_barrier"`  // right or bottom, barrier line included

	// Events during the step
	Births   int `csv:"births"`
	Culled   int `csv:"culled"`
	Migrated int `csv:"migrated"`
	Blocked  int `csv:"blocked"`
}

// StepEvents holds the counts a simulation step hands to the collector.
type StepEvents struct {
	Births   int
	Culled   int
	Migrated int
	Blocked  int
}

// LogValue implements slog.LogValuer for structured logging.
func (s GenerationStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("generation", s.Generation),
		slog.Int("population", s.Population),
		slog.Float64("fitness", s.MeanFitness),
		slog.Float64("diversity", s.Diversity),
		slog.Int("num_populations", s.NumPopulations),
		slog.Int("births", s.Births),
		slog.Int("culled", s.Culled),
		slog.Int("migrated", s.Migrated),
		slog.Int("blocked", s.Blocked),
	}
	if s.HasSides {
		attrs = append(attrs, slog.Int("before_barrier", s.BeforeBarrier), slog.Int("after_barrier", s.AfterBarrier))
	}
	return slog.GroupValue(attrs...)
}

// LogStats logs the generation stats using slog.
func (s GenerationStats) LogStats() {
	attrs := []any{
		"generation", s.Generation,
		"population", s.Population,
		"fitness", s.MeanFitness,
		"diversity", s.Diversity,
		"num_populations", s.NumPopulations,
		"births", s.Births,
		"culled", s.Culled,
	}
	if s.HasSides {
		attrs = append(attrs, "before_barrier", s.BeforeBarrier, "after_barrier", s.AfterBarrier)
	}
	slog.Info("stats", attrs...)
}
