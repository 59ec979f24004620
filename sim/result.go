package sim

import (
	"fmt"

	"github.com/akotu235/species-formation-simulation/analysis"
	"github.com/akotu235/species-formation-simulation/components"
	"github.com/akotu235/species-formation-simulation/config"
	"github.com/akotu235/species-formation-simulation/systems"
	"github.com/akotu235/species-formation-simulation/telemetry"
)

// Result is the outcome of a run.
type Result struct {
	SubPopulations []components.Population // Final population split by barrier side
	Environment    *systems.Environment
	Barrier        *systems.Barrier
	Series         telemetry.Series

	Records []telemetry.GenerationStats
	Final   components.Population // Whole final population, in storage order
	Summary analysis.Summary
}

// Unpack returns the sub-populations, environment, barrier and series.
func (r *Result) Unpack() ([]components.Population, *systems.Environment, *systems.Barrier, telemetry.Series) {
	return r.SubPopulations, r.Environment, r.Barrier, r.Series
}

// Result partitions the current population and assembles the run output.
func (s *Simulation) Result() *Result {
	final := s.Population()
	subpops := analysis.Partition(final, s.barrier)

	var sides *[2]string
	if s.barrier.Split() {
		names := s.barrier.SideNames()
		sides = &names
	}

	return &Result{
		SubPopulations: subpops,
		Environment:    s.env,
		Barrier:        s.barrier,
		Series:         telemetry.BuildSeries(s.records, sides),
		Records:        s.records,
		Final:          final,
		Summary:        analysis.Summarize(subpops, s.cfg.Telemetry.ClusterThreshold),
	}
}

// Run executes a complete simulation for cfg. With generations = 0 the
// result holds the founders and empty series.
func Run(cfg *config.Config, opts Options) (*Result, error) {
	s, err := New(cfg, opts)
	if err != nil {
		return nil, err
	}

	res := s.Run()
	if err := s.output.WriteSummary(res.Summary); err != nil {
		s.Close()
		return nil, fmt.Errorf("writing summary: %w", err)
	}
	if err := s.Close(); err != nil {
		return nil, fmt.Errorf("closing output: %w", err)
	}
	return res, nil
}
