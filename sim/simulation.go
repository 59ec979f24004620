// Package sim runs the speciation model: it owns the ECS world, the random
// source and the systems, and applies the simulation step once per generation.
package sim

import (
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/mlange-42/ark/ecs"

	"github.com/akotu235/species-formation-simulation/components"
	"github.com/akotu235/species-formation-simulation/config"
	"github.com/akotu235/species-formation-simulation/systems"
	"github.com/akotu235/species-formation-simulation/telemetry"
)

// Options configures the outer surfaces of a run.
type Options struct {
	LogStats      bool                                  // Log every generation record via slog
	OutputDir     string                                // Directory for CSV and YAML output ("" = none)
	StatsCallback func(stats telemetry.GenerationStats) // Called after every generation
}

// Simulation holds the complete state of one run.
type Simulation struct {
	cfg *config.Config
	rng *rand.Rand

	world       *ecs.World
	agentMapper *ecs.Map3[components.Position, components.Genome, components.Birth]
	agentFilter *ecs.Filter3[components.Position, components.Genome, components.Birth]

	env     *systems.Environment
	barrier *systems.Barrier

	migration    *systems.MigrationSystem
	reproduction *systems.ReproductionSystem
	capacity     *systems.CapacitySystem

	collector *telemetry.Collector
	perf      *telemetry.PerfCollector
	bookmarks *telemetry.BookmarkDetector
	output    *telemetry.OutputManager
	records   []telemetry.GenerationStats

	logStats      bool
	statsCallback func(telemetry.GenerationStats)

	generation int
	size       int // Live agents
}

// New builds the environment, barrier and founders for cfg. The
// configuration is copied and validated; the caller's value is not modified.
// The environment is drawn before the founders, both from the seeded source.
func New(cfg *config.Config, opts Options) (*Simulation, error) {
	cfg = cfg.Clone()
	if err := cfg.Finalize(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	seed := uint64(cfg.Seed)
	rng := rand.New(rand.NewPCG(seed, seed))
	width, height := cfg.Derived.Width, cfg.Derived.Height

	env := systems.NewEnvironment(rng, height, width)
	barrier, err := systems.NewBarrier(cfg.BarrierType, height, width, cfg.Derived.BarrierIndex)
	if err != nil {
		return nil, fmt.Errorf("building barrier: %w", err)
	}
	culler, err := systems.NewCuller(cfg.Model.CapacityPolicy)
	if err != nil {
		return nil, fmt.Errorf("building culler: %w", err)
	}

	world := ecs.NewWorld()
	s := &Simulation{
		cfg:           cfg,
		rng:           rng,
		world:         world,
		agentMapper:   ecs.NewMap3[components.Position, components.Genome, components.Birth](world),
		agentFilter:   ecs.NewFilter3[components.Position, components.Genome, components.Birth](world),
		env:           env,
		barrier:       barrier,
		migration:     systems.NewMigrationSystem(world),
		reproduction:  systems.NewReproductionSystem(world),
		capacity:      systems.NewCapacitySystem(world, width, height, culler),
		collector:     telemetry.NewCollector(env, barrier),
		perf:          telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		bookmarks:     telemetry.NewBookmarkDetector(cfg.Telemetry.HistorySize, barrier.SideNames()),
		records:       make([]telemetry.GenerationStats, 0, cfg.Generations),
		logStats:      opts.LogStats,
		statsCallback: opts.StatsCallback,
	}

	founders := systems.SpawnPopulation(rng, cfg.InitialPopSize, height, width, cfg.Model.GenomeLength)
	s.addAgents(founders)

	s.output, err = telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output: %w", err)
	}
	if err := s.output.WriteConfig(cfg); err != nil {
		s.output.Close()
		return nil, fmt.Errorf("writing config: %w", err)
	}

	return s, nil
}

// addAgents creates one entity per agent, in order.
func (s *Simulation) addAgents(pop components.Population) {
	for i := range pop {
		a := &pop[i]
		s.agentMapper.NewEntity(
			&components.Position{X: a.X, Y: a.Y},
			&components.Genome{Genotype: a.Genotype},
			&components.Birth{Generation: a.Birth},
		)
	}
	s.size += len(pop)
}

// Step applies one generation: migration, reproduction with mutation, then
// capacity regulation. The collector samples the settled population after
// all three phases. Returns the record of this generation.
func (s *Simulation) Step() telemetry.GenerationStats {
	s.perf.StartStep()

	s.perf.StartPhase(telemetry.PhaseMigration)
	moved := s.migration.Update(s.rng, s.barrier, s.cfg.Model.MigrationRate)

	s.perf.StartPhase(telemetry.PhaseReproduction)
	births := s.reproduction.Update(s.rng, s.env, systems.ReproductionParams{
		BaseRate:     s.cfg.Model.BaseReproductionRate,
		MutationRate: s.cfg.MutationRate,
		Generation:   s.generation,
	})

	s.perf.StartPhase(telemetry.PhaseCapacity)
	culled := s.capacity.Update(s.world, s.rng, s.env, s.cfg.Model.MaxPerCell)
	s.size += births - culled

	s.perf.StartPhase(telemetry.PhaseTelemetry)
	stats := s.collector.Sample(s.generation, s.Population(), telemetry.StepEvents{
		Births:   births,
		Culled:   culled,
		Migrated: moved.Moved,
		Blocked:  moved.Blocked,
	})
	s.records = append(s.records, stats)
	s.perf.EndStep()

	s.flushTelemetry(stats)
	s.generation++
	return stats
}

// Run steps until the configured number of generations is reached and
// returns the result. Extinction does not stop the run.
func (s *Simulation) Run() *Result {
	logEvery := s.cfg.Telemetry.LogEvery
	for s.generation < s.cfg.Generations {
		stats := s.Step()
		if logEvery > 0 && s.generation%logEvery == 0 {
			slog.Info("progress",
				"generation", s.generation,
				"of", s.cfg.Generations,
				"population", stats.Population,
				"diversity", stats.Diversity,
			)
		}
	}
	s.flushPerf()
	return s.Result()
}

// Population copies the live agents out of the world, sorted by cell
// (see components.Population.SortByCell) so that order-dependent analyses
// never see ECS storage order. The returned agents share no storage with
// the simulation.
func (s *Simulation) Population() components.Population {
	pop := make(components.Population, 0, s.size)
	query := s.agentFilter.Query()
	for query.Next() {
		pos, genome, birth := query.Get()
		pop = append(pop, components.Agent{
			X:        pos.X,
			Y:        pos.Y,
			Genotype: genome.Genotype.Clone(),
			Birth:    birth.Generation,
		})
	}
	pop.SortByCell()
	return pop
}

// Generation returns the number of completed steps.
func (s *Simulation) Generation() int {
	return s.generation
}

// Records returns the generation records produced so far.
func (s *Simulation) Records() []telemetry.GenerationStats {
	return s.records
}

// Environment returns the environment grid.
func (s *Simulation) Environment() *systems.Environment {
	return s.env
}

// Barrier returns the barrier mask.
func (s *Simulation) Barrier() *systems.Barrier {
	return s.barrier
}

// Config returns the validated configuration the run uses.
func (s *Simulation) Config() *config.Config {
	return s.cfg
}

// Close flushes and closes the output files.
func (s *Simulation) Close() error {
	return s.output.Close()
}
