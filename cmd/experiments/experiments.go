package main

import (
	"fmt"
	"sort"

	"github.com/akotu235/species-formation-simulation/config"
)

// Variant is one arm of an experiment: a label and the change it makes to
// the experiment's base configuration.
type Variant struct {
	Label string
	Apply func(cfg *config.Config)
}

// Experiment is a set of variants run over the same seeds.
type Experiment struct {
	Name        string
	Description string
	Base        func(cfg *config.Config)
	Variants    []Variant
}

// verticalAt places a vertical barrier at column col.
func verticalAt(cfg *config.Config, col int) {
	cfg.BarrierType = config.BarrierVertical
	cfg.BarrierPosition = &col
}

// experiments are the three studies of the model: gene flow against
// isolation, mutation pressure, and founder population size.
var experiments = map[string]Experiment{
	"barrier": {
		Name:        "barrier",
		Description: "vertical barrier against free gene flow",
		Base: func(cfg *config.Config) {
			cfg.GridSize = 10
			cfg.InitialPopSize = 100
			cfg.Generations = 150
			cfg.MutationRate = 0.05
		},
		Variants: []Variant{
			{Label: "vertical", Apply: func(cfg *config.Config) { verticalAt(cfg, 5) }},
			{Label: "none", Apply: func(cfg *config.Config) {
				cfg.BarrierType = config.BarrierNone
				cfg.BarrierPosition = nil
			}},
		},
	},
	"mutation": {
		Name:        "mutation",
		Description: "divergence across mutation rates",
		Base: func(cfg *config.Config) {
			cfg.GridSize = 10
			cfg.InitialPopSize = 80
			cfg.Generations = 120
			verticalAt(cfg, 5)
		},
		Variants: []Variant{
			{Label: "mutation_0.01", Apply: func(cfg *config.Config) { cfg.MutationRate = 0.01 }},
			{Label: "mutation_0.05", Apply: func(cfg *config.Config) { cfg.MutationRate = 0.05 }},
			{Label: "mutation_0.10", Apply: func(cfg *config.Config) { cfg.MutationRate = 0.10 }},
		},
	},
	"population": {
		Name:        "population",
		Description: "divergence across founder population sizes",
		Base: func(cfg *config.Config) {
			cfg.GridSize = 10
			cfg.Generations = 120
			cfg.MutationRate = 0.05
			verticalAt(cfg, 5)
		},
		Variants: []Variant{
			{Label: "founders_50", Apply: func(cfg *config.Config) { cfg.InitialPopSize = 50 }},
			{Label: "founders_100", Apply: func(cfg *config.Config) { cfg.InitialPopSize = 100 }},
			{Label: "founders_200", Apply: func(cfg *config.Config) { cfg.InitialPopSize = 200 }},
		},
	},
}

// experimentNames returns the known experiment names, sorted.
func experimentNames() []string {
	names := make([]string, 0, len(experiments))
	for name := range experiments {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// lookupExperiments resolves a name, or "all", to experiments.
func lookupExperiments(name string) ([]Experiment, error) {
	if name == "all" {
		var all []Experiment
		for _, n := range experimentNames() {
			all = append(all, experiments[n])
		}
		return all, nil
	}
	exp, ok := experiments[name]
	if !ok {
		return nil, fmt.Errorf("unknown experiment %q (known: %v, all)", name, experimentNames())
	}
	return []Experiment{exp}, nil
}

// variantConfig derives the validated configuration of one variant and seed.
func variantConfig(base *config.Config, exp Experiment, v Variant, seed int64, generations int) (*config.Config, error) {
	cfg := base.Clone()
	exp.Base(cfg)
	v.Apply(cfg)
	cfg.Seed = seed
	if generations >= 0 {
		cfg.Generations = generations
	}
	cfg.Telemetry.LogEvery = 0
	if err := cfg.Finalize(); err != nil {
		return nil, fmt.Errorf("%s/%s: %w", exp.Name, v.Label, err)
	}
	return cfg, nil
}
