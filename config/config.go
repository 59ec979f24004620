// Package config provides configuration loading and validation for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// BarrierType selects the barrier layout.
type BarrierType string

const (
	BarrierVertical   BarrierType = "vertical"
	BarrierHorizontal BarrierType = "horizontal"
	BarrierNone       BarrierType = "none"
)

// BarrierTypes lists the supported layouts.
var BarrierTypes = []BarrierType{BarrierVertical, BarrierHorizontal, BarrierNone}

// Valid reports whether b is one of the supported layouts.
func (b BarrierType) Valid() bool {
	switch b {
	case BarrierVertical, BarrierHorizontal, BarrierNone:
		return true
	}
	return false
}

// ParseBarrierType converts a string into a BarrierType.
// Unknown values fail with a ConfigurationError instead of falling back to a default.
func ParseBarrierType(s string) (BarrierType, error) {
	b := BarrierType(s)
	if !b.Valid() {
		return "", &ConfigurationError{
			Field:  "barrier_type",
			Value:  s,
			Reason: fmt.Sprintf("must be one of %v", BarrierTypes),
		}
	}
	return b, nil
}

// CapacityPolicy selects how overcrowded cells are culled.
type CapacityPolicy string

const (
	// CapacityRandom keeps a uniform random sample: pure drift.
	CapacityRandom CapacityPolicy = "random"
	// CapacityFitnessWeighted keeps a sample weighted by local fitness.
	CapacityFitnessWeighted CapacityPolicy = "fitness_weighted"
)

// Valid reports whether p is a known policy.
func (p CapacityPolicy) Valid() bool {
	return p == CapacityRandom || p == CapacityFitnessWeighted
}

// Config holds all simulation configuration parameters.
// The top-level keys are the recognized run options; Model holds the
// per-generation rates that the run options do not cover.
type Config struct {
	GridSize        int         `yaml:"grid_size"`
	InitialPopSize  int         `yaml:"initial_pop_size"`
	Generations     int         `yaml:"generations"`
	MutationRate    float64     `yaml:"mutation_rate"`
	BarrierType     BarrierType `yaml:"barrier_type"`
	BarrierPosition *int        `yaml:"barrier_position,omitempty"`
	Seed            int64       `yaml:"seed"`

	Model     ModelConfig     `yaml:"model"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ModelConfig holds the stochastic rates of one simulation step.
type ModelConfig struct {
	GenomeLength         int            `yaml:"genome_length"`
	MigrationRate        float64        `yaml:"migration_rate"`         // p_migration
	BaseReproductionRate float64        `yaml:"base_reproduction_rate"` // p_base_reproduction, scaled by fitness
	MaxPerCell           int            `yaml:"max_per_cell"`
	CapacityPolicy       CapacityPolicy `yaml:"capacity_policy"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	LogEvery         int     `yaml:"log_every"`         // Generations between progress logs (0 = never)
	PerfWindow       int     `yaml:"perf_window"`       // Generations averaged by the perf collector
	HistorySize      int     `yaml:"history_size"`      // Rolling history for bookmark detection
	ClusterThreshold float64 `yaml:"cluster_threshold"` // Hamming distance used for cluster summaries
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Width        int // Grid columns
	Height       int // Grid rows
	BarrierIndex int // Barrier column or row; -1 without a barrier
	CellCapacity int // Width*Height*MaxPerCell, upper bound on population size
}

// Default returns the embedded defaults, validated.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Finalize validates the configuration and computes derived values.
// Call it again after modifying fields programmatically.
func (c *Config) Finalize() error {
	if err := c.Validate(); err != nil {
		return err
	}
	c.computeDerived()
	return nil
}

// Validate checks every field and returns the first ConfigurationError found.
func (c *Config) Validate() error {
	if !c.BarrierType.Valid() {
		return &ConfigurationError{
			Field:  "barrier_type",
			Value:  string(c.BarrierType),
			Reason: fmt.Sprintf("must be one of %v", BarrierTypes),
		}
	}
	if !c.Model.CapacityPolicy.Valid() {
		return &ConfigurationError{
			Field:  "model.capacity_policy",
			Value:  string(c.Model.CapacityPolicy),
			Reason: fmt.Sprintf("must be %q or %q", CapacityRandom, CapacityFitnessWeighted),
		}
	}

	positive := []struct {
		field string
		value int
	}{
		{"grid_size", c.GridSize},
		{"initial_pop_size", c.InitialPopSize},
		{"model.genome_length", c.Model.GenomeLength},
		{"model.max_per_cell", c.Model.MaxPerCell},
		{"telemetry.perf_window", c.Telemetry.PerfWindow},
		{"telemetry.history_size", c.Telemetry.HistorySize},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return &ConfigurationError{Field: p.field, Value: p.value, Reason: "must be positive"}
		}
	}
	if c.Generations < 0 {
		return &ConfigurationError{Field: "generations", Value: c.Generations, Reason: "must not be negative"}
	}

	probabilities := []struct {
		field string
		value float64
	}{
		{"mutation_rate", c.MutationRate},
		{"model.migration_rate", c.Model.MigrationRate},
		{"model.base_reproduction_rate", c.Model.BaseReproductionRate},
	}
	for _, p := range probabilities {
		// NaN fails both comparisons, so test the accepted range instead.
		if !(p.value >= 0 && p.value <= 1) {
			return &ConfigurationError{Field: p.field, Value: p.value, Reason: "must be a probability in [0,1]"}
		}
	}

	if c.BarrierPosition != nil && c.BarrierType != BarrierNone {
		pos := *c.BarrierPosition
		if pos < 0 || pos >= c.GridSize {
			return &ConfigurationError{
				Field:  "barrier_position",
				Value:  pos,
				Reason: fmt.Sprintf("must lie inside the grid [0,%d)", c.GridSize),
			}
		}
	}

	if c.Telemetry.LogEvery < 0 {
		return &ConfigurationError{Field: "telemetry.log_every", Value: c.Telemetry.LogEvery, Reason: "must not be negative"}
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.Width = c.GridSize
	c.Derived.Height = c.GridSize
	c.Derived.CellCapacity = c.GridSize * c.GridSize * c.Model.MaxPerCell

	switch c.BarrierType {
	case BarrierVertical:
		c.Derived.BarrierIndex = c.Derived.Width / 2
	case BarrierHorizontal:
		c.Derived.BarrierIndex = c.Derived.Height / 2
	default:
		c.Derived.BarrierIndex = -1
	}
	if c.BarrierPosition != nil && c.BarrierType != BarrierNone {
		c.Derived.BarrierIndex = *c.BarrierPosition
	}
}

// Clone returns a deep copy, so a run can own its configuration.
func (c *Config) Clone() *Config {
	cp := *c
	if c.BarrierPosition != nil {
		pos := *c.BarrierPosition
		cp.BarrierPosition = &pos
	}
	return &cp
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
