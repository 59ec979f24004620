package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load defaults: %v", err)
	}

	if cfg.GridSize != 20 {
		t.Errorf("grid_size = %d, want 20", cfg.GridSize)
	}
	if cfg.BarrierType != BarrierVertical {
		t.Errorf("barrier_type = %q, want vertical", cfg.BarrierType)
	}
	if cfg.Model.CapacityPolicy != CapacityRandom {
		t.Errorf("capacity_policy = %q, want random", cfg.Model.CapacityPolicy)
	}
	if cfg.Derived.BarrierIndex != 10 {
		t.Errorf("barrier index = %d, want midpoint 10", cfg.Derived.BarrierIndex)
	}
	if cfg.Derived.CellCapacity != 20*20*cfg.Model.MaxPerCell {
		t.Errorf("cell capacity = %d", cfg.Derived.CellCapacity)
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := writeConfig(t, `
grid_size: 10
initial_pop_size: 100
generations: 50
barrier_type: horizontal
barrier_position: 3
model:
  capacity_policy: fitness_weighted
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.GridSize != 10 || cfg.InitialPopSize != 100 || cfg.Generations != 50 {
		t.Errorf("run options not applied: %+v", cfg)
	}
	if cfg.MutationRate != 0.05 {
		t.Errorf("mutation_rate = %v, want default 0.05", cfg.MutationRate)
	}
	if cfg.Model.GenomeLength != 8 {
		t.Errorf("genome_length = %d, want default 8", cfg.Model.GenomeLength)
	}
	if cfg.Model.CapacityPolicy != CapacityFitnessWeighted {
		t.Errorf("capacity_policy = %q", cfg.Model.CapacityPolicy)
	}
	if cfg.Derived.BarrierIndex != 3 {
		t.Errorf("barrier index = %d, want 3", cfg.Derived.BarrierIndex)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"unknown barrier", "barrier_type: diagonal", "barrier_type"},
		{"unknown policy", "model:\n  capacity_policy: oldest", "model.capacity_policy"},
		{"zero grid", "grid_size: 0", "grid_size"},
		{"negative population", "initial_pop_size: -5", "initial_pop_size"},
		{"negative generations", "generations: -1", "generations"},
		{"mutation above one", "mutation_rate: 1.5", "mutation_rate"},
		{"negative migration", "model:\n  migration_rate: -0.1", "model.migration_rate"},
		{"barrier outside grid", "grid_size: 10\nbarrier_position: 10", "barrier_position"},
		{"zero capacity", "model:\n  max_per_cell: 0", "model.max_per_cell"},
		{"zero perf window", "telemetry:\n  perf_window: 0", "telemetry.perf_window"},
		{"negative history", "telemetry:\n  history_size: -3", "telemetry.history_size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("expected error")
			}
			var cfgErr *ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected ConfigurationError, got %T: %v", err, err)
			}
			if cfgErr.Field != tt.field {
				t.Errorf("field = %q, want %q", cfgErr.Field, tt.field)
			}
		})
	}
}

func TestUnknownBarrierNamedInError(t *testing.T) {
	_, err := ParseBarrierType("diagonal")
	if err == nil {
		t.Fatal("expected error for unknown barrier type")
	}
	if !strings.Contains(err.Error(), "diagonal") {
		t.Errorf("error %q does not name the invalid value", err)
	}

	b, err := ParseBarrierType("none")
	if err != nil || b != BarrierNone {
		t.Errorf("ParseBarrierType(none) = %q, %v", b, err)
	}
}

func TestBarrierPositionIgnoredWithoutBarrier(t *testing.T) {
	cfg, err := Load(writeConfig(t, "barrier_type: none\nbarrier_position: 99"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Derived.BarrierIndex != -1 {
		t.Errorf("barrier index = %d, want -1", cfg.Derived.BarrierIndex)
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Seed = 1234
	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load written config: %v", err)
	}
	if loaded.Seed != 1234 {
		t.Errorf("seed = %d, want 1234", loaded.Seed)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	pos := 4
	cfg := Default()
	cfg.BarrierPosition = &pos

	cp := cfg.Clone()
	*cp.BarrierPosition = 7
	if *cfg.BarrierPosition != 4 {
		t.Errorf("clone shares barrier position")
	}
}
