package main

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/akotu235/species-formation-simulation/config"
)

func TestExperimentVariantsAreValid(t *testing.T) {
	base := config.Default()
	for _, name := range experimentNames() {
		exp := experiments[name]
		for _, v := range exp.Variants {
			t.Run(name+"/"+v.Label, func(t *testing.T) {
				cfg, err := variantConfig(base, exp, v, 1, -1)
				if err != nil {
					t.Fatalf("variantConfig: %v", err)
				}
				if cfg.GridSize != 10 {
					t.Errorf("grid_size = %d, want 10", cfg.GridSize)
				}
			})
		}
	}
	if base.GridSize != 20 {
		t.Error("variants modified the base configuration")
	}
}

func TestBarrierVariantsPlacement(t *testing.T) {
	exp := experiments["barrier"]
	base := config.Default()

	with, err := variantConfig(base, exp, exp.Variants[0], 1, -1)
	if err != nil {
		t.Fatalf("variantConfig: %v", err)
	}
	if with.Derived.BarrierIndex != 5 {
		t.Errorf("barrier column = %d, want 5", with.Derived.BarrierIndex)
	}

	without, err := variantConfig(base, exp, exp.Variants[1], 1, -1)
	if err != nil {
		t.Fatalf("variantConfig: %v", err)
	}
	if without.BarrierType != config.BarrierNone || without.Derived.BarrierIndex != -1 {
		t.Errorf("control has barrier %q at %d", without.BarrierType, without.Derived.BarrierIndex)
	}
}

func TestLookupExperiments(t *testing.T) {
	all, err := lookupExperiments("all")
	if err != nil || len(all) != 3 {
		t.Fatalf("all = %d experiments, %v", len(all), err)
	}
	if _, err := lookupExperiments("drift"); err == nil {
		t.Error("expected error for unknown experiment")
	}
}

func TestRunVariant(t *testing.T) {
	exp := experiments["mutation"]
	seeds := []int64{1, 2, 3}

	res, err := runVariant(config.Default(), exp, exp.Variants[1], seeds, 10)
	if err != nil {
		t.Fatalf("runVariant: %v", err)
	}
	if len(res.Rows) != len(seeds) {
		t.Fatalf("got %d rows, want %d", len(res.Rows), len(seeds))
	}
	for i, r := range res.Rows {
		if r.Seed != seeds[i] {
			t.Errorf("row %d has seed %d, want %d", i, r.Seed, seeds[i])
		}
	}
	if len(res.Diversity) != 10 {
		t.Errorf("diversity series has %d values, want 10", len(res.Diversity))
	}
	if res.Summary.Runs != 3 || math.IsNaN(res.Summary.DivergenceStd) {
		t.Errorf("summary = %+v", res.Summary)
	}

	path := filepath.Join(t.TempDir(), "rows.csv")
	if err := writeCSV(path, res.Rows); err != nil {
		t.Fatalf("writeCSV: %v", err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Errorf("rows.csv not written: %v", err)
	}
}

func TestSummarizeRows(t *testing.T) {
	rows := []RunRow{
		{Divergence: 0.2, FinalPopulation: 100, Speciated: false},
		{Divergence: 0.4, FinalPopulation: 200, Speciated: true},
	}
	s := summarizeRows("e", "v", rows)
	if math.Abs(s.DivergenceMean-0.3) > 1e-12 {
		t.Errorf("divergence mean = %v", s.DivergenceMean)
	}
	if s.SpeciatedShare != 0.5 || s.FinalPopulationMean != 150 {
		t.Errorf("summary = %+v", s)
	}

	single := summarizeRows("e", "v", rows[:1])
	if single.DivergenceStd != 0 || single.DivergenceMean != 0.2 {
		t.Errorf("single-run summary = %+v", single)
	}
}

func TestMeanSeries(t *testing.T) {
	got := meanSeries([][]float64{{1, 2}, {3, 4}})
	if len(got) != 2 || got[0] != 2 || got[1] != 3 {
		t.Errorf("meanSeries = %v", got)
	}
	if meanSeries(nil) != nil {
		t.Error("meanSeries(nil) should be nil")
	}
}
