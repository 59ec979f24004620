package report

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/akotu235/species-formation-simulation/telemetry"
)

func sampleSeries() telemetry.Series {
	records := make([]telemetry.GenerationStats, 20)
	for i := range records {
		records[i] = telemetry.GenerationStats{
			Generation:    i,
			Population:    100 + i,
			Diversity:     0.6 - float64(i)*0.01,
			MeanFitness:   0.3 + float64(i)*0.01,
			HasSides:      true,
			BeforeBarrier: 50,
			AfterBarrier:  50 + i,
		}
	}
	return telemetry.BuildSeries(records, &[2]string{"left", "right"})
}

func TestPlotsWritePNG(t *testing.T) {
	dir := t.TempDir()
	s := sampleSeries()

	tests := []struct {
		name string
		draw func(path string) error
	}{
		{"genetics", func(path string) error { return PlotGenetics(s, "Genetics", path) }},
		{"population", func(path string) error {
			return PlotPopulation(s, &[2]string{"left", "right"}, "Population", path)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".png")
			if err := tt.draw(path); err != nil {
				t.Fatalf("plot: %v", err)
			}
			info, err := os.Stat(path)
			if err != nil {
				t.Fatalf("stat: %v", err)
			}
			if info.Size() == 0 {
				t.Error("empty PNG")
			}
		})
	}
}

func TestPlotLinesNoData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.png")
	err := PlotGenetics(telemetry.BuildSeries(nil, nil), "Empty", path)
	if !errors.Is(err, ErrNoData) {
		t.Errorf("err = %v, want ErrNoData", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("no file should be written without data")
	}
}
