// Package report renders statistics series as PNG line charts.
package report

import (
	"errors"
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/akotu235/species-formation-simulation/telemetry"
)

// ErrNoData is returned when there is nothing to draw.
var ErrNoData = errors.New("report: no data to plot")

// Chart size in inches.
const (
	Width  = 8
	Height = 5
)

// Line is one named sequence, indexed by generation.
type Line struct {
	Label  string
	Values []float64
}

// PlotLines draws every non-empty line against the generation index and
// saves the chart to path. The image format follows the file extension.
func PlotLines(title, yLabel string, lines []Line, path string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Generation"
	p.Y.Label.Text = yLabel
	p.Legend.Top = true

	drawn := 0
	for _, l := range lines {
		if len(l.Values) == 0 {
			continue
		}
		pts := make(plotter.XYs, len(l.Values))
		for i, v := range l.Values {
			pts[i].X = float64(i)
			pts[i].Y = v
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("building line %q: %w", l.Label, err)
		}
		line.Color = plotutil.Color(drawn)
		p.Add(line)
		p.Legend.Add(l.Label, line)
		drawn++
	}
	if drawn == 0 {
		return ErrNoData
	}

	p.Add(plotter.NewGrid())
	if err := p.Save(Width*vg.Inch, Height*vg.Inch, path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

// PlotGenetics draws genetic diversity and mean fitness of a run.
func PlotGenetics(s telemetry.Series, title, path string) error {
	return PlotLines(title, "Value", []Line{
		{Label: "genetic diversity", Values: s[telemetry.MetricGeneticDiversity]},
		{Label: "mean fitness", Values: s[telemetry.MetricFitness]},
	}, path)
}

// PlotPopulation draws the total population and, when present, the
// population on each side of the barrier.
func PlotPopulation(s telemetry.Series, sides *[2]string, title, path string) error {
	lines := []Line{{Label: "total", Values: s[telemetry.MetricTotalPopulation]}}
	if sides != nil {
		for _, side := range sides {
			lines = append(lines, Line{Label: side, Values: s[telemetry.SideMetric(side)]})
		}
	}
	return PlotLines(title, "Agents", lines, path)
}
