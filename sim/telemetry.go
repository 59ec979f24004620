package sim

import (
	"log/slog"

	"github.com/akotu235/species-formation-simulation/telemetry"
)

// flushTelemetry hands a generation record to the callback, the log and the
// CSV output, and checks it for bookmarks. Write failures are logged; the
// run continues.
func (s *Simulation) flushTelemetry(stats telemetry.GenerationStats) {
	if s.statsCallback != nil {
		s.statsCallback(stats)
	}
	if s.logStats {
		stats.LogStats()
	}
	if err := s.output.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}

	for _, bm := range s.bookmarks.Check(stats) {
		if s.logStats {
			bm.LogBookmark()
		}
		if err := s.output.WriteBookmark(bm); err != nil {
			slog.Error("failed to write bookmark", "error", err)
		}
	}

	if s.perf.WindowFull() {
		s.flushPerf()
	}
}

// flushPerf writes the timings of the current perf window and starts a new one.
func (s *Simulation) flushPerf() {
	perfStats := s.perf.Stats()
	if perfStats.Samples == 0 {
		return
	}
	if s.logStats {
		perfStats.LogStats()
	}
	if err := s.output.WritePerf(perfStats, s.generation); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
	s.perf.Reset()
}
