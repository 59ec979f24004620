package telemetry

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/stat"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkExtinction        BookmarkType = "extinction"
	BookmarkSideExtinction    BookmarkType = "side_extinction"
	BookmarkDiversityCollapse BookmarkType = "diversity_collapse"
	BookmarkEquilibrium       BookmarkType = "equilibrium"
)

// Bookmark marks a generation where something notable happened.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Generation  int          `csv:"generation"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"generation", b.Generation,
		"description", b.Description,
	)
}

// BookmarkDetector watches generation records for notable moments.
type BookmarkDetector struct {
	sides [2]string

	// Rolling history (circular buffer)
	history     []GenerationStats
	historySize int
	historyIdx  int
	historyFull bool

	extinct        bool
	sideExtinct    [2]bool
	collapsed      bool
	stableCount    int
	equilibriumHit bool
}

// NewBookmarkDetector creates a detector with the given history size.
// sides names the two barrier sides in descriptions.
func NewBookmarkDetector(historySize int, sides [2]string) *BookmarkDetector {
	if historySize < 5 {
		historySize = 5 // minimum for equilibrium detection
	}
	return &BookmarkDetector{
		sides:       sides,
		history:     make([]GenerationStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest record and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats GenerationStats) []Bookmark {
	var bookmarks []Bookmark

	if b := bd.checkExtinction(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	bookmarks = append(bookmarks, bd.checkSideExtinction(stats)...)
	if b := bd.checkDiversityCollapse(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkEquilibrium(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.addToHistory(stats)
	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats GenerationStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

// recent returns up to n most recent records, oldest first.
func (bd *BookmarkDetector) recent(n int) []GenerationStats {
	size := bd.historyIdx
	if bd.historyFull {
		size = bd.historySize
	}
	if n > size {
		n = size
	}
	out := make([]GenerationStats, n)
	for i := 0; i < n; i++ {
		idx := (bd.historyIdx - n + i + bd.historySize) % bd.historySize
		out[i] = bd.history[idx]
	}
	return out
}

func (bd *BookmarkDetector) checkExtinction(stats GenerationStats) *Bookmark {
	if bd.extinct || stats.Population > 0 {
		return nil
	}
	bd.extinct = true
	return &Bookmark{
		Type:        BookmarkExtinction,
		Generation:  stats.Generation,
		Description: "Population went extinct",
	}
}

func (bd *BookmarkDetector) checkSideExtinction(stats GenerationStats) []Bookmark {
	if !stats.HasSides || stats.Population == 0 {
		return nil
	}

	var bookmarks []Bookmark
	counts := [2]int{stats.BeforeBarrier, stats.AfterBarrier}
	for side, n := range counts {
		if n > 0 {
			bd.sideExtinct[side] = false
			continue
		}
		if bd.sideExtinct[side] {
			continue
		}
		bd.sideExtinct[side] = true
		bookmarks = append(bookmarks, Bookmark{
			Type:        BookmarkSideExtinction,
			Generation:  stats.Generation,
			Description: fmt.Sprintf("No agents left on the %s side, %d on the other", bd.sides[side], counts[1-side]),
		})
	}
	return bookmarks
}

func (bd *BookmarkDetector) checkDiversityCollapse(stats GenerationStats) *Bookmark {
	history := bd.recent(bd.historySize)
	if len(history) < 3 {
		return nil
	}

	values := make([]float64, len(history))
	for i, h := range history {
		values[i] = h.Diversity
	}
	avg := stat.Mean(values, nil)
	if avg < 0.05 {
		return nil
	}

	if stats.Diversity >= avg*0.5 {
		bd.collapsed = false
		return nil
	}
	if bd.collapsed {
		return nil
	}
	bd.collapsed = true
	return &Bookmark{
		Type:        BookmarkDiversityCollapse,
		Generation:  stats.Generation,
		Description: fmt.Sprintf("Diversity %.3f fell below half the recent average %.3f", stats.Diversity, avg),
	}
}

func (bd *BookmarkDetector) checkEquilibrium(stats GenerationStats) *Bookmark {
	if stats.Population < 10 {
		bd.stableCount = 0
		return nil
	}

	history := bd.recent(4)
	if len(history) < 4 {
		return nil
	}

	sizes := make([]float64, 0, 5)
	for _, h := range history {
		sizes = append(sizes, float64(h.Population))
	}
	sizes = append(sizes, float64(stats.Population))
	mean, variance := stat.MeanVariance(sizes, nil)

	// CV^2 < 0.0025 means CV < 5%
	if mean > 0 && variance/(mean*mean) < 0.0025 {
		bd.stableCount++
	} else {
		bd.stableCount = 0
	}

	if bd.stableCount == 5 && !bd.equilibriumHit {
		bd.equilibriumHit = true
		return &Bookmark{
			Type:        BookmarkEquilibrium,
			Generation:  stats.Generation,
			Description: fmt.Sprintf("Population stable around %.0f agents", mean),
		}
	}
	return nil
}
