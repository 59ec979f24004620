package systems

import (
	"fmt"

	"github.com/akotu235/species-formation-simulation/config"
)

// Barrier is the impassable-cell mask. It never changes after construction.
// A barrier blocks migration into its cells; it does not evict occupants.
type Barrier struct {
	Kind  config.BarrierType
	Index int // Column (vertical) or row (horizontal); -1 for none
	W, H  int
	mask  []bool
}

// NewBarrier builds the mask for the given layout. index selects the barrier
// column or row and is ignored for BarrierNone.
func NewBarrier(kind config.BarrierType, height, width, index int) (*Barrier, error) {
	b := &Barrier{
		Kind:  kind,
		Index: -1,
		W:     width,
		H:     height,
		mask:  make([]bool, width*height),
	}

	switch kind {
	case config.BarrierVertical:
		if index < 0 || index >= width {
			return nil, &config.ConfigurationError{
				Field:  "barrier_position",
				Value:  index,
				Reason: fmt.Sprintf("vertical barrier column must lie in [0,%d)", width),
			}
		}
		b.Index = index
		for y := 0; y < height; y++ {
			b.mask[y*width+index] = true
		}
	case config.BarrierHorizontal:
		if index < 0 || index >= height {
			return nil, &config.ConfigurationError{
				Field:  "barrier_position",
				Value:  index,
				Reason: fmt.Sprintf("horizontal barrier row must lie in [0,%d)", height),
			}
		}
		b.Index = index
		for x := 0; x < width; x++ {
			b.mask[index*width+x] = true
		}
	case config.BarrierNone:
	default:
		return nil, &config.ConfigurationError{
			Field:  "barrier_type",
			Value:  string(kind),
			Reason: fmt.Sprintf("must be one of %v", config.BarrierTypes),
		}
	}

	return b, nil
}

// Blocked reports whether (x, y) is a barrier cell.
func (b *Barrier) Blocked(x, y int) bool {
	return b.mask[y*b.W+x]
}

// Mask returns the barrier as a height×width matrix.
func (b *Barrier) Mask() [][]bool {
	rows := make([][]bool, b.H)
	for y := range rows {
		rows[y] = make([]bool, b.W)
		copy(rows[y], b.mask[y*b.W:(y+1)*b.W])
	}
	return rows
}

// Split reports whether the barrier divides the grid into two sides.
// A nil barrier does not split the grid.
func (b *Barrier) Split() bool {
	if b == nil {
		return false
	}
	return b.Kind != config.BarrierNone && b.Index >= 0
}

// Side returns 0 for cells strictly before the barrier line (left or top)
// and 1 for cells on or after it. Without a barrier every cell is side 0.
func (b *Barrier) Side(x, y int) int {
	if b == nil {
		return 0
	}
	switch b.Kind {
	case config.BarrierVertical:
		if x >= b.Index {
			return 1
		}
	case config.BarrierHorizontal:
		if y >= b.Index {
			return 1
		}
	}
	return 0
}

// SideNames names the two sides for statistics output.
func (b *Barrier) SideNames() [2]string {
	if b == nil {
		return [2]string{"all", ""}
	}
	switch b.Kind {
	case config.BarrierVertical:
		return [2]string{"left", "right"}
	case config.BarrierHorizontal:
		return [2]string{"top", "bottom"}
	}
	return [2]string{"all", ""}
}
