// Package systems provides the ECS systems of one simulation step and the
// fixed environment they run against.
package systems

import (
	"github.com/mlange-42/ark/ecs"
)

// Occupancy buckets entities by grid cell.
type Occupancy struct {
	width int
	cells [][]ecs.Entity // flat grid of entity lists, row-major
}

// NewOccupancy creates an empty occupancy grid.
func NewOccupancy(width, height int) *Occupancy {
	cells := make([][]ecs.Entity, width*height)
	for i := range cells {
		cells[i] = make([]ecs.Entity, 0, 4)
	}
	return &Occupancy{width: width, cells: cells}
}

// Clear removes all entities from the grid.
func (o *Occupancy) Clear() {
	for i := range o.cells {
		o.cells[i] = o.cells[i][:0]
	}
}

// Insert adds an entity to cell (x, y).
func (o *Occupancy) Insert(e ecs.Entity, x, y int) {
	idx := y*o.width + x
	o.cells[idx] = append(o.cells[idx], e)
}

// Cell returns the entities in the cell with the given row-major index.
// The slice is reused by the next Clear.
func (o *Occupancy) Cell(idx int) []ecs.Entity {
	return o.cells[idx]
}

// NumCells returns the number of cells.
func (o *Occupancy) NumCells() int {
	return len(o.cells)
}

// neighborOffsets is the von Neumann neighbourhood: left, right, up, down.
var neighborOffsets = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// neighbors writes the in-bounds von Neumann neighbours of (x, y) into dst
// and returns how many there are. Cells on the edge have fewer.
func neighbors(dst *[4][2]int, x, y, width, height int) int {
	n := 0
	for _, off := range neighborOffsets {
		nx, ny := x+off[0], y+off[1]
		if nx < 0 || nx >= width || ny < 0 || ny >= height {
			continue
		}
		dst[n] = [2]int{nx, ny}
		n++
	}
	return n
}
