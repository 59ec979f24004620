package components

// Position is the grid cell an entity occupies.
type Position struct {
	X, Y int
}

// Index returns the row-major cell index on a grid of the given width.
func (p Position) Index(width int) int {
	return p.Y*width + p.X
}
