package model

// Position is an immutable (row, column) coordinate pair. It is a plain
// comparable struct so it can key the alive-set map directly.
type Position struct {
	Row int
	Col int
}

// NewPosition returns the position at the given row and column.
func NewPosition(row, col int) Position {
	return Position{Row: row, Col: col}
}

// Add returns the coordinate-wise sum of p and offset.
func (p Position) Add(offset Position) Position {
	return Position{Row: p.Row + offset.Row, Col: p.Col + offset.Col}
}

// NeighborOffsets holds the 8 Moore-neighborhood deltas: the four orthogonal
// and four diagonal neighbors, excluding the zero offset.
var NeighborOffsets = [8]Position{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Neighbors returns all 8 neighbor positions of p, unfiltered. Callers at a
// grid boundary filter the result through Grid.IsInGrid.
func (p Position) Neighbors() [8]Position {
	var neighbors [8]Position
	for i, offset := range NeighborOffsets {
		neighbors[i] = p.Add(offset)
	}
	return neighbors
}
