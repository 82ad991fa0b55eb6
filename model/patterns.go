package model

import "math/rand"

// stamp returns a derived grid with the given cells alive, relative to
// origin. Cells falling outside the bounds are clipped.
func stamp(g Grid, origin Position, cells []Position) Grid {
	next := g
	for _, cell := range cells {
		pos := origin.Add(cell)
		if next.IsInGrid(pos) && !next.IsAlive(pos) {
			next = next.SwitchCellState(pos)
		}
	}
	return next
}

// WithBlock returns a grid with a 2x2 still-life block at origin.
func WithBlock(g Grid, origin Position) Grid {
	return stamp(g, origin, []Position{
		{0, 0}, {0, 1},
		{1, 0}, {1, 1},
	})
}

// WithBlinker returns a grid with a horizontal period-2 blinker at origin.
func WithBlinker(g Grid, origin Position) Grid {
	return stamp(g, origin, []Position{{0, 0}, {0, 1}, {0, 2}})
}

// WithGlider returns a grid with a glider at origin.
func WithGlider(g Grid, origin Position) Grid {
	return stamp(g, origin, []Position{
		{0, 1},
		{1, 2},
		{2, 0}, {2, 1}, {2, 2},
	})
}

// SeedPatterns returns a grid populated with stock patterns plus random
// cells alive at the given density, drawn from the provided source.
func SeedPatterns(g Grid, density float64, rng *rand.Rand) Grid {
	next := g

	if size := g.Size(); size >= 10 {
		next = WithGlider(next, Position{Row: 1, Col: 1})
		next = WithBlinker(next, Position{Row: size / 2, Col: size / 4})
		if size >= 20 {
			next = WithGlider(next, Position{Row: 1, Col: size - 5})
			next = WithBlinker(next, Position{Row: 3 * size / 4, Col: 3 * size / 4})
		}
	}

	for row := 0; row < g.Size(); row++ {
		for col := 0; col < g.Size(); col++ {
			pos := Position{Row: row, Col: col}
			if !next.IsAlive(pos) && rng.Float64() < density {
				next = next.SwitchCellState(pos)
			}
		}
	}
	return next
}
