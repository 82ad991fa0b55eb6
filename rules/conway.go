package rules

/*
NextState applies the classic two-state neighbor-count rule to determine
whether a cell is alive in the next generation.

A cell with exactly 3 alive neighbors is alive regardless of its current
state; an alive cell with exactly 2 alive neighbors stays alive; every other
cell is dead.
*/
func NextState(alive bool, neighbors int) bool {
	return neighbors == 3 || (alive && neighbors == 2)
}
