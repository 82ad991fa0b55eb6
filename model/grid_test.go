package model

import (
	"math/rand"
	"testing"

	"github.com/sheikhrachel/go-life/rules"
)

func mustEmpty(t *testing.T, size int) Grid {
	t.Helper()
	grid, err := Empty(size)
	if err != nil {
		t.Fatalf("Empty(%d) failed: %v", size, err)
	}
	return grid
}

func gridWithAlive(t *testing.T, size int, cells ...Position) Grid {
	t.Helper()
	grid := mustEmpty(t, size)
	for _, pos := range cells {
		grid = grid.SwitchCellState(pos)
	}
	return grid
}

func sameAliveSet(a, b Grid) bool {
	if a.CountAliveCells() != b.CountAliveCells() {
		return false
	}
	for _, pos := range a.AliveCells() {
		if !b.IsAlive(pos) {
			return false
		}
	}
	return true
}

func TestEmptyRejectsNonPositiveSize(t *testing.T) {
	for _, size := range []int{0, -1, -100} {
		if _, err := Empty(size); err == nil {
			t.Errorf("Empty(%d) should have failed", size)
		}
	}
}

func TestRandomSeedRejectsNonPositiveSize(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, size := range []int{0, -1} {
		if _, err := RandomSeed(size, rng); err == nil {
			t.Errorf("RandomSeed(%d) should have failed", size)
		}
	}
}

func TestRandomSeedDeterministicAndInBounds(t *testing.T) {
	const size = 20
	first, err := RandomSeed(size, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("RandomSeed failed: %v", err)
	}
	second, err := RandomSeed(size, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("RandomSeed failed: %v", err)
	}

	if !sameAliveSet(first, second) {
		t.Error("same seed should produce the same alive-set")
	}
	for _, pos := range first.AliveCells() {
		if !first.IsInGrid(pos) {
			t.Errorf("seeded position %v is out of bounds", pos)
		}
	}
	if first.CountAliveCells() == 0 {
		t.Error("a 20x20 random seed with no alive cells is wildly improbable")
	}
}

func TestIsAliveAndCellStateAt(t *testing.T) {
	grid := gridWithAlive(t, 5, Position{Row: 2, Col: 3})

	if !grid.IsAlive(Position{Row: 2, Col: 3}) {
		t.Error("toggled cell should be alive")
	}
	if grid.CellStateAt(Position{Row: 2, Col: 3}) != Alive {
		t.Error("toggled cell state should be Alive")
	}
	if grid.IsAlive(Position{Row: 0, Col: 0}) {
		t.Error("untouched cell should be dead")
	}
	if grid.CellStateAt(Position{Row: 0, Col: 0}) != Dead {
		t.Error("untouched cell state should be Dead")
	}
	if grid.IsAlive(Position{Row: -1, Col: 7}) {
		t.Error("out-of-bounds query should report dead")
	}
}

func TestIsInGrid(t *testing.T) {
	grid := mustEmpty(t, 5)
	cases := []struct {
		pos  Position
		want bool
	}{
		{Position{0, 0}, true},
		{Position{4, 4}, true},
		{Position{0, 4}, true},
		{Position{-1, 0}, false},
		{Position{0, -1}, false},
		{Position{5, 0}, false},
		{Position{0, 5}, false},
		{Position{5, 5}, false},
	}
	for _, c := range cases {
		if got := grid.IsInGrid(c.pos); got != c.want {
			t.Errorf("IsInGrid(%v) = %v, want %v", c.pos, got, c.want)
		}
	}
}

func TestSwitchCellStateReturnsFreshGrid(t *testing.T) {
	original := mustEmpty(t, 5)
	toggled := original.SwitchCellState(Position{Row: 1, Col: 1})

	if original.CountAliveCells() != 0 {
		t.Error("toggle must not mutate the receiver")
	}
	if !toggled.IsAlive(Position{Row: 1, Col: 1}) {
		t.Error("toggle should make a dead cell alive")
	}
}

func TestSwitchCellStateDoubleToggleIdempotent(t *testing.T) {
	grid := gridWithAlive(t, 5, Position{0, 0}, Position{3, 4})
	pos := Position{Row: 2, Col: 2}

	roundTripped := grid.SwitchCellState(pos).SwitchCellState(pos)
	if !sameAliveSet(grid, roundTripped) {
		t.Error("double toggle should restore the original alive-set")
	}
}

func TestSwitchCellStateOutOfBoundsIsNoOp(t *testing.T) {
	grid := gridWithAlive(t, 5, Position{1, 1})

	for _, pos := range []Position{{-1, 0}, {0, -1}, {5, 0}, {0, 5}, {-3, 9}} {
		result := grid.SwitchCellState(pos)
		if !sameAliveSet(grid, result) {
			t.Errorf("out-of-bounds toggle at %v altered the alive-set", pos)
		}
		if result.IsAlive(pos) {
			t.Errorf("out-of-bounds position %v must never become alive", pos)
		}
	}
}

func TestNextGenerationEmptyStaysEmpty(t *testing.T) {
	grid := mustEmpty(t, 10)
	if next := grid.NextGeneration(); next.CountAliveCells() != 0 {
		t.Errorf("empty grid spawned %d cells", next.CountAliveCells())
	}
}

func TestNextGenerationBlockStillLife(t *testing.T) {
	block := gridWithAlive(t, 4,
		Position{1, 1}, Position{1, 2},
		Position{2, 1}, Position{2, 2},
	)
	if next := block.NextGeneration(); !sameAliveSet(block, next) {
		t.Errorf("block should be a still life, got %v", next.AliveCells())
	}
}

func TestNextGenerationBlinkerOscillates(t *testing.T) {
	horizontal := gridWithAlive(t, 5, Position{2, 1}, Position{2, 2}, Position{2, 3})
	vertical := gridWithAlive(t, 5, Position{1, 2}, Position{2, 2}, Position{3, 2})

	afterOne := horizontal.NextGeneration()
	if !sameAliveSet(afterOne, vertical) {
		t.Errorf("blinker should flip to vertical, got %v", afterOne.AliveCells())
	}

	afterTwo := afterOne.NextGeneration()
	if !sameAliveSet(afterTwo, horizontal) {
		t.Errorf("blinker should flip back after two steps, got %v", afterTwo.AliveCells())
	}
}

func TestNextGenerationIsPure(t *testing.T) {
	grid := gridWithAlive(t, 5, Position{2, 1}, Position{2, 2}, Position{2, 3})
	before := grid.AliveCells()

	first := grid.NextGeneration()
	second := grid.NextGeneration()

	after := grid.AliveCells()
	if len(before) != len(after) {
		t.Fatal("NextGeneration mutated the receiver")
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatal("NextGeneration mutated the receiver")
		}
	}
	if !sameAliveSet(first, second) {
		t.Error("two steps from the same receiver should be structurally equal")
	}
	if first.Hash() != second.Hash() {
		t.Error("two steps from the same receiver should hash identically")
	}
}

func TestBoundaryClipping(t *testing.T) {
	grid := gridWithAlive(t, 5, Position{0, 0})

	inBounds := 0
	for _, neighbor := range NewPosition(0, 0).Neighbors() {
		if grid.IsInGrid(neighbor) {
			inBounds++
		}
	}
	if inBounds != 3 {
		t.Errorf("corner cell should have 3 in-bounds neighbors, got %d", inBounds)
	}

	// A lone corner cell has no alive neighbors and dies.
	if next := grid.NextGeneration(); next.CountAliveCells() != 0 {
		t.Errorf("lone corner cell should die, got %v", next.AliveCells())
	}
}

// fullScanStep is the brute-force O(size²) reference: evaluate every cell.
func fullScanStep(g Grid) []Position {
	var alive []Position
	for row := 0; row < g.Size(); row++ {
		for col := 0; col < g.Size(); col++ {
			pos := Position{Row: row, Col: col}
			neighbors := 0
			for _, offset := range NeighborOffsets {
				if g.IsAlive(pos.Add(offset)) {
					neighbors++
				}
			}
			if rules.NextState(g.IsAlive(pos), neighbors) {
				alive = append(alive, pos)
			}
		}
	}
	return alive
}

func TestNextGenerationMatchesFullScan(t *testing.T) {
	grid, err := RandomSeed(25, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("RandomSeed failed: %v", err)
	}

	for step := 0; step < 5; step++ {
		want := fullScanStep(grid)
		next := grid.NextGeneration()
		if next.CountAliveCells() != len(want) {
			t.Fatalf("step %d: sparse step found %d alive cells, full scan found %d",
				step, next.CountAliveCells(), len(want))
		}
		for _, pos := range want {
			if !next.IsAlive(pos) {
				t.Fatalf("step %d: sparse step missed %v", step, pos)
			}
		}
		grid = next
	}
}

func TestNextGenerationParallelMatchesSerial(t *testing.T) {
	// A half-alive 80x80 board comfortably exceeds the parallel threshold.
	grid, err := RandomSeed(80, rand.New(rand.NewSource(99)))
	if err != nil {
		t.Fatalf("RandomSeed failed: %v", err)
	}

	for step := 0; step < 3; step++ {
		serial := grid.NextGeneration()
		parallel := grid.NextGenerationParallel()
		if !sameAliveSet(serial, parallel) {
			t.Fatalf("step %d: parallel and serial steps diverged", step)
		}
		grid = serial
	}
}

func TestBoundsInvariantAfterMixedOperations(t *testing.T) {
	grid, err := RandomSeed(15, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatalf("RandomSeed failed: %v", err)
	}

	for step := 0; step < 10; step++ {
		grid = grid.NextGeneration()
		grid = grid.SwitchCellState(Position{Row: step, Col: step})
		grid = grid.SwitchCellState(Position{Row: -1, Col: step})
		grid = grid.SwitchCellState(Position{Row: step, Col: 15})
	}

	for _, pos := range grid.AliveCells() {
		if !grid.IsInGrid(pos) {
			t.Errorf("alive-set holds out-of-bounds position %v", pos)
		}
	}
}

func TestAliveCellsIsSortedCopy(t *testing.T) {
	grid := gridWithAlive(t, 5, Position{3, 1}, Position{0, 4}, Position{3, 0})

	cells := grid.AliveCells()
	want := []Position{{0, 4}, {3, 0}, {3, 1}}
	if len(cells) != len(want) {
		t.Fatalf("got %d cells, want %d", len(cells), len(want))
	}
	for i := range want {
		if cells[i] != want[i] {
			t.Errorf("cells[%d] = %v, want %v", i, cells[i], want[i])
		}
	}

	// Mutating the returned slice must not affect the grid.
	cells[0] = Position{Row: 99, Col: 99}
	if grid.IsAlive(Position{Row: 99, Col: 99}) {
		t.Error("AliveCells should return a copy")
	}
}

func TestHashDistinguishesGrids(t *testing.T) {
	a := gridWithAlive(t, 5, Position{1, 1})
	b := gridWithAlive(t, 5, Position{1, 2})

	if a.Hash() == b.Hash() {
		t.Error("different boards should hash differently")
	}
	if a.Hash() != gridWithAlive(t, 5, Position{1, 1}).Hash() {
		t.Error("equal boards should hash identically")
	}
}
