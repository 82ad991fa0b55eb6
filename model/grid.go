package model

import (
	"crypto/md5"
	"fmt"
	"math/rand"
	"runtime"
	"sort"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/go-life/rules"
)

// Grid is an immutable generation of the board: a fixed size bound and the
// set of alive positions. Every mutating operation returns a fresh Grid and
// leaves the receiver untouched, so any number of readers can hold different
// generations without synchronization.
type Grid struct {
	size  int
	alive map[Position]struct{}
}

// Empty creates a grid of the given size with no alive cells.
func Empty(size int) (Grid, error) {
	if size <= 0 {
		return Grid{}, errors.Errorf("[Empty] grid size must be positive, got: %d", size)
	}
	return Grid{size: size, alive: make(map[Position]struct{})}, nil
}

// RandomSeed creates a grid of the given size where each cell is
// independently alive with probability 1/2, drawn from the provided source.
func RandomSeed(size int, rng *rand.Rand) (Grid, error) {
	if size <= 0 {
		return Grid{}, errors.Errorf("[RandomSeed] grid size must be positive, got: %d", size)
	}
	alive := make(map[Position]struct{})
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			if rng.Intn(2) == 0 {
				alive[Position{Row: row, Col: col}] = struct{}{}
			}
		}
	}
	return Grid{size: size, alive: alive}, nil
}

// Size returns the grid's fixed bound N; valid positions span [0,N)×[0,N).
func (g Grid) Size() int {
	return g.size
}

// IsAlive returns true iff the position is a member of the alive-set.
// Out-of-bounds positions are never members, so they report false.
func (g Grid) IsAlive(pos Position) bool {
	_, ok := g.alive[pos]
	return ok
}

// CellStateAt returns the derived state of the cell at pos.
func (g Grid) CellStateAt(pos Position) CellState {
	if g.IsAlive(pos) {
		return Alive
	}
	return Dead
}

// IsInGrid reports whether pos lies within the grid bounds. Edges are hard
// boundaries; there is no wraparound.
func (g Grid) IsInGrid(pos Position) bool {
	return pos.Row >= 0 && pos.Row < g.size && pos.Col >= 0 && pos.Col < g.size
}

// SwitchCellState returns a new Grid with the cell at pos toggled.
// Out-of-bounds positions return the receiver unchanged, so the alive-set
// can never hold a position outside the bounds.
func (g Grid) SwitchCellState(pos Position) Grid {
	if !g.IsInGrid(pos) {
		return g
	}
	next := make(map[Position]struct{}, len(g.alive)+1)
	for p := range g.alive {
		next[p] = struct{}{}
	}
	if _, ok := next[pos]; ok {
		delete(next, pos)
	} else {
		next[pos] = struct{}{}
	}
	return Grid{size: g.size, alive: next}
}

// CountAliveCells returns the number of alive cells.
func (g Grid) CountAliveCells() int {
	return len(g.alive)
}

// AliveCells returns the alive positions in row-major order.
func (g Grid) AliveCells() []Position {
	cells := make([]Position, 0, len(g.alive))
	for pos := range g.alive {
		cells = append(cells, pos)
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Row != cells[j].Row {
			return cells[i].Row < cells[j].Row
		}
		return cells[i].Col < cells[j].Col
	})
	return cells
}

// countAliveNeighbors counts the alive cells among the 8 Moore neighbors of
// pos. Membership implies in-bounds, so counting needs no separate bounds
// filter.
func (g Grid) countAliveNeighbors(pos Position) int {
	count := 0
	for _, offset := range NeighborOffsets {
		if g.IsAlive(pos.Add(offset)) {
			count++
		}
	}
	return count
}

// candidatePool reuses the scratch maps that hold each step's candidate set,
// so sustained stepping does not reallocate them every generation.
var candidatePool = sync.Pool{
	New: func() interface{} {
		return make(map[Position]struct{})
	},
}

// collectCandidates gathers every cell whose state can change this step:
// each alive cell plus its in-bounds neighbors. A dead cell with no alive
// neighbor can never reach a count of 3, so skipping it is exact, not an
// approximation. The returned map must go back through releaseCandidates.
func (g Grid) collectCandidates() map[Position]struct{} {
	candidates := candidatePool.Get().(map[Position]struct{})
	for pos := range g.alive {
		candidates[pos] = struct{}{}
		for _, offset := range NeighborOffsets {
			if neighbor := pos.Add(offset); g.IsInGrid(neighbor) {
				candidates[neighbor] = struct{}{}
			}
		}
	}
	return candidates
}

func releaseCandidates(candidates map[Position]struct{}) {
	clear(candidates)
	candidatePool.Put(candidates)
}

// NextGeneration computes the next generation and returns it as a new Grid.
// Only candidate cells are evaluated, making the step O(k) in the number of
// alive cells and their neighborhoods rather than O(size²).
func (g Grid) NextGeneration() Grid {
	candidates := g.collectCandidates()
	defer releaseCandidates(candidates)

	next := make(map[Position]struct{}, len(g.alive))
	for pos := range candidates {
		if rules.NextState(g.IsAlive(pos), g.countAliveNeighbors(pos)) {
			next[pos] = struct{}{}
		}
	}
	return Grid{size: g.size, alive: next}
}

// parallelThreshold is the candidate count below which splitting the step
// across workers costs more than it saves.
const parallelThreshold = 2048

// NextGenerationParallel computes the same next generation as
// NextGeneration, splitting candidate evaluation across one worker per CPU.
func (g Grid) NextGenerationParallel() Grid {
	candidates := g.collectCandidates()

	numWorkers := runtime.NumCPU()
	if len(candidates) < parallelThreshold || numWorkers < 2 {
		releaseCandidates(candidates)
		return g.NextGeneration()
	}

	ordered := make([]Position, 0, len(candidates))
	for pos := range candidates {
		ordered = append(ordered, pos)
	}
	releaseCandidates(candidates)

	var (
		eg             errgroup.Group
		cellsPerWorker = (len(ordered) + numWorkers - 1) / numWorkers // Ceiling division
		survivors      = make([][]Position, numWorkers)
	)

	for i := 0; i < numWorkers; i++ {
		i := i
		var (
			start = i * cellsPerWorker
			end   = min(start+cellsPerWorker, len(ordered))
		)
		if start >= len(ordered) {
			break
		}

		eg.Go(func() error {
			var alive []Position
			for _, pos := range ordered[start:end] {
				if rules.NextState(g.IsAlive(pos), g.countAliveNeighbors(pos)) {
					alive = append(alive, pos)
				}
			}
			survivors[i] = alive
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		fmt.Printf("Error in parallel processing: %v\n", err)
	}

	next := make(map[Position]struct{}, len(g.alive))
	for _, chunk := range survivors {
		for _, pos := range chunk {
			next[pos] = struct{}{}
		}
	}
	return Grid{size: g.size, alive: next}
}

// Hash returns an md5 digest of the row-major cell bitmap, used by the
// runner to detect static and cycling boards.
func (g Grid) Hash() string {
	h := md5.New()
	for row := 0; row < g.size; row++ {
		for col := 0; col < g.size; col++ {
			if g.IsAlive(Position{Row: row, Col: col}) {
				h.Write([]byte{1})
			} else {
				h.Write([]byte{0})
			}
		}
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}
