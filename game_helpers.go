package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/utils"
)

// gridUpdate is one entry in the single-writer update stream: a pure
// transform applied against the latest grid. Toggles and generation ticks
// both flow through this type so they compose in a well-defined order and
// never race or apply to a stale snapshot.
type gridUpdate struct {
	apply   func(model.Grid) model.Grid
	advance bool // true when the update is a generation tick
}

// Game owns the current grid and the ordered update queue. Only the run
// loop applies updates; everything else enqueues.
type Game struct {
	config   utils.Config
	grid     model.Grid
	updates  chan gridUpdate
	rng      *rand.Rand
	renderer *model.TerminalRenderer
	stats    *utils.Stats
	history  *model.History
	running  bool

	generation     int
	stagnantCount  int
	lastRestartGen int
	lastFrameTime  time.Time
}

// newGame sets up the initial game state
func newGame(config utils.Config) (*Game, error) {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	grid, err := newBoard(config, rng)
	if err != nil {
		return nil, err
	}

	return &Game{
		config:        config,
		grid:          grid,
		updates:       make(chan gridUpdate, 16),
		rng:           rng,
		renderer:      &model.TerminalRenderer{},
		stats:         utils.NewStats(),
		history:       model.NewHistory(),
		running:       true,
		lastFrameTime: time.Now(),
	}, nil
}

// newBoard builds a starting grid: fully random when configured, otherwise
// stock patterns plus sparse random fill.
func newBoard(config utils.Config, rng *rand.Rand) (model.Grid, error) {
	if config.Random {
		return model.RandomSeed(config.Size, rng)
	}
	grid, err := model.Empty(config.Size)
	if err != nil {
		return model.Grid{}, err
	}
	return model.SeedPatterns(grid, config.RandomDensity, rng), nil
}

// Toggle enqueues a cell toggle against whatever grid is current when the
// update is applied.
func (g *Game) Toggle(pos model.Position) {
	g.updates <- gridUpdate{
		apply: func(grid model.Grid) model.Grid {
			return grid.SwitchCellState(pos)
		},
	}
}

// Advance enqueues a generation step.
func (g *Game) Advance() {
	g.updates <- gridUpdate{apply: g.step, advance: true}
}

func (g *Game) step(grid model.Grid) model.Grid {
	if g.config.UseParallel {
		return grid.NextGenerationParallel()
	}
	return grid.NextGeneration()
}

// Pause stops automatic generation ticks; toggles still apply. Idempotent.
func (g *Game) Pause() {
	g.running = false
}

// Resume restarts automatic generation ticks. Idempotent.
func (g *Game) Resume() {
	g.running = true
}

// applyUpdate replaces the current grid with the transformed one and, for
// generation ticks, runs the per-frame bookkeeping. Called only from the
// run loop.
func (g *Game) applyUpdate(update gridUpdate) {
	g.grid = update.apply(g.grid)
	if update.advance {
		g.generation++
		g.afterAdvance()
	}
}

// afterAdvance updates stats and stagnation tracking, then restarts the
// board when configured to and the population has died out or stalled.
func (g *Game) afterAdvance() {
	frameStart := time.Now()
	g.stats.Update(g.generation, g.grid.CountAliveCells(), frameStart.Sub(g.lastFrameTime))
	g.lastFrameTime = frameStart

	hash := g.grid.Hash()
	if g.history.IsStagnant(hash) {
		g.stagnantCount++
	} else {
		g.stagnantCount = 0
	}
	g.history.Record(hash)

	if restart, reason := g.checkRestartConditions(); restart && g.config.AutoRestart {
		fmt.Printf("Restarting due to %s...\n", reason)
		if grid, err := newBoard(g.config, g.rng); err == nil {
			g.grid = grid
		}
		g.history.Reset()
		g.stagnantCount = 0
		g.lastRestartGen = g.generation
	}
}

// checkRestartConditions determines if the board should be reseeded
func (g *Game) checkRestartConditions() (bool, string) {
	if g.grid.CountAliveCells() == 0 {
		return true, "extinction"
	}
	if g.stagnantCount >= g.config.StagnationThreshold {
		return true, "stagnation"
	}
	return false, ""
}

// render redraws the board and the status lines.
func (g *Game) render() {
	g.renderer.Clear()

	alive := g.grid.CountAliveCells()
	density := float64(alive) / float64(g.grid.Size()*g.grid.Size()) * 100
	status := "Running"
	if !g.running {
		status = "Paused"
	}
	if alive == 0 {
		status = "Extinct"
	}

	fmt.Printf("Gen: %d | Alive: %d | Density: %.1f%% | Status: %s\n",
		g.generation, alive, density, status)
	fmt.Printf("Performance: %.1f gen/sec | Avg Pop: %.1f | Runtime: %.1fs\n",
		g.stats.GenerationsPerSecond, g.stats.AveragePopulation,
		time.Since(g.stats.StartTime).Seconds())
	if g.generation > g.lastRestartGen {
		fmt.Printf("Generations since restart: %d\n", g.generation-g.lastRestartGen)
	}
	fmt.Println()

	g.renderer.Display(g.grid)
}

// reachedMaxGenerations reports whether the configured generation limit has
// been hit.
func (g *Game) reachedMaxGenerations() bool {
	return g.config.MaxGenerations > 0 && g.generation >= g.config.MaxGenerations
}
