package main

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/utils"
)

const configFile = "config.json"

// command is one line of interactive input: toggle, pause, start, or quit.
type command struct {
	kind string
	pos  model.Position
}

// readCommands parses interactive input lines into commands:
//
//	t <row> <col>  toggle a cell
//	p              pause automatic ticks
//	s              resume automatic ticks
//	q              quit
func readCommands(out chan<- command) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "t":
			if len(fields) != 3 {
				continue
			}
			row, errRow := strconv.Atoi(fields[1])
			col, errCol := strconv.Atoi(fields[2])
			if errRow != nil || errCol != nil {
				continue
			}
			out <- command{kind: "toggle", pos: model.NewPosition(row, col)}
		case "p":
			out <- command{kind: "pause"}
		case "s":
			out <- command{kind: "start"}
		case "q":
			out <- command{kind: "quit"}
		}
	}
	close(out)
}

func main() {
	// Load configuration - fallback to defaults if file doesn't exist
	config, err := utils.LoadConfig(configFile)
	if err != nil {
		fmt.Println("Using default configuration (config.json not found)")
	}

	game, err := newGame(config)
	if err != nil {
		fmt.Printf("Failed to initialize game: %+v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Grid: %dx%d | Initial alive cells: %d | Parallel: %v\n",
		config.Size, config.Size, game.grid.CountAliveCells(), config.UseParallel)
	fmt.Println("Press Ctrl+C to exit gracefully")
	if config.Interactive {
		fmt.Println("Commands: t <row> <col> to toggle, p to pause, s to start, q to quit")
	}
	time.Sleep(2 * time.Second)

	// Handle Ctrl+C gracefully
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	commands := make(chan command)
	if config.Interactive {
		go readCommands(commands)
	}

	ticker := time.NewTicker(config.FrameRate)
	defer ticker.Stop()

	game.render()

	for {
		select {
		case <-sigChan:
			shutdown(game)
			return
		case cmd, ok := <-commands:
			if !ok {
				commands = nil
				continue
			}
			switch cmd.kind {
			case "toggle":
				game.Toggle(cmd.pos)
			case "pause":
				game.Pause()
			case "start":
				game.Resume()
			case "quit":
				shutdown(game)
				return
			}
		case <-ticker.C:
			if game.running {
				game.Advance()
			}
		case update := <-game.updates:
			game.applyUpdate(update)
			game.render()
			if game.reachedMaxGenerations() {
				fmt.Printf("\nReached maximum generations limit (%d)\n", game.config.MaxGenerations)
				shutdown(game)
				return
			}
		}
	}
}

func shutdown(game *Game) {
	fmt.Println("\nShutting down gracefully...")
	fmt.Printf("Final stats: %d generations in %.1f seconds\n",
		game.generation, time.Since(game.stats.StartTime).Seconds())
	fmt.Printf("Average: %.1f gen/sec, %.1f avg population\n",
		game.stats.GenerationsPerSecond, game.stats.AveragePopulation)
}
