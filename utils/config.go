package utils

import (
	"encoding/json"
	"github.com/pkg/errors"
	"os"
	"time"
)

// Config holds the configuration for the game
type Config struct {
	Size                int           `json:"size"`
	Random              bool          `json:"random"`
	Seed                int64         `json:"seed"`
	RandomDensity       float64       `json:"random_density"`
	FrameRate           time.Duration `json:"frame_rate"`
	UseParallel         bool          `json:"use_parallel"`
	AutoRestart         bool          `json:"auto_restart"`
	StagnationThreshold int           `json:"stagnation_threshold"`
	MaxGenerations      int           `json:"max_generations"`
	Interactive         bool          `json:"interactive"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Size:                40,
		Random:              false,
		Seed:                0, // 0 means seed from the clock
		RandomDensity:       0.15,
		FrameRate:           time.Second,
		UseParallel:         true,
		AutoRestart:         true,
		StagnationThreshold: 5,
		MaxGenerations:      1000,
		Interactive:         false,
	}
}

// Validate rejects configurations the engine cannot run with
func (c Config) Validate() error {
	if c.Size <= 0 {
		return errors.Errorf("[Validate] grid size must be positive, got: %d", c.Size)
	}
	if c.RandomDensity < 0 || c.RandomDensity > 1 {
		return errors.Errorf("[Validate] random_density must be in [0,1], got: %v", c.RandomDensity)
	}
	return nil
}

// LoadConfig loads configuration from JSON file
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	if err = config.Validate(); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] invalid config in file: %+v", filename)
	}

	return config, nil
}
