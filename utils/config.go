package utils

import (
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"
)

const (
	ModeFree = "free"
	ModeDuel = "duel"
)

// ErrInvalidConfig marks a configuration that cannot start a game
var ErrInvalidConfig = errors.New("invalid configuration")

// Opening is a scripted pattern stamp made by whichever player is on turn
type Opening struct {
	Pattern string `json:"pattern"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
}

// PatternConfig declares an extra ASCII pattern ('O' alive, anything else dead)
type PatternConfig struct {
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	ASCII  string `json:"ascii"`
}

// Config holds the configuration for the game
type Config struct {
	Width               int             `json:"width"`
	Height              int             `json:"height"`
	Wrap                bool            `json:"wrap"`
	StepDelay           time.Duration   `json:"step_delay"`
	Mode                string          `json:"mode"`
	SeedsPerPlayer      int             `json:"seeds_per_player"`
	AutoStart           bool            `json:"auto_start"`
	AutoRestart         bool            `json:"auto_restart"`
	StagnationThreshold int             `json:"stagnation_threshold"`
	UseParallel         bool            `json:"use_parallel"`
	UseMemoryPool       bool            `json:"use_memory_pool"`
	MaxGenerations      int             `json:"max_generations"`
	RandomDensity       float64         `json:"random_density"`
	RandomSeed          int64           `json:"random_seed"`
	Openings            []Opening       `json:"openings"`
	Patterns            []PatternConfig `json:"patterns"`
	LogLevel            string          `json:"log_level"`
	Render              bool            `json:"render"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Width:               50,
		Height:              30,
		Wrap:                false,
		StepDelay:           100 * time.Millisecond,
		Mode:                ModeDuel,
		SeedsPerPlayer:      20,
		AutoStart:           true,
		AutoRestart:         true,
		StagnationThreshold: 5,
		UseParallel:         true,
		UseMemoryPool:       true,
		MaxGenerations:      1000,
		RandomDensity:       0.15,
		RandomSeed:          1,
		Openings: []Opening{
			{Pattern: "R-pentomino", X: 10, Y: 20},
			{Pattern: "R-pentomino", X: 37, Y: 20},
			{Pattern: "Glider", X: 12, Y: 10},
			{Pattern: "Glider", X: 35, Y: 10},
			{Pattern: "Acorn", X: 20, Y: 26},
			{Pattern: "Acorn", X: 24, Y: 6},
			{Pattern: "LWSS", X: 4, Y: 4},
			{Pattern: "LWSS", X: 40, Y: 27},
		},
		LogLevel: "info",
		Render:   true,
	}
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

// Validate rejects settings that indicate a caller defect
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return errors.Wrapf(ErrInvalidConfig, "grid must be positive, got %dx%d", c.Width, c.Height)
	case c.Mode != ModeFree && c.Mode != ModeDuel:
		return errors.Wrapf(ErrInvalidConfig, "unknown mode %q", c.Mode)
	case c.Mode == ModeDuel && c.SeedsPerPlayer <= 0:
		return errors.Wrapf(ErrInvalidConfig, "seeds per player must be positive, got %d", c.SeedsPerPlayer)
	case c.RandomDensity < 0 || c.RandomDensity > 1:
		return errors.Wrapf(ErrInvalidConfig, "random density %v outside [0,1]", c.RandomDensity)
	case c.StepDelay < 0:
		return errors.Wrapf(ErrInvalidConfig, "negative step delay %v", c.StepDelay)
	}
	return nil
}
