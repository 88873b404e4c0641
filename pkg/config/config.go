// pkg/config/config.go
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/opd-ai/go-snake/pkg/physics"
)

// ErrInvalidConfig is returned by Validate for inconsistent settings
var ErrInvalidConfig = errors.New("invalid configuration")

// GameConfig contains the settings fixed at start-up. It is built once and
// passed to the engine; nothing mutates it afterwards.
type GameConfig struct {
	// Width and Height are the play area in pixels
	Width  int `json:"width"`
	Height int `json:"height"`
	// CellSize is the edge of one grid cell in pixels
	CellSize int `json:"cellSize"`

	InitialFPS int `json:"initialFps"`
	MinFPS     int `json:"minFps"`
	MaxFPS     int `json:"maxFps"`

	InitialSnakeSize      int `json:"initialSnakeSize"`
	MouseWheelSensitivity int `json:"mouseWheelSensitivity"`

	// PollRate is how many times per second input is polled
	PollRate int `json:"pollRate"`

	GameOverTexture string `json:"gameOverTexture"`
}

// Columns returns the grid width in cells
func (c *GameConfig) Columns() int {
	return c.Width / c.CellSize
}

// Rows returns the grid height in cells
func (c *GameConfig) Rows() int {
	return c.Height / c.CellSize
}

// Bounds returns the grid dimensions
func (c *GameConfig) Bounds() physics.Bounds {
	return physics.NewBounds(c.Columns(), c.Rows())
}

// Validate checks the configuration for values the engine cannot run with
func (c *GameConfig) Validate() error {
	switch {
	case c.CellSize <= 0:
		return fmt.Errorf("%w: cellSize must be positive, got %d", ErrInvalidConfig, c.CellSize)
	case c.Columns() < 1 || c.Rows() < 1:
		return fmt.Errorf("%w: %dx%d pixels holds no %d pixel cells", ErrInvalidConfig, c.Width, c.Height, c.CellSize)
	case c.MinFPS < 1:
		return fmt.Errorf("%w: minFps must be at least 1, got %d", ErrInvalidConfig, c.MinFPS)
	case c.MinFPS > c.MaxFPS:
		return fmt.Errorf("%w: minFps %d exceeds maxFps %d", ErrInvalidConfig, c.MinFPS, c.MaxFPS)
	case c.InitialFPS < c.MinFPS || c.InitialFPS > c.MaxFPS:
		return fmt.Errorf("%w: initialFps %d outside [%d, %d]", ErrInvalidConfig, c.InitialFPS, c.MinFPS, c.MaxFPS)
	case c.InitialSnakeSize < 1:
		return fmt.Errorf("%w: initialSnakeSize must be at least 1, got %d", ErrInvalidConfig, c.InitialSnakeSize)
	case c.PollRate <= 0:
		return fmt.Errorf("%w: pollRate must be positive, got %d", ErrInvalidConfig, c.PollRate)
	case c.GameOverTexture == "":
		return fmt.Errorf("%w: gameOverTexture is empty", ErrInvalidConfig)
	}
	return nil
}

// LoadConfig loads a configuration from a file. Keys missing from the file
// keep their default values.
func LoadConfig(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves a configuration to a file
func SaveConfig(config *GameConfig, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns a default game configuration
func DefaultConfig() *GameConfig {
	return &GameConfig{
		Width:                 800,
		Height:                800,
		CellSize:              10,
		InitialFPS:            60,
		MinFPS:                1,
		MaxFPS:                60,
		InitialSnakeSize:      40,
		MouseWheelSensitivity: 5,
		PollRate:              60,
		GameOverTexture:       "res/game-over.png",
	}
}
