package config

import (
	"fmt"
	"os"
	"strconv"
)

// envPrefix namespaces every environment override
const envPrefix = "SNAKE_"

// ApplyEnv overrides config fields from SNAKE_* environment variables.
// Unset variables leave the field alone; malformed numbers are errors.
func ApplyEnv(config *GameConfig) error {
	ints := []struct {
		name  string
		field *int
	}{
		{"WIDTH", &config.Width},
		{"HEIGHT", &config.Height},
		{"CELL_SIZE", &config.CellSize},
		{"INITIAL_FPS", &config.InitialFPS},
		{"MIN_FPS", &config.MinFPS},
		{"MAX_FPS", &config.MaxFPS},
		{"INITIAL_SNAKE_SIZE", &config.InitialSnakeSize},
		{"MOUSE_WHEEL_SENSITIVITY", &config.MouseWheelSensitivity},
		{"POLL_RATE", &config.PollRate},
	}

	for _, v := range ints {
		key := envPrefix + v.name
		raw, ok := os.LookupEnv(key)
		if !ok || raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", key, raw, err)
		}
		*v.field = n
	}

	if path := os.Getenv(envPrefix + "GAME_OVER_TEXTURE"); path != "" {
		config.GameOverTexture = path
	}

	return nil
}

// LoadConfigFromEnv returns the defaults with environment overrides applied
// and validated.
func LoadConfigFromEnv() (*GameConfig, error) {
	config := DefaultConfig()
	if err := ApplyEnv(config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}
