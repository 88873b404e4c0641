// cmd/snake/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-snake/pkg/config"
	"github.com/opd-ai/go-snake/pkg/engine"
	"github.com/opd-ai/go-snake/pkg/event"
	"github.com/opd-ai/go-snake/pkg/logging"
	"github.com/opd-ai/go-snake/pkg/render"
	engorender "github.com/opd-ai/go-snake/pkg/render/engo"
	"github.com/opd-ai/go-snake/pkg/resource"
)

func main() {
	configPath := flag.String("config", "config.json", "Path to configuration file")
	createDefault := flag.Bool("default", false, "Create default configuration file")
	renderer := flag.String("renderer", "terminal", "Renderer type: 'terminal', 'engo' or 'null'")
	logPath := flag.String("log", "", "Log file (the terminal renderer discards logs when empty)")
	flag.Parse()

	logger, closeLog, err := newLogger(*renderer, *logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = logging.WithRunID(ctx, logging.GenerateRunID())

	// Create default configuration file if requested
	if *createDefault {
		if err := config.SaveConfig(config.DefaultConfig(), *configPath); err != nil {
			logger.Error(ctx, "Failed to create default configuration", err,
				"config_path", *configPath,
			)
			os.Exit(1)
		}
		logger.Info(ctx, "Created default configuration file",
			"config_path", *configPath,
		)
		return
	}

	gameConfig, err := loadConfig(ctx, logger, *configPath)
	if err != nil {
		logger.Error(ctx, "Failed to load configuration", err,
			"config_path", *configPath,
		)
		os.Exit(1)
	}

	eventBus := event.NewEventBus()
	subscribeEvents(ctx, logger, eventBus)
	opts := []engine.Option{engine.WithEventBus(eventBus), engine.WithLogger(logger)}

	logger.Info(ctx, "Starting game",
		"renderer", *renderer,
		"columns", gameConfig.Columns(),
		"rows", gameConfig.Rows(),
	)

	switch *renderer {
	case "engo":
		err = engorender.Run(ctx, gameConfig, logger, opts...)
	case "null":
		err = runHeadless(ctx, gameConfig, logger, opts)
	default:
		err = runTerminal(ctx, gameConfig, logger, opts)
	}

	if err != nil {
		logger.Error(ctx, "Game terminated", err)
		stop()
		closeLog()
		os.Exit(1)
	}
}

// newLogger picks the log destination. The terminal renderer owns stdout.
func newLogger(renderer, path string) (*logging.Logger, func(), error) {
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		return logging.NewLoggerWithWriter(f), func() { f.Close() }, nil
	}
	if renderer == "terminal" {
		return logging.NewLoggerWithWriter(io.Discard), func() {}, nil
	}
	return logging.NewLogger(), func() {}, nil
}

// loadConfig reads path if it exists, then applies environment overrides
// and validates the result.
func loadConfig(ctx context.Context, logger *logging.Logger, path string) (*config.GameConfig, error) {
	var gameConfig *config.GameConfig

	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Info(ctx, "Configuration file not found, using default configuration",
			"config_path", path,
		)
		gameConfig = config.DefaultConfig()
	} else {
		gameConfig, err = config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
	}

	// Apply environment variable overrides
	if err := config.ApplyEnv(gameConfig); err != nil {
		return nil, err
	}
	if err := gameConfig.Validate(); err != nil {
		return nil, err
	}
	return gameConfig, nil
}

func subscribeEvents(ctx context.Context, logger *logging.Logger, bus *event.Bus) {
	bus.Subscribe(event.DirectionChanged, func(e event.Event) {
		if ev, ok := e.(*event.DirectionEvent); ok {
			logger.Debug(ctx, "Direction changed", "from", ev.From, "to", ev.To)
		}
	})
	bus.Subscribe(event.SpeedChanged, func(e event.Event) {
		if ev, ok := e.(*event.SpeedEvent); ok {
			logger.Info(ctx, "Speed changed", "fps", ev.FPS)
		}
	})
	bus.Subscribe(event.GameOver, func(e event.Event) {
		if ev, ok := e.(*event.PlayerEvent); ok {
			logger.Info(ctx, "Player collided", "player_id", ev.PlayerID, "cell", ev.Head.String(), "tick", ev.Tick)
		}
	})
}

func runTerminal(ctx context.Context, cfg *config.GameConfig, logger *logging.Logger, opts []engine.Option) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	input := render.NewTerminalInput(screen)
	defer input.Close()

	renderer := render.NewTerminalRenderer(screen, cfg.Bounds())
	textures := resource.NewManager(render.DecodeImageFile, logger)

	game, err := engine.NewGame(cfg, renderer, textures, opts...)
	if err != nil {
		return err
	}
	renderer.SetStatus(func() string {
		return fmt.Sprintf("%s  fps %d  moves %d  arrows turn, wheel speed, esc quits",
			game.Status(), game.FPS(), game.CurrentTick())
	})

	return game.Run(ctx, input)
}

type noInput struct{}

func (noInput) PollEvents() []engine.InputEvent { return nil }

func runHeadless(ctx context.Context, cfg *config.GameConfig, logger *logging.Logger, opts []engine.Option) error {
	textures := resource.NewManager(render.DecodeImageFile, logger)
	game, err := engine.NewGame(cfg, render.NewNullRenderer(logger), textures, opts...)
	if err != nil {
		return err
	}
	return game.Run(ctx, noInput{})
}
