// pkg/render/engo/scene.go
package engo

import (
	"context"
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-snake/pkg/config"
	"github.com/opd-ai/go-snake/pkg/engine"
	"github.com/opd-ai/go-snake/pkg/logging"
	"github.com/opd-ai/go-snake/pkg/resource"
)

// GameScene represents the main game scene in Engo
type GameScene struct {
	ctx    context.Context
	config *config.GameConfig
	logger *logging.Logger
	opts   []engine.Option

	renderer *EngoRenderer
	input    *InputSystem
	game     *engine.Game
	err      error
}

// NewGameScene creates a scene that runs a game built from cfg. opts are
// passed through to engine.NewGame.
func NewGameScene(ctx context.Context, cfg *config.GameConfig, logger *logging.Logger, opts ...engine.Option) *GameScene {
	return &GameScene{
		ctx:    ctx,
		config: cfg,
		logger: logger,
		opts:   opts,
	}
}

// Type returns the scene type (required by Engo)
func (scene *GameScene) Type() string {
	return "GameScene"
}

// Preload is called before the scene starts (required by Engo). The
// game-over texture is loaded lazily on the render thread.
func (scene *GameScene) Preload() {}

// Setup is called when the scene starts (required by Engo)
func (scene *GameScene) Setup(u engo.Updater) {
	world, _ := u.(*ecs.World)
	common.SetBackground(color.Black)
	SetupInputBindings()

	renderSystem := &common.RenderSystem{}
	world.AddSystem(renderSystem)

	scene.renderer = NewEngoRenderer(renderSystem, scene.config.Bounds(), float32(scene.config.CellSize))
	textures := resource.NewManager(DecodeTexture, scene.logger)

	opts := append([]engine.Option{engine.WithLogger(scene.logger)}, scene.opts...)
	game, err := engine.NewGame(scene.config, scene.renderer, textures, opts...)
	if err != nil {
		scene.err = err
		engo.Exit()
		return
	}
	scene.game = game
	game.Start(scene.ctx)

	scene.input = NewInputSystem(game)
	world.AddSystem(scene.input)
}

// Exit is called when the scene is exiting (required by Engo)
func (scene *GameScene) Exit() {
	if scene.renderer != nil {
		scene.renderer.Dispose()
	}
}

// Err returns the error that ended the scene, if any
func (scene *GameScene) Err() error {
	if scene.err != nil {
		return scene.err
	}
	if scene.input != nil {
		return scene.input.Err()
	}
	return nil
}

// Run opens a window sized from cfg and plays until it is closed, the
// player quits or ctx is cancelled. It blocks and must be called from the
// main goroutine.
func Run(ctx context.Context, cfg *config.GameConfig, logger *logging.Logger, opts ...engine.Option) error {
	scene := NewGameScene(ctx, cfg, logger, opts...)

	stop := context.AfterFunc(ctx, engo.Exit)
	defer stop()

	engo.Run(engo.RunOptions{
		Title:        "Snake",
		Width:        cfg.Width,
		Height:       cfg.Height,
		NotResizable: true,
	}, scene)

	return scene.Err()
}
