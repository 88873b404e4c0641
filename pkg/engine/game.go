// pkg/engine/game.go
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/opd-ai/go-snake/pkg/config"
	"github.com/opd-ai/go-snake/pkg/entity"
	"github.com/opd-ai/go-snake/pkg/event"
	"github.com/opd-ai/go-snake/pkg/grid"
	"github.com/opd-ai/go-snake/pkg/logging"
	"github.com/opd-ai/go-snake/pkg/physics"
)

// GameStatus is the state of the tick state machine
type GameStatus int

const (
	GameStatusRunning GameStatus = iota
	// GameStatusOver is terminal: once entered the simulation never advances again
	GameStatusOver
)

func (s GameStatus) String() string {
	if s == GameStatusOver {
		return "GameOver"
	}
	return "Running"
}

// ErrEmptyBody is returned when the player reports no occupied cells
var ErrEmptyBody = errors.New("player has no body")

// TextureLoader resolves an asset path to a texture handle. Failures are
// fatal to the game.
type TextureLoader interface {
	Load(path string) (entity.Texture, error)
}

// Game owns the grid and drives it with a fixed-rate tick. It is not safe
// for concurrent use: input handling and ticks must happen on one goroutine.
type Game struct {
	config   *config.GameConfig
	bounds   physics.Bounds
	grid     *grid.Grid
	renderer entity.Renderer
	textures TextureLoader
	eventBus *event.Bus
	logger   *logging.Logger
	now      func() time.Time
	ctx      context.Context

	direction   entity.Direction
	fps         int
	status      GameStatus
	lastTick    time.Time
	currentTick uint64
}

// Option configures a Game
type Option func(*Game)

// WithClock replaces time.Now as the game's time source
func WithClock(now func() time.Time) Option {
	return func(g *Game) {
		g.now = now
	}
}

// WithEventBus publishes game events on bus instead of a private bus
func WithEventBus(bus *event.Bus) Option {
	return func(g *Game) {
		g.eventBus = bus
	}
}

// WithLogger sets the logger
func WithLogger(logger *logging.Logger) Option {
	return func(g *Game) {
		g.logger = logger
	}
}

// NewGame validates cfg and creates a running game with one snake seeded at
// the center of the grid, facing down.
func NewGame(cfg *config.GameConfig, renderer entity.Renderer, textures TextureLoader, opts ...Option) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	g := &Game{
		config:    cfg,
		bounds:    cfg.Bounds(),
		renderer:  renderer,
		textures:  textures,
		now:       time.Now,
		ctx:       context.Background(),
		direction: entity.Down,
		fps:       cfg.InitialFPS,
		status:    GameStatusRunning,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.eventBus == nil {
		g.eventBus = event.NewEventBus()
	}
	if g.logger == nil {
		g.logger = logging.NewNopLogger()
	}

	g.grid = grid.New(g.bounds)
	snake, err := entity.NewSnake(g.bounds.Center(), g.direction, cfg.InitialSnakeSize, g.bounds)
	if err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	if err := g.grid.Insert(snake); err != nil {
		return nil, err
	}
	g.lastTick = g.now()

	return g, nil
}

// Start resets the tick timer and announces the game. ctx is used for
// logging for the rest of the run.
func (g *Game) Start(ctx context.Context) {
	g.ctx = ctx
	g.lastTick = g.now()

	g.logger.Info(ctx, "Game started",
		"columns", g.bounds.Columns,
		"rows", g.bounds.Rows,
		"fps", g.fps,
		"direction", g.direction.String(),
	)
	g.eventBus.Publish(&event.BaseEvent{
		EventType: event.GameStarted,
		Source:    g,
	})
}

// Run drives the game until a quit event arrives or ctx is cancelled. Each
// iteration steps the simulation, drains input and then sleeps for one poll
// interval. A fatal error stops the loop and is returned.
func (g *Game) Run(ctx context.Context, input InputSource) error {
	g.Start(ctx)
	pollInterval := time.Second / time.Duration(g.config.PollRate)

	timer := time.NewTimer(pollInterval)
	defer timer.Stop()

	for {
		if _, err := g.Step(g.now()); err != nil {
			g.logger.Error(ctx, "Game aborted", err, "tick", g.currentTick)
			return err
		}

		for _, ev := range input.PollEvents() {
			if g.HandleEvent(ev) {
				g.quit()
				return nil
			}
		}

		timer.Reset(pollInterval)
		select {
		case <-ctx.Done():
			g.quit()
			return nil
		case <-timer.C:
		}
	}
}

func (g *Game) quit() {
	g.logger.Info(g.ctx, "Game quit", "tick", g.currentTick, "status", g.status.String())
	g.eventBus.Publish(&event.BaseEvent{
		EventType: event.GameQuit,
		Source:    g,
	})
}

// Step runs one tick if at least 1000/fps milliseconds have passed since the
// previous one. It reports whether a tick ran.
func (g *Game) Step(now time.Time) (bool, error) {
	if now.Sub(g.lastTick) < g.tickInterval() {
		return false, nil
	}
	g.lastTick = now
	return true, g.Tick()
}

func (g *Game) tickInterval() time.Duration {
	return time.Duration(1000/g.fps) * time.Millisecond
}

// Tick redraws the current state and, while the game is running, advances
// the player one cell.
func (g *Game) Tick() error {
	if err := g.redraw(); err != nil {
		return err
	}
	if g.status != GameStatusRunning {
		return nil
	}
	return g.movePlayer()
}

// redraw renders either every grid member or the game-over visual
func (g *Game) redraw() error {
	g.renderer.Clear()

	if g.status == GameStatusOver {
		texture, err := g.textures.Load(g.config.GameOverTexture)
		if err != nil {
			return logging.WrapError(err, "failed to load game over texture %q", g.config.GameOverTexture)
		}
		g.renderer.RenderGameOver(texture)
	} else {
		for obj := range g.grid.All() {
			obj.Render(g.renderer)
		}
	}

	g.renderer.Present()
	return nil
}

// movePlayer takes the player out of the grid, tests the cell it is about
// to enter against every cell it occupies now (tail included), then either
// ends the game or moves it. The player goes back into the grid either way.
func (g *Game) movePlayer() error {
	found, err := g.grid.FindByKind(entity.Player)
	if err != nil {
		return logging.WrapError(err, "failed to move player")
	}

	player, ok := g.grid.Remove(found.GetID())
	if !ok {
		return fmt.Errorf("failed to move player: %w: %s", grid.ErrNotFound, found.GetID())
	}

	head, ok := firstCell(player)
	if !ok {
		return fmt.Errorf("failed to move player %s: %w", player.GetID(), ErrEmptyBody)
	}

	next := g.bounds.Wrap(head.Add(g.direction.Vector()))
	if hit := physics.CheckCollision(next, player.GetBody()); hit.Collided {
		g.endGame(player, hit)
	} else {
		player.MoveTo(g.direction)
		g.currentTick++
		g.eventBus.Publish(event.NewPlayerEvent(event.PlayerMoved, g, player.GetID().String(), next, g.currentTick))
	}

	return g.grid.Insert(player)
}

func (g *Game) endGame(player entity.Movable, hit physics.CollisionResult) {
	g.status = GameStatusOver

	g.logger.Info(g.ctx, "Game over",
		"player_id", player.GetID().String(),
		"cell", hit.Cell.String(),
		"segment", hit.Index,
		"tick", g.currentTick,
	)
	g.eventBus.Publish(event.NewPlayerEvent(event.GameOver, g, player.GetID().String(), hit.Cell, g.currentTick))
}

func firstCell(obj entity.Movable) (physics.Vector2D, bool) {
	for cell := range obj.GetBody() {
		return cell, true
	}
	return physics.Vector2D{}, false
}

// HandleEvent applies one input event and reports whether it asks to quit.
// Directional keys go through Turn and wheel events through AdjustSpeed.
func (g *Game) HandleEvent(ev InputEvent) bool {
	switch ev.Type {
	case EventQuit:
		return true
	case EventKeyDown:
		if ev.Key == KeyEscape {
			return true
		}
		if direction, ok := ev.Key.Direction(); ok {
			g.Turn(direction)
		}
	case EventMouseWheel:
		g.AdjustSpeed(ev.Delta)
	}
	return false
}

// Turn changes the facing direction if the turn is a 90 degree one.
// Reversals, repeats and unknown directions are ignored and reported as
// false.
func (g *Game) Turn(direction entity.Direction) bool {
	if !entity.IsOrthogonal(g.direction, direction) {
		g.logger.Debug(g.ctx, "Turn rejected",
			"current", g.direction.String(),
			"requested", direction.String(),
		)
		return false
	}

	previous := g.direction
	g.direction = direction
	g.eventBus.Publish(event.NewDirectionEvent(g, previous.String(), direction.String()))
	return true
}

// AdjustSpeed moves fps by delta wheel notches, clamped to the configured range
func (g *Game) AdjustSpeed(delta int) {
	fps := g.fps + delta*g.config.MouseWheelSensitivity
	fps = max(g.config.MinFPS, min(g.config.MaxFPS, fps))
	if fps == g.fps {
		return
	}

	g.fps = fps
	g.logger.Debug(g.ctx, "Speed changed", "fps", fps)
	g.eventBus.Publish(event.NewSpeedEvent(g, fps))
}

// Status returns the current state
func (g *Game) Status() GameStatus {
	return g.status
}

// IsGameOver reports whether the game has ended
func (g *Game) IsGameOver() bool {
	return g.status == GameStatusOver
}

// Direction returns the current facing direction
func (g *Game) Direction() entity.Direction {
	return g.direction
}

// FPS returns the current simulation rate
func (g *Game) FPS() int {
	return g.fps
}

// CurrentTick returns the number of moves made so far
func (g *Game) CurrentTick() uint64 {
	return g.currentTick
}

// Player returns the player currently in the grid
func (g *Game) Player() (entity.Movable, error) {
	return g.grid.FindByKind(entity.Player)
}

// EventBus returns the bus game events are published on
func (g *Game) EventBus() *event.Bus {
	return g.eventBus
}
