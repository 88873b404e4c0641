// Package engine provides unit tests for game.go
package engine

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/opd-ai/go-snake/pkg/config"
	"github.com/opd-ai/go-snake/pkg/entity"
	"github.com/opd-ai/go-snake/pkg/event"
	"github.com/opd-ai/go-snake/pkg/physics"
)

func defaultConfig() *config.GameConfig {
	return &config.GameConfig{
		Width:                 100,
		Height:                100,
		CellSize:              10,
		InitialFPS:            10,
		MinFPS:                1,
		MaxFPS:                60,
		InitialSnakeSize:      4,
		MouseWheelSensitivity: 5,
		PollRate:              1000,
		GameOverTexture:       "game-over.png",
	}
}

type recordingRenderer struct {
	clears    int
	presents  int
	snakes    [][]physics.Vector2D
	gameOvers []entity.Texture
}

func (r *recordingRenderer) Clear() { r.clears++ }
func (r *recordingRenderer) Present() { r.presents++ }

func (r *recordingRenderer) RenderSnake(s *entity.Snake) {
	r.snakes = append(r.snakes, s.Cells())
}

func (r *recordingRenderer) RenderGameOver(texture entity.Texture) {
	r.gameOvers = append(r.gameOvers, texture)
}

type fakeTexture struct{}

func (fakeTexture) Width() float32 { return 64 }
func (fakeTexture) Height() float32 { return 32 }

type fakeLoader struct {
	err   error
	paths []string
}

func (l *fakeLoader) Load(path string) (entity.Texture, error) {
	l.paths = append(l.paths, path)
	if l.err != nil {
		return nil, l.err
	}
	return fakeTexture{}, nil
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestGame(t *testing.T, cfg *config.GameConfig, opts ...Option) (*Game, *recordingRenderer, *fakeLoader) {
	t.Helper()
	renderer := &recordingRenderer{}
	loader := &fakeLoader{}
	game, err := NewGame(cfg, renderer, loader, opts...)
	if err != nil {
		t.Fatalf("NewGame failed: %v", err)
	}
	return game, renderer, loader
}

func playerCells(t *testing.T, game *Game) []physics.Vector2D {
	t.Helper()
	player, err := game.Player()
	if err != nil {
		t.Fatalf("Player failed: %v", err)
	}
	return slices.Collect(player.GetBody())
}

func TestNewGame_InitializesState(t *testing.T) {
	game, _, _ := newTestGame(t, defaultConfig())

	if game.Status() != GameStatusRunning {
		t.Errorf("expected Running, got %v", game.Status())
	}
	if game.Direction() != entity.Down {
		t.Errorf("expected Down, got %v", game.Direction())
	}
	if game.FPS() != 10 {
		t.Errorf("expected fps 10, got %d", game.FPS())
	}

	want := []physics.Vector2D{{X: 5, Y: 5}, {X: 5, Y: 4}, {X: 5, Y: 3}, {X: 5, Y: 2}}
	if got := playerCells(t, game); !slices.Equal(got, want) {
		t.Errorf("expected body %v, got %v", want, got)
	}
}

func TestNewGame_RejectsInvalidConfig(t *testing.T) {
	cfg := defaultConfig()
	cfg.MinFPS = 100

	_, err := NewGame(cfg, &recordingRenderer{}, &fakeLoader{})
	if !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestGame_Tick_MovesAndRenders(t *testing.T) {
	game, renderer, _ := newTestGame(t, defaultConfig())

	if err := game.Tick(); err != nil {
		t.Fatalf("Tick failed: %v", err)
	}

	want := []physics.Vector2D{{X: 5, Y: 6}, {X: 5, Y: 5}, {X: 5, Y: 4}, {X: 5, Y: 3}}
	if got := playerCells(t, game); !slices.Equal(got, want) {
		t.Errorf("expected body %v, got %v", want, got)
	}
	if game.CurrentTick() != 1 {
		t.Errorf("expected tick 1, got %d", game.CurrentTick())
	}

	// The frame shows the state before the move.
	if renderer.clears != 1 || renderer.presents != 1 {
		t.Errorf("expected one clear and one present, got %d and %d", renderer.clears, renderer.presents)
	}
	if len(renderer.snakes) != 1 || renderer.snakes[0][0] != (physics.Vector2D{X: 5, Y: 5}) {
		t.Errorf("unexpected rendered snakes %v", renderer.snakes)
	}
}

func TestGame_Tick_WrapsAtEdge(t *testing.T) {
	game, _, _ := newTestGame(t, defaultConfig())
	for i := 0; i < 5; i++ {
		if err := game.Tick(); err != nil {
			t.Fatalf("Tick %d failed: %v", i, err)
		}
	}

	if got := playerCells(t, game)[0]; got != (physics.Vector2D{X: 5, Y: 0}) {
		t.Errorf("expected head to wrap to (5,0), got %v", got)
	}
}

func TestGame_CollisionWithTail_EndsGame(t *testing.T) {
	game, renderer, loader := newTestGame(t, defaultConfig())

	var over []*event.PlayerEvent
	game.EventBus().Subscribe(event.GameOver, func(e event.Event) {
		over = append(over, e.(*event.PlayerEvent))
	})

	steps := []entity.Direction{entity.Down, entity.Left, entity.Up, entity.Right}
	for _, d := range steps {
		game.Turn(d)
		if err := game.Tick(); err != nil {
			t.Fatalf("Tick failed: %v", err)
		}
	}

	if !game.IsGameOver() {
		t.Fatal("expected the move into the tail cell to end the game")
	}
	if len(over) != 1 || over[0].Head != (physics.Vector2D{X: 5, Y: 5}) {
		t.Errorf("expected one GameOver event at (5,5), got %v", over)
	}

	frozen := playerCells(t, game)
	want := []physics.Vector2D{{X: 4, Y: 5}, {X: 4, Y: 6}, {X: 5, Y: 6}, {X: 5, Y: 5}}
	if !slices.Equal(frozen, want) {
		t.Errorf("expected unmoved body %v, got %v", want, frozen)
	}

	snakesBefore := len(renderer.snakes)
	for i := 0; i < 3; i++ {
		if err := game.Tick(); err != nil {
			t.Fatalf("Tick after game over failed: %v", err)
		}
	}
	if got := playerCells(t, game); !slices.Equal(got, frozen) {
		t.Errorf("body moved after game over: %v", got)
	}
	if len(renderer.snakes) != snakesBefore {
		t.Error("grid rendered after game over")
	}
	if len(renderer.gameOvers) != 3 {
		t.Errorf("expected 3 game over frames, got %d", len(renderer.gameOvers))
	}
	if len(loader.paths) == 0 || loader.paths[0] != "game-over.png" {
		t.Errorf("unexpected texture loads %v", loader.paths)
	}
	if len(over) != 1 {
		t.Errorf("GameOver published %d times", len(over))
	}
}

func TestGame_CollisionAcrossEdge_EndsGame(t *testing.T) {
	cfg := defaultConfig()
	cfg.Width, cfg.Height = 30, 30
	cfg.InitialSnakeSize = 3
	game, _, _ := newTestGame(t, cfg)

	// The tail sits below the head after wrapping, so the first move down
	// lands on it.
	want := []physics.Vector2D{{X: 1, Y: 1}, {X: 1, Y: 0}, {X: 1, Y: 2}}
	if got := playerCells(t, game); !slices.Equal(got, want) {
		t.Fatalf("expected body %v, got %v", want, got)
	}

	if err := game.Tick(); err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	if !game.IsGameOver() {
		t.Fatal("expected the wrapped move onto the tail to end the game")
	}
	if got := playerCells(t, game); !slices.Equal(got, want) {
		t.Errorf("expected unmoved body %v, got %v", want, got)
	}
	if game.CurrentTick() != 0 {
		t.Errorf("expected no completed moves, got %d", game.CurrentTick())
	}
}

func TestGame_Turn_UnknownDirectionKeepsGameRunning(t *testing.T) {
	game, _, _ := newTestGame(t, defaultConfig())

	game.Turn(entity.Direction(7))
	if err := game.Tick(); err != nil {
		t.Fatalf("Tick failed: %v", err)
	}

	if game.IsGameOver() {
		t.Error("an unknown direction ended the game")
	}
	if got := playerCells(t, game)[0]; got != (physics.Vector2D{X: 5, Y: 6}) {
		t.Errorf("expected the head to keep moving down to (5,6), got %v", got)
	}
}

func TestGame_GameOverTextureFailure_IsFatal(t *testing.T) {
	cfg := defaultConfig()
	cfg.InitialSnakeSize = 5
	game, _, loader := newTestGame(t, cfg)
	loader.err = errors.New("missing file")

	for _, d := range []entity.Direction{entity.Left, entity.Up, entity.Right} {
		game.Turn(d)
		if err := game.Tick(); err != nil {
			t.Fatalf("Tick failed: %v", err)
		}
	}
	if !game.IsGameOver() {
		t.Fatal("expected game over")
	}

	err := game.Tick()
	if err == nil || !errors.Is(err, loader.err) {
		t.Errorf("expected wrapped texture error, got %v", err)
	}
}

func TestGame_Turn_TableDriven(t *testing.T) {
	tests := []struct {
		name      string
		requested entity.Direction
		accepted  bool
	}{
		{"reverse", entity.Up, false},
		{"same", entity.Down, false},
		{"left", entity.Left, true},
		{"right", entity.Right, true},
		{"unknown", entity.Direction(7), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			game, _, _ := newTestGame(t, defaultConfig())

			var changes int
			game.EventBus().Subscribe(event.DirectionChanged, func(event.Event) { changes++ })

			if got := game.Turn(tt.requested); got != tt.accepted {
				t.Errorf("Turn(%v) = %v, want %v", tt.requested, got, tt.accepted)
			}

			want := entity.Down
			wantChanges := 0
			if tt.accepted {
				want = tt.requested
				wantChanges = 1
			}
			if game.Direction() != want {
				t.Errorf("expected direction %v, got %v", want, game.Direction())
			}
			if changes != wantChanges {
				t.Errorf("expected %d DirectionChanged events, got %d", wantChanges, changes)
			}
		})
	}
}

func TestGame_AdjustSpeed_Clamps(t *testing.T) {
	tests := []struct {
		name  string
		start int
		delta int
		want  int
	}{
		{"up one notch", 40, 1, 45},
		{"down one notch", 40, -1, 35},
		{"clamped to max", 40, 10, 60},
		{"clamped to min", 40, -10, 1},
		{"no movement", 40, 0, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			cfg.InitialFPS = tt.start
			game, _, _ := newTestGame(t, cfg)

			game.AdjustSpeed(tt.delta)
			if game.FPS() != tt.want {
				t.Errorf("expected fps %d, got %d", tt.want, game.FPS())
			}
		})
	}
}

func TestGame_HandleEvent(t *testing.T) {
	tests := []struct {
		name      string
		event     InputEvent
		quit      bool
		direction entity.Direction
		fps       int
	}{
		{"quit", Quit(), true, entity.Down, 10},
		{"escape", KeyPress(KeyEscape), true, entity.Down, 10},
		{"turn left", KeyPress(KeyLeft), false, entity.Left, 10},
		{"reverse ignored", KeyPress(KeyUp), false, entity.Down, 10},
		{"unknown key", KeyPress(KeyUnknown), false, entity.Down, 10},
		{"wheel", Wheel(2), false, entity.Down, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			game, _, _ := newTestGame(t, defaultConfig())

			if got := game.HandleEvent(tt.event); got != tt.quit {
				t.Errorf("HandleEvent quit = %v, want %v", got, tt.quit)
			}
			if game.Direction() != tt.direction {
				t.Errorf("expected direction %v, got %v", tt.direction, game.Direction())
			}
			if game.FPS() != tt.fps {
				t.Errorf("expected fps %d, got %d", tt.fps, game.FPS())
			}
		})
	}
}

func TestGame_Step_WaitsForInterval(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	game, _, _ := newTestGame(t, defaultConfig(), WithClock(clock.Now))

	// 10 fps gives a 100ms interval.
	clock.Advance(99 * time.Millisecond)
	ticked, err := game.Step(clock.Now())
	if err != nil || ticked {
		t.Fatalf("expected no tick before the interval, got %v, %v", ticked, err)
	}

	clock.Advance(time.Millisecond)
	ticked, err = game.Step(clock.Now())
	if err != nil || !ticked {
		t.Fatalf("expected a tick at the interval, got %v, %v", ticked, err)
	}

	ticked, _ = game.Step(clock.Now())
	if ticked {
		t.Error("expected the timer to restart after a tick")
	}
	if game.CurrentTick() != 1 {
		t.Errorf("expected one tick, got %d", game.CurrentTick())
	}
}

type scriptedInput struct {
	batches [][]InputEvent
	polls   int
}

func (s *scriptedInput) PollEvents() []InputEvent {
	s.polls++
	if len(s.batches) == 0 {
		return nil
	}
	batch := s.batches[0]
	s.batches = s.batches[1:]
	return batch
}

func TestGame_Run_StopsOnQuit(t *testing.T) {
	bus := event.NewEventBus()
	var started, quit int
	bus.Subscribe(event.GameStarted, func(event.Event) { started++ })
	bus.Subscribe(event.GameQuit, func(event.Event) { quit++ })

	game, _, _ := newTestGame(t, defaultConfig(), WithEventBus(bus))
	input := &scriptedInput{batches: [][]InputEvent{
		{KeyPress(KeyLeft)},
		{Wheel(1), Quit(), KeyPress(KeyDown)},
	}}

	if err := game.Run(context.Background(), input); err != nil {
		t.Fatalf("Run returned %v", err)
	}
	if input.polls != 2 {
		t.Errorf("expected 2 polls, got %d", input.polls)
	}
	if started != 1 || quit != 1 {
		t.Errorf("expected one start and one quit, got %d and %d", started, quit)
	}
	if game.Direction() != entity.Left {
		t.Errorf("events after quit were applied: direction %v", game.Direction())
	}
}

func TestGame_Run_StopsOnCancel(t *testing.T) {
	game, _, _ := newTestGame(t, defaultConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan error, 1)
	go func() {
		done <- game.Run(ctx, &scriptedInput{})
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
