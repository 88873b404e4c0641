// pkg/render/engo/input.go
package engo

import (
	"time"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-snake/pkg/engine"
)

// Button names registered with engo.Input
const (
	ButtonUp     = "up"
	ButtonDown   = "down"
	ButtonLeft   = "left"
	ButtonRight  = "right"
	ButtonEscape = "escape"
)

var buttonKeys = []struct {
	button string
	key    engine.Key
}{
	{ButtonUp, engine.KeyUp},
	{ButtonDown, engine.KeyDown},
	{ButtonLeft, engine.KeyLeft},
	{ButtonRight, engine.KeyRight},
	{ButtonEscape, engine.KeyEscape},
}

// InputState is the slice of engo.Input the input system reads
type InputState interface {
	JustPressed(button string) bool
	ScrollY() float32
}

type engoInput struct{}

func (engoInput) JustPressed(button string) bool {
	return engo.Input.Button(button).JustPressed()
}

func (engoInput) ScrollY() float32 {
	return engo.Input.Mouse.ScrollY
}

// InputSystem steps the engine once per frame and then feeds it the
// frame's engo input, in the same order as engine.Game.Run.
// It stops the window on quit or on a fatal engine error.
type InputSystem struct {
	game  *engine.Game
	input InputState
	now   func() time.Time
	exit  func()

	err     error
	stopped bool
}

// NewInputSystem creates an input system reading engo.Input
func NewInputSystem(game *engine.Game) *InputSystem {
	return &InputSystem{
		game:  game,
		input: engoInput{},
		now:   time.Now,
		exit:  engo.Exit,
	}
}

// PollEvents implements engine.InputSource
func (is *InputSystem) PollEvents() []engine.InputEvent {
	var events []engine.InputEvent
	for _, bk := range buttonKeys {
		if is.input.JustPressed(bk.button) {
			events = append(events, engine.KeyPress(bk.key))
		}
	}

	switch scroll := is.input.ScrollY(); {
	case scroll > 0:
		events = append(events, engine.Wheel(1))
	case scroll < 0:
		events = append(events, engine.Wheel(-1))
	}
	return events
}

// Update satisfies the ecs.System interface
func (is *InputSystem) Update(dt float32) {
	if is.stopped {
		return
	}

	if _, err := is.game.Step(is.now()); err != nil {
		is.stop(err)
		return
	}

	for _, ev := range is.PollEvents() {
		if is.game.HandleEvent(ev) {
			is.stop(nil)
			return
		}
	}
}

// Remove satisfies the ecs.System interface
func (is *InputSystem) Remove(basic ecs.BasicEntity) {}

func (is *InputSystem) stop(err error) {
	is.stopped = true
	is.err = err
	is.exit()
}

// Err returns the fatal error that stopped the game, if any
func (is *InputSystem) Err() error {
	return is.err
}

// SetupInputBindings registers the buttons the input system reads
func SetupInputBindings() {
	engo.Input.RegisterButton(ButtonUp, engo.KeyW, engo.KeyArrowUp)
	engo.Input.RegisterButton(ButtonDown, engo.KeyS, engo.KeyArrowDown)
	engo.Input.RegisterButton(ButtonLeft, engo.KeyA, engo.KeyArrowLeft)
	engo.Input.RegisterButton(ButtonRight, engo.KeyD, engo.KeyArrowRight)
	engo.Input.RegisterButton(ButtonEscape, engo.KeyEscape)
}
