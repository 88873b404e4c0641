package engine

import "github.com/opd-ai/go-snake/pkg/entity"

// EventType distinguishes the input events the engine consumes
type EventType int

const (
	EventQuit EventType = iota
	EventKeyDown
	EventMouseWheel
)

// Key is a key the engine reacts to. Frontends map their own key codes onto
// these and report everything else as KeyUnknown.
type Key int

const (
	KeyUnknown Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEscape
)

// Direction returns the direction a directional key requests
func (k Key) Direction() (entity.Direction, bool) {
	switch k {
	case KeyUp:
		return entity.Up, true
	case KeyDown:
		return entity.Down, true
	case KeyLeft:
		return entity.Left, true
	case KeyRight:
		return entity.Right, true
	default:
		return 0, false
	}
}

func (k Key) String() string {
	switch k {
	case KeyUp:
		return "Up"
	case KeyDown:
		return "Down"
	case KeyLeft:
		return "Left"
	case KeyRight:
		return "Right"
	case KeyEscape:
		return "Escape"
	default:
		return "Unknown"
	}
}

// InputEvent is a single input event. Key is set for EventKeyDown and Delta
// (wheel notches, positive away from the user) for EventMouseWheel.
type InputEvent struct {
	Type  EventType
	Key   Key
	Delta int
}

// Quit returns a quit event
func Quit() InputEvent {
	return InputEvent{Type: EventQuit}
}

// KeyPress returns a key-down event
func KeyPress(k Key) InputEvent {
	return InputEvent{Type: EventKeyDown, Key: k}
}

// Wheel returns a mouse wheel event
func Wheel(delta int) InputEvent {
	return InputEvent{Type: EventMouseWheel, Delta: delta}
}

// InputSource supplies the input that arrived since the last call. It must
// not block.
type InputSource interface {
	PollEvents() []InputEvent
}
