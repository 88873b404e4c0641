// pkg/render/terminal_input.go
package render

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-snake/pkg/engine"
)

const inputBuffer = 100

// TerminalInput reads tcell events on a background goroutine and hands them
// to the engine through PollEvents, which never blocks.
type TerminalInput struct {
	screen tcell.Screen
	events chan engine.InputEvent
	quit   chan struct{}
	done   chan struct{}
	once   sync.Once
}

// NewTerminalInput starts reading events from screen
func NewTerminalInput(screen tcell.Screen) *TerminalInput {
	in := &TerminalInput{
		screen: screen,
		events: make(chan engine.InputEvent, inputBuffer),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	go in.readLoop()
	return in
}

func (in *TerminalInput) readLoop() {
	defer close(in.done)
	for {
		ev := in.screen.PollEvent()
		if ev == nil {
			// The screen was finalized.
			return
		}
		if _, ok := ev.(*tcell.EventResize); ok {
			in.screen.Sync()
			continue
		}

		translated, ok := TranslateEvent(ev)
		if !ok {
			continue
		}
		select {
		case in.events <- translated:
		case <-in.quit:
			return
		}
	}
}

// PollEvents implements engine.InputSource
func (in *TerminalInput) PollEvents() []engine.InputEvent {
	var out []engine.InputEvent
	for {
		select {
		case ev := <-in.events:
			out = append(out, ev)
		default:
			return out
		}
	}
}

// Close stops the reader. The caller still owns the screen and must call
// Fini on it, which unblocks the pending PollEvent.
func (in *TerminalInput) Close() {
	in.once.Do(func() {
		close(in.quit)
	})
}

// Done is closed once the reader goroutine has exited
func (in *TerminalInput) Done() <-chan struct{} {
	return in.done
}

// TranslateEvent maps a tcell event onto an engine input event
func TranslateEvent(ev tcell.Event) (engine.InputEvent, bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyUp:
			return engine.KeyPress(engine.KeyUp), true
		case tcell.KeyDown:
			return engine.KeyPress(engine.KeyDown), true
		case tcell.KeyLeft:
			return engine.KeyPress(engine.KeyLeft), true
		case tcell.KeyRight:
			return engine.KeyPress(engine.KeyRight), true
		case tcell.KeyEscape:
			return engine.KeyPress(engine.KeyEscape), true
		case tcell.KeyCtrlC:
			return engine.Quit(), true
		}
	case *tcell.EventMouse:
		buttons := ev.Buttons()
		switch {
		case buttons&tcell.WheelUp != 0:
			return engine.Wheel(1), true
		case buttons&tcell.WheelDown != 0:
			return engine.Wheel(-1), true
		}
	}
	return engine.InputEvent{}, false
}
