package engine

import (
	"testing"

	"github.com/opd-ai/go-snake/pkg/entity"
)

func TestKey_Direction(t *testing.T) {
	tests := []struct {
		key  Key
		want entity.Direction
		ok   bool
	}{
		{KeyUp, entity.Up, true},
		{KeyDown, entity.Down, true},
		{KeyLeft, entity.Left, true},
		{KeyRight, entity.Right, true},
		{KeyEscape, 0, false},
		{KeyUnknown, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			got, ok := tt.key.Direction()
			if ok != tt.ok {
				t.Fatalf("Direction() ok = %v, want %v", ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("Direction() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInputEventConstructors(t *testing.T) {
	if ev := Quit(); ev.Type != EventQuit {
		t.Errorf("Quit() type = %v", ev.Type)
	}
	if ev := KeyPress(KeyLeft); ev.Type != EventKeyDown || ev.Key != KeyLeft {
		t.Errorf("KeyPress() = %+v", ev)
	}
	if ev := Wheel(-3); ev.Type != EventMouseWheel || ev.Delta != -3 {
		t.Errorf("Wheel() = %+v", ev)
	}
}
