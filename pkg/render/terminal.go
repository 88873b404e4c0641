// pkg/render/terminal.go
package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-snake/pkg/entity"
	"github.com/opd-ai/go-snake/pkg/physics"
)

const (
	headRune = '█'
	bodyRune = '▓'
	fillRune = '█'

	gameOverText = "GAME OVER"
)

// TerminalRenderer draws the grid on a tcell screen, one terminal cell per
// grid cell. Grids larger than the terminal are downsampled to fit.
type TerminalRenderer struct {
	screen tcell.Screen
	bounds physics.Bounds
	status func() string

	headStyle   tcell.Style
	bodyStyle   tcell.Style
	borderStyle tcell.Style
	textStyle   tcell.Style
}

// NewTerminalRenderer creates a renderer for a grid of the given bounds.
// The screen must already be initialized.
func NewTerminalRenderer(screen tcell.Screen, bounds physics.Bounds) *TerminalRenderer {
	return &TerminalRenderer{
		screen:      screen,
		bounds:      bounds,
		headStyle:   tcell.StyleDefault.Foreground(tcell.ColorYellow),
		bodyStyle:   tcell.StyleDefault.Foreground(tcell.ColorGreen),
		borderStyle: tcell.StyleDefault.Foreground(tcell.ColorWhite),
		textStyle:   tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true),
	}
}

// SetStatus installs a callback whose result is printed under the field
// on every frame.
func (r *TerminalRenderer) SetStatus(status func() string) {
	r.status = status
}

// field returns the size of the drawn play area in terminal cells
func (r *TerminalRenderer) field() (int, int) {
	w, h := r.screen.Size()
	// Two columns of border, two rows of border and a status line.
	return max(0, min(r.bounds.Columns, w-2)), max(0, min(r.bounds.Rows, h-3))
}

// project maps a grid cell to a screen position inside the border
func (r *TerminalRenderer) project(p physics.Vector2D) (int, int, bool) {
	fw, fh := r.field()
	if fw == 0 || fh == 0 || !r.bounds.Contains(p) {
		return 0, 0, false
	}
	return 1 + p.X*fw/r.bounds.Columns, 1 + p.Y*fh/r.bounds.Rows, true
}

// Clear implements entity.Renderer
func (r *TerminalRenderer) Clear() {
	r.screen.Clear()
}

// RenderSnake implements entity.Renderer
func (r *TerminalRenderer) RenderSnake(snake *entity.Snake) {
	cells := snake.Cells()
	// Tail first so the head wins when downsampling merges cells.
	for i := len(cells) - 1; i >= 0; i-- {
		x, y, ok := r.project(cells[i])
		if !ok {
			continue
		}
		if i == 0 {
			r.screen.SetContent(x, y, headRune, nil, r.headStyle)
		} else {
			r.screen.SetContent(x, y, bodyRune, nil, r.bodyStyle)
		}
	}
}

// RenderGameOver implements entity.Renderer. Decoded images are scaled to
// the field and drawn with block glyphs; other textures fall back to text.
func (r *TerminalRenderer) RenderGameOver(texture entity.Texture) {
	fw, fh := r.field()
	if fw == 0 || fh == 0 {
		return
	}

	img, ok := texture.(ImageTexture)
	if !ok || img.Image == nil {
		r.drawText(1+(fw-len(gameOverText))/2, 1+fh/2, gameOverText, r.textStyle)
		return
	}

	tw, th := int(img.Width()), int(img.Height())
	for y := 0; y < fh; y++ {
		for x := 0; x < fw; x++ {
			red, green, blue, alpha := img.At(x*tw/fw, y*th/fh).RGBA()
			if alpha < 0x8000 {
				continue
			}
			color := tcell.NewRGBColor(int32(red>>8), int32(green>>8), int32(blue>>8))
			r.screen.SetContent(1+x, 1+y, fillRune, nil, tcell.StyleDefault.Foreground(color))
		}
	}
}

// Present implements entity.Renderer
func (r *TerminalRenderer) Present() {
	r.drawBorder()
	if r.status != nil {
		_, fh := r.field()
		r.drawText(0, fh+2, r.status(), tcell.StyleDefault)
	}
	r.screen.Show()
}

func (r *TerminalRenderer) drawBorder() {
	fw, fh := r.field()
	right, bottom := fw+1, fh+1

	for x := 1; x < right; x++ {
		r.screen.SetContent(x, 0, tcell.RuneHLine, nil, r.borderStyle)
		r.screen.SetContent(x, bottom, tcell.RuneHLine, nil, r.borderStyle)
	}
	for y := 1; y < bottom; y++ {
		r.screen.SetContent(0, y, tcell.RuneVLine, nil, r.borderStyle)
		r.screen.SetContent(right, y, tcell.RuneVLine, nil, r.borderStyle)
	}
	r.screen.SetContent(0, 0, tcell.RuneULCorner, nil, r.borderStyle)
	r.screen.SetContent(right, 0, tcell.RuneURCorner, nil, r.borderStyle)
	r.screen.SetContent(0, bottom, tcell.RuneLLCorner, nil, r.borderStyle)
	r.screen.SetContent(right, bottom, tcell.RuneLRCorner, nil, r.borderStyle)
}

func (r *TerminalRenderer) drawText(x, y int, text string, style tcell.Style) {
	x = max(0, x)
	for _, ch := range text {
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
}
