// pkg/render/engo/renderer.go
package engo

import (
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-snake/pkg/entity"
	"github.com/opd-ai/go-snake/pkg/physics"
)

var (
	headColor = color.RGBA{255, 220, 0, 255}
	bodyColor = color.RGBA{0, 200, 0, 255}
)

// spriteSystem is the part of common.RenderSystem the renderer uses
type spriteSystem interface {
	Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent)
	Remove(basic ecs.BasicEntity)
}

type sprite struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent
}

// EngoRenderer implements entity.Renderer on top of an engo RenderSystem.
// Each occupied cell is a rectangle sprite; sprites are pooled across
// frames and hidden when unused.
type EngoRenderer struct {
	system   spriteSystem
	bounds   physics.Bounds
	cellSize float32

	cells []*sprite
	used  int

	gameOver *sprite
}

// NewEngoRenderer creates a renderer drawing cells of cellSize pixels
func NewEngoRenderer(system spriteSystem, bounds physics.Bounds, cellSize float32) *EngoRenderer {
	return &EngoRenderer{
		system:   system,
		bounds:   bounds,
		cellSize: cellSize,
	}
}

// Clear implements entity.Renderer
func (r *EngoRenderer) Clear() {
	r.used = 0
	if r.gameOver != nil {
		r.gameOver.Hidden = true
	}
}

// RenderSnake implements entity.Renderer
func (r *EngoRenderer) RenderSnake(snake *entity.Snake) {
	for i, cell := range snake.Cells() {
		s := r.nextCell()
		s.Position = r.cellToScreen(cell)
		if i == 0 {
			s.Color = headColor
		} else {
			s.Color = bodyColor
		}
	}
}

// RenderGameOver implements entity.Renderer. The texture is stretched over
// the whole play area.
func (r *EngoRenderer) RenderGameOver(texture entity.Texture) {
	drawable, ok := texture.(common.Drawable)
	if !ok {
		return
	}

	if r.gameOver == nil {
		r.gameOver = &sprite{BasicEntity: ecs.NewBasic()}
		r.gameOver.SetZIndex(1)
		r.system.Add(&r.gameOver.BasicEntity, &r.gameOver.RenderComponent, &r.gameOver.SpaceComponent)
	}

	width := float32(r.bounds.Columns) * r.cellSize
	height := float32(r.bounds.Rows) * r.cellSize
	r.gameOver.Drawable = drawable
	r.gameOver.Scale = engo.Point{X: width / drawable.Width(), Y: height / drawable.Height()}
	r.gameOver.Width = width
	r.gameOver.Height = height
	r.gameOver.Hidden = false
}

// Present implements entity.Renderer. Pool entries not drawn this frame
// are hidden.
func (r *EngoRenderer) Present() {
	for _, s := range r.cells[:r.used] {
		s.Hidden = false
	}
	for _, s := range r.cells[r.used:] {
		s.Hidden = true
	}
}

func (r *EngoRenderer) nextCell() *sprite {
	if r.used == len(r.cells) {
		s := &sprite{BasicEntity: ecs.NewBasic()}
		s.Drawable = common.Rectangle{}
		s.Width = r.cellSize
		s.Height = r.cellSize
		s.Hidden = true
		r.system.Add(&s.BasicEntity, &s.RenderComponent, &s.SpaceComponent)
		r.cells = append(r.cells, s)
	}
	s := r.cells[r.used]
	r.used++
	return s
}

func (r *EngoRenderer) cellToScreen(p physics.Vector2D) engo.Point {
	return engo.Point{
		X: float32(p.X) * r.cellSize,
		Y: float32(p.Y) * r.cellSize,
	}
}

// Dispose removes every pooled sprite from the render system
func (r *EngoRenderer) Dispose() {
	for _, s := range r.cells {
		r.system.Remove(s.BasicEntity)
	}
	r.cells, r.used = nil, 0
	if r.gameOver != nil {
		r.system.Remove(r.gameOver.BasicEntity)
		r.gameOver = nil
	}
}
