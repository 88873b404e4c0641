// pkg/render/renderer.go
package render

import (
	"context"

	"github.com/opd-ai/go-snake/pkg/entity"
	"github.com/opd-ai/go-snake/pkg/logging"
)

// NullRenderer is an entity.Renderer that draws nothing and logs each call
// at debug level. It backs headless runs.
type NullRenderer struct {
	logger *logging.Logger
	frames int
}

// NewNullRenderer creates a new NullRenderer. A nil logger discards output.
func NewNullRenderer(logger *logging.Logger) *NullRenderer {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &NullRenderer{
		logger: logger,
	}
}

// Clear implements entity.Renderer.
func (d *NullRenderer) Clear() {
	d.logger.Debug(context.Background(), "Clear called", "frame", d.frames)
}

// Present implements entity.Renderer.
func (d *NullRenderer) Present() {
	d.logger.Debug(context.Background(), "Present called", "frame", d.frames)
	d.frames++
}

// RenderSnake implements entity.Renderer.
func (d *NullRenderer) RenderSnake(snake *entity.Snake) {
	ctx := context.Background()
	if snake == nil {
		d.logger.Debug(ctx, "RenderSnake called with nil snake")
		return
	}
	d.logger.Debug(ctx, "RenderSnake called",
		"snake_id", snake.GetID().String(),
		"length", snake.Len(),
		"head", snake.Head().String(),
	)
}

// RenderGameOver implements entity.Renderer.
func (d *NullRenderer) RenderGameOver(texture entity.Texture) {
	ctx := context.Background()
	if texture == nil {
		d.logger.Debug(ctx, "RenderGameOver called with nil texture")
		return
	}
	d.logger.Debug(ctx, "RenderGameOver called",
		"width", texture.Width(),
		"height", texture.Height(),
	)
}

// Frames returns the number of presented frames
func (d *NullRenderer) Frames() int {
	return d.frames
}
