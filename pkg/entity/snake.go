// pkg/entity/snake.go
package entity

import (
	"errors"
	"fmt"
	"iter"
	"slices"

	"github.com/opd-ai/go-snake/pkg/physics"
)

// ErrInvalidSize is returned when a snake would have no segments or the grid
// it lives on has no cells.
var ErrInvalidSize = errors.New("invalid snake size")

// Snake is the player-controlled movable: an ordered run of cells, head first.
// Its length is fixed at creation.
type Snake struct {
	id     ID
	body   []physics.Vector2D
	bounds physics.Bounds
}

// NewSnake creates a snake whose head sits at origin and whose remaining
// segments trail behind it, against direction. Segments that fall off the
// grid are wrapped back onto it.
func NewSnake(origin physics.Vector2D, direction Direction, size int, bounds physics.Bounds) (*Snake, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	if bounds.Columns < 1 || bounds.Rows < 1 {
		return nil, fmt.Errorf("%w: grid %dx%d", ErrInvalidSize, bounds.Columns, bounds.Rows)
	}
	if !direction.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDirection, direction)
	}

	back := direction.Vector().Negate()
	body := make([]physics.Vector2D, size)
	for i := range body {
		body[i] = bounds.Wrap(origin.Add(back.Scale(i)))
	}

	return &Snake{
		id:     GenerateID(),
		body:   body,
		bounds: bounds,
	}, nil
}

// GetID returns the snake's unique identifier
func (s *Snake) GetID() ID {
	return s.id
}

// GetKind always reports Player
func (s *Snake) GetKind() Kind {
	return Player
}

// GetBody yields the occupied cells head first. The sequence is a snapshot
// of the body at call time.
func (s *Snake) GetBody() iter.Seq[physics.Vector2D] {
	return slices.Values(s.body)
}

// Head returns the first segment
func (s *Snake) Head() physics.Vector2D {
	return s.body[0]
}

// Len returns the number of segments
func (s *Snake) Len() int {
	return len(s.body)
}

// Cells returns a copy of the body, head first
func (s *Snake) Cells() []physics.Vector2D {
	return slices.Clone(s.body)
}

// MoveTo advances the snake one cell. The new head is the old head plus the
// direction vector, wrapped onto the grid; every other segment takes the
// previous value of the segment ahead of it and the old tail is dropped.
// The whole body is replaced in one assignment.
func (s *Snake) MoveTo(direction Direction) {
	next := make([]physics.Vector2D, len(s.body))
	next[0] = s.bounds.Wrap(s.body[0].Add(direction.Vector()))
	copy(next[1:], s.body[:len(s.body)-1])
	s.body = next
}

// Render hands the snake to the renderer
func (s *Snake) Render(r Renderer) {
	r.RenderSnake(s)
}

func (s *Snake) String() string {
	return fmt.Sprintf("Snake{id: %s, len: %d, head: %v}", s.id, len(s.body), s.body[0])
}
