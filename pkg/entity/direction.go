package entity

import (
	"errors"
	"fmt"

	"github.com/opd-ai/go-snake/pkg/physics"
)

// ErrInvalidDirection is returned when a vector is not one of the four unit
// vectors a Direction maps to.
var ErrInvalidDirection = errors.New("invalid direction vector")

// Direction is one of the four grid orientations
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions lists every direction in declaration order
var Directions = [...]Direction{Up, Down, Left, Right}

// FromVector converts a unit vector back to its Direction
func FromVector(v physics.Vector2D) (Direction, error) {
	switch v {
	case physics.Vector2D{X: 0, Y: -1}:
		return Up, nil
	case physics.Vector2D{X: 0, Y: 1}:
		return Down, nil
	case physics.Vector2D{X: -1, Y: 0}:
		return Left, nil
	case physics.Vector2D{X: 1, Y: 0}:
		return Right, nil
	default:
		return 0, fmt.Errorf("%w: %v", ErrInvalidDirection, v)
	}
}

// Vector returns the unit vector for the direction. Screen coordinates grow
// downwards, so Up is (0,-1).
func (d Direction) Vector() physics.Vector2D {
	switch d {
	case Up:
		return physics.Vector2D{X: 0, Y: -1}
	case Down:
		return physics.Vector2D{X: 0, Y: 1}
	case Left:
		return physics.Vector2D{X: -1, Y: 0}
	case Right:
		return physics.Vector2D{X: 1, Y: 0}
	default:
		return physics.Vector2D{}
	}
}

// Opposite returns the reverse direction
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

// Valid reports whether d is one of the four directions
func (d Direction) Valid() bool {
	return d >= Up && d <= Right
}

// IsOrthogonal reports whether a turn from a to b is a 90 degree turn,
// i.e. the dot product of their vectors is exactly zero. Unknown
// directions are never orthogonal to anything.
func IsOrthogonal(a, b Direction) bool {
	if !a.Valid() || !b.Valid() {
		return false
	}
	return a.Vector().Dot(b.Vector()) == 0
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "Up"
	case Down:
		return "Down"
	case Left:
		return "Left"
	case Right:
		return "Right"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}
