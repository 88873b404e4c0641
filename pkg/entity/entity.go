// pkg/entity/entity.go
package entity

import (
	"iter"

	"github.com/google/uuid"

	"github.com/opd-ai/go-snake/pkg/physics"
)

// ID is a unique identifier for an entity. It is assigned once at creation
// and never reassigned.
type ID uuid.UUID

// GenerateID generates a random unique ID
func GenerateID() ID {
	return ID(uuid.New())
}

func (id ID) String() string {
	return uuid.UUID(id).String()
}

// Kind tags the members of the grid
type Kind int

const (
	Player Kind = iota
	Enemy
	Obstacle
)

func (k Kind) String() string {
	switch k {
	case Player:
		return "Player"
	case Enemy:
		return "Enemy"
	case Obstacle:
		return "Obstacle"
	default:
		return "Unknown"
	}
}

// Movable is the capability set every grid member satisfies. Only the
// snake implements it today; Enemy and Obstacle kinds are reserved.
type Movable interface {
	GetID() ID
	GetKind() Kind
	// GetBody yields every occupied cell, head first. The sequence is
	// finite and may be ranged over more than once.
	GetBody() iter.Seq[physics.Vector2D]
	MoveTo(direction Direction)
	Render(r Renderer)
}
