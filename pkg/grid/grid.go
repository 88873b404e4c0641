// Package grid holds the registry of every movable currently in play,
// keyed by identity.
package grid

import (
	"errors"
	"fmt"
	"iter"
	"maps"
	"slices"

	"github.com/opd-ai/go-snake/pkg/entity"
	"github.com/opd-ai/go-snake/pkg/physics"
)

var (
	// ErrDuplicateID is returned when inserting a movable whose ID is
	// already present.
	ErrDuplicateID = errors.New("duplicate game object id")
	// ErrNotFound is returned when no movable of the requested kind exists.
	ErrNotFound = errors.New("game object not found")
)

// Grid maps entity IDs to the movables that own them. It is not safe for
// concurrent use; the engine is its only owner.
type Grid struct {
	objects map[entity.ID]entity.Movable
	order   []entity.ID
}

// New creates an empty grid with room for one object per cell
func New(bounds physics.Bounds) *Grid {
	return &Grid{
		objects: make(map[entity.ID]entity.Movable, bounds.Area()),
	}
}

// Insert adds obj under its ID. A second object with an ID already present
// is a contract violation and is reported as ErrDuplicateID.
func (g *Grid) Insert(obj entity.Movable) error {
	id := obj.GetID()

	for _, existing := range g.objects {
		if existing.GetID() == id {
			return fmt.Errorf("%w: attempt to add duplicated game objects in scene: %s(%s)",
				ErrDuplicateID, id, obj.GetKind())
		}
	}

	g.objects[id] = obj
	g.order = append(g.order, id)
	return nil
}

// Remove deletes and returns the object stored under id. The second result
// is false when nothing was stored there. Any other entry that reports the
// same ID is dropped as well.
func (g *Grid) Remove(id entity.ID) (entity.Movable, bool) {
	obj, ok := g.objects[id]
	if !ok {
		return nil, false
	}
	delete(g.objects, id)

	maps.DeleteFunc(g.objects, func(_ entity.ID, o entity.Movable) bool {
		return o.GetID() == id
	})
	g.order = slices.DeleteFunc(g.order, func(key entity.ID) bool {
		_, live := g.objects[key]
		return !live
	})

	return obj, true
}

// FindByKind returns the first object of the given kind in insertion order
func (g *Grid) FindByKind(kind entity.Kind) (entity.Movable, error) {
	for _, id := range g.order {
		if obj := g.objects[id]; obj.GetKind() == kind {
			return obj, nil
		}
	}
	return nil, fmt.Errorf("%w: no %s in grid", ErrNotFound, kind)
}

// All yields every object in insertion order
func (g *Grid) All() iter.Seq[entity.Movable] {
	return func(yield func(entity.Movable) bool) {
		for _, id := range g.order {
			if !yield(g.objects[id]) {
				return
			}
		}
	}
}

// Len returns the number of objects in the grid
func (g *Grid) Len() int {
	return len(g.objects)
}
