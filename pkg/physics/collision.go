// pkg/physics/collision.go
package physics

import "iter"

// CollisionResult contains information about a cell collision
type CollisionResult struct {
	Collided bool
	Cell     Vector2D
	// Index is the position of the hit cell in the traversal order
	Index int
}

// CheckCollision walks cells in order and reports the first one equal to p.
func CheckCollision(p Vector2D, cells iter.Seq[Vector2D]) CollisionResult {
	i := 0
	for cell := range cells {
		if cell == p {
			return CollisionResult{Collided: true, Cell: cell, Index: i}
		}
		i++
	}
	return CollisionResult{Collided: false, Index: -1}
}
