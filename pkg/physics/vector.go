// pkg/physics/vector.go
package physics

import "fmt"

// Vector2D is a position or offset on the integer cell grid
type Vector2D struct {
	X int
	Y int
}

// Add returns the sum of two vectors
func (v Vector2D) Add(other Vector2D) Vector2D {
	return Vector2D{
		X: v.X + other.X,
		Y: v.Y + other.Y,
	}
}

// Scale multiplies the vector by a scalar value
func (v Vector2D) Scale(factor int) Vector2D {
	return Vector2D{
		X: v.X * factor,
		Y: v.Y * factor,
	}
}

// Negate returns the vector pointing the opposite way
func (v Vector2D) Negate() Vector2D {
	return v.Scale(-1)
}

// Dot returns the dot product of two vectors
func (v Vector2D) Dot(other Vector2D) int {
	return v.X*other.X + v.Y*other.Y
}

func (v Vector2D) String() string {
	return fmt.Sprintf("(%d,%d)", v.X, v.Y)
}
