package physics

// Bounds is the size of a toroidal grid in cells. Valid cells lie in
// [0, Columns) x [0, Rows).
type Bounds struct {
	Columns int
	Rows    int
}

// NewBounds creates grid bounds
func NewBounds(columns, rows int) Bounds {
	return Bounds{Columns: columns, Rows: rows}
}

// Contains reports whether the cell lies inside the grid
func (b Bounds) Contains(p Vector2D) bool {
	return p.X >= 0 && p.X < b.Columns && p.Y >= 0 && p.Y < b.Rows
}

// Wrap folds each axis of p back into the grid independently, so a
// coordinate that leaves one edge re-enters from the opposite edge.
func (b Bounds) Wrap(p Vector2D) Vector2D {
	return Vector2D{
		X: EuclideanMod(p.X, b.Columns),
		Y: EuclideanMod(p.Y, b.Rows),
	}
}

// Center returns the middle cell of the grid
func (b Bounds) Center() Vector2D {
	return Vector2D{X: b.Columns / 2, Y: b.Rows / 2}
}

// Area returns the number of cells in the grid
func (b Bounds) Area() int {
	return b.Columns * b.Rows
}

// EuclideanMod returns a mod n in the range [0, n) for n > 0.
func EuclideanMod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}
