package core

import "fmt"

// Position is a cell address in grid coordinates.
type Position struct {
	X int // column
	Y int // row
}

// NewPosition creates a position from a column and row.
func NewPosition(col, row int) Position {
	return Position{X: col, Y: row}
}

// String returns a string representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Size is a grid size in cells.
type Size struct {
	Width  int
	Height int
}

// Area returns the number of cells covered.
func (s Size) Area() int {
	if s.Width <= 0 || s.Height <= 0 {
		return 0
	}
	return s.Width * s.Height
}

// Rect is an axis-aligned rectangle of cells.
type Rect struct {
	X, Y          int
	Width, Height int
}

// NewRect creates a rectangle.
func NewRect(x, y, width, height int) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// Right returns the first column past the rectangle.
func (r Rect) Right() int { return r.X + r.Width }

// Bottom returns the first row past the rectangle.
func (r Rect) Bottom() int { return r.Y + r.Height }

// IsEmpty returns true if the rectangle covers no cells.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains returns true if the rectangle contains the position.
func (r Rect) Contains(p Position) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}
