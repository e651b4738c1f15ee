// Package backend defines the interface every web presentation strategy
// implements, the optional capabilities some of them add, and the cursor
// overlay shared between them.
package backend

import (
	"github.com/dshills/webterm/internal/renderer/core"
	"github.com/dshills/webterm/internal/renderer/event"
)

// Change is one cell write handed to Draw.
type Change struct {
	X, Y int
	Cell core.Cell
}

// Backend presents a changed cell grid.
//
// Draw records cell writes, Flush materializes them. Backends are not safe
// for concurrent use; all calls come from the frame tick or from event
// callbacks on the same thread.
type Backend interface {
	// Draw applies cell writes. Out-of-range positions are ignored.
	Draw(changes []Change) error

	// Flush presents everything drawn since the last flush.
	Flush() error

	// HideCursor hides the cursor.
	HideCursor() error

	// ShowCursor shows the cursor at the current cursor position.
	ShowCursor() error

	// SetCursorPosition moves the cursor.
	SetCursorPosition(pos core.Position) error

	// CursorPosition returns the cursor position, or (0, 0) when unset.
	CursorPosition() core.Position

	// Clear blanks the whole surface.
	Clear() error

	// Size returns the usable grid size.
	Size() core.Size
}

// MouseEventHandler is implemented by backends that report pointer events
// in grid coordinates. Registering a handler replaces the previous one.
type MouseEventHandler interface {
	OnMouseEvent(fn func(event.MouseEvent)) error
	ClearMouseEvents()
}

// KeyEventHandler is implemented by backends that report keyboard events.
// Registering a handler replaces the previous one.
type KeyEventHandler interface {
	OnKeyEvent(fn func(event.KeyEvent)) error
	ClearKeyEvents()
}

// Closer is implemented by backends holding browser listeners or elements.
type Closer interface {
	Close()
}

// ToChanges converts every cell of grid into a change list.
func ToChanges(grid *core.Grid) []Change {
	changes := make([]Change, 0, len(grid.Cells))
	for i, c := range grid.Cells {
		p := grid.PositionOf(i)
		changes = append(changes, Change{X: p.X, Y: p.Y, Cell: c})
	}
	return changes
}
