package backend

import (
	"github.com/dshills/webterm/internal/renderer/core"
	"github.com/dshills/webterm/internal/renderer/event"
)

// NullBackend is an in-memory backend for testing.
// It keeps a grid of everything drawn and records every call.
type NullBackend struct {
	grid          *core.Grid
	cursor        core.Position
	cursorVisible bool
	flushes       int
	draws         [][]Change
	mouse         func(event.MouseEvent)
	key           func(event.KeyEvent)

	// FlushErr, when set, is returned by Flush.
	FlushErr error
}

// NewNullBackend creates a null backend with the given dimensions.
func NewNullBackend(width, height int) *NullBackend {
	return &NullBackend{grid: core.NewGrid(width, height)}
}

// Draw implements Backend.
func (b *NullBackend) Draw(changes []Change) error {
	b.draws = append(b.draws, append([]Change(nil), changes...))
	for _, ch := range changes {
		b.grid.Set(ch.X, ch.Y, ch.Cell)
	}
	return nil
}

// Flush implements Backend.
func (b *NullBackend) Flush() error {
	if b.FlushErr != nil {
		return b.FlushErr
	}
	b.flushes++
	return nil
}

// HideCursor implements Backend.
func (b *NullBackend) HideCursor() error {
	b.cursorVisible = false
	return nil
}

// ShowCursor implements Backend.
func (b *NullBackend) ShowCursor() error {
	b.cursorVisible = true
	return nil
}

// SetCursorPosition implements Backend.
func (b *NullBackend) SetCursorPosition(pos core.Position) error {
	b.cursor = pos
	return nil
}

// CursorPosition implements Backend.
func (b *NullBackend) CursorPosition() core.Position {
	return b.cursor
}

// Clear implements Backend.
func (b *NullBackend) Clear() error {
	b.grid.Reset()
	return nil
}

// Size implements Backend.
func (b *NullBackend) Size() core.Size {
	return b.grid.Size()
}

// OnMouseEvent implements MouseEventHandler.
func (b *NullBackend) OnMouseEvent(fn func(event.MouseEvent)) error {
	b.mouse = fn
	return nil
}

// ClearMouseEvents implements MouseEventHandler.
func (b *NullBackend) ClearMouseEvents() { b.mouse = nil }

// OnKeyEvent implements KeyEventHandler.
func (b *NullBackend) OnKeyEvent(fn func(event.KeyEvent)) error {
	b.key = fn
	return nil
}

// ClearKeyEvents implements KeyEventHandler.
func (b *NullBackend) ClearKeyEvents() { b.key = nil }

// Resize simulates a surface resize for testing.
func (b *NullBackend) Resize(width, height int) {
	b.grid.Resize(width, height)
}

// Cell returns the drawn cell at (x, y).
func (b *NullBackend) Cell(x, y int) core.Cell {
	return b.grid.At(x, y)
}

// CursorVisible reports whether the cursor is shown.
func (b *NullBackend) CursorVisible() bool {
	return b.cursorVisible
}

// Flushes returns the number of successful flushes.
func (b *NullBackend) Flushes() int {
	return b.flushes
}

// Draws returns the change lists passed to Draw, in order.
func (b *NullBackend) Draws() [][]Change {
	return b.draws
}

// SendMouse delivers ev to the registered mouse handler, if any.
func (b *NullBackend) SendMouse(ev event.MouseEvent) {
	if b.mouse != nil {
		b.mouse(ev)
	}
}

// SendKey delivers ev to the registered key handler, if any.
func (b *NullBackend) SendKey(ev event.KeyEvent) {
	if b.key != nil {
		b.key(ev)
	}
}
