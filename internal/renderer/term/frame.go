package term

import (
	"github.com/dshills/webterm/internal/renderer/core"
)

// Frame is the drawing surface handed to a render function. It starts
// blank on every draw.
type Frame struct {
	buf    *ScreenBuffer
	cursor *core.Position
}

// Size returns the frame size in cells.
func (f *Frame) Size() core.Size {
	return f.buf.Size()
}

// Area returns the whole frame as a rectangle.
func (f *Frame) Area() core.Rect {
	s := f.Size()
	return core.NewRect(0, 0, s.Width, s.Height)
}

// SetCell writes one cell.
func (f *Frame) SetCell(x, y int, cell core.Cell) {
	f.buf.SetCell(x, y, cell)
}

// Cell returns the cell written at (x, y) so far.
func (f *Frame) Cell(x, y int) core.Cell {
	return f.buf.Cell(x, y)
}

// SetString writes s starting at (x, y) and returns the next column.
func (f *Frame) SetString(x, y int, s string, style core.Style) int {
	return f.buf.SetString(x, y, s, style)
}

// Fill fills rect with cell.
func (f *Frame) Fill(rect core.Rect, cell core.Cell) {
	f.buf.Fill(rect, cell)
}

// SetCursorPosition shows the cursor at pos after this frame. Without a
// call the cursor is hidden.
func (f *Frame) SetCursorPosition(pos core.Position) {
	f.cursor = &pos
}
