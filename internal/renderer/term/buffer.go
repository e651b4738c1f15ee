package term

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/dshills/webterm/internal/renderer/backend"
	"github.com/dshills/webterm/internal/renderer/core"
	"github.com/dshills/webterm/internal/renderer/dirty"
)

// ScreenBuffer provides double-buffered rendering with change tracking.
// Frames are written into the back buffer; ComputeDiff compares it with
// the front buffer (what the backend shows) and Sync promotes it.
type ScreenBuffer struct {
	front      *core.Grid
	back       *core.Grid
	diff       *bitset.BitSet
	fullRedraw bool
}

// NewScreenBuffer creates a screen buffer with the given dimensions.
func NewScreenBuffer(width, height int) *ScreenBuffer {
	return &ScreenBuffer{
		front:      core.NewGrid(width, height),
		back:       core.NewGrid(width, height),
		fullRedraw: true,
	}
}

// Resize resizes the buffer, preserving back buffer content where possible.
func (sb *ScreenBuffer) Resize(width, height int) {
	if width == sb.back.Width && height == sb.back.Height {
		return
	}
	sb.back.Resize(width, height)
	sb.front = core.NewGrid(sb.back.Width, sb.back.Height)
	sb.fullRedraw = true
}

// Size returns the buffer dimensions.
func (sb *ScreenBuffer) Size() core.Size {
	return sb.back.Size()
}

// SetCell sets a cell in the back buffer. Out-of-range writes are ignored.
func (sb *ScreenBuffer) SetCell(x, y int, cell core.Cell) {
	sb.back.Set(x, y, cell)
}

// Cell returns a cell from the back buffer.
func (sb *ScreenBuffer) Cell(x, y int) core.Cell {
	return sb.back.At(x, y)
}

// FrontCell returns a cell from the front buffer (currently displayed).
func (sb *ScreenBuffer) FrontCell(x, y int) core.Cell {
	return sb.front.At(x, y)
}

// Fill fills a rectangle with the given cell.
func (sb *ScreenBuffer) Fill(rect core.Rect, cell core.Cell) {
	for y := max(rect.Y, 0); y < rect.Bottom() && y < sb.back.Height; y++ {
		for x := max(rect.X, 0); x < rect.Right() && x < sb.back.Width; x++ {
			sb.back.Set(x, y, cell)
		}
	}
}

// Clear clears the back buffer with empty cells.
func (sb *ScreenBuffer) Clear() {
	sb.back.Reset()
}

// SetLine sets a row of cells starting at the given position.
func (sb *ScreenBuffer) SetLine(x, y int, cells []core.Cell) {
	for i, cell := range cells {
		sb.back.Set(x+i, y, cell)
	}
}

// SetString writes s one grapheme cluster per cell starting at (x, y) and
// returns the column after the last cell written. Wide clusters are
// followed by a continuation cell; a wide cluster that does not fit before
// the right edge is dropped.
func (sb *ScreenBuffer) SetString(x, y int, s string, style core.Style) int {
	if y < 0 || y >= sb.back.Height {
		return x
	}
	col := x
	for _, g := range core.Graphemes(s) {
		width := core.SymbolWidth(g)
		if width == 0 {
			continue
		}
		if col+width > sb.back.Width {
			break
		}
		if col >= 0 {
			sb.back.Set(col, y, core.NewStyledCell(g, style))
		}
		if width == 2 && col+1 >= 0 {
			sb.back.Set(col+1, y, core.ContinuationCell())
		}
		col += width
	}
	return col
}

// ComputeDiff returns the changes needed to update the display, in
// row-major order. Returns nil if nothing changed.
func (sb *ScreenBuffer) ComputeDiff() []backend.Change {
	sb.diff = dirty.Compute(sb.back, sb.front, sb.fullRedraw, sb.diff)
	if !dirty.Any(sb.diff) {
		return nil
	}

	changes := make([]backend.Change, 0, sb.diff.Count())
	dirty.ForEachDirty(sb.back, sb.diff, func(col, row int, c core.Cell) {
		changes = append(changes, backend.Change{X: col, Y: row, Cell: c})
	})
	return changes
}

// Sync copies the back buffer to the front buffer.
// Call this after the changes reached the backend.
func (sb *ScreenBuffer) Sync() {
	sb.front.CopyFrom(sb.back)
	sb.fullRedraw = false
}

// MarkFullRedraw forces a complete redraw on next diff.
func (sb *ScreenBuffer) MarkFullRedraw() {
	sb.fullRedraw = true
}

// IsDirty returns true if there are pending changes.
func (sb *ScreenBuffer) IsDirty() bool {
	return sb.fullRedraw || !sb.back.Equal(sb.front)
}

// DirtyCount returns the number of cells that differ from the front buffer.
func (sb *ScreenBuffer) DirtyCount() int {
	if sb.fullRedraw {
		return sb.back.Len()
	}
	count := 0
	for i := range sb.back.Cells {
		if !sb.back.Cells[i].Equals(sb.front.Cells[i]) {
			count++
		}
	}
	return count
}
