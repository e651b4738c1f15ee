// Package dirty computes which cells of a grid need repainting and batches
// runs of equally colored cells into fill regions.
package dirty

import (
	"github.com/dshills/webterm/internal/renderer/core"
)

// Region is a rectangle of cells sharing one background color.
// Width and height are at least 1 for every region handed to a caller.
type Region struct {
	Rect  core.Rect
	Color uint32
}

// RowSpanMerger accumulates horizontally adjacent cells of equal color
// into a single Region. At most one region is pending at a time.
//
// Callers must Flush when they reach a clean cell or the end of a row;
// the merger itself never looks at grid contents.
type RowSpanMerger struct {
	pending Region
	active  bool
}

// Process feeds one dirty cell to the merger.
//
// With no pending region a new width-1 region starts and nothing is
// returned. A cell with the pending color extends the region by one column.
// A cell with a different color returns the pending region and starts a
// new one at (col, row).
func (m *RowSpanMerger) Process(col, row int, color uint32) (Region, bool) {
	if !m.active {
		m.start(col, row, color)
		return Region{}, false
	}
	if m.pending.Color == color {
		m.pending.Rect.Width++
		return Region{}, false
	}
	out := m.pending
	m.start(col, row, color)
	return out, true
}

// Flush returns and clears the pending region, if any.
func (m *RowSpanMerger) Flush() (Region, bool) {
	if !m.active {
		return Region{}, false
	}
	out := m.pending
	m.active = false
	m.pending = Region{}
	return out, true
}

// Pending reports whether a region is waiting to be flushed.
func (m *RowSpanMerger) Pending() bool {
	return m.active
}

func (m *RowSpanMerger) start(col, row int, color uint32) {
	m.pending = Region{
		Rect:  core.NewRect(col, row, 1, 1),
		Color: color,
	}
	m.active = true
}
