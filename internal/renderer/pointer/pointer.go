// Package pointer translates browser pointer and keyboard events into grid
// events.
package pointer

import (
	"math"

	"github.com/dshills/webterm/internal/renderer/event"
	"github.com/dshills/webterm/internal/web"
)

// MouseConfig describes how pixel coordinates map onto a grid.
// It is fixed for the lifetime of a registered handler.
type MouseConfig struct {
	GridWidth  int
	GridHeight int

	// Offset is the pixel padding between the element edge and the first
	// cell, applied on every side. Nil means no padding.
	Offset *float64

	// CellWidth and CellHeight fix the cell size in pixels. When either is
	// zero the drawable area is derived from the element rectangle instead.
	CellWidth  float64
	CellHeight float64
}

// NewMouseConfig creates a config for a width x height grid.
func NewMouseConfig(width, height int) MouseConfig {
	return MouseConfig{GridWidth: width, GridHeight: height}
}

// WithOffset returns a copy with the pixel offset set.
func (c MouseConfig) WithOffset(offset float64) MouseConfig {
	c.Offset = &offset
	return c
}

// WithCellSize returns a copy with fixed cell dimensions.
func (c MouseConfig) WithCellSize(width, height float64) MouseConfig {
	c.CellWidth = width
	c.CellHeight = height
	return c
}

func (c MouseConfig) hasCellSize() bool {
	return c.CellWidth > 0 && c.CellHeight > 0
}

// GridPosition maps a client pixel position to a grid cell.
//
// The position is taken relative to rect and the offset, clamped at zero,
// scaled by the drawable area, truncated and clamped to the grid. A
// non-positive drawable area maps everything to (0, 0).
func GridPosition(clientX, clientY float64, rect web.Rect, cfg MouseConfig) (col, row int) {
	offset := 0.0
	if cfg.Offset != nil {
		offset = *cfg.Offset
	}

	relX := math.Max(clientX-rect.Left-offset, 0)
	relY := math.Max(clientY-rect.Top-offset, 0)

	var drawW, drawH float64
	if cfg.hasCellSize() {
		drawW = float64(cfg.GridWidth) * cfg.CellWidth
		drawH = float64(cfg.GridHeight) * cfg.CellHeight
	} else {
		drawW = rect.Width - 2*offset
		drawH = rect.Height - 2*offset
	}

	if drawW <= 0 || drawH <= 0 {
		return 0, 0
	}

	col = int(relX / drawW * float64(cfg.GridWidth))
	row = int(relY / drawH * float64(cfg.GridHeight))

	return clamp(col, cfg.GridWidth), clamp(row, cfg.GridHeight)
}

func clamp(v, size int) int {
	hi := max(size-1, 0)
	return min(max(v, 0), hi)
}

// MouseEvent builds a grid mouse event from a DOM event received on an
// element with bounding rectangle rect.
func MouseEvent(ev web.Event, rect web.Rect, cfg MouseConfig) event.MouseEvent {
	col, row := GridPosition(ev.ClientX, ev.ClientY, rect, cfg)
	kind := event.KindFromDOM(ev.Type)
	button := event.ButtonUnidentified
	if kind.HasButton() {
		button = event.ButtonFromDOM(ev.Button)
	}
	return event.MouseEvent{
		Kind:   kind,
		Button: button,
		Col:    col,
		Row:    row,
		Ctrl:   ev.Ctrl,
		Alt:    ev.Alt,
		Shift:  ev.Shift,
	}
}

// KeyEvent builds a key event from a DOM keyboard event.
func KeyEvent(ev web.Event) event.KeyEvent {
	return event.KeyEvent{
		Code:  event.ParseKey(ev.Key),
		Ctrl:  ev.Ctrl,
		Alt:   ev.Alt,
		Shift: ev.Shift,
	}
}
