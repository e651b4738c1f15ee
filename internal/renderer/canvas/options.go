package canvas

import (
	"log/slog"

	"github.com/dshills/webterm/internal/renderer/backend"
	"github.com/dshills/webterm/internal/renderer/core"
)

// Options configures a canvas backend.
type Options struct {
	// GridID is the id of the parent element. Empty means <body>.
	GridID string

	// Width and Height override the parent's client size, in CSS pixels.
	// Both must be set for the override to apply.
	Width  int
	Height int

	// Scale multiplies the canvas backing store size. Must be positive.
	// Values above 1 sharpen output on high-DPI displays; memory grows
	// with the square of the scale.
	Scale float64

	// AlwaysClipCells clips every glyph to its cell, not only non-ASCII ones.
	AlwaysClipCells bool

	// DebugColor, when set, strokes every cell outline in this CSS color
	// and forces a full redraw on every flush.
	DebugColor string

	// CursorShape selects the cursor decoration.
	CursorShape backend.CursorShape

	// Background is the color painted for cells with a default background.
	Background core.Color

	// Logger receives debug output. Nil discards.
	Logger *slog.Logger
}

// DefaultOptions returns the default canvas options.
func DefaultOptions() Options {
	return Options{
		Scale:       1,
		CursorShape: backend.CursorSteadyBlock,
		Background:  core.ColorBlack,
	}
}
