package dom

import (
	"log/slog"

	"github.com/dshills/webterm/internal/renderer/backend"
)

// Options configures a DOM backend.
type Options struct {
	// GridID is the id of the parent element. Empty means <body>.
	GridID string

	// CursorShape selects the cursor decoration.
	CursorShape backend.CursorShape

	// Logger receives debug output. Nil discards.
	Logger *slog.Logger
}

// DefaultOptions returns the default DOM options.
func DefaultOptions() Options {
	return Options{CursorShape: backend.CursorSteadyBlock}
}

// ElementID returns the id given to the grid element.
func (o Options) ElementID() string {
	if o.GridID == "" {
		return "grid"
	}
	return o.GridID + "_webterm_grid"
}
