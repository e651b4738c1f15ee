package gpu

import (
	"log/slog"

	"github.com/dshills/webterm/internal/renderer/backend"
	"github.com/dshills/webterm/internal/renderer/core"
	"github.com/dshills/webterm/internal/web"
)

// Performance mark labels.
const (
	MarkSyncBuffer = "sync-terminal-buffer"
	MarkRender     = "webgl-render"
)

// Options configures a GPU backend.
type Options struct {
	// GridID is the id of the canvas' parent element. Empty means <body>.
	GridID string

	// Width and Height override the parent's client size, in CSS pixels.
	Width  int
	Height int

	CursorShape backend.CursorShape

	// MeasurePerformance wraps buffer sync and rendering in performance
	// marks.
	MeasurePerformance bool

	// SelectionMode enables mouse selection in the renderer.
	SelectionMode SelectionMode

	// OnHyperlinkClick, when set, enables hyperlink hit-testing and is
	// called with the text of a clicked hyperlink span.
	OnHyperlinkClick func(url string)

	// PaddingColor fills the canvas area outside the grid.
	PaddingColor core.Color

	// FallbackGlyph replaces glyphs the renderer cannot draw.
	FallbackGlyph string

	// Logger receives debug output. Nil discards.
	Logger *slog.Logger
}

// DefaultOptions returns the default GPU options.
func DefaultOptions() Options {
	return Options{
		CursorShape:   backend.CursorSteadyBlock,
		PaddingColor:  core.ColorBlack,
		FallbackGlyph: " ",
	}
}

// OpenInNewTab returns a hyperlink callback opening urls in a new tab.
func OpenInNewTab(win web.Window, log *slog.Logger) func(string) {
	return func(url string) {
		if err := win.Open(url, "_blank"); err != nil && log != nil {
			log.Warn("open hyperlink failed", "url", url, "error", err)
		}
	}
}

func (o Options) buildConfig() BuildConfig {
	glyph := o.FallbackGlyph
	if glyph == "" {
		glyph = " "
	}
	return BuildConfig{
		PaddingColor:  o.PaddingColor.RGB(core.DefaultBackground),
		FallbackGlyph: glyph,
		Selection:     o.SelectionMode,
	}
}
