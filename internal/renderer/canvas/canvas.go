// Package canvas renders a cell grid by painting onto an HTML canvas 2D
// context. Only cells that changed since the previous flush are repainted.
package canvas

import (
	"fmt"
	"log/slog"

	"github.com/bits-and-blooms/bitset"

	"github.com/dshills/webterm/internal/logging"
	"github.com/dshills/webterm/internal/renderer/backend"
	"github.com/dshills/webterm/internal/renderer/core"
	"github.com/dshills/webterm/internal/renderer/dirty"
	"github.com/dshills/webterm/internal/renderer/event"
	"github.com/dshills/webterm/internal/renderer/pointer"
	"github.com/dshills/webterm/internal/web"
)

// Cell geometry in CSS pixels.
const (
	CellWidth  = 10.0
	CellHeight = 19.0

	// Margin is the translation applied before painting.
	Margin = 5.0

	// Font is the context font.
	Font = "16px monospace"
)

// Backend paints a cell grid onto a canvas.
type Backend struct {
	doc    web.Document
	canvas web.CanvasElement
	ctx    web.Context2D
	opts   Options
	log    *slog.Logger

	// logical canvas size in CSS pixels
	width  int
	height int

	grid        *core.Grid
	prev        *core.Grid
	dirty       *bitset.BitSet
	initialized bool

	cursor  *core.Position
	overlay backend.CursorOverlay

	handlers pointer.Handlers
}

var (
	_ backend.Backend           = (*Backend)(nil)
	_ backend.MouseEventHandler = (*Backend)(nil)
	_ backend.KeyEventHandler   = (*Backend)(nil)
	_ backend.Closer            = (*Backend)(nil)
)

// New creates a canvas inside the configured parent element.
func New(win web.Window, opts Options) (*Backend, error) {
	if opts.Scale <= 0 {
		return nil, fmt.Errorf("%w: %v", backend.ErrInvalidScale, opts.Scale)
	}
	if win == nil {
		return nil, backend.ErrNoWindow
	}
	doc, ok := win.Document()
	if !ok {
		return nil, backend.ErrNoDocument
	}
	parent, err := web.ElementByIDOrBody(win, opts.GridID)
	if err != nil {
		return nil, err
	}

	width, height := opts.Width, opts.Height
	if width <= 0 || height <= 0 {
		width, height = parent.ClientWidth(), parent.ClientHeight()
	}

	canvas, err := web.CreateCanvasIn(doc, parent,
		int(float64(width)*opts.Scale), int(float64(height)*opts.Scale))
	if err != nil {
		return nil, err
	}
	style := fmt.Sprintf("width: %dpx; height: %dpx;", width, height)
	if err := canvas.SetAttribute("style", style); err != nil {
		return nil, fmt.Errorf("set canvas style: %w", err)
	}

	ctx, err := canvas.Context2D(web.ContextOptions{Alpha: true, Desynchronized: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", backend.ErrNoCanvasContext, err)
	}
	ctx.SetFont(Font)
	ctx.SetTextBaseline("top")
	if err := ctx.Scale(opts.Scale, opts.Scale); err != nil {
		return nil, fmt.Errorf("scale context: %w", err)
	}

	cols := int(float64(width) / CellWidth)
	rows := int(float64(height) / CellHeight)
	grid := core.NewGrid(cols, rows)

	b := &Backend{
		doc:     doc,
		canvas:  canvas,
		ctx:     ctx,
		opts:    opts,
		log:     logging.OrDiscard(opts.Logger).With("backend", "canvas"),
		width:   width,
		height:  height,
		grid:    grid,
		prev:    grid.Clone(),
		overlay: backend.CursorOverlay{Shape: opts.CursorShape},
	}
	b.log.Debug("canvas created", "width", width, "height", height, "cols", cols, "rows", rows, "scale", opts.Scale)
	return b, nil
}

// Canvas returns the canvas element.
func (b *Backend) Canvas() web.CanvasElement {
	return b.canvas
}

// CursorShape returns the cursor shape.
func (b *Backend) CursorShape() backend.CursorShape {
	return b.overlay.Shape
}

// SetCursorShape changes the cursor shape.
func (b *Backend) SetCursorShape(shape backend.CursorShape) {
	b.overlay.Shape = shape
}

// SetBackgroundColor changes the color used for default backgrounds.
// Cells already painted keep their color until they change.
func (b *Backend) SetBackgroundColor(c core.Color) {
	b.opts.Background = c
}

// SetDebugColor enables cell outlines in the given CSS color, or disables
// them when color is empty.
func (b *Backend) SetDebugColor(color string) {
	b.opts.DebugColor = color
}

// Draw implements backend.Backend.
func (b *Backend) Draw(changes []backend.Change) error {
	for _, ch := range changes {
		b.grid.Set(ch.X, ch.Y, ch.Cell)
	}
	return nil
}

// Flush implements backend.Backend.
//
// The cursor decoration is applied to the grid for the duration of the
// paint, and the previous grid records the decorated state so a cursor
// that moves away repaints its old cell.
func (b *Backend) Flush() error {
	b.overlay.Apply(b.grid, b.cursor)
	defer b.overlay.Revert(b.grid)

	force := !b.initialized || b.opts.DebugColor != ""
	b.dirty = dirty.Compute(b.grid, b.prev, force, b.dirty)
	if !dirty.Any(b.dirty) {
		return nil
	}

	if err := b.paint(force); err != nil {
		return err
	}

	b.prev.CopyFrom(b.grid)
	b.initialized = true
	return nil
}

// HideCursor implements backend.Backend.
func (b *Backend) HideCursor() error {
	b.cursor = nil
	return nil
}

// ShowCursor implements backend.Backend.
// The cursor is drawn at the position set by SetCursorPosition.
func (b *Backend) ShowCursor() error {
	return nil
}

// SetCursorPosition implements backend.Backend.
func (b *Backend) SetCursorPosition(pos core.Position) error {
	b.cursor = &pos
	return nil
}

// CursorPosition implements backend.Backend.
func (b *Backend) CursorPosition() core.Position {
	if b.cursor == nil {
		return core.Position{}
	}
	return *b.cursor
}

// Clear implements backend.Backend.
func (b *Backend) Clear() error {
	b.grid.Reset()
	return nil
}

// Size implements backend.Backend. One row and column are held back for
// the paint margin.
func (b *Backend) Size() core.Size {
	return core.Size{
		Width:  max(b.grid.Width-1, 0),
		Height: max(b.grid.Height-1, 0),
	}
}

// OnMouseEvent implements backend.MouseEventHandler.
func (b *Backend) OnMouseEvent(fn func(event.MouseEvent)) error {
	b.handlers.OnMouse(b.canvas, b.mouseConfig, fn)
	return nil
}

// ClearMouseEvents implements backend.MouseEventHandler.
func (b *Backend) ClearMouseEvents() {
	b.handlers.ClearMouse()
}

// OnKeyEvent implements backend.KeyEventHandler.
func (b *Backend) OnKeyEvent(fn func(event.KeyEvent)) error {
	b.handlers.OnKey(b.doc, fn)
	return nil
}

// ClearKeyEvents implements backend.KeyEventHandler.
func (b *Backend) ClearKeyEvents() {
	b.handlers.ClearKey()
}

// Close removes listeners and detaches the canvas.
func (b *Backend) Close() {
	b.handlers.Release()
	b.canvas.Remove()
	b.log.Debug("canvas closed")
}

func (b *Backend) mouseConfig() pointer.MouseConfig {
	return pointer.NewMouseConfig(b.grid.Width, b.grid.Height).
		WithOffset(Margin).
		WithCellSize(CellWidth, CellHeight)
}
