package gpu

import (
	"fmt"
	"log/slog"

	"github.com/dshills/webterm/internal/logging"
	"github.com/dshills/webterm/internal/renderer/backend"
	"github.com/dshills/webterm/internal/renderer/core"
	"github.com/dshills/webterm/internal/renderer/event"
	"github.com/dshills/webterm/internal/renderer/pointer"
	"github.com/dshills/webterm/internal/web"
)

// Backend hands changed cells to a Renderer and triggers one draw call per
// flush.
type Backend struct {
	r    Renderer
	perf web.Performance
	opts Options
	log  *slog.Logger

	cursor *core.Position

	links    *hyperlinks
	handlers pointer.Handlers
}

var (
	_ backend.Backend           = (*Backend)(nil)
	_ backend.MouseEventHandler = (*Backend)(nil)
	_ backend.KeyEventHandler   = (*Backend)(nil)
	_ backend.Closer            = (*Backend)(nil)
)

// New wraps an existing renderer. perf may be nil unless
// opts.MeasurePerformance is set.
func New(r Renderer, perf web.Performance, opts Options) (*Backend, error) {
	if opts.MeasurePerformance && perf == nil {
		return nil, backend.ErrNoPerformance
	}
	if !opts.MeasurePerformance {
		perf = nil
	}

	b := &Backend{
		r:    r,
		perf: perf,
		opts: opts,
		log:  logging.OrDiscard(opts.Logger).With("backend", "gpu"),
	}
	if opts.OnHyperlinkClick != nil {
		b.links = newHyperlinks(b)
	}

	cols, rows := r.TerminalSize()
	b.log.Debug("gpu backend created", "cols", cols, "rows", rows,
		"hyperlinks", b.links != nil, "selection", opts.SelectionMode.String())
	return b, nil
}

// NewFromWindow creates a canvas inside the configured parent element and
// builds a renderer on it.
func NewFromWindow(win web.Window, build Builder, opts Options) (*Backend, error) {
	if win == nil {
		return nil, backend.ErrNoWindow
	}
	var perf web.Performance
	if opts.MeasurePerformance {
		p, ok := win.Performance()
		if !ok {
			return nil, backend.ErrNoPerformance
		}
		perf = p
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
	canvas, err := web.CreateCanvasIn(doc, parent, width, height)
	if err != nil {
		return nil, err
	}

	r, err := build(canvas, opts.buildConfig())
	if err != nil {
		canvas.Remove()
		return nil, backend.WrapRenderer("build", err)
	}
	return New(r, perf, opts)
}

// Renderer returns the underlying renderer.
func (b *Backend) Renderer() Renderer {
	return b.r
}

// CursorShape returns the cursor shape.
func (b *Backend) CursorShape() backend.CursorShape {
	return b.opts.CursorShape
}

// SetCursorShape changes the cursor shape.
func (b *Backend) SetCursorShape(shape backend.CursorShape) {
	b.opts.CursorShape = shape
}

// Draw implements backend.Backend. With mouse selection enabled the
// renderer is synced even without changes so the selection stays visible.
func (b *Backend) Draw(changes []backend.Change) error {
	if len(changes) == 0 && b.opts.SelectionMode == SelectionNone {
		return nil
	}

	b.measureBegin(MarkSyncBuffer)

	cells := make([]PositionedCell, len(changes))
	for i, ch := range changes {
		cells[i] = PositionedCell{Col: ch.X, Row: ch.Y, Data: CellDataFor(ch.Cell)}
		if b.links != nil {
			b.links.mark(ch.X, ch.Y, ch.Cell)
		}
	}
	if err := b.r.UpdateCells(cells); err != nil {
		return backend.WrapRenderer("update cells", err)
	}

	b.measureEnd(MarkSyncBuffer)
	return nil
}

// Flush implements backend.Backend.
func (b *Backend) Flush() error {
	if b.links != nil {
		b.links.process()
	}
	if err := b.checkResize(); err != nil {
		return err
	}

	b.measureBegin(MarkRender)

	b.toggleCursor()
	err := b.r.RenderFrame()
	b.toggleCursor()
	if err != nil {
		return backend.WrapRenderer("render frame", err)
	}

	b.measureEnd(MarkRender)
	return nil
}

// checkResize resizes the renderer when the canvas display size no longer
// matches the size it was laid out for.
func (b *Backend) checkResize() error {
	canvas := b.r.Canvas()
	width, height := canvas.ClientWidth(), canvas.ClientHeight()
	storedW, storedH := b.r.CanvasSize()
	if width == storedW && height == storedH {
		return nil
	}

	if err := b.r.Resize(width, height); err != nil {
		return backend.WrapRenderer("resize", err)
	}
	cols, rows := b.r.TerminalSize()
	if b.links != nil {
		b.links.reset(cols, rows)
	}
	b.log.Debug("gpu canvas resized", "width", width, "height", height, "cols", cols, "rows", rows)
	return nil
}

// toggleCursor applies or reverts the cursor decoration on the renderer's
// cell data. Both operations are involutions, so calling it twice restores
// the cell exactly.
func (b *Backend) toggleCursor() {
	if b.cursor == nil {
		return
	}
	c := b.r.CellData(b.cursor.X, b.cursor.Y)
	if c == nil {
		return
	}
	switch b.opts.CursorShape {
	case backend.CursorSteadyBlock:
		c.FlipColors()
	case backend.CursorSteadyUnderScore:
		c.Style ^= EffectUnderline
	}
}

func (b *Backend) measureBegin(label string) {
	if b.perf == nil {
		return
	}
	if err := b.perf.Mark(label); err != nil {
		b.log.Debug("performance mark failed", "label", label, "error", err)
	}
}

func (b *Backend) measureEnd(label string) {
	if b.perf == nil {
		return
	}
	if err := b.perf.Measure(label, label); err != nil {
		b.log.Debug("performance measure failed", "label", label, "error", err)
	}
}

// HideCursor implements backend.Backend.
func (b *Backend) HideCursor() error {
	b.cursor = nil
	return nil
}

// ShowCursor implements backend.Backend.
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
	if err := b.r.Fill(BlankCell); err != nil {
		return backend.WrapRenderer("fill", err)
	}
	return nil
}

// Size implements backend.Backend. Unlike the canvas and DOM backends no
// margin is held back: the renderer lays out its own padding.
func (b *Backend) Size() core.Size {
	cols, rows := b.r.TerminalSize()
	return core.Size{Width: cols, Height: rows}
}

// OnMouseEvent implements backend.MouseEventHandler. Only moves, presses
// and releases are reported.
func (b *Backend) OnMouseEvent(fn func(event.MouseEvent)) error {
	b.handlers.OnMouse(b.r.Canvas(), b.mouseConfig, func(ev event.MouseEvent) {
		switch ev.Kind {
		case event.MouseMoved, event.MouseButtonDown, event.MouseButtonUp:
			fn(ev)
		}
	})
	return nil
}

// ClearMouseEvents implements backend.MouseEventHandler.
func (b *Backend) ClearMouseEvents() {
	b.handlers.ClearMouse()
}

// OnKeyEvent implements backend.KeyEventHandler. The canvas is not
// focusable, so registration succeeds without listening to anything.
func (b *Backend) OnKeyEvent(func(event.KeyEvent)) error {
	return nil
}

// ClearKeyEvents implements backend.KeyEventHandler.
func (b *Backend) ClearKeyEvents() {}

// Close removes every listener the backend registered.
func (b *Backend) Close() {
	b.handlers.Release()
	if b.links != nil {
		b.links.close()
	}
	b.log.Debug("gpu backend closed")
}

func (b *Backend) mouseConfig() pointer.MouseConfig {
	cols, rows := b.r.TerminalSize()
	cw, ch := b.r.CellSize()
	return pointer.NewMouseConfig(cols, rows).WithCellSize(cw, ch)
}

// String describes the backend for logs.
func (b *Backend) String() string {
	cols, rows := b.r.TerminalSize()
	return fmt.Sprintf("gpu(%dx%d)", cols, rows)
}
