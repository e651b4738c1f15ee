// Package dom renders a cell grid as one <span> per cell, grouped into a
// <pre> per row. Draw writes straight into the elements; Flush has nothing
// left to do.
package dom

import (
	"fmt"
	"html"
	"log/slog"

	"github.com/dshills/webterm/internal/logging"
	"github.com/dshills/webterm/internal/renderer/backend"
	"github.com/dshills/webterm/internal/renderer/core"
	"github.com/dshills/webterm/internal/renderer/event"
	"github.com/dshills/webterm/internal/renderer/pointer"
	"github.com/dshills/webterm/internal/web"
)

// Cell geometry used to derive the grid size from the window size.
const (
	CellWidth  = 10.0
	CellHeight = 19.0

	// RowStyle is the inline style of every row element.
	RowStyle = "height: 15px;"
)

// Backend renders cells as DOM elements.
type Backend struct {
	win    web.Window
	doc    web.Document
	parent web.Element
	grid   web.Element
	cells  []web.Element
	size   core.Size

	opts Options
	log  *slog.Logger

	// initialized is cleared by the window resize listener; the next Draw
	// rebuilds the element tree.
	initialized bool

	cursor     *core.Position
	lastCursor *core.Position

	resize   *web.EventCallback
	handlers pointer.Handlers
}

var (
	_ backend.Backend           = (*Backend)(nil)
	_ backend.MouseEventHandler = (*Backend)(nil)
	_ backend.KeyEventHandler   = (*Backend)(nil)
	_ backend.Closer            = (*Backend)(nil)
)

// New creates a DOM backend. The element tree is built on the first Draw.
func New(win web.Window, opts Options) (*Backend, error) {
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

	b := &Backend{
		win:    win,
		doc:    doc,
		parent: parent,
		opts:   opts,
		log:    logging.OrDiscard(opts.Logger).With("backend", "dom"),
		size:   windowSize(win),
	}
	b.resize = web.NewEventCallback(win, []string{"resize"}, func(web.Event) {
		b.initialized = false
	})
	if err := b.resetGrid(); err != nil {
		b.resize.Release()
		return nil, err
	}
	b.log.Debug("dom backend created", "cols", b.size.Width, "rows", b.size.Height)
	return b, nil
}

func windowSize(win web.Window) core.Size {
	w, h := win.InnerSize()
	return core.Size{
		Width:  int(w / CellWidth),
		Height: int(h / CellHeight),
	}
}

// resetGrid replaces the grid element with a fresh, empty one.
func (b *Backend) resetGrid() error {
	grid, err := b.doc.CreateElement("div")
	if err != nil {
		return fmt.Errorf("create grid: %w", err)
	}
	if err := grid.SetAttribute("id", b.opts.ElementID()); err != nil {
		return fmt.Errorf("set grid id: %w", err)
	}
	b.grid = grid
	b.cells = b.cells[:0]
	return nil
}

// populate fills the grid with blank rows.
func (b *Backend) populate() error {
	blank := core.EmptyCell()
	blankCSS := CellCSS(blank)

	for y := 0; y < b.size.Height; y++ {
		pre, err := b.doc.CreateElement("pre")
		if err != nil {
			return fmt.Errorf("create row: %w", err)
		}
		if err := pre.SetAttribute("style", RowStyle); err != nil {
			return fmt.Errorf("set row style: %w", err)
		}
		for x := 0; x < b.size.Width; x++ {
			span, err := b.doc.CreateElement("span")
			if err != nil {
				return fmt.Errorf("create cell: %w", err)
			}
			span.SetInnerHTML(blank.Symbol)
			if err := span.SetAttribute("style", blankCSS); err != nil {
				return fmt.Errorf("set cell style: %w", err)
			}
			if err := pre.AppendChild(span); err != nil {
				return fmt.Errorf("append cell: %w", err)
			}
			b.cells = append(b.cells, span)
		}
		if err := b.grid.AppendChild(pre); err != nil {
			return fmt.Errorf("append row: %w", err)
		}
	}
	return nil
}

// initialize builds the element tree, replacing the previous one after a
// window resize.
func (b *Backend) initialize() error {
	b.initialized = true
	b.cursor = nil
	b.lastCursor = nil

	if _, exists := b.doc.GetElementByID(b.opts.ElementID()); exists {
		b.parent.SetInnerHTML("")
		if err := b.resetGrid(); err != nil {
			return err
		}
		b.size = windowSize(b.win)
		b.log.Debug("dom grid rebuilt", "cols", b.size.Width, "rows", b.size.Height)
	}

	if err := b.parent.AppendChild(b.grid); err != nil {
		return fmt.Errorf("append grid: %w", err)
	}
	return b.populate()
}

func (b *Backend) element(x, y int) web.Element {
	if x < 0 || x >= b.size.Width || y < 0 || y >= b.size.Height {
		return nil
	}
	i := y*b.size.Width + x
	if i >= len(b.cells) {
		return nil
	}
	return b.cells[i]
}

func setCell(el web.Element, c core.Cell) error {
	el.SetInnerHTML(html.EscapeString(c.Symbol))
	return el.SetAttribute("style", CellCSS(c))
}

// Draw implements backend.Backend.
func (b *Backend) Draw(changes []backend.Change) error {
	if !b.initialized {
		if err := b.initialize(); err != nil {
			return err
		}
	}

	for _, ch := range changes {
		el := b.element(ch.X, ch.Y)
		if el == nil {
			continue
		}
		if err := setCell(el, ch.Cell); err != nil {
			return fmt.Errorf("draw cell %d,%d: %w", ch.X, ch.Y, err)
		}

		// A full-width glyph covers the next element.
		if len(ch.Cell.Symbol) > 1 && ch.Cell.Width() == 2 {
			if next := b.element(ch.X+1, ch.Y); next != nil {
				if err := setCell(next, core.ContinuationCell()); err != nil {
					return fmt.Errorf("draw cell %d,%d: %w", ch.X+1, ch.Y, err)
				}
			}
		}
	}
	return nil
}

// Flush implements backend.Backend. Draw already updated the page.
func (b *Backend) Flush() error {
	return nil
}

// HideCursor implements backend.Backend.
func (b *Backend) HideCursor() error {
	if b.cursor == nil {
		return nil
	}
	if el := b.element(b.cursor.X, b.cursor.Y); el != nil {
		return web.ClearStyle(el, backend.CursorCSSField)
	}
	return nil
}

// ShowCursor implements backend.Backend.
func (b *Backend) ShowCursor() error {
	if b.lastCursor != nil {
		if el := b.element(b.lastCursor.X, b.lastCursor.Y); el != nil {
			if err := web.ClearStyle(el, backend.CursorCSSField); err != nil {
				return err
			}
		}
	}
	if b.cursor == nil {
		return nil
	}
	el := b.element(b.cursor.X, b.cursor.Y)
	if el == nil {
		return nil
	}
	if value, ok := b.opts.CursorShape.CSSValue(); ok {
		return web.UpdateStyle(el, backend.CursorCSSField, value)
	}
	return web.ClearStyle(el, backend.CursorCSSField)
}

// SetCursorPosition implements backend.Backend.
func (b *Backend) SetCursorPosition(pos core.Position) error {
	b.lastCursor = b.cursor
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
	blank := core.EmptyCell()
	for i, el := range b.cells {
		if err := setCell(el, blank); err != nil {
			return fmt.Errorf("clear cell %d: %w", i, err)
		}
	}
	return nil
}

// Size implements backend.Backend.
func (b *Backend) Size() core.Size {
	return core.Size{
		Width:  max(b.size.Width-1, 0),
		Height: max(b.size.Height-1, 0),
	}
}

// OnMouseEvent implements backend.MouseEventHandler. Listeners sit on the
// parent element, which survives grid rebuilds.
func (b *Backend) OnMouseEvent(fn func(event.MouseEvent)) error {
	b.handlers.OnMouse(b.parent, b.mouseConfig, fn)
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

// Close removes every listener and the grid element.
func (b *Backend) Close() {
	b.resize.Release()
	b.handlers.Release()
	b.grid.Remove()
	b.log.Debug("dom backend closed")
}

func (b *Backend) mouseConfig() pointer.MouseConfig {
	return pointer.NewMouseConfig(b.size.Width, b.size.Height)
}
