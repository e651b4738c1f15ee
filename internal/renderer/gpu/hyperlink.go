package gpu

import (
	"strings"

	"github.com/dshills/webterm/internal/renderer/core"
	"github.com/dshills/webterm/internal/renderer/dirty"
	"github.com/dshills/webterm/internal/renderer/event"
	"github.com/dshills/webterm/internal/renderer/pointer"
	"github.com/dshills/webterm/internal/web"
)

// hyperlinks tracks which cells carry hyperlink content and handles
// clicks and hover for them.
//
// The mouse listener only records the latest click and hover position;
// both are resolved during Flush, against the cells of the frame being
// presented.
type hyperlinks struct {
	b     *Backend
	cells *dirty.CellSet

	click *core.Position
	hover *core.Position
	over  bool

	listener *web.EventCallback
}

func newHyperlinks(b *Backend) *hyperlinks {
	cols, rows := b.r.TerminalSize()
	h := &hyperlinks{
		b:     b,
		cells: dirty.NewCellSet(cols, rows),
	}
	canvas := b.r.Canvas()
	h.listener = web.NewEventCallback(canvas, event.MouseEventTypes, func(ev web.Event) {
		h.record(pointer.MouseEvent(ev, canvas.BoundingClientRect(), b.mouseConfig()))
	})
	return h
}

func (h *hyperlinks) mark(col, row int, c core.Cell) {
	h.cells.Set(col, row, c.Style.Attributes.Has(core.AttrHyperlink))
}

func (h *hyperlinks) record(ev event.MouseEvent) {
	pos := core.NewPosition(ev.Col, ev.Row)
	switch {
	case ev.Kind == event.MouseButtonUp && ev.Button == event.ButtonLeft:
		h.click = &pos
	case ev.Kind == event.MouseMoved:
		h.hover = &pos
	}
}

// process dispatches a pending click and updates the hover cursor. The
// hover position is kept so content changing under a still pointer is
// picked up by later flushes.
func (h *hyperlinks) process() {
	if h.click != nil {
		pos := *h.click
		h.click = nil
		if url, ok := h.textAt(pos); ok {
			h.b.log.Debug("hyperlink clicked", "url", url, "col", pos.X, "row", pos.Y)
			h.b.opts.OnHyperlinkClick(url)
		}
	}

	if h.hover != nil {
		over := h.cells.Test(h.hover.X, h.hover.Y)
		if over != h.over {
			h.over = over
			h.setPointer(over)
		}
	}
}

// textAt returns the text of the hyperlink span containing pos.
func (h *hyperlinks) textAt(pos core.Position) (string, bool) {
	start, end, ok := h.cells.Span(pos.X, pos.Y)
	if !ok {
		return "", false
	}
	text := strings.TrimSpace(h.b.r.Text(pos.Y, start, end))
	return text, text != ""
}

func (h *hyperlinks) setPointer(on bool) {
	value := "default"
	if on {
		value = "pointer"
	}
	if err := web.UpdateStyle(h.b.r.Canvas(), "cursor", value); err != nil {
		h.b.log.Debug("update canvas cursor failed", "error", err)
	}
}

// reset follows a canvas resize. Hover always restarts since pixel
// positions moved. The flags and a pending click only go when the grid
// dimensions changed; otherwise no full redraw follows to mark them again.
func (h *hyperlinks) reset(cols, rows int) {
	if h.over {
		h.setPointer(false)
	}
	h.hover = nil
	h.over = false

	if cols == h.cells.Width() && rows == h.cells.Height() {
		return
	}
	h.cells.Resize(cols, rows)
	h.click = nil
}

func (h *hyperlinks) close() {
	h.listener.Release()
}
