package canvas

import (
	"errors"
	"testing"

	"github.com/dshills/webterm/internal/renderer/backend"
	"github.com/dshills/webterm/internal/renderer/core"
	"github.com/dshills/webterm/internal/renderer/event"
	"github.com/dshills/webterm/internal/web"
	"github.com/dshills/webterm/internal/web/webtest"
)

// newTestBackend creates a 10x3 cell canvas (100x57 px) in a fake body.
func newTestBackend(t *testing.T, mutate func(*Options)) (*Backend, *webtest.Window, *webtest.Context2D) {
	t.Helper()
	win := webtest.NewWindow(1024, 768)
	win.Doc.BodyEl.Width = 100
	win.Doc.BodyEl.Height = 57

	opts := DefaultOptions()
	if mutate != nil {
		mutate(&opts)
	}
	b, err := New(win, opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ctx := win.Doc.Created[0].(*webtest.Canvas).Ctx
	return b, win, ctx
}

func styled(symbol string, style core.Style) core.Cell {
	return core.NewStyledCell(symbol, style)
}

func TestNew(t *testing.T) {
	b, win, ctx := newTestBackend(t, func(o *Options) { o.Scale = 2 })

	canvas := win.Doc.Created[0].(*webtest.Canvas)
	if canvas.Parent != win.Doc.BodyEl {
		t.Error("canvas should be appended to the body")
	}
	if canvas.InnerWidth != 200 || canvas.InnerHeight != 114 {
		t.Errorf("backing size = %dx%d, want 200x114", canvas.InnerWidth, canvas.InnerHeight)
	}
	if got := canvas.Style(); got != "width: 100px; height: 57px;" {
		t.Errorf("style = %q", got)
	}
	if !canvas.Options.Alpha || !canvas.Options.Desynchronized {
		t.Errorf("context options = %+v, want alpha and desynchronized", canvas.Options)
	}

	names := ctx.Names()
	want := []string{"SetFont", "SetTextBaseline", "Scale"}
	if len(names) != len(want) {
		t.Fatalf("setup calls = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("setup call %d = %s, want %s", i, names[i], want[i])
		}
	}
	if ctx.Calls[0].Args[0] != Font || ctx.Calls[1].Args[0] != "top" {
		t.Errorf("font setup = %v", ctx.Calls[:2])
	}

	if got := b.Size(); got != (core.Size{Width: 9, Height: 2}) {
		t.Errorf("Size() = %+v, want 9x2", got)
	}
}

func TestNewErrors(t *testing.T) {
	t.Run("invalid scale", func(t *testing.T) {
		win := webtest.NewWindow(100, 100)
		opts := DefaultOptions()
		opts.Scale = 0
		_, err := New(win, opts)
		if !errors.Is(err, backend.ErrInvalidScale) {
			t.Errorf("err = %v, want ErrInvalidScale", err)
		}
		if len(win.Doc.Created) != 0 {
			t.Error("no canvas should be created for an invalid scale")
		}
	})

	t.Run("no window", func(t *testing.T) {
		if _, err := New(nil, DefaultOptions()); !errors.Is(err, backend.ErrNoWindow) {
			t.Errorf("err = %v, want ErrNoWindow", err)
		}
	})

	t.Run("missing element", func(t *testing.T) {
		opts := DefaultOptions()
		opts.GridID = "nope"
		_, err := New(webtest.NewWindow(100, 100), opts)
		if !errors.Is(err, backend.ErrElementNotFound) {
			t.Errorf("err = %v, want ErrElementNotFound", err)
		}
	})

	t.Run("no context", func(t *testing.T) {
		win := webtest.NewWindow(100, 100)
		win.Doc.ContextErr = errors.New("unsupported")
		_, err := New(win, DefaultOptions())
		if !errors.Is(err, backend.ErrNoCanvasContext) {
			t.Errorf("err = %v, want ErrNoCanvasContext", err)
		}
	})
}

func TestFirstFlushRedrawsEverything(t *testing.T) {
	b, _, ctx := newTestBackend(t, nil)
	ctx.Reset()

	if err := b.Flush(); err != nil {
		t.Fatal(err)
	}

	if ctx.Count("ClearRect") != 1 {
		t.Errorf("ClearRect calls = %d, want 1", ctx.Count("ClearRect"))
	}
	translates := ctx.Named("Translate")
	if len(translates) != 2 || translates[0].Args[0] != Margin || translates[1].Args[0] != -Margin {
		t.Errorf("translates = %v, want +5 then -5", translates)
	}
	// One full-width blank region per row.
	if got := ctx.Count("FillRect"); got != 3 {
		t.Errorf("FillRect calls = %d, want 3", got)
	}
	if ctx.Count("FillText") != 0 {
		t.Error("blank cells should not paint text")
	}
}

func TestUnchangedFlushIsSilent(t *testing.T) {
	b, _, ctx := newTestBackend(t, nil)
	if err := b.Flush(); err != nil {
		t.Fatal(err)
	}
	ctx.Reset()

	if err := b.Draw(nil); err != nil {
		t.Fatal(err)
	}
	if err := b.Flush(); err != nil {
		t.Fatal(err)
	}
	if err := b.Flush(); err != nil {
		t.Fatal(err)
	}
	if len(ctx.Calls) != 0 {
		t.Errorf("unchanged flush made %d calls: %v", len(ctx.Calls), ctx.Calls)
	}
}

func TestIncrementalPaint(t *testing.T) {
	b, _, ctx := newTestBackend(t, nil)
	if err := b.Flush(); err != nil {
		t.Fatal(err)
	}
	ctx.Reset()

	red := core.DefaultStyle().WithForeground(core.ColorRed).WithBackground(core.ColorBlue)
	err := b.Draw([]backend.Change{
		{X: 1, Y: 0, Cell: styled("a", red)},
		{X: 2, Y: 0, Cell: styled("b", red)},
		{X: 3, Y: 0, Cell: styled(" ", red)},
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := b.Flush(); err != nil {
		t.Fatal(err)
	}

	if ctx.Count("ClearRect") != 0 {
		t.Error("incremental flush should not clear the canvas")
	}

	rects := ctx.Named("FillRect")
	if len(rects) != 1 {
		t.Fatalf("FillRect calls = %v, want one merged region", rects)
	}
	if rects[0].Args[0] != 10.0 || rects[0].Args[1] != 0.0 || rects[0].Args[2] != 30.0 || rects[0].Args[3] != CellHeight {
		t.Errorf("region = %v, want x=10 w=30", rects[0].Args)
	}

	texts := ctx.Named("FillText")
	if len(texts) != 2 {
		t.Fatalf("FillText calls = %v, want a and b", texts)
	}
	if texts[0].Args[0] != "a" || texts[0].Args[1] != 10.0 || texts[1].Args[0] != "b" || texts[1].Args[1] != 20.0 {
		t.Errorf("texts = %v", texts)
	}

	fills := ctx.Named("SetFillStyle")
	if len(fills) != 2 || fills[0].Args[0] != "#0000ff" || fills[1].Args[0] != "#ff0000" {
		t.Errorf("fill styles = %v, want background once then cached foreground once", fills)
	}
	if ctx.Count("Clip") != 0 {
		t.Error("ASCII glyphs should not be clipped")
	}
}

func TestNonASCIIGlyphsAreClipped(t *testing.T) {
	b, _, ctx := newTestBackend(t, nil)
	if err := b.Flush(); err != nil {
		t.Fatal(err)
	}
	ctx.Reset()

	b.Draw([]backend.Change{
		{X: 0, Y: 1, Cell: core.NewCell("é")},
		{X: 1, Y: 1, Cell: core.NewCell("x")},
	})
	if err := b.Flush(); err != nil {
		t.Fatal(err)
	}

	if ctx.Count("Clip") != 1 {
		t.Errorf("Clip calls = %d, want 1", ctx.Count("Clip"))
	}
	rect := ctx.Named("Rect")[0]
	if rect.Args[0] != 0.0 || rect.Args[1] != CellHeight || rect.Args[2] != CellWidth || rect.Args[3] != CellHeight {
		t.Errorf("clip rect = %v, want cell (0,1)", rect.Args)
	}
	// The clip drops the color cache, so the next glyph sets it again.
	if got := ctx.Count("SetFillStyle"); got != 3 {
		t.Errorf("SetFillStyle calls = %d, want 3", got)
	}
}

func TestAlwaysClipCells(t *testing.T) {
	b, _, ctx := newTestBackend(t, func(o *Options) { o.AlwaysClipCells = true })
	b.Draw([]backend.Change{
		{X: 0, Y: 0, Cell: core.NewCell("a")},
		{X: 1, Y: 0, Cell: core.NewCell("b")},
	})
	ctx.Reset()
	if err := b.Flush(); err != nil {
		t.Fatal(err)
	}
	if ctx.Count("Clip") != 2 {
		t.Errorf("Clip calls = %d, want 2", ctx.Count("Clip"))
	}
}

func TestBlockCursor(t *testing.T) {
	b, _, ctx := newTestBackend(t, nil)
	b.Draw([]backend.Change{{X: 2, Y: 1, Cell: core.NewCell("x")}})
	if err := b.SetCursorPosition(core.NewPosition(2, 1)); err != nil {
		t.Fatal(err)
	}
	if err := b.Flush(); err != nil {
		t.Fatal(err)
	}

	if b.grid.At(2, 1).Style.Attributes.Has(core.AttrReverse) {
		t.Error("stored grid must not keep the cursor decoration")
	}
	if !b.prev.At(2, 1).Style.Attributes.Has(core.AttrReverse) {
		t.Error("previous grid should record the painted cursor")
	}
	if got := b.CursorPosition(); got != core.NewPosition(2, 1) {
		t.Errorf("CursorPosition() = %v, want (2,1)", got)
	}

	// Moving the cursor repaints the old and the new cell.
	ctx.Reset()
	b.SetCursorPosition(core.NewPosition(3, 1))
	if err := b.Flush(); err != nil {
		t.Fatal(err)
	}
	if got := b.dirty.Count(); got != 2 {
		t.Errorf("dirty cells after move = %d, want 2", got)
	}
	fills := ctx.Named("SetFillStyle")
	if len(fills) == 0 || fills[0].Args[0] != "#000000" {
		t.Errorf("first fill = %v, want old cell back to black", fills)
	}

	// Hiding repaints the decorated cell.
	ctx.Reset()
	b.HideCursor()
	if err := b.Flush(); err != nil {
		t.Fatal(err)
	}
	if got := b.dirty.Count(); got != 1 {
		t.Errorf("dirty cells after hide = %d, want 1", got)
	}
	if got := b.CursorPosition(); got != (core.Position{}) {
		t.Errorf("CursorPosition() after hide = %v, want origin", got)
	}
}

func TestUnderscoreCursor(t *testing.T) {
	b, _, ctx := newTestBackend(t, func(o *Options) { o.CursorShape = backend.CursorSteadyUnderScore })
	b.SetCursorPosition(core.NewPosition(1, 1))
	if err := b.Flush(); err != nil {
		t.Fatal(err)
	}

	var found bool
	for _, call := range ctx.Named("FillText") {
		if call.Args[0] == "_" && call.Args[1] == CellWidth && call.Args[2] == CellHeight {
			found = true
		}
	}
	if !found {
		t.Errorf("no underscore drawn at (1,1): %v", ctx.Named("FillText"))
	}
}

func TestDebugMode(t *testing.T) {
	b, _, ctx := newTestBackend(t, func(o *Options) { o.DebugColor = "#666" })
	for i := 0; i < 2; i++ {
		ctx.Reset()
		if err := b.Flush(); err != nil {
			t.Fatal(err)
		}
		if ctx.Count("ClearRect") != 1 {
			t.Errorf("flush %d: ClearRect calls = %d, want 1", i, ctx.Count("ClearRect"))
		}
		if got := ctx.Count("StrokeRect"); got != 30 {
			t.Errorf("flush %d: StrokeRect calls = %d, want 30", i, got)
		}
	}
	if ctx.Named("SetStrokeStyle")[0].Args[0] != "#666" {
		t.Error("debug outline should use the configured color")
	}
}

func TestClear(t *testing.T) {
	b, _, _ := newTestBackend(t, nil)
	b.Draw([]backend.Change{{X: 0, Y: 0, Cell: core.NewCell("q")}})
	b.Flush()

	if err := b.Clear(); err != nil {
		t.Fatal(err)
	}
	if b.grid.At(0, 0) != core.EmptyCell() {
		t.Error("Clear should blank the grid")
	}
	b.Flush()
	if !b.prev.Equal(b.grid) {
		t.Error("flush after Clear should repaint the blanked cells")
	}
}

func TestMouseEvents(t *testing.T) {
	b, win, _ := newTestBackend(t, nil)
	canvas := win.Doc.Created[0].(*webtest.Canvas)
	canvas.Rect = web.Rect{Width: 110, Height: 67}

	var got []event.MouseEvent
	b.OnMouseEvent(func(ev event.MouseEvent) { got = append(got, ev) })
	b.OnMouseEvent(func(ev event.MouseEvent) { got = append(got, ev) })
	if n := canvas.TotalListeners(); n != len(event.MouseEventTypes) {
		t.Fatalf("listeners = %d, want %d", n, len(event.MouseEventTypes))
	}

	canvas.Dispatch(web.Event{Type: "mouseup", ClientX: 36, ClientY: 30, Button: 0})
	if len(got) != 1 {
		t.Fatalf("events = %v, want one", got)
	}
	want := event.MouseEvent{Kind: event.MouseButtonUp, Button: event.ButtonLeft, Col: 3, Row: 1}
	if got[0] != want {
		t.Errorf("event = %+v, want %+v", got[0], want)
	}

	var keys []event.KeyEvent
	b.OnKeyEvent(func(ev event.KeyEvent) { keys = append(keys, ev) })
	win.Doc.Dispatch(web.Event{Type: "keydown", Key: "Enter"})
	if len(keys) != 1 || keys[0].Code != event.Special(event.KeyEnter) {
		t.Errorf("keys = %v, want Enter", keys)
	}

	b.Close()
	if canvas.TotalListeners() != 0 || win.Doc.TotalListeners() != 0 {
		t.Error("Close should remove every listener")
	}
	if len(win.Doc.BodyEl.Children) != 0 {
		t.Error("Close should detach the canvas")
	}
}
