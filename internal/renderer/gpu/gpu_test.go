package gpu

import (
	"errors"
	"strings"
	"testing"

	"github.com/dshills/webterm/internal/renderer/backend"
	"github.com/dshills/webterm/internal/renderer/core"
	"github.com/dshills/webterm/internal/renderer/event"
	"github.com/dshills/webterm/internal/web"
	"github.com/dshills/webterm/internal/web/webtest"
)

// fakeRenderer lays out 10x20 px cells on its canvas.
type fakeRenderer struct {
	cols, rows int
	cells      []CellData
	canvas     *webtest.Element
	canvasW    int
	canvasH    int

	updates   [][]PositionedCell
	fills     []CellData
	frames    int
	resizes   [][2]int
	renderErr error
	onRender  func()
}

func newFakeRenderer(width, height int) *fakeRenderer {
	canvas := webtest.NewElement("canvas")
	canvas.Width, canvas.Height = width, height
	canvas.Rect = web.Rect{Width: float64(width), Height: float64(height)}
	r := &fakeRenderer{canvas: canvas}
	r.layout(width, height)
	return r
}

// layout keeps the cell contents when the grid dimensions do not change.
func (r *fakeRenderer) layout(width, height int) {
	r.canvasW, r.canvasH = width, height
	cols, rows := width/10, height/20
	if r.cells != nil && cols == r.cols && rows == r.rows {
		return
	}
	r.cols, r.rows = cols, rows
	r.cells = make([]CellData, r.cols*r.rows)
	for i := range r.cells {
		r.cells[i] = BlankCell
	}
}

func (r *fakeRenderer) UpdateCells(cells []PositionedCell) error {
	r.updates = append(r.updates, cells)
	for _, c := range cells {
		if p := r.CellData(c.Col, c.Row); p != nil {
			*p = c.Data
		}
	}
	return nil
}

func (r *fakeRenderer) Fill(cell CellData) error {
	r.fills = append(r.fills, cell)
	for i := range r.cells {
		r.cells[i] = cell
	}
	return nil
}

func (r *fakeRenderer) CellData(col, row int) *CellData {
	if col < 0 || col >= r.cols || row < 0 || row >= r.rows {
		return nil
	}
	return &r.cells[row*r.cols+col]
}

func (r *fakeRenderer) RenderFrame() error {
	r.frames++
	if r.onRender != nil {
		r.onRender()
	}
	return r.renderErr
}

func (r *fakeRenderer) Resize(width, height int) error {
	r.resizes = append(r.resizes, [2]int{width, height})
	r.layout(width, height)
	return nil
}

func (r *fakeRenderer) CanvasSize() (int, int)       { return r.canvasW, r.canvasH }
func (r *fakeRenderer) TerminalSize() (int, int)     { return r.cols, r.rows }
func (r *fakeRenderer) CellSize() (float64, float64) { return 10, 20 }
func (r *fakeRenderer) Canvas() web.Element          { return r.canvas }

func (r *fakeRenderer) Text(row, start, end int) string {
	var sb strings.Builder
	for col := start; col <= end; col++ {
		if c := r.CellData(col, row); c != nil {
			sb.WriteString(c.Symbol)
		}
	}
	return sb.String()
}

func newTestBackend(t *testing.T, mutate func(*Options)) (*Backend, *fakeRenderer) {
	t.Helper()
	r := newFakeRenderer(80, 80) // 8x4 cells
	opts := DefaultOptions()
	if mutate != nil {
		mutate(&opts)
	}
	b, err := New(r, nil, opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return b, r
}

func TestPackStyle(t *testing.T) {
	tests := []struct {
		name string
		attr core.Attribute
		want uint16
	}{
		{"none", core.AttrNone, 0},
		{"bold", core.AttrBold, StyleBold},
		{"italic", core.AttrItalic, StyleItalic},
		{"bold italic", core.AttrBold | core.AttrItalic, StyleBold | StyleItalic},
		{"underline", core.AttrUnderline, EffectUnderline},
		{"strikethrough", core.AttrStrikethrough, EffectStrikethrough},
		{"ignored", core.AttrDim | core.AttrReverse | core.AttrHyperlink | core.AttrBlink, 0},
		{
			"all",
			core.AttrBold | core.AttrItalic | core.AttrUnderline | core.AttrStrikethrough,
			StyleBold | StyleItalic | EffectUnderline | EffectStrikethrough,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PackStyle(tt.attr); got != tt.want {
				t.Errorf("PackStyle(%b) = %b, want %b", tt.attr, got, tt.want)
			}
		})
	}
}

func TestCellDataFor(t *testing.T) {
	tests := []struct {
		name   string
		style  core.Style
		fg, bg uint32
	}{
		{"default", core.DefaultStyle(), 0xffffff, 0x000000},
		{"colors", core.DefaultStyle().WithForeground(core.ColorRed).WithBackground(core.ColorBlue), 0xff0000, 0x0000ff},
		{"reverse", core.NewStyle(core.ColorGreen).Reverse(), 0x000000, 0x00ff00},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CellDataFor(core.NewStyledCell("x", tt.style))
			if got.Fg != tt.fg || got.Bg != tt.bg || got.Symbol != "x" {
				t.Errorf("CellDataFor() = %+v, want fg %06x bg %06x", got, tt.fg, tt.bg)
			}
		})
	}
}

func TestDraw(t *testing.T) {
	b, r := newTestBackend(t, nil)

	if err := b.Draw(nil); err != nil {
		t.Fatal(err)
	}
	if len(r.updates) != 0 {
		t.Errorf("empty draw uploaded %d batches, want 0", len(r.updates))
	}

	bold := core.DefaultStyle().Bold()
	err := b.Draw([]backend.Change{
		{X: 1, Y: 2, Cell: core.NewStyledCell("a", bold)},
		{X: 2, Y: 2, Cell: core.NewCell("b")},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(r.updates) != 1 || len(r.updates[0]) != 2 {
		t.Fatalf("updates = %v, want one batch of two", r.updates)
	}
	if got := r.updates[0][0]; got.Col != 1 || got.Row != 2 || got.Data.Style != StyleBold {
		t.Errorf("first cell = %+v", got)
	}
}

func TestDrawWithSelectionAlwaysSyncs(t *testing.T) {
	b, r := newTestBackend(t, func(o *Options) { o.SelectionMode = SelectionLinear })
	if err := b.Draw(nil); err != nil {
		t.Fatal(err)
	}
	if len(r.updates) != 1 {
		t.Errorf("updates = %d, want 1", len(r.updates))
	}
}

func TestCursorToggle(t *testing.T) {
	tests := []struct {
		name   string
		shape  backend.CursorShape
		cell   core.Cell
		during func(before CellData) CellData
	}{
		{
			"block",
			backend.CursorSteadyBlock,
			core.NewStyledCell("x", core.NewStyle(core.ColorRed)),
			func(c CellData) CellData { c.Fg, c.Bg = c.Bg, c.Fg; return c },
		},
		{
			"underscore adds",
			backend.CursorSteadyUnderScore,
			core.NewCell("x"),
			func(c CellData) CellData { c.Style |= EffectUnderline; return c },
		},
		{
			"underscore removes",
			backend.CursorSteadyUnderScore,
			core.NewStyledCell("x", core.DefaultStyle().Underline()),
			func(c CellData) CellData { c.Style &^= EffectUnderline; return c },
		},
		{
			"none",
			backend.CursorNone,
			core.NewCell("x"),
			func(c CellData) CellData { return c },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, r := newTestBackend(t, func(o *Options) { o.CursorShape = tt.shape })
			b.Draw([]backend.Change{{X: 3, Y: 1, Cell: tt.cell}})
			b.SetCursorPosition(core.NewPosition(3, 1))

			before := *r.CellData(3, 1)
			var seen CellData
			r.onRender = func() { seen = *r.CellData(3, 1) }

			if err := b.Flush(); err != nil {
				t.Fatal(err)
			}
			if want := tt.during(before); seen != want {
				t.Errorf("cell during render = %+v, want %+v", seen, want)
			}
			if got := *r.CellData(3, 1); got != before {
				t.Errorf("cell after render = %+v, want %+v", got, before)
			}
		})
	}
}

func TestCursorRevertedOnRenderError(t *testing.T) {
	b, r := newTestBackend(t, nil)
	b.Draw([]backend.Change{{X: 0, Y: 0, Cell: core.NewStyledCell("e", core.NewStyle(core.ColorYellow))}})
	b.SetCursorPosition(core.NewPosition(0, 0))
	before := *r.CellData(0, 0)

	r.renderErr = errors.New("context lost")
	err := b.Flush()

	var rerr *backend.RendererError
	if !errors.As(err, &rerr) || rerr.Op != "render frame" {
		t.Fatalf("Flush() error = %v, want RendererError", err)
	}
	if got := *r.CellData(0, 0); got != before {
		t.Errorf("cell after failed render = %+v, want %+v", got, before)
	}
}

func TestCursorHidden(t *testing.T) {
	b, r := newTestBackend(t, nil)
	b.SetCursorPosition(core.NewPosition(1, 1))
	b.HideCursor()

	before := *r.CellData(1, 1)
	r.onRender = func() {
		if got := *r.CellData(1, 1); got != before {
			t.Errorf("hidden cursor modified cell: %+v", got)
		}
	}
	b.Flush()
	if got := b.CursorPosition(); got != (core.Position{}) {
		t.Errorf("CursorPosition() = %v, want origin", got)
	}
}

func TestPerformanceMarks(t *testing.T) {
	if _, err := New(newFakeRenderer(80, 80), nil, Options{MeasurePerformance: true}); !errors.Is(err, backend.ErrNoPerformance) {
		t.Errorf("New() without performance: err = %v, want ErrNoPerformance", err)
	}

	perf := &webtest.Performance{}
	r := newFakeRenderer(80, 80)
	b, err := New(r, perf, Options{MeasurePerformance: true})
	if err != nil {
		t.Fatal(err)
	}
	b.Draw([]backend.Change{{X: 0, Y: 0, Cell: core.NewCell("p")}})
	b.Flush()

	wantMarks := []string{MarkSyncBuffer, MarkRender}
	wantMeasures := []string{MarkSyncBuffer + "<" + MarkSyncBuffer, MarkRender + "<" + MarkRender}
	if strings.Join(perf.Marks, ",") != strings.Join(wantMarks, ",") {
		t.Errorf("marks = %v, want %v", perf.Marks, wantMarks)
	}
	if strings.Join(perf.Measures, ",") != strings.Join(wantMeasures, ",") {
		t.Errorf("measures = %v, want %v", perf.Measures, wantMeasures)
	}

	// Disabled measurement ignores a supplied recorder.
	quiet := &webtest.Performance{}
	b, _ = New(newFakeRenderer(80, 80), quiet, DefaultOptions())
	b.Flush()
	if len(quiet.Marks) != 0 {
		t.Errorf("marks = %v, want none", quiet.Marks)
	}
}

func linkCells(text string) []backend.Change {
	var changes []backend.Change
	for i, r := range text {
		style := core.DefaultStyle()
		if r != ' ' {
			style = style.Hyperlink()
		}
		changes = append(changes, backend.Change{X: i, Y: 0, Cell: core.NewStyledCell(string(r), style)})
	}
	return changes
}

func TestHyperlinkClick(t *testing.T) {
	var clicked []string
	b, r := newTestBackend(t, func(o *Options) {
		o.OnHyperlinkClick = func(url string) { clicked = append(clicked, url) }
	})
	b.Draw(linkCells(" abc  x"))

	// Column 2, row 0.
	r.canvas.Dispatch(web.Event{Type: "mouseup", ClientX: 25, ClientY: 5, Button: 0})
	if len(clicked) != 0 {
		t.Fatal("click must be deferred to the next flush")
	}
	b.Flush()
	if len(clicked) != 1 || clicked[0] != "abc" {
		t.Fatalf("clicked = %v, want [abc]", clicked)
	}

	// Consumed: a second flush does not repeat it.
	b.Flush()
	if len(clicked) != 1 {
		t.Errorf("clicked = %v, want one dispatch", clicked)
	}

	// Secondary button, or a cell outside any span, does nothing.
	r.canvas.Dispatch(web.Event{Type: "mouseup", ClientX: 25, ClientY: 5, Button: 2})
	b.Flush()
	r.canvas.Dispatch(web.Event{Type: "mouseup", ClientX: 45, ClientY: 5, Button: 0})
	b.Flush()
	if len(clicked) != 1 {
		t.Errorf("clicked = %v, want no further dispatch", clicked)
	}

	// Overwriting the span clears its flags.
	b.Draw([]backend.Change{{X: 6, Y: 0, Cell: core.NewCell("x")}})
	r.canvas.Dispatch(web.Event{Type: "mouseup", ClientX: 65, ClientY: 5, Button: 0})
	b.Flush()
	if len(clicked) != 1 {
		t.Errorf("clicked = %v after the link was overwritten", clicked)
	}
}

func TestHyperlinkHover(t *testing.T) {
	b, r := newTestBackend(t, func(o *Options) { o.OnHyperlinkClick = func(string) {} })
	b.Draw(linkCells(" abc"))

	r.canvas.Dispatch(web.Event{Type: "mousemove", ClientX: 15, ClientY: 5})
	b.Flush()
	if got := r.canvas.Style(); got != "cursor: pointer" {
		t.Fatalf("style = %q, want pointer", got)
	}

	// No transition: the style is not rewritten.
	r.canvas.Attrs["style"] = "marker"
	r.canvas.Dispatch(web.Event{Type: "mousemove", ClientX: 35, ClientY: 5})
	b.Flush()
	if got := r.canvas.Style(); got != "marker" {
		t.Errorf("style = %q, want untouched", got)
	}

	r.canvas.Dispatch(web.Event{Type: "mousemove", ClientX: 55, ClientY: 45})
	b.Flush()
	if got := r.canvas.Style(); got != "marker; cursor: default" {
		t.Errorf("style = %q, want default appended", got)
	}
}

func TestResizeResetsHyperlinks(t *testing.T) {
	var clicked []string
	b, r := newTestBackend(t, func(o *Options) {
		o.OnHyperlinkClick = func(url string) { clicked = append(clicked, url) }
	})
	b.Draw(linkCells("ab"))
	r.canvas.Dispatch(web.Event{Type: "mousemove", ClientX: 5, ClientY: 5})
	b.Flush()

	r.canvas.Width, r.canvas.Height = 120, 100
	if err := b.Flush(); err != nil {
		t.Fatal(err)
	}

	if len(r.resizes) != 1 || r.resizes[0] != [2]int{120, 100} {
		t.Errorf("resizes = %v, want [[120 100]]", r.resizes)
	}
	if got := b.Size(); got != (core.Size{Width: 12, Height: 5}) {
		t.Errorf("Size() = %+v, want 12x5", got)
	}
	if b.links.cells.Width() != 12 || b.links.cells.Height() != 5 || b.links.cells.Count() != 0 {
		t.Errorf("hyperlink set = %dx%d with %d flags, want empty 12x5",
			b.links.cells.Width(), b.links.cells.Height(), b.links.cells.Count())
	}
	if b.links.over || b.links.hover != nil {
		t.Error("hover state should be reset")
	}

	// The flags went with the old layout.
	r.canvas.Dispatch(web.Event{Type: "mouseup", ClientX: 5, ClientY: 5})
	b.Flush()
	if len(clicked) != 0 {
		t.Errorf("clicked = %v, want none", clicked)
	}

	// Same size again: no resize.
	b.Flush()
	if len(r.resizes) != 1 {
		t.Errorf("resizes = %d, want 1", len(r.resizes))
	}
}

func TestResizeKeepsHyperlinksOnSameGrid(t *testing.T) {
	var clicked []string
	b, r := newTestBackend(t, func(o *Options) {
		o.OnHyperlinkClick = func(url string) { clicked = append(clicked, url) }
	})
	b.Draw(linkCells("abc"))
	r.canvas.Dispatch(web.Event{Type: "mousemove", ClientX: 15, ClientY: 5})
	b.Flush()

	// Less than a cell wider: the renderer resizes, the grid does not.
	r.canvas.Width = 85
	if err := b.Flush(); err != nil {
		t.Fatal(err)
	}
	if len(r.resizes) != 1 {
		t.Fatalf("resizes = %v, want one", r.resizes)
	}
	if got := b.Size(); got != (core.Size{Width: 8, Height: 4}) {
		t.Errorf("Size() = %+v, want 8x4", got)
	}
	if got := b.links.cells.Count(); got != 3 {
		t.Errorf("hyperlink flags = %d, want 3 kept", got)
	}
	if b.links.over || b.links.hover != nil {
		t.Error("hover state should be reset")
	}

	r.canvas.Dispatch(web.Event{Type: "mouseup", ClientX: 15, ClientY: 5})
	b.Flush()
	if len(clicked) != 1 || clicked[0] != "abc" {
		t.Errorf("clicked = %v, want [abc]", clicked)
	}
}

func TestClearAndSize(t *testing.T) {
	b, r := newTestBackend(t, nil)
	if err := b.Clear(); err != nil {
		t.Fatal(err)
	}
	if len(r.fills) != 1 || r.fills[0] != BlankCell {
		t.Errorf("fills = %v, want one blank fill", r.fills)
	}
	if got := b.Size(); got != (core.Size{Width: 8, Height: 4}) {
		t.Errorf("Size() = %+v, want 8x4", got)
	}
}

func TestEvents(t *testing.T) {
	b, r := newTestBackend(t, func(o *Options) { o.OnHyperlinkClick = func(string) {} })
	linkListeners := r.canvas.TotalListeners()

	var got []event.MouseEvent
	b.OnMouseEvent(func(ev event.MouseEvent) { got = append(got, ev) })
	b.OnMouseEvent(func(ev event.MouseEvent) { got = append(got, ev) })
	if n := r.canvas.TotalListeners() - linkListeners; n != len(event.MouseEventTypes) {
		t.Errorf("user listeners = %d, want %d", n, len(event.MouseEventTypes))
	}

	r.canvas.Dispatch(web.Event{Type: "mousedown", ClientX: 75, ClientY: 79, Button: 1})
	r.canvas.Dispatch(web.Event{Type: "click", ClientX: 75, ClientY: 79})
	want := event.MouseEvent{Kind: event.MouseButtonDown, Button: event.ButtonMiddle, Col: 7, Row: 3}
	if len(got) != 1 || got[0] != want {
		t.Errorf("events = %+v, want [%+v]", got, want)
	}

	if err := b.OnKeyEvent(func(event.KeyEvent) {}); err != nil {
		t.Errorf("OnKeyEvent() error = %v, want nil", err)
	}
	b.ClearKeyEvents()

	b.Close()
	if n := r.canvas.TotalListeners(); n != 0 {
		t.Errorf("listeners after Close = %d, want 0", n)
	}
}

func TestNewFromWindow(t *testing.T) {
	win := webtest.NewWindow(1024, 768)
	win.Doc.BodyEl.Width, win.Doc.BodyEl.Height = 160, 80

	var gotCfg BuildConfig
	var gotCanvas *webtest.Canvas
	build := func(canvas web.CanvasElement, cfg BuildConfig) (Renderer, error) {
		gotCfg = cfg
		gotCanvas = canvas.(*webtest.Canvas)
		return newFakeRenderer(gotCanvas.InnerWidth, gotCanvas.InnerHeight), nil
	}

	opts := DefaultOptions()
	opts.PaddingColor = core.ColorFromRGB(1, 2, 3)
	opts.SelectionMode = SelectionBlock
	b, err := NewFromWindow(win, build, opts)
	if err != nil {
		t.Fatal(err)
	}
	if gotCanvas.InnerWidth != 160 || gotCanvas.InnerHeight != 80 {
		t.Errorf("canvas = %dx%d, want 160x80", gotCanvas.InnerWidth, gotCanvas.InnerHeight)
	}
	want := BuildConfig{PaddingColor: 0x010203, FallbackGlyph: " ", Selection: SelectionBlock}
	if gotCfg != want {
		t.Errorf("config = %+v, want %+v", gotCfg, want)
	}
	if got := b.Size(); got != (core.Size{Width: 16, Height: 4}) {
		t.Errorf("Size() = %+v, want 16x4", got)
	}
}

func TestNewFromWindowErrors(t *testing.T) {
	failing := func(web.CanvasElement, BuildConfig) (Renderer, error) {
		return nil, errors.New("webgl2 unavailable")
	}

	win := webtest.NewWindow(100, 100)
	_, err := NewFromWindow(win, failing, DefaultOptions())
	var rerr *backend.RendererError
	if !errors.As(err, &rerr) || rerr.Op != "build" {
		t.Errorf("err = %v, want build RendererError", err)
	}
	if len(win.Doc.BodyEl.Children) != 0 {
		t.Error("canvas should be removed when the builder fails")
	}

	win = webtest.NewWindow(100, 100)
	win.Perf = nil
	opts := DefaultOptions()
	opts.MeasurePerformance = true
	if _, err := NewFromWindow(win, failing, opts); !errors.Is(err, backend.ErrNoPerformance) {
		t.Errorf("err = %v, want ErrNoPerformance", err)
	}

	if _, err := NewFromWindow(nil, failing, DefaultOptions()); !errors.Is(err, backend.ErrNoWindow) {
		t.Errorf("err = %v, want ErrNoWindow", err)
	}
}

func TestParseSelectionMode(t *testing.T) {
	tests := []struct {
		in      string
		want    SelectionMode
		wantErr bool
	}{
		{"", SelectionNone, false},
		{"Block", SelectionBlock, false},
		{"linear", SelectionLinear, false},
		{"diagonal", SelectionNone, true},
	}
	for _, tt := range tests {
		got, err := ParseSelectionMode(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseSelectionMode(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestOpenInNewTab(t *testing.T) {
	win := webtest.NewWindow(10, 10)
	OpenInNewTab(win, nil)("https://example.com")
	if len(win.Opened) != 1 || win.Opened[0] != "https://example.com _blank" {
		t.Errorf("opened = %v", win.Opened)
	}
}
