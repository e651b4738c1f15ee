package webtest

import (
	"github.com/dshills/webterm/internal/web"
)

// Document is a fake document whose element tree hangs off BodyEl.
type Document struct {
	Target

	BodyEl  *Element
	NoBody  bool
	Created []web.Element

	// ContextErr is copied into every canvas created by CreateCanvas.
	ContextErr error
}

// NewDocument creates a document with an empty body.
func NewDocument() *Document {
	return &Document{BodyEl: NewElement("body")}
}

// CreateElement implements web.Document.
func (d *Document) CreateElement(tag string) (web.Element, error) {
	el := NewElement(tag)
	d.Created = append(d.Created, el)
	return el, nil
}

// CreateCanvas implements web.Document.
func (d *Document) CreateCanvas() (web.CanvasElement, error) {
	c := NewCanvas()
	c.ContextErr = d.ContextErr
	d.Created = append(d.Created, c)
	return c, nil
}

// GetElementByID implements web.Document. Only attached elements are found.
func (d *Document) GetElementByID(id string) (web.Element, bool) {
	if d.BodyEl == nil {
		return nil, false
	}
	el := d.BodyEl.Find(id)
	if el == nil {
		return nil, false
	}
	return el, true
}

// Body implements web.Document.
func (d *Document) Body() (web.Element, bool) {
	if d.NoBody || d.BodyEl == nil {
		return nil, false
	}
	return d.BodyEl, true
}

// Performance records marks and measures.
type Performance struct {
	Marks    []string
	Measures []string
}

// Mark implements web.Performance.
func (p *Performance) Mark(name string) error {
	p.Marks = append(p.Marks, name)
	return nil
}

// Measure implements web.Performance.
func (p *Performance) Measure(name, startMark string) error {
	p.Measures = append(p.Measures, name+"<"+startMark)
	return nil
}

// Window is a fake window.
type Window struct {
	Target

	Doc    *Document
	NoDoc  bool
	Width  float64
	Height float64
	Perf   *Performance
	Opened []string

	frames []func(float64)
	now    float64
}

// NewWindow creates a window with a fresh document and performance recorder.
func NewWindow(width, height float64) *Window {
	return &Window{
		Doc:    NewDocument(),
		Width:  width,
		Height: height,
		Perf:   &Performance{},
	}
}

// Document implements web.Window.
func (w *Window) Document() (web.Document, bool) {
	if w.NoDoc || w.Doc == nil {
		return nil, false
	}
	return w.Doc, true
}

// InnerSize implements web.Window.
func (w *Window) InnerSize() (float64, float64) {
	return w.Width, w.Height
}

// Performance implements web.Window.
func (w *Window) Performance() (web.Performance, bool) {
	if w.Perf == nil {
		return nil, false
	}
	return w.Perf, true
}

// RequestAnimationFrame implements web.Window. Callbacks run on Tick.
func (w *Window) RequestAnimationFrame(fn func(float64)) {
	w.frames = append(w.frames, fn)
}

// Open implements web.Window.
func (w *Window) Open(url, target string) error {
	w.Opened = append(w.Opened, url+" "+target)
	return nil
}

// PendingFrames returns the number of queued animation frame callbacks.
func (w *Window) PendingFrames() int {
	return len(w.frames)
}

// Tick runs the callbacks queued before the call, advancing the clock by 16ms.
func (w *Window) Tick() {
	frames := w.frames
	w.frames = nil
	w.now += 16
	for _, fn := range frames {
		fn(w.now)
	}
}

// Resize changes the inner size and dispatches a resize event.
func (w *Window) Resize(width, height float64) {
	w.Width = width
	w.Height = height
	w.Dispatch(web.Event{Type: "resize"})
}
