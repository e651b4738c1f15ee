// Package web defines the small slice of the browser API the backends use.
//
// Backends are written against these interfaces so they can be exercised
// natively; package jsweb binds them to syscall/js and package webtest
// provides recording fakes.
package web

// Rect is a bounding client rectangle in CSS pixels.
type Rect struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// Event is the subset of a DOM event the backends read.
// Mouse fields are zero for keyboard events and vice versa.
type Event struct {
	Type    string
	ClientX float64
	ClientY float64
	Button  int
	Key     string
	Ctrl    bool
	Alt     bool
	Shift   bool
}

// EventTarget is anything that accepts event listeners.
type EventTarget interface {
	// AddEventListener registers fn for typ and returns a function that
	// removes exactly that registration.
	AddEventListener(typ string, fn func(Event)) (remove func())
}

// Element is a DOM element.
type Element interface {
	EventTarget

	SetAttribute(name, value string) error
	GetAttribute(name string) (string, bool)
	SetTextContent(text string)
	SetInnerHTML(html string)
	AppendChild(child Element) error
	Remove()
	ClientWidth() int
	ClientHeight() int
	BoundingClientRect() Rect
}

// ContextOptions are the 2D context creation attributes.
type ContextOptions struct {
	Alpha          bool
	Desynchronized bool
}

// CanvasElement is an HTML canvas.
type CanvasElement interface {
	Element

	SetWidth(width int)
	SetHeight(height int)
	Context2D(opts ContextOptions) (Context2D, error)
}

// Context2D is a CanvasRenderingContext2D.
type Context2D interface {
	SetFont(font string)
	SetTextBaseline(baseline string)
	Scale(x, y float64) error
	Translate(x, y float64) error
	ClearRect(x, y, w, h float64)
	Save()
	Restore()
	BeginPath()
	Rect(x, y, w, h float64)
	Clip()
	SetFillStyle(style string)
	FillRect(x, y, w, h float64)
	FillText(text string, x, y float64) error
	SetStrokeStyle(style string)
	StrokeRect(x, y, w, h float64)
}

// Document is the page document.
type Document interface {
	EventTarget

	CreateElement(tag string) (Element, error)
	CreateCanvas() (CanvasElement, error)
	GetElementByID(id string) (Element, bool)
	Body() (Element, bool)
}

// Performance is the User Timing API.
type Performance interface {
	Mark(name string) error
	Measure(name, startMark string) error
}

// Window is the browser window.
type Window interface {
	EventTarget

	Document() (Document, bool)
	InnerSize() (width, height float64)
	Performance() (Performance, bool)
	RequestAnimationFrame(fn func(timestamp float64))
	Open(url, target string) error
}
