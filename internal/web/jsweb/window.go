//go:build js && wasm

package jsweb

import (
	"fmt"
	"syscall/js"

	"github.com/dshills/webterm/internal/web"
)

// Window wraps the global window.
type Window struct {
	Target
}

// Global returns the browser window.
func Global() *Window {
	return &Window{Target{js.Global()}}
}

// Document implements web.Window.
func (w *Window) Document() (web.Document, bool) {
	doc := w.v.Get("document")
	if !present(doc) {
		return nil, false
	}
	return &Document{Target{doc}}, true
}

// InnerSize implements web.Window.
func (w *Window) InnerSize() (float64, float64) {
	return float(w.v, "innerWidth"), float(w.v, "innerHeight")
}

// Performance implements web.Window.
func (w *Window) Performance() (web.Performance, bool) {
	p := w.v.Get("performance")
	if !present(p) {
		return nil, false
	}
	return performance{p}, true
}

// RequestAnimationFrame implements web.Window.
func (w *Window) RequestAnimationFrame(fn func(float64)) {
	var cb js.Func
	cb = js.FuncOf(func(_ js.Value, args []js.Value) any {
		cb.Release()
		ts := 0.0
		if len(args) > 0 && args[0].Type() == js.TypeNumber {
			ts = args[0].Float()
		}
		fn(ts)
		return nil
	})
	w.v.Call("requestAnimationFrame", cb)
}

// Open implements web.Window.
func (w *Window) Open(url, target string) error {
	_, err := call(w.v, "open", url, target)
	return err
}

// Document wraps the DOM document.
type Document struct {
	Target
}

// CreateElement implements web.Document.
func (d *Document) CreateElement(tag string) (web.Element, error) {
	v, err := call(d.v, "createElement", tag)
	if err != nil {
		return nil, err
	}
	return Wrap(v), nil
}

// CreateCanvas implements web.Document.
func (d *Document) CreateCanvas() (web.CanvasElement, error) {
	v, err := call(d.v, "createElement", "canvas")
	if err != nil {
		return nil, err
	}
	return Canvas{Wrap(v)}, nil
}

// GetElementByID implements web.Document.
func (d *Document) GetElementByID(id string) (web.Element, bool) {
	v := d.v.Call("getElementById", id)
	if !present(v) {
		return nil, false
	}
	return Wrap(v), true
}

// Body implements web.Document.
func (d *Document) Body() (web.Element, bool) {
	v := d.v.Get("body")
	if !present(v) {
		return nil, false
	}
	return Wrap(v), true
}

type performance struct {
	v js.Value
}

func (p performance) Mark(name string) error {
	_, err := call(p.v, "mark", name)
	return err
}

func (p performance) Measure(name, startMark string) error {
	if _, err := call(p.v, "measure", name, startMark); err != nil {
		return fmt.Errorf("measure %s: %w", name, err)
	}
	return nil
}

var (
	_ web.Window        = (*Window)(nil)
	_ web.Document      = (*Document)(nil)
	_ web.Element       = (*Element)(nil)
	_ web.CanvasElement = Canvas{}
	_ web.Performance   = performance{}
)
