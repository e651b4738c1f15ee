//go:build js && wasm

package jsweb

import (
	"errors"
	"fmt"
	"syscall/js"

	"github.com/dshills/webterm/internal/web"
)

// Element wraps a DOM element.
type Element struct {
	Target
}

// Wrap wraps a JS element value.
func Wrap(v js.Value) *Element {
	return &Element{Target{v}}
}

// SetAttribute implements web.Element.
func (e *Element) SetAttribute(name, value string) error {
	_, err := call(e.v, "setAttribute", name, value)
	return err
}

// GetAttribute implements web.Element.
func (e *Element) GetAttribute(name string) (string, bool) {
	v := e.v.Call("getAttribute", name)
	if !present(v) {
		return "", false
	}
	return v.String(), true
}

// SetTextContent implements web.Element.
func (e *Element) SetTextContent(text string) {
	e.v.Set("textContent", text)
}

// SetInnerHTML implements web.Element.
func (e *Element) SetInnerHTML(html string) {
	e.v.Set("innerHTML", html)
}

// AppendChild implements web.Element.
func (e *Element) AppendChild(child web.Element) error {
	jv, ok := child.(interface{ Value() js.Value })
	if !ok {
		return fmt.Errorf("appendChild: %T is not a JS element", child)
	}
	_, err := call(e.v, "appendChild", jv.Value())
	return err
}

// Remove implements web.Element.
func (e *Element) Remove() {
	e.v.Call("remove")
}

// ClientWidth implements web.Element.
func (e *Element) ClientWidth() int {
	return int(float(e.v, "clientWidth"))
}

// ClientHeight implements web.Element.
func (e *Element) ClientHeight() int {
	return int(float(e.v, "clientHeight"))
}

// BoundingClientRect implements web.Element.
func (e *Element) BoundingClientRect() web.Rect {
	r := e.v.Call("getBoundingClientRect")
	return web.Rect{
		Left:   float(r, "left"),
		Top:    float(r, "top"),
		Width:  float(r, "width"),
		Height: float(r, "height"),
	}
}

// Canvas wraps an HTML canvas element.
type Canvas struct {
	*Element
}

// SetWidth implements web.CanvasElement.
func (c Canvas) SetWidth(width int) {
	c.v.Set("width", width)
}

// SetHeight implements web.CanvasElement.
func (c Canvas) SetHeight(height int) {
	c.v.Set("height", height)
}

// Context2D implements web.CanvasElement.
func (c Canvas) Context2D(opts web.ContextOptions) (web.Context2D, error) {
	ctx, err := call(c.v, "getContext", "2d", map[string]any{
		"alpha":          opts.Alpha,
		"desynchronized": opts.Desynchronized,
	})
	if err != nil {
		return nil, err
	}
	if !present(ctx) {
		return nil, errors.New("getContext returned null")
	}
	return context2D{ctx}, nil
}
