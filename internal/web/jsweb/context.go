//go:build js && wasm

package jsweb

import (
	"syscall/js"
)

type context2D struct {
	v js.Value
}

func (c context2D) SetFont(font string)             { c.v.Set("font", font) }
func (c context2D) SetTextBaseline(baseline string) { c.v.Set("textBaseline", baseline) }
func (c context2D) ClearRect(x, y, w, h float64)    { c.v.Call("clearRect", x, y, w, h) }
func (c context2D) Save()                           { c.v.Call("save") }
func (c context2D) Restore()                        { c.v.Call("restore") }
func (c context2D) BeginPath()                      { c.v.Call("beginPath") }
func (c context2D) Rect(x, y, w, h float64)         { c.v.Call("rect", x, y, w, h) }
func (c context2D) Clip()                           { c.v.Call("clip") }
func (c context2D) SetFillStyle(style string)       { c.v.Set("fillStyle", style) }
func (c context2D) FillRect(x, y, w, h float64)     { c.v.Call("fillRect", x, y, w, h) }
func (c context2D) SetStrokeStyle(style string)     { c.v.Set("strokeStyle", style) }
func (c context2D) StrokeRect(x, y, w, h float64)   { c.v.Call("strokeRect", x, y, w, h) }

func (c context2D) Scale(x, y float64) error {
	_, err := call(c.v, "scale", x, y)
	return err
}

func (c context2D) Translate(x, y float64) error {
	_, err := call(c.v, "translate", x, y)
	return err
}

func (c context2D) FillText(text string, x, y float64) error {
	_, err := call(c.v, "fillText", text, x, y)
	return err
}
