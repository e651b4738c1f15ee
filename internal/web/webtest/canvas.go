package webtest

import (
	"fmt"

	"github.com/dshills/webterm/internal/web"
)

// Canvas is a fake canvas element.
type Canvas struct {
	Element

	InnerWidth  int
	InnerHeight int
	Options     web.ContextOptions
	Ctx         *Context2D

	// ContextErr, when set, is returned by Context2D.
	ContextErr error
}

// NewCanvas creates a detached canvas.
func NewCanvas() *Canvas {
	return &Canvas{
		Element: Element{Tag: "canvas", Attrs: make(map[string]string)},
		Ctx:     &Context2D{},
	}
}

// SetWidth implements web.CanvasElement.
func (c *Canvas) SetWidth(width int) { c.InnerWidth = width }

// SetHeight implements web.CanvasElement.
func (c *Canvas) SetHeight(height int) { c.InnerHeight = height }

// Context2D implements web.CanvasElement.
func (c *Canvas) Context2D(opts web.ContextOptions) (web.Context2D, error) {
	if c.ContextErr != nil {
		return nil, c.ContextErr
	}
	c.Options = opts
	return c.Ctx, nil
}

// Call is one recorded context call.
type Call struct {
	Name string
	Args []any
}

// String formats the call as name(args).
func (c Call) String() string {
	return fmt.Sprintf("%s%v", c.Name, c.Args)
}

// Context2D is a recording 2D context.
type Context2D struct {
	Calls []Call
}

func (c *Context2D) record(name string, args ...any) {
	c.Calls = append(c.Calls, Call{Name: name, Args: args})
}

// Reset drops every recorded call.
func (c *Context2D) Reset() { c.Calls = nil }

// Count returns how many times name was called.
func (c *Context2D) Count(name string) int {
	n := 0
	for _, call := range c.Calls {
		if call.Name == name {
			n++
		}
	}
	return n
}

// Named returns the calls to name in order.
func (c *Context2D) Named(name string) []Call {
	var out []Call
	for _, call := range c.Calls {
		if call.Name == name {
			out = append(out, call)
		}
	}
	return out
}

// Names returns the call names in order.
func (c *Context2D) Names() []string {
	out := make([]string, len(c.Calls))
	for i, call := range c.Calls {
		out[i] = call.Name
	}
	return out
}

func (c *Context2D) SetFont(font string)             { c.record("SetFont", font) }
func (c *Context2D) SetTextBaseline(baseline string) { c.record("SetTextBaseline", baseline) }
func (c *Context2D) Scale(x, y float64) error        { c.record("Scale", x, y); return nil }
func (c *Context2D) Translate(x, y float64) error    { c.record("Translate", x, y); return nil }
func (c *Context2D) ClearRect(x, y, w, h float64)    { c.record("ClearRect", x, y, w, h) }
func (c *Context2D) Save()                           { c.record("Save") }
func (c *Context2D) Restore()                        { c.record("Restore") }
func (c *Context2D) BeginPath()                      { c.record("BeginPath") }
func (c *Context2D) Rect(x, y, w, h float64)         { c.record("Rect", x, y, w, h) }
func (c *Context2D) Clip()                           { c.record("Clip") }
func (c *Context2D) SetFillStyle(style string)       { c.record("SetFillStyle", style) }
func (c *Context2D) FillRect(x, y, w, h float64)     { c.record("FillRect", x, y, w, h) }
func (c *Context2D) SetStrokeStyle(style string)     { c.record("SetStrokeStyle", style) }
func (c *Context2D) StrokeRect(x, y, w, h float64)   { c.record("StrokeRect", x, y, w, h) }

func (c *Context2D) FillText(text string, x, y float64) error {
	c.record("FillText", text, x, y)
	return nil
}
