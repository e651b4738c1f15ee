package pointer

import (
	"github.com/dshills/webterm/internal/renderer/event"
	"github.com/dshills/webterm/internal/web"
)

// Handlers owns the mouse and key listeners of one backend.
// Registering a handler releases the previous registration first, so at
// most one set of listeners per kind is ever attached.
type Handlers struct {
	mouse *web.EventCallback
	key   *web.EventCallback
}

// OnMouse listens for mouse events on el and delivers them in grid
// coordinates. cfg returns the mapping in effect when the event fires.
func (h *Handlers) OnMouse(el web.Element, cfg func() MouseConfig, fn func(event.MouseEvent)) {
	h.ClearMouse()
	h.mouse = web.NewEventCallback(el, event.MouseEventTypes, func(ev web.Event) {
		fn(MouseEvent(ev, el.BoundingClientRect(), cfg()))
	})
}

// OnKey listens for keyboard events on target.
func (h *Handlers) OnKey(target web.EventTarget, fn func(event.KeyEvent)) {
	h.ClearKey()
	h.key = web.NewEventCallback(target, event.KeyEventTypes, func(ev web.Event) {
		fn(KeyEvent(ev))
	})
}

// ClearMouse removes the mouse listeners.
func (h *Handlers) ClearMouse() {
	h.mouse.Release()
	h.mouse = nil
}

// ClearKey removes the key listeners.
func (h *Handlers) ClearKey() {
	h.key.Release()
	h.key = nil
}

// Release removes every listener.
func (h *Handlers) Release() {
	h.ClearMouse()
	h.ClearKey()
}
