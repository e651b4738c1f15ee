//go:build js && wasm

// Package jsweb binds the interfaces of package web to the browser through
// syscall/js.
package jsweb

import (
	"fmt"
	"syscall/js"

	"github.com/dshills/webterm/internal/web"
)

// call invokes a method, converting a thrown JS exception into an error.
func call(v js.Value, method string, args ...any) (res js.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s: %v", method, r)
		}
	}()
	return v.Call(method, args...), nil
}

func present(v js.Value) bool {
	return !v.IsUndefined() && !v.IsNull()
}

func float(v js.Value, name string) float64 {
	f := v.Get(name)
	if f.Type() != js.TypeNumber {
		return 0
	}
	return f.Float()
}

func boolean(v js.Value, name string) bool {
	b := v.Get(name)
	return b.Type() == js.TypeBoolean && b.Bool()
}

func str(v js.Value, name string) string {
	s := v.Get(name)
	if s.Type() != js.TypeString {
		return ""
	}
	return s.String()
}

// Target wraps any JS EventTarget.
type Target struct {
	v js.Value
}

// AddEventListener implements web.EventTarget.
func (t Target) AddEventListener(typ string, fn func(web.Event)) func() {
	cb := js.FuncOf(func(_ js.Value, args []js.Value) any {
		if len(args) > 0 {
			fn(convertEvent(args[0]))
		}
		return nil
	})
	t.v.Call("addEventListener", typ, cb)
	return func() {
		t.v.Call("removeEventListener", typ, cb)
		cb.Release()
	}
}

// Value returns the wrapped JS value.
func (t Target) Value() js.Value {
	return t.v
}

func convertEvent(v js.Value) web.Event {
	return web.Event{
		Type:    str(v, "type"),
		ClientX: float(v, "clientX"),
		ClientY: float(v, "clientY"),
		Button:  int(float(v, "button")),
		Key:     str(v, "key"),
		Ctrl:    boolean(v, "ctrlKey"),
		Alt:     boolean(v, "altKey"),
		Shift:   boolean(v, "shiftKey"),
	}
}
