// Package webtest provides recording fakes of the browser interfaces in
// package web for use in tests.
package webtest

import (
	"github.com/dshills/webterm/internal/web"
)

type listener struct {
	id int
	fn func(web.Event)
}

// Target is an in-memory event target.
type Target struct {
	nextID    int
	listeners map[string][]listener
}

// AddEventListener implements web.EventTarget.
func (t *Target) AddEventListener(typ string, fn func(web.Event)) func() {
	if t.listeners == nil {
		t.listeners = make(map[string][]listener)
	}
	t.nextID++
	id := t.nextID
	t.listeners[typ] = append(t.listeners[typ], listener{id: id, fn: fn})
	return func() {
		ls := t.listeners[typ]
		for i, l := range ls {
			if l.id == id {
				t.listeners[typ] = append(ls[:i:i], ls[i+1:]...)
				return
			}
		}
	}
}

// Dispatch delivers ev to every listener registered for ev.Type.
func (t *Target) Dispatch(ev web.Event) {
	ls := append([]listener(nil), t.listeners[ev.Type]...)
	for _, l := range ls {
		l.fn(ev)
	}
}

// ListenerCount returns the number of listeners for typ.
func (t *Target) ListenerCount(typ string) int {
	return len(t.listeners[typ])
}

// TotalListeners returns the number of listeners across all types.
func (t *Target) TotalListeners() int {
	n := 0
	for _, ls := range t.listeners {
		n += len(ls)
	}
	return n
}
