package web

// EventCallback owns one handler registered for a set of event types.
// Release removes every listener it added; it is safe to call more than
// once and on a nil receiver.
type EventCallback struct {
	types   []string
	removes []func()
}

// NewEventCallback registers fn on target for each of types.
func NewEventCallback(target EventTarget, types []string, fn func(Event)) *EventCallback {
	cb := &EventCallback{
		types:   append([]string(nil), types...),
		removes: make([]func(), 0, len(types)),
	}
	for _, typ := range types {
		cb.removes = append(cb.removes, target.AddEventListener(typ, fn))
	}
	return cb
}

// Types returns the event types this callback listens to.
func (c *EventCallback) Types() []string {
	if c == nil {
		return nil
	}
	return c.types
}

// Active reports whether the listeners are still attached.
func (c *EventCallback) Active() bool {
	return c != nil && c.removes != nil
}

// Release removes the listeners.
func (c *EventCallback) Release() {
	if c == nil || c.removes == nil {
		return
	}
	for _, remove := range c.removes {
		if remove != nil {
			remove()
		}
	}
	c.removes = nil
}
