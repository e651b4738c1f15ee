// Package event defines the keyboard and mouse events delivered by web
// backends. Mouse coordinates are grid cells, never pixels.
package event

import (
	"fmt"
	"unicode/utf8"
)

// Key identifies a keyboard key.
// For character keys, use KeyChar and read KeyCode.Char.
type Key uint8

const (
	// KeyUnidentified represents a key the browser reported but we do not map.
	KeyUnidentified Key = iota

	// KeyChar is a single printable character.
	KeyChar

	// KeyF is a function key; the number is in KeyCode.F.
	KeyF

	// Special keys
	KeyBackspace
	KeyEnter
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyTab
	KeyDelete
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyEsc
)

// String returns a human-readable name for the key.
func (k Key) String() string {
	switch k {
	case KeyUnidentified:
		return "Unidentified"
	case KeyChar:
		return "Char"
	case KeyF:
		return "F"
	case KeyBackspace:
		return "Backspace"
	case KeyEnter:
		return "Enter"
	case KeyLeft:
		return "Left"
	case KeyRight:
		return "Right"
	case KeyUp:
		return "Up"
	case KeyDown:
		return "Down"
	case KeyTab:
		return "Tab"
	case KeyDelete:
		return "Delete"
	case KeyHome:
		return "Home"
	case KeyEnd:
		return "End"
	case KeyPageUp:
		return "PageUp"
	case KeyPageDown:
		return "PageDown"
	case KeyEsc:
		return "Esc"
	default:
		return fmt.Sprintf("Key(%d)", k)
	}
}

// KeyCode is a key plus its payload for character and function keys.
type KeyCode struct {
	Key  Key
	Char rune  // set for KeyChar
	F    uint8 // 1-12, set for KeyF
}

// Char returns the key code for a character.
func Char(r rune) KeyCode {
	return KeyCode{Key: KeyChar, Char: r}
}

// F returns the key code for function key n.
func F(n uint8) KeyCode {
	return KeyCode{Key: KeyF, F: n}
}

// Special returns the key code for a key without payload.
func Special(k Key) KeyCode {
	return KeyCode{Key: k}
}

// String returns a canonical string representation.
func (c KeyCode) String() string {
	switch c.Key {
	case KeyChar:
		return fmt.Sprintf("Char(%q)", c.Char)
	case KeyF:
		return fmt.Sprintf("F%d", c.F)
	default:
		return c.Key.String()
	}
}

var namedKeys = map[string]KeyCode{
	"F1":         F(1),
	"F2":         F(2),
	"F3":         F(3),
	"F4":         F(4),
	"F5":         F(5),
	"F6":         F(6),
	"F7":         F(7),
	"F8":         F(8),
	"F9":         F(9),
	"F10":        F(10),
	"F11":        F(11),
	"F12":        F(12),
	"Backspace":  Special(KeyBackspace),
	"Enter":      Special(KeyEnter),
	"ArrowLeft":  Special(KeyLeft),
	"ArrowRight": Special(KeyRight),
	"ArrowUp":    Special(KeyUp),
	"ArrowDown":  Special(KeyDown),
	"Tab":        Special(KeyTab),
	"Delete":     Special(KeyDelete),
	"Home":       Special(KeyHome),
	"End":        Special(KeyEnd),
	"PageUp":     Special(KeyPageUp),
	"PageDown":   Special(KeyPageDown),
	"Escape":     Special(KeyEsc),
}

// ParseKey maps a DOM KeyboardEvent.key value to a key code.
// A single-character key is a character; named keys map to their codes;
// everything else is unidentified.
func ParseKey(key string) KeyCode {
	if r, size := utf8.DecodeRuneInString(key); size > 0 && size == len(key) && r != utf8.RuneError {
		return Char(r)
	}
	if code, ok := namedKeys[key]; ok {
		return code
	}
	return Special(KeyUnidentified)
}

// KeyEvent is a key press.
type KeyEvent struct {
	Code  KeyCode
	Ctrl  bool
	Alt   bool
	Shift bool
}

// String returns a canonical string representation.
func (e KeyEvent) String() string {
	s := e.Code.String()
	if e.Shift {
		s = "S-" + s
	}
	if e.Alt {
		s = "A-" + s
	}
	if e.Ctrl {
		s = "C-" + s
	}
	return s
}
