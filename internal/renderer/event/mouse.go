package event

import "fmt"

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	ButtonUnidentified MouseButton = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
	ButtonBack
	ButtonForward
)

// ButtonFromDOM maps a DOM MouseEvent.button value to a button.
func ButtonFromDOM(button int) MouseButton {
	switch button {
	case 0:
		return ButtonLeft
	case 1:
		return ButtonMiddle
	case 2:
		return ButtonRight
	case 3:
		return ButtonBack
	case 4:
		return ButtonForward
	default:
		return ButtonUnidentified
	}
}

// String returns a human-readable name for the button.
func (b MouseButton) String() string {
	switch b {
	case ButtonLeft:
		return "Left"
	case ButtonMiddle:
		return "Middle"
	case ButtonRight:
		return "Right"
	case ButtonBack:
		return "Back"
	case ButtonForward:
		return "Forward"
	default:
		return "Unidentified"
	}
}

// MouseEventKind is the type of mouse event that occurred.
type MouseEventKind uint8

const (
	MouseUnidentified MouseEventKind = iota
	MouseMoved
	MouseButtonDown
	MouseButtonUp
	MouseSingleClick
	MouseDoubleClick
	MouseEntered
	MouseExited
)

// MouseEventTypes lists the DOM event types a mouse handler listens to.
var MouseEventTypes = []string{
	"mousemove",
	"mousedown",
	"mouseup",
	"click",
	"dblclick",
	"mouseenter",
	"mouseleave",
}

// KeyEventTypes lists the DOM event types a key handler listens to.
var KeyEventTypes = []string{"keydown"}

// KindFromDOM maps a DOM event type to a mouse event kind.
func KindFromDOM(typ string) MouseEventKind {
	switch typ {
	case "mousemove":
		return MouseMoved
	case "mousedown":
		return MouseButtonDown
	case "mouseup":
		return MouseButtonUp
	case "click":
		return MouseSingleClick
	case "dblclick":
		return MouseDoubleClick
	case "mouseenter":
		return MouseEntered
	case "mouseleave":
		return MouseExited
	default:
		return MouseUnidentified
	}
}

// String returns a human-readable name for the kind.
func (k MouseEventKind) String() string {
	switch k {
	case MouseMoved:
		return "Moved"
	case MouseButtonDown:
		return "ButtonDown"
	case MouseButtonUp:
		return "ButtonUp"
	case MouseSingleClick:
		return "SingleClick"
	case MouseDoubleClick:
		return "DoubleClick"
	case MouseEntered:
		return "Entered"
	case MouseExited:
		return "Exited"
	default:
		return "Unidentified"
	}
}

// HasButton reports whether events of this kind carry a button.
func (k MouseEventKind) HasButton() bool {
	switch k {
	case MouseButtonDown, MouseButtonUp, MouseSingleClick, MouseDoubleClick:
		return true
	}
	return false
}

// MouseEvent is a mouse event in grid coordinates.
// The origin (0, 0) is the top-left cell.
type MouseEvent struct {
	Kind   MouseEventKind
	Button MouseButton // ButtonUnidentified unless Kind.HasButton()
	Col    int
	Row    int
	Ctrl   bool
	Alt    bool
	Shift  bool
}

// String returns a canonical string representation.
func (e MouseEvent) String() string {
	if e.Kind.HasButton() {
		return fmt.Sprintf("%s(%s)@%d,%d", e.Kind, e.Button, e.Col, e.Row)
	}
	return fmt.Sprintf("%s@%d,%d", e.Kind, e.Col, e.Row)
}
