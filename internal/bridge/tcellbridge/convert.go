package tcellbridge

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/webterm/internal/renderer/core"
	"github.com/dshills/webterm/internal/renderer/event"
)

// TcellStyle converts a cell style to tcell.Style.
func TcellStyle(s core.Style) tcell.Style {
	style := tcell.StyleDefault

	// Convert foreground
	if !s.Foreground.IsDefault() {
		style = style.Foreground(tcellColor(s.Foreground))
	}

	// Convert background
	if !s.Background.IsDefault() {
		style = style.Background(tcellColor(s.Background))
	}

	// Convert attributes
	if s.Attributes.Has(core.AttrBold) {
		style = style.Bold(true)
	}
	if s.Attributes.Has(core.AttrDim) {
		style = style.Dim(true)
	}
	if s.Attributes.Has(core.AttrItalic) {
		style = style.Italic(true)
	}
	if s.Attributes.Has(core.AttrUnderline) {
		style = style.Underline(true)
	}
	if s.Attributes.Has(core.AttrBlink) {
		style = style.Blink(true)
	}
	if s.Attributes.Has(core.AttrReverse) {
		style = style.Reverse(true)
	}
	if s.Attributes.Has(core.AttrStrikethrough) {
		style = style.StrikeThrough(true)
	}

	return style
}

func tcellColor(c core.Color) tcell.Color {
	if c.Indexed {
		return tcell.PaletteColor(int(c.R))
	}
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// CellStyle converts tcell.Style to a cell style.
func CellStyle(ts tcell.Style) core.Style {
	fg, bg, attrs := ts.Decompose()

	s := core.Style{
		Foreground: CellColor(fg),
		Background: CellColor(bg),
		Attributes: core.AttrNone,
	}

	if attrs&tcell.AttrBold != 0 {
		s.Attributes |= core.AttrBold
	}
	if attrs&tcell.AttrDim != 0 {
		s.Attributes |= core.AttrDim
	}
	if attrs&tcell.AttrItalic != 0 {
		s.Attributes |= core.AttrItalic
	}
	if attrs&tcell.AttrUnderline != 0 {
		s.Attributes |= core.AttrUnderline
	}
	if attrs&tcell.AttrBlink != 0 {
		s.Attributes |= core.AttrBlink
	}
	if attrs&tcell.AttrReverse != 0 {
		s.Attributes |= core.AttrReverse
	}
	if attrs&tcell.AttrStrikeThrough != 0 {
		s.Attributes |= core.AttrStrikethrough
	}

	return s
}

// CellColor converts tcell.Color to a cell color. Colors tcell does not
// consider valid, such as ColorReset, map to the default color.
func CellColor(tc tcell.Color) core.Color {
	if tc == tcell.ColorDefault || !tc.Valid() {
		return core.ColorDefault
	}

	// Palette color
	if tc&tcell.ColorIsRGB == 0 {
		return core.ColorFromIndex(uint8(tc - tcell.ColorValid))
	}

	// True color
	r, g, b := tc.RGB()
	return core.ColorFromRGB(uint8(r), uint8(g), uint8(b))
}

var specialKeys = map[event.Key]tcell.Key{
	event.KeyBackspace: tcell.KeyBackspace2,
	event.KeyEnter:     tcell.KeyEnter,
	event.KeyLeft:      tcell.KeyLeft,
	event.KeyRight:     tcell.KeyRight,
	event.KeyUp:        tcell.KeyUp,
	event.KeyDown:      tcell.KeyDown,
	event.KeyTab:       tcell.KeyTab,
	event.KeyDelete:    tcell.KeyDelete,
	event.KeyHome:      tcell.KeyHome,
	event.KeyEnd:       tcell.KeyEnd,
	event.KeyPageUp:    tcell.KeyPgUp,
	event.KeyPageDown:  tcell.KeyPgDn,
	event.KeyEsc:       tcell.KeyEscape,
}

// TcellKey converts a key event to the arguments tcell expects for an
// injected key. ok is false for keys tcell has no code for.
func TcellKey(ev event.KeyEvent) (key tcell.Key, r rune, mod tcell.ModMask, ok bool) {
	mod = tcellMod(ev.Ctrl, ev.Alt, ev.Shift)

	switch ev.Code.Key {
	case event.KeyChar:
		// Control letters have their own codes.
		if ev.Ctrl {
			if l := unicode.ToLower(ev.Code.Char); l >= 'a' && l <= 'z' {
				return tcell.KeyCtrlA + tcell.Key(l-'a'), l, mod, true
			}
		}
		return tcell.KeyRune, ev.Code.Char, mod, true
	case event.KeyF:
		if ev.Code.F < 1 || ev.Code.F > 12 {
			return 0, 0, 0, false
		}
		return tcell.KeyF1 + tcell.Key(ev.Code.F-1), 0, mod, true
	}

	if k, found := specialKeys[ev.Code.Key]; found {
		return k, 0, mod, true
	}
	return 0, 0, 0, false
}

// TcellButtons converts a mouse event to the tcell button state after it.
func TcellButtons(ev event.MouseEvent) tcell.ButtonMask {
	if ev.Kind != event.MouseButtonDown {
		return tcell.ButtonNone
	}
	switch ev.Button {
	case event.ButtonLeft:
		return tcell.ButtonPrimary
	case event.ButtonRight:
		return tcell.ButtonSecondary
	case event.ButtonMiddle:
		return tcell.ButtonMiddle
	default:
		return tcell.ButtonNone
	}
}

func tcellMod(ctrl, alt, shift bool) tcell.ModMask {
	var mod tcell.ModMask
	if ctrl {
		mod |= tcell.ModCtrl
	}
	if alt {
		mod |= tcell.ModAlt
	}
	if shift {
		mod |= tcell.ModShift
	}
	return mod
}
