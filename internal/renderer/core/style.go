package core

// Attribute represents text attributes (bold, italic, etc.).
//
// The bit positions are fixed: the GPU backend packs them into the
// renderer's glyph bits with constant shifts.
type Attribute uint16

// Text attribute flags.
const (
	AttrNone          Attribute = 0
	AttrBold          Attribute = 1 << 0
	AttrDim           Attribute = 1 << 1 // Faint/dim text
	AttrItalic        Attribute = 1 << 2
	AttrUnderline     Attribute = 1 << 3
	AttrBlink         Attribute = 1 << 4 // Slow blink (rarely supported)
	AttrRapidBlink    Attribute = 1 << 5
	AttrReverse       Attribute = 1 << 6 // Reverse video (swap fg/bg)
	AttrHidden        Attribute = 1 << 7 // Hidden/invisible text
	AttrStrikethrough Attribute = 1 << 8
	AttrHyperlink     Attribute = 1 << 9 // Cell is part of a hyperlink
)

// Has returns true if the attribute set contains the given attribute.
func (a Attribute) Has(attr Attribute) bool {
	return a&attr != 0
}

// With returns a new attribute set with the given attribute added.
func (a Attribute) With(attr Attribute) Attribute {
	return a | attr
}

// Without returns a new attribute set with the given attribute removed.
func (a Attribute) Without(attr Attribute) Attribute {
	return a &^ attr
}

// Style represents the visual style of a cell.
type Style struct {
	Foreground Color
	Background Color
	Attributes Attribute
}

// DefaultStyle returns the default style.
func DefaultStyle() Style {
	return Style{
		Foreground: ColorDefault,
		Background: ColorDefault,
		Attributes: AttrNone,
	}
}

// NewStyle creates a style with the given foreground color.
func NewStyle(fg Color) Style {
	return Style{
		Foreground: fg,
		Background: ColorDefault,
		Attributes: AttrNone,
	}
}

// WithForeground returns a new style with the given foreground color.
func (s Style) WithForeground(fg Color) Style {
	s.Foreground = fg
	return s
}

// WithBackground returns a new style with the given background color.
func (s Style) WithBackground(bg Color) Style {
	s.Background = bg
	return s
}

// WithAttributes returns a new style with the given attributes.
func (s Style) WithAttributes(attrs Attribute) Style {
	s.Attributes = attrs
	return s
}

// Add returns a new style with attr added.
func (s Style) Add(attr Attribute) Style {
	s.Attributes |= attr
	return s
}

// Remove returns a new style with attr removed.
func (s Style) Remove(attr Attribute) Style {
	s.Attributes &^= attr
	return s
}

// Bold returns a new style with bold attribute added.
func (s Style) Bold() Style { return s.Add(AttrBold) }

// Italic returns a new style with italic attribute added.
func (s Style) Italic() Style { return s.Add(AttrItalic) }

// Underline returns a new style with underline attribute added.
func (s Style) Underline() Style { return s.Add(AttrUnderline) }

// Reverse returns a new style with reverse video attribute added.
func (s Style) Reverse() Style { return s.Add(AttrReverse) }

// Strikethrough returns a new style with strikethrough attribute added.
func (s Style) Strikethrough() Style { return s.Add(AttrStrikethrough) }

// Hyperlink returns a new style marking the cell as hyperlink content.
func (s Style) Hyperlink() Style { return s.Add(AttrHyperlink) }

// Equals returns true if two styles are identical.
func (s Style) Equals(other Style) bool {
	return s.Foreground.Equals(other.Foreground) &&
		s.Background.Equals(other.Background) &&
		s.Attributes == other.Attributes
}

// IsDefault returns true if this is the default style.
func (s Style) IsDefault() bool {
	return s.Foreground.IsDefault() &&
		s.Background.IsDefault() &&
		s.Attributes == AttrNone
}

// ResolveColors returns the packed foreground and background colors that
// should actually be painted, swapping them when the style is reversed.
func (s Style) ResolveColors(defaultFg, defaultBg uint32) (fg, bg uint32) {
	fg = s.Foreground.RGB(defaultFg)
	bg = s.Background.RGB(defaultBg)
	if s.Attributes.Has(AttrReverse) {
		fg, bg = bg, fg
	}
	return fg, bg
}
