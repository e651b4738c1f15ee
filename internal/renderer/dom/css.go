package dom

import (
	"strings"

	"github.com/dshills/webterm/internal/renderer/core"
)

// CellCSS returns the inline style for a cell span.
func CellCSS(c core.Cell) string {
	fg, bg := c.Style.ResolveColors(core.DefaultForeground, core.DefaultBackground)
	attrs := c.Style.Attributes

	var sb strings.Builder
	sb.WriteString("color: ")
	sb.WriteString(core.CSSColor(fg))
	sb.WriteString("; background-color: ")
	sb.WriteString(core.CSSColor(bg))
	sb.WriteString(";")

	if attrs.Has(core.AttrBold) {
		sb.WriteString(" font-weight: bold;")
	}
	if attrs.Has(core.AttrDim) {
		sb.WriteString(" opacity: 0.5;")
	}
	if attrs.Has(core.AttrItalic) {
		sb.WriteString(" font-style: italic;")
	}
	if attrs.Has(core.AttrHidden) {
		sb.WriteString(" visibility: hidden;")
	}

	var deco []string
	if attrs.Has(core.AttrUnderline) {
		deco = append(deco, "underline")
	}
	if attrs.Has(core.AttrStrikethrough) {
		deco = append(deco, "line-through")
	}
	if len(deco) > 0 {
		sb.WriteString(" text-decoration: ")
		sb.WriteString(strings.Join(deco, " "))
		sb.WriteString(";")
	}
	return sb.String()
}
