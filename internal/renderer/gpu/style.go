package gpu

import (
	"github.com/dshills/webterm/internal/renderer/core"
)

// Renderer style bits.
const (
	StyleBold           uint16 = 1 << 10
	StyleItalic         uint16 = 1 << 11
	EffectUnderline     uint16 = 1 << 13
	EffectStrikethrough uint16 = 1 << 14
)

// PackStyle maps cell attributes onto renderer style bits.
//
//	bold          bit 0 -> bit 10
//	italic        bit 2 -> bit 11
//	underline     bit 3 -> bit 13
//	strikethrough bit 8 -> bit 14
func PackStyle(a core.Attribute) uint16 {
	m := uint16(a)
	return (m<<10)&StyleBold |
		(m<<9)&StyleItalic |
		(m<<10)&EffectUnderline |
		(m<<6)&EffectStrikethrough
}

// CellDataFor converts a cell into the renderer format.
func CellDataFor(c core.Cell) CellData {
	fg, bg := c.Style.ResolveColors(core.DefaultForeground, core.DefaultBackground)
	return CellData{
		Symbol: c.Symbol,
		Style:  PackStyle(c.Style.Attributes),
		Fg:     fg,
		Bg:     bg,
	}
}

// BlankCell is the cell Clear fills the grid with.
var BlankCell = CellData{Symbol: " ", Style: 0, Fg: 0xffffff, Bg: 0x000000}
