package core

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Cell represents a single terminal cell.
type Cell struct {
	// Symbol is the grapheme cluster to display.
	// An empty symbol marks the continuation of a preceding wide glyph.
	Symbol string

	// Style is the visual style for this cell.
	Style Style
}

// EmptyCell returns a blank cell with default style.
func EmptyCell() Cell {
	return Cell{
		Symbol: " ",
		Style:  DefaultStyle(),
	}
}

// NewCell creates a cell with the given symbol and default style.
func NewCell(symbol string) Cell {
	return Cell{
		Symbol: symbol,
		Style:  DefaultStyle(),
	}
}

// NewStyledCell creates a cell with the given symbol and style.
func NewStyledCell(symbol string, style Style) Cell {
	return Cell{
		Symbol: symbol,
		Style:  style,
	}
}

// ContinuationCell returns the placeholder written after a wide glyph.
func ContinuationCell() Cell {
	return Cell{Style: DefaultStyle()}
}

// WithStyle returns a new cell with the given style.
func (c Cell) WithStyle(style Style) Cell {
	c.Style = style
	return c
}

// WithSymbol returns a new cell with the given symbol.
func (c Cell) WithSymbol(symbol string) Cell {
	c.Symbol = symbol
	return c
}

// IsBlank returns true if the cell paints no glyph.
func (c Cell) IsBlank() bool {
	return c.Symbol == " " || c.Symbol == ""
}

// IsContinuation returns true if this is the second cell of a wide glyph.
func (c Cell) IsContinuation() bool {
	return c.Symbol == ""
}

// IsASCII returns true if every byte of the symbol is ASCII.
func (c Cell) IsASCII() bool {
	for i := 0; i < len(c.Symbol); i++ {
		if c.Symbol[i] >= 0x80 {
			return false
		}
	}
	return true
}

// Width returns the display width of the cell's symbol in columns.
func (c Cell) Width() int {
	return SymbolWidth(c.Symbol)
}

// Equals returns true if two cells are identical.
func (c Cell) Equals(other Cell) bool {
	return c.Symbol == other.Symbol && c.Style.Equals(other.Style)
}

// SymbolWidth returns the number of terminal columns a grapheme occupies.
func SymbolWidth(symbol string) int {
	if symbol == "" {
		return 0
	}
	w := runewidth.StringWidth(symbol)
	if w == 0 {
		w = uniseg.StringWidth(symbol)
	}
	return w
}

// Graphemes splits s into grapheme clusters.
func Graphemes(s string) []string {
	if s == "" {
		return nil
	}
	g := uniseg.NewGraphemes(s)
	out := make([]string, 0, len(s))
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// CellsFromString creates cells from a string, one per grapheme cluster.
// Wide clusters are followed by a continuation cell.
func CellsFromString(s string, style Style) []Cell {
	clusters := Graphemes(s)
	cells := make([]Cell, 0, len(clusters))
	for _, g := range clusters {
		cells = append(cells, Cell{Symbol: g, Style: style})
		if SymbolWidth(g) == 2 {
			cells = append(cells, ContinuationCell())
		}
	}
	return cells
}

// StringFromCells converts cells back to a string.
// Skips continuation cells.
func StringFromCells(cells []Cell) string {
	var n int
	for _, c := range cells {
		n += len(c.Symbol)
	}
	buf := make([]byte, 0, n)
	for _, c := range cells {
		buf = append(buf, c.Symbol...)
	}
	return string(buf)
}
