// Package gpu adapts a changed cell grid to an external batched GPU
// renderer. The renderer owns the glyph atlas, the GPU buffers and the draw
// call; this package packs cells, toggles the cursor around each frame and
// implements hyperlink hit-testing on top of it.
package gpu

import (
	"github.com/dshills/webterm/internal/web"
)

// CellData is one cell in the renderer's format.
type CellData struct {
	Symbol string
	Style  uint16 // PackStyle bits
	Fg     uint32
	Bg     uint32
}

// FlipColors swaps the foreground and background colors.
func (c *CellData) FlipColors() {
	c.Fg, c.Bg = c.Bg, c.Fg
}

// PositionedCell is a cell update at a grid position.
type PositionedCell struct {
	Col  int
	Row  int
	Data CellData
}

// Renderer is the external GPU renderer service.
type Renderer interface {
	// UpdateCells uploads the given cells.
	UpdateCells(cells []PositionedCell) error

	// Fill sets every cell to cell.
	Fill(cell CellData) error

	// CellData returns the stored cell at (col, row) for in-place edits,
	// or nil when out of range. Edits are picked up by the next RenderFrame.
	CellData(col, row int) *CellData

	// RenderFrame flushes pending uploads and issues the draw call.
	RenderFrame() error

	// Resize adapts the renderer to a new canvas size in CSS pixels.
	Resize(width, height int) error

	// CanvasSize returns the logical canvas size the renderer was laid out for.
	CanvasSize() (width, height int)

	// TerminalSize returns the grid size in cells.
	TerminalSize() (cols, rows int)

	// CellSize returns the cell size in CSS pixels.
	CellSize() (width, height float64)

	// Text returns the text of row between startCol and endCol inclusive.
	Text(row, startCol, endCol int) string

	// Canvas returns the canvas the renderer draws on.
	Canvas() web.Element
}

// BuildConfig is passed to a Builder.
type BuildConfig struct {
	// PaddingColor fills the canvas area not covered by the grid.
	PaddingColor uint32

	// FallbackGlyph replaces glyphs missing from the atlas.
	FallbackGlyph string

	// Selection enables mouse text selection inside the renderer.
	Selection SelectionMode
}

// Builder creates a renderer drawing on canvas. Hosts supply it; see
// NewJSBuilder for the browser binding.
type Builder func(canvas web.CanvasElement, cfg BuildConfig) (Renderer, error)
