package core

// Grid is a flat, row-major rectangle of cells.
// The cell at (col, row) lives at index row*Width+col.
type Grid struct {
	Width  int
	Height int
	Cells  []Cell
}

// NewGrid creates a grid filled with empty cells.
func NewGrid(width, height int) *Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	g := &Grid{
		Width:  width,
		Height: height,
		Cells:  make([]Cell, width*height),
	}
	g.Reset()
	return g
}

// Size returns the grid dimensions.
func (g *Grid) Size() Size {
	return Size{Width: g.Width, Height: g.Height}
}

// Len returns the number of cells.
func (g *Grid) Len() int {
	return len(g.Cells)
}

// InBounds returns true if (col, row) addresses a cell.
func (g *Grid) InBounds(col, row int) bool {
	return col >= 0 && col < g.Width && row >= 0 && row < g.Height
}

// Index returns the flat index of (col, row). The caller must check bounds.
func (g *Grid) Index(col, row int) int {
	return row*g.Width + col
}

// PositionOf returns the (col, row) of a flat index.
func (g *Grid) PositionOf(index int) Position {
	if g.Width == 0 {
		return Position{}
	}
	return Position{X: index % g.Width, Y: index / g.Width}
}

// At returns the cell at (col, row). Out-of-range reads return an empty cell.
func (g *Grid) At(col, row int) Cell {
	if !g.InBounds(col, row) {
		return EmptyCell()
	}
	return g.Cells[g.Index(col, row)]
}

// Ptr returns a pointer to the cell at (col, row), or nil when out of range.
func (g *Grid) Ptr(col, row int) *Cell {
	if !g.InBounds(col, row) {
		return nil
	}
	return &g.Cells[g.Index(col, row)]
}

// Set writes a cell. Out-of-range writes are ignored.
func (g *Grid) Set(col, row int, cell Cell) bool {
	if !g.InBounds(col, row) {
		return false
	}
	g.Cells[g.Index(col, row)] = cell
	return true
}

// Reset fills every cell with an empty cell.
func (g *Grid) Reset() {
	empty := EmptyCell()
	for i := range g.Cells {
		g.Cells[i] = empty
	}
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	c := &Grid{
		Width:  g.Width,
		Height: g.Height,
		Cells:  make([]Cell, len(g.Cells)),
	}
	copy(c.Cells, g.Cells)
	return c
}

// CopyFrom makes g an exact copy of src, reusing g's storage when possible.
func (g *Grid) CopyFrom(src *Grid) {
	if cap(g.Cells) < len(src.Cells) {
		g.Cells = make([]Cell, len(src.Cells))
	}
	g.Cells = g.Cells[:len(src.Cells)]
	copy(g.Cells, src.Cells)
	g.Width = src.Width
	g.Height = src.Height
}

// Resize changes the grid dimensions, preserving the overlapping region.
// New cells are empty.
func (g *Grid) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if width == g.Width && height == g.Height {
		return
	}

	cells := make([]Cell, width*height)
	empty := EmptyCell()
	for i := range cells {
		cells[i] = empty
	}

	copyW := min(width, g.Width)
	copyH := min(height, g.Height)
	for row := 0; row < copyH; row++ {
		copy(cells[row*width:row*width+copyW], g.Cells[row*g.Width:row*g.Width+copyW])
	}

	g.Width = width
	g.Height = height
	g.Cells = cells
}

// Equal returns true if both grids have the same dimensions and cells.
func (g *Grid) Equal(other *Grid) bool {
	if g.Width != other.Width || g.Height != other.Height {
		return false
	}
	for i := range g.Cells {
		if !g.Cells[i].Equals(other.Cells[i]) {
			return false
		}
	}
	return true
}

// Row returns the cells of one row. The slice aliases the grid's storage.
func (g *Grid) Row(row int) []Cell {
	if row < 0 || row >= g.Height {
		return nil
	}
	start := row * g.Width
	return g.Cells[start : start+g.Width]
}
