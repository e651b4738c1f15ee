package dirty

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"

	"github.com/dshills/webterm/internal/renderer/core"
)

// Compute returns the set of cell indices whose content differs between
// current and previous. When force is true every index is marked.
//
// dst is reused when its length matches the grid area; pass nil to
// allocate. Both grids must have the same dimensions.
func Compute(current, previous *core.Grid, force bool, dst *bitset.BitSet) *bitset.BitSet {
	if current.Width != previous.Width || current.Height != previous.Height {
		panic(fmt.Sprintf("dirty: grid size mismatch %dx%d vs %dx%d",
			current.Width, current.Height, previous.Width, previous.Height))
	}

	n := uint(len(current.Cells))
	if dst == nil || dst.Len() != n {
		dst = bitset.New(n)
	} else {
		dst.ClearAll()
	}

	if force {
		for i := uint(0); i < n; i++ {
			dst.Set(i)
		}
		return dst
	}

	for i := range current.Cells {
		if !current.Cells[i].Equals(previous.Cells[i]) {
			dst.Set(uint(i))
		}
	}
	return dst
}

// Any reports whether any cell is marked dirty.
func Any(set *bitset.BitSet) bool {
	return set != nil && set.Any()
}

// IsDirty reports whether the cell at index i is marked.
func IsDirty(set *bitset.BitSet, i int) bool {
	return set != nil && i >= 0 && set.Test(uint(i))
}

// ForEachRowRegion walks the grid row by row and emits background fill
// regions for dirty cells. Runs never bridge a clean cell and never cross
// a row boundary.
func ForEachRowRegion(grid *core.Grid, set *bitset.BitSet, color func(core.Cell) uint32, emit func(Region)) {
	var m RowSpanMerger
	for row := 0; row < grid.Height; row++ {
		for col := 0; col < grid.Width; col++ {
			i := grid.Index(col, row)
			if !IsDirty(set, i) {
				if r, ok := m.Flush(); ok {
					emit(r)
				}
				continue
			}
			if r, ok := m.Process(col, row, color(grid.Cells[i])); ok {
				emit(r)
			}
		}
		if r, ok := m.Flush(); ok {
			emit(r)
		}
	}
}

// ForEachDirty calls fn for every dirty cell in row-major order.
func ForEachDirty(grid *core.Grid, set *bitset.BitSet, fn func(col, row int, cell core.Cell)) {
	if set == nil {
		return
	}
	for i, ok := set.NextSet(0); ok && int(i) < len(grid.Cells); i, ok = set.NextSet(i + 1) {
		p := grid.PositionOf(int(i))
		fn(p.X, p.Y, grid.Cells[i])
	}
}
