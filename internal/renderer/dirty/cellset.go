package dirty

import (
	"github.com/bits-and-blooms/bitset"
)

// CellSet is a per-cell boolean flag set over a fixed-size grid.
type CellSet struct {
	width  int
	height int
	bits   *bitset.BitSet
}

// NewCellSet creates an empty set for a width x height grid.
func NewCellSet(width, height int) *CellSet {
	s := &CellSet{}
	s.Resize(width, height)
	return s
}

// Resize changes the tracked dimensions and clears every flag.
func (s *CellSet) Resize(width, height int) {
	width = max(width, 0)
	height = max(height, 0)
	s.width = width
	s.height = height
	s.bits = bitset.New(uint(width * height))
}

// Width returns the tracked grid width.
func (s *CellSet) Width() int { return s.width }

// Height returns the tracked grid height.
func (s *CellSet) Height() int { return s.height }

// Clear resets every flag.
func (s *CellSet) Clear() {
	s.bits.ClearAll()
}

// Set sets or clears the flag at (col, row). Out-of-range writes are ignored.
func (s *CellSet) Set(col, row int, on bool) {
	if !s.inBounds(col, row) {
		return
	}
	i := uint(row*s.width + col)
	if on {
		s.bits.Set(i)
	} else {
		s.bits.Clear(i)
	}
}

// Test reports whether (col, row) is flagged. Out-of-range reads are false.
func (s *CellSet) Test(col, row int) bool {
	if !s.inBounds(col, row) {
		return false
	}
	return s.bits.Test(uint(row*s.width + col))
}

// Count returns the number of flagged cells.
func (s *CellSet) Count() int {
	return int(s.bits.Count())
}

// Span returns the inclusive column range of the maximal run of flagged
// cells on row that contains col. ok is false when (col, row) is not flagged.
func (s *CellSet) Span(col, row int) (start, end int, ok bool) {
	if !s.Test(col, row) {
		return 0, 0, false
	}
	start, end = col, col
	for start > 0 && s.Test(start-1, row) {
		start--
	}
	for end+1 < s.width && s.Test(end+1, row) {
		end++
	}
	return start, end, true
}

func (s *CellSet) inBounds(col, row int) bool {
	return col >= 0 && col < s.width && row >= 0 && row < s.height
}
