package gpu

import (
	"fmt"
	"strings"
)

// SelectionMode selects how the renderer's mouse selection extends.
type SelectionMode uint8

const (
	// SelectionNone disables mouse selection.
	SelectionNone SelectionMode = iota

	// SelectionBlock selects a rectangle of cells.
	SelectionBlock

	// SelectionLinear selects along the text flow.
	SelectionLinear
)

// String returns the configuration name of the mode.
func (m SelectionMode) String() string {
	switch m {
	case SelectionNone:
		return "none"
	case SelectionBlock:
		return "block"
	case SelectionLinear:
		return "linear"
	default:
		return fmt.Sprintf("SelectionMode(%d)", m)
	}
}

// ParseSelectionMode parses a configuration name. Empty means none.
func ParseSelectionMode(s string) (SelectionMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "off":
		return SelectionNone, nil
	case "block":
		return SelectionBlock, nil
	case "linear":
		return SelectionLinear, nil
	default:
		return SelectionNone, fmt.Errorf("unknown selection mode %q", s)
	}
}
