package backend

import (
	"fmt"
	"strings"

	"github.com/dshills/webterm/internal/renderer/core"
)

// CursorShape selects how the cursor cell is decorated.
type CursorShape uint8

const (
	// CursorSteadyBlock reverses the cell colors.
	CursorSteadyBlock CursorShape = iota

	// CursorSteadyUnderScore underlines the cell.
	CursorSteadyUnderScore

	// CursorNone draws nothing; also used to clear cursor decoration.
	CursorNone
)

// CursorCSSField is the CSS property DOM backends use for the cursor.
const CursorCSSField = "text-decoration"

// String returns the configuration name of the shape.
func (s CursorShape) String() string {
	switch s {
	case CursorSteadyBlock:
		return "block"
	case CursorSteadyUnderScore:
		return "underscore"
	case CursorNone:
		return "none"
	default:
		return fmt.Sprintf("CursorShape(%d)", s)
	}
}

// ParseCursorShape parses a configuration name.
func ParseCursorShape(s string) (CursorShape, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "block", "steady-block":
		return CursorSteadyBlock, nil
	case "underscore", "underline", "steady-underscore":
		return CursorSteadyUnderScore, nil
	case "none":
		return CursorNone, nil
	default:
		return CursorSteadyBlock, fmt.Errorf("unknown cursor shape %q", s)
	}
}

// Show returns style with the cursor decoration applied.
func (s CursorShape) Show(style core.Style) core.Style {
	switch s {
	case CursorSteadyBlock:
		return style.Add(core.AttrReverse)
	case CursorSteadyUnderScore:
		return style.Add(core.AttrUnderline)
	default:
		return style
	}
}

// Hide returns style with the cursor decoration removed.
func (s CursorShape) Hide(style core.Style) core.Style {
	switch s {
	case CursorSteadyBlock:
		return style.Remove(core.AttrReverse)
	case CursorSteadyUnderScore:
		return style.Remove(core.AttrUnderline)
	default:
		return style
	}
}

// CSSValue returns the CursorCSSField value for the shape. ok is false
// when the field should be removed instead.
func (s CursorShape) CSSValue() (value string, ok bool) {
	switch s {
	case CursorSteadyBlock:
		return "none", true
	case CursorSteadyUnderScore:
		return "underline", true
	default:
		return "", false
	}
}

// CursorOverlay applies the cursor decoration to one grid cell for the
// duration of a paint and restores the cell afterwards.
type CursorOverlay struct {
	Shape CursorShape

	applied bool
	pos     core.Position
	saved   core.Cell
}

// Apply decorates the cell at pos, remembering its original value.
// A nil position or an out-of-range position is a no-op.
func (o *CursorOverlay) Apply(grid *core.Grid, pos *core.Position) {
	if o.applied || pos == nil || o.Shape == CursorNone {
		return
	}
	cell := grid.Ptr(pos.X, pos.Y)
	if cell == nil {
		return
	}
	o.saved = *cell
	o.pos = *pos
	o.applied = true
	cell.Style = o.Shape.Show(cell.Style)
}

// Revert restores the cell decorated by Apply.
func (o *CursorOverlay) Revert(grid *core.Grid) {
	if !o.applied {
		return
	}
	o.applied = false
	if cell := grid.Ptr(o.pos.X, o.pos.Y); cell != nil {
		*cell = o.saved
	}
}

// Applied reports whether a decoration is currently in place.
func (o *CursorOverlay) Applied() bool {
	return o.applied
}
