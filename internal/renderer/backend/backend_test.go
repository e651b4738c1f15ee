package backend

import (
	"errors"
	"testing"

	"github.com/dshills/webterm/internal/renderer/core"
	"github.com/dshills/webterm/internal/renderer/event"
)

func TestCursorShapeShowHide(t *testing.T) {
	base := core.DefaultStyle().Bold()

	tests := []struct {
		shape CursorShape
		attr  core.Attribute
	}{
		{CursorSteadyBlock, core.AttrReverse},
		{CursorSteadyUnderScore, core.AttrUnderline},
	}
	for _, tt := range tests {
		t.Run(tt.shape.String(), func(t *testing.T) {
			shown := tt.shape.Show(base)
			if !shown.Attributes.Has(tt.attr) {
				t.Errorf("Show() = %b, want %b set", shown.Attributes, tt.attr)
			}
			if !shown.Attributes.Has(core.AttrBold) {
				t.Error("Show() should keep other attributes")
			}
			if got := tt.shape.Hide(shown); got != base {
				t.Errorf("Hide(Show()) = %+v, want %+v", got, base)
			}
		})
	}

	if CursorNone.Show(base) != base || CursorNone.Hide(base) != base {
		t.Error("CursorNone should not change the style")
	}
}

func TestCursorShapeCSS(t *testing.T) {
	tests := []struct {
		shape CursorShape
		value string
		ok    bool
	}{
		{CursorSteadyBlock, "none", true},
		{CursorSteadyUnderScore, "underline", true},
		{CursorNone, "", false},
	}
	for _, tt := range tests {
		value, ok := tt.shape.CSSValue()
		if value != tt.value || ok != tt.ok {
			t.Errorf("%v.CSSValue() = (%q, %v), want (%q, %v)", tt.shape, value, ok, tt.value, tt.ok)
		}
	}
}

func TestParseCursorShape(t *testing.T) {
	tests := []struct {
		in      string
		want    CursorShape
		wantErr bool
	}{
		{"block", CursorSteadyBlock, false},
		{"", CursorSteadyBlock, false},
		{"Underscore", CursorSteadyUnderScore, false},
		{"none", CursorNone, false},
		{"beam", CursorSteadyBlock, true},
	}
	for _, tt := range tests {
		got, err := ParseCursorShape(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseCursorShape(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseCursorShape(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCursorOverlay(t *testing.T) {
	grid := core.NewGrid(3, 2)
	grid.Set(1, 1, core.NewCell("x"))
	before := grid.Clone()

	o := CursorOverlay{Shape: CursorSteadyBlock}
	pos := core.NewPosition(1, 1)
	o.Apply(grid, &pos)

	if !o.Applied() {
		t.Fatal("overlay should be applied")
	}
	if !grid.At(1, 1).Style.Attributes.Has(core.AttrReverse) {
		t.Error("cursor cell should be reversed while applied")
	}
	if grid.At(1, 1).Symbol != "x" {
		t.Error("overlay should not change the symbol")
	}

	// Applying twice must not lose the saved original.
	o.Apply(grid, &pos)
	o.Revert(grid)
	if !grid.Equal(before) {
		t.Error("Revert should restore the grid exactly")
	}
	o.Revert(grid)
	if !grid.Equal(before) {
		t.Error("second Revert should be a no-op")
	}
}

func TestCursorOverlayNoop(t *testing.T) {
	grid := core.NewGrid(2, 2)
	before := grid.Clone()

	o := CursorOverlay{Shape: CursorSteadyUnderScore}
	o.Apply(grid, nil)
	out := core.NewPosition(5, 5)
	o.Apply(grid, &out)
	if o.Applied() || !grid.Equal(before) {
		t.Error("nil or out-of-range position should be a no-op")
	}

	none := CursorOverlay{Shape: CursorNone}
	in := core.NewPosition(0, 0)
	none.Apply(grid, &in)
	if none.Applied() {
		t.Error("CursorNone should never apply")
	}
}

func TestRendererError(t *testing.T) {
	cause := errors.New("context lost")
	err := WrapRenderer("render", cause)

	var rerr *RendererError
	if !errors.As(err, &rerr) {
		t.Fatalf("error %v is not a *RendererError", err)
	}
	if rerr.Op != "render" {
		t.Errorf("Op = %q, want %q", rerr.Op, "render")
	}
	if !errors.Is(err, cause) {
		t.Error("RendererError should unwrap to its cause")
	}
	if WrapRenderer("render", nil) != nil {
		t.Error("WrapRenderer(nil) should be nil")
	}
}

func TestNullBackend(t *testing.T) {
	b := NewNullBackend(4, 2)
	var _ Backend = b
	var _ MouseEventHandler = b
	var _ KeyEventHandler = b

	if got := b.Size(); got != (core.Size{Width: 4, Height: 2}) {
		t.Errorf("Size() = %+v, want 4x2", got)
	}

	cell := core.NewCell("z")
	if err := b.Draw([]Change{{X: 3, Y: 1, Cell: cell}, {X: 9, Y: 9, Cell: cell}}); err != nil {
		t.Fatal(err)
	}
	if b.Cell(3, 1) != cell {
		t.Error("Draw should store the cell")
	}
	if len(b.Draws()) != 1 || len(b.Draws()[0]) != 2 {
		t.Errorf("Draws() = %v, want one batch of two", b.Draws())
	}

	if err := b.Clear(); err != nil {
		t.Fatal(err)
	}
	if b.Cell(3, 1) != core.EmptyCell() {
		t.Error("Clear should blank every cell")
	}

	var got []event.MouseEvent
	b.SendMouse(event.MouseEvent{})
	if err := b.OnMouseEvent(func(ev event.MouseEvent) { got = append(got, ev) }); err != nil {
		t.Fatal(err)
	}
	b.SendMouse(event.MouseEvent{Kind: event.MouseMoved, Col: 1})
	b.ClearMouseEvents()
	b.SendMouse(event.MouseEvent{Kind: event.MouseMoved, Col: 2})
	if len(got) != 1 || got[0].Col != 1 {
		t.Errorf("mouse events = %v, want only the registered one", got)
	}
}

func TestToChanges(t *testing.T) {
	grid := core.NewGrid(2, 2)
	grid.Set(1, 0, core.NewCell("a"))

	changes := ToChanges(grid)
	if len(changes) != 4 {
		t.Fatalf("len = %d, want 4", len(changes))
	}
	if changes[1].X != 1 || changes[1].Y != 0 || changes[1].Cell.Symbol != "a" {
		t.Errorf("changes[1] = %+v, want (1,0) 'a'", changes[1])
	}
	if changes[2].X != 0 || changes[2].Y != 1 {
		t.Errorf("changes[2] = %+v, want (0,1)", changes[2])
	}
}
