//go:build js && wasm

package gpu

import (
	"errors"
	"fmt"
	"strings"
	"syscall/js"

	"github.com/dshills/webterm/internal/web"
	"github.com/dshills/webterm/internal/web/jsweb"
)

// NewJSBuilder returns a Builder backed by a JS renderer factory.
//
// The factory is called as factory(canvas, {paddingColor, fallbackGlyph,
// selection}) and must return an object with the methods
//
//	updateCells(batch)        batch is a flat array of col, row, symbol, style, fg, bg
//	render()
//	resize(width, height)
//	canvasSize()              -> [width, height]
//	terminalSize()            -> [cols, rows]
//	cellSize()                -> [width, height]
//
// Cell contents are mirrored on the Go side so CellData and Text need no
// round trip; cells edited through CellData are uploaded by the next
// RenderFrame.
func NewJSBuilder(factory js.Value) Builder {
	return func(canvas web.CanvasElement, cfg BuildConfig) (Renderer, error) {
		if factory.Type() != js.TypeFunction {
			return nil, errors.New("renderer factory is not a function")
		}
		jv, ok := canvas.(interface{ Value() js.Value })
		if !ok {
			return nil, fmt.Errorf("canvas %T is not a JS element", canvas)
		}

		obj, err := invoke(factory, "", jv.Value(), map[string]any{
			"paddingColor":  cfg.PaddingColor,
			"fallbackGlyph": cfg.FallbackGlyph,
			"selection":     cfg.Selection.String(),
		})
		if err != nil {
			return nil, err
		}
		if obj.Type() != js.TypeObject {
			return nil, errors.New("renderer factory returned no object")
		}

		r := &jsRenderer{obj: obj, canvas: jsweb.Wrap(jv.Value())}
		r.layout()
		return r, nil
	}
}

// invoke calls fn (method empty) or a method of fn, converting a thrown
// exception into an error.
func invoke(v js.Value, method string, args ...any) (res js.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			name := method
			if name == "" {
				name = "factory"
			}
			err = fmt.Errorf("renderer %s: %v", name, r)
		}
	}()
	if method == "" {
		return v.Invoke(args...), nil
	}
	return v.Call(method, args...), nil
}

type jsRenderer struct {
	obj    js.Value
	canvas *jsweb.Element

	cols, rows int
	cells      []CellData
	touched    map[int]struct{}
}

// layout sizes the cell mirror to the renderer's grid. The mirror is kept
// when the grid dimensions are unchanged.
func (r *jsRenderer) layout() {
	cols, rows := r.pair("terminalSize")
	if r.cells != nil && cols == r.cols && rows == r.rows {
		return
	}
	r.cols, r.rows = cols, rows
	r.cells = make([]CellData, r.cols*r.rows)
	for i := range r.cells {
		r.cells[i] = BlankCell
	}
	r.touched = make(map[int]struct{})
}

func (r *jsRenderer) pairFloat(method string) (float64, float64) {
	v, err := invoke(r.obj, method)
	if err != nil || v.Type() != js.TypeObject || v.Length() < 2 {
		return 0, 0
	}
	return v.Index(0).Float(), v.Index(1).Float()
}

func (r *jsRenderer) pair(method string) (int, int) {
	a, b := r.pairFloat(method)
	return int(a), int(b)
}

func (r *jsRenderer) index(col, row int) (int, bool) {
	if col < 0 || col >= r.cols || row < 0 || row >= r.rows {
		return 0, false
	}
	return row*r.cols + col, true
}

func (r *jsRenderer) upload(cells []PositionedCell) error {
	if len(cells) == 0 {
		return nil
	}
	batch := make([]any, 0, len(cells)*6)
	for _, c := range cells {
		batch = append(batch, c.Col, c.Row, c.Data.Symbol, int(c.Data.Style), int(c.Data.Fg), int(c.Data.Bg))
	}
	_, err := invoke(r.obj, "updateCells", batch)
	return err
}

func (r *jsRenderer) UpdateCells(cells []PositionedCell) error {
	for _, c := range cells {
		if i, ok := r.index(c.Col, c.Row); ok {
			r.cells[i] = c.Data
		}
	}
	return r.upload(cells)
}

func (r *jsRenderer) Fill(cell CellData) error {
	all := make([]PositionedCell, 0, len(r.cells))
	for i := range r.cells {
		r.cells[i] = cell
		all = append(all, PositionedCell{Col: i % r.cols, Row: i / r.cols, Data: cell})
	}
	clear(r.touched)
	return r.upload(all)
}

func (r *jsRenderer) CellData(col, row int) *CellData {
	i, ok := r.index(col, row)
	if !ok {
		return nil
	}
	r.touched[i] = struct{}{}
	return &r.cells[i]
}

func (r *jsRenderer) RenderFrame() error {
	if len(r.touched) > 0 {
		edits := make([]PositionedCell, 0, len(r.touched))
		for i := range r.touched {
			edits = append(edits, PositionedCell{Col: i % r.cols, Row: i / r.cols, Data: r.cells[i]})
		}
		clear(r.touched)
		if err := r.upload(edits); err != nil {
			return err
		}
	}
	_, err := invoke(r.obj, "render")
	return err
}

func (r *jsRenderer) Resize(width, height int) error {
	if _, err := invoke(r.obj, "resize", width, height); err != nil {
		return err
	}
	r.layout()
	return nil
}

func (r *jsRenderer) CanvasSize() (int, int)   { return r.pair("canvasSize") }
func (r *jsRenderer) TerminalSize() (int, int) { return r.cols, r.rows }

func (r *jsRenderer) CellSize() (float64, float64) {
	return r.pairFloat("cellSize")
}

func (r *jsRenderer) Text(row, startCol, endCol int) string {
	var sb strings.Builder
	for col := startCol; col <= endCol; col++ {
		if i, ok := r.index(col, row); ok {
			sb.WriteString(r.cells[i].Symbol)
		}
	}
	return sb.String()
}

func (r *jsRenderer) Canvas() web.Element {
	return r.canvas
}
