package config

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// LoadTOML parses a TOML document on top of Default and validates the
// result. Keys the document omits keep their defaults; unknown keys are
// an error.
func LoadTOML(source string, data []byte) (Options, error) {
	o := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&o); err != nil {
		return Options{}, tomlError(source, err)
	}
	if err := o.Validate(); err != nil {
		return Options{}, err
	}
	return o, nil
}

func tomlError(source string, err error) error {
	perr := &ParseError{Source: source, Message: err.Error(), Err: err}

	var derr *toml.DecodeError
	if errors.As(err, &derr) {
		perr.Line, perr.Column = derr.Position()
	}
	var serr *toml.StrictMissingError
	if errors.As(err, &serr) && len(serr.Errors) > 0 {
		first := serr.Errors[0]
		perr.Line, perr.Column = first.Position()
		perr.Message = "unknown key " + strings.Join(first.Key(), ".")
	}
	return perr
}

// LoadJSON reads settings from a JSON document on top of Default and
// validates the result. Partial documents are allowed: only the paths
// present are applied. Unknown keys are ignored.
func LoadJSON(source string, data []byte) (Options, error) {
	if !gjson.ValidBytes(data) {
		return Options{}, &ParseError{Source: source, Message: "invalid JSON"}
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return Options{}, &ParseError{Source: source, Message: "document is not an object"}
	}

	o := Default()
	for _, f := range o.fields() {
		r := root.Get(f.path)
		if !r.Exists() || r.Type == gjson.Null {
			continue
		}
		if err := f.set(r); err != nil {
			return Options{}, err
		}
	}
	if err := o.Validate(); err != nil {
		return Options{}, err
	}
	return o, nil
}

// EncodeJSON encodes every setting as a JSON document LoadJSON accepts.
func EncodeJSON(o Options) ([]byte, error) {
	out := []byte("{}")
	for _, f := range o.fields() {
		var err error
		out, err = sjson.SetBytes(out, f.path, f.value())
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", f.path, err)
		}
	}
	return out, nil
}

// field binds a document path to a setting.
type field struct {
	path string
	ptr  any
}

// fields lists every setting by document path, in encoding order.
func (o *Options) fields() []field {
	return []field{
		{"backend", &o.Backend},
		{"cursor", &o.Cursor},
		{"max_fps", &o.MaxFPS},
		{"grid.id", &o.Grid.ID},
		{"grid.width", &o.Grid.Width},
		{"grid.height", &o.Grid.Height},
		{"canvas.scale", &o.Canvas.Scale},
		{"canvas.always_clip_cells", &o.Canvas.AlwaysClipCells},
		{"canvas.debug_color", &o.Canvas.DebugColor},
		{"canvas.background", &o.Canvas.Background},
		{"gpu.measure_performance", &o.GPU.MeasurePerformance},
		{"gpu.selection", &o.GPU.Selection},
		{"gpu.padding_color", &o.GPU.PaddingColor},
		{"gpu.fallback_glyph", &o.GPU.FallbackGlyph},
		{"gpu.hyperlinks", &o.GPU.Hyperlinks},
		{"log.level", &o.Log.Level},
		{"log.color", &o.Log.Color},
	}
}

func (f field) value() any {
	switch p := f.ptr.(type) {
	case *string:
		return *p
	case *int:
		return *p
	case *float64:
		return *p
	case *bool:
		return *p
	default:
		panic(fmt.Sprintf("config: unsupported field type %T", f.ptr))
	}
}

func (f field) set(r gjson.Result) error {
	switch p := f.ptr.(type) {
	case *string:
		if r.Type != gjson.String {
			return f.typeError("string", r)
		}
		*p = r.String()
	case *int:
		if r.Type != gjson.Number || r.Float() != float64(r.Int()) {
			return f.typeError("integer", r)
		}
		*p = int(r.Int())
	case *float64:
		if r.Type != gjson.Number {
			return f.typeError("number", r)
		}
		*p = r.Float()
	case *bool:
		if r.Type != gjson.True && r.Type != gjson.False {
			return f.typeError("boolean", r)
		}
		*p = r.Bool()
	default:
		panic(fmt.Sprintf("config: unsupported field type %T", f.ptr))
	}
	return nil
}

func (f field) typeError(expected string, r gjson.Result) error {
	actual := r.Type.String()
	if r.IsObject() {
		actual = "object"
	} else if r.IsArray() {
		actual = "array"
	}
	return &TypeError{Path: f.path, Expected: expected, Actual: actual}
}
