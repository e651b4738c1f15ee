// Package config holds the settings that select and configure a web
// backend. Settings load from TOML or JSON documents on top of Default and
// convert into the options each backend package takes.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dshills/webterm/internal/logging"
	"github.com/dshills/webterm/internal/renderer/backend"
	"github.com/dshills/webterm/internal/renderer/canvas"
	"github.com/dshills/webterm/internal/renderer/core"
	"github.com/dshills/webterm/internal/renderer/dom"
	"github.com/dshills/webterm/internal/renderer/gpu"
	"github.com/dshills/webterm/internal/renderer/term"
)

// BackendKind names a presentation strategy.
type BackendKind string

// Backend kinds.
const (
	BackendCanvas BackendKind = "canvas"
	BackendDOM    BackendKind = "dom"
	BackendGPU    BackendKind = "webgl2"
)

// ParseBackendKind parses a backend name. "gpu" is accepted for webgl2.
func ParseBackendKind(s string) (BackendKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "canvas":
		return BackendCanvas, nil
	case "dom":
		return BackendDOM, nil
	case "webgl2", "gpu":
		return BackendGPU, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownBackend, s)
	}
}

// Options is the full webterm configuration.
type Options struct {
	// Backend selects the presentation strategy.
	Backend string `toml:"backend"`

	// Cursor is the cursor shape name ("block", "underscore", "none").
	Cursor string `toml:"cursor"`

	// MaxFPS limits the frame loop. Zero draws on every animation frame.
	MaxFPS int `toml:"max_fps"`

	Grid   GridOptions   `toml:"grid"`
	Canvas CanvasOptions `toml:"canvas"`
	GPU    GPUOptions    `toml:"gpu"`
	Log    LogOptions    `toml:"log"`
}

// GridOptions places the grid in the page.
type GridOptions struct {
	// ID of the parent element. Empty means <body>.
	ID string `toml:"id"`

	// Width and Height override the parent size in CSS pixels.
	// Zero uses the parent's client size.
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// CanvasOptions holds the 2D canvas backend settings.
type CanvasOptions struct {
	Scale           float64 `toml:"scale"`
	AlwaysClipCells bool    `toml:"always_clip_cells"`
	DebugColor      string  `toml:"debug_color"`
	Background      string  `toml:"background"`
}

// GPUOptions holds the WebGL2 backend settings.
type GPUOptions struct {
	MeasurePerformance bool   `toml:"measure_performance"`
	Selection          string `toml:"selection"`
	PaddingColor       string `toml:"padding_color"`
	FallbackGlyph      string `toml:"fallback_glyph"`

	// Hyperlinks enables hyperlink hit-testing.
	Hyperlinks bool `toml:"hyperlinks"`
}

// LogOptions configures the logger.
type LogOptions struct {
	Level string `toml:"level"`
	Color bool   `toml:"color"`
}

// Default returns the default configuration.
func Default() Options {
	return Options{
		Backend: string(BackendCanvas),
		Cursor:  "block",
		MaxFPS:  60,
		Canvas: CanvasOptions{
			Scale:      1,
			Background: "#000000",
		},
		GPU: GPUOptions{
			Selection:     "none",
			PaddingColor:  "#000000",
			FallbackGlyph: " ",
			Hyperlinks:    true,
		},
		Log: LogOptions{Level: "info"},
	}
}

// Validate checks every setting and returns all failures joined.
// Each failure is a *ValidationError.
func (o Options) Validate() error {
	var errs []error
	fail := func(path string, value any, code ValidationErrorCode, msg string) {
		errs = append(errs, &ValidationError{Path: path, Value: value, Code: code, Message: msg})
	}

	if _, err := ParseBackendKind(o.Backend); err != nil {
		fail("backend", o.Backend, ErrCodeInvalidEnum, "must be canvas, dom or webgl2")
	}
	if _, err := backend.ParseCursorShape(o.Cursor); err != nil {
		fail("cursor", o.Cursor, ErrCodeInvalidEnum, "must be block, underscore or none")
	}
	if o.MaxFPS < 0 {
		fail("max_fps", o.MaxFPS, ErrCodeOutOfRange, "must not be negative")
	}
	if o.Grid.Width < 0 {
		fail("grid.width", o.Grid.Width, ErrCodeOutOfRange, "must not be negative")
	}
	if o.Grid.Height < 0 {
		fail("grid.height", o.Grid.Height, ErrCodeOutOfRange, "must not be negative")
	}
	if o.Canvas.Scale <= 0 {
		fail("canvas.scale", o.Canvas.Scale, ErrCodeOutOfRange, "must be positive")
	}
	if _, err := parseColor(o.Canvas.Background); err != nil {
		fail("canvas.background", o.Canvas.Background, ErrCodePatternMismatch, "must be a hex color")
	}
	if _, err := gpu.ParseSelectionMode(o.GPU.Selection); err != nil {
		fail("gpu.selection", o.GPU.Selection, ErrCodeInvalidEnum, "must be none, block or linear")
	}
	if _, err := parseColor(o.GPU.PaddingColor); err != nil {
		fail("gpu.padding_color", o.GPU.PaddingColor, ErrCodePatternMismatch, "must be a hex color")
	}
	if o.Log.Level != "" && !logging.ValidLevel(o.Log.Level) {
		fail("log.level", o.Log.Level, ErrCodeInvalidEnum, "must be debug, info, warn or error")
	}
	return errors.Join(errs...)
}

// Kind returns the parsed backend kind.
func (o Options) Kind() (BackendKind, error) {
	return ParseBackendKind(o.Backend)
}

// LoggingOptions converts the log section.
func (o Options) LoggingOptions() logging.Options {
	return logging.Options{
		Level: logging.ParseLevel(o.Log.Level),
		Color: o.Log.Color,
	}
}

// TerminalOptions converts the frame loop settings.
func (o Options) TerminalOptions(log *slog.Logger) term.Options {
	return term.Options{MaxFPS: o.MaxFPS, Logger: log}
}

// CanvasBackendOptions converts the settings for the canvas backend.
func (o Options) CanvasBackendOptions(log *slog.Logger) (canvas.Options, error) {
	shape, err := backend.ParseCursorShape(o.Cursor)
	if err != nil {
		return canvas.Options{}, err
	}
	bg, err := parseColor(o.Canvas.Background)
	if err != nil {
		return canvas.Options{}, fmt.Errorf("canvas.background: %w", err)
	}
	return canvas.Options{
		GridID:          o.Grid.ID,
		Width:           o.Grid.Width,
		Height:          o.Grid.Height,
		Scale:           o.Canvas.Scale,
		AlwaysClipCells: o.Canvas.AlwaysClipCells,
		DebugColor:      o.Canvas.DebugColor,
		CursorShape:     shape,
		Background:      bg,
		Logger:          log,
	}, nil
}

// DOMBackendOptions converts the settings for the DOM backend.
func (o Options) DOMBackendOptions(log *slog.Logger) (dom.Options, error) {
	shape, err := backend.ParseCursorShape(o.Cursor)
	if err != nil {
		return dom.Options{}, err
	}
	return dom.Options{
		GridID:      o.Grid.ID,
		CursorShape: shape,
		Logger:      log,
	}, nil
}

// GPUBackendOptions converts the settings for the GPU backend. onClick is
// installed as the hyperlink callback when hyperlinks are enabled.
func (o Options) GPUBackendOptions(log *slog.Logger, onClick func(string)) (gpu.Options, error) {
	shape, err := backend.ParseCursorShape(o.Cursor)
	if err != nil {
		return gpu.Options{}, err
	}
	mode, err := gpu.ParseSelectionMode(o.GPU.Selection)
	if err != nil {
		return gpu.Options{}, err
	}
	padding, err := parseColor(o.GPU.PaddingColor)
	if err != nil {
		return gpu.Options{}, fmt.Errorf("gpu.padding_color: %w", err)
	}
	opts := gpu.Options{
		GridID:             o.Grid.ID,
		Width:              o.Grid.Width,
		Height:             o.Grid.Height,
		CursorShape:        shape,
		MeasurePerformance: o.GPU.MeasurePerformance,
		SelectionMode:      mode,
		PaddingColor:       padding,
		FallbackGlyph:      o.GPU.FallbackGlyph,
		Logger:             log,
	}
	if o.GPU.Hyperlinks {
		opts.OnHyperlinkClick = onClick
	}
	return opts, nil
}

// parseColor parses a hex color. Empty means black.
func parseColor(s string) (core.Color, error) {
	if s == "" {
		return core.ColorBlack, nil
	}
	return core.ColorFromHex(s)
}
