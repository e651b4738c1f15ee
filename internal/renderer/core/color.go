// Package core provides the shared cell, style and grid types used by every
// web backend. It has no browser dependencies so the diffing and layout logic
// built on it can be tested natively.
package core

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color represents a color value.
// Supports true color (RGB) and terminal palette colors.
type Color struct {
	R, G, B uint8
	// If Indexed is true, R contains the palette index (0-255).
	// G and B are ignored in indexed mode.
	Indexed bool
	// Default indicates the backend's default color for the slot
	// (foreground or background) the color is used in.
	Default bool
}

// ColorDefault represents the backend's default color.
var ColorDefault = Color{Default: true}

// Common colors.
var (
	ColorBlack   = Color{R: 0, G: 0, B: 0}
	ColorWhite   = Color{R: 255, G: 255, B: 255}
	ColorRed     = Color{R: 255, G: 0, B: 0}
	ColorGreen   = Color{R: 0, G: 255, B: 0}
	ColorBlue    = Color{R: 0, G: 0, B: 255}
	ColorYellow  = Color{R: 255, G: 255, B: 0}
	ColorCyan    = Color{R: 0, G: 255, B: 255}
	ColorMagenta = Color{R: 255, G: 0, B: 255}
	ColorGray    = Color{R: 128, G: 128, B: 128}
)

// Default fallbacks used when a backend is not configured otherwise.
const (
	DefaultForeground uint32 = 0xffffff
	DefaultBackground uint32 = 0x000000
)

// ColorFromRGB creates a true color from RGB components.
func ColorFromRGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// ColorFromIndex creates an indexed palette color.
func ColorFromIndex(index uint8) Color {
	return Color{R: index, Indexed: true}
}

// ColorFromUint32 creates a true color from a packed 0xRRGGBB value.
func ColorFromUint32(rgb uint32) Color {
	return Color{R: uint8(rgb >> 16), G: uint8(rgb >> 8), B: uint8(rgb)}
}

// ColorFromHex creates a color from a hex string.
// Supports formats: "#RGB", "#RRGGBB", "RGB", "RRGGBB".
func ColorFromHex(hex string) (Color, error) {
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	if len(hex) != 4 && len(hex) != 7 {
		return Color{}, fmt.Errorf("invalid hex color length: %s", hex)
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color: %s", hex)
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b}, nil
}

// IsDefault returns true if this is the default color.
func (c Color) IsDefault() bool {
	return c.Default
}

// Equals returns true if two colors are equal.
func (c Color) Equals(other Color) bool {
	if c.Default != other.Default {
		return false
	}
	if c.Default {
		return true
	}
	if c.Indexed != other.Indexed {
		return false
	}
	if c.Indexed {
		return c.R == other.R
	}
	return c.R == other.R && c.G == other.G && c.B == other.B
}

// RGB resolves the color to a packed 0xRRGGBB value. Default colors resolve
// to fallback and indexed colors go through the xterm 256-color palette.
func (c Color) RGB(fallback uint32) uint32 {
	switch {
	case c.Default:
		return fallback
	case c.Indexed:
		return palette[c.R]
	default:
		return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
	}
}

// String returns a string representation of the color.
func (c Color) String() string {
	if c.IsDefault() {
		return "default"
	}
	if c.Indexed {
		return fmt.Sprintf("idx(%d)", c.R)
	}
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// CSSColor formats a packed 0xRRGGBB value as a CSS hex color.
func CSSColor(rgb uint32) string {
	c := colorful.Color{
		R: float64(uint8(rgb>>16)) / 255,
		G: float64(uint8(rgb>>8)) / 255,
		B: float64(uint8(rgb)) / 255,
	}
	return c.Hex()
}

// palette is the xterm 256-color palette packed as 0xRRGGBB.
var palette = buildPalette()

var ansiColors = [16]string{
	"#000000", "#800000", "#008000", "#808000",
	"#000080", "#800080", "#008080", "#c0c0c0",
	"#808080", "#ff0000", "#00ff00", "#ffff00",
	"#0000ff", "#ff00ff", "#00ffff", "#ffffff",
}

func buildPalette() [256]uint32 {
	var p [256]uint32
	pack := func(c colorful.Color) uint32 {
		r, g, b := c.RGB255()
		return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
	}

	for i, hex := range ansiColors {
		c, err := colorful.Hex(hex)
		if err != nil {
			panic(err)
		}
		p[i] = pack(c)
	}

	// 6x6x6 color cube
	levels := [6]uint8{0, 95, 135, 175, 215, 255}
	for i := 0; i < 216; i++ {
		r, g, b := levels[i/36], levels[(i/6)%6], levels[i%6]
		p[16+i] = uint32(r)<<16 | uint32(g)<<8 | uint32(b)
	}

	// Grayscale ramp
	for i := 0; i < 24; i++ {
		v := uint8(8 + i*10)
		p[232+i] = uint32(v)<<16 | uint32(v)<<8 | uint32(v)
	}
	return p
}
