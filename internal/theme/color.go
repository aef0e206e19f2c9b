package theme

import (
	"encoding/hex"
	"fmt"
	"image/color"
	"strings"
)

// Color is an opaque RGB color.
type Color struct {
	R, G, B uint8
}

// ParseHex parses a "#rrggbb" or "rrggbb" string.
func ParseHex(s string) (Color, error) {
	digits := strings.TrimPrefix(s, "#")
	if len(digits) != 6 {
		return Color{}, fmt.Errorf("invalid hex color %q: want 6 hex digits", s)
	}
	b, err := hex.DecodeString(digits)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return Color{R: b[0], G: b[1], B: b[2]}, nil
}

// MustParseHex is ParseHex for static tables; it panics on malformed input.
func MustParseHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex returns the canonical lowercase "#rrggbb" form.
func (c Color) Hex() string {
	return "#" + hex.EncodeToString([]byte{c.R, c.G, c.B})
}

func (c Color) String() string { return c.Hex() }

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.Pixel().RGBA()
}

// Pixel returns c as a fully opaque color.RGBA.
func (c Color) Pixel() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xFF}
}

// Darken scales every channel by (1 - factor), truncating.
func (c Color) Darken(factor float32) Color {
	k := 1 - factor
	return Color{
		R: uint8(float32(c.R) * k),
		G: uint8(float32(c.G) * k),
		B: uint8(float32(c.B) * k),
	}
}
