package watchface

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is a non-premultiplied RGBA colour.
type Color struct {
	R, G, B, A uint8
}

// Palette used by the presets.
var (
	Black       = Color{0x00, 0x00, 0x00, 0xFF}
	White       = Color{0xFF, 0xFF, 0xFF, 0xFF}
	Gray        = Color{0x88, 0x88, 0x88, 0xFF}
	Red         = Color{0xFF, 0x00, 0x00, 0xFF}
	Orchid      = Color{0xF4, 0x54, 0xFF, 0xFF}
	Midnight    = Color{0x04, 0x0E, 0x25, 0xFF}
	Paper       = Color{0xFF, 0xFB, 0xFE, 0xFF}
	Transparent = Color{}
)

// ParseColor parses #RGB, #RRGGBB or #RRGGBBAA.
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]}) + "ff"
	case 6:
		hex += "ff"
	case 8:
	default:
		return Color{}, fmt.Errorf("color %q: want #RGB, #RRGGBB or #RRGGBBAA", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("color %q: %w", s, err)
	}
	return Color{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// Hex returns #RRGGBB, or #RRGGBBAA when the colour is not opaque.
func (c Color) Hex() string {
	if c.A == 0xFF {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

// Opacity returns the alpha channel in [0,1].
func (c Color) Opacity() float64 {
	return float64(c.A) / 0xFF
}

func (c Color) String() string { return c.Hex() }

// MarshalText encodes the colour as a hex string.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalText decodes a hex string.
func (c *Color) UnmarshalText(b []byte) error {
	parsed, err := ParseColor(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
