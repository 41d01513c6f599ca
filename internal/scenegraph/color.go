package scenegraph

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Color is a linear RGB color with components in [0, 1].
type Color struct {
	R, G, B float32
}

// Hex returns the color for a 0xRRGGBB value.
func Hex(v uint32) Color {
	return Color{
		R: float32(v>>16&0xff) / 255,
		G: float32(v>>8&0xff) / 255,
		B: float32(v&0xff) / 255,
	}
}

// FromRGBA converts an 8-bit color, ignoring alpha.
func FromRGBA(c color.RGBA) Color {
	return Color{R: float32(c.R) / 255, G: float32(c.G) / 255, B: float32(c.B) / 255}
}

// RGBA returns c as an opaque 8-bit color.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: to8(c.R), G: to8(c.G), B: to8(c.B), A: 255}
}

// HexString formats c as "#rrggbb".
func (c Color) HexString() string {
	rgba := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B)
}

func to8(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	default:
		return uint8(v*255 + 0.5)
	}
}

// ParseColor accepts "#rrggbb", "0xrrggbb" or an SVG color name such as "red".
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Color{}, fmt.Errorf("scenegraph: empty color")
	}
	hex := s
	switch {
	case strings.HasPrefix(hex, "#"):
		hex = hex[1:]
	case strings.HasPrefix(hex, "0x"), strings.HasPrefix(hex, "0X"):
		hex = hex[2:]
	default:
		if c, ok := colornames.Map[strings.ToLower(s)]; ok {
			return FromRGBA(c), nil
		}
	}
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("scenegraph: invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("scenegraph: invalid color %q: %w", s, err)
	}
	return Hex(uint32(v)), nil
}
