package gridcast

import "image/color"

// Color represents an 8-bit RGBA color, the unit the pixel buffer is
// written in. Unlike image/color.RGBA it is not alpha-premultiplied.
type Color struct {
	R, G, B, A uint8
}

// RGB creates an opaque color from RGB components.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// RGBA creates a color from RGBA components.
func RGBA(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Hex creates a color from a hex string.
// Supports formats: "RGB", "RGBA", "RRGGBB", "RRGGBBAA".
func Hex(hex string) Color {
	if hex != "" && hex[0] == '#' {
		hex = hex[1:]
	}

	var r, g, b, a uint32
	a = 255

	switch len(hex) {
	case 3: // RGB
		parseHex(hex[0:1], &r)
		parseHex(hex[1:2], &g)
		parseHex(hex[2:3], &b)
		r, g, b = r*17, g*17, b*17
	case 4: // RGBA
		parseHex(hex[0:1], &r)
		parseHex(hex[1:2], &g)
		parseHex(hex[2:3], &b)
		parseHex(hex[3:4], &a)
		r, g, b, a = r*17, g*17, b*17, a*17
	case 6: // RRGGBB
		parseHex(hex[0:2], &r)
		parseHex(hex[2:4], &g)
		parseHex(hex[4:6], &b)
	case 8: // RRGGBBAA
		parseHex(hex[0:2], &r)
		parseHex(hex[2:4], &g)
		parseHex(hex[4:6], &b)
		parseHex(hex[6:8], &a)
	default:
		return Color{A: 255}
	}

	return Color{R: uint8(r), G: uint8(g), B: uint8(b), A: uint8(a)}
}

// parseHex is a helper for hex parsing
func parseHex(s string, val *uint32) {
	*val = 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		*val *= 16
		switch {
		case '0' <= c && c <= '9':
			*val += uint32(c - '0')
		case 'a' <= c && c <= 'f':
			*val += uint32(c - 'a' + 10)
		case 'A' <= c && c <= 'F':
			*val += uint32(c - 'A' + 10)
		default:
			return
		}
	}
}

// Scale multiplies the color channels by per-channel factors, saturating
// at 255. Alpha is left untouched. This is how lighting is applied.
func (c Color) Scale(r, g, b float64) Color {
	return Color{
		R: scale8(c.R, r),
		G: scale8(c.G, g),
		B: scale8(c.B, b),
		A: c.A,
	}
}

// scale8 multiplies an 8-bit channel by a non-negative factor with saturation.
func scale8(c uint8, f float64) uint8 {
	v := float64(c) * f
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

// Color converts to the standard color.Color interface.
func (c Color) Color() color.Color {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// FromColor converts a standard color.Color to Color.
func FromColor(c color.Color) Color {
	nrgba := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{R: nrgba.R, G: nrgba.G, B: nrgba.B, A: nrgba.A}
}

// Opaque reports whether the color is fully opaque. The renderer draws only
// fully opaque texels and skips the rest; solid colors are not skipped or
// forced opaque, they are written with their own alpha. There is no alpha
// blending.
func (c Color) Opaque() bool {
	return c.A == 255
}

// Common colors
var (
	Black       = RGB(0, 0, 0)
	White       = RGB(255, 255, 255)
	Red         = RGB(255, 0, 0)
	Green       = RGB(0, 255, 0)
	Blue        = RGB(0, 0, 255)
	Yellow      = RGB(255, 255, 0)
	Cyan        = RGB(0, 255, 255)
	Magenta     = RGB(255, 0, 255)
	Transparent = RGBA(0, 0, 0, 0)
)
