// internal/browser/parser/color.go
package parser

import (
	"fmt"
	"strings"
)

// Color is an RGBA color with 8-bit channels.
type Color struct {
	R, G, B, A uint8
}

var (
	Black       = Color{0, 0, 0, 255}
	Transparent = Color{0, 0, 0, 0}
)

// namedColors is the fixed keyword table. It is never mutated.
var namedColors = map[string]Color{
	"black":       Black,
	"white":       {255, 255, 255, 255},
	"red":         {255, 0, 0, 255},
	"green":       {0, 255, 0, 255},
	"blue":        {0, 0, 255, 255},
	"transparent": Transparent,
}

// Hex formats the color as #rrggbb, or #rrggbbaa when it is not opaque.
func (c Color) Hex() string {
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// IsVisible reports whether anything would be painted with the color.
func (c Color) IsVisible() bool {
	return c.A > 0
}

// ResolveColor turns a color code ("#ff0000", "red") into a color. Codes that
// cannot be resolved fall back to opaque black and ok is false.
func ResolveColor(code string) (color Color, ok bool) {
	code = strings.ToLower(strings.TrimSpace(code))

	if strings.HasPrefix(code, "#") {
		if c, valid := parseHexColor(code[1:]); valid {
			return c, true
		}
		return Black, false
	}

	if c, found := namedColors[code]; found {
		return c, true
	}

	return Black, false
}

func parseHexColor(hex string) (Color, bool) {
	for i := 0; i < len(hex); i++ {
		if _, ok := hexDigit(hex[i]); !ok {
			return Color{}, false
		}
	}

	d := func(i int) uint8 {
		v, _ := hexDigit(hex[i])
		return v
	}

	var r, g, b, a uint8 = 0, 0, 0, 255
	switch len(hex) {
	case 3:
		r, g, b = d(0)*17, d(1)*17, d(2)*17
	case 4:
		r, g, b, a = d(0)*17, d(1)*17, d(2)*17, d(3)*17
	case 6:
		r = d(0)<<4 | d(1)
		g = d(2)<<4 | d(3)
		b = d(4)<<4 | d(5)
	case 8:
		r = d(0)<<4 | d(1)
		g = d(2)<<4 | d(3)
		b = d(4)<<4 | d(5)
		a = d(6)<<4 | d(7)
	default:
		return Color{}, false
	}
	return Color{R: r, G: g, B: b, A: a}, true
}

func hexDigit(c byte) (uint8, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
