package core

import (
	"fmt"
	"math"
)

// Color is a 24-bit RGB foreground color packed as 0xRRGGBB.
// The zero value means "terminal default" rather than black; use RGB(0, 0, 1)
// if a near-black foreground is ever needed.
type Color uint32

// ColorDefault leaves the cell in the terminal's default foreground.
const ColorDefault Color = 0

// RGB packs three channels into a Color.
func RGB(r, g, b uint8) Color {
	return Color(uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// Components returns the red, green and blue channels.
func (c Color) Components() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// Hex formats the color as "#rrggbb", the form lipgloss accepts.
func (c Color) Hex() string {
	return fmt.Sprintf("#%06x", uint32(c)&0xFFFFFF)
}

// IsDefault reports whether the color defers to the terminal.
func (c Color) IsDefault() bool {
	return c == ColorDefault
}

// Scale multiplies every channel by f (clamped to [0, 1]).
// Used for fading particles out as their life runs down.
func (c Color) Scale(f float64) Color {
	f = ClampF(f, 0, 1)
	r, g, b := c.Components()
	scaled := RGB(uint8(float64(r)*f), uint8(float64(g)*f), uint8(float64(b)*f))
	if scaled == ColorDefault {
		return RGB(0, 0, 1)
	}
	return scaled
}

// HSV builds a color from hue (degrees, wraps), saturation and value in [0, 1].
func HSV(h, s, v float64) Color {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	s = ClampF(s, 0, 1)
	v = ClampF(v, 0, 1)

	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	to8 := func(f float64) uint8 { return uint8(math.Round((f + m) * 255)) }
	return RGB(to8(r), to8(g), to8(b))
}

// Common UI colors.
var (
	ColorWhite  = RGB(0xEE, 0xEE, 0xEE)
	ColorGray   = RGB(0x8A, 0x8A, 0x8A)
	ColorYellow = RGB(0xFF, 0xD5, 0x4F)
	ColorRed    = RGB(0xEF, 0x53, 0x50)
	ColorGreen  = RGB(0x66, 0xBB, 0x6A)
)
