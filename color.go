package bindcheck

import (
	"image/color"

	"github.com/chewxy/math32"
)

// RGBA represents an output color with components in [0, 1].
type RGBA struct {
	R, G, B, A float32
}

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float32) RGBA {
	return RGBA{R: r, G: g, B: b, A: 1}
}

// Gray creates an opaque gray of the given level.
func Gray(level float32) RGBA {
	return RGB(level, level, level)
}

// Vec4 returns the color as a shader vec4.
func (c RGBA) Vec4() Vec4 {
	return Vec4{c.R, c.G, c.B, c.A}
}

// NRGBA quantizes the color the way an 8-bit unorm render target stores it.
func (c RGBA) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: unorm8(c.R),
		G: unorm8(c.G),
		B: unorm8(c.B),
		A: unorm8(c.A),
	}
}

// Color converts RGBA to the standard color.Color interface.
func (c RGBA) Color() color.Color {
	return c.NRGBA()
}

// FromColor converts a standard color.Color to RGBA.
func FromColor(c color.Color) RGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGBA{
		R: float32(n.R) / 255,
		G: float32(n.G) / 255,
		B: float32(n.B) / 255,
		A: float32(n.A) / 255,
	}
}

// Lerp linearly interpolates between two colors.
func (c RGBA) Lerp(other RGBA, t float32) RGBA {
	return RGBA{
		R: c.R + (other.R-c.R)*t,
		G: c.G + (other.G-c.G)*t,
		B: c.B + (other.B-c.B)*t,
		A: c.A + (other.A-c.A)*t,
	}
}

// unorm8 converts [0,1] to a byte with round-to-nearest, clamping outside.
func unorm8(x float32) uint8 {
	if x <= 0 || math32.IsNaN(x) {
		return 0
	}
	if x >= 1 {
		return 255
	}
	return uint8(math32.Floor(x*255 + 0.5))
}
