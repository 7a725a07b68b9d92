package pulse

import (
	"math"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/oliverbestmann/hermit/glm"
)

var ColorWhite = ColorLinearRGBA(1, 1, 1, 1)
var ColorBlack = ColorLinearRGBA(0, 0, 0, 1)

// ColorBackground is the clear color used when nothing else is configured.
var ColorBackground = ColorLinearRGBA(0.1, 0.2, 0.3, 1)

// Color is a straight rgba color value with alpha in linear rgb color space.
// The default value of a Color value is fully opaque white.
type Color struct {
	r1, g1, b1, a1 float32
}

// ColorLinearRGBA creates a new Color value from the given color values.
func ColorLinearRGBA(r, g, b, a float32) Color {
	return Color{
		r1: r - 1,
		g1: g - 1,
		b1: b - 1,
		a1: a - 1,
	}
}

// ColorSRGBA creates a Color value from non linear srgb encoded values, as picked
// from an image or a color picker. The color values are transferred into linear rgb space.
func ColorSRGBA(r, g, b, a float32) Color {
	return ColorLinearRGBA(degamma(r), degamma(g), degamma(b), a)
}

// ToVec returns the components of this Color in linear rgb space.
func (c Color) ToVec() glm.Vec4f {
	return glm.Vec4f{
		c.r1 + 1,
		c.g1 + 1,
		c.b1 + 1,
		c.a1 + 1,
	}
}

// RGB returns the color components without alpha, as stored in a vertex.
func (c Color) RGB() [3]float32 {
	return c.ToVec().Truncate()
}

func (c Color) ToWGPU() wgpu.Color {
	v := c.ToVec()

	return wgpu.Color{
		R: float64(v[0]),
		G: float64(v[1]),
		B: float64(v[2]),
		A: float64(v[3]),
	}
}

func (c Color) WithAlpha(alpha float32) Color {
	c.a1 = alpha - 1
	return c
}

func degamma(value float32) float32 {
	x := float64(value)

	// https://www.w3.org/TR/css-color-4/#color-conversion-code
	sign := math.Copysign(1, x)
	abs := math.Abs(x)
	if abs <= 0.04045 {
		return float32(x / 12.92)
	}

	return float32(sign * math.Pow((abs+0.055)/1.055, 2.4))
}
