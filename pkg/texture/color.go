package texture

import (
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Gamma is the display exponent applied once, at pixel write.
const Gamma = 2.2

// Color is a linear-light RGB triple. Components are unbounded;
// clamping happens only at display quantisation.
type Color struct {
	R, G, B float64
}

// RGB creates a color from linear components.
func RGB(r, g, b float64) Color {
	return Color{r, g, b}
}

// Gray creates a color with all three components set to v.
func Gray(v float64) Color {
	return Color{v, v, v}
}

// Add returns the component-wise sum.
func (c Color) Add(o Color) Color {
	return Color{c.R + o.R, c.G + o.G, c.B + o.B}
}

// Mul returns the component-wise product.
func (c Color) Mul(o Color) Color {
	return Color{c.R * o.R, c.G * o.G, c.B * o.B}
}

// Scale multiplies every component by s.
func (c Color) Scale(s float64) Color {
	return Color{c.R * s, c.G * s, c.B * s}
}

// Encode applies the display power curve (1/Gamma).
// Negative components encode to zero.
func (c Color) Encode() Color {
	return Color{encode(c.R), encode(c.G), encode(c.B)}
}

func encode(v float64) float64 {
	if v <= 0 {
		return 0
	}
	return math.Pow(v, 1/Gamma)
}

// FromSRGB converts display-encoded components in [0,1] to linear light.
func FromSRGB(r, g, b float64) Color {
	return Color{math.Pow(r, Gamma), math.Pow(g, Gamma), math.Pow(b, Gamma)}
}

// RGBA quantises the color to 8 bits per channel, clamping to [0,1].
// No gamma is applied here; callers pass already encoded values.
func (c Color) RGBA() color.RGBA {
	r, g, b := colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().RGB255()
	return color.RGBA{r, g, b, 255}
}

// ParseHex parses a "#rrggbb" display color into linear light.
func ParseHex(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return FromSRGB(c.R, c.G, c.B), nil
}

// ApproxEqual reports whether c and o differ by at most eps per channel.
func (c Color) ApproxEqual(o Color, eps float64) bool {
	return math.Abs(c.R-o.R) <= eps && math.Abs(c.G-o.G) <= eps && math.Abs(c.B-o.B) <= eps
}
