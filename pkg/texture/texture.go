// Package texture samples wall colors for the raycaster.
//
// A Texture is one of Solid, Stretch, Repeat, Glitch or Compound. Compound
// nodes hold their children by value, so a blend tree is finite and acyclic
// by construction.
package texture

import (
	"math"
	"math/rand/v2"

	"github.com/taigrr/gloom/pkg/math2d"
)

// Texture produces a linear color for a surface coordinate.
//
// uv.X runs along the wall from its first to its second endpoint, uv.Y from
// the top of the wall span to the bottom. width is the wall's physical length
// in world units. rng feeds stochastic kinds; nil falls back to the global
// generator.
type Texture interface {
	Sample(uv math2d.Vec2, width float64, rng *rand.Rand) Color
}

// BlendMode combines two colors.
type BlendMode int

const (
	BlendMultiply BlendMode = iota // Component-wise product
	BlendAdd                       // Component-wise sum, unclamped
	BlendMean                      // Arithmetic average
)

// Blend combines a and b according to the mode.
func (m BlendMode) Blend(a, b Color) Color {
	switch m {
	case BlendMultiply:
		return a.Mul(b)
	case BlendAdd:
		return a.Add(b)
	default:
		return a.Add(b).Scale(0.5)
	}
}

func (m BlendMode) String() string {
	switch m {
	case BlendMultiply:
		return "multiply"
	case BlendAdd:
		return "add"
	case BlendMean:
		return "mean"
	default:
		return "unknown"
	}
}

// Solid is a constant color.
type Solid struct {
	Color Color
}

// Sample ignores uv.
func (s Solid) Sample(_ math2d.Vec2, _ float64, _ *rand.Rand) Color {
	return s.Color
}

// Stretch maps one full image across the wall regardless of its length.
type Stretch struct {
	Image *Image
}

func (s Stretch) Sample(uv math2d.Vec2, _ float64, _ *rand.Rand) Color {
	return s.Image.Nearest(uv.X, uv.Y)
}

// Repeat tiles the image once per world unit of wall length.
type Repeat struct {
	Image *Image
}

func (r Repeat) Sample(uv math2d.Vec2, width float64, _ *rand.Rand) Color {
	return r.Image.Nearest(wrap(uv.X*width), wrap(uv.Y))
}

// wrap maps c into [0,1).
func wrap(c float64) float64 {
	return c - math.Floor(c)
}

// Glitch is sparse gray static. The cubic bias keeps most samples near black.
type Glitch struct {
	Amount float64
}

func (g Glitch) Sample(_ math2d.Vec2, _ float64, rng *rand.Rand) Color {
	var u float64
	if rng != nil {
		u = rng.Float64()
	} else {
		u = rand.Float64()
	}
	return Gray(u * u * u * g.Amount)
}

// Compound blends two sub-textures sampled at the same coordinate.
type Compound struct {
	A, B Texture
	Mode BlendMode
}

// NewCompound creates a blend of a and b.
func NewCompound(a, b Texture, mode BlendMode) Compound {
	return Compound{A: a, B: b, Mode: mode}
}

func (c Compound) Sample(uv math2d.Vec2, width float64, rng *rand.Rand) Color {
	return c.Mode.Blend(c.A.Sample(uv, width, rng), c.B.Sample(uv, width, rng))
}

// ContainsGlitch reports whether t is a Glitch or a blend tree holding one.
func ContainsGlitch(t Texture) bool {
	switch t := t.(type) {
	case Glitch, *Glitch:
		return true
	case Compound:
		return ContainsGlitch(t.A) || ContainsGlitch(t.B)
	case *Compound:
		return t != nil && (ContainsGlitch(t.A) || ContainsGlitch(t.B))
	default:
		return false
	}
}
