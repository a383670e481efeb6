// Package math2d provides the 2D math primitives used by the gloom renderer.
package math2d

import "math"

// Vec2 represents a 2D point or direction in world space.
type Vec2 struct {
	X, Y float64
}

// V2 creates a new Vec2.
func V2(x, y float64) Vec2 {
	return Vec2{x, y}
}

// Zero2 returns the zero vector.
func Zero2() Vec2 {
	return Vec2{}
}

// FromAngle returns the unit vector at angle theta (radians).
func FromAngle(theta float64) Vec2 {
	return Vec2{math.Cos(theta), math.Sin(theta)}
}

// Add returns the vector sum a + b.
func (a Vec2) Add(b Vec2) Vec2 {
	return Vec2{a.X + b.X, a.Y + b.Y}
}

// Sub returns the vector difference a - b.
func (a Vec2) Sub(b Vec2) Vec2 {
	return Vec2{a.X - b.X, a.Y - b.Y}
}

// Mul returns the component-wise product a * b.
func (a Vec2) Mul(b Vec2) Vec2 {
	return Vec2{a.X * b.X, a.Y * b.Y}
}

// Div returns the component-wise quotient a / b.
// Components follow IEEE rules, so 0/0 yields NaN.
func (a Vec2) Div(b Vec2) Vec2 {
	return Vec2{a.X / b.X, a.Y / b.Y}
}

// Scale returns the scalar product a * s.
func (a Vec2) Scale(s float64) Vec2 {
	return Vec2{a.X * s, a.Y * s}
}

// Dot returns the dot product a · b.
func (a Vec2) Dot(b Vec2) float64 {
	return a.X*b.X + a.Y*b.Y
}

// Perp returns a rotated by -90 degrees: (y, -x).
func (a Vec2) Perp() Vec2 {
	return Vec2{a.Y, -a.X}
}

// Len returns the length (magnitude) of the vector.
func (a Vec2) Len() float64 {
	return math.Hypot(a.X, a.Y)
}

// LenSq returns the squared length.
func (a Vec2) LenSq() float64 {
	return a.X*a.X + a.Y*a.Y
}

// Normalize returns the unit vector in the same direction.
func (a Vec2) Normalize() Vec2 {
	l := a.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{a.X / l, a.Y / l}
}

// ProjectOnto returns the projection of a onto b.
// Projecting onto the zero vector yields the zero vector.
func (a Vec2) ProjectOnto(b Vec2) Vec2 {
	d := b.LenSq()
	if d == 0 {
		return Vec2{}
	}
	return b.Scale(a.Dot(b) / d)
}

// Distance returns the distance between two points.
func (a Vec2) Distance(b Vec2) float64 {
	return a.Sub(b).Len()
}

// Floor returns the component-wise floor.
func (a Vec2) Floor() Vec2 {
	return Vec2{math.Floor(a.X), math.Floor(a.Y)}
}

// Lerp returns the linear interpolation between a and b by t.
func (a Vec2) Lerp(b Vec2, t float64) Vec2 {
	return Vec2{a.X + (b.X-a.X)*t, a.Y + (b.Y-a.Y)*t}
}

// Rotate returns a rotated counter-clockwise by theta radians.
func (a Vec2) Rotate(theta float64) Vec2 {
	s, c := math.Sincos(theta)
	return Vec2{a.X*c - a.Y*s, a.X*s + a.Y*c}
}

// ApproxEqual reports whether a and b are within eps on both axes.
func (a Vec2) ApproxEqual(b Vec2, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps
}
