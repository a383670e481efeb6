// Package scene holds the wall geometry of a level and resolves view rays against it.
package scene

import (
	"math"

	"github.com/taigrr/gloom/pkg/math2d"
	"github.com/taigrr/gloom/pkg/texture"
)

// Ray is an origin plus a direction. The direction need not be unit length;
// its magnitude sets the scale of the ray parameter.
type Ray struct {
	Origin math2d.Vec2
	Dir    math2d.Vec2
}

// At returns the point at ray parameter t.
func (r Ray) At(t float64) math2d.Vec2 {
	return r.Origin.Add(r.Dir.Scale(t))
}

// Segment is a finite wall between A and B carrying one texture.
type Segment struct {
	A, B    math2d.Vec2
	Texture texture.Texture
}

// Length returns the physical length of the wall.
func (s *Segment) Length() float64 {
	return s.B.Distance(s.A)
}

// Degenerate reports whether the endpoints coincide.
func (s *Segment) Degenerate() bool {
	return s.A == s.B
}

// Intersect finds where the infinite line of r crosses s.
//
// Both lines are taken in homogeneous form (A, B, C); their cross product is
// the intersection point. Parallel or coincident lines have no finite
// intersection and report false. u is the normalized position of the point
// along the segment, measured on whichever axis the segment spans more;
// points with u outside [0,1] lie beyond the wall's ends and report false.
// The ray's own direction is not checked here: a point behind the origin is
// still returned.
func Intersect(s *Segment, r Ray) (point math2d.Vec2, u float64, ok bool) {
	d := s.B.Sub(s.A)
	wall := math2d.LineThrough(s.A, d)
	view := math2d.LineThrough(r.Origin, r.Dir)

	point, ok = wall.Cross(view).Dehomogenize()
	if !ok {
		return math2d.Vec2{}, 0, false
	}

	off := point.Sub(s.A)
	if math.Abs(d.X) > math.Abs(d.Y) {
		u = off.X / d.X
	} else {
		u = off.Y / d.Y
	}
	if !(u >= 0 && u <= 1) {
		return math2d.Vec2{}, 0, false
	}
	return point, u, true
}
