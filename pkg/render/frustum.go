package render

import (
	"math"

	"github.com/taigrr/gloom/pkg/math2d"
	"github.com/taigrr/gloom/pkg/scene"
)

// Plane is a line bounding a half-plane: Normal·p + D = 0.
type Plane struct {
	Normal math2d.Vec2
	D      float64
}

// PlaneThrough returns the plane through p with the given normal.
func PlaneThrough(p, normal math2d.Vec2) Plane {
	return Plane{Normal: normal, D: -normal.Dot(p)}
}

// Normalize normalizes the plane equation so the normal has unit length.
func (p *Plane) Normalize() {
	l := p.Normal.Len()
	if l == 0 {
		return
	}
	p.Normal = p.Normal.Scale(1 / l)
	p.D /= l
}

// DistanceToPoint returns the signed distance from the plane to a point.
// Positive = in front (same side as normal), negative = behind.
func (p Plane) DistanceToPoint(point math2d.Vec2) float64 {
	return p.Normal.Dot(point) + p.D
}

// frustumSlack keeps walls grazing the edge rays.
const frustumSlack = 1e-9

// Frustum is the camera's view wedge: the left and right planes through the
// camera, normals pointing inward.
type Frustum struct {
	Planes [2]Plane
	open   bool // FOV of 180 degrees or more; nothing is culled
}

// FrustumPlane indices for clarity.
const (
	FrustumLeft = iota
	FrustumRight
)

// NewFrustum builds the view wedge of cam.
func NewFrustum(cam *Camera) Frustum {
	if cam.FOV >= math.Pi {
		return Frustum{open: true}
	}
	// Edge directions through the ends of a screen one unit ahead.
	side := cam.Right().Scale(math.Tan(cam.FOV / 2))
	left := cam.Forward().Sub(side)
	right := cam.Forward().Add(side)

	// Y grows downward, so turning an edge ray toward the view center is
	// -Perp for the left edge and +Perp for the right.
	var f Frustum
	f.Planes[FrustumLeft] = PlaneThrough(cam.Position, left.Perp().Scale(-1))
	f.Planes[FrustumRight] = PlaneThrough(cam.Position, right.Perp())
	for i := range f.Planes {
		f.Planes[i].Normalize()
	}
	return f
}

// ContainsPoint tests if a point is inside the wedge.
func (f Frustum) ContainsPoint(p math2d.Vec2) bool {
	if f.open {
		return true
	}
	for i := range f.Planes {
		if f.Planes[i].DistanceToPoint(p) < -frustumSlack {
			return false
		}
	}
	return true
}

// IntersectSegment reports whether the wall a-b may be visible. It only
// rejects walls lying wholly outside one plane, so some walls behind the
// camera pass; those never produce a hit.
func (f Frustum) IntersectSegment(a, b math2d.Vec2) bool {
	if f.open || f.ContainsPoint(a) || f.ContainsPoint(b) {
		return true
	}
	for i := range f.Planes {
		plane := f.Planes[i]
		if plane.DistanceToPoint(a) < -frustumSlack && plane.DistanceToPoint(b) < -frustumSlack {
			return false
		}
	}
	return true
}

// Cull returns the part of sc that may be visible, in the original order so
// nearest-hit ties resolve the same way.
func (f Frustum) Cull(sc *scene.Scene) *scene.Scene {
	if f.open {
		return sc
	}
	return sc.Filter(func(s *scene.Segment) bool {
		return f.IntersectSegment(s.A, s.B)
	})
}
