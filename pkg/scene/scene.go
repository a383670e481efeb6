package scene

import (
	"errors"
	"fmt"
	"math"

	"github.com/taigrr/gloom/pkg/math2d"
)

// ErrDegenerateSegment is returned when a wall's endpoints coincide.
var ErrDegenerateSegment = errors.New("degenerate segment")

// HitData describes the nearest wall crossed by a ray.
type HitData struct {
	Dist    float64     // Ray-parameter distance, not fisheye corrected
	Point   math2d.Vec2 // World-space intersection
	U       float64     // Position along the segment, 0 at A and 1 at B
	Segment *Segment
}

// Scene is an immutable ordered set of walls.
// Order only matters for ties: the earlier segment wins.
type Scene struct {
	segments []Segment
}

// New builds a scene from segments, rejecting zero-length walls.
// The slice is copied.
func New(segments []Segment) (*Scene, error) {
	for i := range segments {
		if segments[i].Degenerate() {
			return nil, fmt.Errorf("segment %d at %v: %w", i, segments[i].A, ErrDegenerateSegment)
		}
	}
	s := &Scene{segments: make([]Segment, len(segments))}
	copy(s.segments, segments)
	return s, nil
}

// Segments returns the walls in construction order.
// Callers must not modify the returned slice.
func (s *Scene) Segments() []Segment {
	return s.segments
}

// Len returns the number of walls.
func (s *Scene) Len() int {
	return len(s.segments)
}

// Filter returns a scene holding the walls for which keep returns true, in
// the same order.
func (s *Scene) Filter(keep func(*Segment) bool) *Scene {
	out := &Scene{segments: make([]Segment, 0, len(s.segments))}
	for i := range s.segments {
		if keep(&s.segments[i]) {
			out.segments = append(out.segments, s.segments[i])
		}
	}
	return out
}

// Sample returns the nearest wall in front of the ray origin.
// It reports false when no wall is crossed at a positive distance; the
// caller then treats the ray as hitting nothing (floor and ceiling only).
func (s *Scene) Sample(r Ray) (HitData, bool) {
	best := HitData{Dist: math.Inf(1)}

	for i := range s.segments {
		seg := &s.segments[i]
		p, u, ok := Intersect(seg, r)
		if !ok {
			continue
		}
		d := rayParam(p, r)
		if d > 0 && d < best.Dist {
			best = HitData{Dist: d, Point: p, U: u, Segment: seg}
		}
	}

	if best.Segment == nil {
		return HitData{}, false
	}
	return best, true
}

// rayParam recovers t in p = origin + t*dir. The x axis is used unless it
// yields NaN (a vertical ray through the point), in which case y is used.
// An infinite x quotient means dir.X is zero while p.X carries rounding
// error; that is the same vertical case.
func rayParam(p math2d.Vec2, r Ray) float64 {
	t := p.Sub(r.Origin).Div(r.Dir)
	if math.IsNaN(t.X) || math.IsInf(t.X, 0) {
		return t.Y
	}
	return t.X
}
