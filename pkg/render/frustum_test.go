package render

import (
	"math"
	"testing"

	"github.com/taigrr/gloom/pkg/math2d"
	"github.com/taigrr/gloom/pkg/scene"
	"github.com/taigrr/gloom/pkg/texture"
)

func TestPlaneDistanceToPoint(t *testing.T) {
	// Line x = 2, normal pointing +X
	plane := PlaneThrough(math2d.V2(2, 7), math2d.V2(1, 0))

	tests := []struct {
		name     string
		point    math2d.Vec2
		expected float64
	}{
		{"on plane", math2d.V2(2, -3), 0},
		{"in front", math2d.V2(7, 0), 5},
		{"behind", math2d.V2(-1, 4), -3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dist := plane.DistanceToPoint(tc.point)
			if math.Abs(dist-tc.expected) > 1e-9 {
				t.Errorf("got %v, want %v", dist, tc.expected)
			}
		})
	}
}

func TestPlaneNormalize(t *testing.T) {
	plane := Plane{Normal: math2d.V2(3, 4), D: 10}
	plane.Normalize()

	if length := plane.Normal.Len(); math.Abs(length-1.0) > 1e-9 {
		t.Errorf("normalized normal length = %v, want 1.0", length)
	}
	if math.Abs(plane.Normal.X-0.6) > 1e-9 || math.Abs(plane.Normal.Y-0.8) > 1e-9 {
		t.Errorf("normal = %v, want (0.6, 0.8)", plane.Normal)
	}
	// D should be scaled too (10/5 = 2)
	if math.Abs(plane.D-2.0) > 1e-9 {
		t.Errorf("D = %v, want 2.0", plane.D)
	}

	zero := Plane{D: 3}
	zero.Normalize()
	if zero.D != 3 {
		t.Error("zero normal plane was modified")
	}
}

func TestNewFrustumUnitNormals(t *testing.T) {
	cam := NewCamera()
	cam.Position = math2d.V2(2, -1)
	cam.Rotation = 0.7
	cam.FOV = 1.2
	f := NewFrustum(cam)

	for i, plane := range f.Planes {
		if l := plane.Normal.Len(); math.Abs(l-1) > 1e-9 {
			t.Errorf("plane %d normal length = %v, want 1", i, l)
		}
		if d := plane.DistanceToPoint(cam.Position); math.Abs(d) > 1e-9 {
			t.Errorf("plane %d misses the camera by %v", i, d)
		}
		// A point two units ahead lies inside by 2 sin(FOV/2).
		ahead := cam.Position.Add(cam.Forward().Scale(2))
		want := 2 * math.Sin(cam.FOV/2)
		if d := plane.DistanceToPoint(ahead); math.Abs(d-want) > 1e-9 {
			t.Errorf("plane %d distance ahead = %v, want %v", i, d, want)
		}
	}
}

func TestFrustumContainsPoint(t *testing.T) {
	cam := NewCamera() // 90 degrees facing +X
	f := NewFrustum(cam)

	tests := []struct {
		name     string
		point    math2d.Vec2
		expected bool
	}{
		{"ahead", math2d.V2(5, 0), true},
		{"inside right", math2d.V2(5, 4), true},
		{"on left edge", math2d.V2(5, -5), true},
		{"outside left", math2d.V2(5, -6), false},
		{"outside right", math2d.V2(1, 3), false},
		{"behind", math2d.V2(-5, 0), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := f.ContainsPoint(tc.point); got != tc.expected {
				t.Errorf("ContainsPoint(%v) = %v, want %v", tc.point, got, tc.expected)
			}
		})
	}
}

func TestFrustumIntersectSegment(t *testing.T) {
	cam := NewCamera()
	cam.Rotation = math.Pi / 2 // facing +Y
	f := NewFrustum(cam)

	tests := []struct {
		name     string
		a, b     math2d.Vec2
		expected bool
	}{
		{"across view", math2d.V2(-10, 5), math2d.V2(10, 5), true},
		{"one end inside", math2d.V2(0, 5), math2d.V2(20, 5), true},
		{"left of view", math2d.V2(10, 1), math2d.V2(20, 2), false},
		{"right of view", math2d.V2(-10, 1), math2d.V2(-20, 2), false},
		{"behind", math2d.V2(-1, -5), math2d.V2(1, -5), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := f.IntersectSegment(tc.a, tc.b); got != tc.expected {
				t.Errorf("IntersectSegment = %v, want %v", got, tc.expected)
			}
		})
	}
}

func TestFrustumWideOpen(t *testing.T) {
	cam := NewCamera()
	cam.FOV = math.Pi
	f := NewFrustum(cam)

	if !f.ContainsPoint(math2d.V2(-5, 0)) {
		t.Error("180 degree frustum culled a point behind the camera")
	}
	sc, _ := scene.New([]scene.Segment{{A: math2d.V2(-1, -1), B: math2d.V2(-1, 1), Texture: texture.Solid{}}})
	if f.Cull(sc) != sc {
		t.Error("open frustum copied the scene")
	}
}

// TestFrustumCullMatchesFullScene checks that every column hits the same wall
// with and without culling.
func TestFrustumCullMatchesFullScene(t *testing.T) {
	var segs []scene.Segment
	for i := range 24 {
		theta := 2 * math.Pi * float64(i) / 24
		c := math2d.FromAngle(theta).Scale(6 + float64(i%3))
		d := math2d.FromAngle(theta + math.Pi/2)
		segs = append(segs, scene.Segment{A: c.Sub(d), B: c.Add(d), Texture: texture.Solid{}})
	}
	sc, err := scene.New(segs)
	if err != nil {
		t.Fatal(err)
	}

	cam := NewCamera()
	for _, rot := range []float64{0, 0.7, 2, -2.5} {
		cam.Rotation = rot
		culled := NewFrustum(cam).Cull(sc)
		if culled.Len() >= sc.Len() {
			t.Errorf("rot %v: culled nothing", rot)
		}
		for x, ray := range cam.Rays(64) {
			full, okFull := sc.Sample(ray)
			part, okPart := culled.Sample(ray)
			if okFull != okPart || (okFull && !full.Point.ApproxEqual(part.Point, 1e-12)) {
				t.Fatalf("rot %v column %d: culled hit %v/%v, full hit %v/%v", rot, x, part.Point, okPart, full.Point, okFull)
			}
		}
	}
}
