package render

import (
	"iter"
	"math"

	"github.com/taigrr/gloom/pkg/math2d"
	"github.com/taigrr/gloom/pkg/scene"
)

// Camera is a first-person viewpoint on the 2D map.
// World Y grows downward, as on a screen, so increasing Rotation turns right.
type Camera struct {
	Position math2d.Vec2
	Rotation float64 // Facing angle in radians
	FOV      float64 // Horizontal field of view in radians

	// Noise is the distress level in [0,1]. The renderer uses it as the
	// probability of leaving a pixel untouched for a frame.
	Noise float64

	// FogDist is the floor/ceiling distance past which the fog color is drawn.
	// Zero disables fog.
	FogDist float64
}

// NewCamera creates a camera at the origin facing +X.
func NewCamera() *Camera {
	return &Camera{
		FOV:     math.Pi / 2,
		FogDist: 24,
	}
}

// Forward returns the unit facing vector.
func (c *Camera) Forward() math2d.Vec2 {
	return math2d.FromAngle(c.Rotation)
}

// Right returns the unit vector toward the right edge of the view.
func (c *Camera) Right() math2d.Vec2 {
	return c.Forward().Perp().Scale(-1)
}

// Rotate turns the camera by delta radians.
func (c *Camera) Rotate(delta float64) {
	c.Rotation = math.Remainder(c.Rotation+delta, 2*math.Pi)
}

// Step returns the world displacement for moving forward and sideways by the
// given amounts. The camera is not moved.
func (c *Camera) Step(forward, strafe float64) math2d.Vec2 {
	return c.Forward().Scale(forward).Add(c.Right().Scale(strafe))
}

// Rays yields one unit ray per screen column, sweeping the field of view
// linearly in angle from left to right. The linear sweep bends straight walls;
// PerpDistTo undoes it. The sequence is stateless and can be ranged again.
func (c *Camera) Rays(n int) iter.Seq2[int, scene.Ray] {
	pos, rot, fov := c.Position, c.Rotation, c.FOV
	return func(yield func(int, scene.Ray) bool) {
		for x := range n {
			r := 0.5
			if n > 1 {
				r = float64(x) / float64(n-1)
			}
			theta := rot + fov*(r-0.5)
			if !yield(x, scene.Ray{Origin: pos, Dir: math2d.FromAngle(theta)}) {
				return
			}
		}
	}
}

// PerpDistTo returns the distance from the camera to p along the forward axis.
func (c *Camera) PerpDistTo(p math2d.Vec2) float64 {
	return p.Sub(c.Position).ProjectOnto(c.Forward()).Len()
}

// ProjectionDistance is the distance to a virtual screen width pixels wide
// that exactly spans the field of view.
func (c *Camera) ProjectionDistance(width int) float64 {
	return float64(width) / (2 * math.Tan(c.FOV/2))
}
