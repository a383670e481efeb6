package render

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/taigrr/gloom/pkg/math2d"
	"github.com/taigrr/gloom/pkg/scene"
	"github.com/taigrr/gloom/pkg/texture"
)

// ErrInvalidSize is returned when a renderer is created with a non-positive size.
var ErrInvalidSize = errors.New("invalid renderer size")

// Renderer draws frames column by column into a persistent Framebuffer.
type Renderer struct {
	width  int
	height int
	fb     *Framebuffer
	rng    *rand.Rand

	FloorLight texture.Color // Light checkerboard shade (linear)
	FloorDark  texture.Color // Dark checkerboard shade (linear)
	Fog        texture.Color // Horizon and beyond-fog color (linear)
}

// NewRenderer creates a renderer with a black framebuffer.
func NewRenderer(width, height int) (*Renderer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%dx%d: %w", width, height, ErrInvalidSize)
	}
	return &Renderer{
		width:      width,
		height:     height,
		fb:         NewFramebuffer(width, height),
		rng:        rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x9e3779b97f4a7c15)),
		FloorLight: texture.Gray(0.45),
		FloorDark:  texture.Gray(0.04),
	}, nil
}

// NewRendererFrom creates a renderer whose framebuffer is reseeded from prev,
// so the temporal trail survives a change of resolution.
func NewRendererFrom(prev *Framebuffer, width, height int) (*Renderer, error) {
	r, err := NewRenderer(width, height)
	if err != nil {
		return nil, err
	}
	r.fb.Resample(prev)
	return r, nil
}

// Resize swaps r for a renderer of the new size, carrying the framebuffer
// contents and settings across. Non-positive or unchanged sizes return r as is.
func Resize(r *Renderer, width, height int) *Renderer {
	if width <= 0 || height <= 0 || (width == r.width && height == r.height) {
		return r
	}
	rng, light, dark, fog := r.rng, r.FloorLight, r.FloorDark, r.Fog
	next, err := NewRendererFrom(r.IntoPreviousBuffer(), width, height)
	if err != nil {
		// Unreachable: the size was validated above.
		panic(err)
	}
	next.rng, next.FloorLight, next.FloorDark, next.Fog = rng, light, dark, fog
	return next
}

// Width returns the output width in pixels.
func (r *Renderer) Width() int { return r.width }

// Height returns the output height in pixels.
func (r *Renderer) Height() int { return r.height }

// Framebuffer returns the accumulation buffer for presentation.
func (r *Renderer) Framebuffer() *Framebuffer { return r.fb }

// IntoPreviousBuffer hands the framebuffer over for reseeding a successor.
// The renderer draws nothing afterwards.
func (r *Renderer) IntoPreviousBuffer() *Framebuffer {
	fb := r.fb
	r.fb = nil
	return fb
}

// SetSeed makes dropout and glitch sampling deterministic.
func (r *Renderer) SetSeed(seed uint64) {
	r.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Draw renders one frame. dt is the time since the previous frame in seconds
// and sets how far the previous image decays.
func (r *Renderer) Draw(sc *scene.Scene, cam *Camera, dt float64) {
	if r.fb == nil {
		return
	}
	r.fb.Decay(math.Exp(-math.Max(dt, 0)))

	drop := NewDropout(cam.Noise, r.rng)
	projDist := cam.ProjectionDistance(r.width)
	// Floor rows: a row v (in [0,1] from horizon to edge) sees the plane half a
	// unit below the eye at forward distance floorScale / v.
	floorScale := projDist / float64(r.height)
	forward := cam.Forward()
	visible := NewFrustum(cam).Cull(sc)

	for x, ray := range cam.Rays(r.width) {
		top, bottom := 0, 0

		if hit, ok := visible.Sample(ray); ok {
			top, bottom = r.drawWall(x, hit, cam, projDist, drop)
		}

		r.fillFloorCeil(x, 0, top, ray, forward, floorScale, cam.FogDist, drop)
		r.fillFloorCeil(x, bottom, r.height, ray, forward, floorScale, cam.FogDist, drop)
	}
}

// fillFloorCeil draws rows [from, to) of column x from the floor/ceiling plane.
func (r *Renderer) fillFloorCeil(x, from, to int, ray scene.Ray, forward math2d.Vec2, floorScale, fog float64, drop Dropout) {
	for y := from; y < to; y++ {
		if drop.Skip() {
			continue
		}
		c := r.floorCeil(y, ray, forward, floorScale, fog)
		r.fb.SetPixel(x, y, c.Encode())
	}
}

// drawWall fills the wall span of column x and returns its rows [top, bottom).
func (r *Renderer) drawWall(x int, hit scene.HitData, cam *Camera, projDist float64, drop Dropout) (top, bottom int) {
	// Fisheye correction: distance along the view axis, not along the ray.
	dist := cam.PerpDistTo(hit.Point)
	full := projDist / dist
	if math.IsNaN(full) {
		return 0, 0
	}

	wall := r.height
	if full < float64(r.height) {
		wall = int(full) &^ 1
	}
	space := (r.height - wall) / 2
	top, bottom = space, space+wall

	seg := hit.Segment
	length := seg.Length()
	bypass := texture.ContainsGlitch(seg.Texture)
	atten := math.Min(1, 2/dist)

	for y := top; y < bottom; y++ {
		if !bypass && drop.Skip() {
			continue
		}
		uv := math2d.V2(hit.U, float64(y-top)/float64(wall))
		c := seg.Texture.Sample(uv, length, r.rng).Scale(atten)
		r.fb.SetPixel(x, y, c.Encode())
	}
	return top, bottom
}

// floorCeil returns the linear color of the floor or ceiling seen at row y.
// Rows map to v = 1 - 2y/h above the midline and 2y/h - 1 below it, so row 0
// is v = 1 and the midline is the horizon at v = 0.
func (r *Renderer) floorCeil(y int, ray scene.Ray, forward math2d.Vec2, floorScale, fog float64) texture.Color {
	h := float64(r.height)
	var v float64
	if y < r.height/2 {
		v = 1 - 2*float64(y)/h
	} else {
		v = 2*float64(y)/h - 1
	}
	if v <= 0 {
		return r.Fog
	}

	perp := floorScale / v
	if fog > 0 && perp > fog {
		return r.Fog
	}
	cos := ray.Dir.Dot(forward)
	if cos <= 0 {
		return r.Fog
	}

	pos := ray.At(perp / cos)
	cell := pos.Floor()
	c := r.FloorDark
	if math.Mod(cell.X+cell.Y, 2) != 0 {
		c = r.FloorLight
	}
	return c.Scale(math.Min(1, 2/perp))
}
