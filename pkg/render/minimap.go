package render

import (
	"image"
	"math"

	"github.com/taigrr/gloom/pkg/math2d"
	"github.com/taigrr/gloom/pkg/scene"
	"github.com/taigrr/gloom/pkg/texture"
)

// Minimap draws a top-down view of the walls around the camera into a square
// in the framebuffer's top-left corner.
type Minimap struct {
	camera *Camera
	fb     *Framebuffer

	Size   int     // Side of the map square in pixels
	Scale  float64 // Pixels per world unit
	Wall   texture.Color
	Player texture.Color
}

// NewMinimap creates a minimap renderer.
func NewMinimap(camera *Camera, fb *Framebuffer) *Minimap {
	return &Minimap{
		camera: camera,
		fb:     fb,
		Size:   min(fb.Width, fb.Height) / 3,
		Scale:  3,
		Wall:   texture.Gray(0.8),
		Player: texture.RGB(1, 0.2, 0.1),
	}
}

// SetFramebuffer retargets the minimap after a renderer swap, keeping the
// square at a third of the new short side.
func (m *Minimap) SetFramebuffer(fb *Framebuffer) {
	m.fb = fb
	m.Size = min(fb.Width, fb.Height) / 3
}

// bounds is the on-screen square the map is clipped to.
func (m *Minimap) bounds() image.Rectangle {
	return image.Rect(0, 0, m.Size, m.Size)
}

// toScreen maps a world point to map pixels, camera at the center.
func (m *Minimap) toScreen(p math2d.Vec2) (int, int) {
	d := p.Sub(m.camera.Position).Scale(m.Scale)
	half := float64(m.Size) / 2
	return int(math.Floor(half + d.X)), int(math.Floor(half + d.Y))
}

// DrawLine2D draws a world-space line.
func (m *Minimap) DrawLine2D(a, b math2d.Vec2, c texture.Color) {
	x0, y0 := m.toScreen(a)
	x1, y1 := m.toScreen(b)
	m.fb.DrawLine(x0, y0, x1, y1, c, m.bounds())
}

// DrawPoint draws a point as a small cross.
func (m *Minimap) DrawPoint(p math2d.Vec2, size float64, c texture.Color) {
	half := size / 2
	m.DrawLine2D(math2d.V2(p.X-half, p.Y), math2d.V2(p.X+half, p.Y), c)
	m.DrawLine2D(math2d.V2(p.X, p.Y-half), math2d.V2(p.X, p.Y+half), c)
}

// Draw renders every wall, the player and the edges of the field of view.
func (m *Minimap) Draw(sc *scene.Scene) {
	if m.Size <= 0 {
		return
	}
	for _, s := range sc.Segments() {
		m.DrawLine2D(s.A, s.B, m.Wall)
	}

	pos := m.camera.Position
	reach := float64(m.Size) / (2 * m.Scale)
	fwd := m.camera.Forward().Scale(reach)
	left := fwd.Rotate(-m.camera.FOV / 2)
	right := fwd.Rotate(m.camera.FOV / 2)
	m.DrawLine2D(pos, pos.Add(left), m.Player.Scale(0.4))
	m.DrawLine2D(pos, pos.Add(right), m.Player.Scale(0.4))
	m.DrawPoint(pos, 2/m.Scale, m.Player)
}
