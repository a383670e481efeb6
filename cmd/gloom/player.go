package main

import (
	"github.com/charmbracelet/harmonica"
	"github.com/taigrr/gloom/pkg/math2d"
	"github.com/taigrr/gloom/pkg/render"
	"github.com/taigrr/gloom/pkg/scene"
)

// Player moves the camera through the level.
type Player struct {
	Camera *render.Camera
	Radius float64 // Closest the camera may get to a wall
	Speed  float64 // Units per second at full input

	turnVel    float64 // Radians per frame
	turnAccel  float64 // internal spring velocity (for animating turnVel toward 0)
	turnSpring harmonica.Spring
}

// NewPlayer creates a player driving cam, stepped once per frame at fps.
func NewPlayer(cam *render.Camera, fps int) *Player {
	return &Player{
		Camera: cam,
		Radius: 0.25,
		Speed:  3,
		// Frequency 6.0 = quick stop, damping 1.0 = critically damped (no overshoot)
		turnSpring: harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0),
	}
}

// Turn adds an angular impulse in radians per frame. Positive turns right.
func (p *Player) Turn(impulse float64) {
	p.turnVel += impulse
}

// Update applies the turn velocity and decays it toward 0.
func (p *Player) Update() {
	p.Camera.Rotate(p.turnVel)
	p.turnVel, p.turnAccel = p.turnSpring.Update(p.turnVel, p.turnAccel, 0)
}

// Walk moves by forward and strafe input in [-1,1] for dt seconds and
// reports whether the camera moved.
func (p *Player) Walk(sc *scene.Scene, forward, strafe, dt float64) bool {
	step := p.Camera.Step(forward, strafe)
	if step.Len() > 1 {
		step = step.Normalize()
	}
	step = step.Scale(p.Speed * dt)

	return p.tryMove(sc, step)
}

// tryMove moves by step unless a wall lies within step + Radius along it.
func (p *Player) tryMove(sc *scene.Scene, step math2d.Vec2) bool {
	d := step.Len()
	if d == 0 {
		return false
	}
	ray := scene.Ray{Origin: p.Camera.Position, Dir: step.Normalize()}
	if hit, ok := sc.Sample(ray); ok && hit.Dist < d+p.Radius {
		return false
	}
	p.Camera.Position = p.Camera.Position.Add(step)
	return true
}

// Reset stops turning and puts the camera at pos facing rot.
func (p *Player) Reset(pos math2d.Vec2, rot float64) {
	p.Camera.Position = pos
	p.Camera.Rotation = rot
	p.turnVel, p.turnAccel = 0, 0
}
