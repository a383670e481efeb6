package distress

import "github.com/charmbracelet/harmonica"

// Follower eases a level toward a moving target with a critically damped
// spring, so distress builds and fades instead of jumping.
type Follower struct {
	spring   harmonica.Spring
	value    float64
	velocity float64
}

// NewFollower creates a follower stepped once per frame at fps.
func NewFollower(fps int) *Follower {
	return &Follower{
		// Frequency 1.5 settles in a few seconds; damping 1.0 never overshoots.
		spring: harmonica.NewSpring(harmonica.FPS(fps), 1.5, 1.0),
	}
}

// Update advances one frame toward target and returns the new level in [0,1].
func (f *Follower) Update(target float64) float64 {
	f.value, f.velocity = f.spring.Update(f.value, f.velocity, target)
	if f.value < 0 || f.value > 1 {
		f.value = min(max(f.value, 0), 1)
		f.velocity = 0
	}
	return f.value
}
