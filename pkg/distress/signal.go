// Package distress models the player's distress level: the noise scalar
// shared by the renderer and the audio stream, how it eases toward its
// gameplay target, and how it trades away render resolution.
package distress

import (
	"math"
	"sync"
)

// Signal is a noise level in [0,1] shared between the frame loop and the
// audio callback. The zero value reads 0.
type Signal struct {
	mu sync.Mutex
	v  float64
}

// Load returns the current level.
func (s *Signal) Load() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v
}

// Store sets the level, clamped to [0,1]. NaN stores 0.
func (s *Signal) Store(v float64) {
	if math.IsNaN(v) {
		v = 0
	}
	v = min(max(v, 0), 1)

	s.mu.Lock()
	s.v = v
	s.mu.Unlock()
}
