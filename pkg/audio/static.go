package audio

import (
	"math"
	"math/rand/v2"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Level is the shared noise level the static follows.
// *distress.Signal satisfies it.
type Level interface {
	Load() float64
}

// Static streams uniform white noise scaled by the current level.
// The level is read once per buffer, so a change takes effect on the next
// callback.
type Static struct {
	level Level
	rng   *rand.Rand
}

// NewStatic creates a static generator. A nil rng uses the global source.
func NewStatic(level Level, rng *rand.Rand) *Static {
	return &Static{level: level, rng: rng}
}

func (s *Static) Stream(samples [][2]float64) (n int, ok bool) {
	amp := s.level.Load()
	if amp <= 0 {
		clear(samples)
		return len(samples), true
	}

	for i := range samples {
		var u float64
		if s.rng != nil {
			u = s.rng.Float64()
		} else {
			u = rand.Float64()
		}
		v := (u*2 - 1) * amp
		samples[i][0] = v
		samples[i][1] = v
	}
	return len(samples), true
}

func (s *Static) Err() error {
	return nil
}

// withVolume scales s by vol in [0,1]. math.Log2(0) is -Inf, so zero volume
// is made silent instead.
func withVolume(s beep.Streamer, vol float64) *effects.Volume {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
