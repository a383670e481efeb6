package render

import "math/rand/v2"

// Dropout is a per-frame Bernoulli generator deciding which pixels keep their
// decayed prior value instead of being redrawn.
type Dropout struct {
	p   float64
	rng *rand.Rand
}

// NewDropout creates a generator that skips with probability p.
// p <= 0 never skips and p >= 1 always skips, without consuming randomness.
func NewDropout(p float64, rng *rand.Rand) Dropout {
	return Dropout{p: p, rng: rng}
}

// Skip reports whether the next pixel should be left untouched.
func (d Dropout) Skip() bool {
	switch {
	case d.p <= 0:
		return false
	case d.p >= 1:
		return true
	}
	return d.rng.Float64() < d.p
}
