package distress

import "math"

const (
	// Threshold is the noise level above which resolution starts to drop.
	Threshold = 0.3

	// MinHeightDelta is the smallest height change worth swapping renderers for.
	MinHeightDelta = 10
)

// TargetSize returns the render size for a noise level:
// base / (1 + 2·max(0, noise-Threshold)), never below 1x1.
func TargetSize(baseW, baseH int, noise float64) (w, h int) {
	f := 1 + 2*math.Max(0, noise-Threshold)
	w = max(1, int(float64(baseW)/f))
	h = max(1, int(float64(baseH)/f))
	return w, h
}

// Scaler tracks the current render size against a base size and decides
// when a noise change is large enough to resize.
type Scaler struct {
	baseW, baseH int
	w, h         int
	noise        float64
}

// NewScaler starts at the base size.
func NewScaler(baseW, baseH int) *Scaler {
	return &Scaler{baseW: baseW, baseH: baseH, w: baseW, h: baseH}
}

// Size returns the current render size.
func (s *Scaler) Size() (w, h int) {
	return s.w, s.h
}

// Base returns the full-resolution size.
func (s *Scaler) Base() (w, h int) {
	return s.baseW, s.baseH
}

// Update recomputes the target size for noise. It reports changed when the
// target height differs from the current one by at least MinHeightDelta, or
// when the target is back at the base size so small residues do not stick.
func (s *Scaler) Update(noise float64) (w, h int, changed bool) {
	s.noise = noise
	tw, th := TargetSize(s.baseW, s.baseH, noise)
	if tw == s.w && th == s.h {
		return s.w, s.h, false
	}

	dh := th - s.h
	if dh < 0 {
		dh = -dh
	}
	atBase := tw == s.baseW && th == s.baseH
	if dh < MinHeightDelta && !atBase {
		return s.w, s.h, false
	}

	s.w, s.h = tw, th
	return s.w, s.h, true
}

// Rebase sets a new base size, such as after a terminal resize, and jumps
// straight to the target for the last seen noise.
func (s *Scaler) Rebase(baseW, baseH int) (w, h int) {
	s.baseW, s.baseH = baseW, baseH
	s.w, s.h = TargetSize(baseW, baseH, s.noise)
	return s.w, s.h
}
