package level

import (
	"math"

	"github.com/taigrr/gloom/pkg/math2d"
)

const (
	// flatEpsilon is the largest projected triangle area still treated as vertical.
	flatEpsilon = 1e-6

	// minWallLength drops slivers too short to ever fill a column.
	minWallLength = 1e-3

	// snap is the grid endpoints are rounded to when matching duplicate walls.
	snap = 1e3
)

// Footprint is the floor-plan trace of one wall.
type Footprint struct {
	A, B     math2d.Vec2
	Material int // Index into the document's materials, -1 for none
}

// Triangle is one model triangle in Y-up space.
type Triangle struct {
	V        [3]math2d.Vec3
	Material int
}

// footprintKey identifies a wall independent of endpoint order.
type footprintKey [4]int64

func keyOf(a, b math2d.Vec2) footprintKey {
	ka := [2]int64{int64(math.Round(a.X * snap)), int64(math.Round(a.Y * snap))}
	kb := [2]int64{int64(math.Round(b.X * snap)), int64(math.Round(b.Y * snap))}
	if kb[0] < ka[0] || (kb[0] == ka[0] && kb[1] < ka[1]) {
		ka, kb = kb, ka
	}
	return footprintKey{ka[0], ka[1], kb[0], kb[1]}
}

// Footprints projects vertical triangles onto the XZ floor plane and returns
// one wall per distinct projected edge. A quad wall split into two triangles
// yields a single footprint. Floors, ceilings and slanted faces are skipped.
func Footprints(tris []Triangle) []Footprint {
	seen := make(map[footprintKey]bool)
	var out []Footprint

	for _, tri := range tris {
		a, b, ok := verticalSpan(tri.V)
		if !ok {
			continue
		}
		k := keyOf(a, b)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, Footprint{A: a, B: b, Material: tri.Material})
	}
	return out
}

// verticalSpan returns the two farthest-apart projected corners of a
// vertical triangle with non-zero height.
func verticalSpan(v [3]math2d.Vec3) (a, b math2d.Vec2, ok bool) {
	var p [3]math2d.Vec2
	lo, hi := v[0].Y, v[0].Y
	for i, c := range v {
		p[i] = math2d.V2(c.X, c.Z)
		lo, hi = min(lo, c.Y), max(hi, c.Y)
	}
	if hi-lo < minWallLength {
		return a, b, false
	}

	e1, e2 := p[1].Sub(p[0]), p[2].Sub(p[0])
	area := math.Abs(e1.X*e2.Y-e1.Y*e2.X) / 2
	if area > flatEpsilon {
		return a, b, false
	}

	best := -1.0
	for i := range 3 {
		j := (i + 1) % 3
		if d := p[i].Distance(p[j]); d > best {
			a, b, best = p[i], p[j], d
		}
	}
	if best < minWallLength {
		return a, b, false
	}
	return a, b, true
}
