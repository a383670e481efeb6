// Package level provides playable maps: a built-in room and floor plans
// imported from glTF files.
package level

import (
	"errors"

	"github.com/taigrr/gloom/pkg/math2d"
	"github.com/taigrr/gloom/pkg/scene"
)

// ErrNoWalls is returned when a model contains no vertical wall geometry.
var ErrNoWalls = errors.New("no walls found")

// Level is a scene plus where the player starts in it.
type Level struct {
	Name   string
	Scene  *scene.Scene
	Spawn  math2d.Vec2
	Facing float64 // Initial camera rotation in radians
}

// Bounds returns the axis-aligned box around every wall endpoint.
func (l *Level) Bounds() (lo, hi math2d.Vec2) {
	segs := l.Scene.Segments()
	if len(segs) == 0 {
		return math2d.Vec2{}, math2d.Vec2{}
	}
	lo, hi = segs[0].A, segs[0].A
	for _, s := range segs {
		for _, p := range [2]math2d.Vec2{s.A, s.B} {
			lo = math2d.V2(min(lo.X, p.X), min(lo.Y, p.Y))
			hi = math2d.V2(max(hi.X, p.X), max(hi.Y, p.Y))
		}
	}
	return lo, hi
}
