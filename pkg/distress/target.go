package distress

import (
	"math"

	"github.com/taigrr/gloom/pkg/math2d"
	"github.com/taigrr/gloom/pkg/scene"
	"github.com/taigrr/gloom/pkg/texture"
)

// probes is the number of rays cast around the player.
const probes = 16

// Target returns the distress the player should feel at pos: 1 when touching
// a wall whose texture carries glitch static, falling linearly to 0 at reach.
// Ordinary walls block the view of glitch walls behind them.
func Target(sc *scene.Scene, pos math2d.Vec2, reach float64) float64 {
	if reach <= 0 {
		return 0
	}
	nearest := math.Inf(1)
	for i := range probes {
		theta := 2 * math.Pi * float64(i) / probes
		hit, ok := sc.Sample(scene.Ray{Origin: pos, Dir: math2d.FromAngle(theta)})
		if !ok || !texture.ContainsGlitch(hit.Segment.Texture) {
			continue
		}
		nearest = min(nearest, hit.Dist)
	}
	return math.Max(0, 1-nearest/reach)
}
