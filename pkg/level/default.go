package level

import (
	"github.com/taigrr/gloom/pkg/math2d"
	"github.com/taigrr/gloom/pkg/scene"
	"github.com/taigrr/gloom/pkg/texture"
)

// Default builds the built-in level: a 16x12 room with a pillar and a
// partition, using every kind of texture. wall replaces the checker pattern
// on tiled walls when non-nil.
func Default(wall *texture.Image) *Level {
	if wall == nil {
		wall = texture.NewCheckerImage(32, 32, 8, texture.RGB(0.55, 0.18, 0.12), texture.RGB(0.35, 0.1, 0.08))
	}
	tiled := texture.Repeat{Image: wall}
	banner := texture.Stretch{Image: texture.NewGradientImage(64, 8, texture.RGB(0.05, 0.1, 0.5), texture.RGB(0.6, 0.8, 1))}
	plaster := texture.Solid{Color: texture.RGB(0.6, 0.58, 0.5)}

	// Static bleeds into the tiles on the haunted wall.
	haunted := texture.NewCompound(tiled, texture.Glitch{Amount: 0.8}, texture.BlendAdd)
	stained := texture.NewCompound(plaster, banner, texture.BlendMultiply)
	washed := texture.NewCompound(tiled, plaster, texture.BlendMean)

	p := math2d.V2
	segs := []scene.Segment{
		// Outer walls, clockwise from the north-west corner.
		{A: p(0, 0), B: p(16, 0), Texture: tiled},
		{A: p(16, 0), B: p(16, 12), Texture: banner},
		{A: p(16, 12), B: p(6, 12), Texture: plaster},
		{A: p(6, 12), B: p(0, 12), Texture: haunted},
		{A: p(0, 12), B: p(0, 0), Texture: tiled},

		// Pillar.
		{A: p(10, 4), B: p(12, 4), Texture: stained},
		{A: p(12, 4), B: p(12, 6), Texture: stained},
		{A: p(12, 6), B: p(10, 6), Texture: stained},
		{A: p(10, 6), B: p(10, 4), Texture: stained},

		// Partition screening the haunted corner.
		{A: p(4, 7), B: p(4, 10), Texture: washed},
	}

	sc, err := scene.New(segs)
	if err != nil {
		// Unreachable: the geometry above has no degenerate walls.
		panic(err)
	}
	return &Level{
		Name:   "default",
		Scene:  sc,
		Spawn:  p(3, 3),
		Facing: 0,
	}
}
