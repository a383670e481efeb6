package render

import (
	"testing"

	"github.com/taigrr/gloom/pkg/math2d"
	"github.com/taigrr/gloom/pkg/scene"
	"github.com/taigrr/gloom/pkg/texture"
)

func TestMinimapStaysInCorner(t *testing.T) {
	fb := NewFramebuffer(60, 30)
	cam := NewCamera()
	mm := NewMinimap(cam, fb)

	if mm.Size != 10 {
		t.Fatalf("Size = %d, want a third of the short side", mm.Size)
	}

	sc, err := scene.New([]scene.Segment{
		{A: math2d.V2(-50, 1), B: math2d.V2(50, 1), Texture: texture.Solid{}},
		{A: math2d.V2(-50, -1), B: math2d.V2(50, -1), Texture: texture.Solid{}},
	})
	if err != nil {
		t.Fatal(err)
	}
	mm.Draw(sc)

	lit := 0
	for y := range fb.Height {
		for x := range fb.Width {
			if fb.GetPixel(x, y) == (texture.Color{}) {
				continue
			}
			if x >= mm.Size || y >= mm.Size {
				t.Fatalf("minimap drew outside its square at (%d,%d)", x, y)
			}
			lit++
		}
	}
	if lit == 0 {
		t.Fatal("minimap drew nothing")
	}

	// Walls one unit either side of the camera land Scale pixels off center.
	for _, y := range []int{5 - 3, 5 + 3} {
		if fb.GetPixel(0, y) != mm.Wall {
			t.Errorf("expected wall at row %d", y)
		}
	}
	if fb.GetPixel(5, 5) != mm.Player {
		t.Error("expected player marker at center")
	}
}

func TestMinimapZeroSize(t *testing.T) {
	fb := NewFramebuffer(8, 8)
	mm := NewMinimap(NewCamera(), fb)
	mm.Size = 0
	sc, _ := scene.New([]scene.Segment{{A: math2d.V2(0, 0), B: math2d.V2(1, 0), Texture: texture.Solid{}}})
	mm.Draw(sc)

	for _, c := range fb.Pixels {
		if c != (texture.Color{}) {
			t.Fatal("zero-size minimap drew pixels")
		}
	}
}

func TestMinimapSetFramebuffer(t *testing.T) {
	mm := NewMinimap(NewCamera(), NewFramebuffer(30, 30))
	next := NewFramebuffer(90, 60)
	mm.SetFramebuffer(next)

	if mm.Size != 20 {
		t.Errorf("Size = %d, want 20", mm.Size)
	}
	sc, _ := scene.New(nil)
	mm.Draw(sc)
	if next.GetPixel(10, 10) != mm.Player {
		t.Error("player marker not drawn on the new framebuffer")
	}
}
