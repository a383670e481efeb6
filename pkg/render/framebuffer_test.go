package render

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/taigrr/gloom/pkg/texture"
)

// fill sets every pixel of fb to c.
func fill(fb *Framebuffer, c texture.Color) {
	for i := range fb.Pixels {
		fb.Pixels[i] = c
	}
}

// pattern fills fb with a distinct color per pixel.
func pattern(fb *Framebuffer) {
	for y := range fb.Height {
		for x := range fb.Width {
			fb.SetPixel(x, y, texture.RGB(float64(x), float64(y), 1))
		}
	}
}

func TestFramebufferBounds(t *testing.T) {
	fb := NewFramebuffer(4, 3)
	fb.SetPixel(-1, 0, texture.Gray(1))
	fb.SetPixel(4, 0, texture.Gray(1))
	fb.SetPixel(0, 3, texture.Gray(1))

	for i, c := range fb.Pixels {
		if c != (texture.Color{}) {
			t.Fatalf("pixel %d written by out-of-bounds SetPixel: %v", i, c)
		}
	}
	if c := fb.GetPixel(10, 10); c != (texture.Color{}) {
		t.Errorf("GetPixel out of bounds = %v, want black", c)
	}
}

func TestFramebufferDecay(t *testing.T) {
	fb := NewFramebuffer(3, 3)
	fill(fb, texture.RGB(1, 0.5, 0.25))
	fb.Decay(math.Exp(-1))

	want := texture.RGB(1, 0.5, 0.25).Scale(math.Exp(-1))
	for i, c := range fb.Pixels {
		if !c.ApproxEqual(want, 1e-12) {
			t.Fatalf("pixel %d = %v, want %v", i, c, want)
		}
	}
}

func TestResampleIdentity(t *testing.T) {
	src := NewFramebuffer(7, 5)
	pattern(src)

	dst := NewFramebuffer(7, 5)
	dst.Resample(src)

	for i := range src.Pixels {
		if dst.Pixels[i] != src.Pixels[i] {
			t.Fatalf("pixel %d = %v, want %v", i, dst.Pixels[i], src.Pixels[i])
		}
	}
}

func TestResampleUpscale(t *testing.T) {
	src := NewFramebuffer(2, 2)
	pattern(src)

	dst := NewFramebuffer(4, 4)
	dst.Resample(src)

	for y := range 4 {
		for x := range 4 {
			want := src.GetPixel(x/2, y/2)
			if got := dst.GetPixel(x, y); got != want {
				t.Errorf("(%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestResampleDownscale(t *testing.T) {
	src := NewFramebuffer(6, 4)
	pattern(src)

	dst := NewFramebuffer(3, 2)
	dst.Resample(src)

	for y := range 2 {
		for x := range 3 {
			want := src.GetPixel(x*2, y*2)
			if got := dst.GetPixel(x, y); got != want {
				t.Errorf("(%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestResampleEmptySource(t *testing.T) {
	dst := NewFramebuffer(2, 2)
	fill(dst, texture.Gray(0.5))
	dst.Resample(nil)
	dst.Resample(NewFramebuffer(0, 0))

	for _, c := range dst.Pixels {
		if c != texture.Gray(0.5) {
			t.Fatal("empty source modified the framebuffer")
		}
	}
}

func TestDrawLineClipped(t *testing.T) {
	fb := NewFramebuffer(10, 10)
	white := texture.Gray(1)
	clip := image.Rect(0, 0, 5, 5)

	fb.DrawLine(0, 0, 9, 9, white, clip)

	for y := range 10 {
		for x := range 10 {
			lit := fb.GetPixel(x, y) == white
			want := x == y && x < 5
			if lit != want {
				t.Errorf("(%d,%d) lit = %v, want %v", x, y, lit, want)
			}
		}
	}
}

func TestDrawLineEndpoints(t *testing.T) {
	fb := NewFramebuffer(10, 10)
	white := texture.Gray(1)
	full := image.Rect(0, 0, 10, 10)

	fb.DrawLine(8, 1, 2, 6, white, full)

	if fb.GetPixel(8, 1) != white || fb.GetPixel(2, 6) != white {
		t.Error("line endpoints not drawn")
	}
}

func TestToImage(t *testing.T) {
	fb := NewFramebuffer(2, 1)
	fb.SetPixel(0, 0, texture.RGB(1, 0, 0))
	fb.SetPixel(1, 0, texture.RGB(0, 0, 1))

	img := fb.ToImage()
	if img.Bounds() != image.Rect(0, 0, 2, 1) {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	if c := img.RGBAAt(0, 0); c.R != 255 || c.B != 0 || c.A != 255 {
		t.Errorf("left pixel = %v, want opaque red", c)
	}
	if c := img.RGBAAt(1, 0); c.B != 255 || c.R != 0 {
		t.Errorf("right pixel = %v, want blue", c)
	}
}

func TestSavePNG(t *testing.T) {
	fb := NewFramebuffer(4, 3)
	pattern(fb)
	path := filepath.Join(t.TempDir(), "shot.png")

	if err := fb.SavePNG(path, 3); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 12 || b.Dy() != 9 {
		t.Errorf("size = %dx%d, want 12x9", b.Dx(), b.Dy())
	}
}

func TestSavePNGBadPath(t *testing.T) {
	fb := NewFramebuffer(1, 1)
	if err := fb.SavePNG(filepath.Join(t.TempDir(), "missing", "shot.png"), 1); err == nil {
		t.Error("expected error for missing directory")
	}
}

// failingCloser accepts writes and fails on Close, like a file whose final
// flush hits a full disk.
type failingCloser struct {
	bytes.Buffer
}

func (*failingCloser) Close() error { return errors.New("disk full") }

func TestWritePNGReportsCloseError(t *testing.T) {
	fb := NewFramebuffer(2, 2)
	w := &failingCloser{}
	if err := writePNG(w, fb.ToImage()); err == nil {
		t.Error("expected close error")
	}
	if w.Len() == 0 {
		t.Error("nothing was encoded before close")
	}
}
