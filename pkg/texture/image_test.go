package texture

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

func writeTestImage(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	defer f.Close()

	switch filepath.Ext(path) {
	case ".bmp":
		err = bmp.Encode(f, img)
	default:
		err = png.Encode(f, img)
	}
	if err != nil {
		t.Fatalf("Failed to encode %s: %v", path, err)
	}
}

func TestLoadImage(t *testing.T) {
	// 2x2: white red / green blue
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	src.Set(0, 0, color.RGBA{255, 255, 255, 255})
	src.Set(1, 0, color.RGBA{255, 0, 0, 255})
	src.Set(0, 1, color.RGBA{0, 255, 0, 255})
	src.Set(1, 1, color.RGBA{0, 0, 255, 255})

	for _, name := range []string{"test.png", "test.bmp"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			writeTestImage(t, path, src)

			im, err := LoadImage(path)
			if err != nil {
				t.Fatalf("LoadImage failed: %v", err)
			}
			if im.Width != 2 || im.Height != 2 {
				t.Fatalf("Expected 2x2 image, got %dx%d", im.Width, im.Height)
			}

			want := []Color{RGB(1, 1, 1), RGB(1, 0, 0), RGB(0, 1, 0), RGB(0, 0, 1)}
			for i, w := range want {
				if !im.Pixels[i].ApproxEqual(w, 1e-6) {
					t.Errorf("pixel %d = %v, want %v", i, im.Pixels[i], w)
				}
			}
		})
	}
}

func TestLoadImageLinearises(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 1, 1))
	src.SetGray(0, 0, color.Gray{Y: 128})
	path := filepath.Join(t.TempDir(), "gray.png")
	writeTestImage(t, path, src)

	im, err := LoadImage(path)
	if err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}
	want := math.Pow(128.0/255.0, Gamma)
	if math.Abs(im.Pixels[0].R-want) > 1e-3 {
		t.Errorf("linear value = %v, want %v", im.Pixels[0].R, want)
	}
}

func TestLoadImageDownscales(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, MaxImageSize*2, MaxImageSize))
	path := filepath.Join(t.TempDir(), "big.png")
	writeTestImage(t, path, src)

	im, err := LoadImage(path)
	if err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}
	if im.Width != MaxImageSize || im.Height != MaxImageSize/2 {
		t.Errorf("downscaled to %dx%d, want %dx%d", im.Width, im.Height, MaxImageSize, MaxImageSize/2)
	}
}

func TestLoadImageErrors(t *testing.T) {
	if _, err := LoadImage("/nonexistent/path.png"); err == nil {
		t.Error("Expected error for nonexistent file")
	}

	path := filepath.Join(t.TempDir(), "garbage.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadImage(path); err == nil {
		t.Error("Expected error for undecodable file")
	}
}

func TestCheckerImage(t *testing.T) {
	a, b := Gray(0), Gray(1)
	im := NewCheckerImage(4, 4, 2, a, b)

	tests := []struct {
		x, y int
		want Color
	}{
		{0, 0, a}, {1, 1, a}, {2, 0, b}, {0, 2, b}, {3, 3, a},
	}
	for _, tc := range tests {
		if got := im.At(tc.x, tc.y); got != tc.want {
			t.Errorf("At(%d, %d) = %v, want %v", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestImageBounds(t *testing.T) {
	im := NewImage(2, 2)
	im.Set(-1, 0, Gray(1))
	im.Set(2, 2, Gray(1))
	for i, p := range im.Pixels {
		if p != (Color{}) {
			t.Errorf("pixel %d modified by out-of-range Set: %v", i, p)
		}
	}
	if c := im.At(5, 5); c != (Color{}) {
		t.Errorf("out-of-range At = %v, want black", c)
	}

	var nilImage *Image
	if c := nilImage.Nearest(0.5, 0.5); c != (Color{}) {
		t.Errorf("nil image sample = %v, want black", c)
	}
}
