package texture

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io"
	"math"
	"os"

	"github.com/nfnt/resize"
	_ "golang.org/x/image/bmp" // Register BMP decoder
)

// MaxImageSize bounds decoded textures; larger images are downscaled on load.
const MaxImageSize = 512

// ErrEmptyImage is returned when a decoded image has no pixels.
var ErrEmptyImage = errors.New("empty image")

// Image is a rectangular grid of linear colors.
type Image struct {
	Width  int
	Height int
	Pixels []Color // Row-major pixel data
}

// NewImage creates a black image with the given dimensions.
func NewImage(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Pixels: make([]Color, width*height),
	}
}

// LoadImage loads a BMP, PNG or JPEG file as a linear-light image.
func LoadImage(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode reads an encoded image from r.
func Decode(r io.Reader) (*Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, ErrEmptyImage
	}
	if b.Dx() > MaxImageSize || b.Dy() > MaxImageSize {
		img = resize.Thumbnail(MaxImageSize, MaxImageSize, img, resize.NearestNeighbor)
	}
	return FromImage(img), nil
}

// FromImage converts a display-encoded image.Image to linear light.
func FromImage(img image.Image) *Image {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	im := NewImage(width, height)

	for y := range height {
		for x := range width {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			// RGBA returns 16-bit values
			im.Set(x, y, FromSRGB(
				float64(r)/65535.0,
				float64(g)/65535.0,
				float64(b)/65535.0,
			))
		}
	}

	return im
}

// NewCheckerImage creates a procedural checkerboard.
func NewCheckerImage(width, height, checkSize int, c1, c2 Color) *Image {
	im := NewImage(width, height)
	for y := range height {
		for x := range width {
			if (x/checkSize+y/checkSize)%2 == 0 {
				im.Set(x, y, c1)
			} else {
				im.Set(x, y, c2)
			}
		}
	}
	return im
}

// NewGradientImage creates a horizontal gradient from left to right.
func NewGradientImage(width, height int, left, right Color) *Image {
	im := NewImage(width, height)
	for y := range height {
		for x := range width {
			t := 0.0
			if width > 1 {
				t = float64(x) / float64(width-1)
			}
			im.Set(x, y, left.Scale(1-t).Add(right.Scale(t)))
		}
	}
	return im
}

// Set sets a pixel. Out-of-range writes are ignored.
func (im *Image) Set(x, y int, c Color) {
	if x < 0 || x >= im.Width || y < 0 || y >= im.Height {
		return
	}
	im.Pixels[y*im.Width+x] = c
}

// At returns the pixel at (x, y), or black when out of range.
func (im *Image) At(x, y int) Color {
	if x < 0 || x >= im.Width || y < 0 || y >= im.Height {
		return Color{}
	}
	return im.Pixels[y*im.Width+x]
}

// Nearest samples the texel under (u, v) in [0,1]².
// Coordinates are clamped first, so float edge effects such as u = 1
// or u = -1e-17 land on the border texel instead of out of range.
func (im *Image) Nearest(u, v float64) Color {
	if im == nil || len(im.Pixels) == 0 {
		return Color{}
	}
	return im.At(texel(u, im.Width), texel(v, im.Height))
}

func texel(c float64, size int) int {
	if math.IsNaN(c) || c <= 0 {
		return 0
	}
	i := int(math.Min(c, 1) * float64(size))
	if i >= size {
		i = size - 1
	}
	return i
}
