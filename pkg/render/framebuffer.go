// Package render draws first-person views of a scene into a temporal
// accumulation buffer and presents it to the terminal.
package render

import (
	"image"
	"image/png"
	"io"
	"os"

	"github.com/nfnt/resize"
	"github.com/taigrr/gloom/pkg/texture"
)

// Framebuffer is a persistent grid of display-encoded colors.
// It is decayed each frame rather than cleared, so pixels that are not
// redrawn fade out instead of vanishing.
type Framebuffer struct {
	Width  int
	Height int
	Pixels []texture.Color // Row-major pixel data
}

// NewFramebuffer creates a black framebuffer with the given dimensions.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]texture.Color, width*height),
	}
}

// Decay multiplies every pixel by f.
func (fb *Framebuffer) Decay(f float64) {
	if f == 1 {
		return
	}
	for i := range fb.Pixels {
		fb.Pixels[i] = fb.Pixels[i].Scale(f)
	}
}

// SetPixel sets a pixel at (x, y) to the given color.
// Bounds checking is performed.
func (fb *Framebuffer) SetPixel(x, y int, c texture.Color) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	fb.Pixels[y*fb.Width+x] = c
}

// GetPixel returns the color at (x, y).
// Returns black if out of bounds.
func (fb *Framebuffer) GetPixel(x, y int) texture.Color {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return texture.Color{}
	}
	return fb.Pixels[y*fb.Width+x]
}

// Resample fills fb from src by nearest-neighbor lookup. Each destination
// cell's normalized position selects the source cell under it, so equal
// sizes copy src exactly.
func (fb *Framebuffer) Resample(src *Framebuffer) {
	if src == nil || src.Width <= 0 || src.Height <= 0 {
		return
	}
	for y := range fb.Height {
		sy := y * src.Height / fb.Height
		row := src.Pixels[sy*src.Width : (sy+1)*src.Width]
		for x := range fb.Width {
			fb.Pixels[y*fb.Width+x] = row[x*src.Width/fb.Width]
		}
	}
}

// DrawLine draws a line from (x0, y0) to (x1, y1) using Bresenham's algorithm,
// skipping pixels outside clip.
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int, c texture.Color, clip image.Rectangle) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		if image.Pt(x0, y0).In(clip) {
			fb.SetPixel(x0, y0, c)
		}
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Present bulk-copies the framebuffer into dst, quantising to 8 bits.
// dst must be at least Width x Height.
func (fb *Framebuffer) Present(dst *image.RGBA) {
	for y := range fb.Height {
		row := fb.Pixels[y*fb.Width : (y+1)*fb.Width]
		for x, c := range row {
			dst.SetRGBA(dst.Rect.Min.X+x, dst.Rect.Min.Y+y, c.RGBA())
		}
	}
}

// ToImage converts the framebuffer to a standard Go image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	fb.Present(img)
	return img
}

// SavePNG saves the framebuffer as a PNG file, upscaled by an integer factor
// with nearest-neighbor filtering.
func (fb *Framebuffer) SavePNG(path string, scale int) error {
	var img image.Image = fb.ToImage()
	if scale > 1 {
		img = resize.Resize(uint(fb.Width*scale), uint(fb.Height*scale), img, resize.NearestNeighbor)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	return writePNG(f, img)
}

// writePNG encodes img to w and closes it. A close failure is reported when
// encoding succeeded.
func writePNG(w io.WriteCloser, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
