package render

import (
	"image/color"
	"testing"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/gloom/pkg/texture"
)

// fakeScreen records cells and counts flushes.
type fakeScreen struct {
	cells    map[[2]int]uv.Cell
	displays int
}

func newFakeScreen() *fakeScreen {
	return &fakeScreen{cells: make(map[[2]int]uv.Cell)}
}

func (s *fakeScreen) SetCell(x, y int, c *uv.Cell) {
	s.cells[[2]int{x, y}] = *c
}

func (s *fakeScreen) Display() error {
	s.displays++
	return nil
}

func TestFramebufferDrawHalfBlocks(t *testing.T) {
	fb := NewFramebuffer(2, 2)
	fb.SetPixel(0, 0, texture.RGB(1, 0, 0))
	fb.SetPixel(0, 1, texture.RGB(0, 1, 0))
	fb.SetPixel(1, 0, texture.RGB(0, 0, 1))
	fb.SetPixel(1, 1, texture.Gray(1))

	scr := newFakeScreen()
	fb.Draw(scr, 2, 1)

	if len(scr.cells) != 2 {
		t.Fatalf("drew %d cells, want 2", len(scr.cells))
	}

	tests := []struct {
		col    int
		fg, bg color.RGBA
	}{
		{0, color.RGBA{255, 0, 0, 255}, color.RGBA{0, 255, 0, 255}},
		{1, color.RGBA{0, 0, 255, 255}, color.RGBA{255, 255, 255, 255}},
	}
	for _, tc := range tests {
		cell := scr.cells[[2]int{tc.col, 0}]
		if cell.Content != "▀" {
			t.Errorf("col %d content = %q", tc.col, cell.Content)
		}
		if cell.Style.Fg != tc.fg {
			t.Errorf("col %d fg = %v, want %v", tc.col, cell.Style.Fg, tc.fg)
		}
		if cell.Style.Bg != tc.bg {
			t.Errorf("col %d bg = %v, want %v", tc.col, cell.Style.Bg, tc.bg)
		}
	}
}

func TestFramebufferDrawScales(t *testing.T) {
	fb := NewFramebuffer(3, 3)
	scr := newFakeScreen()
	fb.Draw(scr, 10, 4)

	if len(scr.cells) != 40 {
		t.Errorf("drew %d cells, want 40", len(scr.cells))
	}

	scr = newFakeScreen()
	fb.Draw(scr, 0, 4)
	NewFramebuffer(0, 0).Draw(scr, 10, 4)
	if len(scr.cells) != 0 {
		t.Errorf("degenerate draw produced %d cells", len(scr.cells))
	}
}

func TestTerminalRenderer(t *testing.T) {
	scr := newFakeScreen()
	tr := NewTerminalRenderer(scr, 80, 24)

	w, h := tr.FramebufferSize()
	if w != 80 || h != 48 {
		t.Errorf("FramebufferSize = %dx%d, want 80x48", w, h)
	}

	fb := NewFramebuffer(w, h)
	tr.Render(fb)
	if len(scr.cells) != 80*24 {
		t.Errorf("rendered %d cells, want %d", len(scr.cells), 80*24)
	}
	if err := tr.Flush(); err != nil {
		t.Fatal(err)
	}
	if scr.displays != 1 {
		t.Errorf("Display called %d times, want 1", scr.displays)
	}
}
