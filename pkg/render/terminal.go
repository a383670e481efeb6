package render

import (
	uv "github.com/charmbracelet/ultraviolet"
)

// CellSetter is the part of a uv.Screen the framebuffer draws onto.
type CellSetter interface {
	SetCell(x, y int, c *uv.Cell)
}

// Display is a screen that can push its cells to the terminal.
type Display interface {
	CellSetter
	Display() error
}

// Draw scales the framebuffer to cols x rows terminal cells and draws it.
// Each cell shows two vertical pixels with the upper half block (▀):
// foreground is the top pixel, background the bottom one.
func (fb *Framebuffer) Draw(scr CellSetter, cols, rows int) {
	if fb.Width == 0 || fb.Height == 0 || cols <= 0 || rows <= 0 {
		return
	}
	h := rows * 2

	for row := range rows {
		topY := row * 2 * fb.Height / h
		botY := (row*2 + 1) * fb.Height / h

		for col := range cols {
			x := col * fb.Width / cols
			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: fb.GetPixel(x, topY).RGBA(),
					Bg: fb.GetPixel(x, botY).RGBA(),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

// TerminalRenderer presents framebuffers on a terminal.
type TerminalRenderer struct {
	out  Display
	cols int
	rows int
}

// NewTerminalRenderer creates a renderer for a cols x rows terminal.
func NewTerminalRenderer(out Display, cols, rows int) *TerminalRenderer {
	return &TerminalRenderer{out: out, cols: cols, rows: rows}
}

// FramebufferSize returns the native pixel size of the terminal:
// one pixel per column and two per row.
func (t *TerminalRenderer) FramebufferSize() (width, height int) {
	return t.cols, t.rows * 2
}

// Render draws fb scaled to the full terminal.
func (t *TerminalRenderer) Render(fb *Framebuffer) {
	fb.Draw(t.out, t.cols, t.rows)
}

// Flush pushes the drawn cells to the terminal.
func (t *TerminalRenderer) Flush() error {
	return t.out.Display()
}
