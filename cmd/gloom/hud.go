package main

import (
	"fmt"
	"io"
	"time"
)

// ViewState holds toggles driven by the keyboard.
type ViewState struct {
	ShowHUD bool // Whether to show the HUD overlay
	ShowMap bool // Whether to draw the minimap
	Muted   bool // Whether the static is paused
	Bias    float64
}

// HUD renders an overlay with level and renderer info
type HUD struct {
	level     string
	fps       float64
	fpsFrames int
	fpsTime   time.Time

	width, height int
	noise         float64
}

// NewHUD creates a new HUD
func NewHUD(level string) *HUD {
	return &HUD{
		level:   level,
		fpsTime: time.Now(),
	}
}

// UpdateFPS updates the FPS counter (call once per frame)
func (h *HUD) UpdateFPS() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

// SetStats records the render resolution and noise level to display.
func (h *HUD) SetStats(width, height int, noise float64) {
	h.width, h.height = width, height
	h.noise = noise
}

// Render draws the HUD overlay onto a cols x rows terminal
func (h *HUD) Render(w io.Writer, cols, rows int, view *ViewState) {
	const (
		reset     = "\x1b[0m"
		bold      = "\x1b[1m"
		dim       = "\x1b[2m"
		bgBlack   = "\x1b[40m"
		fgWhite   = "\x1b[97m"
		fgGreen   = "\x1b[92m"
		fgYellow  = "\x1b[93m"
		fgRed     = "\x1b[91m"
		fgCyan    = "\x1b[96m"
		clearLine = "\x1b[2K"
	)

	moveTo := func(row, col int) string {
		return fmt.Sprintf("\x1b[%d;%dH", row, col)
	}

	// Always clear the HUD rows (so toggling off works)
	fmt.Fprint(w, moveTo(1, 1)+clearLine)
	fmt.Fprint(w, moveTo(rows, 1)+clearLine)

	if !view.ShowHUD {
		return
	}

	// Top left: FPS
	fmt.Fprintf(w, "%s%s%s %.0f FPS %s", moveTo(1, 1), bgBlack, fgGreen, h.fps, reset)

	// Top middle: level name
	title := fmt.Sprintf("%s%s%s %s %s", bold, bgBlack, fgWhite, h.level, reset)
	fmt.Fprint(w, moveTo(1, max((cols-len(h.level)-2)/2, 1))+title)

	// Top right: render resolution
	res := fmt.Sprintf("%dx%d", h.width, h.height)
	fmt.Fprint(w, moveTo(1, max(cols-len(res)-2, 1))+fmt.Sprintf("%s%s%s %s %s", bgBlack, fgCyan, bold, res, reset))

	// Bottom: distress meter and toggles
	color := fgYellow
	if h.noise > 0.6 {
		color = fgRed
	}
	check := func(on bool) string {
		if on {
			return "[✓]"
		}
		return "[ ]"
	}
	status := fmt.Sprintf("%s%s distress %s%s%s  %s Map  %s Mute  bias %+.1f %s",
		bgBlack, fgWhite, color, meter(h.noise, 10), fgWhite,
		check(view.ShowMap), check(view.Muted), view.Bias, reset)
	fmt.Fprint(w, moveTo(rows, 1)+status)

	hint := fmt.Sprintf("%s%s%s P: screenshot %s", bgBlack, dim, fgYellow, reset)
	fmt.Fprint(w, moveTo(rows, max(cols-16, 1))+hint)
}

// meter draws v in [0,1] as a bar of n cells.
func meter(v float64, n int) string {
	filled := min(max(int(v*float64(n)+0.5), 0), n)
	bar := make([]rune, n)
	for i := range bar {
		bar[i] = '░'
		if i < filled {
			bar[i] = '█'
		}
	}
	return string(bar)
}
