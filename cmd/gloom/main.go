// gloom - Terminal Raycaster
// Walk a textured maze in your terminal. Walls that carry static feed your
// distress, which fills the screen and speakers with noise and drags the
// render resolution down.
//
// Controls:
//
//	W/S, Up/Down  - Walk forward/back
//	A/D           - Strafe left/right
//	Left/Right    - Turn (also Q/E)
//	Mouse drag    - Turn
//	[ / ]         - Lower/raise distress bias
//	M             - Toggle minimap
//	N             - Mute static
//	P             - Save screenshot
//	R             - Return to spawn
//	?             - Toggle HUD overlay
//	Esc           - Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/gloom/pkg/audio"
	"github.com/taigrr/gloom/pkg/distress"
	"github.com/taigrr/gloom/pkg/level"
	"github.com/taigrr/gloom/pkg/render"
	"github.com/taigrr/gloom/pkg/texture"
)

var (
	targetFPS   = flag.Int("fps", 60, "Target FPS")
	fovDegrees  = flag.Float64("fov", 75, "Horizontal field of view in degrees")
	levelPath   = flag.String("level", "", "Path to a floor plan (GLB/glTF); empty for the built-in level")
	texturePath = flag.String("texture", "", "Path to a wall texture image (BMP/PNG/JPG)")
	seed        = flag.Uint64("seed", 0, "Random seed (0 = time based)")
	debug       = flag.Bool("debug", false, "Write logs/gloom.log and start with the HUD on")
	lightColor  = flag.String("light", "#ababab", "Light floor/ceiling checker color (hex)")
	darkColor   = flag.String("dark", "#282828", "Dark floor/ceiling checker color (hex)")
	fogDist     = flag.Float64("fog", 24, "Floor/ceiling fog distance (0 = off)")
	shotsDir    = flag.String("shots", ".", "Directory for screenshots")
)

// distressReach is how far from a glitch wall the player starts to feel it.
const distressReach = 4.0

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "gloom - Terminal Raycaster\n\n")
		fmt.Fprintf(os.Stderr, "Usage: gloom [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  W/S/A/D     - Walk and strafe\n")
		fmt.Fprintf(os.Stderr, "  Arrows, Q/E - Turn\n")
		fmt.Fprintf(os.Stderr, "  Mouse drag  - Turn\n")
		fmt.Fprintf(os.Stderr, "  [ / ]       - Distress bias\n")
		fmt.Fprintf(os.Stderr, "  M           - Toggle minimap\n")
		fmt.Fprintf(os.Stderr, "  N           - Mute static\n")
		fmt.Fprintf(os.Stderr, "  P           - Screenshot\n")
		fmt.Fprintf(os.Stderr, "  R           - Return to spawn\n")
		fmt.Fprintf(os.Stderr, "  ?           - Toggle HUD overlay\n")
		fmt.Fprintf(os.Stderr, "  Esc         - Quit\n")
	}
	flag.Parse()

	if logFile := setupLogging(*debug); logFile != nil {
		defer logFile.Close()
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadLevel reads the level named by the flags.
func loadLevel() (*level.Level, error) {
	var wall *texture.Image
	if *texturePath != "" {
		img, err := texture.LoadImage(*texturePath)
		if err != nil {
			return nil, fmt.Errorf("load texture: %w", err)
		}
		wall = img
	}

	if *levelPath == "" {
		return level.Default(wall), nil
	}

	ext := strings.ToLower(filepath.Ext(*levelPath))
	if ext != ".glb" && ext != ".gltf" {
		return nil, fmt.Errorf("unsupported level format: %s (use .glb or .gltf)", ext)
	}
	lvl, err := level.LoadGLB(*levelPath, palette(wall))
	if err != nil {
		return nil, fmt.Errorf("load level: %w", err)
	}
	return lvl, nil
}

// palette maps glTF material names to wall textures. A material named
// "glitch" becomes a haunted wall.
func palette(wall *texture.Image) map[string]texture.Texture {
	p := map[string]texture.Texture{
		"glitch": texture.Glitch{Amount: 0.8},
	}
	if wall != nil {
		tiled := texture.Repeat{Image: wall}
		p[""] = tiled
		p["glitch"] = texture.NewCompound(tiled, texture.Glitch{Amount: 0.8}, texture.BlendAdd)
	}
	return p
}

// input holds movement intent. Terminals rarely report key releases, so
// intent decays each frame and key repeat keeps it up.
type input struct {
	forward, strafe, turn float64
}

func (in *input) decay() {
	in.forward *= 0.8
	in.strafe *= 0.8
	in.turn *= 0.8
}

func run() error {
	lightChecker, err := texture.ParseHex(*lightColor)
	if err != nil {
		return err
	}
	darkChecker, err := texture.ParseHex(*darkColor)
	if err != nil {
		return err
	}
	if *targetFPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", *targetFPS)
	}

	lvl, err := loadLevel()
	if err != nil {
		return err
	}
	log.Printf("level %q: %d walls, spawn %v", lvl.Name, lvl.Scene.Len(), lvl.Spawn)

	// Create terminal
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	// Enable mouse mode
	fmt.Fprint(os.Stdout, "\x1b[?1003h") // Enable any-event mouse tracking
	fmt.Fprint(os.Stdout, "\x1b[?1006h") // Enable SGR extended mouse mode

	cleanup := func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}

	// Create renderer at the terminal's native resolution
	termRenderer := render.NewTerminalRenderer(term, width, height)
	scaler := distress.NewScaler(termRenderer.FramebufferSize())
	renderer, err := render.NewRenderer(scaler.Size())
	if err != nil {
		cleanup()
		return err
	}
	renderer.FloorLight = lightChecker
	renderer.FloorDark = darkChecker
	if *seed != 0 {
		renderer.SetSeed(*seed)
	}

	camera := render.NewCamera()
	camera.FOV = *fovDegrees * math.Pi / 180
	camera.FogDist = *fogDist

	player := NewPlayer(camera, *targetFPS)
	player.Reset(lvl.Spawn, lvl.Facing)

	minimap := render.NewMinimap(camera, renderer.Framebuffer())

	// Distress drives dropout, static volume and resolution
	var noise distress.Signal
	follower := distress.NewFollower(*targetFPS)

	sound := audio.NewPlayer(audio.LoadConfig(), &noise)
	if err := sound.Init(); err != nil {
		log.Printf("Audio initialization failed: %v", err)
	}
	defer sound.Close()

	hud := NewHUD(lvl.Name)
	view := &ViewState{ShowHUD: *debug}

	swap := func(w, h int) {
		oldW, oldH := renderer.Width(), renderer.Height()
		renderer = render.Resize(renderer, w, h)
		minimap.SetFramebuffer(renderer.Framebuffer())
		log.Printf("renderer %dx%d -> %dx%d (noise %.2f)", oldW, oldH, renderer.Width(), renderer.Height(), noise.Load())
	}

	// Context for clean shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Events are handed to the frame loop so all state stays on one goroutine
	events := make(chan uv.Event, 64)
	go func() {
		for ev := range term.Events() {
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	var in input
	var mouseDown bool
	var lastMouseX int
	const turnStrength = 3.0

	handle := func(ev uv.Event) {
		switch ev := ev.(type) {
		case uv.WindowSizeEvent:
			width, height = ev.Width, ev.Height
			term.Erase()
			term.Resize(width, height)
			termRenderer = render.NewTerminalRenderer(term, width, height)
			w, h := scaler.Rebase(termRenderer.FramebufferSize())
			swap(w, h)

		case uv.KeyPressEvent:
			switch {
			case ev.MatchString("escape"), ev.MatchString("ctrl+c"):
				cancel()
			case ev.MatchString("w", "up"):
				in.forward = 1
			case ev.MatchString("s", "down"):
				in.forward = -1
			case ev.MatchString("a"):
				in.strafe = -1
			case ev.MatchString("d"):
				in.strafe = 1
			case ev.MatchString("q", "left"):
				in.turn = -turnStrength
			case ev.MatchString("e", "right"):
				in.turn = turnStrength
			case ev.MatchString("["):
				view.Bias = math.Max(-1, view.Bias-0.1)
			case ev.MatchString("]"):
				view.Bias = math.Min(1, view.Bias+0.1)
			case ev.MatchString("m"):
				view.ShowMap = !view.ShowMap
			case ev.MatchString("n"):
				view.Muted = !view.Muted
				sound.SetPaused(view.Muted)
			case ev.MatchString("p"):
				path := filepath.Join(*shotsDir, fmt.Sprintf("gloom-%s.png", time.Now().Format("20060102-150405.000")))
				if err := renderer.Framebuffer().SavePNG(path, 4); err != nil {
					log.Printf("screenshot: %v", err)
				} else {
					log.Printf("screenshot saved to %s", path)
				}
			case ev.MatchString("r"):
				player.Reset(lvl.Spawn, lvl.Facing)
			case ev.MatchString("?"), ev.MatchString("shift+/"):
				view.ShowHUD = !view.ShowHUD
			}

		case uv.KeyReleaseEvent:
			switch {
			case ev.MatchString("w"), ev.MatchString("up"), ev.MatchString("s"), ev.MatchString("down"):
				in.forward = 0
			case ev.MatchString("a"), ev.MatchString("d"):
				in.strafe = 0
			case ev.MatchString("q"), ev.MatchString("left"), ev.MatchString("e"), ev.MatchString("right"):
				in.turn = 0
			}

		case uv.MouseClickEvent:
			mouseDown = true
			lastMouseX = ev.X

		case uv.MouseReleaseEvent:
			mouseDown = false

		case uv.MouseMotionEvent:
			if mouseDown {
				player.Turn(float64(ev.X-lastMouseX) * 0.01)
				lastMouseX = ev.X
			}
		}
	}

	// Main loop
	targetDuration := time.Second / time.Duration(*targetFPS)
	lastFrame := time.Now()

	for {
	drain:
		for {
			select {
			case ev := <-events:
				handle(ev)
			default:
				break drain
			}
		}

		select {
		case <-ctx.Done():
			cleanup()
			return nil
		default:
		}

		now := time.Now()
		dt := now.Sub(lastFrame).Seconds()
		lastFrame = now

		if dt > 0.1 {
			dt = 0.1
		}

		// Move, then settle distress for this frame
		player.Turn(in.turn * dt)
		player.Update()
		player.Walk(lvl.Scene, in.forward, in.strafe, dt)
		in.decay()

		target := distress.Target(lvl.Scene, camera.Position, distressReach) + view.Bias
		noise.Store(follower.Update(min(max(target, 0), 1)))
		camera.Noise = noise.Load()

		if w, h, changed := scaler.Update(camera.Noise); changed {
			swap(w, h)
		}

		// Render
		renderer.Draw(lvl.Scene, camera, dt)
		if view.ShowMap {
			minimap.Draw(lvl.Scene)
		}

		// Display
		termRenderer.Render(renderer.Framebuffer())
		if err := termRenderer.Flush(); err != nil {
			cleanup()
			return fmt.Errorf("flush: %w", err)
		}

		// HUD overlay (always update FPS, render clears lines when HUD off)
		hud.UpdateFPS()
		hud.SetStats(renderer.Width(), renderer.Height(), camera.Noise)
		hud.Render(os.Stdout, width, height, view)

		// Frame timing
		elapsed := time.Since(now)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}
