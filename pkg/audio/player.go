package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Player owns the speaker and plays the static through it.
type Player struct {
	mu          sync.Mutex
	cfg         *Config
	ctrl        *beep.Ctrl
	initialized bool
}

// NewPlayer builds the static chain for level. Nothing plays until Init.
func NewPlayer(cfg *Config, level Level) *Player {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	static := NewStatic(level, nil)
	return &Player{
		cfg:  cfg,
		ctrl: &beep.Ctrl{Streamer: withVolume(static, cfg.Volume)},
	}
}

// Init opens the speaker and starts playback. It is a no-op when audio is
// disabled or already running.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.cfg.Enabled || p.initialized {
		return nil
	}

	sr := beep.SampleRate(p.cfg.SampleRate)
	if err := speaker.Init(sr, sr.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.ctrl)
	p.initialized = true
	return nil
}

// SetPaused mutes or resumes the static.
func (p *Player) SetPaused(paused bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		p.ctrl.Paused = paused
		return
	}
	speaker.Lock()
	p.ctrl.Paused = paused
	speaker.Unlock()
}

// Paused reports whether the static is muted.
func (p *Player) Paused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return p.ctrl.Paused
	}
	speaker.Lock()
	defer speaker.Unlock()
	return p.ctrl.Paused
}

// Streamer returns the chain handed to the speaker.
func (p *Player) Streamer() beep.Streamer {
	return p.ctrl
}

// Close stops playback and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.initialized = false
}
