// Package audio plays white-noise static whose loudness follows the
// player's distress level.
package audio

import (
	"os"
	"strconv"
)

// Config holds audio settings.
type Config struct {
	Enabled    bool
	Volume     float64 // Master volume in [0,1]
	SampleRate int
}

// DefaultConfig returns the default audio settings.
func DefaultConfig() *Config {
	return &Config{
		Enabled:    true,
		Volume:     0.5,
		SampleRate: 44100,
	}
}

// LoadConfig loads audio configuration from environment variables
func LoadConfig() *Config {
	cfg := DefaultConfig()

	if enabled := os.Getenv("GLOOM_AUDIO_ENABLED"); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Enabled = val
		}
	}

	// Volume is given as 0-100
	if volume := os.Getenv("GLOOM_VOLUME"); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			cfg.Volume = min(max(float64(val)/100.0, 0), 1)
		}
	}

	if sampleRate := os.Getenv("GLOOM_SAMPLE_RATE"); sampleRate != "" {
		if val, err := strconv.Atoi(sampleRate); err == nil && val > 0 {
			cfg.SampleRate = val
		}
	}

	return cfg
}
