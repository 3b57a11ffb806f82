package audio

import (
	"os"
	"strconv"
	"time"
)

// Environment overrides read by LoadAudioConfig
const (
	EnvAudioEnabled = "NODEGAME_AUDIO_ENABLED"
	EnvMasterVolume = "NODEGAME_MASTER_VOLUME"
	EnvSampleRate   = "NODEGAME_SAMPLE_RATE"
	EnvBufferMs     = "NODEGAME_AUDIO_BUFFER_MS"
)

// AudioConfig controls the speaker output
type AudioConfig struct {
	Enabled      bool
	MasterVolume float64 // 0.0 to 1.0
	SampleRate   int
	Buffer       time.Duration
}

// DefaultAudioConfig returns the settings used when nothing is configured
func DefaultAudioConfig() *AudioConfig {
	return &AudioConfig{
		Enabled:      true,
		MasterVolume: 1.0,
		SampleRate:   44100,
		Buffer:       100 * time.Millisecond,
	}
}

// LoadAudioConfig loads audio configuration from environment variables
func LoadAudioConfig() *AudioConfig {
	cfg := DefaultAudioConfig()

	if enabled := os.Getenv(EnvAudioEnabled); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Enabled = val
		}
	}

	// Master volume is given as 0-100
	if volume := os.Getenv(EnvMasterVolume); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			cfg.MasterVolume = clampVolume(float64(val) / 100.0)
		}
	}

	if sampleRate := os.Getenv(EnvSampleRate); sampleRate != "" {
		if val, err := strconv.Atoi(sampleRate); err == nil && val > 0 {
			cfg.SampleRate = val
		}
	}

	if buf := os.Getenv(EnvBufferMs); buf != "" {
		if val, err := strconv.Atoi(buf); err == nil && val > 0 {
			cfg.Buffer = time.Duration(val) * time.Millisecond
		}
	}

	return cfg
}

func clampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
