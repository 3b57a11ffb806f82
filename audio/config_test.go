package audio

import (
	"testing"
	"time"
)

func TestDefaultAudioConfig(t *testing.T) {
	cfg := DefaultAudioConfig()

	if !cfg.Enabled {
		t.Error("Expected default config to have Enabled=true")
	}
	if cfg.MasterVolume != 1.0 {
		t.Errorf("Expected default master volume 1.0, got %f", cfg.MasterVolume)
	}
	if cfg.SampleRate != 44100 {
		t.Errorf("Expected default sample rate 44100, got %d", cfg.SampleRate)
	}
	if cfg.Buffer != 100*time.Millisecond {
		t.Errorf("Expected 100ms buffer, got %v", cfg.Buffer)
	}
}

func TestLoadAudioConfig(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		check func(t *testing.T, cfg *AudioConfig)
	}{
		{
			name: "defaults",
			env:  nil,
			check: func(t *testing.T, cfg *AudioConfig) {
				if *cfg != *DefaultAudioConfig() {
					t.Errorf("Expected defaults, got %+v", cfg)
				}
			},
		},
		{
			name: "disabled",
			env:  map[string]string{EnvAudioEnabled: "false"},
			check: func(t *testing.T, cfg *AudioConfig) {
				if cfg.Enabled {
					t.Error("Expected audio disabled")
				}
			},
		},
		{
			name: "volume",
			env:  map[string]string{EnvMasterVolume: "25"},
			check: func(t *testing.T, cfg *AudioConfig) {
				if cfg.MasterVolume != 0.25 {
					t.Errorf("Expected 0.25, got %f", cfg.MasterVolume)
				}
			},
		},
		{
			name: "volume clamp",
			env:  map[string]string{EnvMasterVolume: "150"},
			check: func(t *testing.T, cfg *AudioConfig) {
				if cfg.MasterVolume != 1 {
					t.Errorf("Expected clamp to 1, got %f", cfg.MasterVolume)
				}
			},
		},
		{
			name: "sample rate",
			env:  map[string]string{EnvSampleRate: "48000"},
			check: func(t *testing.T, cfg *AudioConfig) {
				if cfg.SampleRate != 48000 {
					t.Errorf("Expected 48000, got %d", cfg.SampleRate)
				}
			},
		},
		{
			name: "invalid values ignored",
			env:  map[string]string{EnvSampleRate: "-5", EnvBufferMs: "abc", EnvAudioEnabled: "maybe"},
			check: func(t *testing.T, cfg *AudioConfig) {
				if *cfg != *DefaultAudioConfig() {
					t.Errorf("Expected defaults, got %+v", cfg)
				}
			},
		},
		{
			name: "buffer",
			env:  map[string]string{EnvBufferMs: "40"},
			check: func(t *testing.T, cfg *AudioConfig) {
				if cfg.Buffer != 40*time.Millisecond {
					t.Errorf("Expected 40ms, got %v", cfg.Buffer)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range []string{EnvAudioEnabled, EnvMasterVolume, EnvSampleRate, EnvBufferMs} {
				t.Setenv(k, "")
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			tt.check(t, LoadAudioConfig())
		})
	}
}
