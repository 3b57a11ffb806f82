package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvSound, EnvLoopProtection, EnvShowHitboxes, EnvFPS, EnvVolume} {
		t.Setenv(k, "")
	}
}

func TestDefault(t *testing.T) {
	s := Default()
	if !s.Engine.Sound || s.Engine.FPSLimit != 60 || !s.Interpreter.InfiniteLoopProtection {
		t.Errorf("Unexpected engine defaults: %+v", s)
	}
	if s.Interpreter.ShowHitboxes {
		t.Error("Expected hitboxes hidden by default")
	}
	if s.Render.CellWidth != 8 || s.Render.CellHeight != 16 {
		t.Errorf("Expected 8x16 cells, got %dx%d", s.Render.CellWidth, s.Render.CellHeight)
	}
	if s.FrameInterval() != time.Second/60 {
		t.Errorf("Expected %v, got %v", time.Second/60, s.FrameInterval())
	}
}

func TestLoadCreatesMissingFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "sub", "demo.yaml")

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *s != *Default() {
		t.Errorf("Expected defaults, got %+v", s)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Expected settings file created: %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "demo.yaml")

	s := Default()
	s.Engine.Sound = false
	s.Engine.FPSLimit = 30
	s.Interpreter.ShowHitboxes = true
	s.Audio.Volume = 0.5
	if err := s.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *got != *s {
		t.Errorf("Expected %+v, got %+v", s, got)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "demo.yaml")
	os.WriteFile(path, []byte("version: 1\nengine:\n  fps_limit: 0\n  sound: false\naudio:\n  volume: 3\n"), 0o644)

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Engine.Sound {
		t.Error("Expected sound off from file")
	}
	if s.Engine.FPSLimit != 60 {
		t.Errorf("Expected invalid fps replaced by 60, got %v", s.Engine.FPSLimit)
	}
	if s.Audio.Volume != 1 {
		t.Errorf("Expected volume clamped to 1, got %v", s.Audio.Volume)
	}
	if !s.Interpreter.InfiniteLoopProtection {
		t.Error("Expected loop protection default kept")
	}
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{"wrong version", "version: 2\n", ErrVersion},
		{"missing version", "engine:\n  sound: true\n", ErrVersion},
		{"bad yaml", "version: [\n", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "demo.yaml")
			os.WriteFile(path, []byte(tt.content), 0o644)

			_, err := Load(path)
			if err == nil {
				t.Fatal("Expected error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		check func(t *testing.T, s *Settings)
	}{
		{
			name: "flags",
			env:  map[string]string{EnvSound: "false", EnvLoopProtection: "0", EnvShowHitboxes: "true"},
			check: func(t *testing.T, s *Settings) {
				if s.Engine.Sound || s.Interpreter.InfiniteLoopProtection || !s.Interpreter.ShowHitboxes {
					t.Errorf("Flags not applied: %+v", s)
				}
			},
		},
		{
			name: "fps and volume",
			env:  map[string]string{EnvFPS: "30", EnvVolume: "40"},
			check: func(t *testing.T, s *Settings) {
				if s.Engine.FPSLimit != 30 {
					t.Errorf("Expected fps 30, got %v", s.Engine.FPSLimit)
				}
				if s.Audio.Volume != 0.4 {
					t.Errorf("Expected volume 0.4, got %v", s.Audio.Volume)
				}
			},
		},
		{
			name: "fps capped",
			env:  map[string]string{EnvFPS: "Inf"},
			check: func(t *testing.T, s *Settings) {
				if s.Engine.FPSLimit != maxFPS {
					t.Errorf("Expected fps %d, got %v", maxFPS, s.Engine.FPSLimit)
				}
				if s.FrameInterval() <= 0 {
					t.Errorf("Expected positive frame interval, got %v", s.FrameInterval())
				}
			},
		},
		{
			name: "invalid ignored",
			env:  map[string]string{EnvSound: "loud", EnvFPS: "-1", EnvVolume: "x"},
			check: func(t *testing.T, s *Settings) {
				if *s != *Default() {
					t.Errorf("Expected defaults, got %+v", s)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			s := Default()
			s.ApplyEnv()
			tt.check(t, s)
		})
	}
}

func TestAudioConfig(t *testing.T) {
	clearEnv(t)
	s := Default()
	s.Engine.Sound = false
	s.Audio.Volume = 0.3
	s.Audio.SampleRate = 22050

	cfg := s.AudioConfig()
	if cfg.Enabled || cfg.MasterVolume != 0.3 || cfg.SampleRate != 22050 {
		t.Errorf("Unexpected audio config %+v", cfg)
	}
}
