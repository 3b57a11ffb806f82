// Package config reads and writes the per-project settings file
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/nodegame/audio"
)

// Version is the only settings file version understood
const Version = 1

// maxFPS caps the frame rate limit
const maxFPS = 1000

// Environment overrides applied after the file is read
const (
	EnvSound          = "NODEGAME_SOUND"
	EnvLoopProtection = "NODEGAME_LOOP_PROTECTION"
	EnvShowHitboxes   = "NODEGAME_SHOW_HITBOXES"
	EnvFPS            = "NODEGAME_FPS"
	EnvVolume         = "NODEGAME_VOLUME"
)

var ErrVersion = errors.New("unsupported settings version")

// Settings is the project settings file
type Settings struct {
	Version int `yaml:"version"`
	Engine  struct {
		Sound    bool    `yaml:"sound"`
		FPSLimit float64 `yaml:"fps_limit"`
		DebugLog bool    `yaml:"debug_log"`
	} `yaml:"engine"`
	Interpreter struct {
		InfiniteLoopProtection bool `yaml:"infinite_loop_protection"`
		ShowHitboxes           bool `yaml:"show_hitboxes"`
	} `yaml:"interpreter"`
	Render struct {
		CellWidth  int `yaml:"cell_width"`
		CellHeight int `yaml:"cell_height"`
	} `yaml:"render"`
	Audio struct {
		SampleRate int     `yaml:"sample_rate"`
		Volume     float64 `yaml:"volume"`
	} `yaml:"audio"`
}

// Default returns the settings written for new projects
func Default() *Settings {
	s := &Settings{Version: Version}
	s.Engine.Sound = true
	s.Engine.FPSLimit = 60
	s.Interpreter.InfiniteLoopProtection = true
	s.Render.CellWidth = 8
	s.Render.CellHeight = 16
	s.Audio.SampleRate = 44100
	s.Audio.Volume = 1.0
	return s
}

// Load reads the settings at path. A missing file is created with defaults.
// Environment overrides are applied to the returned settings only.
func Load(path string) (*Settings, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		s := Default()
		if err := s.Save(path); err != nil {
			return nil, err
		}
		s.ApplyEnv()
		return s, nil
	}
	if err != nil {
		return nil, err
	}

	s := Default()
	s.Version = 0
	if err := yaml.Unmarshal(b, s); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if s.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrVersion, s.Version)
	}

	s.normalize()
	s.ApplyEnv()
	return s, nil
}

// Save writes the settings as YAML, creating parent directories
func (s *Settings) Save(path string) error {
	b, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// ApplyEnv overrides fields from NODEGAME_* variables. Unparsable values
// are ignored.
func (s *Settings) ApplyEnv() {
	if v, ok := envBool(EnvSound); ok {
		s.Engine.Sound = v
	}
	if v, ok := envBool(EnvLoopProtection); ok {
		s.Interpreter.InfiniteLoopProtection = v
	}
	if v, ok := envBool(EnvShowHitboxes); ok {
		s.Interpreter.ShowHitboxes = v
	}
	if fps := os.Getenv(EnvFPS); fps != "" {
		if val, err := strconv.ParseFloat(fps, 64); err == nil && val > 0 {
			s.Engine.FPSLimit = val
		}
	}
	// Volume is given as 0-100
	if vol := os.Getenv(EnvVolume); vol != "" {
		if val, err := strconv.Atoi(vol); err == nil {
			s.Audio.Volume = float64(val) / 100.0
		}
	}
	s.normalize()
}

// normalize replaces out-of-range values with defaults or bounds
func (s *Settings) normalize() {
	def := Default()
	if !(s.Engine.FPSLimit > 0) {
		s.Engine.FPSLimit = def.Engine.FPSLimit
	}
	if s.Engine.FPSLimit > maxFPS {
		s.Engine.FPSLimit = maxFPS
	}
	if s.Render.CellWidth <= 0 {
		s.Render.CellWidth = def.Render.CellWidth
	}
	if s.Render.CellHeight <= 0 {
		s.Render.CellHeight = def.Render.CellHeight
	}
	if s.Audio.SampleRate <= 0 {
		s.Audio.SampleRate = def.Audio.SampleRate
	}
	if s.Audio.Volume < 0 {
		s.Audio.Volume = 0
	}
	if s.Audio.Volume > 1 {
		s.Audio.Volume = 1
	}
}

// FrameInterval is the target time between frames
func (s *Settings) FrameInterval() time.Duration {
	return time.Duration(float64(time.Second) / s.Engine.FPSLimit)
}

// AudioConfig derives the sound manager settings, starting from the
// audio package's own environment overrides
func (s *Settings) AudioConfig() *audio.AudioConfig {
	cfg := audio.LoadAudioConfig()
	cfg.Enabled = s.Engine.Sound
	cfg.SampleRate = s.Audio.SampleRate
	cfg.MasterVolume = s.Audio.Volume
	return cfg
}

func envBool(key string) (bool, bool) {
	raw := os.Getenv(key)
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}
