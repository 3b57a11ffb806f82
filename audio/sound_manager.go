// Package audio plays project sound files through the speaker
package audio

import (
	"errors"
	"math"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/nodegame/asset"
)

// MaxSounds bounds the simultaneously playing sounds
const MaxSounds = 16

// resampleQuality is the beep resampler quality used for clips whose rate
// differs from the output rate
const resampleQuality = 4

var (
	ErrCapacity = errors.New("maximum sounds reached")
	ErrSound    = errors.New("invalid sound")
)

// Output is the device sounds are mixed into
type Output interface {
	Init(sr beep.SampleRate, bufferSize int) error
	Play(s beep.Streamer)
	Lock()
	Unlock()
	Close()
}

// speakerOutput drives the beep speaker
type speakerOutput struct{}

func (speakerOutput) Init(sr beep.SampleRate, bufferSize int) error {
	return speaker.Init(sr, bufferSize)
}
func (speakerOutput) Play(s beep.Streamer) { speaker.Play(s) }
func (speakerOutput) Lock()                { speaker.Lock() }
func (speakerOutput) Unlock()              { speaker.Unlock() }
func (speakerOutput) Close()               { speaker.Close() }

// voice is one playing sound and the seconds it has left
type voice struct {
	vol  *effects.Volume
	left float64
}

// SoundManager plays decoded clips through a shared mixer. Without a working
// output it keeps tracking voices so capacity and errors behave the same.
type SoundManager struct {
	mu          sync.Mutex
	config      *AudioConfig
	output      Output
	cache       *clipCache
	mixer       *beep.Mixer
	voices      []*voice
	enabled     bool
	initialized bool
	played      uint64
}

// NewSoundManager creates a sound manager reading files through opener.
// A nil output selects the system speaker.
func NewSoundManager(opener asset.Opener, cfg *AudioConfig, out Output) *SoundManager {
	if cfg == nil {
		cfg = DefaultAudioConfig()
	}
	if out == nil {
		out = speakerOutput{}
	}
	return &SoundManager{
		config:  cfg,
		output:  out,
		cache:   newClipCache(opener),
		mixer:   &beep.Mixer{},
		voices:  make([]*voice, 0, MaxSounds),
		enabled: cfg.Enabled,
	}
}

// Initialize opens the output device. On failure the manager stays usable
// and silent.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	sr := sm.sampleRate()
	if err := sm.output.Init(sr, sr.N(sm.config.Buffer)); err != nil {
		return err
	}

	sm.output.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds and closes the output
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.voices = sm.voices[:0]
	if !sm.initialized {
		return
	}

	sm.output.Lock()
	sm.mixer.Clear()
	sm.output.Unlock()
	sm.output.Close()
	sm.initialized = false
}

// Play starts the sound file rel. It fails with ErrCapacity when MaxSounds
// are playing and with ErrSound when the file cannot be decoded.
func (sm *SoundManager) Play(rel string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if len(sm.voices) >= MaxSounds {
		return ErrCapacity
	}

	cl, err := sm.cache.get(rel)
	if err != nil {
		return err
	}

	var stream beep.Streamer = cl.buf.Streamer(0, cl.buf.Len())
	if src, dst := cl.buf.Format().SampleRate, sm.sampleRate(); src != dst {
		stream = beep.Resample(resampleQuality, src, dst, stream)
	}

	v := &voice{
		vol:  &effects.Volume{Streamer: stream, Base: 2},
		left: cl.length,
	}
	sm.applyVolume(v)
	sm.voices = append(sm.voices, v)
	sm.played++

	if sm.initialized {
		sm.output.Lock()
		sm.mixer.Add(v.vol)
		sm.output.Unlock()
	}
	return nil
}

// SetEnabled mutes or unmutes every playing and future sound
func (sm *SoundManager) SetEnabled(on bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.enabled = on
	if sm.initialized {
		sm.output.Lock()
		defer sm.output.Unlock()
	}
	for _, v := range sm.voices {
		sm.applyVolume(v)
	}
}

// Update ages playing sounds by dt seconds and forgets finished ones
func (sm *SoundManager) Update(dt float64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	kept := sm.voices[:0]
	for _, v := range sm.voices {
		v.left -= dt
		if v.left > 0 {
			kept = append(kept, v)
		}
	}
	sm.voices = kept
}

// Active returns the number of playing sounds
func (sm *SoundManager) Active() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return len(sm.voices)
}

// Enabled reports whether sounds are audible
func (sm *SoundManager) Enabled() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.enabled
}

// Played returns how many sounds were started
func (sm *SoundManager) Played() uint64 {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.played
}

func (sm *SoundManager) sampleRate() beep.SampleRate {
	return beep.SampleRate(sm.config.SampleRate)
}

// applyVolume maps the master volume onto the base-2 volume effect
func (sm *SoundManager) applyVolume(v *voice) {
	master := clampVolume(sm.config.MasterVolume)
	v.vol.Silent = !sm.enabled || master == 0
	if master > 0 {
		v.vol.Volume = math.Log2(master)
	}
}
