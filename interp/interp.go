// Package interp runs a lowered program: it walks flow chains from event
// nodes once per frame and drives the scene, camera, forces and sounds.
package interp

import (
	"errors"
	"sync/atomic"

	"github.com/lixenwraith/nodegame/asset"
	"github.com/lixenwraith/nodegame/core"
	"github.com/lixenwraith/nodegame/lower"
	"github.com/lixenwraith/nodegame/program"
	"github.com/lixenwraith/nodegame/scene"
	"github.com/lixenwraith/nodegame/status"
	"github.com/lixenwraith/nodegame/value"
	"github.com/lixenwraith/nodegame/vmath"
)

const (
	// MaxFlowDepth bounds nested flow calls (branches, loops, sequences, events)
	MaxFlowDepth = 256
	// MaxChainSteps bounds the nodes one flow call may execute in a line
	MaxChainSteps = 1 << 16
	// MaxFrameSteps bounds the nodes executed in one frame across all chains
	MaxFrameSteps = 1 << 20
	// MaxLoopIterations is the loop ceiling checked by infinite loop protection
	MaxLoopIterations = 10000
	// MaxTickNodes bounds the tick events collected on the first frame
	MaxTickNodes = 64
	// MaxDelays bounds pending delay continuations
	MaxDelays = 256

	MinZoom          = 0.1
	MaxShakeStrength = 20
	DefaultFPS       = 60
	MaxFPS           = 1000
)

var ErrUnusableBuild = errors.New("build is not runnable")

// SoundPlayer plays project sounds for Play Sound nodes
type SoundPlayer interface {
	Play(rel string) error
	SetEnabled(on bool)
	Update(dt float64)
	Active() int
}

// Options configures a new interpreter
type Options struct {
	Loader         asset.Loader
	Sound          SoundPlayer
	Metrics        *status.Registry
	LoopProtection bool
	ShowHitboxes   bool
	SoundOn        bool
	FPS            float64
	Seed           uint64
}

// Camera is the view transform applied by the renderer
type Camera struct {
	Offset vmath.Vec2
	Zoom   float64
}

// DebugLine is drawn for one frame only
type DebugLine struct {
	From, To vmath.Vec2
	Color    core.Color
}

type delay struct {
	node int
	left float64
}

type metrics struct {
	frames   *atomic.Int64
	forces   *atomic.Int64
	sounds   *atomic.Int64
	visible  *atomic.Int64
	delays   *atomic.Int64
	steps    *atomic.Int64
	paused   *atomic.Bool
	frameDur *status.Gauge
}

// Interpreter is the whole runtime context of one build
type Interpreter struct {
	prog   *program.Program
	store  *value.Store
	scene  *scene.Scene
	forces *scene.Forces
	log    *core.Log
	loader asset.Loader
	sound  SoundPlayer
	rng    *vmath.FastRand

	background core.Color
	fps        float64
	camera     Camera
	lines      []DebugLine

	shakeStrength float64
	shakeLeft     float64
	shake         vmath.Vec2

	loopProtection bool
	showHitboxes   bool
	soundOn        bool
	soundChanged   bool

	paused  bool
	started bool
	ticks   []int
	buttons []int
	events  map[string][]int
	delays  []delay

	breakLoop      bool
	depth          int
	depthReported  bool
	budget         int
	budgetReported bool
	loopWarned     bool

	registry *status.Registry
	m        metrics
}

// New prepares res for running. Builds with errors are rejected.
func New(res *lower.Result, opts Options) (*Interpreter, error) {
	if res == nil || !res.Usable() || res.Program == nil {
		return nil, ErrUnusableBuild
	}

	log := res.Log
	if log == nil {
		log = core.NewLog()
	}
	reg := opts.Metrics
	if reg == nil {
		reg = status.NewRegistry()
	}
	fps := clampFPS(opts.FPS, DefaultFPS)
	seed := opts.Seed
	if seed == 0 {
		seed = 1
	}

	in := &Interpreter{
		prog:           res.Program,
		store:          res.Store,
		scene:          res.Scene,
		forces:         scene.NewForces(),
		log:            log,
		loader:         opts.Loader,
		sound:          opts.Sound,
		rng:            vmath.NewFastRand(seed),
		background:     core.ColorBlack,
		fps:            fps,
		camera:         Camera{Zoom: 1},
		loopProtection: opts.LoopProtection,
		showHitboxes:   opts.ShowHitboxes,
		soundOn:        opts.SoundOn,
		soundChanged:   true,
		events:         make(map[string][]int),
		registry:       reg,
	}
	in.m = metrics{
		frames:   reg.Int(status.MetricFrames),
		forces:   reg.Int(status.MetricForces),
		sounds:   reg.Int(status.MetricSounds),
		visible:  reg.Int(status.MetricVisible),
		delays:   reg.Int(status.MetricDelays),
		steps:    reg.Int(status.MetricSteps),
		paused:   reg.Bool(status.MetricPaused),
		frameDur: reg.Float(status.MetricFrameTime),
	}
	in.resetBudget()
	return in, nil
}

// clampFPS caps fps at MaxFPS and replaces values that are not positive
// with fallback
func clampFPS(fps, fallback float64) float64 {
	switch {
	case fps > MaxFPS:
		return MaxFPS
	case fps > 0:
		return fps
	}
	return fallback
}

func (in *Interpreter) Program() *program.Program { return in.prog }
func (in *Interpreter) Store() *value.Store       { return in.store }
func (in *Interpreter) Scene() *scene.Scene       { return in.scene }
func (in *Interpreter) Forces() *scene.Forces     { return in.forces }
func (in *Interpreter) Log() *core.Log            { return in.log }
func (in *Interpreter) Metrics() *status.Registry { return in.registry }
func (in *Interpreter) Background() core.Color    { return in.background }
func (in *Interpreter) Camera() Camera            { return in.camera }
func (in *Interpreter) FPS() float64              { return in.fps }
func (in *Interpreter) Paused() bool              { return in.paused }
func (in *Interpreter) ShowHitboxes() bool        { return in.showHitboxes }

// DebugLines returns the lines requested during the last frame
func (in *Interpreter) DebugLines() []DebugLine { return in.lines }

// Drain hands pending log entries to the renderer
func (in *Interpreter) Drain() []core.LogEntry { return in.log.Drain() }

// SetSoundEnabled toggles sound; playing sounds pick up the new volume on
// the next frame
func (in *Interpreter) SetSoundEnabled(on bool) {
	if on != in.soundOn {
		in.soundOn = on
		in.soundChanged = true
	}
}

func (in *Interpreter) SetLoopProtection(on bool) { in.loopProtection = on }
func (in *Interpreter) SetShowHitboxes(on bool)   { in.showHitboxes = on }

// SetPaused forces the pause state
func (in *Interpreter) SetPaused(p bool) {
	in.paused = p
	in.m.paused.Store(p)
}
