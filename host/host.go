// Package host drives a built program in a terminal: it samples input,
// advances the interpreter at its frame rate and renders each frame.
package host

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/nodegame/core"
	"github.com/lixenwraith/nodegame/interp"
	"github.com/lixenwraith/nodegame/render"
	"github.com/lixenwraith/nodegame/status"
)

const (
	// maxStep caps the frame delta after stalls so forces don't jump
	maxStep     = 0.25
	eventBuffer = 100
)

// Options configures a Host
type Options struct {
	Name       string
	CellWidth  int
	CellHeight int
}

// Host owns the frame loop of one running program
type Host struct {
	screen   tcell.Screen
	renderer *render.Renderer
	input    *render.Input
	interp   *interp.Interpreter
	reg      *status.Registry

	started time.Time
	uptime  *atomic.Int64
	halted  bool
}

// New prepares a host for in on an initialized screen
func New(screen tcell.Screen, in *interp.Interpreter, opts Options) *Host {
	reg := in.Metrics()
	reg.Text(status.MetricProject).Store(opts.Name)

	return &Host{
		screen:   screen,
		renderer: render.NewRenderer(screen, opts.CellWidth, opts.CellHeight),
		input:    render.NewInput(),
		interp:   in,
		reg:      reg,
		started:  time.Now(),
		uptime:   reg.Int(status.MetricUptime),
	}
}

// Halted reports whether the program stopped on its own
func (h *Host) Halted() bool { return h.halted }

// HandleEvent applies one terminal event. It returns false on quit.
func (h *Host) HandleEvent(ev tcell.Event) bool {
	if _, ok := ev.(*tcell.EventResize); ok {
		h.renderer.Resize()
		return true
	}
	return h.input.HandleEvent(ev)
}

// Step runs one frame of dt seconds and draws it. A halted program is
// still drawn so its log stays visible.
func (h *Host) Step(dt float64) {
	dt = min(max(dt, 0), maxStep)
	h.input.Advance()

	if !h.halted {
		cam := h.interp.Camera()
		mx, my := h.input.Mouse()
		fi := interp.FrameInput{
			Dt:     dt,
			Mouse:  h.renderer.ToWorld(mx, my, cam),
			Screen: h.renderer.Viewport(cam),
			Keys:   h.input,
		}
		if !h.interp.Frame(fi) {
			h.halted = true
			log.Printf("program halted after %d frames", h.reg.Int(status.MetricFrames).Load())
		}
	}

	h.uptime.Store(int64(time.Since(h.started)))
	h.renderer.Draw(h.interp)
}

// Run loops until ctx is done or the user quits
func (h *Host) Run(ctx context.Context) error {
	events := make(chan tcell.Event, eventBuffer)
	quit := make(chan struct{})
	defer close(quit)
	core.Go(func() { h.screen.ChannelEvents(events, quit) })

	fps := h.interp.FPS()
	ticker := time.NewTicker(frameInterval(fps))
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-events:
			if !ok || !h.HandleEvent(ev) {
				return nil
			}

		case now := <-ticker.C:
			h.Step(now.Sub(last).Seconds())
			last = now

			if f := h.interp.FPS(); f != fps {
				fps = f
				ticker.Reset(frameInterval(fps))
			}
		}
	}
}

// frameInterval is the ticker period for fps, never shorter than one frame
// at interp.MaxFPS
func frameInterval(fps float64) time.Duration {
	switch {
	case fps > interp.MaxFPS:
		fps = interp.MaxFPS
	case !(fps > 0):
		fps = interp.DefaultFPS
	}
	return time.Duration(float64(time.Second) / fps)
}
