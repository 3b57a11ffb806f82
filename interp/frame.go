package interp

import (
	"github.com/lixenwraith/nodegame/core"
	"github.com/lixenwraith/nodegame/graph"
	"github.com/lixenwraith/nodegame/value"
	"github.com/lixenwraith/nodegame/vmath"
)

// KeyPause toggles the pause state while a program runs
const KeyPause = 'P'

// KeyState answers key queries for the current frame using graph key codes
type KeyState interface {
	Pressed(key int) bool
	Released(key int) bool
	Down(key int) bool
}

// FrameInput is what the host samples before each frame
type FrameInput struct {
	Dt     float64
	Mouse  vmath.Vec2
	Screen vmath.Rect
	Keys   KeyState
}

// Frame advances the program by one frame. It returns false when the
// program cannot keep running.
func (in *Interpreter) Frame(fi FrameInput) bool {
	in.lines = in.lines[:0]
	in.depthReported = false
	in.resetBudget()
	in.breakLoop = false

	if fi.Keys != nil && fi.Keys.Pressed(KeyPause) {
		in.SetPaused(!in.paused)
	}
	if in.paused {
		return true
	}

	in.store.UpdateSpecial(fi.Mouse, fi.Screen)

	if !in.started {
		in.start()
	}

	in.buttonEvents(fi.Keys)
	in.runDelays(fi.Dt)

	if len(in.ticks) == 0 {
		in.log.Add(core.LevelError, "No tick node found{I211}")
		return false
	}
	for _, t := range in.ticks {
		in.RunFlow(t, 0)
	}

	for _, err := range in.forces.Step(in.scene, fi.Dt) {
		in.log.Warn(err)
	}

	if in.sound != nil {
		if in.soundChanged {
			in.sound.SetEnabled(in.soundOn)
			in.soundChanged = false
		}
		in.sound.Update(fi.Dt)
	}

	in.syncSprites()
	in.updateShake(fi.Dt)
	in.publish(fi.Dt)
	return true
}

// start collects event nodes and runs every start chain once
func (in *Interpreter) start() {
	in.started = true

	var starts []int
	for i := range in.prog.Nodes {
		switch in.prog.Nodes[i].Kind {
		case graph.KindEventStart:
			starts = append(starts, i)
		case graph.KindEventTick:
			if len(in.ticks) < MaxTickNodes {
				in.ticks = append(in.ticks, i)
			}
		case graph.KindEventOnButton:
			in.buttons = append(in.buttons, i)
		case graph.KindCreateCustomEvent:
			if p := in.prog.In(i, 0); p != nil {
				in.events[p.Text] = append(in.events[p.Text], i)
			}
		}
	}

	for _, s := range starts {
		in.RunFlow(s, 0)
	}
}

func (in *Interpreter) buttonEvents(keys KeyState) {
	if keys == nil {
		return
	}
	for _, i := range in.buttons {
		key, action := in.prog.In(i, 0), in.prog.In(i, 1)
		if key == nil || action == nil || key.Option == graph.KeyNone {
			continue
		}

		var fire bool
		switch action.Option {
		case graph.KeyActionPressed:
			fire = keys.Pressed(key.Option)
		case graph.KeyActionReleased:
			fire = keys.Released(key.Option)
		case graph.KeyActionDown:
			fire = keys.Down(key.Option)
		case graph.KeyActionNotDown:
			fire = !keys.Down(key.Option)
		}
		if fire {
			in.RunFlow(i, 0)
		}
	}
}

// runDelays continues every delay whose time ran out, in scheduling order
func (in *Interpreter) runDelays(dt float64) {
	if len(in.delays) == 0 {
		return
	}
	var due []int
	kept := in.delays[:0]
	for _, d := range in.delays {
		d.left -= dt
		if d.left <= 0 {
			due = append(due, d.node)
			continue
		}
		kept = append(kept, d)
	}
	in.delays = kept

	for _, node := range due {
		in.RunFlow(node, 0)
	}
}

// syncSprites copies component state back into sprite values
func (in *Interpreter) syncSprites() {
	for i := 0; i < in.store.Len(); i++ {
		v := in.store.At(i)
		if v.Kind != value.KindSprite {
			continue
		}
		c := in.scene.At(v.Component)
		if c == nil {
			continue
		}
		v.Sprite = value.Sprite{
			Position: c.Position,
			Width:    c.Width,
			Height:   c.Height,
			Rotation: c.Rotation,
			Layer:    int(c.Layer),
			Visible:  c.Visible,
		}
	}
}

// updateShake replaces last frame's random camera offset with a new one
// and removes it once the shake is over
func (in *Interpreter) updateShake(dt float64) {
	in.camera.Offset = in.camera.Offset.Sub(in.shake)
	in.shake = vmath.Vec2{}

	if in.shakeLeft <= 0 {
		return
	}
	in.shakeLeft -= dt
	n := int(in.shakeStrength)
	in.shake = vmath.Vec2{
		X: float64(in.rng.IntRange(-n, n)),
		Y: float64(in.rng.IntRange(-n, n)),
	}
	in.camera.Offset = in.camera.Offset.Add(in.shake)
}

func (in *Interpreter) publish(dt float64) {
	in.m.frames.Add(1)
	in.m.forces.Store(int64(in.forces.Len()))
	in.m.visible.Store(int64(in.scene.VisibleCount()))
	in.m.delays.Store(int64(len(in.delays)))
	in.m.steps.Store(int64(MaxFrameSteps - in.budget))
	if in.sound != nil {
		in.m.sounds.Store(int64(in.sound.Active()))
	}
	in.m.frameDur.Store(dt)
}
