package interp

import (
	"errors"
	"math"

	"github.com/lixenwraith/nodegame/audio"
	"github.com/lixenwraith/nodegame/core"
	"github.com/lixenwraith/nodegame/graph"
	"github.com/lixenwraith/nodegame/lower"
	"github.com/lixenwraith/nodegame/program"
	"github.com/lixenwraith/nodegame/scene"
	"github.com/lixenwraith/nodegame/value"
	"github.com/lixenwraith/nodegame/vmath"
)

// RunFlow executes the chain that starts after flow output out of node
// from. Each executed node either falls through to its first flow output
// or, for branching kinds, runs its chosen outputs itself.
func (in *Interpreter) RunFlow(from, out int) {
	if in.depth >= MaxFlowDepth {
		if !in.depthReported {
			in.log.Add(core.LevelError, "Flow nesting too deep, chain aborted{I212}")
			in.depthReported = true
		}
		return
	}
	in.depth++
	defer func() { in.depth-- }()

	for steps := 0; ; steps++ {
		if steps >= MaxChainSteps {
			in.log.Add(core.LevelError, "Flow chain too long, possible cycle{I213}")
			return
		}
		pin := in.prog.Out(from, out)
		if pin == nil || pin.Next == program.None {
			return
		}
		cur := pin.Next
		if cur < 0 || cur >= len(in.prog.Nodes) {
			return
		}
		if !in.spend() {
			return
		}
		if !in.exec(cur) || cur == from {
			return
		}
		from, out = cur, 0
	}
}

// spend takes one node execution from the frame budget. Once it is gone
// every chain stops until the next frame.
func (in *Interpreter) spend() bool {
	if in.budget <= 0 {
		if !in.budgetReported {
			in.log.Add(core.LevelError, "Too many nodes executed this frame, flow stopped{I213}")
			in.budgetReported = true
		}
		return false
	}
	in.budget--
	return true
}

func (in *Interpreter) resetBudget() {
	in.budget = MaxFrameSteps
	in.budgetReported = false
}

// exec runs node i and reports whether the chain continues through output 0
func (in *Interpreter) exec(i int) bool {
	n := &in.prog.Nodes[i]

	switch n.Kind {
	case graph.KindCreateNumber, graph.KindCreateString, graph.KindCreateBool, graph.KindCreateColor:
		if src, dst := in.input(i, 1), in.output(i, 1); src != nil && dst != nil && src != dst {
			value.Assign(dst, *src)
		}

	case graph.KindCreateSprite:
		in.updateSprite(i)

	case graph.KindCastToNumber, graph.KindCastToString, graph.KindCastToBool, graph.KindCastToColor:
		if src, dst := in.input(i, 1), in.output(i, 1); src != nil && dst != nil {
			in.cast(n.Kind, *src, dst)
		}

	case graph.KindCallCustomEvent:
		if p := in.prog.In(i, 1); p != nil {
			for _, head := range in.events[p.Text] {
				in.RunFlow(head, 0)
			}
		}

	case graph.KindGetRandomNumber:
		lo, hi, dst := in.input(i, 1), in.input(i, 2), in.output(i, 1)
		if lo != nil && hi != nil && dst != nil {
			dst.Number = float64(in.rng.IntRange(int(lo.Number), int(hi.Number)))
		}

	case graph.KindGetSpritePosition:
		if c := in.sprite(i, 1); c != nil {
			if x := in.output(i, 1); x != nil {
				x.Number = c.Position.X
			}
			if y := in.output(i, 2); y != nil {
				y.Number = c.Position.Y
			}
		}

	case graph.KindSetVariable:
		if dst, src := in.output(i, 1), in.input(i, 2); dst != nil && src != nil {
			value.Assign(dst, *src)
		}

	case graph.KindSetBackground:
		if v := in.input(i, 1); v != nil {
			in.background = v.Color
		}

	case graph.KindSetFPS:
		if v := in.input(i, 1); v != nil {
			in.fps = clampFPS(v.Number, in.fps)
		}

	case graph.KindBranch:
		if v := in.input(i, 1); v != nil {
			if v.Bool {
				in.RunFlow(i, 0)
			} else {
				in.RunFlow(i, 1)
			}
		}
		return false

	case graph.KindLoop:
		in.loop(i)

	case graph.KindDelay:
		in.schedule(i)
		return false

	case graph.KindFlipFlop:
		out := 0
		if n.FlipFlop {
			out = 1
		}
		in.RunFlow(i, out)
		n.FlipFlop = !n.FlipFlop
		return false

	case graph.KindBreak:
		in.breakLoop = true
		return false

	case graph.KindReturn:
		return false

	case graph.KindSequence:
		for out := range n.Outputs {
			in.RunFlow(i, out)
		}
		return false

	case graph.KindSpawnSprite:
		if c := in.sprite(i, 1); c != nil {
			c.Visible = true
			if v := in.input(i, 2); v != nil {
				c.Position.X = v.Number
			}
			if v := in.input(i, 3); v != nil {
				c.Position.Y = v.Number
			}
			if v := in.input(i, 4); v != nil {
				c.Rotation = screenRotation(v.Number)
			}
		}

	case graph.KindDestroySprite:
		if c := in.sprite(i, 1); c != nil {
			c.Visible = false
		}

	case graph.KindSetSpritePosition:
		if c := in.sprite(i, 1); c != nil {
			c.Position = vmath.Vec2{X: in.number(i, 2), Y: in.number(i, 3)}
		}

	case graph.KindSetSpriteRotation:
		if c := in.sprite(i, 1); c != nil {
			c.Rotation = screenRotation(in.number(i, 2))
		}

	case graph.KindSetSpriteTexture:
		in.swapTexture(i)

	case graph.KindSetSpriteSize:
		if c := in.sprite(i, 1); c != nil {
			c.Width, c.Height = in.number(i, 2), in.number(i, 3)
		}

	case graph.KindMoveToSprite:
		in.moveTo(i)

	case graph.KindForceSprite:
		if comp := in.spriteIndex(i, 1); comp != program.None {
			err := in.forces.Apply(scene.Force{
				ID:        i,
				Component: comp,
				Speed:     in.number(i, 2),
				Angle:     in.number(i, 3),
				Duration:  in.number(i, 4),
			})
			if err != nil {
				in.log.Add(core.LevelWarning, "Maximum forces reached{I107}")
			}
		}

	case graph.KindStopMovement:
		if comp := in.spriteIndex(i, 1); comp != program.None {
			in.forces.Stop(comp)
		}

	case graph.KindPropTexture, graph.KindPropRectangle, graph.KindPropCircle:
		in.drawProp(i)

	case graph.KindComparison:
		a, b, dst := in.input(i, 2), in.input(i, 3), in.output(i, 1)
		if a != nil && b != nil && dst != nil {
			switch in.option(i, 1) {
			case graph.CompareEqual:
				dst.Bool = a.Number == b.Number
			case graph.CompareGreater:
				dst.Bool = a.Number > b.Number
			case graph.CompareLess:
				dst.Bool = a.Number < b.Number
			}
		}

	case graph.KindGate:
		a, b, dst := in.input(i, 2), in.input(i, 3), in.output(i, 1)
		if a != nil && b != nil && dst != nil {
			dst.Bool = gate(in.option(i, 1), a.Bool, b.Bool, dst.Bool)
		}

	case graph.KindArithmetic:
		a, b, dst := in.input(i, 2), in.input(i, 3), in.output(i, 1)
		if a != nil && b != nil && dst != nil {
			dst.Number = arithmetic(in.option(i, 1), a.Number, b.Number, dst.Number)
		}

	case graph.KindClamp:
		v, lo, hi, dst := in.input(i, 1), in.input(i, 2), in.input(i, 3), in.output(i, 1)
		if v != nil && lo != nil && hi != nil && dst != nil {
			dst.Number = vmath.Clamp(v.Number, lo.Number, hi.Number)
		}

	case graph.KindLerp:
		a, b, t, dst := in.input(i, 1), in.input(i, 2), in.input(i, 3), in.output(i, 1)
		if a != nil && b != nil && t != nil && dst != nil {
			dst.Number = lerp(a.Number, b.Number, t.Number)
		}

	case graph.KindSin:
		if v, dst := in.input(i, 1), in.output(i, 1); v != nil && dst != nil {
			dst.Number = math.Sin(v.Number)
		}

	case graph.KindCos:
		if v, dst := in.input(i, 1), in.output(i, 1); v != nil && dst != nil {
			dst.Number = math.Cos(v.Number)
		}

	case graph.KindPrint:
		if v := in.input(i, 1); v != nil {
			in.log.Add(core.LevelDebug, v.String())
		}

	case graph.KindDebugLine:
		in.debugLine(i)

	case graph.KindMoveCamera:
		if v := in.input(i, 1); v != nil {
			in.camera.Offset.X += v.Number
		}
		if v := in.input(i, 2); v != nil {
			in.camera.Offset.Y += v.Number
		}

	case graph.KindZoomCamera:
		if v := in.input(i, 1); v != nil {
			in.camera.Zoom = math.Max(in.camera.Zoom+v.Number, MinZoom)
		}

	case graph.KindShakeCamera:
		strength, dur := in.input(i, 1), in.input(i, 2)
		if strength != nil && dur != nil {
			in.shakeStrength = vmath.Clamp(strength.Number, 0, MaxShakeStrength)
			in.shakeLeft = dur.Number
		}

	case graph.KindPlaySound:
		in.playSound(i)

	case graph.KindComment:

	default:
		if _, ok := graph.InfoOf(n.Kind); !ok {
			in.log.Add(core.LevelError, "Unknown node{I20E}")
		}
	}
	return true
}

// loop runs output 1 while the condition holds. Past MaxLoopIterations the
// loop aborts when protection is on and only warns once otherwise.
func (in *Interpreter) loop(i int) {
	cond := in.input(i, 1)
	if cond == nil {
		return
	}
	in.breakLoop = false

	for steps := 0; cond.Bool; steps++ {
		if !in.spend() {
			return
		}
		if steps >= MaxLoopIterations {
			if in.loopProtection {
				in.log.Add(core.LevelError, "Possible infinite loop detected and exited! You can turn off infinite loop protection in settings{I210}")
				return
			}
			if !in.loopWarned {
				in.log.Add(core.LevelWarning, "Possible infinite loop detected! Infinite loop protection is off!{I101}")
				in.loopWarned = true
			}
		}
		in.RunFlow(i, 1)
		if in.breakLoop {
			in.breakLoop = false
			return
		}
	}
}

func (in *Interpreter) schedule(i int) {
	if len(in.delays) >= MaxDelays {
		in.log.Add(core.LevelWarning, "Maximum delays reached{I114}")
		return
	}
	in.delays = append(in.delays, delay{node: i, left: in.number(i, 1)})
}

// updateSprite reapplies the size and layer inputs of a create-sprite node
func (in *Interpreter) updateSprite(i int) {
	out := in.prog.Out(i, 1)
	if out == nil {
		return
	}
	v := in.store.At(out.Value)
	if v == nil {
		return
	}
	if w := in.input(i, 2); w != nil {
		v.Sprite.Width = w.Number
	}
	if h := in.input(i, 3); h != nil {
		v.Sprite.Height = h.Number
	}
	layer := lower.LayerOf(in.prog.In(i, 4))
	v.Sprite.Layer = int(layer)

	if c := in.scene.At(out.Component); c != nil {
		c.Width, c.Height = v.Sprite.Width, v.Sprite.Height
		c.Layer = layer
	}
}

func (in *Interpreter) swapTexture(i int) {
	c := in.sprite(i, 1)
	name := in.input(i, 2)
	if c == nil || name == nil {
		return
	}
	if in.loader == nil {
		in.log.Add(core.LevelWarning, "Failed to load texture{I20C}")
		return
	}
	tex, err := in.loader.LoadTexture(name.Text)
	if err != nil {
		in.log.Addf(core.LevelWarning, "Failed to load texture %q{I20C}", name.Text)
		return
	}
	c.Texture = tex
}

// moveTo aims a force from the sprite's position at the target point,
// lasting as long as the trip takes at the given speed
func (in *Interpreter) moveTo(i int) {
	comp := in.spriteIndex(i, 1)
	c := in.scene.At(comp)
	if c == nil {
		return
	}
	target := vmath.Vec2{X: in.number(i, 2), Y: in.number(i, 3)}
	speed := in.number(i, 4)
	d := target.Sub(c.Position)
	dist := math.Sqrt(d.LengthSq())
	if speed <= 0 || dist < vmath.Epsilon {
		return
	}

	err := in.forces.Replace(scene.Force{
		ID:        i,
		Component: comp,
		Speed:     speed,
		Angle:     math.Atan2(-d.Y, d.X) * 180 / math.Pi,
		Duration:  dist / speed,
	})
	if err != nil {
		in.log.Add(core.LevelWarning, "Maximum forces reached{I107}")
	}
}

// drawProp shows a prop and refreshes its geometry from the current inputs
func (in *Interpreter) drawProp(i int) {
	out := in.prog.Out(i, 1)
	if out == nil {
		return
	}
	c := in.scene.At(out.Component)
	if c == nil {
		return
	}
	c.Visible = true

	switch in.prog.Nodes[i].Kind {
	case graph.KindPropTexture:
		w, h := in.number(i, 4), in.number(i, 5)
		c.Width, c.Height = w, h
		c.Position = vmath.Vec2{X: in.number(i, 2) - w/2, Y: in.number(i, 3) - h/2}
		c.Hitbox.Size = vmath.Vec2{X: w, Y: h}
	case graph.KindPropRectangle:
		w, h := in.number(i, 3), in.number(i, 4)
		c.Width, c.Height = w, h
		c.Position = vmath.Vec2{X: in.number(i, 1) - w/2, Y: in.number(i, 2) - h/2}
		c.Hitbox.Size = vmath.Vec2{X: w, Y: h}
		if v := in.input(i, 5); v != nil && v.Kind == value.KindColor {
			c.Color = v.Color
		}
	case graph.KindPropCircle:
		r := in.number(i, 3)
		c.Width, c.Height = r*2, r*2
		c.Position = vmath.Vec2{X: in.number(i, 1), Y: in.number(i, 2)}
		c.Hitbox.Radius = r
		if v := in.input(i, 4); v != nil && v.Kind == value.KindColor {
			c.Color = v.Color
		}
	}
}

func (in *Interpreter) debugLine(i int) {
	for k := 1; k <= 5; k++ {
		if in.input(i, k) == nil {
			return
		}
	}
	in.lines = append(in.lines, DebugLine{
		From:  vmath.Vec2{X: in.number(i, 1), Y: in.number(i, 2)},
		To:    vmath.Vec2{X: in.number(i, 3), Y: in.number(i, 4)},
		Color: in.input(i, 5).Color,
	})
}

func (in *Interpreter) playSound(i int) {
	name := in.input(i, 1)
	if name == nil {
		return
	}
	if in.sound == nil {
		in.log.Add(core.LevelWarning, "Invalid sound{I105}")
		return
	}
	if err := in.sound.Play(name.Text); err != nil {
		if errors.Is(err, audio.ErrCapacity) {
			in.log.Add(core.LevelWarning, "Maximum sounds reached{I104}")
			return
		}
		in.log.Addf(core.LevelWarning, "Invalid sound %q{I105}", name.Text)
	}
}

// input returns the slot bound to input pin k of node i, or nil
func (in *Interpreter) input(i, k int) *value.Value {
	p := in.prog.In(i, k)
	if p == nil {
		return nil
	}
	return in.store.At(p.Value)
}

// output returns the slot bound to output pin k of node i, or nil
func (in *Interpreter) output(i, k int) *value.Value {
	p := in.prog.Out(i, k)
	if p == nil {
		return nil
	}
	return in.store.At(p.Value)
}

func (in *Interpreter) number(i, k int) float64 {
	if v := in.input(i, k); v != nil {
		return v.Number
	}
	return 0
}

func (in *Interpreter) option(i, k int) int {
	if p := in.prog.In(i, k); p != nil {
		return p.Option
	}
	return 0
}

// spriteIndex resolves a sprite selector pin to its component index
func (in *Interpreter) spriteIndex(i, k int) int {
	v := in.input(i, k)
	if v == nil || v.Component < 0 || v.Component >= in.scene.Len() {
		return program.None
	}
	return v.Component
}

func (in *Interpreter) sprite(i, k int) *scene.Component {
	return in.scene.At(in.spriteIndex(i, k))
}

// screenRotation converts a counter-clockwise angle in degrees to the
// clockwise rotation used for drawing
func screenRotation(deg float64) float64 {
	return -(deg - 360)
}

func gate(op int, a, b, prev bool) bool {
	switch op {
	case graph.GateAnd:
		return a && b
	case graph.GateOr:
		return a || b
	case graph.GateNot:
		return !a
	case graph.GateXor:
		return a != b
	case graph.GateNand:
		return !(a && b)
	case graph.GateNor:
		return !(a || b)
	}
	return prev
}

// arithmetic applies op without guarding division. Modulo truncates both
// operands to integers and yields NaN for a zero divisor.
func arithmetic(op int, a, b, prev float64) float64 {
	switch op {
	case graph.ArithAdd:
		return a + b
	case graph.ArithSubtract:
		return a - b
	case graph.ArithMultiply:
		return a * b
	case graph.ArithDivide:
		return a / b
	case graph.ArithModulo:
		ia, ib := int64(a), int64(b)
		if ib == 0 {
			return math.NaN()
		}
		return float64(ia % ib)
	}
	return prev
}

// lerp interpolates from the smaller to the larger bound with alpha in [0, 1]
func lerp(a, b, alpha float64) float64 {
	if b < a {
		a, b = b, a
	}
	alpha = vmath.Clamp(alpha, 0, 1)
	return a + (b-a)*alpha
}
