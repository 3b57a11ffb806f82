// Package lower turns an editor graph into an executable program: dense
// node and pin arenas, a sized value store with every link resolved to a
// slot, and the scene components the program draws.
package lower

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lixenwraith/nodegame/asset"
	"github.com/lixenwraith/nodegame/core"
	"github.com/lixenwraith/nodegame/graph"
	"github.com/lixenwraith/nodegame/program"
	"github.com/lixenwraith/nodegame/scene"
	"github.com/lixenwraith/nodegame/value"
)

// Env carries the collaborators of a build
type Env struct {
	Loader asset.Loader
	// MaxValues caps the value store; zero means unlimited
	MaxValues int
}

// Result is the outcome of one build. Failed means the graph itself is
// corrupt; a non-empty Errors with Failed unset means the graph must be
// fixed before it can run.
type Result struct {
	Program *program.Program
	Store   *value.Store
	Scene   *scene.Scene
	Failed  bool
	Errors  []error
	Log     *core.Log
}

// Usable reports whether the build may be run
func (r *Result) Usable() bool {
	return !r.Failed && len(r.Errors) == 0
}

type builder struct {
	g    *graph.Graph
	env  Env
	res  *Result
	prog *program.Program
	vars []string
	pins map[int]int // pin ID -> arena index
}

// Lower builds g. The graph is not modified.
func Lower(g *graph.Graph, env Env) *Result {
	b := &builder{
		g:   g,
		env: env,
		res: &Result{Log: core.NewLog()},
	}
	b.run()
	return b.res
}

func (b *builder) run() {
	if !b.mapPins() || !b.mapNodes() {
		return
	}
	if !b.allocValues() {
		return
	}
	b.bindVariables()
	b.bindGetters()
	if !b.resolveLinks() {
		return
	}
	b.createComponents()

	b.res.Program = b.prog
	if b.res.Usable() {
		b.res.Log.Addf(core.LevelSuccess, "Build completed: %d nodes, %d values, %d components",
			len(b.prog.Nodes), b.res.Store.Len(), b.res.Scene.Len())
	}
}

func (b *builder) fatal(err *BuildError) bool {
	b.res.Failed = true
	b.res.Errors = append(b.res.Errors, err)
	b.res.Log.Error(err)
	return false
}

func (b *builder) recoverable(err *BuildError) {
	b.res.Errors = append(b.res.Errors, err)
	b.res.Log.Error(err)
}

// mapPins copies every pin into the arena with options clamped to the
// current option lists
func (b *builder) mapPins() bool {
	b.vars = variableNames(b.g)
	b.prog = &program.Program{
		Nodes: make([]program.Node, len(b.g.Nodes)),
		Pins:  make([]program.Pin, len(b.g.Pins)),
	}
	b.pins = make(map[int]int, len(b.g.Pins))

	for i := range b.g.Pins {
		src := &b.g.Pins[i]
		dst := program.NewPin(src.ID, src.Kind, program.None, src.IsInput)
		dst.Text = src.Text
		dst.Option = src.Option
		if src.Kind.IsDropdown() {
			dst.Option = graph.ClampOption(src.Option, b.optionCount(src.Kind))
		}
		b.prog.Pins[i] = dst
		if _, dup := b.pins[src.ID]; !dup {
			b.pins[src.ID] = i
		}
	}
	return true
}

func (b *builder) optionCount(kind graph.PinKind) int {
	if kind == graph.PinVariable || kind == graph.PinSpriteVariable {
		return len(b.vars)
	}
	return b.g.OptionCount(kind)
}

// mapNodes replaces pin IDs with arena indices. A missing pin is fatal.
func (b *builder) mapNodes() bool {
	for i := range b.g.Nodes {
		src := &b.g.Nodes[i]
		dst := &b.prog.Nodes[i]
		*dst = program.Node{
			Index:   i,
			ID:      src.ID,
			Kind:    src.Kind,
			Name:    src.Name,
			Inputs:  make([]int, len(src.Inputs)),
			Outputs: make([]int, len(src.Outputs)),
		}

		for j, id := range src.Inputs {
			idx, ok := b.pins[id]
			if !ok {
				return b.fatal(buildErr(CodeInputPin, i, fmt.Errorf("input %w: pin %d", ErrPinMapping, id)))
			}
			dst.Inputs[j] = idx
			b.prog.Pins[idx].Node = i
		}
		for j, id := range src.Outputs {
			idx, ok := b.pins[id]
			if !ok {
				return b.fatal(buildErr(CodeOutputPin, i, fmt.Errorf("output %w: pin %d", ErrPinMapping, id)))
			}
			dst.Outputs[j] = idx
			b.prog.Pins[idx].Node = i
		}
	}
	return true
}

// allocValues sizes the store from the non-flow output count, resolves
// literals and gives every other non-flow output a typed default slot
func (b *builder) allocValues() bool {
	outputs, components := 0, 0
	for i := range b.prog.Nodes {
		n := &b.prog.Nodes[i]
		for _, p := range n.Outputs {
			if b.prog.Pins[p].Kind != graph.PinFlow {
				outputs++
			}
		}
		if isComponentKind(n.Kind) {
			components++
		}
	}

	expected := outputs + value.SpecialCount
	if b.env.MaxValues > 0 && expected > b.env.MaxValues {
		return b.fatal(buildErr(CodeGraphTooLarge, -1,
			fmt.Errorf("%w: %d slots needed, limit %d", ErrGraphTooLarge, expected, b.env.MaxValues)))
	}
	b.res.Store = value.NewStore(expected)
	b.res.Scene = scene.New(components)

	for i := range b.prog.Nodes {
		n := &b.prog.Nodes[i]

		if n.Kind.IsLiteral() {
			if len(n.Inputs) == 0 {
				return b.fatal(buildErr(CodeMissingInput, i, ErrMissingLiteralInput))
			}
			b.literal(n)
			continue
		}

		isVariable := n.Kind.IsVariable()
		for _, p := range n.Outputs {
			pin := &b.prog.Pins[p]
			if pin.Kind == graph.PinFlow {
				continue
			}
			v := value.Zero(valueKind(pin.Kind))
			v.Name = n.Name
			v.IsVariable = isVariable

			slot, err := b.res.Store.Alloc(v)
			if err != nil {
				b.recoverable(buildErr(CodeValueOverflow, i, fmt.Errorf("%w: %v", ErrValueOverflow, err)))
				return true
			}
			pin.Value = slot
			if isVariable {
				if set := b.prog.In(i, 1); set != nil {
					set.Value = slot
				}
			}
		}
	}
	return true
}

// literal parses the field text of a literal node into a fresh slot.
// It returns false when the text is rejected and the output stays unbound.
func (b *builder) literal(n *program.Node) bool {
	text := b.prog.Pins[n.Inputs[0]].Text

	var v value.Value
	switch n.Kind {
	case graph.KindLiteralNumber:
		v = value.Number(parseLeadingFloat(text))
	case graph.KindLiteralString:
		v = value.String(text)
	case graph.KindLiteralBool:
		v = value.Bool(text == "true")
	case graph.KindLiteralColor:
		c, err := core.ParseHexColor(text)
		if err != nil {
			b.recoverable(buildErr(CodeInvalidColor, n.Index, err))
			return false
		}
		v = value.Color(c)
	}
	v.Name = n.Name

	slot, err := b.res.Store.Alloc(v)
	if err != nil {
		b.recoverable(buildErr(CodeValueOverflow, n.Index, fmt.Errorf("%w: %v", ErrValueOverflow, err)))
		return false
	}
	if out := b.prog.Out(n.Index, 0); out != nil {
		out.Value = slot
	}
	return true
}

// bindVariables points get/set variable nodes at the slot of the first
// constructor whose name matches the selected variable, or slot 0
func (b *builder) bindVariables() {
	for i := range b.prog.Nodes {
		n := &b.prog.Nodes[i]

		var sel, out *program.Pin
		switch n.Kind {
		case graph.KindGetVariable:
			sel, out = b.prog.In(i, 0), b.prog.Out(i, 0)
		case graph.KindSetVariable:
			sel, out = b.prog.In(i, 1), b.prog.Out(i, 1)
		default:
			continue
		}
		if out == nil {
			continue
		}

		out.Value = value.SlotError
		if sel == nil || sel.Option <= 0 || sel.Option >= len(b.vars) {
			continue
		}
		name := b.vars[sel.Option]
		for j := range b.prog.Nodes {
			c := &b.prog.Nodes[j]
			if j == i || !c.Kind.IsVariable() || c.Name != name {
				continue
			}
			if src := b.prog.Out(j, 1); src != nil {
				out.Value = src.Value
			}
			break
		}
	}
}

func (b *builder) bindGetters() {
	bind := func(n, out, slot int) {
		if p := b.prog.Out(n, out); p != nil {
			p.Value = slot
		}
	}
	for i := range b.prog.Nodes {
		switch b.prog.Nodes[i].Kind {
		case graph.KindGetScreenWidth:
			bind(i, 0, value.SlotScreenWidth)
		case graph.KindGetScreenHeight:
			bind(i, 0, value.SlotScreenHeight)
		case graph.KindGetMousePosition:
			bind(i, 0, value.SlotMouseX)
			bind(i, 1, value.SlotMouseY)
		case graph.KindGetCameraCenter:
			bind(i, 0, value.SlotCameraCenterX)
			bind(i, 1, value.SlotCameraCenterY)
		}
	}
}

// resolveLinks copies output slots onto inputs and wires flow successors.
// Later flow links from the same output replace earlier ones.
func (b *builder) resolveLinks() bool {
	for _, l := range b.g.Links {
		ii, okIn := b.pins[l.Input]
		oi, okOut := b.pins[l.Output]
		if !okIn || !okOut {
			return b.fatal(buildErr(CodeLinkPin, -1,
				fmt.Errorf("%w: link %d -> %d", ErrLinkPinMissing, l.Output, l.Input)))
		}
		in, out := &b.prog.Pins[ii], &b.prog.Pins[oi]

		in.Value = out.Value
		if in.Kind == graph.PinFlow && out.Kind == graph.PinFlow && in.Node >= 0 {
			out.Next = in.Node
		}
	}
	return true
}

// parseLeadingFloat reads the longest numeric prefix of s; text without
// one reads as 0
func parseLeadingFloat(s string) float64 {
	s = strings.TrimSpace(s)
	for end := len(s); end > 0; end-- {
		if f, err := strconv.ParseFloat(s[:end], 64); err == nil {
			return f
		}
	}
	return 0
}

func valueKind(k graph.PinKind) value.Kind {
	switch k {
	case graph.PinNumber:
		return value.KindNumber
	case graph.PinString:
		return value.KindString
	case graph.PinBool:
		return value.KindBool
	case graph.PinColor:
		return value.KindColor
	case graph.PinSprite:
		return value.KindSprite
	}
	return value.KindNull
}

func isComponentKind(k graph.NodeKind) bool {
	switch k {
	case graph.KindCreateSprite, graph.KindPropTexture, graph.KindPropRectangle, graph.KindPropCircle:
		return true
	}
	return false
}

// variableNames is the graph's own variable table, the one dropdown options
// index into. A graph without a table only has NONE.
func variableNames(g *graph.Graph) []string {
	if len(g.Variables) == 0 {
		return []string{graph.NoneVariable}
	}
	return g.Variables
}
