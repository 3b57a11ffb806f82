package lower

import (
	"errors"
	"io"
	"log"
	"os"
	"testing"

	"github.com/lixenwraith/nodegame/asset"
	"github.com/lixenwraith/nodegame/core"
	"github.com/lixenwraith/nodegame/graph"
	"github.com/lixenwraith/nodegame/program"
	"github.com/lixenwraith/nodegame/scene"
	"github.com/lixenwraith/nodegame/value"
	"github.com/lixenwraith/nodegame/vmath"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

type fakeLoader map[string]asset.Texture

func (f fakeLoader) LoadTexture(rel string) (asset.Texture, error) {
	if tex, ok := f[rel]; ok {
		return tex, nil
	}
	return asset.Texture{}, asset.ErrNotFound
}

var testEnv = Env{Loader: fakeLoader{"ship.png": {Path: "ship.png", Width: 16, Height: 8}}}

func add(t *testing.T, g *graph.Graph, kind graph.NodeKind) int {
	t.Helper()
	id, err := g.AddNode(kind, vmath.Vec2{})
	if err != nil {
		t.Fatalf("AddNode(%v): %v", kind, err)
	}
	return id
}

func connect(t *testing.T, g *graph.Graph, from, out, to, in int) {
	t.Helper()
	if err := g.Connect(g.OutputPin(from, out).ID, g.InputPin(to, in).ID); err != nil {
		t.Fatalf("Connect %d.%d -> %d.%d: %v", from, out, to, in, err)
	}
}

func literal(t *testing.T, g *graph.Graph, kind graph.NodeKind, text string) int {
	t.Helper()
	id := add(t, g, kind)
	g.SetText(g.InputPin(id, 0).ID, text)
	return id
}

func slotOf(res *Result, pinID int) *value.Value {
	for _, p := range res.Program.Pins {
		if p.ID == pinID {
			return res.Store.At(p.Value)
		}
	}
	return nil
}

func TestLowerLiterals(t *testing.T) {
	g := graph.New()
	num := literal(t, g, graph.KindLiteralNumber, "3.5")
	col := literal(t, g, graph.KindLiteralColor, "FF00FF80")
	bl := literal(t, g, graph.KindLiteralBool, "true")
	str := literal(t, g, graph.KindLiteralString, "hello")
	junk := literal(t, g, graph.KindLiteralNumber, "12abc")

	res := Lower(g, testEnv)
	if !res.Usable() {
		t.Fatalf("Expected usable build, got errors %v", res.Errors)
	}

	if v := slotOf(res, g.OutputPin(num, 0).ID); v == nil || v.Number != 3.5 {
		t.Errorf("Expected 3.5, got %+v", v)
	}
	want := core.Color{R: 255, G: 0, B: 255, A: 128}
	if v := slotOf(res, g.OutputPin(col, 0).ID); v == nil || v.Color != want {
		t.Errorf("Expected %v, got %+v", want, v)
	}
	if v := slotOf(res, g.OutputPin(bl, 0).ID); v == nil || !v.Bool {
		t.Errorf("Expected true, got %+v", v)
	}
	if v := slotOf(res, g.OutputPin(str, 0).ID); v == nil || v.Text != "hello" {
		t.Errorf("Expected hello, got %+v", v)
	}
	if v := slotOf(res, g.OutputPin(junk, 0).ID); v == nil || v.Number != 12 {
		t.Errorf("Expected numeric prefix 12, got %+v", v)
	}
	if res.Store.Len() != value.SpecialCount+5 {
		t.Errorf("Expected %d slots, got %d", value.SpecialCount+5, res.Store.Len())
	}
}

func TestLowerLiteralRoundTrip(t *testing.T) {
	g := graph.New()
	col := literal(t, g, graph.KindLiteralColor, "FF00FF80")
	first := Lower(g, testEnv)
	v1 := *slotOf(first, g.OutputPin(col, 0).ID)

	g.SetText(g.InputPin(col, 0).ID, v1.Color.Hex())
	second := Lower(g, testEnv)
	v2 := *slotOf(second, g.OutputPin(col, 0).ID)

	if v1.Color != v2.Color {
		t.Errorf("Expected %v after round trip, got %v", v1.Color, v2.Color)
	}
}

func buildChain(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.New()
	start := add(t, g, graph.KindEventStart)
	v := add(t, g, graph.KindCreateNumber)
	lit := literal(t, g, graph.KindLiteralNumber, "2")
	arith := add(t, g, graph.KindArithmetic)
	out := add(t, g, graph.KindPrint)

	connect(t, g, start, 0, v, 0)
	connect(t, g, v, 0, arith, 0)
	connect(t, g, v, 1, arith, 2)
	connect(t, g, lit, 0, arith, 3)
	connect(t, g, arith, 0, out, 0)
	connect(t, g, arith, 1, out, 1)
	return g
}

func TestLowerDeterministic(t *testing.T) {
	g := buildChain(t)
	a := Lower(g, testEnv)
	b := Lower(g, testEnv)

	if !a.Usable() || !b.Usable() {
		t.Fatalf("Expected usable builds, got %v / %v", a.Errors, b.Errors)
	}
	if len(a.Program.Pins) != len(b.Program.Pins) {
		t.Fatalf("Expected equal pin counts, got %d and %d", len(a.Program.Pins), len(b.Program.Pins))
	}
	for i := range a.Program.Pins {
		pa, pb := a.Program.Pins[i], b.Program.Pins[i]
		if pa.Value != pb.Value || pa.Next != pb.Next || pa.Component != pb.Component {
			t.Errorf("Pin %d differs: %+v vs %+v", pa.ID, pa, pb)
		}
	}
}

func TestLowerLinkTotality(t *testing.T) {
	g := buildChain(t)
	res := Lower(g, testEnv)

	index := make(map[int]program.Pin)
	for _, p := range res.Program.Pins {
		index[p.ID] = p
	}
	for _, l := range g.Links {
		in, out := index[l.Input], index[l.Output]
		if in.Value != out.Value {
			t.Errorf("Link %d -> %d: input slot %d, output slot %d", l.Output, l.Input, in.Value, out.Value)
		}
		if in.Kind == graph.PinFlow && out.Next != in.Node {
			t.Errorf("Link %d -> %d: expected successor %d, got %d", l.Output, l.Input, in.Node, out.Next)
		}
	}
}

func TestLowerConstructorSelfBinding(t *testing.T) {
	g := graph.New()
	v := add(t, g, graph.KindCreateNumber)
	res := Lower(g, testEnv)

	node := res.Program.Nodes[0]
	set := res.Program.Pins[node.Inputs[1]]
	get := res.Program.Pins[node.Outputs[1]]
	if set.Value != get.Value || set.Value < value.SpecialCount {
		t.Errorf("Expected set-value pin on own slot %d, got %d", get.Value, set.Value)
	}
	slot := res.Store.At(get.Value)
	if !slot.IsVariable || slot.Name != g.Node(v).Name {
		t.Errorf("Expected named variable slot, got %+v", slot)
	}
}

func TestLowerFatalErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(g *graph.Graph)
		want   error
		code   string
	}{
		{
			name:   "Dangling link",
			mutate: func(g *graph.Graph) { g.Links = append(g.Links, graph.Link{Input: 9999, Output: g.Pins[0].ID}) },
			want:   ErrLinkPinMissing,
			code:   CodeLinkPin,
		},
		{
			name:   "Dangling input pin",
			mutate: func(g *graph.Graph) { g.Nodes[1].Inputs[0] = 8888 },
			want:   ErrPinMapping,
			code:   CodeInputPin,
		},
		{
			name:   "Dangling output pin",
			mutate: func(g *graph.Graph) { g.Nodes[0].Outputs[0] = 7777 },
			want:   ErrPinMapping,
			code:   CodeOutputPin,
		},
		{
			name:   "Literal without field",
			mutate: func(g *graph.Graph) { g.Nodes[2].Inputs = nil },
			want:   ErrMissingLiteralInput,
			code:   CodeMissingInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := buildChain(t)
			tt.mutate(g)
			res := Lower(g, testEnv)

			if !res.Failed {
				t.Fatal("Expected failed build")
			}
			if res.Program != nil {
				t.Error("Expected no usable program")
			}
			if len(res.Errors) == 0 || !errors.Is(res.Errors[0], tt.want) {
				t.Fatalf("Expected %v, got %v", tt.want, res.Errors)
			}
			var be *BuildError
			if !errors.As(res.Errors[0], &be) || be.Code != tt.code {
				t.Errorf("Expected code %s, got %v", tt.code, res.Errors[0])
			}
			if !res.Log.HasLevel(core.LevelError) {
				t.Error("Expected error entry in build log")
			}
		})
	}
}

func TestLowerValueBudget(t *testing.T) {
	g := buildChain(t)
	res := Lower(g, Env{Loader: testEnv.Loader, MaxValues: value.SpecialCount + 1})
	if !res.Failed || !errors.Is(res.Errors[0], ErrGraphTooLarge) {
		t.Errorf("Expected ErrGraphTooLarge, got %v", res.Errors)
	}
}

func TestLowerInvalidColorRecoverable(t *testing.T) {
	g := graph.New()
	col := literal(t, g, graph.KindLiteralColor, "zz")
	res := Lower(g, testEnv)

	if res.Failed {
		t.Error("Expected recoverable error, got fatal")
	}
	if res.Usable() {
		t.Error("Expected unusable build")
	}
	if len(res.Errors) != 1 || !errors.Is(res.Errors[0], ErrInvalidColor) {
		t.Errorf("Expected ErrInvalidColor, got %v", res.Errors)
	}
	for _, p := range res.Program.Pins {
		if p.ID == g.OutputPin(col, 0).ID && p.Value != program.None {
			t.Errorf("Expected unbound literal output, got slot %d", p.Value)
		}
	}
}

func TestLowerVariables(t *testing.T) {
	g := graph.New()
	first := add(t, g, graph.KindCreateNumber)
	g.Rename(first, "score")
	dup := add(t, g, graph.KindCreateNumber)
	g.Rename(dup, "score")
	get := add(t, g, graph.KindGetVariable)
	set := add(t, g, graph.KindSetVariable)
	bad := add(t, g, graph.KindGetVariable)

	g.SetOption(g.InputPin(get, 0).ID, 1)
	g.SetOption(g.InputPin(set, 1).ID, 1)
	g.InputPin(bad, 0).Option = 99

	res := Lower(g, testEnv)
	if !res.Usable() {
		t.Fatalf("Expected usable build, got %v", res.Errors)
	}

	own := res.Program.Out(0, 1).Value
	if got := res.Program.Out(2, 0).Value; got != own {
		t.Errorf("Get variable: expected first match slot %d, got %d", own, got)
	}
	if got := res.Program.Out(3, 1).Value; got != own {
		t.Errorf("Set variable: expected first match slot %d, got %d", own, got)
	}
	if got := res.Program.Out(4, 0).Value; got != value.SlotError {
		t.Errorf("Out-of-range selection: expected slot 0, got %d", got)
	}
	if got := res.Program.In(4, 0).Option; got != 0 {
		t.Errorf("Expected clamped option 0, got %d", got)
	}
}

func TestLowerVariablesUseGraphTable(t *testing.T) {
	g := graph.New()
	a := add(t, g, graph.KindCreateNumber)
	g.Rename(a, "a")
	b := add(t, g, graph.KindCreateNumber)
	g.Rename(b, "b")
	get := add(t, g, graph.KindGetVariable)
	g.SetOption(g.InputPin(get, 0).ID, 1)

	// Options index the stored table, not the node order
	g.Variables = []string{graph.NoneVariable, "b", "a"}

	res := Lower(g, testEnv)
	if !res.Usable() {
		t.Fatalf("Expected usable build, got %v", res.Errors)
	}
	want := res.Program.Out(1, 1).Value
	if got := res.Program.Out(2, 0).Value; got != want {
		t.Errorf("Expected slot of b (%d), got %d", want, got)
	}
}

func TestLowerGetters(t *testing.T) {
	g := graph.New()
	add(t, g, graph.KindGetMousePosition)
	add(t, g, graph.KindGetScreenWidth)
	add(t, g, graph.KindGetCameraCenter)
	res := Lower(g, testEnv)

	checks := []struct {
		node, out, slot int
	}{
		{0, 0, value.SlotMouseX},
		{0, 1, value.SlotMouseY},
		{1, 0, value.SlotScreenWidth},
		{2, 0, value.SlotCameraCenterX},
		{2, 1, value.SlotCameraCenterY},
	}
	for _, c := range checks {
		if got := res.Program.Out(c.node, c.out).Value; got != c.slot {
			t.Errorf("Node %d output %d: expected slot %d, got %d", c.node, c.out, c.slot, got)
		}
	}
}

func TestLowerSprite(t *testing.T) {
	g := graph.New()
	sp := add(t, g, graph.KindCreateSprite)
	g.Rename(sp, "ship")
	file := literal(t, g, graph.KindLiteralString, "ship.png")
	w := literal(t, g, graph.KindLiteralNumber, "32")
	h := literal(t, g, graph.KindLiteralNumber, "16")
	spawn := add(t, g, graph.KindSpawnSprite)

	connect(t, g, file, 0, sp, 1)
	connect(t, g, w, 0, sp, 2)
	connect(t, g, h, 0, sp, 3)
	g.SetOption(g.InputPin(sp, 4).ID, int(scene.LayerBlock))
	g.SetHitbox(g.InputPin(sp, 5).ID, vmath.Polygon{{X: -8, Y: -4}, {X: 8, Y: -4}, {X: 0, Y: 4}})
	g.SetOption(g.InputPin(spawn, 1).ID, 1)

	res := Lower(g, testEnv)
	if !res.Usable() {
		t.Fatalf("Expected usable build, got %v", res.Errors)
	}
	if res.Scene.Len() != 1 {
		t.Fatalf("Expected one component, got %d", res.Scene.Len())
	}

	c := res.Scene.At(0)
	if c.Width != 32 || c.Height != 16 || c.Layer != scene.LayerBlock || c.Visible {
		t.Errorf("Unexpected component %+v", c)
	}
	if c.Texture.Width != 16 || len(c.Hitbox.Polygon) != 3 || c.Hitbox.Kind != scene.HitboxPolygon {
		t.Errorf("Expected texture and polygon hitbox, got %+v", c)
	}

	sel := res.Program.In(4, 1)
	if sel.Component != 0 || sel.Value != res.Program.Out(0, 1).Value {
		t.Errorf("Expected sprite selector bound to component 0, got %+v", sel)
	}
	if v := res.Store.At(sel.Value); v.Component != 0 || v.Kind != value.KindSprite {
		t.Errorf("Expected sprite slot bound to component, got %+v", v)
	}
}

func TestLowerSpriteTextureErrors(t *testing.T) {
	tests := []struct {
		name string
		file string
		want error
	}{
		{"Missing file", "missing.png", ErrTextureLoad},
		{"Empty name", "", ErrTextureInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := graph.New()
			sp := add(t, g, graph.KindCreateSprite)
			file := literal(t, g, graph.KindLiteralString, tt.file)
			connect(t, g, file, 0, sp, 1)

			res := Lower(g, testEnv)
			if res.Failed {
				t.Error("Expected recoverable error")
			}
			if len(res.Errors) == 0 || !errors.Is(res.Errors[0], tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, res.Errors)
			}
		})
	}
}

func TestLowerProps(t *testing.T) {
	g := graph.New()
	rect := add(t, g, graph.KindPropRectangle)
	circle := add(t, g, graph.KindPropCircle)
	x := literal(t, g, graph.KindLiteralNumber, "100")
	y := literal(t, g, graph.KindLiteralNumber, "50")
	size := literal(t, g, graph.KindLiteralNumber, "20")
	col := literal(t, g, graph.KindLiteralColor, "FF0000FF")

	connect(t, g, x, 0, rect, 1)
	connect(t, g, y, 0, rect, 2)
	connect(t, g, size, 0, rect, 3)
	connect(t, g, size, 0, rect, 4)
	connect(t, g, col, 0, rect, 5)
	connect(t, g, x, 0, circle, 1)
	connect(t, g, y, 0, circle, 2)
	connect(t, g, size, 0, circle, 3)

	res := Lower(g, testEnv)
	if !res.Usable() || res.Scene.Len() != 2 {
		t.Fatalf("Expected two components, got %d (%v)", res.Scene.Len(), res.Errors)
	}

	r := res.Scene.At(0)
	if r.Position != (vmath.Vec2{X: 90, Y: 40}) || r.Hitbox.Kind != scene.HitboxRect {
		t.Errorf("Expected rect at top-left (90, 40), got %+v", r)
	}
	if r.Color != (core.Color{R: 255, A: 255}) {
		t.Errorf("Expected red, got %v", r.Color)
	}
	c := res.Scene.At(1)
	if c.Width != 40 || c.Hitbox.Radius != 20 || c.Position != (vmath.Vec2{X: 100, Y: 50}) {
		t.Errorf("Expected centered circle of radius 20, got %+v", c)
	}
	if res.Program.Out(0, 1).Component != 0 || res.Program.Out(1, 1).Component != 1 {
		t.Error("Expected prop outputs bound to their components")
	}
}

func TestLowerOptionClamp(t *testing.T) {
	g := graph.New()
	cmp := add(t, g, graph.KindComparison)
	g.InputPin(cmp, 1).Option = 7
	res := Lower(g, testEnv)

	if got := res.Program.In(0, 1).Option; got != graph.CompareEqual {
		t.Errorf("Expected option reset to 0, got %d", got)
	}
	if g.InputPin(cmp, 1).Option != 7 {
		t.Error("Expected source graph untouched")
	}
}
