package lower

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/nodegame/asset"
	"github.com/lixenwraith/nodegame/core"
	"github.com/lixenwraith/nodegame/graph"
	"github.com/lixenwraith/nodegame/program"
	"github.com/lixenwraith/nodegame/scene"
	"github.com/lixenwraith/nodegame/value"
	"github.com/lixenwraith/nodegame/vmath"
)

var errNoLoader = errors.New("no asset loader")

// createComponents instantiates the scene components of sprite and prop
// nodes in node order. All start hidden until the program shows them.
func (b *builder) createComponents() {
	for i := range b.prog.Nodes {
		switch b.prog.Nodes[i].Kind {
		case graph.KindCreateSprite:
			b.createSprite(i)
		case graph.KindPropTexture:
			b.createTextureProp(i)
		case graph.KindPropRectangle:
			b.createRectProp(i)
		case graph.KindPropCircle:
			b.createCircleProp(i)
		}
	}
}

func (b *builder) createSprite(i int) {
	n := &b.prog.Nodes[i]
	c := scene.Component{
		Kind:   scene.KindSprite,
		Shape:  scene.ShapeTexture,
		Width:  b.number(i, 2),
		Height: b.number(i, 3),
		Layer:  b.layer(i, 4),
		Color:  core.ColorWhite,
		Hitbox: scene.Hitbox{Kind: scene.HitboxPolygon, Polygon: b.hitbox(i, 5)},
	}

	tex, ok := b.texture(i, 1)
	if !ok {
		return
	}
	c.Texture = tex
	idx := b.res.Scene.Add(c)

	out := b.prog.Out(i, 1)
	if out != nil {
		out.Component = idx
		if v := b.res.Store.At(out.Value); v != nil {
			v.Component = idx
			v.Sprite = value.Sprite{Width: c.Width, Height: c.Height, Layer: int(c.Layer)}
		}
	}

	// Bind every sprite selector naming this sprite's variable
	vars := b.res.Store.Variables()
	for p := range b.prog.Pins {
		pin := &b.prog.Pins[p]
		if pin.Kind != graph.PinSpriteVariable || pin.Option == 0 {
			continue
		}
		picked := pin.Option - 1
		if picked >= len(vars) {
			continue
		}
		slot := vars[picked]
		if b.res.Store.At(slot).Name != n.Name {
			continue
		}
		pin.Value = slot
		pin.Component = idx
		b.res.Store.At(slot).Component = idx
	}
}

func (b *builder) createTextureProp(i int) {
	w, h := b.number(i, 4), b.number(i, 5)
	tex, ok := b.texture(i, 1)
	if !ok {
		return
	}
	b.addProp(i, scene.Component{
		Kind:     scene.KindProp,
		Shape:    scene.ShapeTexture,
		Position: vmath.Vec2{X: b.number(i, 2) - w/2, Y: b.number(i, 3) - h/2},
		Width:    w,
		Height:   h,
		Layer:    b.layer(i, 6),
		Color:    core.ColorWhite,
		Hitbox:   scene.Hitbox{Kind: scene.HitboxRect, Size: vmath.Vec2{X: w, Y: h}},
		Texture:  tex,
	})
}

func (b *builder) createRectProp(i int) {
	w, h := b.number(i, 3), b.number(i, 4)
	b.addProp(i, scene.Component{
		Kind:     scene.KindProp,
		Shape:    scene.ShapeRect,
		Position: vmath.Vec2{X: b.number(i, 1) - w/2, Y: b.number(i, 2) - h/2},
		Width:    w,
		Height:   h,
		Layer:    b.layer(i, 6),
		Color:    b.color(i, 5),
		Hitbox:   scene.Hitbox{Kind: scene.HitboxRect, Size: vmath.Vec2{X: w, Y: h}},
	})
}

func (b *builder) createCircleProp(i int) {
	r := b.number(i, 3)
	b.addProp(i, scene.Component{
		Kind:     scene.KindProp,
		Shape:    scene.ShapeCircle,
		Position: vmath.Vec2{X: b.number(i, 1), Y: b.number(i, 2)},
		Width:    r * 2,
		Height:   r * 2,
		Layer:    b.layer(i, 5),
		Color:    b.color(i, 4),
		Hitbox:   scene.Hitbox{Kind: scene.HitboxCircle, Radius: r},
	})
}

func (b *builder) addProp(i int, c scene.Component) {
	idx := b.res.Scene.Add(c)
	if out := b.prog.Out(i, 1); out != nil {
		out.Component = idx
	}
}

// texture loads the file named by the string input in. Failures are
// recoverable build errors and the component is not created.
func (b *builder) texture(i, in int) (asset.Texture, bool) {
	v := b.input(i, in)
	if v == nil || v.Kind != value.KindString || v.Text == "" {
		b.recoverable(buildErr(CodeTextureInput, i, ErrTextureInput))
		return asset.Texture{}, false
	}
	if b.env.Loader == nil {
		b.recoverable(buildErr(CodeTextureLoad, i, fmt.Errorf("%w: %s: %v", ErrTextureLoad, v.Text, errNoLoader)))
		return asset.Texture{}, false
	}
	tex, err := b.env.Loader.LoadTexture(v.Text)
	if err != nil {
		b.recoverable(buildErr(CodeTextureLoad, i, fmt.Errorf("%w: %v", ErrTextureLoad, err)))
		return asset.Texture{}, false
	}
	return tex, true
}

// input returns the slot bound to input pin in of node i at build time
func (b *builder) input(i, in int) *value.Value {
	p := b.prog.In(i, in)
	if p == nil {
		return nil
	}
	return b.res.Store.At(p.Value)
}

func (b *builder) number(i, in int) float64 {
	if v := b.input(i, in); v != nil {
		return v.Number
	}
	return 0
}

func (b *builder) color(i, in int) core.Color {
	if v := b.input(i, in); v != nil && v.Kind == value.KindColor {
		return v.Color
	}
	return core.ColorWhite
}

func (b *builder) layer(i, in int) scene.Layer {
	return LayerOf(b.prog.In(i, in))
}

// hitbox reads the polygon authored on the edit-hitbox pin
func (b *builder) hitbox(i, in int) vmath.Polygon {
	p := b.prog.In(i, in)
	if p == nil {
		return nil
	}
	src := b.g.Pin(p.ID)
	if src == nil {
		return nil
	}
	return append(vmath.Polygon(nil), src.Hitbox...)
}

// LayerOf exposes the layer option of a pin for runtime use
func LayerOf(p *program.Pin) scene.Layer {
	if p == nil || p.Option < 0 || p.Option >= int(scene.LayerCount) {
		return scene.LayerNone
	}
	return scene.Layer(p.Option)
}
