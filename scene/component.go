// Package scene holds the drawable components of a running program, their
// hitboxes, collision resolution and timed forces.
package scene

import (
	"github.com/lixenwraith/nodegame/asset"
	"github.com/lixenwraith/nodegame/core"
	"github.com/lixenwraith/nodegame/vmath"
)

// Layer is the collision policy of a component
type Layer int

const (
	LayerNone Layer = iota
	LayerEvents
	LayerBlock
	LayerEventsAndBlock

	LayerCount
)

// Blocks reports whether the layer takes part in blocking collisions
func (l Layer) Blocks() bool {
	return l == LayerBlock || l == LayerEventsAndBlock
}

// Events reports whether the layer requests collision events
func (l Layer) Events() bool {
	return l == LayerEvents || l == LayerEventsAndBlock
}

// HitboxKind selects the hitbox geometry
type HitboxKind int

const (
	HitboxRect HitboxKind = iota
	HitboxCircle
	HitboxPolygon
)

// Hitbox is authored against a reference size and scaled at use
type Hitbox struct {
	Kind    HitboxKind
	Size    vmath.Vec2 // rect extent
	Radius  float64
	Polygon vmath.Polygon // vertices relative to the component center
	Offset  vmath.Vec2
}

// ComponentKind separates program sprites from drawn props
type ComponentKind int

const (
	KindSprite ComponentKind = iota
	KindProp
)

// Shape is how a component is drawn
type Shape int

const (
	ShapeTexture Shape = iota
	ShapeRect
	ShapeCircle
)

// Component is one scene object. Sprites and circles are positioned by
// their center; rectangle and texture props by their top-left corner.
type Component struct {
	Kind     ComponentKind
	Shape    Shape
	Position vmath.Vec2
	Width    float64
	Height   float64
	Rotation float64
	Layer    Layer
	Visible  bool
	Color    core.Color
	Hitbox   Hitbox
	Texture  asset.Texture
}

// Size returns the current visual size
func (c *Component) Size() vmath.Vec2 {
	return vmath.Vec2{X: c.Width, Y: c.Height}
}

// ReferenceSize is the size the hitbox was authored against: the texture
// for sprites, the component itself for props
func (c *Component) ReferenceSize() vmath.Vec2 {
	if c.Kind == KindSprite {
		w, h := c.Texture.Size()
		return vmath.Vec2{X: w, Y: h}
	}
	return c.Size()
}

// HitboxScale maps authored hitbox units to world units per axis.
// A zero reference axis scales by 1.
func (c *Component) HitboxScale() vmath.Vec2 {
	ref := c.ReferenceSize()
	scale := vmath.Vec2{X: 1, Y: 1}
	if ref.X != 0 {
		scale.X = c.Width / ref.X
	}
	if ref.Y != 0 {
		scale.Y = c.Height / ref.Y
	}
	return scale
}

// Bounds is the broad-phase rectangle of the component
func (c *Component) Bounds() vmath.Rect {
	if c.Hitbox.Kind == HitboxRect {
		return vmath.Rect{X: c.Position.X, Y: c.Position.Y, W: c.Width, H: c.Height}
	}
	return vmath.RectCentered(c.Position, c.Size())
}

// WorldPolygon returns the polygon hitbox in world coordinates
func (c *Component) WorldPolygon() vmath.Polygon {
	scale := c.HitboxScale()
	origin := c.Position.Add(c.Hitbox.Offset.Mul(scale))
	return c.Hitbox.Polygon.Transform(origin, scale)
}

// WorldCircle returns the circle hitbox center and radius in world units
func (c *Component) WorldCircle() (vmath.Vec2, float64) {
	scale := c.HitboxScale()
	center := c.Position.Add(c.Hitbox.Offset.Mul(scale))
	return center, c.Hitbox.Radius * (scale.X + scale.Y) / 2
}

// WorldRect returns the rectangle hitbox in world units
func (c *Component) WorldRect() vmath.Rect {
	scale := c.HitboxScale()
	origin := c.Position.Add(c.Hitbox.Offset.Mul(scale))
	size := c.Hitbox.Size.Mul(scale)
	return vmath.Rect{X: origin.X, Y: origin.Y, W: size.X, H: size.Y}
}

// Scene is the ordered component list of one build
type Scene struct {
	Components []Component
}

// New returns an empty scene with room for n components
func New(n int) *Scene {
	return &Scene{Components: make([]Component, 0, n)}
}

// Add appends c and returns its index
func (s *Scene) Add(c Component) int {
	s.Components = append(s.Components, c)
	return len(s.Components) - 1
}

// At returns component i, or nil when out of range
func (s *Scene) At(i int) *Component {
	if i < 0 || i >= len(s.Components) {
		return nil
	}
	return &s.Components[i]
}

// Len returns the component count
func (s *Scene) Len() int { return len(s.Components) }

// VisibleCount returns how many components are currently drawn
func (s *Scene) VisibleCount() int {
	n := 0
	for i := range s.Components {
		if s.Components[i].Visible {
			n++
		}
	}
	return n
}
