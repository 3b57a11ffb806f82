// Package value holds the tagged runtime values of a program and the flat
// store they live in.
package value

import (
	"fmt"

	"github.com/lixenwraith/nodegame/core"
	"github.com/lixenwraith/nodegame/vmath"
)

// Kind tags which payload field of a Value is live
type Kind uint8

const (
	KindNull Kind = iota
	KindNumber
	KindString
	KindBool
	KindColor
	KindSprite
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null(Error)"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBool:
		return "boolean"
	case KindColor:
		return "color"
	case KindSprite:
		return "sprite"
	default:
		return "Error"
	}
}

// Sprite is the value-side snapshot of a sprite component
type Sprite struct {
	Position vmath.Vec2
	Width    float64
	Height   float64
	Rotation float64
	Layer    int
	Visible  bool
}

// NoComponent marks a value not bound to a scene component
const NoComponent = -1

// Value is one slot of the store. Only the field selected by Kind is
// meaningful; Name, IsVariable and Component describe the slot itself.
type Value struct {
	Kind   Kind
	Number float64
	Text   string
	Bool   bool
	Color  core.Color
	Sprite Sprite

	Name       string
	IsVariable bool
	Component  int
}

func Number(n float64) Value   { return Value{Kind: KindNumber, Number: n, Component: NoComponent} }
func String(s string) Value    { return Value{Kind: KindString, Text: s, Component: NoComponent} }
func Bool(b bool) Value        { return Value{Kind: KindBool, Bool: b, Component: NoComponent} }
func Color(c core.Color) Value { return Value{Kind: KindColor, Color: c, Component: NoComponent} }
func SpriteOf(s Sprite) Value  { return Value{Kind: KindSprite, Sprite: s, Component: NoComponent} }
func Null() Value              { return Value{Kind: KindNull, Component: NoComponent} }

// Zero returns the default value of kind: 0, "", false, opaque white or an empty sprite
func Zero(kind Kind) Value {
	switch kind {
	case KindNumber:
		return Number(0)
	case KindString:
		return String("")
	case KindBool:
		return Bool(false)
	case KindColor:
		return Color(core.ColorWhite)
	case KindSprite:
		return SpriteOf(Sprite{})
	default:
		return Null()
	}
}

// String renders the payload the way the log panel shows it
func (v Value) String() string {
	switch v.Kind {
	case KindNumber:
		return fmt.Sprintf("%.2f", v.Number)
	case KindString:
		return v.Text
	case KindBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case KindColor:
		return v.Color.String()
	case KindSprite:
		vis := "Not visible"
		if v.Sprite.Visible {
			vis = "Visible"
		}
		return fmt.Sprintf("%s, PosX: %.0f, PosY: %.0f, Rotation: %.2f",
			vis, v.Sprite.Position.X, v.Sprite.Position.Y, v.Sprite.Rotation)
	default:
		return "Error"
	}
}

// Assign copies the payload field of src that matches dst's kind.
// dst keeps its kind, name and bindings; a null dst is left unchanged.
func Assign(dst *Value, src Value) {
	switch dst.Kind {
	case KindNumber:
		dst.Number = src.Number
	case KindString:
		dst.Text = src.Text
	case KindBool:
		dst.Bool = src.Bool
	case KindColor:
		dst.Color = src.Color
	case KindSprite:
		dst.Sprite = src.Sprite
	}
}
