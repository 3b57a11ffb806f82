package interp

import (
	"unicode/utf8"

	"github.com/lixenwraith/nodegame/core"
	"github.com/lixenwraith/nodegame/graph"
	"github.com/lixenwraith/nodegame/value"
)

// cast converts src into the payload of dst according to the cast kind.
// Conversions with no sensible target write a zero and log a warning.
func (in *Interpreter) cast(kind graph.NodeKind, src value.Value, dst *value.Value) {
	switch kind {
	case graph.KindCastToNumber:
		switch src.Kind {
		case value.KindNumber:
			dst.Number = src.Number
		case value.KindString:
			dst.Number = float64(utf8.RuneCountInString(src.Text))
		case value.KindBool:
			dst.Number = 0
			if src.Bool {
				dst.Number = 1
			}
		case value.KindColor:
			dst.Number = 0
			in.log.Add(core.LevelWarning, "Can't cast Color to Number{I108}")
		case value.KindSprite:
			dst.Number = 0
			in.log.Add(core.LevelWarning, "Can't cast Sprite to Number{I109}")
		default:
			in.log.Add(core.LevelWarning, "Unknown pin type{I113}")
		}

	case graph.KindCastToString:
		switch src.Kind {
		case value.KindNumber, value.KindString, value.KindBool, value.KindColor, value.KindSprite:
			dst.Text = src.String()
		default:
			in.log.Add(core.LevelWarning, "Unknown pin type{I113}")
		}

	case graph.KindCastToBool:
		switch src.Kind {
		case value.KindNumber:
			dst.Bool = src.Number > 0
		case value.KindString:
			dst.Bool = src.Text != ""
		case value.KindBool:
			dst.Bool = src.Bool
		case value.KindColor:
			dst.Bool = src.Color.A != 0
		case value.KindSprite:
			dst.Bool = src.Sprite.Visible
		default:
			in.log.Add(core.LevelWarning, "Unknown pin type{I113}")
		}

	case graph.KindCastToColor:
		switch src.Kind {
		case value.KindNumber:
			dst.Color = core.ColorBlack
			in.log.Add(core.LevelWarning, "Can't cast Number to Color{I110}")
		case value.KindString:
			c, err := core.ParseHexColor(src.Text)
			dst.Color = c
			if err != nil {
				in.log.Addf(core.LevelError, "Error: Invalid color %q{I209}", src.Text)
			}
		case value.KindBool:
			dst.Color = core.ColorBlack
			in.log.Add(core.LevelWarning, "Can't cast Bool to Color{I111}")
		case value.KindColor:
			dst.Color = src.Color
		case value.KindSprite:
			dst.Color = core.ColorBlack
			in.log.Add(core.LevelWarning, "Can't cast Sprite to Color{I112}")
		default:
			in.log.Add(core.LevelWarning, "Unknown pin type{I113}")
		}
	}
}
