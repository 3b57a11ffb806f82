package render

import "github.com/lixenwraith/nodegame/core"

// UI colors
var (
	RgbBackground = core.RGB{R: 26, G: 27, B: 38}    // Tokyo Night background
	RgbText       = core.RGB{R: 220, G: 220, B: 220} // Near white
	RgbSprite     = core.RGB{R: 135, G: 206, B: 250} // Light sky blue
	RgbHitbox     = core.RGB{R: 0, G: 255, B: 0}     // Pure green
	RgbStatusBar  = core.RGB{R: 40, G: 42, B: 54}
	RgbStatusText = core.RGB{R: 255, G: 255, B: 255}
	RgbPausedBg   = core.RGB{R: 255, G: 165, B: 0} // Orange
	RgbPanelBg    = core.RGB{R: 16, G: 16, B: 24}

	RgbLogNormal  = core.RGB{R: 180, G: 180, B: 180}
	RgbLogWarning = core.RGB{R: 255, G: 200, B: 0}
	RgbLogError   = core.RGB{R: 255, G: 80, B: 80}
	RgbLogSuccess = core.RGB{R: 80, G: 220, B: 80}
	RgbLogDebug   = core.RGB{R: 100, G: 150, B: 255}
)

// LevelColor returns the log panel color of a log level
func LevelColor(level core.LogLevel) core.RGB {
	switch level {
	case core.LevelWarning:
		return RgbLogWarning
	case core.LevelError:
		return RgbLogError
	case core.LevelSuccess:
		return RgbLogSuccess
	case core.LevelDebug:
		return RgbLogDebug
	default:
		return RgbLogNormal
	}
}

// pauseDim is the brightness factor applied to the scene while paused
const pauseDim = 0.5
