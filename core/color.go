package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidColor is returned when color text has no leading hex digits
var ErrInvalidColor = errors.New("invalid color")

// RGB stores explicit 8-bit color channels, decoupled from tcell
type RGB struct {
	R, G, B uint8
}

// Color is an RGBA tuple as stored in program values
type Color struct {
	R, G, B, A uint8
}

// Predefined colors
var (
	RGBBlack   = RGB{0, 0, 0}
	ColorBlack = Color{0, 0, 0, 255}
	ColorWhite = Color{255, 255, 255, 255}
	ColorRed   = Color{230, 41, 55, 255}
)

// ParseHexColor reads RRGGBBAA text. Parsing consumes the leading run of hex
// digits (at most 8) after an optional "#" or "0x" prefix, so "FF0000FFjunk"
// is accepted. Fewer than 8 digits are read as one number the way %x
// scanning does: "FF" is 0x000000FF, opaque black, not red. Only text with
// no leading hex digit is an error.
func ParseHexColor(text string) (Color, error) {
	s := strings.TrimSpace(text)
	s = strings.TrimPrefix(s, "#")
	if len(s) > 2 && (s[:2] == "0x" || s[:2] == "0X") {
		s = s[2:]
	}

	n := 0
	for n < len(s) && n < 8 && isHexDigit(s[n]) {
		n++
	}
	if n == 0 {
		return ColorBlack, fmt.Errorf("%w: %q", ErrInvalidColor, text)
	}

	v, err := strconv.ParseUint(s[:n], 16, 32)
	if err != nil {
		return ColorBlack, fmt.Errorf("%w: %q", ErrInvalidColor, text)
	}
	return ColorFromUint32(uint32(v)), nil
}

// ColorFromUint32 unpacks 0xRRGGBBAA
func ColorFromUint32(v uint32) Color {
	return Color{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}
}

// Hex returns the RRGGBBAA form accepted by ParseHexColor
func (c Color) Hex() string {
	return fmt.Sprintf("%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

// String matches the log rendering of color values
func (c Color) String() string {
	return fmt.Sprintf("R:%d G:%d B:%d A:%d", c.R, c.G, c.B, c.A)
}

// Over composites the color onto an opaque backdrop using its alpha channel
func (c Color) Over(dst RGB) RGB {
	return dst.Blend(RGB{c.R, c.G, c.B}, float64(c.A)/255.0)
}

// RGB drops the alpha channel
func (c Color) RGB() RGB {
	return RGB{c.R, c.G, c.B}
}

// Blend performs alpha blending: result = src*alpha + dst*(1-alpha)
func (c RGB) Blend(src RGB, alpha float64) RGB {
	if alpha <= 0 {
		return c
	}
	if alpha >= 1 {
		return src
	}
	inv := 1.0 - alpha
	return RGB{
		R: uint8(float64(src.R)*alpha + float64(c.R)*inv),
		G: uint8(float64(src.G)*alpha + float64(c.G)*inv),
		B: uint8(float64(src.B)*alpha + float64(c.B)*inv),
	}
}

// Scale multiplies each channel by factor (for pause dimming)
func (c RGB) Scale(factor float64) RGB {
	if factor <= 0 {
		return RGBBlack
	}
	if factor >= 1 {
		return c
	}
	return RGB{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
	}
}

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}
