package asset

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
)

// Default assets written into new projects
const (
	DefaultTextureName = "ship.png"
	DefaultTextureSize = 16
)

// DefaultTexture renders the starter sprite: a filled triangle pointing
// right on a transparent background
func DefaultTexture() ([]byte, error) {
	n := DefaultTextureSize
	img := image.NewNRGBA(image.Rect(0, 0, n, n))
	fill := color.NRGBA{R: 80, G: 200, B: 255, A: 255}

	for y := 0; y < n; y++ {
		// Row half-width shrinks linearly towards the tip
		half := n / 2
		dy := y - half
		if dy < 0 {
			dy = -dy
		}
		for x := 0; x < n-2*dy; x++ {
			img.SetNRGBA(x, y, fill)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
