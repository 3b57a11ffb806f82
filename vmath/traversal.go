package vmath

import "math"

// Traverse visits every grid cell crossed by the segment from a to b, where
// cell (x, y) covers [x, x+1) x [y, y+1). It uses a supercover DDA so no
// touched cell is skipped and stops early when fn returns false.
func Traverse(a, b Vec2, fn func(x, y int) bool) {
	ix, iy := int(math.Floor(a.X)), int(math.Floor(a.Y))
	targetX, targetY := int(math.Floor(b.X)), int(math.Floor(b.Y))

	if !fn(ix, iy) {
		return
	}
	if ix == targetX && iy == targetY {
		return
	}

	dx, dy := b.X-a.X, b.Y-a.Y
	stepX, stepY := 1, 1
	if dx < 0 {
		stepX = -1
		dx = -dx
	}
	if dy < 0 {
		stepY = -1
		dy = -dy
	}

	// Parametric distance to the next vertical and horizontal cell edge
	tMaxX, tDeltaX := math.Inf(1), math.Inf(1)
	if dx > 0 {
		tDeltaX = 1 / dx
		if stepX > 0 {
			tMaxX = (float64(ix) + 1 - a.X) * tDeltaX
		} else {
			tMaxX = (a.X - float64(ix)) * tDeltaX
		}
	}
	tMaxY, tDeltaY := math.Inf(1), math.Inf(1)
	if dy > 0 {
		tDeltaY = 1 / dy
		if stepY > 0 {
			tMaxY = (float64(iy) + 1 - a.Y) * tDeltaY
		} else {
			tMaxY = (a.Y - float64(iy)) * tDeltaY
		}
	}

	for ix != targetX || iy != targetY {
		switch {
		case tMaxX < tMaxY:
			if ix != targetX {
				ix += stepX
				tMaxX += tDeltaX
			} else {
				iy += stepY
				tMaxY += tDeltaY
			}
		case tMaxX > tMaxY:
			if iy != targetY {
				iy += stepY
				tMaxY += tDeltaY
			} else {
				ix += stepX
				tMaxX += tDeltaX
			}
		default:
			// Diagonal through a corner
			if ix != targetX {
				ix += stepX
				tMaxX += tDeltaX
			}
			if iy != targetY {
				iy += stepY
				tMaxY += tDeltaY
			}
		}

		if !fn(ix, iy) {
			return
		}
	}
}
