package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/nodegame/core"
)

// Cell is one composited terminal cell
type Cell struct {
	Rune rune
	Fg   core.RGB
	Bg   core.RGB
}

// RenderBuffer is a compositor over a cell array with touched tracking.
// Untouched cells take the frame background on flush.
type RenderBuffer struct {
	cells   []Cell
	touched []bool
	width   int
	height  int
	bg      core.RGB
}

// NewRenderBuffer creates a buffer with the specified dimensions
func NewRenderBuffer(width, height int) *RenderBuffer {
	b := &RenderBuffer{bg: RgbBackground}
	b.Resize(width, height)
	return b
}

// Resize adjusts buffer dimensions, reallocates only if capacity insufficient
func (b *RenderBuffer) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	size := width * height
	if cap(b.cells) < size {
		b.cells = make([]Cell, size)
		b.touched = make([]bool, size)
	} else {
		b.cells = b.cells[:size]
		b.touched = b.touched[:size]
	}
	b.width = width
	b.height = height
	b.Clear()
}

// Clear resets all cells to empty using exponential copy
func (b *RenderBuffer) Clear() {
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = Cell{Rune: ' ', Fg: RgbText}
	b.touched[0] = false
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
	}
	for filled := 1; filled < len(b.touched); filled *= 2 {
		copy(b.touched[filled:], b.touched[:filled])
	}
}

// Bounds returns the buffer size in cells
func (b *RenderBuffer) Bounds() (int, int) { return b.width, b.height }

func (b *RenderBuffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Get returns the cell at x, y or an empty cell when out of bounds
func (b *RenderBuffer) Get(x, y int) Cell {
	if !b.inBounds(x, y) {
		return Cell{}
	}
	return b.cells[y*b.width+x]
}

// SetBg blends bg over the current background with alpha and keeps the rune
func (b *RenderBuffer) SetBg(x, y int, bg core.RGB, alpha float64) {
	if !b.inBounds(x, y) {
		return
	}
	idx := y*b.width + x
	base := b.cells[idx].Bg
	if !b.touched[idx] {
		base = b.bg
	}
	b.cells[idx].Bg = base.Blend(bg, alpha)
	b.touched[idx] = true
}

// Dim scales both colors of the cell at x, y by factor
func (b *RenderBuffer) Dim(x, y int, factor float64) {
	if !b.inBounds(x, y) {
		return
	}
	idx := y*b.width + x
	if !b.touched[idx] {
		b.cells[idx].Bg = b.bg
		b.touched[idx] = true
	}
	b.cells[idx].Bg = b.cells[idx].Bg.Scale(factor)
	b.cells[idx].Fg = b.cells[idx].Fg.Scale(factor)
}

// SetFgOnly writes rune and foreground while preserving the background
func (b *RenderBuffer) SetFgOnly(x, y int, r rune, fg core.RGB) {
	if !b.inBounds(x, y) {
		return
	}
	idx := y*b.width + x
	b.cells[idx].Rune = r
	b.cells[idx].Fg = fg
}

// SetWithBg writes a cell with explicit fg and bg colors
func (b *RenderBuffer) SetWithBg(x, y int, r rune, fg, bg core.RGB) {
	if !b.inBounds(x, y) {
		return
	}
	idx := y*b.width + x
	b.cells[idx] = Cell{Rune: r, Fg: fg, Bg: bg}
	b.touched[idx] = true
}

// Text writes s from x, y with a solid background, clipped at the edge.
// It returns the column after the last written rune.
func (b *RenderBuffer) Text(x, y int, s string, fg, bg core.RGB) int {
	for _, r := range s {
		if x >= b.width {
			break
		}
		b.SetWithBg(x, y, r, fg, bg)
		x++
	}
	return x
}

// SetBackground sets the color of cells nothing drew a background on
func (b *RenderBuffer) SetBackground(bg core.RGB) { b.bg = bg }

// Flush writes the buffer to screen
func (b *RenderBuffer) Flush(screen tcell.Screen) {
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			idx := y*b.width + x
			c := b.cells[idx]
			if !b.touched[idx] {
				c.Bg = b.bg
			}
			if c.Rune == 0 {
				c.Rune = ' '
			}
			style := tcell.StyleDefault.Foreground(tcellColor(c.Fg)).Background(tcellColor(c.Bg))
			screen.SetContent(x, y, c.Rune, nil, style)
		}
	}
}

func tcellColor(c core.RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
