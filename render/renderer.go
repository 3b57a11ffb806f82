// Package render draws a running program into a tcell screen and turns
// terminal events into key state for the interpreter.
package render

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/nodegame/core"
	"github.com/lixenwraith/nodegame/interp"
	"github.com/lixenwraith/nodegame/scene"
	"github.com/lixenwraith/nodegame/status"
	"github.com/lixenwraith/nodegame/vmath"
)

const (
	// LogPanelLines is the number of log rows kept under the scene
	LogPanelLines = 5
	// circleSegments approximates circle hitbox outlines
	circleSegments = 16
	pausedText     = " PAUSED "
)

// directionGlyphs marks sprite heading, clockwise from east
var directionGlyphs = [8]rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}

// Renderer composites one frame per Draw call. World units map to cells
// through the configured cell size and the program camera.
type Renderer struct {
	screen tcell.Screen
	buf    *RenderBuffer
	cellW  float64
	cellH  float64
	width  int
	height int
	log    []core.LogEntry
}

// NewRenderer creates a renderer for screen. A cell covers cellW by cellH
// world units at zoom 1.
func NewRenderer(screen tcell.Screen, cellW, cellH int) *Renderer {
	w, h := screen.Size()
	return &Renderer{
		screen: screen,
		buf:    NewRenderBuffer(w, h),
		cellW:  float64(max(cellW, 1)),
		cellH:  float64(max(cellH, 1)),
		width:  w,
		height: h,
		log:    make([]core.LogEntry, 0, LogPanelLines),
	}
}

// Resize follows a terminal resize
func (r *Renderer) Resize() {
	r.screen.Sync()
	r.width, r.height = r.screen.Size()
	r.buf.Resize(r.width, r.height)
}

// sceneRows is the height of the scene area in cells
func (r *Renderer) sceneRows() int {
	return max(r.height-LogPanelLines-1, 0)
}

// Viewport returns the world rectangle visible in the scene area
func (r *Renderer) Viewport(cam interp.Camera) vmath.Rect {
	zoom := cameraZoom(cam)
	return vmath.Rect{
		X: cam.Offset.X,
		Y: cam.Offset.Y,
		W: float64(r.width) * r.cellW / zoom,
		H: float64(r.sceneRows()) * r.cellH / zoom,
	}
}

// ToWorld maps the center of cell cx, cy to world coordinates
func (r *Renderer) ToWorld(cx, cy int, cam interp.Camera) vmath.Vec2 {
	zoom := cameraZoom(cam)
	return vmath.Vec2{
		X: cam.Offset.X + (float64(cx)+0.5)*r.cellW/zoom,
		Y: cam.Offset.Y + (float64(cy)+0.5)*r.cellH/zoom,
	}
}

// toCell maps a world point to fractional cell coordinates
func (r *Renderer) toCell(p vmath.Vec2, cam interp.Camera) vmath.Vec2 {
	zoom := cameraZoom(cam)
	return vmath.Vec2{
		X: (p.X - cam.Offset.X) * zoom / r.cellW,
		Y: (p.Y - cam.Offset.Y) * zoom / r.cellH,
	}
}

func cameraZoom(cam interp.Camera) float64 {
	if cam.Zoom <= 0 {
		return 1
	}
	return cam.Zoom
}

// Draw renders the scene, overlays, log panel and status bar of in
func (r *Renderer) Draw(in *interp.Interpreter) {
	cam := in.Camera()
	r.buf.Clear()
	r.buf.SetBackground(in.Background().RGB())

	sc := in.Scene()
	for i := range sc.Components {
		if c := &sc.Components[i]; c.Visible {
			r.drawComponent(c, cam)
		}
	}

	if in.ShowHitboxes() {
		for i := range sc.Components {
			if c := &sc.Components[i]; c.Visible {
				r.drawHitbox(c, cam)
			}
		}
	}

	for _, l := range in.DebugLines() {
		r.drawLine(l.From, l.To, l.Color.RGB(), cam)
	}

	if in.Paused() {
		r.dimScene()
		r.drawPaused()
	}

	r.appendLog(in.Drain())
	r.drawLog()
	if reg := in.Metrics(); reg != nil {
		r.drawStatus(reg.Snapshot())
	}

	r.buf.Flush(r.screen)
	r.screen.Show()
}

// drawComponent fills every scene cell whose center lies inside c. A shape
// smaller than a cell still marks the cell holding its center.
func (r *Renderer) drawComponent(c *scene.Component, cam interp.Camera) {
	var (
		bounds vmath.Rect
		color  = RgbSprite
		alpha  = 1.0
	)
	switch {
	case c.Kind == scene.KindSprite:
		bounds = vmath.RectCentered(c.Position, c.Size())
	case c.Shape == scene.ShapeCircle:
		bounds = vmath.RectCentered(c.Position, c.Size())
		color, alpha = c.Color.RGB(), float64(c.Color.A)/255
	default:
		bounds = vmath.Rect{X: c.Position.X, Y: c.Position.Y, W: c.Width, H: c.Height}
		color, alpha = c.Color.RGB(), float64(c.Color.A)/255
	}

	radius := c.Width / 2
	inside := func(p vmath.Vec2) bool {
		if c.Kind == scene.KindProp && c.Shape == scene.ShapeCircle {
			return vmath.PointInCircle(p, c.Position, radius)
		}
		return bounds.Contains(p)
	}

	rows := r.sceneRows()
	lo := r.toCell(vmath.Vec2{X: bounds.X, Y: bounds.Y}, cam)
	hi := r.toCell(vmath.Vec2{X: bounds.X + bounds.W, Y: bounds.Y + bounds.H}, cam)
	x0, y0 := max(int(math.Floor(lo.X)), 0), max(int(math.Floor(lo.Y)), 0)
	x1, y1 := min(int(math.Ceil(hi.X)), r.width-1), min(int(math.Ceil(hi.Y)), rows-1)

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if inside(r.ToWorld(x, y, cam)) {
				r.buf.SetBg(x, y, color, alpha)
			}
		}
	}

	center := r.toCell(bounds.Center(), cam)
	cx, cy := int(math.Floor(center.X)), int(math.Floor(center.Y))
	if cy < 0 || cy >= rows {
		return
	}
	if c.Kind == scene.KindSprite {
		r.buf.SetBg(cx, cy, color, alpha)
		r.buf.SetFgOnly(cx, cy, headingGlyph(c.Rotation), RgbText)
	} else if x0 > x1 || y0 > y1 || !inside(r.ToWorld(cx, cy, cam)) {
		r.buf.SetBg(cx, cy, color, alpha)
	}
}

// headingGlyph picks the arrow closest to a clockwise rotation in degrees
func headingGlyph(rotation float64) rune {
	deg := math.Mod(rotation, 360)
	if deg < 0 {
		deg += 360
	}
	return directionGlyphs[int((deg+22.5)/45)%len(directionGlyphs)]
}

func (r *Renderer) drawHitbox(c *scene.Component, cam interp.Camera) {
	switch c.Hitbox.Kind {
	case scene.HitboxRect:
		corners := c.WorldRect().Corners()
		r.drawPolygon(corners[:], cam)
	case scene.HitboxCircle:
		center, radius := c.WorldCircle()
		pts := make([]vmath.Vec2, circleSegments)
		for i := range pts {
			a := 2 * math.Pi * float64(i) / circleSegments
			pts[i] = vmath.Vec2{X: center.X + radius*math.Cos(a), Y: center.Y + radius*math.Sin(a)}
		}
		r.drawPolygon(pts, cam)
	case scene.HitboxPolygon:
		r.drawPolygon(c.WorldPolygon(), cam)
	}
}

func (r *Renderer) drawPolygon(pts []vmath.Vec2, cam interp.Camera) {
	if len(pts) < 2 {
		return
	}
	for i := range pts {
		r.drawLine(pts[i], pts[(i+1)%len(pts)], RgbHitbox, cam)
	}
}

// drawLine marks every scene cell the world segment a-b passes through
func (r *Renderer) drawLine(a, b vmath.Vec2, color core.RGB, cam interp.Camera) {
	rows := r.sceneRows()
	vmath.Traverse(r.toCell(a, cam), r.toCell(b, cam), func(x, y int) bool {
		if y >= 0 && y < rows {
			r.buf.SetFgOnly(x, y, '•', color)
		}
		return true
	})
}

// dimScene darkens the scene area while the program is paused
func (r *Renderer) dimScene() {
	for y := 0; y < r.sceneRows(); y++ {
		for x := 0; x < r.width; x++ {
			r.buf.Dim(x, y, pauseDim)
		}
	}
}

func (r *Renderer) drawPaused() {
	rows := r.sceneRows()
	if rows == 0 {
		return
	}
	x := (r.width - len(pausedText)) / 2
	r.buf.Text(max(x, 0), rows/2, pausedText, RgbStatusText, RgbPausedBg)
}

// appendLog keeps the newest LogPanelLines entries
func (r *Renderer) appendLog(entries []core.LogEntry) {
	r.log = append(r.log, entries...)
	if over := len(r.log) - LogPanelLines; over > 0 {
		r.log = append(r.log[:0], r.log[over:]...)
	}
}

func (r *Renderer) drawLog() {
	top := r.sceneRows()
	for row := 0; row < LogPanelLines && top+row < r.height-1; row++ {
		y := top + row
		for x := 0; x < r.width; x++ {
			r.buf.SetWithBg(x, y, ' ', RgbText, RgbPanelBg)
		}
		if row < len(r.log) {
			e := r.log[row]
			line := fmt.Sprintf("[%s] %s", e.Level, e.Message)
			r.buf.Text(0, y, line, LevelColor(e.Level), RgbPanelBg)
		}
	}
}

// drawStatus writes the metrics line and, when it fits, the project name
// at the right edge
func (r *Renderer) drawStatus(snap status.Snapshot) {
	y := r.height - 1
	if y < 0 {
		return
	}
	for x := 0; x < r.width; x++ {
		r.buf.SetWithBg(x, y, ' ', RgbStatusText, RgbStatusBar)
	}
	end := r.buf.Text(0, y, snap.String(), RgbStatusText, RgbStatusBar)
	if name := []rune(snap.Project); len(name) > 0 && end+len(name)+1 < r.width {
		r.buf.Text(r.width-len(name)-1, y, snap.Project, RgbStatusText, RgbStatusBar)
	}
}
