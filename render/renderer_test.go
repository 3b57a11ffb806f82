package render

import (
	"io"
	"log"
	"os"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/nodegame/asset"
	"github.com/lixenwraith/nodegame/core"
	"github.com/lixenwraith/nodegame/interp"
	"github.com/lixenwraith/nodegame/lower"
	"github.com/lixenwraith/nodegame/project"
	"github.com/lixenwraith/nodegame/status"
	"github.com/lixenwraith/nodegame/vmath"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

type fakeLoader struct{}

func (fakeLoader) LoadTexture(rel string) (asset.Texture, error) {
	return asset.Texture{Path: rel, Width: asset.DefaultTextureSize, Height: asset.DefaultTextureSize}, nil
}

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(w, h)
	return screen
}

func demo(t *testing.T) *interp.Interpreter {
	t.Helper()
	g, err := project.DemoGraph()
	if err != nil {
		t.Fatalf("DemoGraph: %v", err)
	}
	res := lower.Lower(g, lower.Env{Loader: fakeLoader{}})
	if !res.Usable() {
		t.Fatalf("Build failed: %v", res.Errors)
	}
	in, err := interp.New(res, interp.Options{Loader: fakeLoader{}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return in
}

func rowText(screen tcell.SimulationScreen, y, w int) string {
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := screen.GetContent(x, y)
		b.WriteRune(r)
	}
	return b.String()
}

func bgAt(screen tcell.SimulationScreen, x, y int) tcell.Color {
	_, _, style, _ := screen.GetContent(x, y)
	_, bg, _ := style.Decompose()
	return bg
}

func TestDrawDemoScene(t *testing.T) {
	screen := newScreen(t, 80, 30)
	r := NewRenderer(screen, 8, 16)
	in := demo(t)
	in.Frame(interp.FrameInput{Dt: 1.0 / 60, Screen: r.Viewport(in.Camera())})
	r.Draw(in)

	// Ship is centered at (160, 120): cell (20, 7) facing east
	if ch, _, _, _ := screen.GetContent(20, 7); ch != '→' {
		t.Errorf("Expected ship glyph at (20,7), got %q", ch)
	}
	if bg := bgAt(screen, 19, 6); bg != tcellColor(RgbSprite) {
		t.Errorf("Expected sprite fill at (19,6), got %v", bg)
	}

	// Wall covers x 312..328, cells 39 and 40
	wall := tcell.NewRGBColor(0xC0, 0xC0, 0xC0)
	for _, x := range []int{39, 40} {
		if bg := bgAt(screen, x, 10); bg != wall {
			t.Errorf("Expected wall at (%d,10), got %v", x, bg)
		}
	}
	if bg := bgAt(screen, 60, 10); bg != tcellColor(in.Background().RGB()) {
		t.Errorf("Expected background at (60,10), got %v", bg)
	}

	logRow := 30 - LogPanelLines - 1
	if row := rowText(screen, logRow, 80); !strings.Contains(row, "Arrow keys move") {
		t.Errorf("Expected print in log panel, got %q", row)
	}
	if row := rowText(screen, 29, 80); !strings.HasPrefix(row, "frame 1") {
		t.Errorf("Expected status bar, got %q", row)
	}
}

func TestStatusBarProjectName(t *testing.T) {
	screen := newScreen(t, 80, 30)
	r := NewRenderer(screen, 8, 16)
	in := demo(t)
	in.Metrics().Text(status.MetricProject).Store("demo")
	in.Frame(interp.FrameInput{Dt: 1.0 / 60, Screen: r.Viewport(in.Camera())})
	r.Draw(in)

	row := rowText(screen, 29, 80)
	if !strings.HasSuffix(row, "demo ") {
		t.Errorf("Expected project name at the right edge, got %q", row)
	}

	// No room: the metrics line wins
	narrow := newScreen(t, 20, 30)
	r = NewRenderer(narrow, 8, 16)
	r.Draw(in)
	if row := rowText(narrow, 29, 20); strings.Contains(row, "demo") {
		t.Errorf("Expected project name dropped, got %q", row)
	}
}

func TestDrawPausedOverlay(t *testing.T) {
	screen := newScreen(t, 40, 20)
	r := NewRenderer(screen, 8, 16)
	in := demo(t)
	in.Frame(interp.FrameInput{Dt: 1.0 / 60, Screen: r.Viewport(in.Camera())})
	in.SetPaused(true)
	r.Draw(in)

	mid := (20 - LogPanelLines - 1) / 2
	if row := rowText(screen, mid, 40); !strings.Contains(row, strings.TrimSpace(pausedText)) {
		t.Errorf("Expected paused overlay on row %d, got %q", mid, row)
	}
	// Wall cell 39 is the last column, screen is 40 wide
	dimmed := tcell.NewRGBColor(0x60, 0x60, 0x60)
	if bg := bgAt(screen, 39, 4); bg != dimmed {
		t.Errorf("Expected dimmed wall %v, got %v", dimmed, bg)
	}
}

func TestDrawHitboxes(t *testing.T) {
	screen := newScreen(t, 80, 30)
	r := NewRenderer(screen, 8, 16)
	in := demo(t)
	in.SetShowHitboxes(true)
	in.Frame(interp.FrameInput{Dt: 1.0 / 60, Screen: r.Viewport(in.Camera())})
	r.Draw(in)

	// Wall outline left edge runs down x = 312, cell column 39
	if ch, _, _, _ := screen.GetContent(39, 5); ch != '•' {
		t.Errorf("Expected hitbox outline at (39,5), got %q", ch)
	}
}

func TestLogPanelKeepsNewest(t *testing.T) {
	screen := newScreen(t, 80, 30)
	r := NewRenderer(screen, 8, 16)
	in := demo(t)
	for i := 0; i < LogPanelLines+3; i++ {
		in.Log().Addf(core.LevelNormal, "line %d", i)
		r.appendLog(in.Drain())
	}
	if len(r.log) != LogPanelLines {
		t.Fatalf("Expected %d entries, got %d", LogPanelLines, len(r.log))
	}
	if r.log[0].Message != "line 3" {
		t.Errorf("Expected oldest kept entry line 3, got %q", r.log[0].Message)
	}
}

func TestCameraMapping(t *testing.T) {
	screen := newScreen(t, 80, 30)
	r := NewRenderer(screen, 8, 16)

	tests := []struct {
		name   string
		cam    interp.Camera
		cx, cy int
		want   vmath.Vec2
	}{
		{"Identity", interp.Camera{Zoom: 1}, 0, 0, vmath.Vec2{X: 4, Y: 8}},
		{"Offset", interp.Camera{Offset: vmath.Vec2{X: 100, Y: -50}, Zoom: 1}, 1, 1, vmath.Vec2{X: 112, Y: -26}},
		{"Zoomed", interp.Camera{Zoom: 2}, 1, 1, vmath.Vec2{X: 6, Y: 12}},
		{"Zero zoom", interp.Camera{}, 0, 0, vmath.Vec2{X: 4, Y: 8}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.ToWorld(tt.cx, tt.cy, tt.cam); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}

	vp := r.Viewport(interp.Camera{Zoom: 2})
	if vp.W != 320 || vp.H != 192 {
		t.Errorf("Expected viewport 320x192, got %vx%v", vp.W, vp.H)
	}
}

func TestHeadingGlyph(t *testing.T) {
	tests := []struct {
		rotation float64
		want     rune
	}{
		{0, '→'}, {360, '→'}, {90, '↓'}, {180, '←'}, {270, '↑'}, {-90, '↑'}, {44, '↘'}, {350, '→'},
	}
	for _, tt := range tests {
		if got := headingGlyph(tt.rotation); got != tt.want {
			t.Errorf("headingGlyph(%v): expected %q, got %q", tt.rotation, tt.want, got)
		}
	}
}
