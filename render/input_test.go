package render

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/nodegame/graph"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }
func newTestInput() (*Input, *clock) {
	c := &clock{t: time.Unix(0, 0)}
	in := NewInput()
	in.now = c.now
	return in, c
}

func TestTranslateKey(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want int
	}{
		{"Lower letter", tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), 'A'},
		{"Upper letter", tcell.NewEventKey(tcell.KeyRune, 'Z', tcell.ModNone), 'Z'},
		{"Space", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), graph.KeySpace},
		{"Up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), graph.KeyUp},
		{"Enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), graph.KeyEnter},
		{"F5", tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), graph.KeyF1 + 4},
		{"Unmapped", tcell.NewEventKey(tcell.KeyCtrlA, 0, tcell.ModCtrl), graph.KeyNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TranslateKey(tt.ev); got != tt.want {
				t.Errorf("Expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestInputQuit(t *testing.T) {
	in, _ := newTestInput()
	if in.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) != true {
		t.Error("Expected plain q to keep running")
	}
	if in.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Error("Expected Escape to quit")
	}
	if in.HandleEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)) {
		t.Error("Expected Ctrl-C to quit")
	}
}

func TestInputHoldWindow(t *testing.T) {
	in, c := newTestInput()
	in.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone))

	in.Advance()
	if !in.Pressed('W') || !in.Down('W') || in.Released('W') {
		t.Fatalf("Expected pressed and down on first frame")
	}
	if !in.Pressed('w') {
		t.Error("Expected lower-case query to match")
	}

	c.advance(HoldWindow / 2)
	in.Advance()
	if in.Pressed('W') || !in.Down('W') {
		t.Errorf("Expected held without new press")
	}

	c.advance(HoldWindow)
	in.Advance()
	if in.Down('W') || !in.Released('W') {
		t.Errorf("Expected release after hold window")
	}

	in.Advance()
	if in.Released('W') {
		t.Error("Expected release to last one frame")
	}
}

func TestInputRepeatExtendsHold(t *testing.T) {
	in, c := newTestInput()
	for i := 0; i < 5; i++ {
		in.HandleEvent(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))
		in.Advance()
		if !in.Down(graph.KeyLeft) {
			t.Fatalf("Expected Left down at repeat %d", i)
		}
		c.advance(HoldWindow * 2 / 3)
	}
}

func TestInputMouse(t *testing.T) {
	in, _ := newTestInput()
	in.HandleEvent(tcell.NewEventMouse(12, 7, tcell.ButtonNone, tcell.ModNone))
	if x, y := in.Mouse(); x != 12 || y != 7 {
		t.Errorf("Expected mouse (12,7), got (%d,%d)", x, y)
	}
}
