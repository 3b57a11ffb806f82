package render

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/nodegame/graph"
)

// HoldWindow is how long a key counts as down after its last press.
// Terminals report presses and auto-repeat but never key releases.
const HoldWindow = 150 * time.Millisecond

var specialKeys = map[tcell.Key]int{
	tcell.KeyEnter:      graph.KeyEnter,
	tcell.KeyTab:        graph.KeyTab,
	tcell.KeyBackspace:  graph.KeyBackspace,
	tcell.KeyBackspace2: graph.KeyBackspace,
	tcell.KeyInsert:     graph.KeyInsert,
	tcell.KeyDelete:     graph.KeyDelete,
	tcell.KeyRight:      graph.KeyRight,
	tcell.KeyLeft:       graph.KeyLeft,
	tcell.KeyDown:       graph.KeyDown,
	tcell.KeyUp:         graph.KeyUp,
	tcell.KeyPgUp:       graph.KeyPageUp,
	tcell.KeyPgDn:       graph.KeyPageDown,
	tcell.KeyHome:       graph.KeyHome,
	tcell.KeyEnd:        graph.KeyEnd,
}

// TranslateKey maps a tcell key event to a graph key code, or KeyNone
func TranslateKey(ev *tcell.EventKey) int {
	if ev.Key() == tcell.KeyRune {
		return graph.NormalizeKey(int(ev.Rune()))
	}
	if code, ok := specialKeys[ev.Key()]; ok {
		return code
	}
	if ev.Key() >= tcell.KeyF1 && ev.Key() <= tcell.KeyF12 {
		return graph.KeyF1 + int(ev.Key()-tcell.KeyF1)
	}
	return graph.KeyNone
}

// Input accumulates terminal events between frames and answers key
// queries for the current frame. It is used from the frame loop goroutine.
type Input struct {
	now     func() time.Time
	last    map[int]time.Time // last press per key
	pending map[int]bool      // presses since the previous Advance

	pressed  map[int]bool
	released map[int]bool
	down     map[int]bool

	mouseX, mouseY int
}

// NewInput creates an empty input state
func NewInput() *Input {
	return &Input{
		now:      time.Now,
		last:     make(map[int]time.Time),
		pending:  make(map[int]bool),
		pressed:  make(map[int]bool),
		released: make(map[int]bool),
		down:     make(map[int]bool),
	}
}

// HandleEvent records ev. It returns false when the event asks to quit.
func (i *Input) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		code := TranslateKey(ev)
		if code == graph.KeyNone {
			return true
		}
		i.pending[code] = true
		i.last[code] = i.now()

	case *tcell.EventMouse:
		i.mouseX, i.mouseY = ev.Position()
	}
	return true
}

// Advance starts a new frame: presses since the last call become this
// frame's presses and keys whose hold window ran out are released
func (i *Input) Advance() {
	now := i.now()
	clear(i.pressed)
	clear(i.released)

	for code := range i.pending {
		i.pressed[code] = true
	}
	clear(i.pending)

	for code, at := range i.last {
		if i.pressed[code] || now.Sub(at) < HoldWindow {
			i.down[code] = true
			continue
		}
		if i.down[code] {
			i.released[code] = true
		}
		delete(i.down, code)
		delete(i.last, code)
	}
}

// Pressed reports a press of key since the previous frame
func (i *Input) Pressed(key int) bool { return i.pressed[graph.NormalizeKey(key)] }

// Released reports that key stopped being held this frame
func (i *Input) Released(key int) bool { return i.released[graph.NormalizeKey(key)] }

// Down reports whether key is held
func (i *Input) Down(key int) bool { return i.down[graph.NormalizeKey(key)] }

// Mouse returns the last reported mouse cell
func (i *Input) Mouse() (int, int) { return i.mouseX, i.mouseY }
