package status

import (
	"math"
	"sync/atomic"
)

// Gauge is a float64 metric stored as its bit pattern. The zero value reads 0.
type Gauge struct {
	bits atomic.Uint64
}

func (g *Gauge) Store(v float64) { g.bits.Store(math.Float64bits(v)) }
func (g *Gauge) Load() float64   { return math.Float64frombits(g.bits.Load()) }

// MaxLabelLen bounds a label so it fits the status bar
const MaxLabelLen = 48

// Label is a short text metric such as the project name
type Label struct {
	ptr atomic.Pointer[string]
}

// Store sets the label, cutting it to MaxLabelLen runes
func (l *Label) Store(s string) {
	if r := []rune(s); len(r) > MaxLabelLen {
		s = string(r[:MaxLabelLen])
	}
	l.ptr.Store(&s)
}

func (l *Label) Load() string {
	if p := l.ptr.Load(); p != nil {
		return *p
	}
	return ""
}
