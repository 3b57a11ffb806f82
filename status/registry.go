// Package status is a lock-free metrics registry read by the status bar and
// the run summary
package status

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Keys are typed by the value they hold so a metric cannot be read back as
// the wrong kind
type (
	IntKey   string
	BoolKey  string
	FloatKey string
	TextKey  string
)

// Metrics published by the interpreter and host
const (
	MetricFrames  IntKey = "interp.frames"
	MetricForces  IntKey = "interp.forces"
	MetricSounds  IntKey = "interp.sounds"
	MetricDelays  IntKey = "interp.delays"
	MetricSteps   IntKey = "interp.steps"
	MetricVisible IntKey = "scene.visible"
	// Int keys ending in ".timer" hold nanoseconds
	MetricUptime IntKey = "host.uptime.timer"

	MetricPaused BoolKey = "interp.paused"

	MetricFrameTime FloatKey = "interp.frame_dt"

	MetricProject TextKey = "host.project"
)

// Registry hands out one stable pointer per key. Writers cache the pointer
// at setup; frame loops then write the atomic directly.
type Registry struct {
	ints   table[IntKey, atomic.Int64]
	bools  table[BoolKey, atomic.Bool]
	floats table[FloatKey, Gauge]
	texts  table[TextKey, Label]
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) Int(k IntKey) *atomic.Int64  { return r.ints.get(k) }
func (r *Registry) Bool(k BoolKey) *atomic.Bool { return r.bools.get(k) }
func (r *Registry) Float(k FloatKey) *Gauge     { return r.floats.get(k) }
func (r *Registry) Text(k TextKey) *Label       { return r.texts.get(k) }

// Count returns the number of registered metrics
func (r *Registry) Count() int {
	return r.ints.count() + r.bools.count() + r.floats.count() + r.texts.count()
}

// Snapshot is a point-in-time copy of the metrics the status bar shows
type Snapshot struct {
	Project string
	Frames  int64
	FPS     float64
	Visible int64
	Forces  int64
	Sounds  int64
	Steps   int64
	Paused  bool
	Uptime  time.Duration
}

// Snapshot reads the status bar metrics. FPS is derived from the last
// frame time.
func (r *Registry) Snapshot() Snapshot {
	s := Snapshot{
		Project: r.Text(MetricProject).Load(),
		Frames:  r.Int(MetricFrames).Load(),
		Visible: r.Int(MetricVisible).Load(),
		Forces:  r.Int(MetricForces).Load(),
		Sounds:  r.Int(MetricSounds).Load(),
		Steps:   r.Int(MetricSteps).Load(),
		Paused:  r.Bool(MetricPaused).Load(),
		Uptime:  time.Duration(r.Int(MetricUptime).Load()),
	}
	if dt := r.Float(MetricFrameTime).Load(); dt > 0 {
		s.FPS = 1 / dt
	}
	return s
}

// String is the one-line status bar text
func (s Snapshot) String() string {
	out := fmt.Sprintf("frame %d | %.0f fps | sprites %d | forces %d | sounds %d",
		s.Frames, s.FPS, s.Visible, s.Forces, s.Sounds)
	if s.Paused {
		out += " | PAUSED"
	}
	return out
}

// Summary is the status bar text for the current metrics
func (r *Registry) Summary() string {
	return r.Snapshot().String()
}

// Lines renders every metric as "key: value", grouped by kind (text, bool,
// int, float) and sorted by key within a group
func (r *Registry) Lines() []string {
	var out []string
	r.texts.each(func(k TextKey, v *Label) {
		out = append(out, fmt.Sprintf("%s: %s", k, v.Load()))
	})
	r.bools.each(func(k BoolKey, v *atomic.Bool) {
		out = append(out, fmt.Sprintf("%s: %v", k, v.Load()))
	})
	r.ints.each(func(k IntKey, v *atomic.Int64) {
		if strings.HasSuffix(string(k), ".timer") {
			out = append(out, fmt.Sprintf("%s: %s", k, time.Duration(v.Load()).Round(time.Millisecond)))
			return
		}
		out = append(out, fmt.Sprintf("%s: %d", k, v.Load()))
	})
	r.floats.each(func(k FloatKey, v *Gauge) {
		out = append(out, fmt.Sprintf("%s: %.3f", k, v.Load()))
	})
	return out
}

// table maps keys to lazily allocated values. Only registration locks.
type table[K ~string, T any] struct {
	mu    sync.RWMutex
	items map[K]*T
}

func (t *table[K, T]) get(k K) *T {
	t.mu.RLock()
	ptr, ok := t.items[k]
	t.mu.RUnlock()
	if ok {
		return ptr
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if ptr, ok := t.items[k]; ok {
		return ptr
	}
	if t.items == nil {
		t.items = make(map[K]*T)
	}
	ptr = new(T)
	t.items[k] = ptr
	return ptr
}

func (t *table[K, T]) count() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.items)
}

func (t *table[K, T]) each(fn func(K, *T)) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	keys := make([]K, 0, len(t.items))
	for k := range t.items {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	for _, k := range keys {
		fn(k, t.items[k])
	}
}
