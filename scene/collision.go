package scene

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/nodegame/vmath"
)

var (
	ErrNotPolygon = errors.New("invalid sprite hitbox")
	ErrHitboxKind = errors.New("unknown hitbox kind")
	ErrComponent  = errors.New("component out of range")
)

// Result summarizes the contacts of one component against the scene
type Result uint8

const (
	ResultNone Result = iota
	ResultEvent
	ResultBlocking
	ResultEventAndBlocking
)

// Event reports whether a collision event fires
func (r Result) Event() bool { return r == ResultEvent || r == ResultEventAndBlocking }

// Blocking reports whether the movement must be rolled back
func (r Result) Blocking() bool { return r == ResultBlocking || r == ResultEventAndBlocking }

func combine(event, block bool) Result {
	switch {
	case event && block:
		return ResultEventAndBlocking
	case block:
		return ResultBlocking
	case event:
		return ResultEvent
	}
	return ResultNone
}

// CheckCollisions tests component i, which must carry a polygon hitbox,
// against every other visible component. A pair is skipped only when neither
// layer asks for events or blocking. Events fire when either side wants them,
// blocking needs both sides to block. Pair results are OR-ed; unusable pairs
// are skipped and reported through the returned error.
func (s *Scene) CheckCollisions(i int) (Result, error) {
	a := s.At(i)
	if a == nil {
		return ResultNone, fmt.Errorf("%w: %d", ErrComponent, i)
	}
	if a.Hitbox.Kind != HitboxPolygon {
		return ResultNone, ErrNotPolygon
	}

	var (
		event, block bool
		errs         []error
	)
	aBounds := vmath.RectCentered(a.Position, a.Size())
	aPoly := a.WorldPolygon()

	for j := range s.Components {
		if j == i {
			continue
		}
		b := &s.Components[j]
		if !b.Visible {
			continue
		}
		pairEvent := a.Layer.Events() || b.Layer.Events()
		pairBlock := a.Layer.Blocks() && b.Layer.Blocks()
		if a.Layer == LayerNone && b.Layer == LayerNone {
			continue
		}
		if !aBounds.Overlaps(b.Bounds()) {
			continue
		}

		var hit bool
		switch b.Hitbox.Kind {
		case HitboxPolygon:
			hit = polygonPolygon(aPoly, b.WorldPolygon())
		case HitboxCircle:
			center, radius := b.WorldCircle()
			hit = polygonCircle(aPoly, center, radius)
		case HitboxRect:
			hit = polygonRect(aPoly, b.WorldRect())
		default:
			errs = append(errs, fmt.Errorf("%w: component %d", ErrHitboxKind, j))
			continue
		}
		if !hit {
			continue
		}

		event = event || pairEvent
		block = block || pairBlock
		if event && block {
			break
		}
	}

	return combine(event, block), errors.Join(errs...)
}

func polygonPolygon(a, b vmath.Polygon) bool {
	for i := range a {
		a1, a2 := a.Edge(i)
		for j := range b {
			b1, b2 := b.Edge(j)
			if vmath.SegmentsIntersect(a1, a2, b1, b2) {
				return true
			}
		}
	}
	// Containment without crossing edges
	if len(a) > 0 && vmath.PointInPolygon(a[0], b) {
		return true
	}
	return len(b) > 0 && vmath.PointInPolygon(b[0], a)
}

func polygonCircle(poly vmath.Polygon, center vmath.Vec2, radius float64) bool {
	if vmath.PointInPolygon(center, poly) {
		return true
	}
	for i := range poly {
		if vmath.PointInCircle(poly[i], center, radius) {
			return true
		}
		p1, p2 := poly.Edge(i)
		if vmath.CircleSegment(center, radius, p1, p2) {
			return true
		}
	}
	return false
}

func polygonRect(poly vmath.Polygon, r vmath.Rect) bool {
	for _, p := range poly {
		if r.Contains(p) {
			return true
		}
	}
	corners := r.Corners()
	for _, c := range corners {
		if vmath.PointInPolygon(c, poly) {
			return true
		}
	}
	for i := range poly {
		p1, p2 := poly.Edge(i)
		for k := range corners {
			if vmath.SegmentsIntersect(p1, p2, corners[k], corners[(k+1)%len(corners)]) {
				return true
			}
		}
	}
	return false
}
