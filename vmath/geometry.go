package vmath

import "math"

// Epsilon is the tolerance used by the segment and degenerate-edge tests
const Epsilon = 1e-6

// Vec2 is a point or displacement in world pixels, y axis pointing down
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (a Vec2) Add(b Vec2) Vec2 { return Vec2{a.X + b.X, a.Y + b.Y} }
func (a Vec2) Sub(b Vec2) Vec2 { return Vec2{a.X - b.X, a.Y - b.Y} }

// Scale multiplies both components by f
func (a Vec2) Scale(f float64) Vec2 { return Vec2{a.X * f, a.Y * f} }

// Mul multiplies component-wise
func (a Vec2) Mul(b Vec2) Vec2 { return Vec2{a.X * b.X, a.Y * b.Y} }

// LengthSq returns the squared length
func (a Vec2) LengthSq() float64 { return a.X*a.X + a.Y*a.Y }

// Rect is an axis-aligned rectangle anchored at its top-left corner
type Rect struct {
	X, Y, W, H float64
}

// RectCentered builds the rectangle of size centered on c
func RectCentered(c, size Vec2) Rect {
	return Rect{c.X - size.X/2, c.Y - size.Y/2, size.X, size.Y}
}

// Overlaps reports strict interior overlap of two rectangles
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W && r.X+r.W > o.X &&
		r.Y < o.Y+o.H && r.Y+r.H > o.Y
}

// Contains reports whether p lies inside r (right and bottom edges exclusive)
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Center returns the midpoint of r
func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.W/2, r.Y + r.H/2}
}

// Corners returns the four corners clockwise from top-left
func (r Rect) Corners() [4]Vec2 {
	return [4]Vec2{
		{r.X, r.Y},
		{r.X + r.W, r.Y},
		{r.X + r.W, r.Y + r.H},
		{r.X, r.Y + r.H},
	}
}

// Polygon is an ordered, implicitly closed vertex list
type Polygon []Vec2

// Transform scales every vertex then translates it by origin
func (p Polygon) Transform(origin, scale Vec2) Polygon {
	out := make(Polygon, len(p))
	for i, v := range p {
		out[i] = Vec2{origin.X + v.X*scale.X, origin.Y + v.Y*scale.Y}
	}
	return out
}

// Edge returns the i-th edge, wrapping to the first vertex
func (p Polygon) Edge(i int) (Vec2, Vec2) {
	return p[i], p[(i+1)%len(p)]
}

// SegmentsIntersect reports whether segments a1-a2 and b1-b2 cross.
// Parallel segments never intersect.
func SegmentsIntersect(a1, a2, b1, b2 Vec2) bool {
	r := a2.Sub(a1)
	s := b2.Sub(b1)
	denom := r.X*s.Y - r.Y*s.X
	if math.Abs(denom) < Epsilon {
		return false
	}

	q := b1.Sub(a1)
	t := (q.X*s.Y - q.Y*s.X) / denom
	u := (q.X*r.Y - q.Y*r.X) / denom
	return t >= 0 && t <= 1 && u >= 0 && u <= 1
}

// PointInPolygon uses even-odd ray casting; fewer than 3 vertices never contain a point
func PointInPolygon(pt Vec2, poly Polygon) bool {
	if len(poly) < 3 {
		return false
	}
	inside := false
	for i, j := 0, len(poly)-1; i < len(poly); j, i = i, i+1 {
		pi, pj := poly[i], poly[j]
		if (pi.Y > pt.Y) != (pj.Y > pt.Y) &&
			pt.X < (pj.X-pi.X)*(pt.Y-pi.Y)/(pj.Y-pi.Y)+pi.X {
			inside = !inside
		}
	}
	return inside
}

// PointInCircle reports whether pt is within radius of center (inclusive)
func PointInCircle(pt, center Vec2, radius float64) bool {
	return pt.Sub(center).LengthSq() <= radius*radius
}

// CircleSegment reports whether the circle touches segment a-b
func CircleSegment(center Vec2, radius float64, a, b Vec2) bool {
	d := b.Sub(a)
	lenSq := d.LengthSq()
	if lenSq <= Epsilon {
		return PointInCircle(a, center, radius)
	}
	t := ((center.X-a.X)*d.X + (center.Y-a.Y)*d.Y) / lenSq
	t = Clamp(t, 0, 1)
	closest := a.Add(d.Scale(t))
	return closest.Sub(center).LengthSq() <= radius*radius
}

// DirectionDeg returns the unit vector for an angle in degrees,
// counter-clockwise from +x on screen (positive angles move up)
func DirectionDeg(angle float64) Vec2 {
	rad := angle * math.Pi / 180
	return Vec2{math.Cos(rad), -math.Sin(rad)}
}

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
