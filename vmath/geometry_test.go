package vmath

import (
	"math"
	"testing"
)

func TestSegmentsIntersect(t *testing.T) {
	tests := []struct {
		name           string
		a1, a2, b1, b2 Vec2
		want           bool
	}{
		{"Crossing", Vec2{0, 0}, Vec2{10, 10}, Vec2{0, 10}, Vec2{10, 0}, true},
		{"Touching endpoint", Vec2{0, 0}, Vec2{5, 5}, Vec2{5, 5}, Vec2{10, 0}, true},
		{"Disjoint", Vec2{0, 0}, Vec2{1, 1}, Vec2{5, 5}, Vec2{6, 4}, false},
		{"Parallel", Vec2{0, 0}, Vec2{10, 0}, Vec2{0, 1}, Vec2{10, 1}, false},
		{"Would cross if extended", Vec2{0, 0}, Vec2{1, 1}, Vec2{0, 10}, Vec2{4, 6}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SegmentsIntersect(tt.a1, tt.a2, tt.b1, tt.b2); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestPointInPolygon(t *testing.T) {
	square := Polygon{{0, 0}, {10, 0}, {10, 10}, {0, 10}}

	tests := []struct {
		name string
		pt   Vec2
		poly Polygon
		want bool
	}{
		{"Center", Vec2{5, 5}, square, true},
		{"Outside", Vec2{15, 5}, square, false},
		{"Above", Vec2{5, -1}, square, false},
		{"Degenerate polygon", Vec2{0, 0}, Polygon{{0, 0}, {1, 1}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PointInPolygon(tt.pt, tt.poly); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestCircleSegment(t *testing.T) {
	a, b := Vec2{0, 0}, Vec2{10, 0}

	if !CircleSegment(Vec2{5, 2}, 3, a, b) {
		t.Error("Expected circle near middle of segment to touch")
	}
	if CircleSegment(Vec2{5, 5}, 3, a, b) {
		t.Error("Expected distant circle not to touch")
	}
	if !CircleSegment(Vec2{12, 0}, 2, a, b) {
		t.Error("Expected circle at endpoint distance to touch")
	}
	if !CircleSegment(Vec2{1, 0}, 1, a, a) {
		t.Error("Expected zero-length segment to fall back to point test")
	}
}

func TestRectOverlapsAndContains(t *testing.T) {
	r := Rect{0, 0, 10, 10}
	if !r.Overlaps(Rect{5, 5, 10, 10}) {
		t.Error("Expected overlap")
	}
	if r.Overlaps(Rect{10, 0, 5, 5}) {
		t.Error("Expected edge-adjacent rectangles not to overlap")
	}
	if !r.Contains(Vec2{0, 0}) {
		t.Error("Expected top-left corner to be contained")
	}
	if r.Contains(Vec2{10, 5}) {
		t.Error("Expected right edge to be excluded")
	}

	c := RectCentered(Vec2{5, 5}, Vec2{4, 2})
	if c != (Rect{3, 4, 4, 2}) {
		t.Errorf("Expected {3 4 4 2}, got %v", c)
	}
}

func TestDirectionDeg(t *testing.T) {
	tests := []struct {
		angle float64
		want  Vec2
	}{
		{0, Vec2{1, 0}},
		{90, Vec2{0, -1}},
		{180, Vec2{-1, 0}},
		{270, Vec2{0, 1}},
	}

	for _, tt := range tests {
		got := DirectionDeg(tt.angle)
		if math.Abs(got.X-tt.want.X) > 1e-9 || math.Abs(got.Y-tt.want.Y) > 1e-9 {
			t.Errorf("Angle %v: expected %v, got %v", tt.angle, tt.want, got)
		}
	}
}

func TestPolygonTransform(t *testing.T) {
	p := Polygon{{-1, -1}, {1, 1}}
	got := p.Transform(Vec2{10, 20}, Vec2{2, 3})
	if got[0] != (Vec2{8, 17}) || got[1] != (Vec2{12, 23}) {
		t.Errorf("Expected [{8 17} {12 23}], got %v", got)
	}
}

func TestFastRandIntRange(t *testing.T) {
	r := NewFastRand(42)
	for i := 0; i < 1000; i++ {
		v := r.IntRange(5, -3)
		if v < -3 || v > 5 {
			t.Fatalf("Expected value in [-3, 5], got %d", v)
		}
	}
	if got := r.IntRange(7, 7); got != 7 {
		t.Errorf("Expected 7, got %d", got)
	}
	f := r.Float64()
	if f < 0 || f >= 1 {
		t.Errorf("Expected value in [0, 1), got %v", f)
	}
}

func TestTraverse(t *testing.T) {
	tests := []struct {
		name string
		a, b Vec2
		want [][2]int
	}{
		{"Single cell", Vec2{0.2, 0.2}, Vec2{0.8, 0.9}, [][2]int{{0, 0}}},
		{"Horizontal", Vec2{0.5, 0.5}, Vec2{3.5, 0.5}, [][2]int{{0, 0}, {1, 0}, {2, 0}, {3, 0}}},
		{"Backwards", Vec2{2.5, 1.5}, Vec2{0.5, 1.5}, [][2]int{{2, 1}, {1, 1}, {0, 1}}},
		{"Vertical", Vec2{1.5, 0.5}, Vec2{1.5, 2.5}, [][2]int{{1, 0}, {1, 1}, {1, 2}}},
		{"Shallow", Vec2{0.5, 0.5}, Vec2{2.5, 1.5}, [][2]int{{0, 0}, {1, 0}, {1, 1}, {2, 1}}},
		{"Negative cells", Vec2{-1.5, -0.5}, Vec2{0.5, -0.5}, [][2]int{{-2, -1}, {-1, -1}, {0, -1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got [][2]int
			Traverse(tt.a, tt.b, func(x, y int) bool {
				got = append(got, [2]int{x, y})
				return true
			})
			if len(got) != len(tt.want) {
				t.Fatalf("Expected %v, got %v", tt.want, got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("Expected %v, got %v", tt.want, got)
				}
			}
		})
	}
}

func TestTraverseDiagonalCoversCells(t *testing.T) {
	visited := make(map[[2]int]bool)
	Traverse(Vec2{0, 0}, Vec2{3, 3}, func(x, y int) bool {
		visited[[2]int{x, y}] = true
		return true
	})
	for i := 0; i < 4; i++ {
		if !visited[[2]int{i, i}] {
			t.Errorf("Expected diagonal cell (%d,%d) visited", i, i)
		}
	}
}

func TestTraverseStopsEarly(t *testing.T) {
	n := 0
	Traverse(Vec2{0.5, 0.5}, Vec2{10.5, 0.5}, func(x, y int) bool {
		n++
		return n < 3
	})
	if n != 3 {
		t.Errorf("Expected 3 visits, got %d", n)
	}
}
