package scene

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/nodegame/vmath"
)

// MaxForces bounds the simultaneously live forces
const MaxForces = 100

var ErrForceCapacity = errors.New("maximum forces reached")

// Force moves one component at constant velocity for a limited time
type Force struct {
	ID        int // owning node index
	Component int
	Speed     float64 // pixels per second
	Angle     float64 // degrees, counter-clockwise from +x
	Duration  float64 // seconds left
}

// Forces is the live force list
type Forces struct {
	list []Force
}

// NewForces returns an empty force list
func NewForces() *Forces {
	return &Forces{list: make([]Force, 0, MaxForces)}
}

// Apply starts a force or, when one with the same id is live, refreshes its
// duration only
func (f *Forces) Apply(force Force) error {
	for i := range f.list {
		if f.list[i].ID == force.ID {
			f.list[i].Duration = force.Duration
			return nil
		}
	}
	if len(f.list) >= MaxForces {
		return ErrForceCapacity
	}
	f.list = append(f.list, force)
	return nil
}

// Replace starts a force, overwriting every field of a live force with the
// same id
func (f *Forces) Replace(force Force) error {
	for i := range f.list {
		if f.list[i].ID == force.ID {
			f.list[i] = force
			return nil
		}
	}
	return f.Apply(force)
}

// Stop removes every force acting on component comp
func (f *Forces) Stop(comp int) {
	kept := f.list[:0]
	for _, force := range f.list {
		if force.Component != comp {
			kept = append(kept, force)
		}
	}
	f.list = kept
}

// Len returns the live force count
func (f *Forces) Len() int { return len(f.list) }

// All returns the live forces; the slice is owned by f
func (f *Forces) All() []Force { return f.list }

// Clear drops every force
func (f *Forces) Clear() { f.list = f.list[:0] }

// Step integrates every force over dt seconds. A move that ends in a blocking
// collision is rolled back. Forces whose duration ran out are removed after
// their final step. Collision problems are returned, not fatal.
func (f *Forces) Step(s *Scene, dt float64) []error {
	var errs []error
	kept := f.list[:0]

	for _, force := range f.list {
		c := s.At(force.Component)
		if c == nil {
			errs = append(errs, fmt.Errorf("force %d: %w: %d", force.ID, ErrComponent, force.Component))
			continue
		}

		prev := c.Position
		c.Position = c.Position.Add(vmath.DirectionDeg(force.Angle).Scale(force.Speed * dt))
		force.Duration -= dt

		if c.Hitbox.Kind == HitboxPolygon {
			res, err := s.CheckCollisions(force.Component)
			if err != nil {
				errs = append(errs, err)
			}
			if res.Blocking() {
				c.Position = prev
			}
		}

		if force.Duration > 0 {
			kept = append(kept, force)
		}
	}

	f.list = kept
	return errs
}
