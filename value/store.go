package value

import (
	"errors"

	"github.com/lixenwraith/nodegame/vmath"
)

// Special slots are pre-populated by NewStore and refreshed every frame
const (
	SlotError = iota
	SlotMouseX
	SlotMouseY
	SlotScreenWidth
	SlotScreenHeight
	SlotCameraCenterX
	SlotCameraCenterY

	SpecialCount
)

// ErrStoreFull is returned by Alloc once the pre-counted capacity is used
var ErrStoreFull = errors.New("value store full")

// Store is a fixed-capacity table of values addressed by slot index
type Store struct {
	values []Value
}

// NewStore allocates a store for capacity slots (at least SpecialCount)
// and fills the special slots
func NewStore(capacity int) *Store {
	if capacity < SpecialCount {
		capacity = SpecialCount
	}
	s := &Store{values: make([]Value, 0, capacity)}

	special := []struct {
		v    Value
		name string
	}{
		{String("Error value"), "Error value"},
		{Number(0), "Mouse X"},
		{Number(0), "Mouse Y"},
		{Number(0), "Screen Width"},
		{Number(0), "Screen Height"},
		{Number(0), "Camera Center X"},
		{Number(0), "Camera Center Y"},
	}
	for _, sp := range special {
		sp.v.Name = sp.name
		s.values = append(s.values, sp.v)
	}
	return s
}

// Alloc appends v and returns its slot
func (s *Store) Alloc(v Value) (int, error) {
	if len(s.values) >= cap(s.values) {
		return -1, ErrStoreFull
	}
	s.values = append(s.values, v)
	return len(s.values) - 1, nil
}

// At returns the slot i for in-place mutation, or nil when i is out of range
func (s *Store) At(i int) *Value {
	if i < 0 || i >= len(s.values) {
		return nil
	}
	return &s.values[i]
}

// Len returns the number of allocated slots
func (s *Store) Len() int { return len(s.values) }

// Cap returns the slot budget
func (s *Store) Cap() int { return cap(s.values) }

// Variables returns the slots flagged as named variables, in slot order
func (s *Store) Variables() []int {
	var out []int
	for i := range s.values {
		if s.values[i].IsVariable {
			out = append(out, i)
		}
	}
	return out
}

// UpdateSpecial refreshes the environment-provided slots.
// The camera center is the middle of the visible screen rectangle.
func (s *Store) UpdateSpecial(mouse vmath.Vec2, screen vmath.Rect) {
	s.values[SlotMouseX].Number = mouse.X
	s.values[SlotMouseY].Number = mouse.Y
	s.values[SlotScreenWidth].Number = screen.W
	s.values[SlotScreenHeight].Number = screen.H
	s.values[SlotCameraCenterX].Number = screen.X + screen.W/2
	s.values[SlotCameraCenterY].Number = screen.Y + screen.H/2
}
