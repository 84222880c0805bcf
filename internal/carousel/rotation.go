package carousel

import "errors"

// ErrEmptySequence is returned when a rotation would end up with no items.
var ErrEmptySequence = errors.New("carousel: empty sequence")

// Rotation holds an ordered, never-empty item sequence and the index of the
// item currently on display. 0 <= Index() < Len() always holds.
//
// Rotation is not safe for concurrent use; Controller serialises access.
type Rotation[T any] struct {
	items []T
	index int
}

// NewRotation starts a rotation over fallback at index 0.
func NewRotation[T any](fallback []T) (*Rotation[T], error) {
	if len(fallback) == 0 {
		return nil, ErrEmptySequence
	}
	return &Rotation[T]{items: clone(fallback)}, nil
}

// Replace swaps in a new sequence and resets the index to 0.
// An empty sequence is rejected and leaves the rotation untouched.
func (r *Rotation[T]) Replace(items []T) error {
	if len(items) == 0 {
		return ErrEmptySequence
	}
	r.items = clone(items)
	r.index = 0
	return nil
}

// Advance moves the index by delta, wrapping in both directions, and returns
// the new index.
func (r *Rotation[T]) Advance(delta int) int {
	n := len(r.items)
	r.index = ((r.index+delta)%n + n) % n
	return r.index
}

// Index returns the current position.
func (r *Rotation[T]) Index() int { return r.index }

// Len returns the sequence length.
func (r *Rotation[T]) Len() int { return len(r.items) }

// Current returns the item at the current position.
func (r *Rotation[T]) Current() T { return r.items[r.index] }

// Items returns a copy of the sequence.
func (r *Rotation[T]) Items() []T { return clone(r.items) }

func clone[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}
