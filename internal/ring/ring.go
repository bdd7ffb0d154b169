// Package ring implements an ordered collection with a single focused
// position that can be cycled and dragged around with wrap-around at
// both ends.
package ring

import "iter"

// Ring is an ordered sequence of elements with zero or one focused
// element. The focus is -1 iff the ring is empty.
type Ring[T any] struct {
	elems []T
	focus int
}

// New creates a Ring holding a copy of elems, focused on the first
// element if there is one.
func New[T any](elems []T) *Ring[T] {
	r := &Ring[T]{
		elems: append([]T{}, elems...),
		focus: -1,
	}
	if len(r.elems) > 0 {
		r.focus = 0
	}
	return r
}

// Len returns the number of elements in the ring.
func (r *Ring[T]) Len() int {
	return len(r.elems)
}

// All iterates over the elements in ring order.
func (r *Ring[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, e := range r.elems {
			if !yield(e) {
				return
			}
		}
	}
}

// Elements returns a snapshot of the ring contents.
func (r *Ring[T]) Elements() []T {
	return append([]T{}, r.elems...)
}

// Focused returns the focused element, if any.
func (r *Ring[T]) Focused() (T, bool) {
	if r.focus < 0 {
		var zero T
		return zero, false
	}
	return r.elems[r.focus], true
}

// FocusedPtr returns a pointer to the focused element, or nil if the
// ring is empty. The pointer is invalidated by any mutation of the ring.
func (r *Ring[T]) FocusedPtr() *T {
	if r.focus < 0 {
		return nil
	}
	return &r.elems[r.focus]
}

// Insert puts v at index i (clamped to [0, Len()]), shifting the
// following elements right. The inserted element becomes focused.
func (r *Ring[T]) Insert(i int, v T) {
	if i < 0 {
		i = 0
	}
	if i > len(r.elems) {
		i = len(r.elems)
	}
	var zero T
	r.elems = append(r.elems, zero)
	copy(r.elems[i+1:], r.elems[i:])
	r.elems[i] = v
	r.focus = i
}

// RemoveBy removes the first element matching pred. Focus keeps
// tracking the same element when something before it is removed; when
// the focused element itself goes, focus stays at the same index,
// clamped to the new length.
func (r *Ring[T]) RemoveBy(pred func(T) bool) (T, bool) {
	for i, e := range r.elems {
		if pred(e) {
			return r.removeAt(i), true
		}
	}
	var zero T
	return zero, false
}

// RemoveFocused removes the focused element, if any.
func (r *Ring[T]) RemoveFocused() (T, bool) {
	if r.focus < 0 {
		var zero T
		return zero, false
	}
	return r.removeAt(r.focus), true
}

func (r *Ring[T]) removeAt(i int) T {
	e := r.elems[i]
	r.elems = append(r.elems[:i], r.elems[i+1:]...)
	switch {
	case len(r.elems) == 0:
		r.focus = -1
	case i < r.focus:
		r.focus--
	case r.focus >= len(r.elems):
		r.focus = len(r.elems) - 1
	}
	return e
}

// FocusBy focuses the first element matching pred. Focus is left alone
// when nothing matches; the return value reports whether it moved.
func (r *Ring[T]) FocusBy(pred func(T) bool) bool {
	for i, e := range r.elems {
		if pred(e) {
			r.focus = i
			return true
		}
	}
	return false
}

// WouldWrap reports whether a step in direction d would cross from one
// end of the ring to the other. Like CycleFocus and DragFocused, it
// treats any Direction other than Backward as Forward. Rings with fewer than two elements never
// wrap.
func (r *Ring[T]) WouldWrap(d Direction) bool {
	if len(r.elems) < 2 {
		return false
	}
	if d.normal() == Backward {
		return r.focus == 0
	}
	return r.focus == len(r.elems)-1
}

// CycleFocus moves focus one step in direction d, wrapping at the ends,
// and returns the newly focused element.
func (r *Ring[T]) CycleFocus(d Direction) (T, bool) {
	if r.focus < 0 {
		var zero T
		return zero, false
	}
	r.focus = r.step(d)
	return r.elems[r.focus], true
}

// DragFocused moves the focused element one step in direction d,
// keeping it focused. Dragging past either end rotates the element to
// the opposite end instead of swapping, so the relative order of the
// remaining elements is unchanged. Needs at least two elements.
func (r *Ring[T]) DragFocused(d Direction) (T, bool) {
	if len(r.elems) < 2 {
		var zero T
		return zero, false
	}
	d = d.normal()
	last := len(r.elems) - 1
	switch {
	case d == Forward && r.focus == last:
		e := r.elems[last]
		copy(r.elems[1:], r.elems[:last])
		r.elems[0] = e
		r.focus = 0
	case d == Backward && r.focus == 0:
		e := r.elems[0]
		copy(r.elems, r.elems[1:])
		r.elems[last] = e
		r.focus = last
	default:
		next := r.step(d)
		r.elems[r.focus], r.elems[next] = r.elems[next], r.elems[r.focus]
		r.focus = next
	}
	return r.elems[r.focus], true
}

func (r *Ring[T]) step(d Direction) int {
	n := len(r.elems)
	return (r.focus + int(d.normal()) + n) % n
}
