// Package uniquelist provides an insertion-ordered collection that enforces
// element uniqueness by domain identity (weak equality) rather than full
// structural equality, plus live read-only and predicate-filtered views.
package uniquelist

import (
	"errors"
	"fmt"
)

// ErrDuplicate is returned when an add, replace or reset would leave two
// weakly-equal elements in the list.
var ErrDuplicate = errors.New("duplicate entity")

// ErrNotFound is returned by remove and replace when no weakly-equal element
// exists.
var ErrNotFound = errors.New("entity not found")

// Entity is the constraint for list elements: a weak identity relation that
// decides uniqueness and an exact relation that compares every field.
type Entity[T any] interface {
	SameIdentity(T) bool
	Equal(T) bool
}

// List is an insertion-ordered collection of unique entities. The zero value
// is not usable; construct with New. A List never contains two elements that
// are weakly equal to each other.
type List[T Entity[T]] struct {
	items []T
}

// New returns an empty list.
func New[T Entity[T]]() *List[T] {
	return &List[T]{}
}

// Contains reports whether any stored element is weakly equal to item.
func (l *List[T]) Contains(item T) bool {
	return l.indexOf(item) >= 0
}

// ContainsExact reports whether any stored element is exactly equal to item.
func (l *List[T]) ContainsExact(item T) bool {
	for _, it := range l.items {
		if it.Equal(item) {
			return true
		}
	}
	return false
}

// Add appends item, preserving insertion order.
func (l *List[T]) Add(item T) error {
	if l.Contains(item) {
		return fmt.Errorf("add: %w", ErrDuplicate)
	}
	l.items = append(l.items, item)
	return nil
}

// Replace swaps the element weakly equal to target with replacement, keeping
// its slot. It fails with ErrNotFound when target is absent and with
// ErrDuplicate when replacement collides with a different element.
func (l *List[T]) Replace(target, replacement T) error {
	idx := l.indexOf(target)
	if idx < 0 {
		return fmt.Errorf("replace: %w", ErrNotFound)
	}
	if other := l.indexOf(replacement); other >= 0 && other != idx {
		return fmt.Errorf("replace: %w", ErrDuplicate)
	}
	l.items[idx] = replacement
	return nil
}

// Remove deletes the element weakly equal to item. The remaining elements
// keep their relative order.
func (l *List[T]) Remove(item T) error {
	idx := l.indexOf(item)
	if idx < 0 {
		return fmt.Errorf("remove: %w", ErrNotFound)
	}
	l.items = append(l.items[:idx], l.items[idx+1:]...)
	return nil
}

// Reset atomically replaces the entire contents with items. When items holds
// an internally weakly-equal pair the list is left unchanged.
func (l *List[T]) Reset(items []T) error {
	for i := range items {
		for j := i + 1; j < len(items); j++ {
			if items[i].SameIdentity(items[j]) {
				return fmt.Errorf("reset: %w", ErrDuplicate)
			}
		}
	}
	replacement := make([]T, len(items))
	copy(replacement, items)
	l.items = replacement
	return nil
}

// Len returns the number of stored elements.
func (l *List[T]) Len() int {
	return len(l.items)
}

// At returns the element at position i in insertion order.
func (l *List[T]) At(i int) T {
	return l.items[i]
}

// View returns a live read-only view of the list. The view reflects every
// subsequent mutation; it never snapshots.
func (l *List[T]) View() View[T] {
	return View[T]{source: l}
}

func (l *List[T]) indexOf(item T) int {
	for i, it := range l.items {
		if it.SameIdentity(item) {
			return i
		}
	}
	return -1
}

// View is a read-only, insertion-ordered live projection of a List.
type View[T Entity[T]] struct {
	source *List[T]
}

// Len returns the current element count of the backing list.
func (v View[T]) Len() int {
	return v.source.Len()
}

// At returns the element at position i of the backing list.
func (v View[T]) At(i int) T {
	return v.source.At(i)
}

// Items returns a fresh slice of the current contents in insertion order.
// The slice is a copy; the elements are the stored values.
func (v View[T]) Items() []T {
	out := make([]T, v.source.Len())
	copy(out, v.source.items)
	return out
}
