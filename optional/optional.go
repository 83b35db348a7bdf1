// Package optional provides Optional, a value that may or may not be present.
package optional

import "fmt"

// Optional is either Present(value) or Empty. The zero Optional is Empty.
type Optional[V any] struct {
	value V
	ok    bool
}

// Some returns a present Optional wrapping v.
func Some[V any](v V) Optional[V] {
	return Optional[V]{value: v, ok: true}
}

// None returns an empty Optional.
func None[V any]() Optional[V] {
	return Optional[V]{}
}

// FromPointer returns Some(*p), or None if p is nil.
func FromPointer[V any](p *V) Optional[V] {
	if p == nil {
		return None[V]()
	}
	return Some(*p)
}

// IsPresent reports whether o holds a value.
func (o Optional[V]) IsPresent() bool {
	return o.ok
}

// Get returns the value and whether it was present.
func (o Optional[V]) Get() (V, bool) {
	return o.value, o.ok
}

// OrElse returns the value if present, otherwise def.
func (o Optional[V]) OrElse(def V) V {
	if o.ok {
		return o.value
	}
	return def
}

// Pointer returns a pointer to a copy of the value, or nil if o is empty.
func (o Optional[V]) Pointer() *V {
	if !o.ok {
		return nil
	}
	v := o.value
	return &v
}

// String implements fmt.Stringer.
func (o Optional[V]) String() string {
	if !o.ok {
		return "None"
	}
	return fmt.Sprintf("Some(%v)", o.value)
}
