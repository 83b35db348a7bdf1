// Package outcome provides Outcome, a value-level success-or-failure result.
//
// An Outcome carries a failure as ordinary data, so a failed attempt does not
// have to end the stream that carries it.
package outcome

import "fmt"

// Outcome is either Ok(value) or Err(failure).
//
// The zero Outcome is Err with a zero failure; construct values with Ok, Err or
// FromPair.
type Outcome[V, E any] struct {
	value   V
	failure E
	ok      bool
}

// Ok constructs a successful Outcome wrapping v.
func Ok[V, E any](v V) Outcome[V, E] {
	return Outcome[V, E]{value: v, ok: true}
}

// Err constructs a failed Outcome wrapping e.
func Err[V, E any](e E) Outcome[V, E] {
	return Outcome[V, E]{failure: e}
}

// FromPair converts a Go (value, error) pair: a nil err yields Ok(v), anything
// else yields Err(err).
func FromPair[V any](v V, err error) Outcome[V, error] {
	if err != nil {
		return Err[V](err)
	}
	return Ok[V, error](v)
}

// IsOk reports whether o is a success.
func (o Outcome[V, E]) IsOk() bool {
	return o.ok
}

// Value returns the success payload, or (zero, false) if o is a failure.
func (o Outcome[V, E]) Value() (V, bool) {
	if !o.ok {
		var zero V
		return zero, false
	}
	return o.value, true
}

// Failure returns the failure payload, or (zero, false) if o is a success.
func (o Outcome[V, E]) Failure() (E, bool) {
	if o.ok {
		var zero E
		return zero, false
	}
	return o.failure, true
}

// Get returns both payloads and the success flag. Only the payload selected by
// ok is meaningful.
func (o Outcome[V, E]) Get() (v V, e E, ok bool) {
	return o.value, o.failure, o.ok
}

// Match calls onOk or onErr depending on which case o holds.
func Match[V, E, R any](o Outcome[V, E], onOk func(V) R, onErr func(E) R) R {
	if o.ok {
		return onOk(o.value)
	}
	return onErr(o.failure)
}

// String implements fmt.Stringer.
func (o Outcome[V, E]) String() string {
	if o.ok {
		return fmt.Sprintf("Ok(%v)", o.value)
	}
	return fmt.Sprintf("Err(%v)", o.failure)
}
