package rxkit

import (
	"github.com/a2y-d5l/rxkit/optional"
	"github.com/a2y-d5l/rxkit/outcome"
)

// FilterByType forwards only the values of s whose dynamic type is T, as T.
//
// T may be a concrete type or an interface. Values that do not match,
// including nil interface values, are dropped silently. Terminal events pass
// through unchanged.
//
//	clicks := rxkit.FilterByType[*ButtonEvent](uiEvents)
func FilterByType[T, V, E any](s *Stream[V, E]) *Stream[T, E] {
	return FilterMap(s, func(v V) (T, bool) {
		t, ok := any(v).(T)
		return t, ok
	})
}

// SkipPresent forwards only the empty elements of s and drops every present
// one, whatever its payload.
//
// Note the direction: the present values are the ones skipped, so the result
// contains nothing but optional.None values.
func SkipPresent[V, E any](s *Stream[optional.Optional[V], E]) *Stream[optional.Optional[V], E] {
	return s.Filter(func(o optional.Optional[V]) bool {
		return !o.IsPresent()
	})
}

// FilterValues forwards the payload of every Ok element of s and drops the Err
// elements. Terminal events of s pass through.
func FilterValues[V, E, F any](s *Stream[outcome.Outcome[V, E], F]) *Stream[V, F] {
	return FilterMap(s, outcome.Outcome[V, E].Value)
}

// FilterErrors forwards the payload of every Err element of s and drops the Ok
// elements. Terminal events of s pass through.
func FilterErrors[V, E, F any](s *Stream[outcome.Outcome[V, E], F]) *Stream[E, F] {
	return FilterMap(s, outcome.Outcome[V, E].Failure)
}
