package rxkit

import "context"

// Lift derives a Stream from s. For each observation of the derived Stream,
// op receives the downstream Sink and returns the observer that will receive
// the events of a fresh subscription to s.
//
// Disposing the derived subscription disposes the subscription to s; s
// terminating lets op terminate down. op is called once per observation, so
// any state it captures is per subscription.
func Lift[V, E, U, F any](s *Stream[V, E], op func(down *Sink[U, F]) Observer[V, E]) *Stream[U, F] {
	return New(func(ctx context.Context, down *Sink[U, F]) {
		connect(ctx, down, s, op(down))
	})
}

// forward returns an observer that resends every event to down.
func forward[V, E any](down *Sink[V, E]) Observer[V, E] {
	return ObserverFunc[V, E](down.Send)
}

// passTerminal forwards a terminal event to down, which shares the failure
// type of the source. Value events are ignored.
func passTerminal[V, U, E any](down *Sink[U, E], e Event[V, E]) {
	switch e.Kind {
	case KindFailed:
		down.SendFailed(e.Err)
	case KindCompleted:
		down.SendCompleted()
	case KindInterrupted:
		down.SendInterrupted()
	}
}

// Map transforms every value of s with f.
func Map[V, E, U any](s *Stream[V, E], f func(V) U) *Stream[U, E] {
	return Lift(s, func(down *Sink[U, E]) Observer[V, E] {
		return ObserverFunc[V, E](func(e Event[V, E]) {
			if e.Kind == KindValue {
				down.SendValue(f(e.Value))
				return
			}
			passTerminal(down, e)
		})
	})
}

// FilterMap transforms every value of s with f and forwards only the results
// for which f reports true.
func FilterMap[V, E, U any](s *Stream[V, E], f func(V) (U, bool)) *Stream[U, E] {
	return Lift(s, func(down *Sink[U, E]) Observer[V, E] {
		return ObserverFunc[V, E](func(e Event[V, E]) {
			if e.Kind == KindValue {
				if u, ok := f(e.Value); ok {
					down.SendValue(u)
				}
				return
			}
			passTerminal(down, e)
		})
	})
}

// Filter forwards only the values for which keep reports true.
func (s *Stream[V, E]) Filter(keep func(V) bool) *Stream[V, E] {
	return FilterMap(s, func(v V) (V, bool) {
		return v, keep(v)
	})
}

// MapError transforms the failure of s with f.
func MapError[V, E, F any](s *Stream[V, E], f func(E) F) *Stream[V, F] {
	return Lift(s, func(down *Sink[V, F]) Observer[V, E] {
		return ObserverFunc[V, E](func(e Event[V, E]) {
			switch e.Kind {
			case KindValue:
				down.SendValue(e.Value)
			case KindFailed:
				down.SendFailed(f(e.Err))
			case KindCompleted:
				down.SendCompleted()
			case KindInterrupted:
				down.SendInterrupted()
			}
		})
	})
}

// FlatMapError replaces a failure of s with the Stream returned by handler.
// Values of s are forwarded; when s fails, the replacement is observed within
// the same subscription and its events, including its terminal event, are
// forwarded in place of the failure.
func FlatMapError[V, E, F any](s *Stream[V, E], handler func(E) *Stream[V, F]) *Stream[V, F] {
	return Lift(s, func(down *Sink[V, F]) Observer[V, E] {
		return ObserverFunc[V, E](func(e Event[V, E]) {
			switch e.Kind {
			case KindValue:
				down.SendValue(e.Value)
			case KindFailed:
				connect(down.Context(), down, handler(e.Err), forward(down))
			case KindCompleted:
				down.SendCompleted()
			case KindInterrupted:
				down.SendInterrupted()
			}
		})
	})
}

// Collect gathers every value of s and, when s completes, sends them as a
// single slice before completing. An s that completes without values yields an
// empty, non-nil slice. Failure and interruption are forwarded without a
// slice.
func Collect[V, E any](s *Stream[V, E]) *Stream[[]V, E] {
	return Lift(s, func(down *Sink[[]V, E]) Observer[V, E] {
		values := make([]V, 0)
		return ObserverFunc[V, E](func(e Event[V, E]) {
			switch e.Kind {
			case KindValue:
				values = append(values, e.Value)
			case KindCompleted:
				down.SendValue(values)
				down.SendCompleted()
			default:
				passTerminal(down, e)
			}
		})
	})
}
