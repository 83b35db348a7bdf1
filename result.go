package rxkit

import "github.com/a2y-d5l/rxkit/outcome"

// DropError returns a Stream that cannot fail.
//
// Values are forwarded unchanged. A failure of s is treated as a clean
// completion: the derived Stream sends KindCompleted and the failure payload is
// discarded. Callers observing the result see a completion where s actually
// failed.
//
// This is useful when flat-mapping inner streams that can fail into an outer
// stream that cannot.
func DropError[V, E any](s *Stream[V, E]) *Stream[V, Never] {
	return FlatMapError(s, func(E) *Stream[V, Never] {
		return Empty[V, Never]()
	})
}

// LiftError changes the failure type of s to E2 without ever sending an E2.
//
// It behaves exactly like DropError: a failure of s becomes a clean
// completion and its payload is lost. No conversion from E to E2 is
// attempted; use MapError to translate failures.
func LiftError[E2, V, E any](s *Stream[V, E]) *Stream[V, E2] {
	return FlatMapError(s, func(E) *Stream[V, E2] {
		return Empty[V, E2]()
	})
}

// ToOutcomeStream demotes the failure of s to a value.
//
// Every value v becomes outcome.Ok(v). A failure e becomes outcome.Err(e)
// followed by KindCompleted, since s has terminated. Completion and
// interruption pass through without a trailing value. Relative order is
// preserved.
//
// This keeps a failed attempt from terminating an enclosing stream, for
// example when each value of an outer stream triggers a request that may fail.
func ToOutcomeStream[V, E any](s *Stream[V, E]) *Stream[outcome.Outcome[V, E], Never] {
	oks := Map(s, outcome.Ok[V, E])
	return FlatMapError(oks, func(e E) *Stream[outcome.Outcome[V, E], Never] {
		return Just[outcome.Outcome[V, E], Never](outcome.Err[V](e))
	})
}

// FromOutcomeStream promotes outcomes back to stream events.
//
// outcome.Ok(v) becomes value v and outcome.Err(e) becomes the failure that
// terminates the derived Stream. A failure of s itself, of type F, is treated
// as a clean completion, like DropError. Completion and interruption pass
// through.
func FromOutcomeStream[V, E, F any](s *Stream[outcome.Outcome[V, E], F]) *Stream[V, E] {
	return Lift(s, func(down *Sink[V, E]) Observer[outcome.Outcome[V, E], F] {
		return ObserverFunc[outcome.Outcome[V, E], F](func(e Event[outcome.Outcome[V, E], F]) {
			switch e.Kind {
			case KindValue:
				if v, err, ok := e.Value.Get(); ok {
					down.SendValue(v)
				} else {
					down.SendFailed(err)
				}
			case KindFailed, KindCompleted:
				down.SendCompleted()
			case KindInterrupted:
				down.SendInterrupted()
			}
		})
	})
}

// EventOf converts an outcome to the stream event it represents: Ok(v) to a
// value event and Err(e) to a failed event.
func EventOf[V, E any](o outcome.Outcome[V, E]) Event[V, E] {
	v, e, ok := o.Get()
	if ok {
		return ValueEvent[V, E](v)
	}
	return FailedEvent[V, E](e)
}
