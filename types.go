package rxkit

import "fmt"

// Kind describes which of the four event categories an Event belongs to.
type Kind uint8

const (
	// KindValue carries a value; a stream may send any number of them.
	KindValue Kind = iota

	// KindFailed terminates the stream with a failure.
	KindFailed

	// KindCompleted terminates the stream cleanly.
	KindCompleted

	// KindInterrupted terminates the stream because its subscription was
	// disposed (or its source was cancelled) before it completed or failed.
	KindInterrupted
)

// IsTerminal reports whether k ends a stream.
func (k Kind) IsTerminal() bool {
	return k != KindValue
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindValue:
		return "value"
	case KindFailed:
		return "failed"
	case KindCompleted:
		return "completed"
	case KindInterrupted:
		return "interrupted"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Never is the failure type of streams that cannot fail. It carries no
// information, and no stream in this module ever sends a Never failure.
type Never struct{}

// Event is a single notification on a stream. Only the field matching Kind is
// meaningful: Value for KindValue, Err for KindFailed.
type Event[V, E any] struct {
	Value V
	Err   E
	Kind  Kind
}

// ValueEvent returns a KindValue event carrying v.
func ValueEvent[V, E any](v V) Event[V, E] {
	return Event[V, E]{Kind: KindValue, Value: v}
}

// FailedEvent returns a KindFailed event carrying e.
func FailedEvent[V, E any](e E) Event[V, E] {
	return Event[V, E]{Kind: KindFailed, Err: e}
}

// CompletedEvent returns a KindCompleted event.
func CompletedEvent[V, E any]() Event[V, E] {
	return Event[V, E]{Kind: KindCompleted}
}

// InterruptedEvent returns a KindInterrupted event.
func InterruptedEvent[V, E any]() Event[V, E] {
	return Event[V, E]{Kind: KindInterrupted}
}

// IsTerminal reports whether e ends a stream.
func (e Event[V, E]) IsTerminal() bool {
	return e.Kind.IsTerminal()
}

// String implements fmt.Stringer.
func (e Event[V, E]) String() string {
	switch e.Kind {
	case KindValue:
		return fmt.Sprintf("value(%v)", e.Value)
	case KindFailed:
		return fmt.Sprintf("failed(%v)", e.Err)
	default:
		return e.Kind.String()
	}
}

// Observer receives the events of one subscription.
//
// HandleEvent is never called concurrently for a single subscription, and no
// event follows a terminal one.
type Observer[V, E any] interface {
	HandleEvent(Event[V, E])
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc[V, E any] func(Event[V, E])

// HandleEvent calls f(e).
func (f ObserverFunc[V, E]) HandleEvent(e Event[V, E]) {
	f(e)
}

// Callbacks is an Observer with one optional callback per event category.
// Nil callbacks are skipped.
type Callbacks[V, E any] struct {
	Value       func(V)
	Failed      func(E)
	Completed   func()
	Interrupted func()
}

// HandleEvent dispatches e to the matching callback.
func (c Callbacks[V, E]) HandleEvent(e Event[V, E]) {
	switch e.Kind {
	case KindValue:
		if c.Value != nil {
			c.Value(e.Value)
		}
	case KindFailed:
		if c.Failed != nil {
			c.Failed(e.Err)
		}
	case KindCompleted:
		if c.Completed != nil {
			c.Completed()
		}
	case KindInterrupted:
		if c.Interrupted != nil {
			c.Interrupted()
		}
	}
}

// MultiObserver fans out events to multiple observers in argument order.
//
// Nil observers are ignored.
func MultiObserver[V, E any](obs ...Observer[V, E]) Observer[V, E] {
	cp := make([]Observer[V, E], 0, len(obs))
	for _, o := range obs {
		if o != nil {
			cp = append(cp, o)
		}
	}
	if len(cp) == 0 {
		return ObserverFunc[V, E](func(Event[V, E]) {})
	}
	if len(cp) == 1 {
		return cp[0]
	}

	return ObserverFunc[V, E](func(e Event[V, E]) {
		for _, o := range cp {
			o.HandleEvent(e)
		}
	})
}
