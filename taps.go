package rxkit

import (
	"context"
	"fmt"
)

// Hooks holds the side effects attached by On. Nil hooks are skipped.
type Hooks[V, E any] struct {
	// Value runs for every value event.
	Value func(V)

	// Failed runs for the failure event.
	Failed func(E)

	// Completed runs for the completion event.
	Completed func()

	// Interrupted runs for the interruption event, including the one produced
	// by disposing the subscription.
	Interrupted func()

	// Terminated runs once for whichever terminal event arrives first, after
	// the kind-specific hook.
	Terminated func()

	// Disposed runs once when the subscription tears down, on every exit path.
	Disposed func()
}

// On returns a Stream identical to s that runs hooks as events pass through.
//
// Each hook runs synchronously on the delivering goroutine, before downstream
// observers see the event. Hooks never change values or termination; a
// panicking hook is handled according to the configured PanicPolicy.
func On[V, E any](s *Stream[V, E], hooks Hooks[V, E], opts ...TapOption) *Stream[V, E] {
	cfg := defaultTapConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return New(func(ctx context.Context, down *Sink[V, E]) {
		if hooks.Disposed != nil {
			down.OnDispose(func() {
				cfg.invoke(ctx, down, "disposed", hooks.Disposed)
			})
		}

		connect(ctx, down, s, ObserverFunc[V, E](func(e Event[V, E]) {
			if !cfg.invoke(ctx, down, e.Kind.String(), func() { hooks.run(e) }) {
				return
			}
			down.Send(e)
		}))
	})
}

func (h Hooks[V, E]) run(e Event[V, E]) {
	switch e.Kind {
	case KindValue:
		if h.Value != nil {
			h.Value(e.Value)
		}
		return
	case KindFailed:
		if h.Failed != nil {
			h.Failed(e.Err)
		}
	case KindCompleted:
		if h.Completed != nil {
			h.Completed()
		}
	case KindInterrupted:
		if h.Interrupted != nil {
			h.Interrupted()
		}
	}
	if h.Terminated != nil {
		h.Terminated()
	}
}

// invoke runs fn under the panic policy. It reports false if fn panicked and
// the subscription was disposed.
func (c tapConfig) invoke(ctx context.Context, sub Disposable, hook string, fn func()) (ok bool) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		ok = false
		c.logger.Error(ctx, "rxkit: tap handler panicked",
			"hook", hook,
			"panic", fmt.Sprint(r),
			"policy", c.policy.String(),
		)
		sub.Dispose()

		switch c.policy {
		case PanicInterrupt:
		case PanicPropagate:
			panic(r)
		default:
			panic(fmt.Errorf("unknown panic policy: %v", c.policy))
		}
	}()

	fn()
	return true
}

// OnValue runs handler for every value.
func (s *Stream[V, E]) OnValue(handler func(V)) *Stream[V, E] {
	return On(s, Hooks[V, E]{Value: handler})
}

// OnError runs handler for the failure.
func (s *Stream[V, E]) OnError(handler func(E)) *Stream[V, E] {
	return On(s, Hooks[V, E]{Failed: handler})
}

// OnCompleted runs handler on completion.
func (s *Stream[V, E]) OnCompleted(handler func()) *Stream[V, E] {
	return On(s, Hooks[V, E]{Completed: handler})
}

// OnInterrupted runs handler on interruption.
func (s *Stream[V, E]) OnInterrupted(handler func()) *Stream[V, E] {
	return On(s, Hooks[V, E]{Interrupted: handler})
}

// OnTerminated runs handler once for the first terminal event: failure,
// completion or interruption.
func (s *Stream[V, E]) OnTerminated(handler func()) *Stream[V, E] {
	return On(s, Hooks[V, E]{Terminated: handler})
}

// OnDisposed runs handler once when the subscription tears down, whether it
// terminated on its own or was disposed.
func (s *Stream[V, E]) OnDisposed(handler func()) *Stream[V, E] {
	return On(s, Hooks[V, E]{Disposed: handler})
}
