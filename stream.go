package rxkit

import "context"

// Stream describes how to produce a sequence of events of value type V and
// failure type E, ending in at most one terminal event.
//
// A Stream does nothing until it is observed. Streams built by New are cold:
// every Observe runs the producer again for that observer alone. Streams
// built by Pipe are hot: every observer shares the events sent to the Input.
// Streams derived through the combinators in this package inherit the
// behavior of their source.
//
// A Stream is immutable and safe for concurrent use.
type Stream[V, E any] struct {
	start func(ctx context.Context, sink *Sink[V, E])
}

// New returns a cold Stream whose producer runs once per observation.
//
// The producer receives the subscription's Sink and its context, which is
// cancelled at teardown. It may send synchronously before returning or keep
// the Sink and send later from any goroutine.
func New[V, E any](produce func(ctx context.Context, sink *Sink[V, E])) *Stream[V, E] {
	if produce == nil {
		panic("rxkit: new: nil producer")
	}
	return &Stream[V, E]{start: produce}
}

// Observe subscribes obs to s and returns the subscription. A nil obs
// observes without reacting.
//
// When ctx is done, now or later, the subscription is disposed. ctx also
// carries logging and tracing metadata to producers and taps. ctx must not be
// nil.
func (s *Stream[V, E]) Observe(ctx context.Context, obs Observer[V, E]) Disposable {
	sink := newSink(ctx, obs)
	stop := context.AfterFunc(ctx, sink.Dispose)
	sink.OnDispose(func() { stop() })
	s.start(sink.ctx, sink)
	return sink
}

// connect starts s with a new upstream Sink delivering to obs, bound to the
// lifetime of down: tearing down down disposes the upstream subscription.
func connect[V, E, U, F any](ctx context.Context, down *Sink[U, F], s *Stream[V, E], obs Observer[V, E]) {
	up := newSink(ctx, obs)
	down.addUpstream(up)
	s.start(up.ctx, up)
}

// Just returns a Stream that sends values in order, then completes.
func Just[V, E any](values ...V) *Stream[V, E] {
	cp := append([]V(nil), values...)
	return New(func(_ context.Context, sink *Sink[V, E]) {
		for _, v := range cp {
			sink.SendValue(v)
		}
		sink.SendCompleted()
	})
}

// Empty returns a Stream that completes immediately.
func Empty[V, E any]() *Stream[V, E] {
	return New(func(_ context.Context, sink *Sink[V, E]) {
		sink.SendCompleted()
	})
}

// Fail returns a Stream that fails immediately with e.
func Fail[V, E any](e E) *Stream[V, E] {
	return New(func(_ context.Context, sink *Sink[V, E]) {
		sink.SendFailed(e)
	})
}

// Interrupted returns a Stream that is interrupted immediately.
func Interrupted[V, E any]() *Stream[V, E] {
	return New(func(_ context.Context, sink *Sink[V, E]) {
		sink.SendInterrupted()
	})
}

// FromChannel returns a Stream that forwards values received from ch and
// completes when ch is closed. Each observation reads from ch in its own
// goroutine, so concurrent observers split the channel's values between them.
func FromChannel[V any](ch <-chan V) *Stream[V, Never] {
	return New(func(ctx context.Context, sink *Sink[V, Never]) {
		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case v, ok := <-ch:
					if !ok {
						sink.SendCompleted()
						return
					}
					sink.SendValue(v)
				}
			}
		}()
	})
}
