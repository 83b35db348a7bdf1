// Package rxchan bridges rxkit streams to Go channels.
//
// Observer implements rxkit.Observer and forwards values into a buffered
// channel under an explicit overflow policy:
//   - DropNewest: never blocks the stream; drops incoming values when the buffer is full.
//   - DropOldest: never blocks the stream; discards one buffered value to keep the newest.
//   - Block: blocks delivery until the consumer receives; best for tests.
//
// Drop counts are exposed via Drops. Start observes a stream and exposes the
// channels through a Handle.
package rxchan

import (
	"context"
	"errors"

	"github.com/a2y-d5l/rxkit"
)

// ErrNotTerminated is returned by Terminal before the stream has terminated.
var ErrNotTerminated = errors.New("rxchan: stream has not terminated")

// Handle is a running subscription whose values are exposed as a channel.
type Handle[V, E any] struct {
	obs *Observer[V, E]
	sub rxkit.Disposable
}

// Start observes s with a channel Observer and returns a Handle. The
// subscription ends when s terminates, when ctx is done, or on Dispose.
func Start[V, E any](ctx context.Context, s *rxkit.Stream[V, E], opts ...Option) *Handle[V, E] {
	obs := NewObserver[V, E](opts...)
	return &Handle[V, E]{
		obs: obs,
		sub: s.Observe(ctx, obs),
	}
}

// Values returns a read-only channel of values, closed after termination.
func (h *Handle[V, E]) Values() <-chan V {
	return h.obs.Values()
}

// Done returns a channel closed after termination.
func (h *Handle[V, E]) Done() <-chan struct{} {
	return h.obs.Done()
}

// Wait blocks until the stream terminates or ctx is done and returns the
// terminal event.
func (h *Handle[V, E]) Wait(ctx context.Context) (rxkit.Event[V, E], error) {
	select {
	case <-h.obs.Done():
		return h.obs.Terminal()
	case <-ctx.Done():
		return rxkit.Event[V, E]{}, ctx.Err()
	}
}

// Terminal returns the terminal event, or ErrNotTerminated.
func (h *Handle[V, E]) Terminal() (rxkit.Event[V, E], error) {
	return h.obs.Terminal()
}

// Drops returns the number of dropped values.
func (h *Handle[V, E]) Drops() uint64 {
	return h.obs.Drops()
}

// Dispose stops accepting values and interrupts the subscription.
func (h *Handle[V, E]) Dispose() {
	h.obs.Close()
	h.sub.Dispose()
}
