package rxkit

import (
	"context"
	"sync"
)

// Wait observes s until it terminates and returns the values it sent, in
// order, and its terminal event.
//
// If ctx is done first, Wait disposes the subscription and returns the values
// received so far, an interrupted event, and ctx.Err().
func Wait[V, E any](ctx context.Context, s *Stream[V, E]) ([]V, Event[V, E], error) {
	var (
		mu       sync.Mutex
		values   []V
		terminal Event[V, E]
	)
	done := make(chan struct{})

	sub := s.Observe(ctx, ObserverFunc[V, E](func(e Event[V, E]) {
		mu.Lock()
		defer mu.Unlock()
		if e.Kind == KindValue {
			values = append(values, e.Value)
			return
		}
		terminal = e
		close(done)
	}))

	select {
	case <-done:
	case <-ctx.Done():
		select {
		case <-done:
		default:
			sub.Dispose()
			mu.Lock()
			defer mu.Unlock()
			return append([]V(nil), values...), InterruptedEvent[V, E](), ctx.Err()
		}
	}

	mu.Lock()
	defer mu.Unlock()
	return values, terminal, nil
}
