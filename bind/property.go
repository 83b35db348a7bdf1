package bind

import (
	"context"
	"sync"

	"github.com/a2y-d5l/rxkit"
)

// Property holds a current value and publishes its changes.
//
// Value and Set are safe for concurrent use. Set delivers each change while
// holding the Property's send lock, so it must not be called from an observer
// of the same Property's changes.
type Property[T any] struct {
	mu    sync.RWMutex
	value T

	sendMu sync.Mutex
	signal *rxkit.Stream[T, rxkit.Never]
	in     *rxkit.Input[T, rxkit.Never]
}

// NewProperty returns a Property holding initial.
func NewProperty[T any](initial T) *Property[T] {
	signal, in := rxkit.Pipe[T, rxkit.Never]()
	return &Property[T]{
		value:  initial,
		signal: signal,
		in:     in,
	}
}

// Value returns the current value.
func (p *Property[T]) Value() T {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.value
}

// Set replaces the current value and sends it to every change observer.
func (p *Property[T]) Set(v T) {
	p.sendMu.Lock()
	defer p.sendMu.Unlock()

	p.mu.Lock()
	p.value = v
	p.mu.Unlock()
	p.in.SendValue(v)
}

// Signal returns a hot stream of changes. Observers see values set after they
// subscribe, not the current one.
func (p *Property[T]) Signal() *rxkit.Stream[T, rxkit.Never] {
	return p.signal
}

// Producer returns a cold stream that sends the current value on
// subscription, then every change. The current value is sent without holding
// any lock, so its observer may Set other properties or Apply actions.
func (p *Property[T]) Producer() *rxkit.Stream[T, rxkit.Never] {
	return rxkit.New(func(ctx context.Context, sink *rxkit.Sink[T, rxkit.Never]) {
		changes := newGate(sink)

		p.sendMu.Lock()
		current := p.Value()
		sub := p.signal.Observe(ctx, changes)
		p.sendMu.Unlock()
		sink.OnDispose(sub.Dispose)

		sink.SendValue(current)
		changes.open()
	})
}
