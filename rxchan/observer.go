package rxchan

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/a2y-d5l/rxkit"
)

// Observer implements rxkit.Observer and forwards values into a channel.
//
// The values channel is closed after the terminal event, which is then
// available from Terminal.
type Observer[V, E any] struct {
	values   chan V
	done     chan struct{}
	quit     chan struct{}
	terminal rxkit.Event[V, E]
	cfg      config
	dropped  atomic.Uint64
	quitOnce sync.Once
	mu       sync.Mutex
	finished bool
}

// NewObserver constructs an Observer with optional configuration.
//
// Defaults:
//   - Buffer: 1024
//   - OverflowPolicy: DropNewest
func NewObserver[V, E any](opts ...Option) *Observer[V, E] {
	c := config{
		buf:    defaultBufSize,
		policy: DropNewest,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}
	if c.buf < 0 {
		c.buf = 0
	}

	return &Observer[V, E]{
		cfg:    c,
		values: make(chan V, c.buf),
		done:   make(chan struct{}),
		quit:   make(chan struct{}),
	}
}

// HandleEvent forwards values according to the overflow policy and records
// the terminal event.
func (o *Observer[V, E]) HandleEvent(e rxkit.Event[V, E]) {
	if e.Kind == rxkit.KindValue {
		o.send(e.Value)
		return
	}

	o.mu.Lock()
	if o.finished {
		o.mu.Unlock()
		return
	}
	o.finished = true
	o.terminal = e
	o.mu.Unlock()

	close(o.values)
	close(o.done)
}

func (o *Observer[V, E]) send(v V) {
	// Fast-path: if closed, drop.
	select {
	case <-o.quit:
		o.dropped.Add(1)
		return
	default:
	}

	switch o.cfg.policy {
	case Block:
		select {
		case o.values <- v:
		case <-o.quit:
			o.dropped.Add(1)
		}

	case DropOldest:
		select {
		case o.values <- v:
			return
		default:
		}
		// Make room by discarding one buffered value, then retry once.
		select {
		case <-o.values:
			o.dropped.Add(1)
		default:
		}
		select {
		case o.values <- v:
		default:
			o.dropped.Add(1)
		}

	case DropNewest:
		select {
		case o.values <- v:
		default:
			o.dropped.Add(1)
		}

	default:
		panic(fmt.Errorf("unknown overflow policy: %v", o.cfg.policy))
	}
}

// Values returns a read-only channel of values. It is closed after the
// terminal event.
func (o *Observer[V, E]) Values() <-chan V {
	return o.values
}

// Done returns a channel closed after the terminal event.
func (o *Observer[V, E]) Done() <-chan struct{} {
	return o.done
}

// Terminal returns the terminal event, or ErrNotTerminated if it has not
// arrived yet.
func (o *Observer[V, E]) Terminal() (rxkit.Event[V, E], error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.finished {
		return rxkit.Event[V, E]{}, ErrNotTerminated
	}
	return o.terminal, nil
}

// Drops returns the number of values dropped due to overflow or closure.
func (o *Observer[V, E]) Drops() uint64 {
	return o.dropped.Load()
}

// Close stops accepting values: a blocked delivery returns and later values
// are dropped. It does not close the Values channel, which is closed by the
// terminal event.
//
// Close is safe to call multiple times.
func (o *Observer[V, E]) Close() {
	o.quitOnce.Do(func() {
		close(o.quit)
	})
}
