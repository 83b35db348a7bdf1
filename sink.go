package rxkit

import (
	"context"
	"sync"
)

// Disposable releases the resources of a subscription.
type Disposable interface {
	Dispose()
}

// DisposableFunc adapts a function to Disposable. The function runs at most
// once, however many times Dispose is called.
func DisposableFunc(fn func()) Disposable {
	return &funcDisposable{fn: fn}
}

type funcDisposable struct {
	fn   func()
	once sync.Once
}

func (d *funcDisposable) Dispose() {
	d.once.Do(func() {
		if d.fn != nil {
			d.fn()
		}
	})
}

// CompositeDisposable groups disposables and disposes them together, in reverse
// order of addition. Disposables added after Dispose are disposed immediately.
type CompositeDisposable struct {
	items    []Disposable
	mu       sync.Mutex
	disposed bool
}

// Add adds d to the group. Nil disposables are ignored.
func (c *CompositeDisposable) Add(d Disposable) {
	if d == nil {
		return
	}
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		d.Dispose()
		return
	}
	c.items = append(c.items, d)
	c.mu.Unlock()
}

// Dispose disposes every member once.
func (c *CompositeDisposable) Dispose() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.disposed = true
	items := c.items
	c.items = nil
	c.mu.Unlock()

	for i := len(items) - 1; i >= 0; i-- {
		items[i].Dispose()
	}
}

// Sink is the sending side of one subscription. Producers receive a Sink and
// push events into it; the Sink forwards them to the subscription's observer.
//
// Sink guarantees:
//   - At most one terminal event is forwarded. Anything sent after the first
//     terminal event is ignored.
//   - Delivery is serialized. Events sent concurrently, or reentrantly from
//     inside the observer, are queued and delivered in send order by the
//     goroutine already delivering.
//   - Once the terminal event has been delivered the Sink tears down exactly
//     once: Context is cancelled, then OnDispose callbacks run in reverse
//     registration order. A panicking callback does not stop the others; the
//     first panic is re-raised after all of them have run.
//
// All methods are safe for concurrent use.
type Sink[V, E any] struct {
	obs    Observer[V, E]
	ctx    context.Context
	cancel context.CancelFunc

	queue     []Event[V, E]
	cleanups  []func()
	upstreams []Disposable

	mu         sync.Mutex
	draining   bool
	terminated bool
	tornDown   bool
}

func newSink[V, E any](parent context.Context, obs Observer[V, E]) *Sink[V, E] {
	if obs == nil {
		obs = ObserverFunc[V, E](func(Event[V, E]) {})
	}
	ctx, cancel := context.WithCancel(parent)
	return &Sink[V, E]{
		obs:    obs,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Context returns a context that is cancelled when the subscription tears
// down. Producers should stop work when it is done.
func (s *Sink[V, E]) Context() context.Context {
	return s.ctx
}

// SendValue sends a value event.
func (s *Sink[V, E]) SendValue(v V) {
	s.Send(ValueEvent[V, E](v))
}

// SendFailed terminates the subscription with a failure.
func (s *Sink[V, E]) SendFailed(e E) {
	s.Send(FailedEvent[V, E](e))
}

// SendCompleted terminates the subscription cleanly.
func (s *Sink[V, E]) SendCompleted() {
	s.Send(CompletedEvent[V, E]())
}

// SendInterrupted terminates the subscription as interrupted.
func (s *Sink[V, E]) SendInterrupted() {
	s.Send(InterruptedEvent[V, E]())
}

// Send enqueues e for delivery. It is a no-op once a terminal event has been
// accepted.
func (s *Sink[V, E]) Send(e Event[V, E]) {
	s.mu.Lock()
	if s.terminated {
		s.mu.Unlock()
		return
	}
	if e.IsTerminal() {
		s.terminated = true
	}
	s.queue = append(s.queue, e)
	if s.draining {
		s.mu.Unlock()
		return
	}
	s.draining = true
	s.drainLocked()
}

// Terminated reports whether a terminal event has been accepted.
func (s *Sink[V, E]) Terminated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.terminated
}

// OnDispose registers fn to run at teardown. If the Sink has already torn
// down, fn runs immediately.
func (s *Sink[V, E]) OnDispose(fn func()) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	if s.tornDown {
		s.mu.Unlock()
		fn()
		return
	}
	s.cleanups = append(s.cleanups, fn)
	s.mu.Unlock()
}

// addUpstream binds the subscription up feeds into s: disposing s disposes up
// first, so its interruption reaches the observer of s through whatever sits
// in between. Teardown of s disposes up on every other exit path.
func (s *Sink[V, E]) addUpstream(up Disposable) {
	s.mu.Lock()
	if s.tornDown {
		s.mu.Unlock()
		up.Dispose()
		return
	}
	s.upstreams = append(s.upstreams, up)
	s.cleanups = append(s.cleanups, up.Dispose)
	s.mu.Unlock()
}

// Dispose interrupts the subscription if it has not terminated yet. The
// observer receives KindInterrupted, then the Sink tears down.
//
// Upstream subscriptions of a derived stream are disposed first, so taps and
// operators between them see the interruption before the observer does. If
// nothing upstream forwards it, the Sink sends KindInterrupted itself.
//
// Dispose is safe to call multiple times and from inside the observer.
func (s *Sink[V, E]) Dispose() {
	s.mu.Lock()
	ups := s.upstreams
	s.upstreams = nil
	s.mu.Unlock()

	for i := len(ups) - 1; i >= 0; i-- {
		ups[i].Dispose()
	}
	s.SendInterrupted()
}

// drainLocked delivers queued events. It must be called with s.mu held and
// s.draining set; it returns with s.mu released.
func (s *Sink[V, E]) drainLocked() {
	defer func() {
		if r := recover(); r != nil {
			// The observer panicked: the subscription is unusable, so release
			// it before the panic continues to the sender.
			s.mu.Lock()
			s.draining = false
			s.terminated = true
			s.queue = nil
			s.mu.Unlock()
			s.teardown()
			panic(r)
		}
	}()

	for len(s.queue) > 0 {
		e := s.queue[0]
		s.queue[0] = Event[V, E]{}
		s.queue = s.queue[1:]
		s.mu.Unlock()

		s.obs.HandleEvent(e)
		if e.IsTerminal() {
			s.teardown()
		}

		s.mu.Lock()
	}
	s.queue = nil
	s.draining = false
	s.mu.Unlock()
}

func (s *Sink[V, E]) teardown() {
	s.mu.Lock()
	if s.tornDown {
		s.mu.Unlock()
		return
	}
	s.tornDown = true
	cleanups := s.cleanups
	s.cleanups = nil
	s.upstreams = nil
	s.mu.Unlock()

	s.cancel()

	// Every cleanup runs even if one panics; the first panic is re-raised.
	var (
		panicked  bool
		recovered any
	)
	for i := len(cleanups) - 1; i >= 0; i-- {
		func() {
			defer func() {
				if r := recover(); r != nil && !panicked {
					panicked, recovered = true, r
				}
			}()
			cleanups[i]()
		}()
	}
	if panicked {
		panic(recovered)
	}
}
