package rxkit

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Input is the sending side of a hot Stream created by Pipe. Every event sent
// to the Input is delivered to every current observer of the Stream.
//
// Input methods are safe for concurrent use. Events sent from a single
// goroutine reach each observer in send order; events sent concurrently have
// no defined relative order.
type Input[V, E any] struct {
	subscribers map[uuid.UUID]*Sink[V, E]
	mu          sync.RWMutex
	terminated  bool
}

// Pipe returns a hot Stream and the Input that feeds it.
//
// Observers attached after the Input has sent a terminal event receive
// KindInterrupted immediately. Disposing one observer does not affect the
// others or the Input.
func Pipe[V, E any]() (*Stream[V, E], *Input[V, E]) {
	in := &Input[V, E]{
		subscribers: make(map[uuid.UUID]*Sink[V, E]),
	}
	s := New(func(_ context.Context, sink *Sink[V, E]) {
		in.attach(sink)
	})
	return s, in
}

func (in *Input[V, E]) attach(sink *Sink[V, E]) {
	in.mu.Lock()
	if in.terminated {
		in.mu.Unlock()
		sink.SendInterrupted()
		return
	}
	id := uuid.New()
	in.subscribers[id] = sink
	in.mu.Unlock()

	sink.OnDispose(func() {
		in.mu.Lock()
		delete(in.subscribers, id)
		in.mu.Unlock()
	})
}

// Send delivers e to every current observer. After a terminal event the Input
// is closed and further sends are ignored.
func (in *Input[V, E]) Send(e Event[V, E]) {
	in.mu.Lock()
	if in.terminated {
		in.mu.Unlock()
		return
	}
	subs := make([]*Sink[V, E], 0, len(in.subscribers))
	for _, sink := range in.subscribers {
		subs = append(subs, sink)
	}
	if e.IsTerminal() {
		in.terminated = true
		in.subscribers = make(map[uuid.UUID]*Sink[V, E])
	}
	in.mu.Unlock()

	for _, sink := range subs {
		sink.Send(e)
	}
}

// SendValue sends a value to every current observer.
func (in *Input[V, E]) SendValue(v V) {
	in.Send(ValueEvent[V, E](v))
}

// SendFailed fails every current observer and closes the Input.
func (in *Input[V, E]) SendFailed(e E) {
	in.Send(FailedEvent[V, E](e))
}

// SendCompleted completes every current observer and closes the Input.
func (in *Input[V, E]) SendCompleted() {
	in.Send(CompletedEvent[V, E]())
}

// SendInterrupted interrupts every current observer and closes the Input.
func (in *Input[V, E]) SendInterrupted() {
	in.Send(InterruptedEvent[V, E]())
}

// Subscribers returns the number of current observers.
func (in *Input[V, E]) Subscribers() int {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return len(in.subscribers)
}

// Closed reports whether the Input has sent a terminal event.
func (in *Input[V, E]) Closed() bool {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return in.terminated
}
