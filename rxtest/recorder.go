// Package rxtest provides observers for testing streams.
package rxtest

import (
	"sync"
	"time"

	"github.com/a2y-d5l/rxkit"
)

// Recorder records the events of a subscription for tests and diagnostics.
//
// Recorder is safe for concurrent use. A Recorder records one subscription;
// call Reset before reusing it.
type Recorder[V, E any] struct {
	events []rxkit.Event[V, E]
	done   chan struct{}
	mu     sync.Mutex
}

// NewRecorder constructs a Recorder.
func NewRecorder[V, E any]() *Recorder[V, E] {
	return &Recorder[V, E]{done: make(chan struct{})}
}

// HandleEvent appends e to the recorder.
func (r *Recorder[V, E]) HandleEvent(e rxkit.Event[V, E]) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	if e.IsTerminal() {
		select {
		case <-r.done:
		default:
			close(r.done)
		}
	}
}

// Events returns a snapshot copy of recorded events.
func (r *Recorder[V, E]) Events() []rxkit.Event[V, E] {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := make([]rxkit.Event[V, E], len(r.events))
	copy(cp, r.events)
	return cp
}

// Values returns the recorded values in order.
func (r *Recorder[V, E]) Values() []V {
	evs := r.Events()
	out := make([]V, 0, len(evs))
	for _, e := range evs {
		if e.Kind == rxkit.KindValue {
			out = append(out, e.Value)
		}
	}
	return out
}

// Terminal returns the first recorded terminal event, if any.
func (r *Recorder[V, E]) Terminal() (rxkit.Event[V, E], bool) {
	for _, e := range r.Events() {
		if e.IsTerminal() {
			return e, true
		}
	}
	return rxkit.Event[V, E]{}, false
}

// Terminals returns the number of recorded terminal events.
func (r *Recorder[V, E]) Terminals() int {
	n := 0
	for _, e := range r.Events() {
		if e.IsTerminal() {
			n++
		}
	}
	return n
}

// Kinds returns the kinds of the recorded events in order.
func (r *Recorder[V, E]) Kinds() []rxkit.Kind {
	evs := r.Events()
	out := make([]rxkit.Kind, len(evs))
	for i, e := range evs {
		out[i] = e.Kind
	}
	return out
}

// WaitTerminal blocks until a terminal event is recorded or timeout elapses.
// It reports whether a terminal event arrived.
func (r *Recorder[V, E]) WaitTerminal(timeout time.Duration) bool {
	r.mu.Lock()
	done := r.done
	r.mu.Unlock()

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-done:
		return true
	case <-timer.C:
		return false
	}
}

// Reset clears the recorder.
func (r *Recorder[V, E]) Reset() {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.events = nil
	r.done = make(chan struct{})
	r.mu.Unlock()
}
