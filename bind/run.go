package bind

import (
	"context"
	"sync"

	"github.com/a2y-d5l/rxkit"
)

// run records the events of one execution and replays them to every
// observer before forwarding live ones.
type run[O, E any] struct {
	mu         sync.Mutex
	events     []rxkit.Event[O, E]
	observers  map[*gate[O, E]]struct{}
	terminated bool
}

func newRun[O, E any]() *run[O, E] {
	return &run[O, E]{observers: make(map[*gate[O, E]]struct{})}
}

// HandleEvent records e and forwards it to live observers. Each observer gets
// e exactly once: from its replay if it subscribed after e was recorded, live
// otherwise.
func (r *run[O, E]) HandleEvent(e rxkit.Event[O, E]) {
	r.mu.Lock()
	if r.terminated {
		r.mu.Unlock()
		return
	}
	r.events = append(r.events, e)
	live := make([]*gate[O, E], 0, len(r.observers))
	for g := range r.observers {
		live = append(live, g)
	}
	if e.IsTerminal() {
		r.terminated = true
		r.observers = nil
	}
	r.mu.Unlock()

	for _, g := range live {
		g.HandleEvent(e)
	}
}

func (r *run[O, E]) stream() *rxkit.Stream[O, E] {
	return rxkit.New(func(_ context.Context, sink *rxkit.Sink[O, E]) {
		g := newGate(sink)

		r.mu.Lock()
		replay := append([]rxkit.Event[O, E](nil), r.events...)
		attached := !r.terminated
		if attached {
			r.observers[g] = struct{}{}
		}
		r.mu.Unlock()

		if attached {
			sink.OnDispose(func() {
				r.mu.Lock()
				delete(r.observers, g)
				r.mu.Unlock()
			})
		}
		for _, e := range replay {
			sink.Send(e)
		}
		g.open()
	})
}
