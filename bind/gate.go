package bind

import (
	"sync"

	"github.com/a2y-d5l/rxkit"
)

// gate forwards events to sink, holding them until open is called. Events that
// arrive while a snapshot is being sent reach sink after it, in order.
type gate[V, E any] struct {
	sink *rxkit.Sink[V, E]

	mu      sync.Mutex
	pending []rxkit.Event[V, E]
	opened  bool
}

func newGate[V, E any](sink *rxkit.Sink[V, E]) *gate[V, E] {
	return &gate[V, E]{sink: sink}
}

// HandleEvent forwards e, or holds it if the gate is not open yet.
func (g *gate[V, E]) HandleEvent(e rxkit.Event[V, E]) {
	g.mu.Lock()
	if !g.opened {
		g.pending = append(g.pending, e)
		g.mu.Unlock()
		return
	}
	g.mu.Unlock()
	g.sink.Send(e)
}

// open flushes held events, including any held while flushing, then lets
// later events through directly.
func (g *gate[V, E]) open() {
	for {
		g.mu.Lock()
		pending := g.pending
		g.pending = nil
		if len(pending) == 0 {
			g.opened = true
			g.mu.Unlock()
			return
		}
		g.mu.Unlock()

		for _, e := range pending {
			g.sink.Send(e)
		}
	}
}
