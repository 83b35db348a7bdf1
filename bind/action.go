package bind

import (
	"context"
	"errors"
	"sync"

	"github.com/a2y-d5l/rxkit"
	"github.com/a2y-d5l/rxkit/outcome"
)

// ErrDisabled is returned by Apply while the action is disabled or already
// executing.
var ErrDisabled = errors.New("bind: apply: action disabled")

// Action runs a stream-returning function one input at a time and publishes
// its state.
//
// While an execution is running the action is executing and not enabled;
// Apply fails with ErrDisabled until the execution terminates.
type Action[I, O, E any] struct {
	execute func(I) *rxkit.Stream[O, E]
	cfg     actionConfig

	executing *Property[bool]
	enabled   *Property[bool]

	events   *rxkit.Stream[outcome.Outcome[O, E], rxkit.Never]
	eventsIn *rxkit.Input[outcome.Outcome[O, E], rxkit.Never]

	watch rxkit.Disposable

	mu         sync.Mutex
	running    bool
	allowed    bool
	disposed   bool
	publishing bool
	dirty      bool
}

// NewAction returns an Action that runs execute for each applied input.
func NewAction[I, O, E any](execute func(I) *rxkit.Stream[O, E], opts ...ActionOption) *Action[I, O, E] {
	if execute == nil {
		panic("bind: new action: nil execute")
	}
	cfg := defaultActionConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	events, eventsIn := rxkit.Pipe[outcome.Outcome[O, E], rxkit.Never]()
	a := &Action[I, O, E]{
		execute:   execute,
		cfg:       cfg,
		executing: NewProperty(false),
		enabled:   NewProperty(true),
		events:    events,
		eventsIn:  eventsIn,
		allowed:   true,
	}
	if cfg.enabledIf != nil {
		a.watch = cfg.enabledIf.Producer().Observe(context.Background(), rxkit.Callbacks[bool, rxkit.Never]{
			Value: a.setAllowed,
		})
	}
	return a
}

// Apply starts an execution for input, observed under ctx, and returns the
// stream of its events. Every observer of the returned stream sees the
// execution from its first event, however late it subscribes.
//
// Cancelling ctx interrupts the execution.
func (a *Action[I, O, E]) Apply(ctx context.Context, input I) (*rxkit.Stream[O, E], error) {
	a.mu.Lock()
	if a.running || !a.allowed || a.disposed {
		a.mu.Unlock()
		return nil, ErrDisabled
	}
	a.running = true
	a.mu.Unlock()
	a.publish()

	a.cfg.logger.Debug(ctx, "bind: action started", "action", a.cfg.name)

	r := newRun[O, E]()
	a.execute(input).Observe(ctx, rxkit.ObserverFunc[O, E](func(e rxkit.Event[O, E]) {
		r.HandleEvent(e)
		switch e.Kind {
		case rxkit.KindValue:
			a.eventsIn.SendValue(outcome.Ok[O, E](e.Value))
			return
		case rxkit.KindFailed:
			a.eventsIn.SendValue(outcome.Err[O](e.Err))
		}
		a.finish(ctx, e.Kind)
	}))
	return r.stream(), nil
}

func (a *Action[I, O, E]) finish(ctx context.Context, kind rxkit.Kind) {
	a.cfg.logger.Debug(ctx, "bind: action finished", "action", a.cfg.name, "kind", kind.String())
	a.mu.Lock()
	a.running = false
	a.mu.Unlock()
	a.publish()
}

func (a *Action[I, O, E]) setAllowed(ok bool) {
	a.mu.Lock()
	a.allowed = ok
	a.mu.Unlock()
	a.publish()
}

// publish brings IsExecuting and IsEnabled up to date. Calls made while
// another publish is running, including reentrant calls from property
// observers, are folded into that publish.
func (a *Action[I, O, E]) publish() {
	a.mu.Lock()
	if a.publishing {
		a.dirty = true
		a.mu.Unlock()
		return
	}
	a.publishing = true
	for {
		a.dirty = false
		running := a.running
		enabled := a.allowed && !a.running && !a.disposed
		a.mu.Unlock()

		if a.executing.Value() != running {
			a.executing.Set(running)
		}
		if a.enabled.Value() != enabled {
			a.enabled.Set(enabled)
		}

		a.mu.Lock()
		if !a.dirty {
			break
		}
	}
	a.publishing = false
	a.mu.Unlock()
}

// IsExecuting reports whether an execution is running.
func (a *Action[I, O, E]) IsExecuting() *Property[bool] {
	return a.executing
}

// IsEnabled reports whether Apply would start an execution: the action is
// idle, not disposed, and its enabling property, if any, is true.
func (a *Action[I, O, E]) IsEnabled() *Property[bool] {
	return a.enabled
}

// Events returns a hot stream of the outcome of every execution: Ok for each
// value and Err for each failure. Completions and interruptions send nothing.
// It completes when the action is disposed.
func (a *Action[I, O, E]) Events() *rxkit.Stream[outcome.Outcome[O, E], rxkit.Never] {
	return a.events
}

// Values returns a hot stream of the values of every execution.
func (a *Action[I, O, E]) Values() *rxkit.Stream[O, rxkit.Never] {
	return rxkit.FilterValues(a.events)
}

// Errors returns a hot stream of the failures of every execution.
func (a *Action[I, O, E]) Errors() *rxkit.Stream[E, rxkit.Never] {
	return rxkit.FilterErrors(a.events)
}

// Dispose disables the action, stops watching its enabling property and
// completes Events. A running execution is not interrupted.
func (a *Action[I, O, E]) Dispose() {
	a.mu.Lock()
	if a.disposed {
		a.mu.Unlock()
		return
	}
	a.disposed = true
	a.mu.Unlock()

	if a.watch != nil {
		a.watch.Dispose()
	}
	a.publish()
	a.eventsIn.SendCompleted()
}
