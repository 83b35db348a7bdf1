// Package bind connects rxkit streams to user-interface state.
//
// Property holds an observable value. Action runs a stream-returning function
// one input at a time and exposes whether it is executing or enabled as
// properties. BindLoading and BindDisabled reflect those properties onto a
// busy indicator and a control.
//
// Bindings never assume a UI thread: updates are handed to a Dispatcher,
// which may hop to whatever goroutine or event loop owns the target.
package bind

import (
	"context"

	"github.com/a2y-d5l/rxkit"
)

// Dispatcher runs fn, possibly on another goroutine or event loop. A nil
// Dispatcher runs fn on the delivering goroutine.
type Dispatcher func(fn func())

func (d Dispatcher) run(fn func()) {
	if d == nil {
		fn()
		return
	}
	d(fn)
}

// BusyIndicator is shown while work is in progress.
type BusyIndicator interface {
	Show(animated bool)
	Hide(animated bool)
}

// Control is a view whose background opacity can be changed.
type Control interface {
	SetBackgroundAlpha(alpha float64)
}

// Background alpha applied by BindDisabled.
const (
	EnabledAlpha  = 1.0
	DisabledAlpha = 0.5
)

// Executor is the part of an Action the bindings need.
type Executor interface {
	IsExecuting() *Property[bool]
	IsEnabled() *Property[bool]
}

// BindLoading shows indicator whenever action starts executing and hides it
// when the execution ends. Only changes are reflected; the indicator is left
// alone until the first one.
func BindLoading(action Executor, indicator BusyIndicator, dispatch Dispatcher) rxkit.Disposable {
	return action.IsExecuting().Signal().Observe(context.Background(), rxkit.Callbacks[bool, rxkit.Never]{
		Value: func(executing bool) {
			dispatch.run(func() {
				if executing {
					indicator.Show(true)
					return
				}
				indicator.Hide(true)
			})
		},
	})
}

// BindDisabled sets the background alpha of control to EnabledAlpha while
// action is enabled and to DisabledAlpha otherwise, starting with its current
// state.
func BindDisabled(action Executor, control Control, dispatch Dispatcher) rxkit.Disposable {
	return action.IsEnabled().Producer().Observe(context.Background(), rxkit.Callbacks[bool, rxkit.Never]{
		Value: func(enabled bool) {
			dispatch.run(func() {
				if enabled {
					control.SetBackgroundAlpha(EnabledAlpha)
					return
				}
				control.SetBackgroundAlpha(DisabledAlpha)
			})
		},
	})
}
