// Package rxkit provides typed reactive streams and a set of combinators for
// adapting how they fail.
//
// # Streams
//
// A Stream[V, E] sends any number of values of type V followed by at most one
// terminal event: a failure of type E, a completion, or an interruption.
// Streams are observed with Observe, which returns a Disposable; disposing it
// interrupts the subscription and tears it down. Streams that cannot fail use
// Never as their failure type.
//
// New builds cold streams whose producer runs once per observer. Pipe builds
// hot streams fed by an Input and shared by all observers.
//
// # Delivery guarantees
//
// For a single subscription:
//
//   - Events are delivered one at a time, in the order they were sent.
//     Concurrent or reentrant sends are queued, never interleaved.
//   - At most one terminal event is delivered, and nothing follows it.
//   - Teardown (context cancellation, then OnDispose callbacks) runs exactly
//     once, after the terminal event.
//   - Disposing a derived subscription disposes its source subscription, and
//     a source terminating terminates the derived one.
//
// Combinators keep no state shared between subscriptions.
//
// # Failure as data
//
// The combinators in this package reshape the failure channel rather than
// handling failures:
//
//   - DropError and LiftError turn a failure into a clean completion and
//     discard its payload. Both are lossy.
//   - ToOutcomeStream turns values and the failure into outcome.Outcome
//     values, ending with a completion; FromOutcomeStream reverses it.
//   - FilterValues and FilterErrors project the two halves of an outcome
//     stream.
//
// # Taps
//
// On and the OnValue, OnError, OnCompleted, OnInterrupted, OnTerminated and
// OnDisposed methods attach side effects that run before downstream
// observers see an event. A panicking tap is recovered, logged and the
// subscription interrupted (PanicInterrupt), or re-raised after disposal
// (PanicPropagate).
package rxkit
