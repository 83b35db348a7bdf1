package rxkit_test

import (
	"context"
	"sync"

	"github.com/a2y-d5l/rxkit"
	"github.com/a2y-d5l/rxkit/rxtest"
)

// record observes s with a fresh Recorder. Pipe-based and synchronous streams
// deliver on the sending goroutine, so the recorder is up to date as soon as
// the send returns.
func record[V, E any](s *rxkit.Stream[V, E]) (*rxtest.Recorder[V, E], rxkit.Disposable) {
	rec := rxtest.NewRecorder[V, E]()
	sub := s.Observe(context.Background(), rec)
	return rec, sub
}

// misbehaving returns a stream whose producer keeps sending after its first
// terminal event, to check that sinks enforce a single terminal.
func misbehaving(values []int, terminal rxkit.Kind, failure string) *rxkit.Stream[int, string] {
	return rxkit.New(func(_ context.Context, sink *rxkit.Sink[int, string]) {
		for _, v := range values {
			sink.SendValue(v)
		}
		sendTerminal(sink, terminal, failure)
		sink.SendValue(-1)
		sink.SendFailed("late failure")
		sink.SendCompleted()
		sink.SendInterrupted()
	})
}

func sendTerminal(sink *rxkit.Sink[int, string], terminal rxkit.Kind, failure string) {
	switch terminal {
	case rxkit.KindFailed:
		sink.SendFailed(failure)
	case rxkit.KindCompleted:
		sink.SendCompleted()
	case rxkit.KindInterrupted:
		sink.SendInterrupted()
	}
}

// captureLogger records error lines.
type captureLogger struct {
	mu     sync.Mutex
	errors []string
	debugs []string
}

func (l *captureLogger) Debug(_ context.Context, msg string, _ ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.debugs = append(l.debugs, msg)
}

func (l *captureLogger) Info(context.Context, string, ...any) {}
func (l *captureLogger) Warn(context.Context, string, ...any) {}

func (l *captureLogger) Error(_ context.Context, msg string, _ ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, msg)
}

func (l *captureLogger) errorCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.errors)
}
