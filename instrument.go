package rxkit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Metric names recorded by Instrument.
const (
	MetricValues    = "rxkit.values"
	MetricTerminals = "rxkit.terminals"
	MetricDuration  = "rxkit.subscription.duration"
)

// Instrument returns a Stream identical to s that records telemetry for each
// subscription:
//   - a span named "rxkit.subscribe <name>" from subscription to teardown,
//     whose context is passed upstream;
//   - a MetricValues counter per value and a MetricTerminals counter per
//     terminal event, tagged with the stream name and event kind, plus the
//     subscription's lifetime on MetricDuration;
//   - a debug log line for the terminal event.
//
// A failure is recorded as an error status on the span. If E implements
// error it is also recorded with RecordError.
func Instrument[V, E any](s *Stream[V, E], name string, opts ...InstrumentOption) *Stream[V, E] {
	cfg := defaultInstrumentConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return New(func(ctx context.Context, down *Sink[V, E]) {
		id := uuid.NewString()
		started := time.Now()
		spanCtx, span := cfg.tracer.Start(ctx, "rxkit.subscribe "+name,
			trace.WithAttributes(
				attribute.String("rxkit.stream", name),
				attribute.String("rxkit.subscription", id),
			),
		)
		down.OnDispose(func() { span.End() })

		connect(spanCtx, down, s, ObserverFunc[V, E](func(e Event[V, E]) {
			if e.Kind == KindValue {
				cfg.metrics.IncCounter(MetricValues, 1, "stream", name)
				down.Send(e)
				return
			}

			kind := e.Kind.String()
			cfg.metrics.IncCounter(MetricTerminals, 1, "stream", name, "kind", kind)
			cfg.metrics.RecordTimer(MetricDuration, time.Since(started), "stream", name, "kind", kind)
			span.AddEvent("terminal", "kind", kind)
			if e.Kind == KindFailed {
				span.SetStatus(codes.Error, fmt.Sprint(e.Err))
				if err, ok := any(e.Err).(error); ok {
					span.RecordError(err)
				}
			}
			cfg.logger.Debug(spanCtx, "rxkit: stream terminated",
				"stream", name,
				"subscription", id,
				"kind", kind,
			)
			down.Send(e)
		}))
	})
}
