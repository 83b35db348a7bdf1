package rxkit_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/a2y-d5l/rxkit"
	"github.com/a2y-d5l/rxkit/telemetry"
)

type fakeSpan struct {
	name   string
	ended  int
	status codes.Code
	errs   []error
	events []string
}

func (s *fakeSpan) End(...trace.SpanEndOption) { s.ended++ }

func (s *fakeSpan) AddEvent(name string, _ ...any) { s.events = append(s.events, name) }

func (s *fakeSpan) SetStatus(code codes.Code, _ string) { s.status = code }

func (s *fakeSpan) RecordError(err error, _ ...trace.EventOption) {
	s.errs = append(s.errs, err)
}

type fakeTracer struct {
	spans []*fakeSpan
}

func (t *fakeTracer) Start(ctx context.Context, name string, _ ...trace.SpanStartOption) (context.Context, telemetry.Span) {
	span := &fakeSpan{name: name}
	t.spans = append(t.spans, span)
	return ctx, span
}

type fakeMetrics struct {
	mu       sync.Mutex
	counters map[string]float64
	timers   []string
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{counters: make(map[string]float64)}
}

func (m *fakeMetrics) IncCounter(name string, value float64, tags ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[name+"{"+strings.Join(tags, ",")+"}"] += value
}

func (m *fakeMetrics) RecordTimer(name string, _ time.Duration, _ ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.timers = append(m.timers, name)
}

func TestInstrument_RecordsFailure(t *testing.T) {
	tracer := &fakeTracer{}
	metrics := newFakeMetrics()
	logger := &captureLogger{}

	s, in := rxkit.Pipe[int, error]()
	rec, _ := record(rxkit.Instrument(s, "orders",
		rxkit.WithTracer(tracer),
		rxkit.WithMetrics(metrics),
		rxkit.WithInstrumentLogger(logger),
	))

	in.SendValue(1)
	in.SendValue(2)
	in.SendFailed(errBoom)

	assert.Equal(t, []rxkit.Event[int, error]{
		rxkit.ValueEvent[int, error](1),
		rxkit.ValueEvent[int, error](2),
		rxkit.FailedEvent[int](errBoom),
	}, rec.Events())

	require.Len(t, tracer.spans, 1)
	span := tracer.spans[0]
	assert.Equal(t, "rxkit.subscribe orders", span.name)
	assert.Equal(t, 1, span.ended)
	assert.Equal(t, codes.Error, span.status)
	assert.Equal(t, []error{errBoom}, span.errs)
	assert.Equal(t, []string{"terminal"}, span.events)

	assert.Len(t, metrics.counters, 2)
	assert.Equal(t, float64(2), metrics.counters[rxkit.MetricValues+"{stream,orders}"])
	assert.Equal(t, float64(1), metrics.counters[rxkit.MetricTerminals+"{stream,orders,kind,failed}"])
	assert.Equal(t, []string{rxkit.MetricDuration}, metrics.timers)
	assert.Equal(t, []string{"rxkit: stream terminated"}, logger.debugs)
}

func TestInstrument_DisposeEndsSpan(t *testing.T) {
	tracer := &fakeTracer{}
	metrics := newFakeMetrics()

	s, _ := rxkit.Pipe[int, string]()
	rec, sub := record(rxkit.Instrument(s, "ticks",
		rxkit.WithTracer(tracer),
		rxkit.WithMetrics(metrics),
		rxkit.WithInstrumentLogger(telemetry.NewNoopLogger()),
	))
	sub.Dispose()

	assert.Equal(t, []rxkit.Kind{rxkit.KindInterrupted}, rec.Kinds())
	require.Len(t, tracer.spans, 1)
	assert.Equal(t, 1, tracer.spans[0].ended)
	assert.Equal(t, codes.Unset, tracer.spans[0].status)
	assert.Equal(t, float64(1), metrics.counters[rxkit.MetricTerminals+"{stream,ticks,kind,interrupted}"])
}

func TestInstrument_SpanPerSubscription(t *testing.T) {
	tracer := &fakeTracer{}
	s := rxkit.Instrument(rxkit.Just[int, string](1), "cold",
		rxkit.WithTracer(tracer),
		rxkit.WithMetrics(telemetry.NewNoopMetrics()),
		rxkit.WithInstrumentLogger(telemetry.NewNoopLogger()),
	)

	record(s)
	record(s)

	require.Len(t, tracer.spans, 2)
	for _, span := range tracer.spans {
		assert.Equal(t, 1, span.ended)
		assert.Equal(t, codes.Unset, span.status)
	}
}
