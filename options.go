package rxkit

import (
	"fmt"

	"github.com/a2y-d5l/rxkit/telemetry"
)

// PanicPolicy controls what a tap does when its handler panics.
type PanicPolicy uint8

const (
	// PanicInterrupt recovers the panic, logs it at error level and disposes
	// the subscription, so downstream observers receive KindInterrupted.
	PanicInterrupt PanicPolicy = iota

	// PanicPropagate disposes the subscription, then re-panics on the
	// goroutine that was delivering the event.
	PanicPropagate
)

// String implements fmt.Stringer.
func (p PanicPolicy) String() string {
	switch p {
	case PanicInterrupt:
		return "interrupt"
	case PanicPropagate:
		return "propagate"
	default:
		return fmt.Sprintf("PanicPolicy(%d)", uint8(p))
	}
}

// TapOption configures a tap created by On.
type TapOption func(*tapConfig)

type tapConfig struct {
	logger telemetry.Logger
	policy PanicPolicy
}

func defaultTapConfig() tapConfig {
	return tapConfig{
		logger: telemetry.NewClueLogger(),
		policy: PanicInterrupt,
	}
}

// WithPanicPolicy sets how handler panics are handled. Defaults to
// PanicInterrupt.
func WithPanicPolicy(p PanicPolicy) TapOption {
	return func(c *tapConfig) {
		c.policy = p
	}
}

// WithLogger sets the logger used to report handler panics. Defaults to a
// clue logger reading its configuration from the subscription context.
//
// A nil logger is ignored.
func WithLogger(l telemetry.Logger) TapOption {
	return func(c *tapConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// InstrumentOption configures Instrument.
type InstrumentOption func(*instrumentConfig)

type instrumentConfig struct {
	tracer  telemetry.Tracer
	metrics telemetry.Metrics
	logger  telemetry.Logger
}

func defaultInstrumentConfig() instrumentConfig {
	return instrumentConfig{
		tracer:  telemetry.NewOtelTracer(),
		metrics: telemetry.NewOtelMetrics(),
		logger:  telemetry.NewClueLogger(),
	}
}

// WithTracer sets the tracer. Defaults to the global OpenTelemetry provider.
func WithTracer(t telemetry.Tracer) InstrumentOption {
	return func(c *instrumentConfig) {
		if t != nil {
			c.tracer = t
		}
	}
}

// WithMetrics sets the metrics recorder. Defaults to the global OpenTelemetry
// provider.
func WithMetrics(m telemetry.Metrics) InstrumentOption {
	return func(c *instrumentConfig) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithInstrumentLogger sets the logger for terminal-event debug lines.
func WithInstrumentLogger(l telemetry.Logger) InstrumentOption {
	return func(c *instrumentConfig) {
		if l != nil {
			c.logger = l
		}
	}
}
