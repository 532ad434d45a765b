package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics records telemetry for guarded provider calls.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: implementations must not panic.
type Metrics interface {
	// RecordCall records a completed provider call with duration and error
	// status.
	RecordCall(ctx context.Context, meta CallMeta, duration time.Duration, err error)

	// RecordRetry records one retry attempt with the classified reason.
	RecordRetry(ctx context.Context, meta CallMeta, attempt int, reason string)

	// RecordBreakerTransition records a circuit breaker phase change.
	RecordBreakerTransition(ctx context.Context, provider, from, to string)
}

type metricsImpl struct {
	meter       metric.Meter
	callCount   metric.Int64Counter
	errorCount  metric.Int64Counter
	duration    metric.Float64Histogram
	retryCount  metric.Int64Counter
	transitions metric.Int64Counter
}

func newMetrics(meter metric.Meter) (*metricsImpl, error) {
	callCount, err := meter.Int64Counter(
		"llm.call.total",
		metric.WithDescription("Total number of provider calls"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	errorCount, err := meter.Int64Counter(
		"llm.call.errors",
		metric.WithDescription("Total number of failed provider calls"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram(
		"llm.call.duration_ms",
		metric.WithDescription("Provider call duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	retryCount, err := meter.Int64Counter(
		"llm.retry.attempts",
		metric.WithDescription("Total number of retry attempts"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		return nil, err
	}

	transitions, err := meter.Int64Counter(
		"llm.breaker.transitions",
		metric.WithDescription("Total number of circuit breaker phase changes"),
		metric.WithUnit("{transition}"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsImpl{
		meter:       meter,
		callCount:   callCount,
		errorCount:  errorCount,
		duration:    duration,
		retryCount:  retryCount,
		transitions: transitions,
	}, nil
}

func (m *metricsImpl) RecordCall(ctx context.Context, meta CallMeta, duration time.Duration, err error) {
	opt := metric.WithAttributes(m.callAttrs(meta)...)

	m.callCount.Add(ctx, 1, opt)
	if err != nil {
		m.errorCount.Add(ctx, 1, opt)
	}
	m.duration.Record(ctx, float64(duration.Milliseconds()), opt)
}

func (m *metricsImpl) RecordRetry(ctx context.Context, meta CallMeta, attempt int, reason string) {
	attrs := append(m.callAttrs(meta),
		attribute.Int("llm.retry.attempt", attempt),
		attribute.String("llm.retry.reason", reason),
	)
	m.retryCount.Add(ctx, 1, metric.WithAttributes(attrs...))
}

func (m *metricsImpl) RecordBreakerTransition(ctx context.Context, provider, from, to string) {
	m.transitions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("llm.provider", provider),
		attribute.String("llm.breaker.from", from),
		attribute.String("llm.breaker.to", to),
	))
}

func (m *metricsImpl) callAttrs(meta CallMeta) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String("llm.provider", meta.Provider),
	}
	if meta.Operation != "" {
		attrs = append(attrs, attribute.String("llm.operation", meta.Operation))
	}
	if meta.Model != "" {
		attrs = append(attrs, attribute.String("llm.model", meta.Model))
	}
	return attrs
}

// noopMetrics is a metrics implementation that does nothing.
type noopMetrics struct{}

func (noopMetrics) RecordCall(ctx context.Context, meta CallMeta, duration time.Duration, err error) {
}
func (noopMetrics) RecordRetry(ctx context.Context, meta CallMeta, attempt int, reason string) {}
func (noopMetrics) RecordBreakerTransition(ctx context.Context, provider, from, to string)    {}
