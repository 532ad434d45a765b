package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// CallMeta identifies a provider call for telemetry purposes.
type CallMeta struct {
	Provider  string // provider name, e.g. "anthropic" (required)
	Operation string // logical operation, e.g. "messages" (optional)
	Model     string // model identifier (optional)
}

// SpanName returns the deterministic span name for this call.
// Format: provider.call.<provider>.<operation> or provider.call.<provider>.
func (m CallMeta) SpanName() string {
	if m.Operation != "" {
		return "provider.call." + m.Provider + "." + m.Operation
	}
	return "provider.call." + m.Provider
}

// Validate checks that required metadata is present.
func (m CallMeta) Validate() error {
	if m.Provider == "" {
		return ErrMissingProvider
	}
	return nil
}

// CallID returns the fully qualified call identifier.
func (m CallMeta) CallID() string {
	if m.Operation != "" {
		return m.Provider + "." + m.Operation
	}
	return m.Provider
}

// Tracer wraps OpenTelemetry tracing with provider-call span management.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: EndSpan must be best-effort and must not panic.
type Tracer interface {
	// StartSpan starts a new span for a provider call.
	StartSpan(ctx context.Context, meta CallMeta) (context.Context, trace.Span)

	// EndSpan ends the span, recording any error.
	EndSpan(span trace.Span, err error)
}

type tracerImpl struct {
	tracer trace.Tracer
}

func newTracer(t trace.Tracer) Tracer {
	return &tracerImpl{tracer: t}
}

// StartSpan starts a new span with call metadata as attributes.
func (t *tracerImpl) StartSpan(ctx context.Context, meta CallMeta) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{
		attribute.String("llm.provider", meta.Provider),
	}
	if meta.Operation != "" {
		attrs = append(attrs, attribute.String("llm.operation", meta.Operation))
	}
	if meta.Model != "" {
		attrs = append(attrs, attribute.String("llm.model", meta.Model))
	}

	return t.tracer.Start(ctx, meta.SpanName(),
		trace.WithAttributes(attrs...),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

// EndSpan ends the span and records the error status if present.
func (t *tracerImpl) EndSpan(span trace.Span, err error) {
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.RecordError(err)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// noopTracer is a tracer that does nothing.
type noopTracer struct {
	noop trace.Tracer
}

func newNoopTracer() Tracer {
	return &noopTracer{noop: tracenoop.NewTracerProvider().Tracer("noop")}
}

func (t *noopTracer) StartSpan(ctx context.Context, meta CallMeta) (context.Context, trace.Span) {
	return t.noop.Start(ctx, meta.SpanName())
}

func (t *noopTracer) EndSpan(span trace.Span, err error) {
	span.End()
}
