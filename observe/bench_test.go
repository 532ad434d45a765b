package observe

import (
	"context"
	"io"
	"testing"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// BenchmarkMiddleware_Noop measures the overhead of a fully no-op middleware.
func BenchmarkMiddleware_Noop(b *testing.B) {
	mw := NopMiddleware()
	call := mw.Wrap(CallMeta{Provider: "anthropic", Operation: "messages"},
		func(ctx context.Context) error { return nil })

	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = call(ctx)
	}
}

// BenchmarkMiddleware_Full measures the overhead with real tracer and metrics.
func BenchmarkMiddleware_Full(b *testing.B) {
	tp := sdktrace.NewTracerProvider()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(sdkmetric.NewManualReader()))

	m, err := newMetrics(mp.Meter("bench"))
	if err != nil {
		b.Fatalf("failed to create metrics: %v", err)
	}

	mw := NewMiddleware(newTracer(tp.Tracer("bench")), m, NewLoggerWithWriter("error", io.Discard))
	call := mw.Wrap(CallMeta{Provider: "anthropic", Operation: "messages"},
		func(ctx context.Context) error { return nil })

	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = call(ctx)
	}
}

// BenchmarkLogger_Structured measures JSON log entry serialization.
func BenchmarkLogger_Structured(b *testing.B) {
	logger := NewLoggerWithWriter("info", io.Discard)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info(ctx, "provider call completed",
			Field{Key: "duration_ms", Value: 42.0},
			Field{Key: "llm.provider", Value: "anthropic"},
		)
	}
}
