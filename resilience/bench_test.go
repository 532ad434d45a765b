package resilience

import (
	"context"
	"testing"
	"time"
)

func BenchmarkCircuitBreaker_Closed(b *testing.B) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{})
	ctx := context.Background()
	op := func(ctx context.Context) error { return nil }

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = cb.Execute(ctx, "bench", op)
	}
}

func BenchmarkRetryExecutor_Success(b *testing.B) {
	r := NewRetryExecutor(RetryConfig{})
	ctx := context.Background()
	op := func(ctx context.Context) error { return nil }

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = r.Execute(ctx, "bench", op)
	}
}

func BenchmarkRateLimiter_Allow(b *testing.B) {
	rl := NewRateLimiter(RateLimiterConfig{RequestsPerMinute: 1e9, Burst: 1 << 20})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rl.Allow()
	}
}

func BenchmarkGuard_FullStack(b *testing.B) {
	g := NewGuard(
		WithRateLimiter(NewRateLimiter(RateLimiterConfig{RequestsPerMinute: 1e9, Burst: 1 << 20})),
		WithBulkhead(NewBulkhead(BulkheadConfig{MaxInFlight: 64})),
		WithCircuitBreaker(NewCircuitBreaker(CircuitBreakerConfig{})),
		WithRetry(NewRetryExecutor(RetryConfig{})),
		WithCallTimeout(time.Second),
	)
	ctx := context.Background()
	op := func(ctx context.Context) error { return nil }

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = g.Execute(ctx, "bench", op)
	}
}
