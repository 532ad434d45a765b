package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestGuard_NoOptionsPassesThrough(t *testing.T) {
	g := NewGuard()
	ctx := context.Background()

	calls := 0
	err := g.Execute(ctx, "chat", func(ctx context.Context) error {
		calls++
		return nil
	})

	if err != nil {
		t.Errorf("Execute() error = %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestGuard_OpenBreakerSkipsRetrySequence(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 1, RecoveryTimeout: time.Minute})
	r := NewRetryExecutor(RetryConfig{MaxRetries: 3})
	stubSleep(r)

	g := NewGuard(WithCircuitBreaker(cb), WithRetry(r))
	ctx := context.Background()

	// Open the breaker. The inner retry sequence runs to exhaustion once and
	// counts as a single breaker failure.
	calls := 0
	_ = g.Execute(ctx, "chat", func(ctx context.Context) error {
		calls++
		return errors.New("connection refused")
	})
	if calls != 4 {
		t.Fatalf("calls = %d, want 4 (one full retry sequence)", calls)
	}
	if cb.Status().ConsecutiveFailures != 1 {
		t.Fatalf("breaker failures = %d, want 1 per sequence", cb.Status().ConsecutiveFailures)
	}

	// With the circuit open, the operation is never invoked.
	err := g.Execute(ctx, "chat", func(ctx context.Context) error {
		calls++
		return errors.New("connection refused")
	})
	if !errors.Is(err, ErrCircuitOpen) {
		t.Errorf("error = %v, want ErrCircuitOpen", err)
	}
	if calls != 4 {
		t.Errorf("calls = %d, want 4 (open circuit must skip retries)", calls)
	}
}

func TestGuard_RateLimiterRejectsBeforeInvoking(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{RequestsPerMinute: 1, Burst: 1})
	g := NewGuard(WithRateLimiter(rl))
	ctx := context.Background()

	calls := 0
	op := func(ctx context.Context) error {
		calls++
		return nil
	}

	if err := g.Execute(ctx, "chat", op); err != nil {
		t.Fatalf("first Execute() error = %v", err)
	}
	err := g.Execute(ctx, "chat", op)
	if !errors.Is(err, ErrRateLimitExceeded) {
		t.Errorf("error = %v, want ErrRateLimitExceeded", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestGuard_CallTimeout(t *testing.T) {
	g := NewGuard(WithCallTimeout(20 * time.Millisecond))
	ctx := context.Background()

	err := g.Execute(ctx, "chat", func(ctx context.Context) error {
		select {
		case <-time.After(time.Second):
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})

	if !errors.Is(err, ErrCallTimeout) {
		t.Errorf("error = %v, want ErrCallTimeout", err)
	}
}

func TestCall_ReturnsValue(t *testing.T) {
	g := NewGuard()
	ctx := context.Background()

	got, err := Call(ctx, g, "chat", func(ctx context.Context) (string, error) {
		return "completion", nil
	})
	if err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	if got != "completion" {
		t.Errorf("Call() = %q, want %q", got, "completion")
	}
}

func TestCall_ZeroValueOnError(t *testing.T) {
	g := NewGuard()
	ctx := context.Background()

	provErr := errors.New("nope")
	got, err := Call(ctx, g, "chat", func(ctx context.Context) (int, error) {
		return 42, provErr
	})
	if err != provErr {
		t.Errorf("Call() error = %v, want %v", err, provErr)
	}
	if got != 0 {
		t.Errorf("Call() = %d, want zero value", got)
	}
}

func TestGuard_BulkheadComposition(t *testing.T) {
	b := NewBulkhead(BulkheadConfig{MaxInFlight: 1})
	g := NewGuard(WithBulkhead(b))
	ctx := context.Background()

	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)

	go func() {
		done <- g.Execute(ctx, "chat", func(ctx context.Context) error {
			close(started)
			<-release
			return nil
		})
	}()

	<-started
	err := g.Execute(ctx, "chat", func(ctx context.Context) error { return nil })
	if !errors.Is(err, ErrBulkheadFull) {
		t.Errorf("error = %v, want ErrBulkheadFull", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Errorf("first call error = %v", err)
	}
}
