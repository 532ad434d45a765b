package health

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonwraymond/llmguard/resilience"
)

func failBreaker(t *testing.T, cb *resilience.CircuitBreaker, times int) {
	t.Helper()
	failure := errors.New("connection refused")
	for i := 0; i < times; i++ {
		_ = cb.Execute(context.Background(), "chat", func(ctx context.Context) error {
			return failure
		})
	}
}

// TestBreakerChecker_Closed verifies a closed breaker reports healthy.
func TestBreakerChecker_Closed(t *testing.T) {
	cb := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{})
	checker := NewBreakerChecker("anthropic", cb)

	if checker.Name() != "anthropic" {
		t.Errorf("expected name 'anthropic', got %q", checker.Name())
	}

	result := checker.Check(context.Background())
	if result.Status != StatusHealthy {
		t.Errorf("expected healthy, got %v: %s", result.Status, result.Message)
	}
	if result.Details["phase"] != "closed" {
		t.Errorf("expected phase=closed, got %v", result.Details["phase"])
	}
}

// TestBreakerChecker_Open verifies an open breaker reports unhealthy.
func TestBreakerChecker_Open(t *testing.T) {
	cb := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
		FailureThreshold: 2,
		RecoveryTimeout:  time.Hour,
	})
	failBreaker(t, cb, 2)

	checker := NewBreakerChecker("anthropic", cb)
	result := checker.Check(context.Background())

	if result.Status != StatusUnhealthy {
		t.Fatalf("expected unhealthy, got %v: %s", result.Status, result.Message)
	}
	if !errors.Is(result.Error, resilience.ErrCircuitOpen) {
		t.Errorf("expected ErrCircuitOpen, got %v", result.Error)
	}
	if result.Details["phase"] != "open" {
		t.Errorf("expected phase=open, got %v", result.Details["phase"])
	}
	if result.Details["consecutive_failures"] != 2 {
		t.Errorf("expected 2 consecutive failures, got %v", result.Details["consecutive_failures"])
	}
	if _, ok := result.Details["time_until_recovery"]; !ok {
		t.Error("expected time_until_recovery detail for open breaker")
	}
}

// TestBreakerChecker_HalfOpenProbe verifies a breaker probing for recovery
// reports degraded.
func TestBreakerChecker_HalfOpenProbe(t *testing.T) {
	cb := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
		FailureThreshold: 1,
		RecoveryTimeout:  time.Nanosecond,
	})
	failBreaker(t, cb, 1)

	release := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = cb.Execute(context.Background(), "chat", func(ctx context.Context) error {
			<-release
			return nil
		})
	}()

	// Wait for the probe to start.
	checker := NewBreakerChecker("anthropic", cb)
	deadline := time.After(time.Second)
	for cb.Status().Phase != resilience.PhaseHalfOpen {
		select {
		case <-deadline:
			t.Fatal("breaker never entered half-open")
		case <-time.After(time.Millisecond):
		}
	}

	result := checker.Check(context.Background())
	if result.Status != StatusDegraded {
		t.Errorf("expected degraded during probe, got %v: %s", result.Status, result.Message)
	}

	close(release)
	<-done

	result = checker.Check(context.Background())
	if result.Status != StatusHealthy {
		t.Errorf("expected healthy after probe success, got %v", result.Status)
	}
}

// TestBreakerChecker_RecoversAfterReset verifies Reset restores healthy status.
func TestBreakerChecker_RecoversAfterReset(t *testing.T) {
	cb := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
		FailureThreshold: 1,
		RecoveryTimeout:  time.Hour,
	})
	failBreaker(t, cb, 1)

	checker := NewBreakerChecker("anthropic", cb)
	if result := checker.Check(context.Background()); result.Status != StatusUnhealthy {
		t.Fatalf("expected unhealthy before reset, got %v", result.Status)
	}

	cb.Reset()
	if result := checker.Check(context.Background()); result.Status != StatusHealthy {
		t.Errorf("expected healthy after reset, got %v", result.Status)
	}
}

// TestLimiterChecker verifies rate limiter saturation reporting.
func TestLimiterChecker(t *testing.T) {
	rl := resilience.NewRateLimiter(resilience.RateLimiterConfig{
		RequestsPerMinute: 60,
		Burst:             2,
	})
	checker := NewLimiterChecker("anthropic", rl)

	if checker.Name() != "anthropic.ratelimit" {
		t.Errorf("expected name 'anthropic.ratelimit', got %q", checker.Name())
	}

	if result := checker.Check(context.Background()); result.Status != StatusHealthy {
		t.Errorf("expected healthy with full bucket, got %v", result.Status)
	}

	for i := 0; i < 2; i++ {
		if !rl.Allow() {
			t.Fatalf("expected allow for call %d", i+1)
		}
	}

	if result := checker.Check(context.Background()); result.Status != StatusDegraded {
		t.Errorf("expected degraded with exhausted bucket, got %v", result.Status)
	}
}
