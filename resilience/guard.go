package resilience

import (
	"context"
	"time"
)

// Guard composes resilience patterns around provider calls.
//
// Execution order, outermost first: rate limiter, bulkhead, circuit breaker,
// retry, per-call timeout. The breaker sits outside the retry loop: when the
// circuit is open the whole retry sequence is skipped, and one full retry
// sequence counts as one success or failure against the breaker.
type Guard struct {
	limiter     *RateLimiter
	bulkhead    *Bulkhead
	breaker     *CircuitBreaker
	retry       *RetryExecutor
	callTimeout time.Duration
}

// GuardOption configures a Guard.
type GuardOption func(*Guard)

// NewGuard creates a guard from the given options. A guard with no options
// invokes operations directly.
func NewGuard(opts ...GuardOption) *Guard {
	g := &Guard{}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// WithRateLimiter adds client-side request pacing.
func WithRateLimiter(rl *RateLimiter) GuardOption {
	return func(g *Guard) { g.limiter = rl }
}

// WithBulkhead caps concurrent in-flight calls.
func WithBulkhead(b *Bulkhead) GuardOption {
	return func(g *Guard) { g.bulkhead = b }
}

// WithCircuitBreaker adds a circuit breaker around the retry sequence.
func WithCircuitBreaker(cb *CircuitBreaker) GuardOption {
	return func(g *Guard) { g.breaker = cb }
}

// WithRetry adds classification-driven retries.
func WithRetry(r *RetryExecutor) GuardOption {
	return func(g *Guard) { g.retry = r }
}

// WithCallTimeout bounds each individual operation invocation. Every attempt
// of a retry sequence gets its own budget.
func WithCallTimeout(d time.Duration) GuardOption {
	return func(g *Guard) { g.callTimeout = d }
}

// Execute runs op through all configured patterns. The name string appears in
// diagnostics and terminal errors.
func (g *Guard) Execute(ctx context.Context, name string, op Operation) error {
	execute := op

	if g.callTimeout > 0 {
		execute = withTimeout(g.callTimeout, execute)
	}

	if g.retry != nil {
		inner := execute
		execute = func(ctx context.Context) error {
			return g.retry.Execute(ctx, name, inner)
		}
	}

	if g.breaker != nil {
		inner := execute
		execute = func(ctx context.Context) error {
			return g.breaker.Execute(ctx, name, inner)
		}
	}

	if g.bulkhead != nil {
		inner := execute
		execute = func(ctx context.Context) error {
			return g.bulkhead.Execute(ctx, inner)
		}
	}

	if g.limiter != nil {
		inner := execute
		execute = func(ctx context.Context) error {
			return g.limiter.Execute(ctx, inner)
		}
	}

	return execute(ctx)
}

// Call runs an operation returning a value through the guard.
func Call[T any](ctx context.Context, g *Guard, name string, op func(ctx context.Context) (T, error)) (T, error) {
	var result T
	err := g.Execute(ctx, name, func(ctx context.Context) error {
		v, err := op(ctx)
		if err != nil {
			return err
		}
		result = v
		return nil
	})
	return result, err
}

// withTimeout bounds one invocation of op. The operation runs in its own
// goroutine so a call that ignores ctx cannot stall the guard; such a call
// leaks until it returns on its own.
func withTimeout(d time.Duration, op Operation) Operation {
	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, d)
		defer cancel()

		done := make(chan error, 1)
		go func() {
			done <- op(ctx)
		}()

		select {
		case err := <-done:
			return err
		case <-ctx.Done():
			if ctx.Err() == context.DeadlineExceeded {
				return ErrCallTimeout
			}
			return ctx.Err()
		}
	}
}
