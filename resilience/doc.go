// Package resilience wraps calls to rate-limited, occasionally-unavailable
// LLM provider APIs.
//
// The package turns arbitrary provider failures into bounded retry decisions
// and prevents a persistently failing provider from being hammered. It never
// performs network calls itself: callers hand it an operation (a function
// invoking the provider) and the package decides whether, and how long after
// a failure, to invoke it again.
//
// # Components
//
//   - RetryExecutor: repeats a failing operation with classification-driven
//     exponential backoff and jitter. Waits are derived from the classified
//     error's retry-after hint, not from a fixed base delay.
//
//   - CircuitBreaker: rejects calls outright after a run of consecutive
//     failures, probing the provider again only after a recovery timeout.
//
//   - RateLimiter: client-side pacing to stay inside a provider's
//     requests-per-minute budget.
//
//   - Bulkhead: caps concurrent in-flight provider calls.
//
// # Composition
//
// Guard composes the patterns with the breaker outside the retry loop, so an
// open circuit skips the whole retry sequence:
//
//	guard := resilience.NewGuard(
//	    resilience.WithCircuitBreaker(resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
//	        FailureThreshold: 5,
//	        RecoveryTimeout:  30 * time.Second,
//	    })),
//	    resilience.WithRetry(resilience.NewRetryExecutor(resilience.RetryConfig{
//	        MaxRetries: 3,
//	    })),
//	)
//
//	err := guard.Execute(ctx, "chat_completion", func(ctx context.Context) error {
//	    return callProvider(ctx)
//	})
//
// Operations returning values go through Call:
//
//	resp, err := resilience.Call(ctx, guard, "chat_completion", func(ctx context.Context) (*Response, error) {
//	    return client.Chat(ctx, req)
//	})
package resilience
