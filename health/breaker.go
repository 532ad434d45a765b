package health

import (
	"context"
	"fmt"

	"github.com/jonwraymond/llmguard/resilience"
)

// BreakerChecker reports the health of a provider from its circuit breaker.
//
// Phase mapping:
//   - closed: healthy, calls flow normally
//   - half-open: degraded, a recovery probe is pending or in flight
//   - open: unhealthy, calls fail fast until the recovery timeout elapses
type BreakerChecker struct {
	provider string
	breaker  *resilience.CircuitBreaker
}

// NewBreakerChecker creates a checker for the given provider's breaker.
func NewBreakerChecker(provider string, breaker *resilience.CircuitBreaker) *BreakerChecker {
	return &BreakerChecker{provider: provider, breaker: breaker}
}

// Name returns the provider name.
func (c *BreakerChecker) Name() string {
	return c.provider
}

// Check reads the breaker state. It never invokes the provider.
func (c *BreakerChecker) Check(ctx context.Context) Result {
	st := c.breaker.Status()

	details := map[string]any{
		"phase":                st.Phase.String(),
		"consecutive_failures": st.ConsecutiveFailures,
	}
	if !st.LastFailure.IsZero() {
		details["last_failure"] = st.LastFailure.UTC().Format("2006-01-02T15:04:05Z07:00")
	}

	switch st.Phase {
	case resilience.PhaseOpen:
		if st.TimeUntilRecovery > 0 {
			details["time_until_recovery"] = st.TimeUntilRecovery.String()
		}
		msg := fmt.Sprintf("circuit open after %d consecutive failures", st.ConsecutiveFailures)
		return Unhealthy(msg, resilience.ErrCircuitOpen).WithDetails(details)

	case resilience.PhaseHalfOpen:
		return Degraded("circuit half-open, probing for recovery").WithDetails(details)

	default:
		return Healthy("circuit closed").WithDetails(details)
	}
}

// LimiterChecker reports rate limiter saturation for a provider.
// An exhausted bucket means new calls will be delayed or rejected.
type LimiterChecker struct {
	provider string
	limiter  *resilience.RateLimiter
}

// NewLimiterChecker creates a checker for the given provider's rate limiter.
func NewLimiterChecker(provider string, limiter *resilience.RateLimiter) *LimiterChecker {
	return &LimiterChecker{provider: provider, limiter: limiter}
}

// Name returns the provider name suffixed with the concern.
func (c *LimiterChecker) Name() string {
	return c.provider + ".ratelimit"
}

// Check reads the current token count.
func (c *LimiterChecker) Check(ctx context.Context) Result {
	tokens := c.limiter.Tokens()

	details := map[string]any{
		"tokens": tokens,
	}

	if tokens < 1 {
		return Degraded("rate limit budget exhausted").WithDetails(details)
	}
	return Healthy("rate limit budget available").WithDetails(details)
}
