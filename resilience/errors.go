package resilience

import "errors"

// Sentinel errors for guarded provider calls.
var (
	// ErrCircuitOpen is returned without invoking the operation when the
	// circuit breaker is open.
	ErrCircuitOpen = errors.New("llmguard: circuit breaker is open")

	// ErrRetriesExhausted is wrapped by the terminal error when every retry
	// attempt has been consumed.
	ErrRetriesExhausted = errors.New("llmguard: retry attempts exhausted")

	// ErrRateLimitExceeded is returned when the client-side rate limiter
	// rejects a call.
	ErrRateLimitExceeded = errors.New("llmguard: client rate limit exceeded")

	// ErrBulkheadFull is returned when too many provider calls are already
	// in flight.
	ErrBulkheadFull = errors.New("llmguard: too many in-flight provider calls")

	// ErrCallTimeout is returned when a single operation invocation exceeds
	// the guard's call timeout.
	ErrCallTimeout = errors.New("llmguard: provider call timed out")
)
