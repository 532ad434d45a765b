package resilience

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/jonwraymond/llmguard/classify"
	"github.com/jonwraymond/llmguard/observe"
)

// Operation is a single wrapped provider call. It must be idempotent or safe
// to repeat, and should honor ctx cancellation internally.
type Operation func(ctx context.Context) error

// Attempt describes the progress of one retry sequence. A sequence owns its
// Attempt; nothing is shared across concurrent Execute calls.
type Attempt struct {
	// Number is the 1-based attempt counter.
	Number int

	// MaxAttempts is the configured retry budget plus the initial try.
	MaxAttempts int

	// LastError is the classification of the most recent failure.
	LastError *classify.ClassifiedError
}

// RetryConfig configures a RetryExecutor.
type RetryConfig struct {
	// MaxRetries is the number of additional attempts after the first.
	// Default: 3
	MaxRetries int

	// BaseDelay is informational: actual waits are driven by each failure's
	// classified retry-after hint, not this value. It is used only when a
	// retryable classification carries no hint at all.
	// Default: 1 second
	BaseDelay time.Duration

	// MaxDelay caps a single backoff wait before jitter.
	// Default: 5 minutes
	MaxDelay time.Duration

	// Classifier maps raw failures to classified errors.
	// Default: the classify package default rule table.
	Classifier *classify.Classifier

	// OnRetry is called before each backoff wait.
	OnRetry func(a Attempt, delay time.Duration)

	// Logger receives advisory diagnostic notices about retries. Nil
	// disables them.
	Logger observe.Logger

	// Rand is the jitter source, returning values in [0, 1). Replaceable
	// for deterministic tests.
	// Default: math/rand/v2.Float64
	Rand func() float64
}

// RetryExecutor drives repeated invocation of an operation with
// classification-informed backoff between attempts.
type RetryExecutor struct {
	config RetryConfig
	sleep  func(ctx context.Context, d time.Duration) error
}

// NewRetryExecutor creates a retry executor.
func NewRetryExecutor(config RetryConfig) *RetryExecutor {
	if config.MaxRetries <= 0 {
		config.MaxRetries = 3
	}
	if config.BaseDelay <= 0 {
		config.BaseDelay = time.Second
	}
	if config.MaxDelay <= 0 {
		config.MaxDelay = 5 * time.Minute
	}
	if config.Classifier == nil {
		config.Classifier = classify.NewClassifier(nil)
	}
	if config.Rand == nil {
		config.Rand = rand.Float64
	}

	return &RetryExecutor{
		config: config,
		sleep:  sleepContext,
	}
}

// Execute invokes op until it succeeds, fails with a non-retryable error, or
// the attempt budget is exhausted. Intermediate failures are absorbed; only
// the final one surfaces. On exhaustion the returned error wraps
// ErrRetriesExhausted and names the operation, the attempt count, and the
// last classified failure.
func (r *RetryExecutor) Execute(ctx context.Context, name string, op Operation) error {
	attempt := Attempt{MaxAttempts: r.config.MaxRetries + 1}

	for attempt.Number = 1; attempt.Number <= attempt.MaxAttempts; attempt.Number++ {
		err := op(ctx)
		if err == nil {
			return nil
		}

		cerr := r.config.Classifier.Classify(err)
		attempt.LastError = cerr

		if !cerr.Retryable {
			return cerr
		}
		if attempt.Number >= attempt.MaxAttempts {
			break
		}

		delay := r.backoff(cerr.RetryAfter, attempt.Number)

		if r.config.Logger != nil {
			r.config.Logger.Warn(ctx, "provider call failed, backing off",
				observe.Field{Key: "call", Value: name},
				observe.Field{Key: "attempt", Value: attempt.Number},
				observe.Field{Key: "max_attempts", Value: attempt.MaxAttempts},
				observe.Field{Key: "reason", Value: cerr.Kind.String()},
				observe.Field{Key: "wait", Value: delay.String()},
			)
		}
		if r.config.OnRetry != nil {
			r.config.OnRetry(attempt, delay)
		}

		if err := r.sleep(ctx, delay); err != nil {
			return err
		}
	}

	return fmt.Errorf("%w: %q failed after %d attempts: %s",
		ErrRetriesExhausted, name, attempt.MaxAttempts, attempt.LastError.Message)
}

// backoff doubles the classified retry-after hint per attempt, caps it at
// MaxDelay, adds up to 10% jitter, and floors to whole seconds.
func (r *RetryExecutor) backoff(retryAfter time.Duration, attempt int) time.Duration {
	base := retryAfter.Seconds()
	if base <= 0 {
		base = r.config.BaseDelay.Seconds()
	}

	delay := base * math.Pow(2, float64(attempt-1))
	if limit := r.config.MaxDelay.Seconds(); delay > limit {
		delay = limit
	}

	delay += r.config.Rand() * 0.1 * delay

	return time.Duration(math.Floor(delay)) * time.Second
}

// Config returns the executor configuration.
func (r *RetryExecutor) Config() RetryConfig {
	return r.config
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
