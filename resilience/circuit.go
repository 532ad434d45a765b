package resilience

import (
	"context"
	"sync"
	"time"

	"github.com/jonwraymond/llmguard/observe"
)

// Phase is the circuit breaker state.
type Phase int

const (
	// PhaseClosed means calls pass through normally.
	PhaseClosed Phase = iota
	// PhaseOpen means calls are rejected without invoking the operation.
	PhaseOpen
	// PhaseHalfOpen means a single probe call is testing recovery.
	PhaseHalfOpen
)

// String returns the string representation of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseClosed:
		return "closed"
	case PhaseOpen:
		return "open"
	case PhaseHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// CircuitBreakerConfig configures the circuit breaker.
type CircuitBreakerConfig struct {
	// FailureThreshold is the number of consecutive failures that opens the
	// circuit.
	// Default: 5
	FailureThreshold int

	// RecoveryTimeout is how long the circuit stays open before a probe is
	// allowed.
	// Default: 30 seconds
	RecoveryTimeout time.Duration

	// OnStateChange is called when the phase changes.
	OnStateChange func(from, to Phase)

	// Logger receives advisory notices about phase transitions. Nil
	// disables them.
	Logger observe.Logger
}

// CircuitBreaker tracks rolling failure state across calls and rejects calls
// outright while a provider looks dead. One breaker guards one provider (or
// one API key); inject separate instances rather than sharing ambient state.
//
// Safe for concurrent use.
type CircuitBreaker struct {
	config CircuitBreakerConfig

	mu          sync.Mutex
	phase       Phase
	failures    int
	lastFailure time.Time
	probing     bool

	now func() time.Time
}

// NewCircuitBreaker creates a circuit breaker.
func NewCircuitBreaker(config CircuitBreakerConfig) *CircuitBreaker {
	if config.FailureThreshold <= 0 {
		config.FailureThreshold = 5
	}
	if config.RecoveryTimeout <= 0 {
		config.RecoveryTimeout = 30 * time.Second
	}

	return &CircuitBreaker{
		config: config,
		phase:  PhaseClosed,
		now:    time.Now,
	}
}

// Execute runs op through the breaker. While the circuit is open it returns
// ErrCircuitOpen immediately without invoking op. Otherwise op's error, if
// any, is propagated to the caller unchanged while the breaker updates its
// own bookkeeping.
func (cb *CircuitBreaker) Execute(ctx context.Context, name string, op Operation) error {
	if err := cb.beforeCall(); err != nil {
		if cb.config.Logger != nil {
			cb.config.Logger.Warn(ctx, "circuit open, rejecting call",
				observe.Field{Key: "call", Value: name},
				observe.Field{Key: "recovery_in", Value: cb.Status().TimeUntilRecovery.String()},
			)
		}
		return err
	}

	err := op(ctx)
	cb.afterCall(err)
	return err
}

// CircuitStatus is a point-in-time view of breaker state.
type CircuitStatus struct {
	Phase               Phase
	ConsecutiveFailures int
	LastFailure         time.Time
	TimeUntilRecovery   time.Duration
}

// Status returns the current breaker state. It is a pure read: the lazy
// open-to-half-open transition happens only on call attempts.
func (cb *CircuitBreaker) Status() CircuitStatus {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	st := CircuitStatus{
		Phase:               cb.phase,
		ConsecutiveFailures: cb.failures,
		LastFailure:         cb.lastFailure,
	}
	if cb.phase == PhaseOpen {
		if remaining := cb.config.RecoveryTimeout - cb.now().Sub(cb.lastFailure); remaining > 0 {
			st.TimeUntilRecovery = remaining
		}
	}
	return st
}

// Reset unconditionally returns the breaker to closed with zeroed counters.
// An operator escape hatch; normal recovery goes through the half-open probe.
func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	old := cb.phase
	cb.phase = PhaseClosed
	cb.failures = 0
	cb.lastFailure = time.Time{}
	cb.probing = false

	if old != PhaseClosed {
		cb.notify(old, PhaseClosed)
	}
}

func (cb *CircuitBreaker) beforeCall() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.phaseLocked() {
	case PhaseOpen:
		return ErrCircuitOpen
	case PhaseHalfOpen:
		if cb.probing {
			// A probe is already in flight; only one is allowed.
			return ErrCircuitOpen
		}
		cb.probing = true
	}
	return nil
}

func (cb *CircuitBreaker) afterCall(err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	old := cb.phase

	if err == nil {
		cb.phase = PhaseClosed
		cb.failures = 0
		cb.probing = false
	} else {
		cb.failures++
		cb.lastFailure = cb.now()
		switch {
		case cb.phase == PhaseHalfOpen:
			// Failed probe: back to open with a fresh timeout.
			cb.phase = PhaseOpen
			cb.probing = false
		case cb.failures >= cb.config.FailureThreshold:
			cb.phase = PhaseOpen
		}
	}

	if old != cb.phase {
		cb.notify(old, cb.phase)
	}
}

// phaseLocked applies the lazy open-to-half-open transition once the
// recovery timeout has elapsed. Callers must hold cb.mu.
func (cb *CircuitBreaker) phaseLocked() Phase {
	if cb.phase == PhaseOpen && cb.now().Sub(cb.lastFailure) >= cb.config.RecoveryTimeout {
		cb.phase = PhaseHalfOpen
		cb.probing = false
		cb.notify(PhaseOpen, PhaseHalfOpen)
	}
	return cb.phase
}

func (cb *CircuitBreaker) notify(from, to Phase) {
	if cb.config.OnStateChange != nil {
		cb.config.OnStateChange(from, to)
	}
	if cb.config.Logger != nil {
		cb.config.Logger.Info(context.Background(), "circuit phase changed",
			observe.Field{Key: "from", Value: from.String()},
			observe.Field{Key: "to", Value: to.String()},
		)
	}
}
