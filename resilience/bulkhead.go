package resilience

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
)

// BulkheadConfig configures the bulkhead.
type BulkheadConfig struct {
	// MaxInFlight is the maximum number of concurrent provider calls.
	// Default: 10
	MaxInFlight int

	// MaxWait is the maximum time to wait for a slot.
	// Default: 0 (fail immediately)
	MaxWait time.Duration
}

// Bulkhead caps concurrent in-flight provider calls so one slow provider
// cannot absorb every worker. Safe for concurrent use.
type Bulkhead struct {
	config BulkheadConfig
	sem    *semaphore.Weighted

	mu       sync.Mutex
	inFlight int
	peak     int
	rejected int64
}

// NewBulkhead creates a bulkhead.
func NewBulkhead(config BulkheadConfig) *Bulkhead {
	if config.MaxInFlight <= 0 {
		config.MaxInFlight = 10
	}

	return &Bulkhead{
		config: config,
		sem:    semaphore.NewWeighted(int64(config.MaxInFlight)),
	}
}

// Acquire claims an in-flight slot, waiting up to MaxWait when configured.
// Returns ErrBulkheadFull when no slot becomes available.
func (b *Bulkhead) Acquire(ctx context.Context) error {
	if b.sem.TryAcquire(1) {
		b.markAcquired()
		return nil
	}

	if b.config.MaxWait <= 0 {
		b.markRejected()
		return ErrBulkheadFull
	}

	waitCtx, cancel := context.WithTimeout(ctx, b.config.MaxWait)
	defer cancel()

	if err := b.sem.Acquire(waitCtx, 1); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		b.markRejected()
		return ErrBulkheadFull
	}

	b.markAcquired()
	return nil
}

// Release returns an in-flight slot.
func (b *Bulkhead) Release() {
	b.mu.Lock()
	if b.inFlight == 0 {
		b.mu.Unlock()
		return
	}
	b.inFlight--
	b.mu.Unlock()

	b.sem.Release(1)
}

// Execute runs op inside the bulkhead.
func (b *Bulkhead) Execute(ctx context.Context, op Operation) error {
	if err := b.Acquire(ctx); err != nil {
		return err
	}
	defer b.Release()

	return op(ctx)
}

// BulkheadMetrics contains bulkhead statistics.
type BulkheadMetrics struct {
	InFlight    int
	Peak        int
	Available   int
	MaxInFlight int
	Rejected    int64
}

// Metrics returns current bulkhead statistics.
func (b *Bulkhead) Metrics() BulkheadMetrics {
	b.mu.Lock()
	defer b.mu.Unlock()

	return BulkheadMetrics{
		InFlight:    b.inFlight,
		Peak:        b.peak,
		Available:   b.config.MaxInFlight - b.inFlight,
		MaxInFlight: b.config.MaxInFlight,
		Rejected:    b.rejected,
	}
}

func (b *Bulkhead) markAcquired() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.inFlight++
	if b.inFlight > b.peak {
		b.peak = b.inFlight
	}
}

func (b *Bulkhead) markRejected() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rejected++
}
