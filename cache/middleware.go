package cache

import (
	"context"
	"sync/atomic"
)

// ExecutorFunc is the function signature for a provider call returning a
// serialized response.
type ExecutorFunc func(ctx context.Context, callID string, request any) ([]byte, error)

// SkipRule determines whether to bypass the cache for a request.
// Returns true if caching should be skipped.
type SkipRule func(callID string, request any) bool

// DefaultSkipRule bypasses the cache for non-reproducible requests: streaming
// responses and sampled completions (temperature or top_p set above zero).
// Only map payloads are inspected; typed requests pass through and rely on
// the policy.
func DefaultSkipRule(_ string, request any) bool {
	req, ok := request.(map[string]any)
	if !ok {
		return false
	}

	if stream, ok := req["stream"].(bool); ok && stream {
		return true
	}
	for _, field := range []string{"temperature", "top_p"} {
		if v, ok := req[field].(float64); ok && v > 0 {
			return true
		}
	}
	return false
}

// Middleware wraps provider calls with response caching.
type Middleware struct {
	cache    Cache
	keyer    Keyer
	policy   Policy
	skipRule SkipRule

	hits   atomic.Int64
	misses atomic.Int64
}

// NewMiddleware creates a new cache middleware.
// If keyer is nil, DefaultKeyer is used. If skipRule is nil, DefaultSkipRule
// is used.
func NewMiddleware(cache Cache, keyer Keyer, policy Policy, skipRule SkipRule) *Middleware {
	if keyer == nil {
		keyer = NewDefaultKeyer()
	}
	if skipRule == nil {
		skipRule = DefaultSkipRule
	}
	return &Middleware{
		cache:    cache,
		keyer:    keyer,
		policy:   policy,
		skipRule: skipRule,
	}
}

// Execute runs the provider call with caching.
// On cache hit, returns the cached response without calling the executor.
// On cache miss, calls the executor and caches the result.
// Errors are NOT cached.
func (m *Middleware) Execute(ctx context.Context, callID string, request any, executor ExecutorFunc) ([]byte, error) {
	if !m.policy.ShouldCache() {
		return executor(ctx, callID, request)
	}

	if !m.policy.CacheSampled && m.skipRule(callID, request) {
		return executor(ctx, callID, request)
	}

	key, err := m.keyer.Key(callID, request)
	if err != nil {
		// Key generation failed, execute without caching
		return executor(ctx, callID, request)
	}

	if cached, ok := m.cache.Get(ctx, key); ok {
		m.hits.Add(1)
		return cached, nil
	}
	m.misses.Add(1)

	result, err := executor(ctx, callID, request)
	if err != nil {
		return result, err
	}

	if ttl := m.policy.EffectiveTTL(0); ttl > 0 {
		_ = m.cache.Set(ctx, key, result, ttl)
	}

	return result, nil
}

// Stats reports cache hit and miss counts since construction.
func (m *Middleware) Stats() (hits, misses int64) {
	return m.hits.Load(), m.misses.Load()
}
