// Package health reports the operational state of guarded LLM providers.
//
// A Checker is any component that can report its health. For provider
// resilience the interesting checkers wrap the guard primitives: a
// BreakerChecker maps circuit breaker phases onto health statuses, and a
// LimiterChecker reports rate limiter saturation.
//
// # Basic Usage
//
//	cb := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{})
//	check := health.NewBreakerChecker("anthropic", cb)
//
//	result := check.Check(ctx)
//	if result.Status == health.StatusUnhealthy {
//	    log.Printf("provider down: %s", result.Message)
//	}
//
// # Aggregating Health Checks
//
// Use Aggregator to combine per-provider checks into a single composite check:
//
//	agg := health.NewAggregator()
//	agg.Register("anthropic", anthropicChecker)
//	agg.Register("openai", openaiChecker)
//
//	results := agg.CheckAll(ctx)
//	overall := agg.OverallStatus(results)
//
// # HTTP Endpoints
//
// The package provides HTTP handlers for common health check patterns:
//
//	// Liveness probe (for Kubernetes)
//	http.Handle("/healthz", health.LivenessHandler())
//
//	// Readiness probe with provider checks
//	http.Handle("/readyz", health.ReadinessHandler(aggregator))
//
//	// Detailed health status
//	http.Handle("/health", health.DetailedHandler(aggregator))
package health
