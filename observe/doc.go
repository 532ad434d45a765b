// Package observe provides telemetry for guarded LLM provider calls.
//
// It bundles three concerns behind one Observer:
//
//   - Tracing: one span per provider call, named provider.call.<provider>.<operation>.
//   - Metrics: call counts, error counts, durations, retry attempts, and
//     circuit breaker transitions, via OpenTelemetry instruments.
//   - Logging: structured JSON with automatic redaction of prompts and
//     credentials, or a tinted console logger for interactive use.
//
// # Usage
//
//	obs, err := observe.NewObserver(ctx, observe.Config{
//	    ServiceName: "llm-gateway",
//	    Tracing:     observe.TracingConfig{Enabled: true, Exporter: "otlp", SamplePct: 0.1},
//	    Metrics:     observe.MetricsConfig{Enabled: true, Exporter: "prometheus"},
//	    Logging:     observe.LoggingConfig{Enabled: true, Level: "info"},
//	})
//	if err != nil {
//	    return err
//	}
//	defer obs.Shutdown(ctx)
//
//	mw, _ := observe.MiddlewareFromObserver(obs)
//	call := mw.Wrap(observe.CallMeta{Provider: "anthropic", Operation: "messages", Model: "claude"},
//	    func(ctx context.Context) error {
//	        return doProviderCall(ctx)
//	    })
//
// The wrapped function satisfies the resilience package's Operation signature
// and can be handed straight to a Guard.
package observe
