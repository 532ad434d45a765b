// Package classify turns arbitrary LLM provider failures into structured,
// actionable errors.
//
// Provider APIs report failures inconsistently: free-text messages, mixed
// status codes, fields that may or may not be present. This package maps any
// raw failure value onto a closed vocabulary of error kinds, each with a
// fixed retryability and a set of remediation suggestions.
//
// # Classification
//
// Classification is total: every input, however malformed, produces a
// ClassifiedError. Unrecognized failures degrade to KindUnknown rather than
// failing classification itself.
//
//	cerr := classify.Classify(err)
//	if cerr.Retryable {
//	    time.Sleep(cerr.RetryAfter)
//	}
//
// Matching is driven by an ordered rule table; the first matching rule wins.
// The default table covers the common provider failure modes (rate limits,
// auth failures, missing models, network problems, response parsing). Custom
// tables can be supplied for providers with unusual phrasing:
//
//	c := classify.NewClassifier(append(myRules, classify.DefaultRules()...))
//	cerr := c.Classify(err)
//
// # Structured failures
//
// When the caller has structured information (status code, Retry-After
// header), wrap it in a ProviderError so classification does not depend on
// message text alone. The anthropic and openai adapters do this for the
// official SDK error types.
package classify
