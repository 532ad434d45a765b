package classify

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Kind identifies the category of a provider failure.
type Kind int

const (
	// KindUnknown is the fallback for failures that match no rule.
	KindUnknown Kind = iota
	// KindRateLimited means the provider rejected the call for quota or
	// rate-limit reasons.
	KindRateLimited
	// KindAuthFailure means the API key or credentials were rejected.
	KindAuthFailure
	// KindModelUnavailable means the requested model or engine does not exist
	// or is not accessible.
	KindModelUnavailable
	// KindNetworkFailure means the call failed before a provider response
	// (timeouts, connection errors).
	KindNetworkFailure
	// KindParsingFailure means the provider response could not be parsed or
	// validated.
	KindParsingFailure
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindRateLimited:
		return "rate_limited"
	case KindAuthFailure:
		return "auth_failure"
	case KindModelUnavailable:
		return "model_unavailable"
	case KindNetworkFailure:
		return "network_failure"
	case KindParsingFailure:
		return "parsing_failure"
	default:
		return "unknown"
	}
}

// Retryable reports whether failures of this kind may succeed on retry.
// The mapping is fixed and not caller-overridable.
func (k Kind) Retryable() bool {
	switch k {
	case KindAuthFailure, KindModelUnavailable:
		return false
	default:
		return true
	}
}

// defaultRetryAfter returns the per-kind wait applied when the raw failure
// carried no usable retry-after hint. Zero for non-retryable kinds.
func (k Kind) defaultRetryAfter() time.Duration {
	switch k {
	case KindRateLimited:
		return 60 * time.Second
	case KindNetworkFailure:
		return 30 * time.Second
	case KindParsingFailure:
		return 10 * time.Second
	case KindAuthFailure, KindModelUnavailable:
		return 0
	default:
		return 30 * time.Second
	}
}

// ClassifiedError is the structured form of a provider failure.
//
// Invariant: Retryable is true exactly when RetryAfter is positive.
type ClassifiedError struct {
	// Kind is the failure category. Exactly one per error.
	Kind Kind

	// ProviderCode is the raw status or code string from the underlying
	// failure, preserved for diagnostics. May be empty.
	ProviderCode string

	// Message is a human-readable summary. Never empty.
	Message string

	// Retryable reports whether the call may succeed on retry. Derived
	// solely from Kind.
	Retryable bool

	// RetryAfter is the minimum suggested wait before the next attempt.
	// Zero when the error is not retryable.
	RetryAfter time.Duration

	// Suggestions are ordered remediation hints for display. They have no
	// behavioral effect.
	Suggestions []string

	cause error
}

// Error implements the error interface.
func (e *ClassifiedError) Error() string {
	if e.ProviderCode != "" {
		return fmt.Sprintf("%s (%s): %s", e.Kind, e.ProviderCode, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the original failure when it was an error.
func (e *ClassifiedError) Unwrap() error {
	return e.cause
}

// Classifier maps raw failures onto ClassifiedErrors using an ordered rule
// table. The zero value is not usable; use NewClassifier or the package-level
// Classify.
type Classifier struct {
	rules []Rule
}

// NewClassifier creates a classifier with the given ordered rules. Rules are
// evaluated in order and the first match wins; failures matching no rule
// classify as KindUnknown. With no rules, DefaultRules is used.
func NewClassifier(rules []Rule) *Classifier {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Classifier{rules: rules}
}

// Classify maps raw onto the package default rule table.
func Classify(raw any) *ClassifiedError {
	return defaultClassifier.Classify(raw)
}

var defaultClassifier = NewClassifier(nil)

// Classify produces a ClassifiedError for any raw failure value. It never
// panics and never fails: unclassifiable inputs degrade to KindUnknown.
func (c *Classifier) Classify(raw any) *ClassifiedError {
	if cerr, ok := raw.(*ClassifiedError); ok && cerr != nil {
		return cerr
	}

	msg, code, cause := extract(raw)
	lower := strings.ToLower(msg)

	kind := KindUnknown
	for _, rule := range c.rules {
		if rule.matches(lower, code) {
			kind = rule.Kind
			break
		}
	}

	if kind == KindUnknown && !strings.HasPrefix(msg, "Unknown error") {
		msg = "Unknown error: " + msg
	}

	cerr := &ClassifiedError{
		Kind:         kind,
		ProviderCode: code,
		Message:      msg,
		Retryable:    kind.Retryable(),
		Suggestions:  suggestionsFor(kind),
		cause:        cause,
	}
	if cerr.Retryable {
		cerr.RetryAfter = retryAfterFrom(raw)
		if cerr.RetryAfter <= 0 {
			cerr.RetryAfter = kind.defaultRetryAfter()
		}
	}
	return cerr
}

// extract pulls a message, an optional code, and an optional cause out of a
// raw failure of unconstrained shape.
func extract(raw any) (msg, code string, cause error) {
	switch v := raw.(type) {
	case nil:
		return "Unknown error", "", nil

	case error:
		msg = v.Error()
		var perr *ProviderError
		if errors.As(v, &perr) {
			code = perr.codeString()
			if perr.Message != "" {
				msg = perr.Message
			}
		}
		cause = v

	case string:
		msg = v

	case map[string]any:
		msg = firstString(v, "message", "error", "detail")
		code = firstString(v, "code", "status", "statusCode", "status_code")

	case fmt.Stringer:
		msg = v.String()

	default:
		msg = fmt.Sprintf("%v", v)
	}

	if strings.TrimSpace(msg) == "" {
		msg = "Unknown error"
	}
	return msg, code, cause
}

// retryAfterFrom extracts a provider-supplied retry-after hint. Checked in
// order: a header-style field, a flat field, a numeric field. Values that do
// not parse as a positive integer number of seconds are treated as absent.
func retryAfterFrom(raw any) time.Duration {
	switch v := raw.(type) {
	case error:
		var perr *ProviderError
		if errors.As(v, &perr) {
			if s := perr.Header.Get("Retry-After"); s != "" {
				return parseRetryAfter(s)
			}
		}

	case map[string]any:
		if h, ok := v["headers"].(map[string]any); ok {
			for _, key := range []string{"retry-after", "Retry-After"} {
				if d := parseRetryAfterValue(h[key]); d > 0 {
					return d
				}
			}
		}
		for _, key := range []string{"retryAfter", "retry_after", "retryAfterSeconds"} {
			if d := parseRetryAfterValue(v[key]); d > 0 {
				return d
			}
		}
	}
	return 0
}

func parseRetryAfterValue(v any) time.Duration {
	switch n := v.(type) {
	case nil:
		return 0
	case string:
		return parseRetryAfter(n)
	case int:
		if n > 0 {
			return time.Duration(n) * time.Second
		}
	case int64:
		if n > 0 {
			return time.Duration(n) * time.Second
		}
	case float64:
		// JSON numbers decode as float64. Accept whole seconds only.
		if n > 0 && n == float64(int64(n)) {
			return time.Duration(int64(n)) * time.Second
		}
	}
	return 0
}

func parseRetryAfter(s string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		switch v := m[k].(type) {
		case string:
			if v != "" {
				return v
			}
		case int:
			return strconv.Itoa(v)
		case int64:
			return strconv.FormatInt(v, 10)
		case float64:
			if v == float64(int64(v)) {
				return strconv.FormatInt(int64(v), 10)
			}
		}
	}
	return ""
}
