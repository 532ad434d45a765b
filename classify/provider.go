package classify

import (
	"fmt"
	"net/http"
	"strconv"
)

// ProviderError carries the structured parts of a provider failure when the
// caller has them: HTTP status, provider error code, response headers. It is
// the preferred input to Classify because it does not depend on message text
// alone.
type ProviderError struct {
	// StatusCode is the HTTP status of the failed call, 0 if unknown.
	StatusCode int

	// Code is the provider's own error code string, if any.
	Code string

	// Message is the provider's error message, if any.
	Message string

	// Header holds response headers; Retry-After is consulted during
	// classification.
	Header http.Header

	// Err is the underlying transport or SDK error, if any.
	Err error
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	switch {
	case e.Message != "" && e.StatusCode > 0:
		return fmt.Sprintf("provider error %d: %s", e.StatusCode, e.Message)
	case e.Message != "":
		return "provider error: " + e.Message
	case e.Err != nil:
		return "provider error: " + e.Err.Error()
	default:
		if code := e.codeString(); code != "" {
			return "provider error " + code
		}
		return "provider error"
	}
}

// Unwrap returns the underlying error.
func (e *ProviderError) Unwrap() error {
	return e.Err
}

// codeString returns the provider code, falling back to the HTTP status.
func (e *ProviderError) codeString() string {
	if e.Code != "" {
		return e.Code
	}
	if e.StatusCode > 0 {
		return strconv.Itoa(e.StatusCode)
	}
	return ""
}
