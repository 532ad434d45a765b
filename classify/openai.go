package classify

import (
	"errors"

	"github.com/openai/openai-go"
)

// FromOpenAI converts an error returned by the official OpenAI SDK into a
// ProviderError, preserving the HTTP status, the provider error code, and the
// Retry-After header when the SDK surfaced an API error. Other errors are
// passed through wrapped.
func FromOpenAI(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *openai.Error
	if !errors.As(err, &apiErr) {
		return &ProviderError{Message: err.Error(), Err: err}
	}

	perr := &ProviderError{
		StatusCode: apiErr.StatusCode,
		Code:       apiErr.Code,
		Message:    apiErr.Error(),
		Err:        err,
	}
	if apiErr.Response != nil {
		perr.Header = apiErr.Response.Header
	}
	return perr
}
