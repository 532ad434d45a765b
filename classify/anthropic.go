package classify

import (
	"errors"

	"github.com/anthropics/anthropic-sdk-go"
)

// FromAnthropic converts an error returned by the official Anthropic SDK into
// a ProviderError, preserving the HTTP status and the Retry-After header when
// the SDK surfaced an API error. Non-API errors (transport failures, context
// cancellation) are passed through wrapped, so classification falls back to
// message matching.
func FromAnthropic(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *anthropic.Error
	if !errors.As(err, &apiErr) {
		return &ProviderError{Message: err.Error(), Err: err}
	}

	perr := &ProviderError{
		StatusCode: apiErr.StatusCode,
		Message:    apiErr.Error(),
		Err:        err,
	}
	if apiErr.Response != nil {
		perr.Header = apiErr.Response.Header
	}
	return perr
}
