package classify_test

import (
	"errors"
	"fmt"

	"github.com/jonwraymond/llmguard/classify"
)

func ExampleClassify() {
	err := errors.New("Request failed: rate limit exceeded")

	cerr := classify.Classify(err)
	fmt.Println("kind:", cerr.Kind)
	fmt.Println("retryable:", cerr.Retryable)
	fmt.Println("retry after:", cerr.RetryAfter)
	// Output:
	// kind: rate_limited
	// retryable: true
	// retry after: 1m0s
}

func ExampleClassify_providerError() {
	cerr := classify.Classify(&classify.ProviderError{
		StatusCode: 401,
		Message:    "invalid x-api-key",
	})

	fmt.Println("kind:", cerr.Kind)
	fmt.Println("retryable:", cerr.Retryable)
	// Output:
	// kind: auth_failure
	// retryable: false
}

func ExampleNewClassifier() {
	// Put provider-specific phrasings ahead of the default table.
	rules := append([]classify.Rule{
		{Kind: classify.KindRateLimited, Substrings: []string{"throttled"}},
	}, classify.DefaultRules()...)
	c := classify.NewClassifier(rules)

	cerr := c.Classify("request throttled by upstream")
	fmt.Println(cerr.Kind)
	// Output:
	// rate_limited
}
