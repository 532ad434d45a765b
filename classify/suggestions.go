package classify

// Per-kind remediation hints. Static data: suggestions are authored by hand,
// not computed, and are display-only.
var suggestions = map[Kind][]string{
	KindRateLimited: {
		"Wait for the suggested interval before retrying",
		"Reduce request frequency or batch smaller workloads",
		"Check your plan's rate and quota limits with the provider",
	},
	KindAuthFailure: {
		"Verify the API key is set and has not expired",
		"Check that the key has access to the requested resource",
		"Regenerate the key in the provider console if in doubt",
	},
	KindModelUnavailable: {
		"Check the model name for typos",
		"Verify the model is available to your account and region",
		"Switch to a currently supported model",
	},
	KindNetworkFailure: {
		"Check network connectivity to the provider endpoint",
		"Verify proxy and firewall settings",
		"Retry once the connection is stable",
	},
	KindParsingFailure: {
		"Retry the request; transient malformed responses are common",
		"Check for provider API version changes",
		"Report persistent parsing failures to the provider",
	},
	KindUnknown: {
		"Retry the request",
		"Check the provider status page for incidents",
		"Inspect the raw error message for details",
	},
}

// suggestionsFor returns a copy of the hints for a kind so callers cannot
// mutate the shared table.
func suggestionsFor(k Kind) []string {
	src := suggestions[k]
	out := make([]string, len(src))
	copy(out, src)
	return out
}
