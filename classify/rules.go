package classify

import "strings"

// Rule matches a raw failure by message substrings or provider codes and
// assigns a Kind. Rules are evaluated in table order, so broader phrases
// (e.g. "model") must come after narrower ones that could contain them.
type Rule struct {
	// Kind assigned when the rule matches.
	Kind Kind

	// Substrings are matched against the lowercased failure message. Any
	// match satisfies the rule.
	Substrings []string

	// Codes are compared for equality against the extracted provider code.
	Codes []string
}

func (r Rule) matches(lowerMsg, code string) bool {
	for _, s := range r.Substrings {
		if s != "" && strings.Contains(lowerMsg, s) {
			return true
		}
	}
	for _, c := range r.Codes {
		if c != "" && c == code {
			return true
		}
	}
	return false
}

// DefaultRules returns the built-in ordered rule table. Order matters:
// messages may contain overlapping keywords and the first match wins.
func DefaultRules() []Rule {
	return []Rule{
		{
			Kind:       KindRateLimited,
			Substrings: []string{"rate limit", "quota"},
			Codes:      []string{"429"},
		},
		{
			Kind:       KindAuthFailure,
			Substrings: []string{"api key", "authentication"},
			Codes:      []string{"401"},
		},
		{
			Kind:       KindModelUnavailable,
			Substrings: []string{"model", "engine"},
			Codes:      []string{"404"},
		},
		{
			Kind:       KindNetworkFailure,
			Substrings: []string{"network", "timeout", "connection"},
		},
		{
			Kind:       KindParsingFailure,
			Substrings: []string{"parse", "validation", "schema"},
		},
	}
}
