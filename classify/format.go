package classify

import (
	"fmt"
	"strings"
	"time"
)

// FormatUserMessage renders a classified error for an operator-facing log or
// terminal: the summary, the ordered remediation suggestions, and a
// human-readable wait estimate when the error is retryable.
func FormatUserMessage(e *ClassifiedError) string {
	var b strings.Builder

	b.WriteString(e.Message)
	if e.ProviderCode != "" {
		fmt.Fprintf(&b, " (code %s)", e.ProviderCode)
	}

	for _, s := range e.Suggestions {
		b.WriteString("\n  - ")
		b.WriteString(s)
	}

	if e.Retryable && e.RetryAfter > 0 {
		fmt.Fprintf(&b, "\nSuggested wait before retrying: %s", humanDuration(e.RetryAfter))
	}

	return b.String()
}

func humanDuration(d time.Duration) string {
	switch {
	case d < time.Minute:
		return plural(int(d.Seconds()), "second")
	case d < time.Hour:
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		if s == 0 {
			return plural(m, "minute")
		}
		return plural(m, "minute") + " " + plural(s, "second")
	default:
		return d.String()
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
