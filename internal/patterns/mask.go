package patterns

import (
	"regexp"
	"strings"
)

// Regex patterns compiled once at package initialization
var (
	ipv4Pattern = regexp.MustCompile(`\b\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}\b`)
	ipv6Pattern = regexp.MustCompile(`\b[0-9a-fA-F:]+:[0-9a-fA-F:]+\b`)

	uuidPattern = regexp.MustCompile(`\b[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}\b`)

	// ISO8601/RFC3339 and Unix timestamps embedded in messages
	timestampPattern     = regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}[T ]\d{2}:\d{2}:\d{2}(\.\d+)?(Z|[+-]\d{2}:\d{2})?\b`)
	unixTimestampPattern = regexp.MustCompile(`\b\d{10,13}\b`)

	hexPattern     = regexp.MustCompile(`\b0x[0-9a-fA-F]+\b`)
	longHexPattern = regexp.MustCompile(`\b[0-9a-fA-F]{16,}\b`)

	filePathPattern    = regexp.MustCompile(`(/[a-zA-Z0-9_.-]+)+`)
	windowsPathPattern = regexp.MustCompile(`[A-Z]:\\[a-zA-Z0-9_.\-\\]+`)

	urlPattern = regexp.MustCompile(`\bhttps?://[a-zA-Z0-9.-]+[a-zA-Z0-9/._?=&-]*\b`)

	emailPattern = regexp.MustCompile(`\b[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}\b`)
)

// Normalize masks the variable parts of a message and case-folds the
// result so that messages differing only in dynamic values or letter
// case collapse to the same key. Patterns apply in a fixed order,
// specific before generic, so normalization is deterministic and
// idempotent.
//
// HTTP status codes are deliberately preserved: "returned 404" and
// "returned 500" stay distinct patterns.
func Normalize(message string) string {
	message = ipv6Pattern.ReplaceAllString(message, "<IP>")
	message = ipv4Pattern.ReplaceAllString(message, "<IP>")
	message = uuidPattern.ReplaceAllString(message, "<UUID>")
	message = timestampPattern.ReplaceAllString(message, "<TIMESTAMP>")
	message = unixTimestampPattern.ReplaceAllString(message, "<TIMESTAMP>")
	message = hexPattern.ReplaceAllString(message, "<HEX>")
	message = longHexPattern.ReplaceAllString(message, "<HEX>")
	message = urlPattern.ReplaceAllString(message, "<URL>")
	message = emailPattern.ReplaceAllString(message, "<EMAIL>")
	message = filePathPattern.ReplaceAllString(message, "<PATH>")
	message = windowsPathPattern.ReplaceAllString(message, "<PATH>")

	message = maskNumbersExceptStatusCodes(message)

	// Fold last so the masking patterns above see the original casing.
	return strings.ToLower(strings.TrimSpace(message))
}

// maskNumbersExceptStatusCodes masks bare numbers unless nearby tokens
// suggest an HTTP status code context.
func maskNumbersExceptStatusCodes(message string) string {
	preserveContexts := []string{
		"status", "code", "http", "returned", "response",
	}

	tokens := strings.Fields(message)

	for i, token := range tokens {
		if !isNumber(token) {
			continue
		}
		shouldMask := true

		// Check surrounding 3 tokens for status code context
		windowStart := max(0, i-3)
		windowEnd := min(len(tokens), i+4)

		for j := windowStart; j < windowEnd && shouldMask; j++ {
			if j == i {
				continue
			}
			lower := strings.ToLower(tokens[j])
			for _, ctx := range preserveContexts {
				if strings.Contains(lower, ctx) {
					shouldMask = false
					break
				}
			}
		}

		if shouldMask {
			tokens[i] = "<NUM>"
		}
	}

	return strings.Join(tokens, " ")
}

func isNumber(s string) bool {
	if len(s) == 0 {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
