// Package classify decides whether captured text reports an error.
package classify

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

var vocabulary = []string{
	"error",
	"failed",
	"fatal",
	"exception",
	"traceback",
	"panic",
	"segmentation fault",
	"permission denied",
	"command not found",
}

// reError matches any vocabulary term as a whole word, ignoring case.
var reError = regexp.MustCompile(`(?i)\b(` + strings.Join(vocabulary, "|") + `)\b`)

// Vocabulary returns a copy of the error-indicating terms.
func Vocabulary() []string {
	return append([]string(nil), vocabulary...)
}

// Matches reports whether text contains an error-indicating term.
func Matches(text string) bool {
	return reError.MatchString(text)
}

// Match returns the first error-indicating term in text, lowercased.
func Match(text string) (string, bool) {
	m := reError.FindString(text)
	if m == "" {
		return "", false
	}
	return strings.ToLower(m), true
}

// Sanitize strips ANSI escape sequences so colored output such as
// "\x1b[31merror\x1b[0m" still has word boundaries around the term.
func Sanitize(text string) string {
	return ansi.Strip(text)
}
