// Package normalize canonicalizes program output before comparison.
package normalize

import "strings"

// Options control how much of the raw text is significant.
type Options struct {
	IgnoreWhitespace bool `json:"ignoreWhitespace"`
	IgnoreCase       bool `json:"ignoreCase"`
}

// Normalize canonicalizes text under the given options. With
// IgnoreWhitespace every whitespace run (newlines included) collapses to a
// single space and the result is trimmed; otherwise only leading and
// trailing whitespace is removed. IgnoreCase lowercases the result after
// whitespace handling. The function is pure and idempotent.
func Normalize(text string, opts Options) string {
	var out string
	if opts.IgnoreWhitespace {
		out = strings.Join(strings.Fields(text), " ")
	} else {
		out = strings.TrimSpace(text)
	}
	if opts.IgnoreCase {
		out = strings.ToLower(out)
	}
	return out
}

// Equal is the only pass/fail comparison used anywhere: normalized equality
// of actual and expected text. With IgnoreWhitespace set it is insensitive
// to the trailing newline sandbox stdout usually carries.
func Equal(actual, expected string, opts Options) bool {
	return Normalize(actual, opts) == Normalize(expected, opts)
}
