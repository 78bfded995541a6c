package utils

import "strings"

// NormalizeSentence trims surrounding whitespace and lowercases ASCII letters.
// The second value is false when the result still holds bytes outside a-z.
func NormalizeSentence(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	return s, IsLowerAlpha(s)
}
