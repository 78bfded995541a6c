package utils

import "unicode"

// IsLowerAlpha reports whether every byte of s is in 'a'..'z'.
// The empty string passes.
func IsLowerAlpha(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return false
		}
	}
	return true
}

// IsSeparator checks if a rune is a separator character
func IsSeparator(r rune) bool {
	return r == ' ' || r == '_' || r == '-' || r == '.' || r == '/'
}

// ContainsNumbers checks if a string contains any numeric digits
func ContainsNumbers(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// ContainsSpecialChars checks if a string contains special characters
// (non-alphanumeric characters excluding common separators)
func ContainsSpecialChars(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !IsSeparator(r) {
			return true
		}
	}
	return false
}

// IsValidInput checks if a typed prompt should be sent to the completer.
// It rejects anything NormalizeSentence cannot turn into a lowercase a-z string.
func IsValidInput(s string) bool {
	if ContainsNumbers(s) || ContainsSpecialChars(s) {
		return false
	}
	normalized, ok := NormalizeSentence(s)
	return ok && IsLowerAlpha(normalized)
}
