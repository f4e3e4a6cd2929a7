package common

import "strings"

// HasAny returns true if s contains any of the substrings.
func HasAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// CutAnySuffix removes the first matching suffix from s and reports which one it was.
// If none of the suffixes match, s is returned unchanged with an empty suffix.
func CutAnySuffix(s string, suffixes ...string) (string, string) {
	for _, suf := range suffixes {
		if base, ok := strings.CutSuffix(s, suf); ok {
			return base, suf
		}
	}
	return s, ""
}
