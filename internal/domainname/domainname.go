// Package domainname provides pure syntactic validation of candidate domain
// names. It performs no network calls and holds no state; malformed input is
// reported as invalid, never as an error.
package domainname

import "strings"

const (
	maxDomainLength = 253
	maxLabelLength  = 63
)

// IsValid reports whether s is a syntactically plausible registrable domain:
// at most 253 bytes, at least two dot-separated labels, each label 1-63
// characters from [a-z0-9-] (case-insensitive) with no leading or trailing
// hyphen.
func IsValid(s string) bool {
	if s == "" || len(s) > maxDomainLength {
		return false
	}
	labels := strings.Split(strings.ToLower(s), ".")
	if len(labels) < 2 {
		return false
	}
	for _, label := range labels {
		if !validLabel(label) {
			return false
		}
	}
	return true
}

func validLabel(label string) bool {
	if len(label) == 0 || len(label) > maxLabelLength {
		return false
	}
	if label[0] == '-' || label[len(label)-1] == '-' {
		return false
	}
	for i := 0; i < len(label); i++ {
		c := label[i]
		if c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '-' {
			continue
		}
		return false
	}
	return true
}

// TLD returns the final label of s, lowercased. It assumes s has already
// passed IsValid; for malformed input it returns an empty string.
func TLD(s string) string {
	idx := strings.LastIndex(s, ".")
	if idx < 0 || idx == len(s)-1 {
		return ""
	}
	return strings.ToLower(s[idx+1:])
}

// Normalize lowercases and trims surrounding whitespace so counters and
// upstream lookups see a canonical form.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
