package model

import "strings"

// Identity is the per-user key that a MetricRecord is stored under.
// It is always an email address in normalized form.
type Identity string

// NormalizeIdentity trims surrounding whitespace and lower-cases the input.
// Applying it twice yields the same result as applying it once.
func NormalizeIdentity(raw string) Identity {
	return Identity(strings.ToLower(strings.TrimSpace(raw)))
}

// String returns the identity as a plain string.
func (i Identity) String() string {
	return string(i)
}

// IsZero reports whether the identity is empty.
func (i Identity) IsZero() bool {
	return i == ""
}
