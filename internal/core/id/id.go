// Package id generates identifiers for client-side placeholders.
package id

import (
	"github.com/google/uuid"
)

// PlaceholderPrefix marks identifiers generated on the client for records
// the server sent without one.
const PlaceholderPrefix = "temp-"

// New generates a new UUIDv7 string (time-ordered).
func New() string {
	v, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return v.String()
}

// Placeholder returns a unique temporary identifier such as "temp-0190...".
func Placeholder() string {
	return PlaceholderPrefix + New()
}

// IsPlaceholder reports whether s was produced by Placeholder.
func IsPlaceholder(s string) bool {
	return len(s) > len(PlaceholderPrefix) && s[:len(PlaceholderPrefix)] == PlaceholderPrefix
}
