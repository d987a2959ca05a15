package persistence

import (
	"regexp"
	"strings"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// SlugError reports a template slug that cannot be normalized.
type SlugError struct {
	Input  string
	Reason string
}

func (e *SlugError) Error() string {
	if e.Input == "" {
		return e.Reason
	}
	return "invalid slug " + `"` + e.Input + `": ` + e.Reason
}

// NormalizeSlug trims whitespace, lowercases the value, and ensures it matches
// the canonical URL-safe slug pattern used for template identifiers.
func NormalizeSlug(input string) (string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", &SlugError{Reason: "slug is required"}
	}

	normalized := strings.ToLower(trimmed)
	if !slugPattern.MatchString(normalized) {
		return "", &SlugError{Input: input, Reason: "must match ^[a-z0-9]+(?:-[a-z0-9]+)*$"}
	}

	return normalized, nil
}
