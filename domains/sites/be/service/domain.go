package service

import (
	"regexp"
	"strings"
)

var domainPattern = regexp.MustCompile(`^[a-z0-9](?:[a-z0-9-]{0,61}[a-z0-9])?(?:\.[a-z0-9](?:[a-z0-9-]{0,61}[a-z0-9])?)+$`)

// NormalizeDomain lowercases and validates a fully qualified domain name. A
// trailing dot and an accidental scheme are stripped.
func NormalizeDomain(raw string) (string, bool) {
	domain := strings.ToLower(strings.TrimSpace(raw))
	domain = strings.TrimPrefix(domain, "https://")
	domain = strings.TrimPrefix(domain, "http://")
	domain = strings.TrimSuffix(domain, ".")
	if len(domain) == 0 || len(domain) > 253 {
		return "", false
	}
	if !domainPattern.MatchString(domain) {
		return "", false
	}
	return domain, true
}
