package provisioning

import (
	"context"

	"github.com/zenGate-Global/palmyra-hosting/domains/sites/be/service"
	"github.com/zenGate-Global/palmyra-hosting/platform/go/httpcheck"
)

// HTTPSCheck adapts httpcheck.Checker to the sites service.
type HTTPSCheck struct {
	checker *httpcheck.Checker
}

var _ service.HTTPSChecker = (*HTTPSCheck)(nil)

// NewHTTPSCheck wraps checker; nil uses httpcheck defaults.
func NewHTTPSCheck(checker *httpcheck.Checker) *HTTPSCheck {
	if checker == nil {
		checker = httpcheck.New()
	}
	return &HTTPSCheck{checker: checker}
}

// Check implements service.HTTPSChecker.
func (p *HTTPSCheck) Check(ctx context.Context, url string) service.HTTPSCheckResult {
	res := p.checker.Check(ctx, url)
	return service.HTTPSCheckResult{
		URL:        res.URL,
		Working:    res.Working,
		StatusCode: res.StatusCode,
		Error:      res.Error,
		CheckedAt:  res.CheckedAt,
	}
}
