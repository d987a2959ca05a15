package scheduler

import (
	"time"

	"github.com/zenGate-Global/palmyra-hosting/domains/sites/be/service"
)

// RetryPolicy bounds automatic retries of SetupError sites. Attempt n waits
// BaseDelay*2^(n-1), capped at MaxDelay, after the last attempt.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// DefaultRetryPolicy returns the policy used when none is configured.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 5, BaseDelay: 30 * time.Second, MaxDelay: 30 * time.Minute}
}

// Backoff returns the wait after the given number of failed attempts.
func (p RetryPolicy) Backoff(attempts int) time.Duration {
	if attempts <= 0 {
		return 0
	}
	delay := p.BaseDelay
	for i := 1; i < attempts; i++ {
		delay *= 2
		if p.MaxDelay > 0 && delay >= p.MaxDelay {
			return p.MaxDelay
		}
	}
	if p.MaxDelay > 0 && delay > p.MaxDelay {
		return p.MaxDelay
	}
	return delay
}

// Exhausted reports whether the site is out of automatic retries: its attempts
// reached MaxAttempts or the last failure is not retryable. Either way the site
// waits for an operator reset.
func (p RetryPolicy) Exhausted(site service.Site) bool {
	if site.Status != service.StatusSetupError {
		return false
	}
	if !site.LastErrorKind.Retryable() {
		return true
	}
	return p.MaxAttempts > 0 && site.SetupAttempts >= p.MaxAttempts
}

// Due reports whether the sweeper should advance the site now. Sites waiting
// for their next checkpoint are always due; failed sites are due once their
// backoff elapsed and they have attempts left.
func (p RetryPolicy) Due(site service.Site, now time.Time) bool {
	switch site.Status {
	case service.StatusSetupPending, service.StatusSetupInProgress:
		return true
	case service.StatusSetupError:
		if p.Exhausted(site) {
			return false
		}
		if site.LastAttemptAt == nil {
			return true
		}
		return !now.Before(site.LastAttemptAt.Add(p.Backoff(site.SetupAttempts)))
	default:
		return false
	}
}
