// Package httpcheck performs outbound HTTPS reachability checks for hosted sites.
package httpcheck

import (
	"context"
	"crypto/tls"
	"net/http"
	"time"
)

// DefaultTimeout bounds a single check.
const DefaultTimeout = 10 * time.Second

// Result describes one check.
type Result struct {
	URL        string
	Working    bool
	StatusCode int
	Error      string
	CheckedAt  time.Time
}

// Checker issues HEAD requests with certificate verification and without
// following redirects.
type Checker struct {
	client  *http.Client
	timeout time.Duration
	now     func() time.Time
}

// Option customises a Checker.
type Option func(*Checker)

// WithTransport replaces the HTTP transport, e.g. to trust a test CA.
func WithTransport(rt http.RoundTripper) Option {
	return func(p *Checker) { p.client.Transport = rt }
}

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(p *Checker) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// New returns a Checker.
func New(opts ...Option) *Checker {
	p := &Checker{
		client: &http.Client{
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{MinVersion: tls.VersionTLS12},
				Proxy:           http.ProxyFromEnvironment,
			},
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		timeout: DefaultTimeout,
		now:     func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Working reports whether the status code counts as a live site.
func Working(status int) bool {
	switch status {
	case http.StatusOK, http.StatusMovedPermanently, http.StatusFound:
		return true
	default:
		return false
	}
}

// Check never returns an error; failures are reported in the Result.
func (p *Checker) Check(ctx context.Context, url string) Result {
	res := Result{URL: url, CheckedAt: p.now()}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	resp, err := p.client.Do(req)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	defer func() { _ = resp.Body.Close() }()

	res.StatusCode = resp.StatusCode
	res.Working = Working(resp.StatusCode)
	return res
}
