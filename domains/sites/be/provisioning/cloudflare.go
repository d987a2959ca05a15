package provisioning

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-querystring/query"
	"github.com/juju/clock"
	"github.com/juju/retry"
	"go.uber.org/zap"

	"github.com/zenGate-Global/palmyra-hosting/domains/sites/be/service"
)

// DefaultCloudflareBaseURL is the public v4 API endpoint.
const DefaultCloudflareBaseURL = "https://api.cloudflare.com/client/v4"

// CloudflareConfig configures CloudflareDNS. A non-empty ZoneID skips zone lookup.
type CloudflareConfig struct {
	APIToken string
	ZoneID   string
	BaseURL  string
	// Timeout bounds each HTTP attempt.
	Timeout time.Duration
	// RetryAttempts covers 429, 5xx and transport failures on reads. Creates
	// are sent once; the engine looks the record up before creating again.
	// 1 disables retries.
	RetryAttempts int
	RetryDelay    time.Duration
	RetryMaxDelay time.Duration
	// Clock drives retry delays; defaults to the wall clock.
	Clock clock.Clock
}

func (c CloudflareConfig) withDefaults() CloudflareConfig {
	if c.BaseURL == "" {
		c.BaseURL = DefaultCloudflareBaseURL
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}
	if c.RetryAttempts < 1 {
		c.RetryAttempts = 3
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = 500 * time.Millisecond
	}
	if c.RetryMaxDelay <= 0 {
		c.RetryMaxDelay = 5 * time.Second
	}
	if c.Clock == nil {
		c.Clock = clock.WallClock
	}
	return c
}

// CloudflareDNS implements service.DNSProvider against the Cloudflare v4 API.
// It is stateless and safe for concurrent use.
type CloudflareDNS struct {
	cfg        CloudflareConfig
	httpClient *http.Client
	logger     *zap.Logger
}

var _ service.DNSProvider = (*CloudflareDNS)(nil)

// NewCloudflareDNS builds a client. httpClient may be nil.
func NewCloudflareDNS(cfg CloudflareConfig, httpClient *http.Client, logger *zap.Logger) (*CloudflareDNS, error) {
	if strings.TrimSpace(cfg.APIToken) == "" {
		return nil, errors.New("cloudflare api token is required")
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CloudflareDNS{cfg: cfg.withDefaults(), httpClient: httpClient, logger: logger}, nil
}

type envelope struct {
	Success bool            `json:"success"`
	Errors  []apiError      `json:"errors"`
	Result  json.RawMessage `json:"result"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type zone struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type record struct {
	ID      string `json:"id"`
	ZoneID  string `json:"zone_id"`
	Type    string `json:"type"`
	Name    string `json:"name"`
	Content string `json:"content"`
	Proxied bool   `json:"proxied"`
}

type createRecordRequest struct {
	Type    string `json:"type"`
	Name    string `json:"name"`
	Content string `json:"content"`
	Proxied bool   `json:"proxied"`
}

type zoneQuery struct {
	Name string `url:"name"`
}

type recordQuery struct {
	Name  string `url:"name"`
	Match string `url:"match"`
}

// ResolveZone returns the configured zone id, or looks up the zone of the
// registrable base domain (last two labels).
func (c *CloudflareDNS) ResolveZone(ctx context.Context, domain string) (string, error) {
	if c.cfg.ZoneID != "" {
		return c.cfg.ZoneID, nil
	}

	base := BaseDomain(domain)
	var zones []zone
	if err := c.call(ctx, http.MethodGet, "/zones", zoneQuery{Name: base}, nil, &zones); err != nil {
		return "", fmt.Errorf("list zones for %s: %w", base, err)
	}
	if len(zones) == 0 {
		return "", fmt.Errorf("%w: %s", service.ErrZoneNotFound, base)
	}
	return zones[0].ID, nil
}

// GetRecord returns the first A record whose name equals domain exactly. The
// API name filter is loose, so the comparison is repeated here.
func (c *CloudflareDNS) GetRecord(ctx context.Context, domain string) (service.DNSRecord, error) {
	zoneID, err := c.ResolveZone(ctx, domain)
	if err != nil {
		return service.DNSRecord{}, err
	}

	var records []record
	path := "/zones/" + zoneID + "/dns_records"
	if err := c.call(ctx, http.MethodGet, path, recordQuery{Name: domain, Match: "all"}, nil, &records); err != nil {
		return service.DNSRecord{}, fmt.Errorf("list dns records for %s: %w", domain, err)
	}

	var matches []record
	for _, r := range records {
		if strings.EqualFold(strings.TrimSuffix(r.Name, "."), domain) && r.Type == "A" {
			matches = append(matches, r)
		}
	}
	if len(matches) == 0 {
		return service.DNSRecord{}, fmt.Errorf("%w: %s", service.ErrRecordNotFound, domain)
	}
	if len(matches) > 1 {
		c.logger.Warn("multiple A records for domain, using the first",
			zap.String("domain", domain),
			zap.Int("count", len(matches)),
			zap.String("dns_record_id", matches[0].ID),
		)
	}
	return toDNSRecord(matches[0], zoneID), nil
}

// CreateARecord creates a proxied A record with the provider's default TTL.
// Callers must check GetRecord first.
func (c *CloudflareDNS) CreateARecord(ctx context.Context, domain, ip string) (service.DNSRecord, error) {
	zoneID, err := c.ResolveZone(ctx, domain)
	if err != nil {
		return service.DNSRecord{}, err
	}

	body := createRecordRequest{Type: "A", Name: domain, Content: ip, Proxied: true}
	var created record
	if err := c.call(ctx, http.MethodPost, "/zones/"+zoneID+"/dns_records", nil, body, &created); err != nil {
		return service.DNSRecord{}, fmt.Errorf("create A record for %s: %w", domain, err)
	}
	return toDNSRecord(created, zoneID), nil
}

// call performs one API request and decodes the envelope result into out.
// GET requests are retried on transient failures; anything else is sent once
// because a lost response may hide a committed write.
func (c *CloudflareDNS) call(ctx context.Context, method, path string, params, body, out any) error {
	url := c.cfg.BaseURL + path
	if params != nil {
		values, err := query.Values(params)
		if err != nil {
			return fmt.Errorf("encode query: %w", err)
		}
		url += "?" + values.Encode()
	}

	var payload []byte
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode body: %w", err)
		}
		payload = encoded
	}

	attempts := c.cfg.RetryAttempts
	if method != http.MethodGet {
		attempts = 1
	}

	var result json.RawMessage
	err := retry.Call(retry.CallArgs{
		Func: func() error {
			raw, err := c.do(ctx, method, url, payload)
			result = raw
			return err
		},
		IsFatalError: func(err error) bool {
			return ctx.Err() != nil || !isTransient(err)
		},
		NotifyFunc: func(err error, attempt int) {
			c.logger.Debug("cloudflare request failed, retrying",
				zap.String("method", method),
				zap.String("path", path),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
		},
		Attempts:    attempts,
		Delay:       c.cfg.RetryDelay,
		MaxDelay:    c.cfg.RetryMaxDelay,
		BackoffFunc: retry.DoubleDelay,
		Clock:       c.cfg.Clock,
		Stop:        ctx.Done(),
	})
	if err != nil {
		if retry.IsAttemptsExceeded(err) || retry.IsRetryStopped(err) {
			err = retry.LastError(err)
		}
		var apiErr *service.DNSAPIError
		if errors.As(err, &apiErr) {
			c.logger.Error("cloudflare api error",
				zap.String("method", method),
				zap.String("path", path),
				zap.Int("http_status", apiErr.HTTPStatus),
				zap.Int("code", apiErr.Code),
				zap.String("provider_message", apiErr.Message),
			)
		}
		return err
	}

	if out == nil || len(result) == 0 {
		return nil
	}
	if err := json.Unmarshal(result, out); err != nil {
		return &service.DNSAPIError{Message: "decode result: " + err.Error()}
	}
	return nil
}

func (c *CloudflareDNS) do(ctx context.Context, method, url string, payload []byte) (json.RawMessage, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(attemptCtx, method, url, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &service.DNSAPIError{Message: err.Error()}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &service.DNSAPIError{HTTPStatus: resp.StatusCode, Message: "read response: " + err.Error()}
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &service.DNSAPIError{
			HTTPStatus: resp.StatusCode,
			Message:    fmt.Sprintf("decode response (status %d): %v", resp.StatusCode, err),
		}
	}

	if !env.Success || resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &service.DNSAPIError{HTTPStatus: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		if len(env.Errors) > 0 {
			apiErr.Code = env.Errors[0].Code
			apiErr.Message = env.Errors[0].Message
		}
		return nil, apiErr
	}
	return env.Result, nil
}

// isTransient reports whether a failed request is worth repeating.
func isTransient(err error) bool {
	var apiErr *service.DNSAPIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch {
	case apiErr.HTTPStatus == 0:
		return true
	case apiErr.HTTPStatus == http.StatusTooManyRequests:
		return true
	case apiErr.HTTPStatus >= 500:
		return true
	default:
		return false
	}
}

// BaseDomain returns the last two labels of a dotted name.
func BaseDomain(domain string) string {
	labels := strings.Split(strings.TrimSuffix(domain, "."), ".")
	if len(labels) <= 2 {
		return strings.Join(labels, ".")
	}
	return strings.Join(labels[len(labels)-2:], ".")
}

func toDNSRecord(r record, zoneID string) service.DNSRecord {
	if r.ZoneID != "" {
		zoneID = r.ZoneID
	}
	return service.DNSRecord{
		ID:      r.ID,
		ZoneID:  zoneID,
		Type:    r.Type,
		Name:    r.Name,
		Content: r.Content,
		Proxied: r.Proxied,
	}
}
