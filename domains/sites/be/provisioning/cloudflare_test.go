package provisioning

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zenGate-Global/palmyra-hosting/domains/sites/be/service"
)

func writeEnvelope(t *testing.T, w http.ResponseWriter, status int, success bool, result any, errs ...apiError) {
	t.Helper()
	raw, err := json.Marshal(result)
	assert.NoError(t, err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	assert.NoError(t, json.NewEncoder(w).Encode(envelope{Success: success, Errors: errs, Result: raw}))
}

func newTestCloudflare(t *testing.T, srv *httptest.Server, zoneID string) *CloudflareDNS {
	t.Helper()
	dns, err := NewCloudflareDNS(CloudflareConfig{
		APIToken:      "token-123",
		ZoneID:        zoneID,
		BaseURL:       srv.URL,
		RetryAttempts: 3,
		RetryDelay:    time.Millisecond,
		RetryMaxDelay: 2 * time.Millisecond,
	}, srv.Client(), nil)
	require.NoError(t, err)
	return dns
}

func TestNewCloudflareDNSRequiresToken(t *testing.T) {
	_, err := NewCloudflareDNS(CloudflareConfig{APIToken: "  "}, nil, nil)
	require.Error(t, err)
}

func TestResolveZoneUsesConfiguredZone(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()

	dns := newTestCloudflare(t, srv, "zone-static")
	zoneID, err := dns.ResolveZone(context.Background(), "blog.example.com")
	require.NoError(t, err)
	assert.Equal(t, "zone-static", zoneID)
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestResolveZoneLooksUpBaseDomain(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/zones", r.URL.Path)
		assert.Equal(t, "example.com", r.URL.Query().Get("name"))
		assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))
		writeEnvelope(t, w, http.StatusOK, true, []zone{{ID: "zone-1", Name: "example.com"}})
	}))
	defer srv.Close()

	zoneID, err := newTestCloudflare(t, srv, "").ResolveZone(context.Background(), "blog.example.com")
	require.NoError(t, err)
	assert.Equal(t, "zone-1", zoneID)
}

func TestResolveZoneNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, http.StatusOK, true, []zone{})
	}))
	defer srv.Close()

	_, err := newTestCloudflare(t, srv, "").ResolveZone(context.Background(), "example.com")
	require.ErrorIs(t, err, service.ErrZoneNotFound)
}

func TestGetRecordFiltersExactNameAndType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/zones/zone-1/dns_records", r.URL.Path)
		assert.Equal(t, "example.com", r.URL.Query().Get("name"))
		writeEnvelope(t, w, http.StatusOK, true, []record{
			{ID: "r-sub", Type: "A", Name: "www.example.com", Content: "10.0.0.9"},
			{ID: "r-txt", Type: "TXT", Name: "example.com", Content: "v=spf1"},
			{ID: "r-a", Type: "A", Name: "example.com", Content: "10.0.0.1", Proxied: true},
		})
	}))
	defer srv.Close()

	rec, err := newTestCloudflare(t, srv, "zone-1").GetRecord(context.Background(), "example.com")
	require.NoError(t, err)
	assert.Equal(t, "r-a", rec.ID)
	assert.Equal(t, "zone-1", rec.ZoneID)
	assert.Equal(t, "10.0.0.1", rec.Content)
	assert.True(t, rec.Proxied)
}

func TestGetRecordTakesFirstOfSeveral(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, http.StatusOK, true, []record{
			{ID: "first", Type: "A", Name: "example.com", Content: "10.0.0.1"},
			{ID: "second", Type: "A", Name: "example.com", Content: "10.0.0.2"},
		})
	}))
	defer srv.Close()

	rec, err := newTestCloudflare(t, srv, "zone-1").GetRecord(context.Background(), "example.com")
	require.NoError(t, err)
	assert.Equal(t, "first", rec.ID)
}

func TestGetRecordNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, http.StatusOK, true, []record{{ID: "x", Type: "CNAME", Name: "example.com"}})
	}))
	defer srv.Close()

	_, err := newTestCloudflare(t, srv, "zone-1").GetRecord(context.Background(), "example.com")
	require.ErrorIs(t, err, service.ErrRecordNotFound)
}

func TestCreateARecordSendsProxiedA(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/zones/zone-1/dns_records", r.URL.Path)
		var body createRecordRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, createRecordRequest{Type: "A", Name: "example.com", Content: "203.0.113.7", Proxied: true}, body)
		writeEnvelope(t, w, http.StatusOK, true, record{ID: "new", Type: "A", Name: "example.com", Content: "203.0.113.7", Proxied: true})
	}))
	defer srv.Close()

	rec, err := newTestCloudflare(t, srv, "zone-1").CreateARecord(context.Background(), "example.com", "203.0.113.7")
	require.NoError(t, err)
	assert.Equal(t, "new", rec.ID)
	assert.Equal(t, "203.0.113.7", rec.Content)
}

func TestProviderErrorMapsToDNSAPIErrorWithoutRetry(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		writeEnvelope(t, w, http.StatusBadRequest, false, nil, apiError{Code: 81057, Message: "record already exists"})
	}))
	defer srv.Close()

	_, err := newTestCloudflare(t, srv, "zone-1").CreateARecord(context.Background(), "example.com", "203.0.113.7")
	var apiErr *service.DNSAPIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 81057, apiErr.Code)
	assert.Equal(t, "record already exists", apiErr.Message)
	assert.Equal(t, http.StatusBadRequest, apiErr.HTTPStatus)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestTransientFailuresAreRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch atomic.AddInt32(&calls, 1) {
		case 1:
			writeEnvelope(t, w, http.StatusInternalServerError, false, nil, apiError{Code: 1000, Message: "internal"})
		case 2:
			writeEnvelope(t, w, http.StatusTooManyRequests, false, nil, apiError{Code: 10000, Message: "rate limited"})
		default:
			writeEnvelope(t, w, http.StatusOK, true, []record{{ID: "r-a", Type: "A", Name: "example.com", Content: "10.0.0.1"}})
		}
	}))
	defer srv.Close()

	rec, err := newTestCloudflare(t, srv, "zone-1").GetRecord(context.Background(), "example.com")
	require.NoError(t, err)
	assert.Equal(t, "r-a", rec.ID)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestRetriesExhaustedReturnsLastError(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		writeEnvelope(t, w, http.StatusServiceUnavailable, false, nil, apiError{Code: 7, Message: "unavailable"})
	}))
	defer srv.Close()

	_, err := newTestCloudflare(t, srv, "zone-1").GetRecord(context.Background(), "example.com")
	var apiErr *service.DNSAPIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.HTTPStatus)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestCreateARecordIsSentOnceOnTransientFailure(t *testing.T) {
	var posts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		if atomic.AddInt32(&posts, 1) == 1 {
			writeEnvelope(t, w, http.StatusBadGateway, false, nil, apiError{Code: 1000, Message: "bad gateway"})
			return
		}
		writeEnvelope(t, w, http.StatusOK, true, record{ID: "r-dup", Type: "A", Name: "example-site42.com", Content: "10.0.0.1"})
	}))
	defer srv.Close()

	_, err := newTestCloudflare(t, srv, "zone-1").CreateARecord(context.Background(), "example-site42.com", "10.0.0.1")
	var apiErr *service.DNSAPIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.HTTPStatus)
	assert.Equal(t, int32(1), atomic.LoadInt32(&posts))
}

func TestMalformedBodyIsDNSAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("<html>nope</html>"))
	}))
	defer srv.Close()

	_, err := newTestCloudflare(t, srv, "zone-1").GetRecord(context.Background(), "example.com")
	var apiErr *service.DNSAPIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.HTTPStatus)
}

func TestBaseDomain(t *testing.T) {
	assert.Equal(t, "example.com", BaseDomain("example.com"))
	assert.Equal(t, "example.com", BaseDomain("a.b.example.com."))
	assert.Equal(t, "localhost", BaseDomain("localhost"))
}
