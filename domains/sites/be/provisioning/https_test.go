package provisioning

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zenGate-Global/palmyra-hosting/platform/go/httpcheck"
)

func TestHTTPSCheckMapsResult(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusFound)
	}))
	defer srv.Close()

	check := NewHTTPSCheck(httpcheck.New(httpcheck.WithTransport(srv.Client().Transport)))
	res := check.Check(context.Background(), srv.URL)
	assert.True(t, res.Working)
	assert.Equal(t, http.StatusFound, res.StatusCode)
	assert.Equal(t, srv.URL, res.URL)
}
