package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	hostingapi "github.com/zenGate-Global/palmyra-hosting/generated/go/hosting"
	"github.com/zenGate-Global/palmyra-hosting/platform/go/problems"
)

func TestValidateOperatorViaContract(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/servers", nil)
	input := &openapi3filter.AuthenticationInput{
		RequestValidationInput: &openapi3filter.RequestValidationInput{Request: req},
		SecuritySchemeName:     OperatorSecurityScheme,
	}

	require.Error(t, ValidateOperatorViaContract(context.Background(), input))

	req.Header.Set(OperatorHeader, "ops")
	require.NoError(t, ValidateOperatorViaContract(context.Background(), input))
}

func TestValidateOperatorIgnoresOtherSchemes(t *testing.T) {
	input := &openapi3filter.AuthenticationInput{
		RequestValidationInput: &openapi3filter.RequestValidationInput{},
		SecuritySchemeName:     "somethingElse",
	}
	require.NoError(t, ValidateOperatorViaContract(context.Background(), input))
	require.NoError(t, ValidateOperatorViaContract(context.Background(), nil))
}

func TestContractValidatorEnforcesHostingContract(t *testing.T) {
	spec, err := hostingapi.GetSwagger()
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Use(ContractValidator(spec))
	r.Post("/api/v1/sites", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	r.Get("/api/v1/sites/{siteId}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	validBody := `{"userId":"` + uuid.NewString() + `","templateId":"` + uuid.NewString() + `","domain":"shop.example.com"}`

	t.Run("missing operator header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/sites", strings.NewReader(validBody))
		req.Header.Set("Content-Type", "application/json")
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)
		require.Equal(t, http.StatusUnauthorized, resp.Code)
		require.Equal(t, problems.ContentType, resp.Header().Get("Content-Type"))
	})

	t.Run("unknown body field", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/sites", strings.NewReader(`{"domain":"shop.example.com","extra":1}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(OperatorHeader, "ops")
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)
		require.Equal(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("valid request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/sites", strings.NewReader(validBody))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(OperatorHeader, "ops")
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)
		require.Equal(t, http.StatusCreated, resp.Code)
	})

	t.Run("reads need no operator", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/sites/"+uuid.NewString(), nil)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)
		require.Equal(t, http.StatusOK, resp.Code)
	})
}
