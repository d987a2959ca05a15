package problems

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteEncodesProblem(t *testing.T) {
	rec := httptest.NewRecorder()
	Write(rec, New(http.StatusConflict, "Conflict", "domain already has a site", TypeConflict, nil))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, ContentType, rec.Header().Get("Content-Type"))

	var body ProblemDetails
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, TypeConflict, body.Type)
	assert.Equal(t, "domain already has a site", body.Detail)
	assert.Nil(t, body.Errors)
}

func TestBadRequestCarriesFieldErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	BadRequest(rec, "validation failed", map[string][]string{"domain": {"domain is required"}})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{
		"type": "https://palmyra.pro/problems/validation-error",
		"title": "Invalid request",
		"status": 400,
		"detail": "validation failed",
		"errors": {"domain": ["domain is required"]}
	}`, rec.Body.String())
}

func TestWriteDefaultsStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	Write(rec, ProblemDetails{Title: "Internal error"})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
