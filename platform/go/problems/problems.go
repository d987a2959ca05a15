// Package problems writes RFC 7807 problem detail responses.
package problems

import (
	"encoding/json"
	"net/http"
)

// ContentType is the media type of problem responses.
const ContentType = "application/problem+json"

// Problem type URIs shared by every handler.
const (
	TypeValidation   = "https://palmyra.pro/problems/validation-error"
	TypeUnauthorized = "https://palmyra.pro/problems/unauthorized"
	TypeNotFound     = "https://palmyra.pro/problems/not-found"
	TypeConflict     = "https://palmyra.pro/problems/conflict"
	TypeCapacity     = "https://palmyra.pro/problems/no-capacity"
	TypeUpstream     = "https://palmyra.pro/problems/upstream-error"
	TypeInternal     = "https://palmyra.pro/problems/internal-error"
)

// ProblemDetails is the RFC 7807 body. Errors carries per-field validation messages.
type ProblemDetails struct {
	Type     string              `json:"type,omitempty"`
	Title    string              `json:"title"`
	Status   int                 `json:"status"`
	Detail   string              `json:"detail,omitempty"`
	Instance string              `json:"instance,omitempty"`
	Errors   map[string][]string `json:"errors,omitempty"`
}

// New builds a problem.
func New(status int, title, detail, problemType string, errs map[string][]string) ProblemDetails {
	return ProblemDetails{
		Type:   problemType,
		Title:  title,
		Status: status,
		Detail: detail,
		Errors: errs,
	}
}

// Write encodes problem with its status code.
func Write(w http.ResponseWriter, problem ProblemDetails) {
	if problem.Status == 0 {
		problem.Status = http.StatusInternalServerError
	}
	w.Header().Set("Content-Type", ContentType)
	w.WriteHeader(problem.Status)
	_ = json.NewEncoder(w).Encode(problem)
}

// BadRequest writes a 400 validation problem.
func BadRequest(w http.ResponseWriter, detail string, errs map[string][]string) {
	Write(w, New(http.StatusBadRequest, "Invalid request", detail, TypeValidation, errs))
}
