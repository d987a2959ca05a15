package service

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("site not found")
	// ErrTemplateNotFound is returned by TemplateRepository.Get.
	ErrTemplateNotFound = errors.New("template not found")
	// ErrConflictDomain means a live site already uses the domain.
	ErrConflictDomain = errors.New("domain already has a site")
	// ErrConflictTemplate means a live template already uses the slug.
	ErrConflictTemplate = errors.New("template slug already exists")
	// ErrInvalidTransition is returned when an operation is not allowed from the current state.
	ErrInvalidTransition = errors.New("invalid site state transition")
	// ErrSiteBusy means another worker holds the site lock.
	ErrSiteBusy = errors.New("site is being processed by another worker")
	// ErrNoCapacity means no hosting server can take the site.
	ErrNoCapacity = errors.New("no hosting server with free capacity")
	// ErrZoneNotFound means the DNS provider has no zone for the domain.
	ErrZoneNotFound = errors.New("dns zone not found")
	// ErrRecordNotFound means no A record exists for the exact domain.
	ErrRecordNotFound = errors.New("dns record not found")
)

// FieldErrors maps request fields to validation issues.
type FieldErrors map[string][]string

func (f FieldErrors) add(field, msg string) {
	f[field] = append(f[field], msg)
}

// ValidationError is returned when the input payload is invalid.
type ValidationError struct {
	Fields FieldErrors
}

func (v *ValidationError) Error() string {
	return "validation error"
}

// DNSAPIError is a provider-rejected or transport-level DNS failure. Code is 0
// for transport failures.
type DNSAPIError struct {
	Code       int
	Message    string
	HTTPStatus int
}

func (e *DNSAPIError) Error() string {
	if e.Code == 0 {
		return "dns api: " + e.Message
	}
	return fmt.Sprintf("dns api error %d: %s", e.Code, e.Message)
}

// ErrorKind groups checkpoint failures for operators and retry decisions.
type ErrorKind string

const (
	KindValidation  ErrorKind = "validation"
	KindExternalAPI ErrorKind = "external_api"
	KindNotFound    ErrorKind = "not_found"
	KindCapacity    ErrorKind = "capacity"
	KindInternal    ErrorKind = "internal"
)

// CheckpointError is returned by Engine.Advance after the failure has been
// persisted on the site.
type CheckpointError struct {
	Checkpoint SetupProgress
	Kind       ErrorKind
	Err        error
}

func (e *CheckpointError) Error() string {
	return fmt.Sprintf("checkpoint %s failed (%s): %v", e.Checkpoint, e.Kind, e.Err)
}

func (e *CheckpointError) Unwrap() error {
	return e.Err
}

// Retryable reports whether re-running the checkpoint can succeed without
// operator changes to input data.
func (e *CheckpointError) Retryable() bool {
	return e.Kind.Retryable()
}

// Retryable is false for validation failures; retrying them repeats the same
// rejection. The empty kind counts as retryable.
func (k ErrorKind) Retryable() bool {
	return k != KindValidation
}

func classify(err error, fallback ErrorKind) ErrorKind {
	var (
		validationErr *ValidationError
		dnsErr        *DNSAPIError
	)
	switch {
	case errors.As(err, &validationErr):
		return KindValidation
	case errors.Is(err, ErrNoCapacity):
		return KindCapacity
	case errors.Is(err, ErrZoneNotFound), errors.Is(err, ErrRecordNotFound), errors.Is(err, ErrTemplateNotFound):
		return KindNotFound
	case errors.As(err, &dnsErr):
		return KindExternalAPI
	default:
		return fallback
	}
}
