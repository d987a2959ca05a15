package requesttrace

import (
	"context"
	"errors"
	"strings"
)

type contextKey string

const (
	ctxAuditInfo contextKey = "HOSTING_REQUEST_TRACE"
)

// ActorKind represents who initiated an operation.
type ActorKind string

const (
	ActorKindOperator  ActorKind = "operator"
	ActorKindAnonymous ActorKind = "anonymous"
	ActorKindSystem    ActorKind = "system"
)

// AuditInfo captures request-scoped metadata needed for traceability and auditing.
// Operator is set only when ActorKind is operator. RequestID is optional but encouraged.
type AuditInfo struct {
	ActorKind ActorKind
	Operator  *string
	RequestID string
}

// Actor returns a printable identity for logs.
func (a AuditInfo) Actor() string {
	if a.Operator != nil {
		return string(a.ActorKind) + ":" + *a.Operator
	}
	return string(a.ActorKind)
}

// IntoContext stores the AuditInfo in the provided context.
func IntoContext(ctx context.Context, audit AuditInfo) context.Context {
	return context.WithValue(ctx, ctxAuditInfo, audit)
}

// FromContext extracts the AuditInfo from context, returning false when not present.
func FromContext(ctx context.Context) (AuditInfo, bool) {
	if ctx == nil {
		return AuditInfo{}, false
	}
	v := ctx.Value(ctxAuditInfo)
	if v == nil {
		return AuditInfo{}, false
	}

	audit, ok := v.(AuditInfo)
	return audit, ok
}

// FromContextOrAnonymous returns the AuditInfo stored on the context, or an anonymous record when absent.
func FromContextOrAnonymous(ctx context.Context) AuditInfo {
	if audit, ok := FromContext(ctx); ok {
		return audit
	}
	return Anonymous("")
}

// FromOperator builds an AuditInfo for a named operator (CLI user or admin API caller).
func FromOperator(operator, requestID string) (AuditInfo, error) {
	operator = strings.TrimSpace(operator)
	if operator == "" {
		return AuditInfo{}, errors.New("operator is required to build audit info")
	}
	return AuditInfo{
		ActorKind: ActorKindOperator,
		Operator:  &operator,
		RequestID: requestID,
	}, nil
}

// Anonymous builds an AuditInfo for requests that carry no operator identity.
func Anonymous(requestID string) AuditInfo {
	return AuditInfo{ActorKind: ActorKindAnonymous, RequestID: requestID}
}

// System builds an AuditInfo for background operations such as the setup sweeper.
func System(requestID string) AuditInfo {
	return AuditInfo{ActorKind: ActorKindSystem, RequestID: requestID}
}
