package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	platformlogging "github.com/zenGate-Global/palmyra-hosting/platform/go/logging"
	"github.com/zenGate-Global/palmyra-hosting/platform/go/requesttrace"
)

// OperatorHeader names the operator performing an administrative call.
const OperatorHeader = "X-Operator"

// RequestTrace populates the context with request-scoped AuditInfo so services can attribute
// status transitions. Requests without the operator header are anonymous.
func RequestTrace(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := platformlogging.FromRequest(r, nil)
		requestID, _ := r.Context().Value(middleware.RequestIDKey).(string)

		audit := requesttrace.Anonymous(requestID)
		if operator := r.Header.Get(OperatorHeader); operator != "" {
			built, err := requesttrace.FromOperator(operator, requestID)
			if err != nil {
				if logger != nil {
					logger.Warn("build audit info from operator header", zap.Error(err))
				}
				http.Error(w, "invalid operator", http.StatusUnauthorized)
				return
			}
			audit = built
		}

		ctx := requesttrace.IntoContext(r.Context(), audit)
		if logger != nil {
			fields := []zap.Field{zap.String("actor_kind", string(audit.ActorKind))}
			if audit.Operator != nil {
				fields = append(fields, zap.String("operator", *audit.Operator))
			}
			logger = logger.With(fields...)
			ctx = platformlogging.WithLogger(ctx, logger)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
