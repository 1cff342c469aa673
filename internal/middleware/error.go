package middleware

import (
	"encoding/json"
	"net/http"

	"retailgenie/internal/apperr"

	"go.uber.org/zap"
)

// knownEndpoints is the discovery aid attached to 404 bodies.
var knownEndpoints = []string{
	"/",
	"/status",
	"/api/v1/health",
	"/api/v1/routes",
	"/api/v1/auth/register",
	"/api/v1/auth/login",
	"/api/v1/products",
	"/api/v1/orders",
	"/api/v1/customers",
	"/api/v1/analytics",
}

// RespondWithJSON writes a success envelope: the payload fields plus
// "success": true.
func RespondWithJSON(w http.ResponseWriter, statusCode int, payload map[string]interface{}) {
	body := make(map[string]interface{}, len(payload)+1)
	for k, v := range payload {
		body[k] = v
	}
	body["success"] = true

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}

// RespondNoContent writes an empty success (204).
func RespondNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// RespondWithError is the single policy point mapping error kinds to HTTP
// statuses and rendering the failure envelope. Wrapped causes never reach
// the body; they go to the log keyed by request id.
func RespondWithError(w http.ResponseWriter, err error) {
	ae := apperr.From(err)
	status := ae.Status()

	body := map[string]interface{}{
		"success": false,
		"error":   ae.Code,
		"message": publicMessage(ae),
	}
	if status == http.StatusNotFound {
		body["endpoints"] = knownEndpoints
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// publicMessage hides internal detail for 500-class errors.
func publicMessage(ae *apperr.Error) string {
	if ae.Kind == apperr.KindInternal || ae.Kind == apperr.KindUnavailable {
		return "internal server error"
	}
	return ae.Message
}

// Recovery catches panics and converts them to 500 envelopes.
func Recovery(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("Panic recovered",
						zap.Any("error", rec),
						zap.String("path", r.URL.Path),
						zap.String("method", r.Method),
					)
					RespondWithError(w, apperr.Internal(nil))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// NotFoundHandler renders unknown routes as 404 envelopes.
func NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		RespondWithError(w, apperr.NotFound("endpoint %s not found", r.URL.Path))
	}
}

// MethodNotAllowedHandler renders unsupported verbs on known paths.
func MethodNotAllowedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		RespondWithError(w, apperr.MethodNotAllowed("method %s not allowed on %s", r.Method, r.URL.Path))
	}
}
