package middleware

import (
	"context"
	"net/http"
	"strings"

	"retailgenie/internal/apperr"
	"retailgenie/internal/service"

	"go.uber.org/zap"
)

type contextKey string

const principalKey contextKey = "principal"

// Verifier is the credential check the auth gate needs from the auth
// service.
type Verifier interface {
	VerifyToken(token string) (*service.Principal, error)
	VerifyAPIKey(key string) (*service.Principal, error)
}

// AuthMiddleware is the route gate for auth-required paths. It accepts
// `Bearer <jwt>` and `ApiKey <key>` credentials, attaches the principal
// to the context, and rejects everything else with 401.
func AuthMiddleware(verifier Verifier, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, err := authenticate(verifier, r)
			if err != nil {
				logger.Debug("Authentication failed",
					zap.String("path", r.URL.Path),
					zap.Error(err),
				)
				RespondWithError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
		})
	}
}

// OptionalAuth attaches a principal when valid credentials are present
// but lets anonymous requests through. Read-only endpoints that serve
// sample data to anonymous callers use this.
func OptionalAuth(verifier Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if principal, err := authenticate(verifier, r); err == nil {
				r = r.WithContext(WithPrincipal(r.Context(), principal))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func authenticate(verifier Verifier, r *http.Request) (*service.Principal, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil, apperr.Unauthenticated("missing authorization header")
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return nil, apperr.Unauthenticated("invalid authorization header format")
	}

	switch parts[0] {
	case "Bearer":
		return verifier.VerifyToken(parts[1])
	case "ApiKey":
		return verifier.VerifyAPIKey(parts[1])
	default:
		return nil, apperr.Unauthenticated("unsupported authorization scheme %s", parts[0])
	}
}

// WithPrincipal returns a context carrying the verified principal.
func WithPrincipal(ctx context.Context, p *service.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// GetPrincipal extracts the verified principal from the request context.
func GetPrincipal(ctx context.Context) (*service.Principal, bool) {
	p, ok := ctx.Value(principalKey).(*service.Principal)
	return p, ok
}
