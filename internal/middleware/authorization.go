package middleware

import (
	"net/http"

	"retailgenie/internal/apperr"
	"retailgenie/internal/domain"

	"go.uber.org/zap"
)

// RequireRole ensures the authenticated principal holds one of the
// allowed roles. Admin always passes.
func RequireRole(allowedRoles []string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := GetPrincipal(r.Context())
			if !ok {
				RespondWithError(w, apperr.Unauthenticated("authentication required"))
				return
			}

			if principal.Role == domain.RoleAdmin {
				next.ServeHTTP(w, r)
				return
			}

			for _, role := range allowedRoles {
				if principal.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			logger.Warn("Role not authorized",
				zap.String("role", principal.Role),
				zap.Strings("allowed_roles", allowedRoles),
			)
			RespondWithError(w, apperr.Forbidden("insufficient permissions"))
		})
	}
}
