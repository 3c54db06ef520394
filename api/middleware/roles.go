package middleware

import (
	"net/http"

	"github.com/mlegrand/equilog-backend/api/responses"
	pkgerrors "github.com/mlegrand/equilog-backend/pkg/errors"
	"github.com/mlegrand/equilog-backend/pkg/logger"
)

// RequireRole rejects requests whose authenticated role does not match.
// It must sit behind Auth, which seeds the role into the context.
func RequireRole(role string, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor := RoleFromContext(r.Context())
			if actor != role {
				ctx := r.Context()
				if logg != nil {
					ctx = logg.WithFields(ctx, map[string]any{
						"required_role": role,
						"actor_role":    actor,
					})
					logg.Warn(ctx, "authz.role_rejected")
				}
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "insufficient role"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
