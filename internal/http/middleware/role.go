package middleware

import (
	"context"
	"net/http"

	"github.com/brightstay/brightstay-api/internal/domain"
	"github.com/brightstay/brightstay-api/internal/http/response"
)

// RoleLookup reads the caller's current user record. The role stage always
// hits the store: the role is not a token claim, so a promotion applies on
// the very next request without re-login.
type RoleLookup interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}

// RequireRole is the role stage of the gate. It must be mounted behind
// RequireToken. A missing record, an unrecognized role value, or a role
// other than required all fail closed with 403.
func RequireRole(users RoleLookup, required string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := Claims(r)
			if claims == nil {
				response.Unauthorized(w, "unauthorized access")
				return
			}
			u, err := users.FindByEmail(r.Context(), claims.Email)
			if err != nil {
				response.InternalError(w, "role lookup failed")
				return
			}
			if u == nil || !domain.ValidRole(u.Role) || u.Role != required {
				response.Forbidden(w, "forbidden access")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func RequireAdmin(users RoleLookup) func(http.Handler) http.Handler {
	return RequireRole(users, domain.RoleAdmin)
}

func RequireHost(users RoleLookup) func(http.Handler) http.Handler {
	return RequireRole(users, domain.RoleHost)
}
