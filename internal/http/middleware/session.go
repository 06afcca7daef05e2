package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/brightstay/brightstay-api/internal/http/response"
	"github.com/brightstay/brightstay-api/internal/platform/auth"
	"github.com/brightstay/brightstay-api/pkg/logger"
)

type ctxKey string

const CtxClaims ctxKey = "claims"

// Session is the token stage of the gate: extract the session cookie,
// validate signature and expiry, attach the decoded identity to the
// request context. Failures short-circuit before any store access.
type Session struct {
	Secret     string
	CookieName string
}

func NewSession(secret, cookieName string) *Session {
	return &Session{Secret: secret, CookieName: cookieName}
}

func (s *Session) token(r *http.Request) string {
	if c, err := r.Cookie(s.CookieName); err == nil && c.Value != "" {
		return c.Value
	}
	// Bearer fallback for non-browser callers
	if authz := r.Header.Get("Authorization"); strings.HasPrefix(authz, "Bearer ") {
		return strings.TrimPrefix(authz, "Bearer ")
	}
	return ""
}

func (s *Session) RequireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok := s.token(r)
		if tok == "" {
			response.Unauthorized(w, "unauthorized access")
			return
		}
		claims, err := auth.Parse(tok, s.Secret)
		if err != nil {
			response.Unauthorized(w, "unauthorized access")
			return
		}
		ctx := context.WithValue(r.Context(), CtxClaims, claims)
		ctx = context.WithValue(ctx, logger.UserKey, claims.Email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Claims returns the decoded session claims attached by RequireToken.
func Claims(r *http.Request) *auth.Claims {
	if v := r.Context().Value(CtxClaims); v != nil {
		if c, ok := v.(*auth.Claims); ok {
			return c
		}
	}
	return nil
}
