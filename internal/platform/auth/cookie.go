package auth

import (
	"net/http"
	"time"
)

// SetSessionCookie writes the session token cookie. Production deployments
// serve the SPA from a different origin, so the cookie must be SameSite=None
// and Secure there; elsewhere SameSite=Strict without Secure so local HTTP
// still works.
func SetSessionCookie(w http.ResponseWriter, name, token string, ttl time.Duration, production bool) {
	c := &http.Cookie{
		Name:     name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   production,
		SameSite: http.SameSiteStrictMode,
	}
	if production {
		c.SameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, c)
}

// ClearSessionCookie overwrites the cookie with a zero lifetime using the
// same attribute pair as issuance. Idempotent.
func ClearSessionCookie(w http.ResponseWriter, name string, production bool) {
	c := &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   production,
		SameSite: http.SameSiteStrictMode,
	}
	if production {
		c.SameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, c)
}
