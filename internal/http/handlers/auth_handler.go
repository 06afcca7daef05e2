package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/brightstay/brightstay-api/internal/domain"
	"github.com/brightstay/brightstay-api/internal/http/response"
	"github.com/brightstay/brightstay-api/internal/platform/auth"
	"github.com/brightstay/brightstay-api/pkg/config"
	"github.com/brightstay/brightstay-api/pkg/logger"
)

type AuthHandler struct {
	cfg *config.Config
}

func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{cfg: cfg}
}

// IssueToken handles POST /jwt: sign the posted identity and set the
// session cookie. The token carries identity only; role is resolved live
// on each gated request.
func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.BadRequest(w, "invalid body")
		return
	}

	email := domain.NormalizeEmail(in.Email)
	if !domain.IsValidEmail(email) {
		response.BadRequest(w, "a valid email is required")
		return
	}

	token, err := auth.NewSessionToken(email, h.cfg.Auth.JWTSecret, h.cfg.Auth.SessionTokenTTL)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to sign session token", "error", err)
		response.InternalError(w, "could not issue token")
		return
	}

	auth.SetSessionCookie(w, h.cfg.Auth.CookieName, token, h.cfg.Auth.SessionTokenTTL, h.cfg.IsProduction())
	response.JSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Logout handles GET /logout: a zero-lifetime cookie overwrite with the
// same attribute pair as issuance. Safe to repeat.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w, h.cfg.Auth.CookieName, h.cfg.IsProduction())
	response.JSON(w, http.StatusOK, map[string]bool{"success": true})
}
