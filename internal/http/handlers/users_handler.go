package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/brightstay/brightstay-api/internal/domain"
	"github.com/brightstay/brightstay-api/internal/http/response"
	"github.com/brightstay/brightstay-api/internal/service"
	"github.com/brightstay/brightstay-api/pkg/logger"
)

type UsersHandler struct {
	users service.UserService
}

func NewUsersHandler(users service.UserService) *UsersHandler {
	return &UsersHandler{users: users}
}

// Upsert handles PUT /user, the login-time save. Existing user posting
// status "Requested" gets a status-only update; any other existing user
// gets their stored record back unchanged; a new email gets a full insert.
func (h *UsersHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var in domain.UserUpsertReq
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.BadRequest(w, "invalid body")
		return
	}

	u, outcome, err := h.users.Upsert(r.Context(), &in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			response.BadRequest(w, "a valid email is required")
			return
		}
		logger.ErrorContext(r.Context(), "User upsert failed", "error", err)
		response.InternalError(w, "could not save user")
		return
	}

	status := http.StatusOK
	if outcome == service.OutcomeCreated {
		status = http.StatusCreated
	}
	response.JSON(w, status, u)
}

// Get handles GET /user/{email}.
func (h *UsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	u, err := h.users.Get(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		logger.ErrorContext(r.Context(), "User lookup failed", "error", err)
		response.InternalError(w, "could not load user")
		return
	}
	if u == nil {
		response.NotFound(w, "user not found")
		return
	}
	response.JSON(w, http.StatusOK, u)
}

// List handles GET /users (admin only; gated at the route table).
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	us, err := h.users.List(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "User list failed", "error", err)
		response.InternalError(w, "could not load users")
		return
	}
	response.JSON(w, http.StatusOK, us)
}

// Update handles PATCH /users/update/{email}, used for role promotion.
// The route is intentionally left ungated; the route table documents this.
func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in domain.UserUpdateReq
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.BadRequest(w, "invalid body")
		return
	}

	ok, err := h.users.Update(r.Context(), chi.URLParam(r, "email"), &in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			response.BadRequest(w, "a recognized role is required")
			return
		}
		logger.ErrorContext(r.Context(), "User update failed", "error", err)
		response.InternalError(w, "could not update user")
		return
	}
	if !ok {
		response.NotFound(w, "user not found")
		return
	}
	response.JSON(w, http.StatusOK, map[string]bool{"success": true})
}
