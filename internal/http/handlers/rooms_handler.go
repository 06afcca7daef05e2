package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/brightstay/brightstay-api/internal/domain"
	"github.com/brightstay/brightstay-api/internal/http/response"
	"github.com/brightstay/brightstay-api/internal/repo/postgres"
	"github.com/brightstay/brightstay-api/pkg/logger"
)

type RoomsHandler struct {
	rooms postgres.RoomsRepo
}

func NewRoomsHandler(rooms postgres.RoomsRepo) *RoomsHandler {
	return &RoomsHandler{rooms: rooms}
}

// List handles GET /rooms with an optional category filter. The frontend
// sends the literal string "null" when no category is selected; it means
// no filter, same as an absent parameter.
func (h *RoomsHandler) List(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category == "null" {
		category = ""
	}

	ms, err := h.rooms.List(r.Context(), category)
	if err != nil {
		logger.ErrorContext(r.Context(), "Room list failed", "error", err)
		response.InternalError(w, "could not load rooms")
		return
	}
	response.JSON(w, http.StatusOK, ms)
}

// Create handles POST /room (host only).
func (h *RoomsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in domain.RoomCreateReq
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.BadRequest(w, "invalid body")
		return
	}
	if err := in.Validate(); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			response.BadRequest(w, "title, category, a positive price and a valid host email are required")
			return
		}
		response.InternalError(w, "could not save room")
		return
	}

	m, err := h.rooms.Insert(r.Context(), &in)
	if err != nil {
		logger.ErrorContext(r.Context(), "Room insert failed", "error", err)
		response.InternalError(w, "could not save room")
		return
	}
	response.JSON(w, http.StatusCreated, m)
}

// MyListings handles GET /my-listings/{email} (host only).
func (h *RoomsHandler) MyListings(w http.ResponseWriter, r *http.Request) {
	ms, err := h.rooms.ListByHost(r.Context(), domain.NormalizeEmail(chi.URLParam(r, "email")))
	if err != nil {
		logger.ErrorContext(r.Context(), "Host listings failed", "error", err)
		response.InternalError(w, "could not load listings")
		return
	}
	response.JSON(w, http.StatusOK, ms)
}

// Get handles GET /room/{id}.
func (h *RoomsHandler) Get(w http.ResponseWriter, r *http.Request) {
	m, err := h.rooms.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		logger.ErrorContext(r.Context(), "Room lookup failed", "error", err)
		response.InternalError(w, "could not load room")
		return
	}
	if m == nil {
		response.NotFound(w, "room not found")
		return
	}
	response.JSON(w, http.StatusOK, m)
}

// Delete handles DELETE /room/{id} (host only).
func (h *RoomsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ok, err := h.rooms.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		logger.ErrorContext(r.Context(), "Room delete failed", "error", err)
		response.InternalError(w, "could not delete room")
		return
	}
	if !ok {
		response.NotFound(w, "room not found")
		return
	}
	response.JSON(w, http.StatusOK, map[string]bool{"success": true})
}
