package handlers

import (
	"errors"
	"net/http"

	"github.com/brightstay/brightstay-api/internal/domain"
	mw "github.com/brightstay/brightstay-api/internal/http/middleware"
	"github.com/brightstay/brightstay-api/internal/http/response"
	"github.com/brightstay/brightstay-api/internal/service"
	"github.com/brightstay/brightstay-api/pkg/logger"
)

type StatsHandler struct {
	stats service.StatsService
}

func NewStatsHandler(stats service.StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// Admin handles GET /admin-stat: global rollup over all bookings.
func (h *StatsHandler) Admin(w http.ResponseWriter, r *http.Request) {
	st, err := h.stats.Admin(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "Admin stats failed", "error", err)
		response.InternalError(w, "could not compute statistics")
		return
	}
	response.JSON(w, http.StatusOK, st)
}

// Host handles GET /host-stat, scoped to the caller's listings.
func (h *StatsHandler) Host(w http.ResponseWriter, r *http.Request) {
	claims := mw.Claims(r)
	if claims == nil {
		response.Unauthorized(w, "unauthorized access")
		return
	}

	st, err := h.stats.Host(r.Context(), claims.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			response.NotFound(w, "user not found")
			return
		}
		logger.ErrorContext(r.Context(), "Host stats failed", "error", err)
		response.InternalError(w, "could not compute statistics")
		return
	}
	response.JSON(w, http.StatusOK, st)
}

// Guest handles GET /guest-stat, scoped to the caller's bookings.
func (h *StatsHandler) Guest(w http.ResponseWriter, r *http.Request) {
	claims := mw.Claims(r)
	if claims == nil {
		response.Unauthorized(w, "unauthorized access")
		return
	}

	st, err := h.stats.Guest(r.Context(), claims.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			response.NotFound(w, "user not found")
			return
		}
		logger.ErrorContext(r.Context(), "Guest stats failed", "error", err)
		response.InternalError(w, "could not compute statistics")
		return
	}
	response.JSON(w, http.StatusOK, st)
}
