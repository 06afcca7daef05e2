package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/brightstay/brightstay-api/internal/domain"
	"github.com/brightstay/brightstay-api/internal/http/response"
	"github.com/brightstay/brightstay-api/internal/payments"
	"github.com/brightstay/brightstay-api/internal/service"
	"github.com/brightstay/brightstay-api/pkg/logger"
)

type BookingsHandler struct {
	bookings service.BookingService
	payments *payments.Service
}

func NewBookingsHandler(bookings service.BookingService, pay *payments.Service) *BookingsHandler {
	return &BookingsHandler{bookings: bookings, payments: pay}
}

// CreatePaymentIntent handles POST /create-payment-intent, the first phase
// of the booking workflow. It only authorizes the charge and hands the
// client secret back; it never records a booking.
func (h *BookingsHandler) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Price float64 `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.BadRequest(w, "invalid body")
		return
	}

	secret, err := h.payments.CreateIntent(r.Context(), in.Price)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			response.BadRequest(w, "price must be a positive number")
			return
		}
		logger.ErrorContext(r.Context(), "Payment intent failed", "error", err)
		response.PaymentProvider(w, "payment provider rejected the request")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"clientSecret": secret})
}

// CreateBooking handles POST /booking, the second phase. By contract the
// client calls this only after confirming the intent with the processor.
func (h *BookingsHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var in domain.BookingReq
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.BadRequest(w, "invalid body")
		return
	}

	b, err := h.bookings.Create(r.Context(), &in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			response.BadRequest(w, "roomId, guest, host, a positive price and a date are required")
			return
		}
		// The payment may already be confirmed processor-side; surface a
		// distinct code so the dangling intent can be reconciled.
		logger.ErrorContext(r.Context(), "Booking not recorded after payment phase", "error", err)
		response.WriteError(w, http.StatusInternalServerError,
			"booking could not be recorded; contact support with your payment reference",
			response.CodeBookingNotRecorded)
		return
	}

	response.JSON(w, http.StatusCreated, b)
}

// UpdateRoomStatus handles PATCH /room/status/{id}. This is the separate,
// independently callable availability sync step; booking creation and
// deletion never invoke it. Intentionally ungated; the frontend calls it
// directly after payment confirmation.
func (h *BookingsHandler) UpdateRoomStatus(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Status bool `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.BadRequest(w, "invalid body")
		return
	}

	ok, err := h.bookings.SetRoomBooked(r.Context(), chi.URLParam(r, "id"), in.Status)
	if err != nil {
		logger.ErrorContext(r.Context(), "Room status update failed", "error", err)
		response.InternalError(w, "could not update room status")
		return
	}
	if !ok {
		response.NotFound(w, "room not found")
		return
	}
	response.JSON(w, http.StatusOK, map[string]bool{"success": true})
}

// MyBookings handles GET /my-bookings/{email}.
func (h *BookingsHandler) MyBookings(w http.ResponseWriter, r *http.Request) {
	bs, err := h.bookings.ListByGuest(r.Context(), domain.NormalizeEmail(chi.URLParam(r, "email")))
	if err != nil {
		logger.ErrorContext(r.Context(), "Guest bookings failed", "error", err)
		response.InternalError(w, "could not load bookings")
		return
	}
	response.JSON(w, http.StatusOK, bs)
}

// ManageBookings handles GET /manage-bookings/{email} (host only).
func (h *BookingsHandler) ManageBookings(w http.ResponseWriter, r *http.Request) {
	bs, err := h.bookings.ListByHost(r.Context(), domain.NormalizeEmail(chi.URLParam(r, "email")))
	if err != nil {
		logger.ErrorContext(r.Context(), "Host bookings failed", "error", err)
		response.InternalError(w, "could not load bookings")
		return
	}
	response.JSON(w, http.StatusOK, bs)
}

// DeleteBooking handles DELETE /booking/{id}. No cascade to the room flag.
func (h *BookingsHandler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	ok, err := h.bookings.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		logger.ErrorContext(r.Context(), "Booking delete failed", "error", err)
		response.InternalError(w, "could not delete booking")
		return
	}
	if !ok {
		response.NotFound(w, "booking not found")
		return
	}
	response.JSON(w, http.StatusOK, map[string]bool{"success": true})
}
