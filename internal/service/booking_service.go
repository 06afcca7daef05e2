package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/brightstay/brightstay-api/internal/domain"
	"github.com/brightstay/brightstay-api/internal/platform/mailer"
	"github.com/brightstay/brightstay-api/internal/repo/postgres"
	"github.com/brightstay/brightstay-api/pkg/events"
	"github.com/brightstay/brightstay-api/pkg/logger"
)

// ErrBookingNotRecorded marks a store failure that happened after the caller
// already confirmed payment with the processor. It is surfaced distinctly
// from validation errors so the dangling payment intent can be reconciled
// manually; no automatic void or refund is attempted.
var ErrBookingNotRecorded = errors.New("booking not recorded")

type BookingService interface {
	Create(ctx context.Context, req *domain.BookingReq) (*domain.Booking, error)
	ListByGuest(ctx context.Context, guestEmail string) ([]domain.Booking, error)
	ListByHost(ctx context.Context, hostEmail string) ([]domain.Booking, error)
	Delete(ctx context.Context, id string) (bool, error)
	SetRoomBooked(ctx context.Context, roomID string, booked bool) (bool, error)
}

type bookingService struct {
	bookings postgres.BookingsRepo
	rooms    postgres.RoomsRepo
	bus      events.Publisher
	mail     mailer.Service
}

func NewBookingService(bookings postgres.BookingsRepo, rooms postgres.RoomsRepo, bus events.Publisher, mail mailer.Service) BookingService {
	return &bookingService{
		bookings: bookings,
		rooms:    rooms,
		bus:      bus,
		mail:     mail,
	}
}

// Create persists the booking as posted. By contract the caller has already
// created a payment intent and confirmed it client-side; no settlement check
// happens here, and the room's booked flag is not flipped. SetRoomBooked is
// the separate step for that.
func (s *bookingService) Create(ctx context.Context, req *domain.BookingReq) (*domain.Booking, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	booking, err := s.bookings.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBookingNotRecorded, err)
	}

	event := events.BookingCreatedEvent{
		BookingID:  booking.ID,
		RoomID:     booking.RoomID,
		GuestEmail: booking.Guest.Email,
		HostEmail:  booking.Host.Email,
		Price:      booking.Price,
		BookedAt:   booking.BookedAt,
		CreatedAt:  booking.CreatedAt,
	}
	if err := s.bus.Publish(ctx, events.BookingCreated, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish booking created event", "error", err, "booking_id", booking.ID)
	}

	// Confirmation email is best-effort; the booking stands either way.
	if _, err := s.mail.Send(
		booking.Guest.Email, booking.Guest.Name,
		"Your BrightStay booking is confirmed",
		fmt.Sprintf("Your stay at %s on %s is booked. Total: $%.2f.",
			booking.RoomTitle, booking.BookedAt.Format("Jan 2, 2006"), booking.Price),
		"",
	); err != nil {
		logger.WarnContext(ctx, "Failed to send booking confirmation", "error", err, "booking_id", booking.ID)
	}

	return booking, nil
}

func (s *bookingService) ListByGuest(ctx context.Context, guestEmail string) ([]domain.Booking, error) {
	return s.bookings.ListByGuest(ctx, guestEmail)
}

func (s *bookingService) ListByHost(ctx context.Context, hostEmail string) ([]domain.Booking, error) {
	return s.bookings.ListByHost(ctx, hostEmail)
}

// Delete removes the booking only. No cascade to the room's booked flag.
func (s *bookingService) Delete(ctx context.Context, id string) (bool, error) {
	ok, err := s.bookings.Delete(ctx, id)
	if err != nil || !ok {
		return ok, err
	}

	if err := s.bus.Publish(ctx, events.BookingDeleted, events.BookingDeletedEvent{
		BookingID: id,
		DeletedAt: time.Now(),
	}); err != nil {
		logger.ErrorContext(ctx, "Failed to publish booking deleted event", "error", err, "booking_id", id)
	}
	return true, nil
}

// SetRoomBooked is the independently callable availability sync step.
func (s *bookingService) SetRoomBooked(ctx context.Context, roomID string, booked bool) (bool, error) {
	ok, err := s.rooms.SetBooked(ctx, roomID, booked)
	if err != nil || !ok {
		return ok, err
	}

	if err := s.bus.Publish(ctx, events.RoomStatusChanged, events.RoomStatusChangedEvent{
		RoomID:    roomID,
		Booked:    booked,
		ChangedAt: time.Now(),
	}); err != nil {
		logger.ErrorContext(ctx, "Failed to publish room status event", "error", err, "room_id", roomID)
	}
	return true, nil
}
