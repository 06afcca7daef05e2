package domain

import "time"

// GuestInfo is the guest identity embedded in a booking.
type GuestInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Booking links a guest, a room, and a price/date. Immutable once created
// except for deletion by id; price and date are never updated in place.
type Booking struct {
	ID        string    `json:"id"`
	RoomID    string    `json:"roomId"`
	RoomTitle string    `json:"title"`
	RoomImage string    `json:"image"`
	Guest     GuestInfo `json:"guest"`
	Host      HostInfo  `json:"host"`
	Price     float64   `json:"price"`
	BookedAt  time.Time `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
}

// BookingReq is the POST /booking payload. Callers are expected to have
// completed processor-side payment confirmation before posting; the server
// does not verify settlement (see the payment workflow contract).
type BookingReq struct {
	RoomID    string    `json:"roomId"`
	RoomTitle string    `json:"title"`
	RoomImage string    `json:"image"`
	Guest     GuestInfo `json:"guest"`
	Host      HostInfo  `json:"host"`
	Price     float64   `json:"price"`
	BookedAt  time.Time `json:"date"`
}

func (r *BookingReq) Validate() error {
	r.Guest.Email = NormalizeEmail(r.Guest.Email)
	r.Host.Email = NormalizeEmail(r.Host.Email)
	if r.RoomID == "" || !IsValidEmail(r.Guest.Email) || !IsValidEmail(r.Host.Email) {
		return ErrInvalidInput
	}
	if r.Price <= 0 || r.BookedAt.IsZero() {
		return ErrInvalidInput
	}
	return nil
}
