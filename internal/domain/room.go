package domain

import "time"

// HostInfo is the host identity embedded in rooms and bookings. Rooms are
// owned by host email, not by a foreign key.
type HostInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Photo string `json:"image"`
}

type Room struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Location    string    `json:"location"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image"`
	Price       float64   `json:"price"`
	TotalGuests int       `json:"guests"`
	Bedrooms    int       `json:"bedrooms"`
	Bathrooms   int       `json:"bathrooms"`
	DateFrom    time.Time `json:"from"`
	DateTo      time.Time `json:"to"`
	Host        HostInfo  `json:"host"`
	Booked      bool      `json:"booked"`
	CreatedAt   time.Time `json:"createdAt"`
}

type RoomCreateReq struct {
	Title       string    `json:"title"`
	Location    string    `json:"location"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image"`
	Price       float64   `json:"price"`
	TotalGuests int       `json:"guests"`
	Bedrooms    int       `json:"bedrooms"`
	Bathrooms   int       `json:"bathrooms"`
	DateFrom    time.Time `json:"from"`
	DateTo      time.Time `json:"to"`
	Host        HostInfo  `json:"host"`
}

func (r *RoomCreateReq) Validate() error {
	r.Host.Email = NormalizeEmail(r.Host.Email)
	if r.Title == "" || r.Category == "" || !IsValidEmail(r.Host.Email) {
		return ErrInvalidInput
	}
	if r.Price <= 0 {
		return ErrInvalidInput
	}
	return nil
}
