package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/brightstay/brightstay-api/internal/domain"
)

type BookingsRepo interface {
	Create(ctx context.Context, in *domain.BookingReq) (*domain.Booking, error)
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	ListByGuest(ctx context.Context, guestEmail string) ([]domain.Booking, error)
	ListByHost(ctx context.Context, hostEmail string) ([]domain.Booking, error)
	Delete(ctx context.Context, id string) (bool, error)
	SalesAll(ctx context.Context) ([]domain.BookingSale, error)
	SalesByHost(ctx context.Context, hostEmail string) ([]domain.BookingSale, error)
	SalesByGuest(ctx context.Context, guestEmail string) ([]domain.BookingSale, error)
}

type BookingsRepoImpl struct{ pool *pgxpool.Pool }

func NewBookingsRepo(pool *pgxpool.Pool) *BookingsRepoImpl { return &BookingsRepoImpl{pool: pool} }

const bookingCols = `id, room_id, room_title, room_image,
guest_name, guest_email, host_name, host_email,
price, booked_at, created_at`

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	err := row.Scan(
		&b.ID, &b.RoomID, &b.RoomTitle, &b.RoomImage,
		&b.Guest.Name, &b.Guest.Email, &b.Host.Name, &b.Host.Email,
		&b.Price, &b.BookedAt, &b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Create persists the booking document as posted. Room availability is not
// touched here; flipping the booked flag is a separate, explicitly invoked
// operation owned by the rooms store.
func (r *BookingsRepoImpl) Create(ctx context.Context, in *domain.BookingReq) (*domain.Booking, error) {
	const q = `INSERT INTO bookings (
    id, room_id, room_title, room_image,
    guest_name, guest_email, host_name, host_email,
    price, booked_at
  ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
  RETURNING ` + bookingCols

	id := uuid.NewString()
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return scanBooking(r.pool.QueryRow(ctx, q, id,
		in.RoomID, in.RoomTitle, in.RoomImage,
		in.Guest.Name, in.Guest.Email, in.Host.Name, in.Host.Email,
		in.Price, in.BookedAt,
	))
}

func (r *BookingsRepoImpl) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	const q = `SELECT ` + bookingCols + ` FROM bookings WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	b, err := scanBooking(r.pool.QueryRow(ctx, q, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return b, err
}

func (r *BookingsRepoImpl) ListByGuest(ctx context.Context, guestEmail string) ([]domain.Booking, error) {
	const q = `SELECT ` + bookingCols + ` FROM bookings WHERE guest_email=$1 ORDER BY created_at DESC`
	return r.list(ctx, q, guestEmail)
}

func (r *BookingsRepoImpl) ListByHost(ctx context.Context, hostEmail string) ([]domain.Booking, error) {
	const q = `SELECT ` + bookingCols + ` FROM bookings WHERE host_email=$1 ORDER BY created_at DESC`
	return r.list(ctx, q, hostEmail)
}

func (r *BookingsRepoImpl) list(ctx context.Context, q string, args ...any) ([]domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bs := make([]domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bs = append(bs, *b)
	}
	return bs, rows.Err()
}

// Delete removes by id only. The referenced room's booked flag is left
// untouched; callers that want it cleared must do so explicitly.
func (r *BookingsRepoImpl) Delete(ctx context.Context, id string) (bool, error) {
	const q = `DELETE FROM bookings WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	ct, err := r.pool.Exec(ctx, q, id)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

func (r *BookingsRepoImpl) SalesAll(ctx context.Context) ([]domain.BookingSale, error) {
	const q = `SELECT booked_at, price FROM bookings ORDER BY booked_at`
	return r.sales(ctx, q)
}

func (r *BookingsRepoImpl) SalesByHost(ctx context.Context, hostEmail string) ([]domain.BookingSale, error) {
	const q = `SELECT booked_at, price FROM bookings WHERE host_email=$1 ORDER BY booked_at`
	return r.sales(ctx, q, hostEmail)
}

func (r *BookingsRepoImpl) SalesByGuest(ctx context.Context, guestEmail string) ([]domain.BookingSale, error) {
	const q = `SELECT booked_at, price FROM bookings WHERE guest_email=$1 ORDER BY booked_at`
	return r.sales(ctx, q, guestEmail)
}

func (r *BookingsRepoImpl) sales(ctx context.Context, q string, args ...any) ([]domain.BookingSale, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ss := make([]domain.BookingSale, 0)
	for rows.Next() {
		var s domain.BookingSale
		if err := rows.Scan(&s.BookedAt, &s.Price); err != nil {
			return nil, err
		}
		ss = append(ss, s)
	}
	return ss, rows.Err()
}
