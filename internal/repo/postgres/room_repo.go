package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/brightstay/brightstay-api/internal/domain"
)

type RoomsRepo interface {
	Insert(ctx context.Context, in *domain.RoomCreateReq) (*domain.Room, error)
	List(ctx context.Context, category string) ([]domain.Room, error)
	ListByHost(ctx context.Context, hostEmail string) ([]domain.Room, error)
	GetByID(ctx context.Context, id string) (*domain.Room, error)
	Delete(ctx context.Context, id string) (bool, error)
	SetBooked(ctx context.Context, id string, booked bool) (bool, error)
	Count(ctx context.Context) (int64, error)
	CountByHost(ctx context.Context, hostEmail string) (int64, error)
}

type RoomsRepoImpl struct{ pool *pgxpool.Pool }

func NewRoomsRepo(pool *pgxpool.Pool) *RoomsRepoImpl { return &RoomsRepoImpl{pool: pool} }

const roomCols = `id, title, location, category, description, image_url,
price, total_guests, bedrooms, bathrooms, date_from, date_to,
host_name, host_email, host_photo, booked, created_at`

func scanRoom(row pgx.Row) (*domain.Room, error) {
	var m domain.Room
	err := row.Scan(
		&m.ID, &m.Title, &m.Location, &m.Category, &m.Description, &m.ImageURL,
		&m.Price, &m.TotalGuests, &m.Bedrooms, &m.Bathrooms, &m.DateFrom, &m.DateTo,
		&m.Host.Name, &m.Host.Email, &m.Host.Photo, &m.Booked, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *RoomsRepoImpl) Insert(ctx context.Context, in *domain.RoomCreateReq) (*domain.Room, error) {
	const q = `INSERT INTO rooms (
    id, title, location, category, description, image_url,
    price, total_guests, bedrooms, bathrooms, date_from, date_to,
    host_name, host_email, host_photo
  ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
  RETURNING ` + roomCols

	id := uuid.NewString()
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return scanRoom(r.pool.QueryRow(ctx, q, id,
		in.Title, in.Location, in.Category, in.Description, in.ImageURL,
		in.Price, in.TotalGuests, in.Bedrooms, in.Bathrooms, in.DateFrom, in.DateTo,
		in.Host.Name, in.Host.Email, in.Host.Photo,
	))
}

func (r *RoomsRepoImpl) List(ctx context.Context, category string) ([]domain.Room, error) {
	q := `SELECT ` + roomCols + ` FROM rooms ORDER BY created_at DESC`
	args := []any{}
	if category != "" {
		q = `SELECT ` + roomCols + ` FROM rooms WHERE category=$1 ORDER BY created_at DESC`
		args = append(args, category)
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectRooms(rows)
}

func (r *RoomsRepoImpl) ListByHost(ctx context.Context, hostEmail string) ([]domain.Room, error) {
	const q = `SELECT ` + roomCols + ` FROM rooms WHERE host_email=$1 ORDER BY created_at DESC`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rows, err := r.pool.Query(ctx, q, hostEmail)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectRooms(rows)
}

func collectRooms(rows pgx.Rows) ([]domain.Room, error) {
	ms := make([]domain.Room, 0)
	for rows.Next() {
		m, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		ms = append(ms, *m)
	}
	return ms, rows.Err()
}

func (r *RoomsRepoImpl) GetByID(ctx context.Context, id string) (*domain.Room, error) {
	const q = `SELECT ` + roomCols + ` FROM rooms WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	m, err := scanRoom(r.pool.QueryRow(ctx, q, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return m, err
}

func (r *RoomsRepoImpl) Delete(ctx context.Context, id string) (bool, error) {
	const q = `DELETE FROM rooms WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	ct, err := r.pool.Exec(ctx, q, id)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

// SetBooked unconditionally writes the availability flag. Repeating the same
// write is a no-op at the data level, so the call is idempotent.
func (r *RoomsRepoImpl) SetBooked(ctx context.Context, id string, booked bool) (bool, error) {
	const q = `UPDATE rooms SET booked=$2 WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	ct, err := r.pool.Exec(ctx, q, id, booked)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

func (r *RoomsRepoImpl) Count(ctx context.Context) (int64, error) {
	const q = `SELECT count(*) FROM rooms`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	var n int64
	err := r.pool.QueryRow(ctx, q).Scan(&n)
	return n, err
}

func (r *RoomsRepoImpl) CountByHost(ctx context.Context, hostEmail string) (int64, error) {
	const q = `SELECT count(*) FROM rooms WHERE host_email=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	var n int64
	err := r.pool.QueryRow(ctx, q, hostEmail).Scan(&n)
	return n, err
}
