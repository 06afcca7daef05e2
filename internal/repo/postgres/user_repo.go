package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/brightstay/brightstay-api/internal/domain"
)

type UsersRepo interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Insert(ctx context.Context, in *domain.UserUpsertReq) (*domain.User, error)
	UpdateStatus(ctx context.Context, email, status string) (bool, error)
	UpdateRoleStatus(ctx context.Context, email, role, status string) (bool, error)
	List(ctx context.Context) ([]domain.User, error)
	Count(ctx context.Context) (int64, error)
}

type UsersRepoImpl struct{ pool *pgxpool.Pool }

func NewUsersRepo(pool *pgxpool.Pool) *UsersRepoImpl { return &UsersRepoImpl{pool: pool} }

const userCols = `id, email, name, photo_url, role, status, created_at, updated_at`

func (r *UsersRepoImpl) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	const q = `SELECT ` + userCols + ` FROM users WHERE email=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	var u domain.User
	err := r.pool.QueryRow(ctx, q, email).Scan(
		&u.ID, &u.Email, &u.Name, &u.PhotoURL, &u.Role, &u.Status, &u.CreatedAt, &u.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UsersRepoImpl) Insert(ctx context.Context, in *domain.UserUpsertReq) (*domain.User, error) {
	const q = `
INSERT INTO users (email, name, photo_url, role, status)
VALUES ($1,$2,$3,$4,$5)
ON CONFLICT (email) DO UPDATE SET updated_at = now()
RETURNING ` + userCols
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	var u domain.User
	if err := r.pool.QueryRow(ctx, q, in.Email, in.Name, in.PhotoURL, in.Role, in.Status).Scan(
		&u.ID, &u.Email, &u.Name, &u.PhotoURL, &u.Role, &u.Status, &u.CreatedAt, &u.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UsersRepoImpl) UpdateStatus(ctx context.Context, email, status string) (bool, error) {
	const q = `UPDATE users SET status=$2, updated_at=now() WHERE email=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	ct, err := r.pool.Exec(ctx, q, email, status)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

func (r *UsersRepoImpl) UpdateRoleStatus(ctx context.Context, email, role, status string) (bool, error) {
	const q = `UPDATE users SET role=$2, status=$3, updated_at=now() WHERE email=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	ct, err := r.pool.Exec(ctx, q, email, role, status)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

func (r *UsersRepoImpl) List(ctx context.Context) ([]domain.User, error) {
	const q = `SELECT ` + userCols + ` FROM users ORDER BY created_at DESC`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	us := make([]domain.User, 0)
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(
			&u.ID, &u.Email, &u.Name, &u.PhotoURL, &u.Role, &u.Status, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, err
		}
		us = append(us, u)
	}
	return us, rows.Err()
}

func (r *UsersRepoImpl) Count(ctx context.Context) (int64, error) {
	const q = `SELECT count(*) FROM users`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	var n int64
	err := r.pool.QueryRow(ctx, q).Scan(&n)
	return n, err
}
