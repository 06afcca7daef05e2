package service

import (
	"context"
	"fmt"

	"github.com/brightstay/brightstay-api/internal/domain"
	"github.com/brightstay/brightstay-api/internal/repo/postgres"
)

type StatsService interface {
	Admin(ctx context.Context) (*domain.AdminStats, error)
	Host(ctx context.Context, hostEmail string) (*domain.HostStats, error)
	Guest(ctx context.Context, guestEmail string) (*domain.GuestStats, error)
}

type statsService struct {
	users    postgres.UsersRepo
	rooms    postgres.RoomsRepo
	bookings postgres.BookingsRepo
}

func NewStatsService(users postgres.UsersRepo, rooms postgres.RoomsRepo, bookings postgres.BookingsRepo) StatsService {
	return &statsService{users: users, rooms: rooms, bookings: bookings}
}

// chartSeries builds the "<day> / <month>" sales rows with the fixed header
// prepended. One row per booking, no bucketing by calendar day.
func chartSeries(sales []domain.BookingSale) domain.ChartData {
	chart := make(domain.ChartData, 0, len(sales)+1)
	chart = append(chart, []any{"Day", "Sales"})
	for _, s := range sales {
		label := fmt.Sprintf("%d / %d", s.BookedAt.Day(), int(s.BookedAt.Month()))
		chart = append(chart, []any{label, s.Price})
	}
	return chart
}

func totalPrice(sales []domain.BookingSale) float64 {
	var sum float64
	for _, s := range sales {
		sum += s.Price
	}
	return sum
}

func (s *statsService) Admin(ctx context.Context) (*domain.AdminStats, error) {
	sales, err := s.bookings.SalesAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("sales query failed: %w", err)
	}

	totalUsers, err := s.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("user count failed: %w", err)
	}

	totalRooms, err := s.rooms.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("room count failed: %w", err)
	}

	return &domain.AdminStats{
		TotalUsers:    totalUsers,
		TotalRooms:    totalRooms,
		TotalBookings: len(sales),
		TotalPrice:    totalPrice(sales),
		ChartData:     chartSeries(sales),
	}, nil
}

func (s *statsService) Host(ctx context.Context, hostEmail string) (*domain.HostStats, error) {
	sales, err := s.bookings.SalesByHost(ctx, hostEmail)
	if err != nil {
		return nil, fmt.Errorf("sales query failed: %w", err)
	}

	totalRooms, err := s.rooms.CountByHost(ctx, hostEmail)
	if err != nil {
		return nil, fmt.Errorf("room count failed: %w", err)
	}

	u, err := s.users.FindByEmail(ctx, hostEmail)
	if err != nil {
		return nil, fmt.Errorf("user lookup failed: %w", err)
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}

	return &domain.HostStats{
		HostSince:     u.CreatedAt,
		TotalRooms:    totalRooms,
		TotalBookings: len(sales),
		TotalPrice:    totalPrice(sales),
		ChartData:     chartSeries(sales),
	}, nil
}

// Guest mirrors the host rollup scoped by guest email. The room count
// filters rooms by host_email equal to the caller's email, so a caller who
// hosts nothing sees zero.
func (s *statsService) Guest(ctx context.Context, guestEmail string) (*domain.GuestStats, error) {
	sales, err := s.bookings.SalesByGuest(ctx, guestEmail)
	if err != nil {
		return nil, fmt.Errorf("sales query failed: %w", err)
	}

	totalRooms, err := s.rooms.CountByHost(ctx, guestEmail)
	if err != nil {
		return nil, fmt.Errorf("room count failed: %w", err)
	}

	u, err := s.users.FindByEmail(ctx, guestEmail)
	if err != nil {
		return nil, fmt.Errorf("user lookup failed: %w", err)
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}

	return &domain.GuestStats{
		GuestSince:    u.CreatedAt,
		TotalRooms:    totalRooms,
		TotalBookings: len(sales),
		TotalPrice:    totalPrice(sales),
		ChartData:     chartSeries(sales),
	}, nil
}
