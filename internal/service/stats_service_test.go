package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/brightstay/brightstay-api/internal/domain"
	"github.com/brightstay/brightstay-api/internal/service"
)

func seedUser(repo *mockUsersRepo, email, role string) {
	repo.users[email] = &domain.User{
		ID: repo.nextID, Email: email, Role: role,
		CreatedAt: time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC),
	}
	repo.nextID++
}

func TestAdminStatsEmpty(t *testing.T) {
	users := newMockUsersRepo()
	rooms := newMockRoomsRepo()
	bookings := newMockBookingsRepo()
	svc := service.NewStatsService(users, rooms, bookings)

	st, err := svc.Admin(context.Background())
	if err != nil {
		t.Fatalf("Admin: %v", err)
	}
	if st.TotalBookings != 0 || st.TotalPrice != 0 {
		t.Errorf("totals = %d / %v, want zeros", st.TotalBookings, st.TotalPrice)
	}
	if len(st.ChartData) != 1 {
		t.Fatalf("chart rows = %d, want header only", len(st.ChartData))
	}
	if st.ChartData[0][0] != "Day" || st.ChartData[0][1] != "Sales" {
		t.Errorf("header = %v", st.ChartData[0])
	}
}

func TestAdminStatsTotalsAndChart(t *testing.T) {
	users := newMockUsersRepo()
	seedUser(users, "a@example.com", domain.RoleAdmin)
	seedUser(users, "g@example.com", domain.RoleGuest)

	rooms := newMockRoomsRepo()
	rooms.booked["r1"] = false
	rooms.booked["r2"] = true

	bookings := newMockBookingsRepo()
	day := time.Date(2026, 5, 14, 10, 0, 0, 0, time.UTC)
	bookings.sales = []domain.BookingSale{
		{BookedAt: day, Price: 100},
		{BookedAt: day, Price: 50.5}, // same calendar day stays a distinct point
		{BookedAt: day.AddDate(0, 1, 0), Price: 20},
	}

	svc := service.NewStatsService(users, rooms, bookings)
	st, err := svc.Admin(context.Background())
	if err != nil {
		t.Fatalf("Admin: %v", err)
	}

	if st.TotalUsers != 2 || st.TotalRooms != 2 {
		t.Errorf("users/rooms = %d/%d", st.TotalUsers, st.TotalRooms)
	}
	if st.TotalBookings != 3 {
		t.Errorf("totalBookings = %d", st.TotalBookings)
	}
	if st.TotalPrice != 170.5 {
		t.Errorf("totalPrice = %v", st.TotalPrice)
	}
	if len(st.ChartData) != 4 {
		t.Fatalf("chart rows = %d, want header + 3", len(st.ChartData))
	}
	if st.ChartData[1][0] != "14 / 5" || st.ChartData[1][1] != 100.0 {
		t.Errorf("row 1 = %v", st.ChartData[1])
	}
	if st.ChartData[2][0] != "14 / 5" {
		t.Errorf("row 2 = %v, same-day bookings must stay distinct", st.ChartData[2])
	}
	if st.ChartData[3][0] != "14 / 6" {
		t.Errorf("row 3 = %v", st.ChartData[3])
	}
}

func TestHostStats(t *testing.T) {
	users := newMockUsersRepo()
	seedUser(users, "h@example.com", domain.RoleHost)

	rooms := newMockRoomsRepo()
	rooms.hostCounts["h@example.com"] = 4

	bookings := newMockBookingsRepo()
	bookings.sales = []domain.BookingSale{
		{BookedAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), Price: 75},
	}

	svc := service.NewStatsService(users, rooms, bookings)
	st, err := svc.Host(context.Background(), "h@example.com")
	if err != nil {
		t.Fatalf("Host: %v", err)
	}
	if st.TotalRooms != 4 || st.TotalBookings != 1 || st.TotalPrice != 75 {
		t.Errorf("stats = %+v", st)
	}
	if st.HostSince.IsZero() {
		t.Error("hostSince not populated from registration timestamp")
	}
}

func TestHostStatsUnknownUser(t *testing.T) {
	svc := service.NewStatsService(newMockUsersRepo(), newMockRoomsRepo(), newMockBookingsRepo())
	if _, err := svc.Host(context.Background(), "ghost@example.com"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

// The guest rollup counts rooms whose host email equals the caller's own
// email, so a caller who hosts nothing sees zero.
func TestGuestStatsRoomScoping(t *testing.T) {
	users := newMockUsersRepo()
	seedUser(users, "g@example.com", domain.RoleGuest)

	rooms := newMockRoomsRepo()
	rooms.hostCounts["someone-else@example.com"] = 7

	svc := service.NewStatsService(users, rooms, newMockBookingsRepo())
	st, err := svc.Guest(context.Background(), "g@example.com")
	if err != nil {
		t.Fatalf("Guest: %v", err)
	}
	if st.TotalRooms != 0 {
		t.Errorf("totalRooms = %d, want 0 for a pure guest", st.TotalRooms)
	}
	if st.TotalBookings != 0 || st.TotalPrice != 0 || len(st.ChartData) != 1 {
		t.Errorf("empty rollup = %+v", st)
	}
	if st.GuestSince.IsZero() {
		t.Error("guestSince not populated")
	}
}
