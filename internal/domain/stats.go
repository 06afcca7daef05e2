package domain

import "time"

// BookingSale is the {date, price} projection used by the statistics rollups.
type BookingSale struct {
	BookedAt time.Time
	Price    float64
}

// ChartData is a google-charts style series: a fixed header row followed by
// one ["<day> / <month>", price] row per booking, in query order. Bookings
// on the same calendar day stay distinct points.
type ChartData [][]any

type AdminStats struct {
	TotalUsers    int64     `json:"totalUsers"`
	TotalRooms    int64     `json:"totalRooms"`
	TotalBookings int       `json:"totalBookings"`
	TotalPrice    float64   `json:"totalPrice"`
	ChartData     ChartData `json:"chartData"`
}

type HostStats struct {
	HostSince     time.Time `json:"hostSince"`
	TotalRooms    int64     `json:"totalRooms"`
	TotalBookings int       `json:"totalBookings"`
	TotalPrice    float64   `json:"totalPrice"`
	ChartData     ChartData `json:"chartData"`
}

type GuestStats struct {
	GuestSince    time.Time `json:"guestSince"`
	TotalRooms    int64     `json:"totalRooms"`
	TotalBookings int       `json:"totalBookings"`
	TotalPrice    float64   `json:"totalPrice"`
	ChartData     ChartData `json:"chartData"`
}
