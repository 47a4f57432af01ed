package domain

import (
	"strings"
	"time"
)

// CreatedAtLayout is the persisted form of Booking.CreatedAt (second precision).
const CreatedAtLayout = "2006-01-02T15:04:05"

// MaxCount caps rooms and guests on a single booking.
const MaxCount = 100

type Booking struct {
	ID         int64     `json:"id"`
	HotelID    int64     `json:"hotel_id"`
	GuestName  string    `json:"guest_name"`
	GuestEmail string    `json:"guest_email"`
	GuestPhone string    `json:"guest_phone"`
	CheckIn    string    `json:"check_in"`
	CheckOut   string    `json:"check_out"`
	Rooms      int       `json:"rooms"`
	Guests     int       `json:"guests"`
	TotalPrice int64     `json:"total_price"`
	CreatedAt  time.Time `json:"created_at"`
}

// BookingView is a booking joined with the display fields of its hotel.
type BookingView struct {
	Booking
	HotelName string `json:"hotel_name"`
	City      string `json:"city"`
	Area      string `json:"area"`
}

// BookingRequest carries raw client input; Rooms and Guests stay strings so
// that malformed values are rejected instead of coerced.
type BookingRequest struct {
	HotelID    int64
	GuestName  string
	GuestEmail string
	GuestPhone string
	CheckIn    string
	CheckOut   string
	Rooms      string
	Guests     string
}

// NormalizeEmail is the booking lookup key: trimmed and lowercased.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
