package domain

import "context"

type HotelRepository interface {
	GetHotel(ctx context.Context, id int64) (Hotel, error)
	ListHotels(ctx context.Context, city string) ([]Hotel, error)
	DistinctCities(ctx context.Context) ([]string, error)
}

type BookingRepository interface {
	ListBookingsByEmail(ctx context.Context, email string) ([]BookingView, error)
}

// Tx is the unit of work the booking path runs in. It is only valid inside
// the callback passed to TxRunner.InTx.
type Tx interface {
	GetHotel(ctx context.Context, id int64) (Hotel, error)
	InsertBooking(ctx context.Context, b Booking) (int64, error)
}

type TxRunner interface {
	// InTx commits when fn returns nil and rolls back otherwise.
	InTx(ctx context.Context, fn func(tx Tx) error) error
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
