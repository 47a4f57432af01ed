package app

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"hotel_booking/internal/domain"
)

type BookingService struct {
	store domain.TxRunner
	now   func() time.Time
}

func NewBookingService(store domain.TxRunner) *BookingService {
	return &BookingService{store: store, now: time.Now}
}

// WithClock replaces the time source used for created_at.
func (s *BookingService) WithClock(now func() time.Time) *BookingService {
	s.now = now
	return s
}

// CreateBooking validates req against the referenced hotel, prices the stay and
// persists it. Validation stops at the first failure; see domain errors.
func (s *BookingService) CreateBooking(ctx context.Context, req domain.BookingRequest) (domain.Booking, error) {
	var out domain.Booking
	err := s.store.InTx(ctx, func(tx domain.Tx) error {
		hotel, err := tx.GetHotel(ctx, req.HotelID)
		if err != nil {
			return err
		}

		b, err := buildBooking(hotel, req)
		if err != nil {
			return err
		}
		b.CreatedAt = s.now().UTC().Truncate(time.Second)

		id, err := tx.InsertBooking(ctx, b)
		if err != nil {
			return fmt.Errorf("insert booking: %w", err)
		}
		b.ID = id
		out = b
		return nil
	})
	if err != nil {
		if domain.IsValidation(err) {
			log.Debug().Int64("hotel_id", req.HotelID).Err(err).Msg("booking rejected")
		}
		return domain.Booking{}, err
	}

	log.Info().
		Int64("booking_id", out.ID).
		Int64("hotel_id", out.HotelID).
		Str("check_in", out.CheckIn).
		Str("check_out", out.CheckOut).
		Int("rooms", out.Rooms).
		Int64("total_price", out.TotalPrice).
		Msg("booking created")
	return out, nil
}

func buildBooking(h domain.Hotel, req domain.BookingRequest) (domain.Booking, error) {
	b := domain.Booking{
		HotelID:    h.ID,
		GuestName:  strings.TrimSpace(req.GuestName),
		GuestEmail: domain.NormalizeEmail(req.GuestEmail),
		GuestPhone: strings.TrimSpace(req.GuestPhone),
		CheckIn:    strings.TrimSpace(req.CheckIn),
		CheckOut:   strings.TrimSpace(req.CheckOut),
	}
	if b.GuestName == "" || b.GuestEmail == "" || b.GuestPhone == "" || b.CheckIn == "" || b.CheckOut == "" {
		return domain.Booking{}, domain.ErrMissingFields
	}

	nights, err := domain.Nights(b.CheckIn, b.CheckOut)
	if err != nil {
		return domain.Booking{}, err
	}
	if nights < 1 {
		return domain.Booking{}, domain.ErrInvalidDateRange
	}

	if b.Rooms, err = parseCount(req.Rooms); err != nil {
		return domain.Booking{}, fmt.Errorf("rooms: %w", err)
	}
	if b.Guests, err = parseCount(req.Guests); err != nil {
		return domain.Booking{}, fmt.Errorf("guests: %w", err)
	}

	total, ok := mulPrice(int64(nights), int64(b.Rooms), h.NightlyPrice)
	if !ok {
		return domain.Booking{}, fmt.Errorf("total price: %w", domain.ErrInvalidQuantity)
	}
	b.TotalPrice = total
	return b, nil
}

// mulPrice multiplies positive factors, reporting false on int64 overflow.
func mulPrice(factors ...int64) (int64, bool) {
	total := int64(1)
	for _, f := range factors {
		if f != 0 && total > math.MaxInt64/f {
			return 0, false
		}
		total *= f
	}
	return total, true
}

// parseCount reads an integer in [1, MaxCount]; blank input means the form
// default of 1.
func parseCount(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 1, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > domain.MaxCount {
		return 0, domain.ErrInvalidQuantity
	}
	return n, nil
}
