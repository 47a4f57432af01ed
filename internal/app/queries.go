package app

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"hotel_booking/internal/domain"
)

// QueryService serves the read side. Hotels are immutable once seeded, so
// hotel reads go through the cache; bookings always hit the store.
type QueryService struct {
	hotels   domain.HotelRepository
	bookings domain.BookingRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewQueryService(h domain.HotelRepository, b domain.BookingRepository, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{hotels: h, bookings: b, cache: c, cacheTTL: ttl}
}

// Catalogue is what the home page renders.
type Catalogue struct {
	Hotels []domain.Hotel
	Cities []string
}

func (s *QueryService) GetHotel(ctx context.Context, id int64) (domain.Hotel, error) {
	key := fmt.Sprintf("hotel:%d", id)
	var h domain.Hotel
	if ok, _ := s.cache.Get(ctx, key, &h); ok {
		return h, nil
	}
	h, err := s.hotels.GetHotel(ctx, id)
	if err != nil {
		return domain.Hotel{}, err
	}
	_ = s.cache.Set(ctx, key, h, s.ttl())
	return h, nil
}

// ListHotels returns every hotel, or only those whose city equals city exactly.
func (s *QueryService) ListHotels(ctx context.Context, city string) ([]domain.Hotel, error) {
	key := "hotels:city:" + city
	var out []domain.Hotel
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}
	hs, err := s.hotels.ListHotels(ctx, city)
	if err != nil {
		return nil, err
	}
	// cache a copy so callers can't mutate the cached value
	cp := make([]domain.Hotel, len(hs))
	copy(cp, hs)
	_ = s.cache.Set(ctx, key, cp, s.ttl())
	return hs, nil
}

func (s *QueryService) DistinctCities(ctx context.Context) ([]string, error) {
	const key = "hotels:cities"
	var out []string
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}
	cs, err := s.hotels.DistinctCities(ctx)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Set(ctx, key, cs, s.ttl())
	return cs, nil
}

// Browse loads the filtered hotel list and the city options concurrently.
func (s *QueryService) Browse(ctx context.Context, city string) (Catalogue, error) {
	var c Catalogue
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		hs, err := s.ListHotels(gctx, city)
		c.Hotels = hs
		return err
	})
	g.Go(func() error {
		cs, err := s.DistinctCities(gctx)
		c.Cities = cs
		return err
	})
	if err := g.Wait(); err != nil {
		return Catalogue{}, err
	}
	return c, nil
}

// ListBookingsByEmail returns the guest's bookings newest first. A blank email
// yields nothing; there is no "list all" mode.
func (s *QueryService) ListBookingsByEmail(ctx context.Context, email string) ([]domain.BookingView, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return []domain.BookingView{}, nil
	}
	return s.bookings.ListBookingsByEmail(ctx, email)
}

func (s *QueryService) ttl() int { return int(s.cacheTTL.Seconds()) }

// NopCache is used when no cache backend is configured.
type NopCache struct{}

func (NopCache) Get(context.Context, string, any) (bool, error) { return false, nil }
func (NopCache) Set(context.Context, string, any, int) error    { return nil }
func (NopCache) Del(context.Context, string) error              { return nil }
