package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"hotel_booking/internal/app"
	"hotel_booking/internal/domain"
)

// ---- fakes ----

type fakeRepo struct {
	hotels   []domain.Hotel
	bookings []domain.BookingView
	calls    int
	err      error
}

func (f *fakeRepo) GetHotel(ctx context.Context, id int64) (domain.Hotel, error) {
	f.calls++
	for _, h := range f.hotels {
		if h.ID == id {
			return h, nil
		}
	}
	return domain.Hotel{}, domain.ErrNotFound
}

func (f *fakeRepo) ListHotels(ctx context.Context, city string) ([]domain.Hotel, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.Hotel
	for _, h := range f.hotels {
		if city == "" || h.City == city {
			out = append(out, h)
		}
	}
	return out, nil
}

func (f *fakeRepo) DistinctCities(ctx context.Context) ([]string, error) {
	return []string{"Jaipur", "Mumbai"}, nil
}

func (f *fakeRepo) ListBookingsByEmail(ctx context.Context, email string) ([]domain.BookingView, error) {
	f.calls++
	var out []domain.BookingView
	for _, b := range f.bookings {
		if b.GuestEmail == email {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeCache struct {
	store map[string]any
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	if c.store == nil {
		return false, nil
	}
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	switch d := dst.(type) {
	case *domain.Hotel:
		*d = v.(domain.Hotel)
	case *[]domain.Hotel:
		*d = v.([]domain.Hotel)
	case *[]string:
		*d = v.([]string)
	}
	return true, nil
}
func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string]any{}
	}
	c.store[key] = v
	return nil
}
func (c *fakeCache) Del(ctx context.Context, key string) error { return nil }

func demoHotels() []domain.Hotel {
	return []domain.Hotel{
		{ID: 1, Name: "The Royal Neemrana", City: "Jaipur", Area: "Civil Lines", NightlyPrice: 5200},
		{ID: 2, Name: "Marine Bay Residency", City: "Mumbai", Area: "Colaba", NightlyPrice: 6800},
	}
}

// ---- tests ----

func TestGetHotel_CacheMissThenHit(t *testing.T) {
	repo := &fakeRepo{hotels: demoHotels()}
	cache := &fakeCache{}
	q := app.NewQueryService(repo, repo, cache, 10*time.Minute)

	// Miss (first time, populates cache)
	h, err := q.GetHotel(context.Background(), 1)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if h.ID != 1 || h.Name != "The Royal Neemrana" {
		t.Fatalf("unexpected hotel: %+v", h)
	}

	// Mutate repo to ensure second read indeed comes from cache
	repo.hotels[0].Name = "SHOULD NOT SEE THIS"

	h2, err := q.GetHotel(context.Background(), 1)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if h2.Name != "The Royal Neemrana" {
		t.Fatalf("expected cached name, got %s", h2.Name)
	}
}

func TestGetHotel_NotFoundIsNotCached(t *testing.T) {
	repo := &fakeRepo{}
	cache := &fakeCache{}
	q := app.NewQueryService(repo, repo, cache, time.Minute)

	if _, err := q.GetHotel(context.Background(), 99); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(cache.store) != 0 {
		t.Fatalf("expected empty cache, got %v", cache.store)
	}
}

func TestListHotels_FilterAndCache(t *testing.T) {
	repo := &fakeRepo{hotels: demoHotels()}
	cache := &fakeCache{}
	q := app.NewQueryService(repo, repo, cache, 10*time.Minute)

	out, err := q.ListHotels(context.Background(), "Jaipur")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(out) != 1 || out[0].City != "Jaipur" {
		t.Fatalf("unexpected hotels: %+v", out)
	}

	// caller mutation must not leak into the cached copy
	out[0].Name = "Changed"
	out2, _ := q.ListHotels(context.Background(), "Jaipur")
	if out2[0].Name != "The Royal Neemrana" {
		t.Fatalf("expected cached name, got %s", out2[0].Name)
	}
	if repo.calls != 1 {
		t.Fatalf("expected one repo call, got %d", repo.calls)
	}
}

func TestBrowse(t *testing.T) {
	repo := &fakeRepo{hotels: demoHotels()}
	q := app.NewQueryService(repo, repo, app.NopCache{}, time.Minute)

	c, err := q.Browse(context.Background(), "")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(c.Hotels) != 2 || len(c.Cities) != 2 {
		t.Fatalf("unexpected catalogue: %+v", c)
	}

	repo.err = errors.New("db down")
	if _, err := q.Browse(context.Background(), "Mumbai"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestListBookingsByEmail_NormalizesAndSkipsBlank(t *testing.T) {
	repo := &fakeRepo{bookings: []domain.BookingView{
		{Booking: domain.Booking{ID: 7, GuestEmail: "foo@bar.com"}, HotelName: "The Royal Neemrana"},
	}}
	q := app.NewQueryService(repo, repo, app.NopCache{}, time.Minute)

	out, err := q.ListBookingsByEmail(context.Background(), "  Foo@Bar.com ")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(out) != 1 || out[0].ID != 7 {
		t.Fatalf("unexpected bookings: %+v", out)
	}

	calls := repo.calls
	out, err = q.ListBookingsByEmail(context.Background(), "   ")
	if err != nil || len(out) != 0 {
		t.Fatalf("expected empty result, got %+v, %v", out, err)
	}
	if repo.calls != calls {
		t.Fatalf("blank email must not reach the repository")
	}
}
