// internal/adapters/http_server/handlers.go
package httpserver

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"hotel_booking/internal/app"
	"hotel_booking/internal/domain"
)

type Handlers struct {
	Q     *app.QueryService
	B     *app.BookingService
	Flash *Flashes
	// Ready reports whether the store is reachable; nil means always ready.
	Ready func(ctx context.Context) error
	// Now is the clock for default stay dates; nil means time.Now.
	Now func() time.Time

	pages map[string]*template.Template
}

func (s *Server) MountHandlers(h *Handlers) error {
	pages, err := parsePages()
	if err != nil {
		return err
	}
	h.pages = pages
	if h.Now == nil {
		h.Now = time.Now
	}

	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/readyz", h.ready)
	s.mux.Handle("/static/*", staticHandler())

	s.mux.Get("/", h.home)
	s.mux.Get("/hotel/{id}", h.hotelDetail)
	s.mux.Post("/hotel/{id}", h.createBooking)
	s.mux.Get("/bookings", h.bookings)

	s.mux.Route("/api/v1", func(r chi.Router) {
		r.Get("/hotels", h.apiListHotels)
		r.Get("/cities", h.apiListCities)
		r.Get("/hotels/{id}", h.apiGetHotel)
		r.Post("/hotels/{id}/bookings", h.apiCreateBooking)
		r.Get("/bookings", h.apiListBookings)
	})
	return nil
}

func (h *Handlers) ready(w http.ResponseWriter, r *http.Request) {
	if h.Ready != nil {
		if err := h.Ready(r.Context()); err != nil {
			writeProblem(w, http.StatusServiceUnavailable, "Not Ready", err.Error())
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

func hotelID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%w: hotel id %q", domain.ErrNotFound, chi.URLParam(r, "id"))
	}
	return id, nil
}

// rejectionReason is the metrics label and API problem title for a booking
// failure; "" means the error is not a validation failure.
func rejectionReason(err error) (label, title string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return "not_found", "Hotel Not Found"
	case errors.Is(err, domain.ErrMissingFields):
		return "missing_fields", "Missing Fields"
	case errors.Is(err, domain.ErrDateFormat):
		return "date_format", "Invalid Date"
	case errors.Is(err, domain.ErrInvalidDateRange):
		return "invalid_date_range", "Invalid Date Range"
	case errors.Is(err, domain.ErrInvalidQuantity):
		return "invalid_quantity", "Invalid Quantity"
	}
	return "", ""
}

// userMessage is the flash text shown for a booking failure.
func userMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return "Hotel not found."
	case errors.Is(err, domain.ErrMissingFields):
		return "Please fill all booking details."
	case errors.Is(err, domain.ErrDateFormat):
		return "Please enter dates as YYYY-MM-DD."
	case errors.Is(err, domain.ErrInvalidDateRange):
		return "Check-out date must be after check-in date."
	case errors.Is(err, domain.ErrInvalidQuantity):
		return "Rooms and guests must be whole numbers from 1 to 100."
	}
	return "We could not save your booking. Please try again."
}
