package httpserver

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rs/zerolog/log"

	"hotel_booking/internal/adapters/observability"
	"hotel_booking/internal/domain"
)

type homePage struct {
	Flashes      []Flash
	Hotels       []domain.Hotel
	Cities       []string
	SelectedCity string
	Guests       string
	CheckIn      string
	CheckOut     string
}

type detailPage struct {
	Flashes         []Flash
	Hotel           domain.Hotel
	DefaultCheckIn  string
	DefaultCheckOut string
}

type bookingsPage struct {
	Flashes  []Flash
	Bookings []domain.BookingView
	Email    string
}

func (h *Handlers) home(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	city := q.Get("city")
	guests := q.Get("guests")
	if guests == "" {
		guests = "2"
	}

	cat, err := h.Q.Browse(r.Context(), city)
	if err != nil {
		log.Error().Err(err).Str("city", city).Msg("browse hotels failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.render(w, r, "index.html", homePage{
		Flashes:      h.Flash.Peek(r),
		Hotels:       cat.Hotels,
		Cities:       cat.Cities,
		SelectedCity: city,
		Guests:       guests,
		CheckIn:      q.Get("check_in"),
		CheckOut:     q.Get("check_out"),
	})
}

func (h *Handlers) hotelDetail(w http.ResponseWriter, r *http.Request) {
	hotel, ok := h.loadHotel(w, r)
	if !ok {
		return
	}
	today := h.Now()
	h.render(w, r, "hotel_detail.html", detailPage{
		Flashes:         h.Flash.Peek(r),
		Hotel:           hotel,
		DefaultCheckIn:  today.AddDate(0, 0, 1).Format(domain.DateLayout),
		DefaultCheckOut: today.AddDate(0, 0, 2).Format(domain.DateLayout),
	})
}

// loadHotel resolves {id}; on a miss it flashes and redirects home.
func (h *Handlers) loadHotel(w http.ResponseWriter, r *http.Request) (domain.Hotel, bool) {
	id, err := hotelID(r)
	if err == nil {
		var hotel domain.Hotel
		if hotel, err = h.Q.GetHotel(r.Context(), id); err == nil {
			return hotel, true
		}
	}
	if !errors.Is(err, domain.ErrNotFound) {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("load hotel failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return domain.Hotel{}, false
	}
	h.Flash.Add(w, r, "error", "Hotel not found.")
	http.Redirect(w, r, "/", http.StatusFound)
	return domain.Hotel{}, false
}

func (h *Handlers) createBooking(w http.ResponseWriter, r *http.Request) {
	id, err := hotelID(r)
	if err != nil {
		h.Flash.Add(w, r, "error", userMessage(err))
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	b, err := h.B.CreateBooking(r.Context(), domain.BookingRequest{
		HotelID:    id,
		GuestName:  r.PostForm.Get("guest_name"),
		GuestEmail: r.PostForm.Get("guest_email"),
		GuestPhone: r.PostForm.Get("guest_phone"),
		CheckIn:    r.PostForm.Get("check_in"),
		CheckOut:   r.PostForm.Get("check_out"),
		Rooms:      r.PostForm.Get("rooms"),
		Guests:     r.PostForm.Get("guests"),
	})
	if err != nil {
		label, _ := rejectionReason(err)
		if label == "" {
			log.Error().Err(err).Int64("hotel_id", id).Msg("create booking failed")
		} else {
			observability.ObserveBooking(label)
		}
		h.Flash.Add(w, r, "error", userMessage(err))
		back := "/hotel/" + strconv.FormatInt(id, 10)
		if label == "not_found" {
			back = "/"
		}
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}

	observability.ObserveBooking("")
	h.Flash.Add(w, r, "success", "Booking confirmed successfully!")
	http.Redirect(w, r, "/bookings?email="+url.QueryEscape(b.GuestEmail), http.StatusSeeOther)
}

func (h *Handlers) bookings(w http.ResponseWriter, r *http.Request) {
	email := domain.NormalizeEmail(r.URL.Query().Get("email"))
	list, err := h.Q.ListBookingsByEmail(r.Context(), email)
	if err != nil {
		log.Error().Err(err).Msg("list bookings failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	h.render(w, r, "bookings.html", bookingsPage{
		Flashes:  h.Flash.Peek(r),
		Bookings: list,
		Email:    email,
	})
}
