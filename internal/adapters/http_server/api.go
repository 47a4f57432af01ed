package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"hotel_booking/internal/adapters/observability"
	"hotel_booking/internal/domain"
)

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

type listResponse[T any] struct {
	Items []T `json:"items"`
}

// bookingBody is the JSON form of a booking request. rooms and guests may be
// sent as numbers or strings; validation happens in the service either way.
type bookingBody struct {
	GuestName  string    `json:"guest_name"`
	GuestEmail string    `json:"guest_email"`
	GuestPhone string    `json:"guest_phone"`
	CheckIn    string    `json:"check_in"`
	CheckOut   string    `json:"check_out"`
	Rooms      countText `json:"rooms"`
	Guests     countText `json:"guests"`
}

type countText string

func (c *countText) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*c = countText(s)
		return nil
	}
	// keep the raw literal (e.g. 2, 1.5, true) for the service to judge
	*c = countText(strings.TrimSpace(string(b)))
	return nil
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeCached writes v as JSON with a weak ETag, answering 304 when the client
// already holds this version.
func writeCached(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if body == nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	writeJSON(w, http.StatusOK, body)
}

func writeJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write JSON body")
	}
}

func (h *Handlers) apiListHotels(w http.ResponseWriter, r *http.Request) {
	hs, err := h.Q.ListHotels(r.Context(), r.URL.Query().Get("city"))
	if err != nil {
		log.Error().Err(err).Msg("api list hotels failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	writeCached(w, r, listResponse[domain.Hotel]{Items: hs})
}

func (h *Handlers) apiListCities(w http.ResponseWriter, r *http.Request) {
	cs, err := h.Q.DistinctCities(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("api list cities failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	writeCached(w, r, listResponse[string]{Items: cs})
}

func (h *Handlers) apiGetHotel(w http.ResponseWriter, r *http.Request) {
	id, err := hotelID(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a positive number")
		return
	}
	hotel, err := h.Q.GetHotel(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeProblem(w, http.StatusNotFound, "Not Found", "hotel not found")
			return
		}
		log.Error().Err(err).Int64("hotel_id", id).Msg("api get hotel failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	writeCached(w, r, hotel)
}

func (h *Handlers) apiCreateBooking(w http.ResponseWriter, r *http.Request) {
	id, err := hotelID(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a positive number")
		return
	}
	var body bookingBody
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}

	b, err := h.B.CreateBooking(r.Context(), domain.BookingRequest{
		HotelID:    id,
		GuestName:  body.GuestName,
		GuestEmail: body.GuestEmail,
		GuestPhone: body.GuestPhone,
		CheckIn:    body.CheckIn,
		CheckOut:   body.CheckOut,
		Rooms:      string(body.Rooms),
		Guests:     string(body.Guests),
	})
	if err != nil {
		label, title := rejectionReason(err)
		switch label {
		case "":
			log.Error().Err(err).Int64("hotel_id", id).Msg("api create booking failed")
			writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
		case "not_found":
			observability.ObserveBooking(label)
			writeProblem(w, http.StatusNotFound, title, err.Error())
		default:
			observability.ObserveBooking(label)
			writeProblem(w, http.StatusBadRequest, title, err.Error())
		}
		return
	}

	observability.ObserveBooking("")
	out, err := json.Marshal(b)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

func (h *Handlers) apiListBookings(w http.ResponseWriter, r *http.Request) {
	list, err := h.Q.ListBookingsByEmail(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		log.Error().Err(err).Msg("api list bookings failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	out, err := json.Marshal(listResponse[domain.BookingView]{Items: list})
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	writeJSON(w, http.StatusOK, out)
}
