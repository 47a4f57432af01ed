package httpserver_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	server "hotel_booking/internal/adapters/http_server"
	"hotel_booking/internal/app"
	"hotel_booking/internal/storage/sqlstore"
)

var fixedNow = time.Date(2024, 2, 27, 18, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "web.db") + "?_pragma=foreign_keys(1)"
	db, err := sqlstore.Open(sqlstore.SQLite, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, sqlstore.Init(context.Background(), db, sqlstore.SQLite))

	repo := sqlstore.New(db)
	srv := server.New(5 * time.Second)
	require.NoError(t, srv.MountHandlers(&server.Handlers{
		Q:     app.NewQueryService(repo, repo, app.NopCache{}, time.Minute),
		B:     app.NewBookingService(repo),
		Flash: server.NewFlashes("test-secret"),
		Ready: repo.Ping,
		Now:   func() time.Time { return fixedNow },
	}))
	ts := httptest.NewServer(srv.Mux())
	t.Cleanup(ts.Close)
	return ts
}

// newClient keeps cookies and does not follow redirects.
func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func get(t *testing.T, c *http.Client, u string) (*http.Response, string) {
	t.Helper()
	res, err := c.Get(u)
	require.NoError(t, err)
	defer res.Body.Close()
	b, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res, string(b)
}

func bookingForm(checkIn, checkOut, rooms string) url.Values {
	return url.Values{
		"guest_name":  {"Asha Rao"},
		"guest_email": {"Foo@Bar.com"},
		"guest_phone": {"9876543210"},
		"check_in":    {checkIn},
		"check_out":   {checkOut},
		"rooms":       {rooms},
		"guests":      {"2"},
	}
}

func TestHome_ListsAndFilters(t *testing.T) {
	ts := newTestServer(t)
	c := newClient(t)

	res, body := get(t, c, ts.URL+"/")
	require.Equal(t, http.StatusOK, res.StatusCode)
	for _, name := range []string{"The Royal Neemrana", "Marine Bay Residency", "Ganga View Haveli"} {
		assert.Contains(t, body, name)
	}
	assert.Contains(t, body, `value="2"`, "guests defaults to 2")
	assert.Contains(t, body, "₹5,200")

	res, body = get(t, c, ts.URL+"/?city=Jaipur&check_in=2024-03-01&check_out=2024-03-04&guests=3")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "The Royal Neemrana")
	assert.NotContains(t, body, "Marine Bay Residency")
	assert.Contains(t, body, `value="2024-03-01"`)
	assert.Contains(t, body, `<option value="Jaipur" selected>`)
	assert.Contains(t, body, `<option value="Varanasi">`, "all cities stay selectable")
}

func TestHotelDetail_DefaultDates(t *testing.T) {
	ts := newTestServer(t)
	res, body := get(t, newClient(t), ts.URL+"/hotel/1")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "The Royal Neemrana")
	assert.Contains(t, body, `value="2024-02-28"`)
	assert.Contains(t, body, `value="2024-02-29"`)
}

func TestHotelDetail_NotFoundRedirectsHome(t *testing.T) {
	ts := newTestServer(t)
	c := newClient(t)

	for _, path := range []string{"/hotel/999", "/hotel/abc"} {
		res, _ := get(t, c, ts.URL+path)
		require.Equal(t, http.StatusFound, res.StatusCode, path)
		assert.Equal(t, "/", res.Header.Get("Location"))

		_, body := get(t, c, ts.URL+"/")
		assert.Contains(t, body, "Hotel not found.")

		// flash is one-shot
		_, body = get(t, c, ts.URL+"/")
		assert.NotContains(t, body, "Hotel not found.")
	}
}

func TestCreateBooking_SuccessFlow(t *testing.T) {
	ts := newTestServer(t)
	c := newClient(t)

	res, err := c.PostForm(ts.URL+"/hotel/1", bookingForm("2024-03-01", "2024-03-04", "2"))
	require.NoError(t, err)
	res.Body.Close()
	require.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, "/bookings?email=foo%40bar.com", res.Header.Get("Location"))

	_, body := get(t, c, ts.URL+res.Header.Get("Location"))
	assert.Contains(t, body, "Booking confirmed successfully!")
	assert.Contains(t, body, "The Royal Neemrana")
	assert.Contains(t, body, "₹31,200")
	assert.Contains(t, body, "3 night(s)")

	// lookup is case-insensitive through normalization
	_, body = get(t, c, ts.URL+"/bookings?email=+FOO@BAR.COM+")
	assert.Contains(t, body, "₹31,200")

	_, body = get(t, c, ts.URL+"/bookings")
	assert.NotContains(t, body, "₹31,200")
	assert.Contains(t, body, "Enter the email you booked with.")
}

func TestCreateBooking_ValidationRedirectsBack(t *testing.T) {
	ts := newTestServer(t)
	c := newClient(t)

	cases := []struct {
		form url.Values
		msg  string
	}{
		{bookingForm("2024-03-01", "2024-03-01", "1"), "Check-out date must be after check-in date."},
		{bookingForm("", "2024-03-01", "1"), "Please fill all booking details."},
		{bookingForm("03/01/2024", "2024-03-04", "1"), "Please enter dates as YYYY-MM-DD."},
		{bookingForm("2024-03-01", "2024-03-04", "lots"), "Rooms and guests must be whole numbers from 1 to 100."},
	}
	for _, tc := range cases {
		res, err := c.PostForm(ts.URL+"/hotel/1", tc.form)
		require.NoError(t, err)
		res.Body.Close()
		require.Equal(t, http.StatusSeeOther, res.StatusCode)
		assert.Equal(t, "/hotel/1", res.Header.Get("Location"))

		_, body := get(t, c, ts.URL+"/hotel/1")
		assert.Contains(t, body, tc.msg)
	}

	_, body := get(t, c, ts.URL+"/bookings?email=foo@bar.com")
	assert.Contains(t, body, "No bookings found for foo@bar.com.")
}

func TestCreateBooking_UnknownHotel(t *testing.T) {
	ts := newTestServer(t)
	c := newClient(t)

	res, err := c.PostForm(ts.URL+"/hotel/999", bookingForm("2024-03-01", "2024-03-04", "1"))
	require.NoError(t, err)
	res.Body.Close()
	require.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, "/", res.Header.Get("Location"))
}

func TestAPI_BookingRoundTrip(t *testing.T) {
	ts := newTestServer(t)
	c := newClient(t)

	post := func(path, body string) *http.Response {
		res, err := c.Post(ts.URL+path, "application/json", strings.NewReader(body))
		require.NoError(t, err)
		return res
	}

	res := post("/api/v1/hotels/1/bookings", `{"guest_name":"Asha","guest_email":"Foo@Bar.com","guest_phone":"1","check_in":"2024-03-01","check_out":"2024-03-04","rooms":2,"guests":"2"}`)
	defer res.Body.Close()
	require.Equal(t, http.StatusCreated, res.StatusCode)
	var created struct {
		ID         int64  `json:"id"`
		GuestEmail string `json:"guest_email"`
		TotalPrice int64  `json:"total_price"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&created))
	assert.Equal(t, int64(31200), created.TotalPrice)
	assert.Equal(t, "foo@bar.com", created.GuestEmail)

	bad := post("/api/v1/hotels/1/bookings", `{"guest_name":"Asha","guest_email":"a@b.c","guest_phone":"1","check_in":"2024-03-01","check_out":"2024-03-04","rooms":1.5}`)
	defer bad.Body.Close()
	require.Equal(t, http.StatusBadRequest, bad.StatusCode)
	assert.Equal(t, "application/problem+json", bad.Header.Get("Content-Type"))
	var p struct {
		Title string `json:"title"`
	}
	require.NoError(t, json.NewDecoder(bad.Body).Decode(&p))
	assert.Equal(t, "Invalid Quantity", p.Title)

	missing := post("/api/v1/hotels/42/bookings", `{}`)
	missing.Body.Close()
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)

	_, body := get(t, c, ts.URL+"/api/v1/bookings?email=FOO@bar.com")
	var list struct {
		Items []struct {
			ID         int64  `json:"id"`
			HotelName  string `json:"hotel_name"`
			TotalPrice int64  `json:"total_price"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &list))
	require.Len(t, list.Items, 1)
	assert.Equal(t, created.ID, list.Items[0].ID)
	assert.Equal(t, "The Royal Neemrana", list.Items[0].HotelName)
}

func TestAPI_HotelETag(t *testing.T) {
	ts := newTestServer(t)
	c := newClient(t)

	res, body := get(t, c, ts.URL+"/api/v1/hotels/1")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, `"nightly_price":5200`)
	etag := res.Header.Get("ETag")
	require.NotEmpty(t, etag)

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/api/v1/hotels/1", nil)
	req.Header.Set("If-None-Match", etag)
	res2, err := c.Do(req)
	require.NoError(t, err)
	res2.Body.Close()
	assert.Equal(t, http.StatusNotModified, res2.StatusCode)

	res, _ = get(t, c, ts.URL+"/api/v1/hotels/999")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	_, body = get(t, c, ts.URL+"/api/v1/hotels?city=Kochi")
	assert.Contains(t, body, "Backwater Bloom Resort")
	assert.NotContains(t, body, "Coromandel Crown")

	_, body = get(t, c, ts.URL+"/api/v1/cities")
	assert.JSONEq(t, `{"items":["Chennai","Jaipur","Kochi","Manali","Mumbai","Varanasi"]}`, body)
}

func TestHealthAndStatic(t *testing.T) {
	ts := newTestServer(t)
	c := newClient(t)

	res, body := get(t, c, ts.URL+"/healthz")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "ok", body)

	res, _ = get(t, c, ts.URL+"/readyz")
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res, body = get(t, c, ts.URL+"/static/images/jaipur.svg")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "<svg")
}
