package httpserver

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"hotel_booking/internal/adapters/observability"
)

// Timeout bounds each request; d <= 0 disables it.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}
		return http.TimeoutHandler(next, d, "timeout")
	}
}

// statusRecorder remembers the first status code written.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (w *statusRecorder) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusRecorder) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.ResponseWriter.Write(b)
}

func (w *statusRecorder) Status() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

// requestSummary is what one served request reports to metrics and the access log.
type requestSummary struct {
	route    string
	method   string
	status   int
	duration time.Duration
}

// Observe records each request once and fans the summary out to the
// prometheus collectors and the access log.
func Observe(l zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(rec, r)

			s := requestSummary{
				route:    routeOf(r),
				method:   r.Method,
				status:   rec.Status(),
				duration: time.Since(start),
			}
			observability.ObserveHTTP(s.route, s.method, s.status, s.duration)
			accessLog(l, r, s)
		})
	}
}

func accessLog(l zerolog.Logger, r *http.Request, s requestSummary) {
	ev := l.Info()
	if s.status >= http.StatusInternalServerError {
		ev = l.Warn()
	}
	ev.Str("route", s.route).
		Str("request_id", chimw.GetReqID(r.Context())).
		Str("method", s.method).
		Int("status", s.status).
		Dur("duration", s.duration).
		Str("remote", remoteIP(r)).
		Str("ua", r.UserAgent()).
		Msg("http_request")
}

// routeOf prefers the matched chi pattern so /hotel/1 and /hotel/2 share a series.
func routeOf(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return r.URL.Path
}

// Picks first X-Forwarded-For IP, else X-Real-IP, else RemoteAddr host.
func remoteIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xrip := r.Header.Get("X-Real-IP"); xrip != "" {
		return xrip
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}
