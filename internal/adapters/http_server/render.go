package httpserver

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"hotel_booking/internal/domain"
)

//go:embed web/templates/*.html web/static
var webFS embed.FS

var pageNames = []string{"index.html", "hotel_detail.html", "bookings.html"}

var funcs = template.FuncMap{
	"money": money,
	"nights": func(in, out string) int {
		n, err := domain.Nights(in, out)
		if err != nil {
			return 0
		}
		return n
	},
	"stamp": func(b domain.Booking) string { return b.CreatedAt.Format("02 Jan 2006, 15:04") },
}

// parsePages builds one template set per page so each can define "content".
func parsePages() (map[string]*template.Template, error) {
	out := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.New("layout.html").Funcs(funcs).
			ParseFS(webFS, "web/templates/layout.html", "web/templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		out[name] = t
	}
	return out, nil
}

func staticHandler() http.Handler {
	sub, err := fs.Sub(webFS, "web/static")
	if err != nil {
		panic(err) // embedded path is fixed at build time
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}

// render executes into a buffer first so a template error never leaves a
// half-written page.
// render executes the page into a buffer and only then consumes the flash
// cookie, so a failed render leaves pending messages for the next page.
func (h *Handlers) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	t, ok := h.pages[name]
	if !ok {
		http.Error(w, "unknown page", http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		log.Error().Err(err).Str("page", name).Msg("render failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	h.Flash.Clear(w, r)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		log.Error().Err(err).Str("page", name).Msg("write page failed")
	}
}

// money formats whole rupees with thousands separators, e.g. 31200 -> "₹31,200".
func money(v int64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := strconv.FormatInt(v, 10)
	var b []byte
	for i := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b = append(b, ',')
		}
		b = append(b, s[i])
	}
	if neg {
		return "-₹" + string(b)
	}
	return "₹" + string(b)
}
