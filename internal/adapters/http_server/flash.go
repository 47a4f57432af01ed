package httpserver

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
)

const flashCookie = "flash"

type Flash struct {
	Category string `json:"c"` // success|error
	Message  string `json:"m"`
}

// Flashes carries one-shot messages across a redirect in an HMAC-signed
// cookie. Nothing is kept server side.
type Flashes struct{ key []byte }

func NewFlashes(secret string) *Flashes { return &Flashes{key: []byte(secret)} }

func (f *Flashes) Add(w http.ResponseWriter, r *http.Request, category, msg string) {
	list := f.read(r)
	list = append(list, Flash{Category: category, Message: msg})
	payload, err := json.Marshal(list)
	if err != nil {
		log.Error().Err(err).Msg("encode flash failed")
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    f.sign(payload),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Peek returns pending messages without consuming them.
func (f *Flashes) Peek(r *http.Request) []Flash { return f.read(r) }

// Clear expires the cookie once its messages have been shown.
func (f *Flashes) Clear(w http.ResponseWriter, r *http.Request) {
	if _, err := r.Cookie(flashCookie); err == nil {
		http.SetCookie(w, &http.Cookie{Name: flashCookie, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
	}
}

func (f *Flashes) read(r *http.Request) []Flash {
	c, err := r.Cookie(flashCookie)
	if err != nil || c.Value == "" {
		return nil
	}
	payload, ok := f.verify(c.Value)
	if !ok {
		log.Warn().Msg("flash cookie signature mismatch")
		return nil
	}
	var list []Flash
	if err := json.Unmarshal(payload, &list); err != nil {
		return nil
	}
	return list
}

func (f *Flashes) sign(payload []byte) string {
	enc := base64.RawURLEncoding
	return enc.EncodeToString(payload) + "." + enc.EncodeToString(f.mac(payload))
}

func (f *Flashes) verify(v string) ([]byte, bool) {
	enc := base64.RawURLEncoding
	body, sig, ok := strings.Cut(v, ".")
	if !ok {
		return nil, false
	}
	payload, err := enc.DecodeString(body)
	if err != nil {
		return nil, false
	}
	got, err := enc.DecodeString(sig)
	if err != nil || !hmac.Equal(got, f.mac(payload)) {
		return nil, false
	}
	return payload, true
}

func (f *Flashes) mac(payload []byte) []byte {
	m := hmac.New(sha256.New, f.key)
	m.Write(payload)
	return m.Sum(nil)
}
