package session

import (
	"net/http"

	"github.com/kroobeet/engine/pkg/cookie"
)

// DefaultCookieName is the cookie carrying the session id.
const DefaultCookieName = "__sid"

// Transport moves the session id between client and server.
type Transport interface {
	// Read returns the id presented by the client, if any.
	Read(r *http.Request) (string, bool)

	// Write hands the id to the client.
	Write(w http.ResponseWriter, id string)

	// Clear tells the client to forget the id.
	Clear(w http.ResponseWriter)
}

// CookieTransport carries the id in a cookie, signed when the cookie
// manager has a secret.
type CookieTransport struct {
	cookies *cookie.Manager
	name    string
	maxAge  int
}

// CookieOption configures a CookieTransport.
type CookieOption func(*CookieTransport)

// WithCookieName sets the cookie name. Defaults to "__sid".
func WithCookieName(name string) CookieOption {
	return func(t *CookieTransport) {
		if name != "" {
			t.name = name
		}
	}
}

// WithCookieMaxAge sets the cookie lifetime in seconds.
// Defaults to 0, a browser-session cookie.
func WithCookieMaxAge(seconds int) CookieOption {
	return func(t *CookieTransport) {
		if seconds >= 0 {
			t.maxAge = seconds
		}
	}
}

// NewCookieTransport creates a cookie transport. A nil manager uses
// cookie.New() defaults.
func NewCookieTransport(m *cookie.Manager, opts ...CookieOption) *CookieTransport {
	if m == nil {
		m = cookie.New()
	}
	t := &CookieTransport{cookies: m, name: DefaultCookieName}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *CookieTransport) Read(r *http.Request) (string, bool) {
	v, err := t.cookies.Read(r, t.name)
	if err != nil || v == "" {
		return "", false
	}
	return v, true
}

func (t *CookieTransport) Write(w http.ResponseWriter, id string) {
	t.cookies.Write(w, t.name, id, t.maxAge)
}

func (t *CookieTransport) Clear(w http.ResponseWriter) {
	t.cookies.Delete(w, t.name)
}
