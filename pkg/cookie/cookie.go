package cookie

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
)

var (
	ErrNotFound  = errors.New("cookie: not found")
	ErrSignature = errors.New("cookie: invalid signature")
	ErrBadSecret = errors.New("cookie: secret must be 32+ bytes")
)

// MinSecretLength is the shortest secret accepted by WithSecret.
const MinSecretLength = 32

// Manager writes cookies from one attribute template.
type Manager struct {
	tmpl  http.Cookie
	codec codec
}

type Option func(*Manager)

// New creates a Manager. Cookies default to path "/", HttpOnly and
// SameSite=Lax, and are stored unsigned.
func New(opts ...Option) *Manager {
	m := &Manager{
		tmpl: http.Cookie{
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		},
		codec: plain{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ValidateSecret reports whether WithSecret would accept secret.
// An empty secret is valid and means unsigned cookies.
func ValidateSecret(secret string) error {
	if secret != "" && len(secret) < MinSecretLength {
		return ErrBadSecret
	}
	return nil
}

// WithSecret signs every cookie with secret. Secrets shorter than
// MinSecretLength are ignored; check them with ValidateSecret first.
func WithSecret(secret string) Option {
	return func(m *Manager) {
		if len(secret) >= MinSecretLength {
			m.codec = signer{key: []byte(secret)}
		}
	}
}

func WithDomain(domain string) Option {
	return func(m *Manager) { m.tmpl.Domain = domain }
}

func WithPath(path string) Option {
	return func(m *Manager) {
		if path != "" {
			m.tmpl.Path = path
		}
	}
}

func WithSecure(secure bool) Option {
	return func(m *Manager) { m.tmpl.Secure = secure }
}

func WithHTTPOnly(httpOnly bool) Option {
	return func(m *Manager) { m.tmpl.HttpOnly = httpOnly }
}

func WithSameSite(ss http.SameSite) Option {
	return func(m *Manager) { m.tmpl.SameSite = ss }
}

// Signed reports whether cookies are signed.
func (m *Manager) Signed() bool {
	_, ok := m.codec.(signer)
	return ok
}

// Read returns the decoded value of the named cookie. A signed manager
// rejects values it did not sign with ErrSignature.
func (m *Manager) Read(r *http.Request, name string) (string, error) {
	c, err := r.Cookie(name)
	if errors.Is(err, http.ErrNoCookie) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return m.codec.decode(c.Value)
}

// Write sets the named cookie. maxAge 0 makes a browser-session cookie.
func (m *Manager) Write(w http.ResponseWriter, name, value string, maxAge int) {
	http.SetCookie(w, m.build(name, m.codec.encode(value), maxAge))
}

// Delete expires the named cookie.
func (m *Manager) Delete(w http.ResponseWriter, name string) {
	http.SetCookie(w, m.build(name, "", -1))
}

func (m *Manager) build(name, value string, maxAge int) *http.Cookie {
	c := m.tmpl
	c.Name = name
	c.Value = value
	c.MaxAge = maxAge
	return &c
}

type codec interface {
	encode(value string) string
	decode(raw string) (string, error)
}

type plain struct{}

func (plain) encode(value string) string { return value }

func (plain) decode(raw string) (string, error) { return raw, nil }

// signer stores base64(value) "." base64(mac).
type signer struct {
	key []byte
}

var b64 = base64.RawURLEncoding

func (s signer) mac(value []byte) []byte {
	h := hmac.New(sha256.New, s.key)
	h.Write(value)
	return h.Sum(nil)
}

func (s signer) encode(value string) string {
	return b64.EncodeToString([]byte(value)) + "." + b64.EncodeToString(s.mac([]byte(value)))
}

func (s signer) decode(raw string) (string, error) {
	encValue, encSig, ok := strings.Cut(raw, ".")
	if !ok {
		return "", ErrSignature
	}
	value, err := b64.DecodeString(encValue)
	if err != nil {
		return "", ErrSignature
	}
	sig, err := b64.DecodeString(encSig)
	if err != nil || !hmac.Equal(sig, s.mac(value)) {
		return "", ErrSignature
	}
	return string(value), nil
}
