package session

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// DefaultTTL is how long a session survives without activity.
const DefaultTTL = 3600 * time.Second

// Manager creates request-scoped sessions sharing one store and transport.
// It is safe for concurrent use.
type Manager struct {
	store     Store
	transport Transport
	logger    *slog.Logger
	now       func() time.Time
	ttl       time.Duration
}

// Option configures a Manager.
type Option func(*Manager)

// WithTransport replaces the default cookie transport.
func WithTransport(t Transport) Option {
	return func(m *Manager) {
		if t != nil {
			m.transport = t
		}
	}
}

// WithTTL sets the inactivity window. Defaults to one hour.
func WithTTL(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.ttl = d
		}
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithLogger sets the logger for persistence failures.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewManager creates a Manager persisting through store.
func NewManager(store Store, opts ...Option) *Manager {
	m := &Manager{
		store:     store,
		transport: NewCookieTransport(nil),
		logger:    slog.New(slog.DiscardHandler),
		now:       time.Now,
		ttl:       DefaultTTL,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetLogger replaces the logger. Called by the app after options are applied.
func (m *Manager) SetLogger(l *slog.Logger) {
	if l != nil {
		m.logger = l
	}
}

// TTL returns the inactivity window.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Session returns an unstarted session bound to one request.
func (m *Manager) Session(w http.ResponseWriter, r *http.Request) *Session {
	return &Session{m: m, w: w, r: r}
}

// GC deletes every session idle for longer than the TTL.
func (m *Manager) GC(ctx context.Context) (int64, error) {
	return m.store.GC(ctx, m.now().Add(-m.ttl).Unix())
}
