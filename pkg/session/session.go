package session

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"net/http"

	"github.com/google/uuid"
)

type state uint8

const (
	stateUnstarted state = iota
	stateActive
	stateDestroyed
)

// Session is the per-request view of one persisted session.
// It is owned by a single request and must not be shared.
//
// Lifecycle: unstarted -> active (created or resumed) -> destroyed.
// Reads and writes only touch memory; Update persists them.
type Session struct {
	m    *Manager
	w    http.ResponseWriter
	r    *http.Request
	data Data

	state   state
	created bool
	// discarded is set when the client's id pointed at no record.
	discarded bool
}

// Start binds the session to its persisted record.
//
// Expired records are collected first. A client id with a live record resumes
// that record and refreshes its activity time. An unknown id is dropped and
// its cookie expired; the session stays unstarted until the next Start.
// Without an id a new record is created and the id sent to the client.
// Calling Start on an active or destroyed session does nothing.
func (s *Session) Start(ctx context.Context) {
	if s.state != stateUnstarted {
		return
	}

	if n, err := s.m.GC(ctx); err != nil {
		s.m.logger.WarnContext(ctx, "session gc failed", slog.Any("error", err))
	} else if n > 0 {
		s.m.logger.DebugContext(ctx, "session gc", slog.Int64("deleted", n))
	}

	if id, ok := s.clientID(); ok {
		s.resume(ctx, id)
		return
	}
	s.create(ctx)
}

func (s *Session) clientID() (string, bool) {
	if s.discarded {
		return "", false
	}
	id, ok := s.m.transport.Read(s.r)
	if !ok {
		return "", false
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}

func (s *Session) resume(ctx context.Context, id string) {
	rec, err := s.m.store.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.m.logger.WarnContext(ctx, "session lookup failed",
				slog.String("session_id", id),
				slog.Any("error", err),
			)
		}
		s.discarded = true
		s.data = Data{}
		s.m.transport.Clear(s.w)
		return
	}

	data, err := decodeData(rec.Data)
	if err != nil {
		s.m.logger.WarnContext(ctx, "session data corrupt, resetting",
			slog.String("session_id", id),
			slog.Any("error", err),
		)
		data = Data{}
	}
	data.ID = rec.ID

	s.data = data
	s.state = stateActive
	s.Update(ctx)
}

func (s *Session) create(ctx context.Context) {
	id, err := uuid.NewRandom()
	if err != nil {
		s.m.logger.ErrorContext(ctx, "session id generation failed", slog.Any("error", err))
		return
	}

	data := Data{ID: id.String()}
	raw, err := data.encode()
	if err != nil {
		s.m.logger.ErrorContext(ctx, "session encode failed", slog.Any("error", err))
		return
	}

	rec := &Record{ID: data.ID, Data: raw, LastActivity: s.m.now().Unix()}
	if err := s.m.store.Create(ctx, rec); err != nil {
		s.m.logger.WarnContext(ctx, "session create failed",
			slog.String("session_id", rec.ID),
			slog.Any("error", err),
		)
		return
	}

	s.data = data
	s.state = stateActive
	s.created = true
	s.m.transport.Write(s.w, data.ID)
}

// Update writes the whole in-memory view and the current time to the
// record. It does nothing unless the session is active.
func (s *Session) Update(ctx context.Context) {
	if s.state != stateActive {
		return
	}

	raw, err := s.data.encode()
	if err != nil {
		s.m.logger.ErrorContext(ctx, "session encode failed",
			slog.String("session_id", s.data.ID),
			slog.Any("error", err),
		)
		return
	}

	rec := &Record{ID: s.data.ID, Data: raw, LastActivity: s.m.now().Unix()}
	if err := s.m.store.Update(ctx, rec); err != nil {
		s.m.logger.WarnContext(ctx, "session update failed",
			slog.String("session_id", rec.ID),
			slog.Any("error", err),
		)
	}
}

// Destroy clears the view, deletes the record and expires the client cookie.
func (s *Session) Destroy(ctx context.Context) {
	if s.state == stateActive {
		if err := s.m.store.Delete(ctx, s.data.ID); err != nil {
			s.m.logger.WarnContext(ctx, "session delete failed",
				slog.String("session_id", s.data.ID),
				slog.Any("error", err),
			)
		}
	}
	s.data = Data{}
	s.state = stateDestroyed
	s.m.transport.Clear(s.w)
}

// ID returns the session id, or "" when the session is not active.
func (s *Session) ID() string {
	return s.data.ID
}

// Active reports whether the session is bound to a persisted record.
func (s *Session) Active() bool {
	return s.state == stateActive
}

// Created reports whether Start created a new record during this request.
func (s *Session) Created() bool {
	return s.created
}

// IsLoggedIn reports whether an authenticated identity is set.
func (s *Session) IsLoggedIn() bool {
	return s.data.Username != ""
}

// Username returns the authenticated identity.
func (s *Session) Username() string {
	return s.data.Username
}

// Login sets the authenticated identity. Call Update to persist it.
func (s *Session) Login(username string) {
	s.data.Username = username
}

// Get returns a value from the in-memory view.
func (s *Session) Get(key string) (any, bool) {
	v, ok := s.data.Values[key]
	return v, ok
}

// Set stores a value in the in-memory view. Call Update to persist it.
func (s *Session) Set(key string, val any) {
	if s.data.Values == nil {
		s.data.Values = make(map[string]any)
	}
	s.data.Values[key] = val
}

// Delete removes a value from the in-memory view.
func (s *Session) Delete(key string) {
	delete(s.data.Values, key)
}

// Data returns a copy of the in-memory view.
func (s *Session) Data() Data {
	d := s.data
	d.Values = maps.Clone(s.data.Values)
	return d
}

// Value returns a typed value from the session.
func Value[T any](s *Session, key string) (T, bool) {
	var zero T
	if s == nil {
		return zero, false
	}
	v, ok := s.Get(key)
	if !ok {
		return zero, false
	}
	typed, ok := v.(T)
	return typed, ok
}
