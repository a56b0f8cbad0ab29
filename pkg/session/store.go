package session

import (
	"context"

	"github.com/kroobeet/engine/pkg/db"
)

// Record is one row of the sessions table.
type Record struct {
	ID           string
	Data         string // JSON-encoded Data
	LastActivity int64  // unix seconds
}

// Store persists session records.
type Store interface {
	// GC deletes every record with LastActivity before the cutoff
	// and returns the number removed.
	GC(ctx context.Context, before int64) (int64, error)

	// Get returns ErrNotFound when no record has the id.
	Get(ctx context.Context, id string) (*Record, error)

	Create(ctx context.Context, rec *Record) error

	// Update overwrites data and last_activity of an existing record.
	Update(ctx context.Context, rec *Record) error

	Delete(ctx context.Context, id string) error
}

// SQLStore keeps sessions in the sessions table through a db.Querier.
type SQLStore struct {
	db db.Querier
}

// NewSQLStore creates a Store backed by q.
func NewSQLStore(q db.Querier) *SQLStore {
	return &SQLStore{db: q}
}

func (s *SQLStore) GC(ctx context.Context, before int64) (int64, error) {
	return s.db.Exec(ctx, "DELETE FROM sessions WHERE last_activity < $1", before)
}

func (s *SQLStore) Get(ctx context.Context, id string) (*Record, error) {
	rows, err := s.db.Query(ctx,
		"SELECT id, data, last_activity FROM sessions WHERE id = $1", id)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &Record{
		ID:           rows[0].String("id"),
		Data:         rows[0].String("data"),
		LastActivity: rows[0].Int64("last_activity"),
	}, nil
}

func (s *SQLStore) Create(ctx context.Context, rec *Record) error {
	_, err := s.db.Exec(ctx,
		"INSERT INTO sessions (id, data, last_activity) VALUES ($1, $2, $3)",
		rec.ID, rec.Data, rec.LastActivity)
	return err
}

func (s *SQLStore) Update(ctx context.Context, rec *Record) error {
	n, err := s.db.Exec(ctx,
		"UPDATE sessions SET data = $1, last_activity = $2 WHERE id = $3",
		rec.Data, rec.LastActivity, rec.ID)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, "DELETE FROM sessions WHERE id = $1", id)
	return err
}
