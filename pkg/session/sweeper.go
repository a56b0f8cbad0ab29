package session

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

const defaultSweepTimeout = 30 * time.Second

// Sweeper runs Manager.GC on a cron schedule. It complements the
// collection done by every Start; it never replaces it.
type Sweeper struct {
	m      *Manager
	cron   *cron.Cron
	logger *slog.Logger
}

// NewSweeper schedules GC runs. The schedule uses the standard five-field
// cron syntax or descriptors such as "@every 10m".
func NewSweeper(m *Manager, schedule string) (*Sweeper, error) {
	s := &Sweeper{
		m:      m,
		cron:   cron.New(),
		logger: m.logger,
	}
	if _, err := s.cron.AddFunc(schedule, s.tick); err != nil {
		return nil, errors.Join(ErrInvalidSchedule, err)
	}
	return s, nil
}

func (s *Sweeper) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), defaultSweepTimeout)
	defer cancel()

	if _, err := s.RunOnce(ctx); err != nil {
		s.logger.WarnContext(ctx, "session sweep failed", slog.Any("error", err))
	}
}

// RunOnce performs a single sweep and returns the number of deleted sessions.
func (s *Sweeper) RunOnce(ctx context.Context) (int64, error) {
	n, err := s.m.GC(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.logger.InfoContext(ctx, "expired sessions swept", slog.Int64("deleted", n))
	}
	return n, nil
}

// Start begins the schedule. Its signature fits a startup hook.
func (s *Sweeper) Start(context.Context) error {
	s.cron.Start()
	return nil
}

// Stop halts the schedule and waits for a running sweep to finish.
// Its signature fits a shutdown hook.
func (s *Sweeper) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
