package db

import (
	"context"
	"errors"
)

// Shutdown returns a hook that closes the database during graceful shutdown.
func Shutdown(d *DB) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		return d.Close()
	}
}

// Pinger is anything that can verify connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Healthcheck returns a readiness check pinging the database.
func Healthcheck(p Pinger) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if err := p.Ping(ctx); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
