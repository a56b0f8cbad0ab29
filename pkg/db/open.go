package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
)

// DB is an open database handle. It implements [Querier].
type DB struct {
	Querier

	std     *sql.DB
	pool    *pgxpool.Pool
	dialect Dialect
}

// Open connects to the backend selected by cfg.Driver.
func Open(ctx context.Context, cfg Config) (*DB, error) {
	switch cfg.Driver {
	case DialectSQLite, "":
		conn, err := openSQLite(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &DB{
			Querier: &sqlQuerier{db: conn},
			std:     conn,
			dialect: DialectSQLite,
		}, nil

	case DialectPostgres:
		pool, err := connectPostgres(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &DB{
			Querier: &poolQuerier{pool: pool},
			// Shares the pool's connections; closing the pool closes both.
			std:     stdlib.OpenDBFromPool(pool),
			pool:    pool,
			dialect: DialectPostgres,
		}, nil

	default:
		return nil, errors.Join(ErrUnknownDriver, fmt.Errorf("driver %q", cfg.Driver))
	}
}

// Dialect reports the backend in use.
func (d *DB) Dialect() Dialect {
	return d.dialect
}

// Ping verifies the connection is alive.
func (d *DB) Ping(ctx context.Context) error {
	if d.pool != nil {
		return d.pool.Ping(ctx)
	}
	return d.std.PingContext(ctx)
}

// Close releases all connections.
func (d *DB) Close() error {
	if d.pool != nil {
		d.pool.Close()
		return nil
	}
	return d.std.Close()
}
