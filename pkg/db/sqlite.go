package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

// openSQLite opens a SQLite database through modernc.org/sqlite.
// Pragmas are injected into the DSN so they apply to every pooled connection.
func openSQLite(ctx context.Context, cfg Config) (*sql.DB, error) {
	dsn := cfg.DSN
	if dsn == "" {
		return nil, errors.Join(ErrFailedToParseDBConfig, errors.New("empty sqlite dsn"))
	}

	if !strings.Contains(dsn, "busy_timeout") && cfg.BusyTimeout > 0 {
		dsn = appendParam(dsn, fmt.Sprintf("_pragma=busy_timeout(%d)", cfg.BusyTimeout))
	}
	if !strings.Contains(dsn, "foreign_keys") {
		dsn = appendParam(dsn, "_pragma=foreign_keys(1)")
	}

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Join(ErrFailedToOpenDBConnection, err)
	}

	if isMemoryDSN(cfg.DSN) {
		// Each connection to :memory: is a separate database.
		conn.SetMaxOpenConns(1)
	} else {
		if cfg.MaxOpenConns > 0 {
			conn.SetMaxOpenConns(int(cfg.MaxOpenConns))
			conn.SetMaxIdleConns(int(cfg.MaxOpenConns))
		}
		if cfg.MaxConnLifetime > 0 {
			conn.SetConnMaxLifetime(cfg.MaxConnLifetime)
		}
		if _, err := conn.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
			_ = conn.Close()
			return nil, errors.Join(ErrFailedToOpenDBConnection, err)
		}
	}

	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, errors.Join(ErrFailedToOpenDBConnection, err)
	}
	return conn, nil
}

func isMemoryDSN(dsn string) bool {
	return strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
}

func appendParam(dsn, param string) string {
	if strings.Contains(dsn, "?") {
		return dsn + "&" + param
	}
	return dsn + "?" + param
}
