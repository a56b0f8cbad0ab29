package db

import "time"

// Dialect identifies the SQL backend.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// gooseDialect maps the backend to the dialect name goose expects.
func (d Dialect) gooseDialect() string {
	if d == DialectSQLite {
		return "sqlite3"
	}
	return string(d)
}

// Config holds connection settings. The tags let it be embedded in a
// kong command line.
type Config struct {
	// Driver selects the backend: "sqlite" or "postgres".
	Driver Dialect `help:"Database driver." enum:"sqlite,postgres" default:"sqlite" env:"DATABASE_DRIVER"`

	// DSN is a sqlite file name / URI or a PostgreSQL connection URL.
	DSN string `help:"Database DSN." default:"file:engine.db" env:"DATABASE_DSN"`

	MigrationsTable string `help:"Migration version table." default:"schema_migrations" env:"DATABASE_MIGRATIONS_TABLE"`

	// PostgreSQL pool health check frequency.
	HealthCheckPeriod time.Duration `help:"Pool health check period." default:"1m" env:"DATABASE_HEALTHCHECK_PERIOD"`

	MaxConnIdleTime time.Duration `help:"Max idle time per connection." default:"10m" env:"DATABASE_MAX_CONN_IDLE_TIME"`
	MaxConnLifetime time.Duration `help:"Max lifetime per connection." default:"30m" env:"DATABASE_MAX_CONN_LIFETIME"`

	// Startup retries for PostgreSQL. Attempt i waits i*RetryInterval.
	RetryAttempts int           `help:"Connection attempts." default:"3" env:"DATABASE_RETRY_ATTEMPTS"`
	RetryInterval time.Duration `help:"Base delay between attempts." default:"5s" env:"DATABASE_RETRY_INTERVAL"`

	MaxOpenConns int32 `help:"Max open connections." default:"10" env:"DATABASE_MAX_OPEN_CONNS"`
	MinConns     int32 `help:"Min pooled connections (postgres)." default:"2" env:"DATABASE_MIN_CONNS"`

	// SQLite lock wait in milliseconds.
	BusyTimeout int `help:"SQLite busy timeout in ms." default:"5000" env:"DATABASE_BUSY_TIMEOUT"`
}
