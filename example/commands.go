package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alecthomas/kong"

	"github.com/kroobeet/engine"
	"github.com/kroobeet/engine/middlewares"
	"github.com/kroobeet/engine/migrations"
	"github.com/kroobeet/engine/pkg/cookie"
	"github.com/kroobeet/engine/pkg/db"
	"github.com/kroobeet/engine/pkg/health"
	"github.com/kroobeet/engine/pkg/logger"
	"github.com/kroobeet/engine/pkg/session"
)

// Globals are shared by every command.
type Globals struct {
	Config    kong.ConfigFlag `help:"YAML config file."`
	LogLevel  string          `help:"Log level: debug, info, warn, error." default:"info" env:"ENGINE_LOG_LEVEL"`
	LogFormat string          `help:"Log format." enum:"json,text" default:"json" env:"ENGINE_LOG_FORMAT"`
	SentryDSN string          `help:"Sentry DSN; empty disables error reporting." env:"SENTRY_DSN"`
	DB        db.Config       `embed:"" prefix:"db-"`
}

func (g *Globals) logger() (*slog.Logger, error) {
	level, err := logger.ParseLevel(g.LogLevel)
	if err != nil {
		return nil, err
	}
	return logger.New(
		logger.WithLevel(level),
		logger.WithFormat(logger.Format(g.LogFormat)),
		logger.WithExtractors(middlewares.RequestIDExtractor()),
		logger.WithSentry(logger.SentryConfig{DSN: g.SentryDSN}),
	), nil
}

func (g *Globals) open(ctx context.Context, log *slog.Logger, migrate bool) (*db.DB, error) {
	conn, err := db.Open(ctx, g.DB)
	if err != nil {
		return nil, err
	}
	if !migrate {
		return conn, nil
	}

	fsys, err := migrations.For(string(conn.Dialect()))
	if err == nil {
		err = db.Migrate(ctx, conn, fsys, g.DB.MigrationsTable, log)
	}
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	return conn, nil
}

// ServeCmd runs the HTTP server until SIGINT or SIGTERM.
type ServeCmd struct {
	Listen          string        `help:"HTTP listen address." default:":8080" env:"ENGINE_LISTEN"`
	CookieSecret    string        `help:"Secret used to sign the session cookie." env:"ENGINE_COOKIE_SECRET"`
	SecureCookie    bool          `help:"Send the session cookie over HTTPS only." env:"ENGINE_SECURE_COOKIE"`
	SessionTTL      time.Duration `help:"Idle lifetime of a session." default:"1h" env:"ENGINE_SESSION_TTL"`
	SweepSchedule   string        `help:"Cron schedule for deleting expired sessions; empty disables it." default:"@every 10m" env:"ENGINE_SWEEP_SCHEDULE"`
	AutoMigrate     bool          `help:"Apply migrations on startup." default:"true" negatable:"" env:"ENGINE_AUTO_MIGRATE"`
	ShutdownTimeout time.Duration `help:"Graceful shutdown timeout." default:"30s" env:"ENGINE_SHUTDOWN_TIMEOUT"`
}

// Validate rejects a cookie secret too short to sign with. kong calls it
// after parsing.
func (c *ServeCmd) Validate() error {
	if err := cookie.ValidateSecret(c.CookieSecret); err != nil {
		return fmt.Errorf("--cookie-secret: %w", err)
	}
	return nil
}

func (c *ServeCmd) Run(ctx context.Context, g *Globals) error {
	log, err := g.logger()
	if err != nil {
		return err
	}

	conn, err := g.open(ctx, log, c.AutoMigrate)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	app := newApp(conn, appConfig{
		logger:       log,
		cookieSecret: c.CookieSecret,
		secureCookie: c.SecureCookie,
		sessionTTL:   c.SessionTTL,
	})

	opts := []engine.RunOption{
		engine.WithContext(ctx),
		engine.Logger(log),
		engine.ShutdownTimeout(c.ShutdownTimeout),
	}
	if c.SweepSchedule != "" {
		sweeper, err := session.NewSweeper(app.Sessions(), c.SweepSchedule)
		if err != nil {
			_ = conn.Close()
			return err
		}
		opts = append(opts, engine.StartupHook(sweeper.Start), engine.ShutdownHook(sweeper.Stop))
	}
	opts = append(opts, engine.ShutdownHook(db.Shutdown(conn)))

	return app.Run(c.Listen, opts...)
}

// MigrateCmd applies pending migrations.
type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx context.Context, g *Globals) error {
	log, err := g.logger()
	if err != nil {
		return err
	}
	conn, err := g.open(ctx, log, true)
	if err != nil {
		return err
	}
	log.Info("migrations applied", slog.String("driver", string(conn.Dialect())))
	return conn.Close()
}

// CheckCmd runs the readiness checks once, for container health probes.
type CheckCmd struct {
	Timeout time.Duration `help:"Check timeout." default:"5s"`
}

func (c *CheckCmd) Run(ctx context.Context, g *Globals) error {
	log, err := g.logger()
	if err != nil {
		return err
	}
	conn, err := g.open(ctx, log, false)
	if err != nil {
		return err
	}
	defer conn.Close()

	resp := health.Run(ctx, readinessChecks(conn), health.WithTimeout(c.Timeout), health.WithLogger(log))
	return resp.Err()
}
