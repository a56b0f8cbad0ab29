package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/kroobeet/engine"
	"github.com/kroobeet/engine/example/handlers"
	"github.com/kroobeet/engine/example/views"
	"github.com/kroobeet/engine/middlewares"
	"github.com/kroobeet/engine/pkg/cookie"
	"github.com/kroobeet/engine/pkg/db"
	"github.com/kroobeet/engine/pkg/health"
	"github.com/kroobeet/engine/pkg/session"
	"github.com/kroobeet/engine/pkg/user"
)

type appConfig struct {
	logger       *slog.Logger
	cookieSecret string
	secureCookie bool
	sessionTTL   time.Duration
	bcryptCost   int
}

func newApp(conn *db.DB, cfg appConfig) *engine.App {
	var userOpts []user.Option
	if cfg.bcryptCost > 0 {
		userOpts = append(userOpts, user.WithBcryptCost(cfg.bcryptCost))
	}

	return engine.New(
		engine.WithCustomLogger(cfg.logger),
		engine.WithCookieOptions(
			cookie.WithSecret(cfg.cookieSecret),
			cookie.WithSecure(cfg.secureCookie),
		),
		engine.WithSession(session.NewSQLStore(conn), session.WithTTL(cfg.sessionTTL)),
		engine.WithRenderer(views.New()),
		engine.WithErrorHandler(renderError),
		engine.WithStaticFiles("/resources/", views.Assets, "resources"),
		engine.WithHealthChecks(healthOptions(conn)...),
		engine.WithMiddleware(
			middlewares.RequestID(),
			middlewares.AccessLog(),
			middlewares.Recover(),
			middlewares.SecureHeaders(),
		),
		engine.WithHandlers(handlers.Web{Users: user.NewRepository(conn, userOpts...)}),
	)
}

func readinessChecks(conn *db.DB) health.Checks {
	return health.Checks{"db": db.Healthcheck(conn)}
}

func healthOptions(conn *db.DB) []engine.HealthOption {
	var opts []engine.HealthOption
	for name, check := range readinessChecks(conn) {
		opts = append(opts, engine.WithReadinessCheck(name, check))
	}
	return opts
}

// renderError shows the error pages for 403, 404 and 500. Other codes fall
// back to the plain text response.
func renderError(c engine.Context, err error) error {
	code := engine.StatusCode(err)
	switch code {
	case http.StatusForbidden, http.StatusNotFound, http.StatusInternalServerError:
	default:
		return err
	}
	return c.Render(code, fmt.Sprintf("errors/%d", code), map[string]any{
		"title":   http.StatusText(code),
		"message": engine.ErrorMessage(err),
	})
}
