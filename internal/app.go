package internal

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kroobeet/engine/pkg/cookie"
	"github.com/kroobeet/engine/pkg/health"
	"github.com/kroobeet/engine/pkg/logger"
	"github.com/kroobeet/engine/pkg/session"
)

// Default server timeouts.
const (
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20 // 1MB
	defaultShutdownTimeout   = 30 * time.Second
)

// Handler declares routes on a router.
//
// Example:
//
//	type Pages struct{}
//
//	func (Pages) Routes(r *engine.Router) {
//	    r.AddRoute("/about", engine.Handle("pages.about", about))
//	}
type Handler interface {
	Routes(r *Router)
}

// App wires the Router into an HTTP server.
// It owns the middleware chain, health probes, static files, sessions
// and error rendering. App is immutable after New returns.
type App struct {
	mux            chi.Router
	router         *Router
	renderer       Renderer
	errorHandler   ErrorHandler
	healthConfig   *healthConfig
	logger         *slog.Logger
	cookieManager  *cookie.Manager
	sessionStore   session.Store
	sessionManager *session.Manager
	sessionOptions []session.Option
	middlewares    []Middleware
	handlers       []Handler
	staticRoutes   []staticRoute
	startupHooks   []func(context.Context) error
	shutdownHooks  []func(context.Context) error
}

// staticRoute represents a static file handler mount point.
type staticRoute struct {
	handler http.Handler
	pattern string
}

// New creates a new application with the given options.
//
// Example:
//
//	app := engine.New(
//	    engine.WithMiddleware(middlewares.Recover()),
//	    engine.WithSession(session.NewSQLStore(conn)),
//	    engine.WithRenderer(views),
//	    engine.WithHandlers(handlers.New(users)),
//	)
func New(opts ...Option) *App {
	a := &App{
		mux:           chi.NewRouter(),
		router:        NewRouter(),
		logger:        logger.NewNope(),
		cookieManager: cookie.New(),
	}

	for _, opt := range opts {
		opt(a)
	}

	a.router.setLogger(a.logger)

	if a.sessionStore != nil {
		opts := append([]session.Option{
			session.WithTransport(session.NewCookieTransport(a.cookieManager)),
		}, a.sessionOptions...)
		a.sessionManager = session.NewManager(a.sessionStore, opts...)
		a.sessionManager.SetLogger(a.logger)
	}

	for _, h := range a.handlers {
		h.Routes(a.router)
	}

	a.setupRoutes()
	return a
}

// Router returns the application router.
func (a *App) Router() *Router {
	return a.router
}

// Sessions returns the session manager, nil when sessions are disabled.
func (a *App) Sessions() *session.Manager {
	return a.sessionManager
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.mux.ServeHTTP(w, r)
}

// Run starts the HTTP server and blocks until shutdown.
// Startup hooks registered with the app run before RunOption hooks,
// shutdown hooks after them.
//
// Example:
//
//	err := app.Run(":8080", engine.Logger(log), engine.ShutdownHook(db.Shutdown(conn)))
func (a *App) Run(addr string, opts ...RunOption) error {
	cfg := buildRunConfig(opts...)

	if cfg.logger == nil {
		cfg.logger = a.logger
	}

	cfg.startupHooks = slices.Concat(a.startupHooks, cfg.startupHooks)
	cfg.shutdownHooks = slices.Concat(cfg.shutdownHooks, a.shutdownHooks)

	return serve(addr, a, cfg)
}

// setupRoutes configures the mux. Health probes and static files are
// served by chi directly; every other path goes to the Router.
func (a *App) setupRoutes() {
	if a.sessionManager != nil {
		a.mux.Use(a.bindSession)
	}

	for _, mw := range a.middlewares {
		a.mux.Use(a.adaptMiddleware(mw))
	}

	for _, sr := range a.staticRoutes {
		a.mux.Mount(sr.pattern, sr.handler)
	}

	if a.healthConfig != nil {
		a.mux.Get(a.healthConfig.livenessPath, health.LivenessHandler())
		a.mux.Get(a.healthConfig.readinessPath,
			health.ReadinessHandler(a.healthConfig.checks, health.WithLogger(a.logger)))
	}

	dispatch := a.wrapHandler(a.router.Dispatch)
	a.mux.HandleFunc("/*", dispatch)
	a.mux.NotFound(dispatch)
	a.mux.MethodNotAllowed(dispatch)
}

// bindSession attaches one unstarted session to the request so that the
// gate, middleware and handlers all see the same instance.
func (a *App) bindSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := a.sessionManager.Session(w, r)
		ctx := context.WithValue(r.Context(), sessionKey{}, s)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// wrapHandler converts a HandlerFunc to http.HandlerFunc using the app's error handler.
func (a *App) wrapHandler(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := newContext(w, r, a)
		if err := h(c); err != nil {
			a.handleError(c, err)
		}
	}
}

// adaptMiddleware converts a Middleware to chi middleware.
func (a *App) adaptMiddleware(mw Middleware) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			nextFunc := func(c Context) error {
				next.ServeHTTP(c.Response(), c.Request())
				return nil
			}
			c := newContext(w, r, a)
			if err := mw(nextFunc)(c); err != nil {
				a.handleError(c, err)
			}
		})
	}
}

// handleError logs err and writes the error response unless the handler
// already started one.
func (a *App) handleError(c Context, err error) {
	code := StatusCode(err)
	if code >= http.StatusInternalServerError {
		c.LogError("request failed",
			slog.String("path", c.Request().URL.Path),
			slog.Int("status", code),
			slog.Any("error", err),
		)
	} else {
		c.LogDebug("request rejected",
			slog.String("path", c.Request().URL.Path),
			slog.Int("status", code),
			slog.Any("error", err),
		)
	}

	if c.Written() {
		return
	}

	if a.errorHandler != nil {
		herr := a.errorHandler(c, err)
		if herr == nil || c.Written() {
			return
		}
		c.LogError("error handler failed", slog.Any("error", herr))
	}

	writeError(c, err, code)
}

// writeError writes the plain text fallback error response.
func writeError(c Context, err error, code int) {
	http.Error(c.Response(), ErrorMessage(err), code)
}

// ErrorMessage returns the user-facing message for err.
// Details of 5xx errors are never exposed.
func ErrorMessage(err error) string {
	code := StatusCode(err)
	if httpErr := AsHTTPError(err); httpErr != nil && httpErr.Message != "" && code < http.StatusInternalServerError {
		return httpErr.Message
	}
	switch {
	case code == http.StatusNotFound:
		return notFoundMessage
	case code == http.StatusForbidden:
		return forbiddenMessage
	case code < http.StatusInternalServerError:
		return http.StatusText(code)
	default:
		return internalMessage
	}
}

// healthConfig holds health check endpoint configuration.
type healthConfig struct {
	checks        health.Checks
	livenessPath  string
	readinessPath string
}

// Default health check paths.
const (
	defaultLivenessPath  = "/health/live"
	defaultReadinessPath = "/health/ready"
)

// HealthOption configures health check endpoints.
type HealthOption func(*healthConfig)

// WithLivenessPath sets a custom liveness endpoint path.
// Defaults to "/health/live".
func WithLivenessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.livenessPath = path
		}
	}
}

// WithReadinessPath sets a custom readiness endpoint path.
// Defaults to "/health/ready".
func WithReadinessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.readinessPath = path
		}
	}
}

// WithReadinessCheck adds a named readiness check.
//
//	engine.WithReadinessCheck("db", db.Healthcheck(conn))
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return func(c *healthConfig) {
		if c.checks == nil {
			c.checks = make(health.Checks)
		}
		c.checks[name] = fn
	}
}
