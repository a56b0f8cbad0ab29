package internal

import (
	"context"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/kroobeet/engine/pkg/cookie"
	"github.com/kroobeet/engine/pkg/logger"
	"github.com/kroobeet/engine/pkg/session"
)

// Option configures the application.
type Option func(*App)

// WithMiddleware adds global middleware to the application.
// Middleware is applied in the order provided.
func WithMiddleware(mw ...Middleware) Option {
	return func(a *App) {
		a.middlewares = append(a.middlewares, mw...)
	}
}

// WithHandlers registers handlers that declare routes.
// Routes are added in handler order, which is also match order.
func WithHandlers(h ...Handler) Option {
	return func(a *App) {
		a.handlers = append(a.handlers, h...)
	}
}

// WithRoutes registers routes with a function, for route tables kept
// in one place.
//
//	engine.WithRoutes(func(r *engine.Router) {
//	    r.AddRoute("/", home)
//	    r.AddRoute("/dashboard", dashboard, true)
//	})
func WithRoutes(fn func(r *Router)) Option {
	return func(a *App) {
		a.handlers = append(a.handlers, routesFunc(fn))
	}
}

type routesFunc func(r *Router)

func (fn routesFunc) Routes(r *Router) { fn(r) }

// WithStaticFiles serves subDir of fsys under pattern.
// Directory listings are disabled.
//
// Example:
//
//	//go:embed resources
//	var assets embed.FS
//
//	engine.New(
//	    engine.WithStaticFiles("/resources/", assets, "resources"),
//	)
func WithStaticFiles(pattern string, fsys fs.FS, subDir string) Option {
	return func(a *App) {
		subFS, err := fs.Sub(fsys, subDir)
		if err != nil {
			panic(err)
		}

		prefix := strings.TrimSuffix(pattern, "/")
		fileServer := http.StripPrefix(prefix, http.FileServerFS(subFS))

		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasSuffix(r.URL.Path, "/") {
				http.NotFound(w, r)
				return
			}

			w.Header().Set("Cache-Control", "public, max-age=3600")
			w.Header().Set("X-Content-Type-Options", "nosniff")

			fileServer.ServeHTTP(w, r)
		})

		a.staticRoutes = append(a.staticRoutes, staticRoute{handler, pattern})
	}
}

// WithRenderer sets the view renderer used by Context.Render.
func WithRenderer(r Renderer) Option {
	return func(a *App) {
		a.renderer = r
	}
}

// WithErrorHandler sets a custom error handler for handler errors.
// If it fails without writing a response the plain text fallback is used.
//
// Example:
//
//	engine.WithErrorHandler(func(c engine.Context, err error) error {
//	    code := engine.StatusCode(err)
//	    return c.Render(code, fmt.Sprintf("errors/%d", code), nil)
//	})
func WithErrorHandler(h ErrorHandler) Option {
	return func(a *App) {
		a.errorHandler = h
	}
}

// WithHealthChecks enables health check endpoints with optional configuration.
// Liveness (/health/live) always returns OK while the process runs.
// Readiness (/health/ready) runs all configured checks.
//
// Example:
//
//	engine.WithHealthChecks(
//	    engine.WithReadinessCheck("db", db.Healthcheck(conn)),
//	)
func WithHealthChecks(opts ...HealthOption) Option {
	return func(a *App) {
		cfg := &healthConfig{
			livenessPath:  defaultLivenessPath,
			readinessPath: defaultReadinessPath,
		}
		for _, opt := range opts {
			opt(cfg)
		}
		a.healthConfig = cfg
	}
}

// WithLogger creates a logger with a component name and optional extractors.
//
// Example:
//
//	engine.New(
//	    engine.WithLogger("web", middlewares.RequestIDExtractor()),
//	)
func WithLogger(component string, extractors ...logger.ContextExtractor) Option {
	return func(a *App) {
		a.logger = logger.New(logger.WithExtractors(extractors...)).With("component", component)
	}
}

// WithCustomLogger sets a fully custom logger.
func WithCustomLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithCookieOptions configures the cookie manager carrying the session id.
// With a secret the id cookie is signed.
//
// Example:
//
//	engine.New(
//	    engine.WithCookieOptions(
//	        cookie.WithSecret(os.Getenv("COOKIE_SECRET")),
//	        cookie.WithSecure(true),
//	    ),
//	)
func WithCookieOptions(opts ...cookie.Option) Option {
	return func(a *App) {
		a.cookieManager = cookie.New(opts...)
	}
}

// WithSession enables database-backed sessions.
// Every request gets one unstarted session; controllers, the login gate
// and middleware call Start on it.
//
// Example:
//
//	engine.New(
//	    engine.WithSession(session.NewSQLStore(conn),
//	        session.WithTTL(time.Hour),
//	    ),
//	)
func WithSession(store session.Store, opts ...session.Option) Option {
	return func(a *App) {
		a.sessionStore = store
		a.sessionOptions = opts
	}
}

// WithStartupHook registers a function run before the server accepts
// connections. A failing hook aborts Run.
func WithStartupHook(fn func(context.Context) error) Option {
	return func(a *App) {
		if fn != nil {
			a.startupHooks = append(a.startupHooks, fn)
		}
	}
}

// WithShutdownHook registers a cleanup function run after the server stops.
func WithShutdownHook(fn func(context.Context) error) Option {
	return func(a *App) {
		if fn != nil {
			a.shutdownHooks = append(a.shutdownHooks, fn)
		}
	}
}
