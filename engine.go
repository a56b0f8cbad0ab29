package engine

import (
	"context"
	"io/fs"
	"log/slog"
	"time"

	"github.com/kroobeet/engine/internal"
	"github.com/kroobeet/engine/pkg/cookie"
	"github.com/kroobeet/engine/pkg/health"
	"github.com/kroobeet/engine/pkg/logger"
	"github.com/kroobeet/engine/pkg/session"
)

// Type aliases - public API
type (
	// App wires the Router into an HTTP server.
	App = internal.App

	// Router owns the ordered route table and drives dispatch.
	Router = internal.Router

	// Route maps a path pattern to an Action.
	Route = internal.Route

	// Action is the target of a route: a controller and one of its methods.
	Action = internal.Action

	// Controller builds a fresh T for every dispatched request.
	Controller[T any] = internal.Controller[T]

	// Context provides request/response access and helper methods.
	Context = internal.Context

	// Handler declares routes on a router.
	Handler = internal.Handler

	// HandlerFunc is the signature for request handlers.
	HandlerFunc = internal.HandlerFunc

	// Middleware wraps a HandlerFunc to add cross-cutting concerns.
	Middleware = internal.Middleware

	// ErrorHandler handles errors returned from handlers.
	ErrorHandler = internal.ErrorHandler

	// Renderer executes a named view with data.
	Renderer = internal.Renderer

	// Option configures the application.
	Option = internal.Option

	// RunOption configures the server runtime.
	RunOption = internal.RunOption

	// HealthOption configures health check endpoints.
	HealthOption = internal.HealthOption

	// HTTPError is an error carrying a response status code.
	HTTPError = internal.HTTPError

	// HTTPErrorOption configures an HTTPError.
	HTTPErrorOption = internal.HTTPErrorOption

	// ResolutionError describes a parameter that could not be resolved.
	ResolutionError = internal.ResolutionError

	// ResponseWriter wraps http.ResponseWriter and records what was sent.
	ResponseWriter = internal.ResponseWriter

	// Session is the per-request view of one persisted session.
	Session = session.Session

	// SessionStore persists session records.
	SessionStore = session.Store

	// SessionOption configures the session manager.
	SessionOption = session.Option

	// CookieOption configures the cookie manager.
	CookieOption = cookie.Option

	// ContextExtractor extracts a slog attribute from context.
	ContextExtractor = logger.ContextExtractor
)

// RouterKey is the view data key the Router is injected under.
const RouterKey = internal.RouterKey

// Errors
var (
	ErrRouteNotFound        = internal.ErrRouteNotFound
	ErrUnauthorized         = internal.ErrUnauthorized
	ErrResolution           = internal.ErrResolution
	ErrUnsupportedType      = internal.ErrUnsupportedType
	ErrSessionNotConfigured = internal.ErrSessionNotConfigured
	ErrNoRenderer           = internal.ErrNoRenderer
)

// New creates a new application with the given options.
// The App is immutable after creation.
//
// Example:
//
//	app := engine.New(
//	    engine.WithSession(session.NewSQLStore(conn)),
//	    engine.WithRenderer(views),
//	    engine.WithRoutes(func(r *engine.Router) {
//	        r.AddRoute("/", home)
//	        r.AddRoute("/dashboard", dashboard, true)
//	    }),
//	)
//
//	err := app.Run(":8080")
func New(opts ...Option) *App {
	return internal.New(opts...)
}

// NewRouter creates an empty Router.
func NewRouter() *Router {
	return internal.NewRouter()
}

// Actions and controllers

// Handle wraps a plain HandlerFunc as an Action with no controller.
func Handle(name string, h HandlerFunc) Action {
	return internal.Handle(name, h)
}

// Controller0 declares a controller with a parameterless constructor.
func Controller0[T any](name string, fn func() T) Controller[T] {
	return internal.Controller0(name, fn)
}

// Controller1 declares a controller whose constructor takes one resolved dependency.
//
//	home := engine.Controller1("home", handlers.NewHome) // func(*engine.Router) *Home
func Controller1[T, A any](name string, fn func(A) T) Controller[T] {
	return internal.Controller1(name, fn)
}

// Controller2 declares a controller whose constructor takes two resolved dependencies.
func Controller2[T, A, B any](name string, fn func(A, B) T) Controller[T] {
	return internal.Controller2(name, fn)
}

// Controller3 declares a controller whose constructor takes three resolved dependencies.
func Controller3[T, A, B, C any](name string, fn func(A, B, C) T) Controller[T] {
	return internal.Controller3(name, fn)
}

// Action0 binds a controller method taking only the request Context.
func Action0[T any](ctl Controller[T], method string, fn func(T, Context) error) Action {
	return internal.Action0(ctl, method, fn)
}

// Action1 binds a controller method with one resolved parameter.
// A path capture binds only to int, int64 or string parameters.
//
//	engine.Action1(users, "show", (*handlers.User).Show) // Show(c engine.Context, id int) error
func Action1[T, A any](ctl Controller[T], method string, fn func(T, Context, A) error) Action {
	return internal.Action1(ctl, method, fn)
}

// Action2 binds a controller method with two resolved parameters.
func Action2[T, A, B any](ctl Controller[T], method string, fn func(T, Context, A, B) error) Action {
	return internal.Action2(ctl, method, fn)
}

// Action3 binds a controller method with three resolved parameters.
func Action3[T, A, B, C any](ctl Controller[T], method string, fn func(T, Context, A, B, C) error) Action {
	return internal.Action3(ctl, method, fn)
}

// Provide registers the default instance factory for T on r.
//
//	engine.Provide(r, func() *user.Repository { return users })
func Provide[T any](r *Router, fn func() T) {
	internal.Provide(r, fn)
}

// RequireLogin rejects requests without a logged-in session with 403.
func RequireLogin(next HandlerFunc) HandlerFunc {
	return internal.RequireLogin(next)
}

// App options

// WithMiddleware adds global middleware to the application.
// Middleware is applied in the order provided.
func WithMiddleware(mw ...Middleware) Option {
	return internal.WithMiddleware(mw...)
}

// WithHandlers registers handlers that declare routes.
func WithHandlers(h ...Handler) Option {
	return internal.WithHandlers(h...)
}

// WithRoutes registers routes with a function.
func WithRoutes(fn func(r *Router)) Option {
	return internal.WithRoutes(fn)
}

// WithStaticFiles serves subDir of fsys under pattern.
func WithStaticFiles(pattern string, fsys fs.FS, subDir string) Option {
	return internal.WithStaticFiles(pattern, fsys, subDir)
}

// WithRenderer sets the view renderer used by Context.Render.
func WithRenderer(r Renderer) Option {
	return internal.WithRenderer(r)
}

// WithErrorHandler sets a custom error handler for handler errors.
func WithErrorHandler(h ErrorHandler) Option {
	return internal.WithErrorHandler(h)
}

// WithHealthChecks enables /health/live and /health/ready.
func WithHealthChecks(opts ...HealthOption) Option {
	return internal.WithHealthChecks(opts...)
}

// WithLogger creates a logger with a component name and optional extractors.
func WithLogger(component string, extractors ...ContextExtractor) Option {
	return internal.WithLogger(component, extractors...)
}

// WithCustomLogger sets a fully custom logger.
func WithCustomLogger(l *slog.Logger) Option {
	return internal.WithCustomLogger(l)
}

// WithCookieOptions configures the cookie manager carrying the session id.
func WithCookieOptions(opts ...CookieOption) Option {
	return internal.WithCookieOptions(opts...)
}

// WithSession enables database-backed sessions.
func WithSession(store SessionStore, opts ...SessionOption) Option {
	return internal.WithSession(store, opts...)
}

// WithStartupHook registers a function run before the server accepts connections.
func WithStartupHook(fn func(context.Context) error) Option {
	return internal.WithStartupHook(fn)
}

// WithShutdownHook registers a cleanup function run after the server stops.
func WithShutdownHook(fn func(context.Context) error) Option {
	return internal.WithShutdownHook(fn)
}

// Health options

// WithLivenessPath sets a custom liveness endpoint path.
func WithLivenessPath(path string) HealthOption {
	return internal.WithLivenessPath(path)
}

// WithReadinessPath sets a custom readiness endpoint path.
func WithReadinessPath(path string) HealthOption {
	return internal.WithReadinessPath(path)
}

// WithReadinessCheck adds a named readiness check.
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return internal.WithReadinessCheck(name, fn)
}

// Run options

// Logger sets the server logger.
func Logger(l *slog.Logger) RunOption {
	return internal.Logger(l)
}

// ShutdownTimeout sets the timeout for graceful shutdown.
func ShutdownTimeout(d time.Duration) RunOption {
	return internal.ShutdownTimeout(d)
}

// StartupHook registers a function run before serving.
func StartupHook(fn func(context.Context) error) RunOption {
	return internal.StartupHook(fn)
}

// ShutdownHook registers a cleanup function to run during shutdown.
func ShutdownHook(fn func(context.Context) error) RunOption {
	return internal.ShutdownHook(fn)
}

// WithContext sets the base context for signal handling.
func WithContext(ctx context.Context) RunOption {
	return internal.WithContext(ctx)
}

// Errors and helpers

// NewHTTPError creates a new HTTPError with the given status code and message.
func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.NewHTTPError(code, message, opts...)
}

// WithError attaches the underlying error to an HTTPError.
func WithError(err error) HTTPErrorOption {
	return internal.WithError(err)
}

// StatusCode maps an error to the response status code.
func StatusCode(err error) int {
	return internal.StatusCode(err)
}

// ErrorMessage returns the user-facing message for err.
func ErrorMessage(err error) string {
	return internal.ErrorMessage(err)
}

// Param returns the i-th path capture converted to T.
func Param[T ~string | ~int | ~int64 | ~bool](c Context, i int) T {
	return internal.Param[T](c, i)
}

// Query returns a query parameter converted to T.
func Query[T ~string | ~int | ~int64 | ~bool](c Context, name string) T {
	return internal.Query[T](c, name)
}

// QueryDefault returns a query parameter converted to T, or defaultValue.
func QueryDefault[T ~string | ~int | ~int64 | ~bool](c Context, name string, defaultValue T) T {
	return internal.QueryDefault(c, name, defaultValue)
}

// ContextValue returns the request context value for key as T.
func ContextValue[T any](c Context, key any) T {
	return internal.ContextValue[T](c, key)
}
