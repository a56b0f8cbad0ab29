package internal

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"net/http"
	"time"

	"github.com/kroobeet/engine/pkg/session"
)

// RouterKey is the view data key the Router is injected under.
const RouterKey = "router"

// Renderer executes a named view with data.
type Renderer interface {
	Render(w io.Writer, view string, data map[string]any) error
}

type (
	paramsKey  struct{}
	sessionKey struct{}
)

// Context provides request/response access and helper methods.
// It also implements context.Context by delegating to the underlying request context.
type Context interface {
	context.Context

	// Request returns the underlying *http.Request.
	Request() *http.Request

	// Response returns the underlying http.ResponseWriter.
	Response() http.ResponseWriter

	// Context returns the request's context.Context.
	Context() context.Context

	// Param returns the i-th path capture of the matched route, or "".
	Param(i int) string

	// Params returns a copy of the path captures in pattern order.
	Params() []string

	// Query returns the query parameter value by name.
	Query(name string) string

	// Form returns the form value by name.
	// Parses the request body on first access.
	Form(name string) string

	// Header returns the request header value by name.
	Header(name string) string

	// SetHeader sets a response header.
	SetHeader(name, value string)

	// Session returns the request's session, nil when sessions are not configured.
	// The session is shared by every middleware and handler of the request
	// and is not started until someone calls Start.
	Session() *session.Session

	// Router returns the application router.
	Router() *Router

	// Render executes a view and writes it with the given status code.
	// The router is always available to the view under RouterKey.
	Render(code int, view string, data map[string]any) error

	// String writes a plain text response with the given status code.
	String(code int, s string) error

	// NoContent writes a response with no body.
	NoContent(code int) error

	// Redirect redirects to the given URL with the given status code.
	Redirect(code int, url string) error

	// Error creates and returns an HTTPError without writing a response.
	Error(code int, message string, opts ...HTTPErrorOption) *HTTPError

	// Written returns true if the response has been written.
	Written() bool

	Logger() *slog.Logger
	LogDebug(msg string, attrs ...any)
	LogInfo(msg string, attrs ...any)
	LogWarn(msg string, attrs ...any)
	LogError(msg string, attrs ...any)

	// Set stores a value in the request context.
	Set(key, value any)

	// Get retrieves a value from the request context.
	Get(key any) any
}

// requestContext implements the Context interface.
type requestContext struct {
	request  *http.Request
	response *ResponseWriter
	logger   *slog.Logger
	router   *Router
	renderer Renderer
}

func newContext(w http.ResponseWriter, r *http.Request, a *App) *requestContext {
	return &requestContext{
		request:  r,
		response: NewResponseWriter(w),
		logger:   a.logger,
		router:   a.router,
		renderer: a.renderer,
	}
}

func (c *requestContext) Request() *http.Request {
	return c.request
}

func (c *requestContext) Response() http.ResponseWriter {
	return c.response
}

func (c *requestContext) Context() context.Context {
	return c.request.Context()
}

func (c *requestContext) Deadline() (time.Time, bool) {
	return c.request.Context().Deadline()
}

func (c *requestContext) Done() <-chan struct{} {
	return c.request.Context().Done()
}

func (c *requestContext) Err() error {
	return c.request.Context().Err()
}

func (c *requestContext) Value(key any) any {
	return c.request.Context().Value(key)
}

func (c *requestContext) Param(i int) string {
	params, _ := c.Get(paramsKey{}).([]string)
	if i < 0 || i >= len(params) {
		return ""
	}
	return params[i]
}

func (c *requestContext) Params() []string {
	params, _ := c.Get(paramsKey{}).([]string)
	return append([]string(nil), params...)
}

func (c *requestContext) Query(name string) string {
	return c.request.URL.Query().Get(name)
}

func (c *requestContext) Form(name string) string {
	return c.request.FormValue(name)
}

func (c *requestContext) Header(name string) string {
	return c.request.Header.Get(name)
}

func (c *requestContext) SetHeader(name, value string) {
	c.response.Header().Set(name, value)
}

func (c *requestContext) Session() *session.Session {
	s, _ := c.Get(sessionKey{}).(*session.Session)
	return s
}

func (c *requestContext) Router() *Router {
	return c.router
}

func (c *requestContext) Render(code int, view string, data map[string]any) error {
	if c.renderer == nil {
		return ErrNoRenderer
	}

	vars := make(map[string]any, len(data)+1)
	maps.Copy(vars, data)
	vars[RouterKey] = c.router

	// Buffer so a failing view still leaves room for an error page.
	var buf bytes.Buffer
	if err := c.renderer.Render(&buf, view, vars); err != nil {
		return fmt.Errorf("render %s: %w", view, err)
	}

	c.response.Header().Set("Content-Type", "text/html; charset=utf-8")
	c.response.WriteHeader(code)
	_, err := buf.WriteTo(c.response)
	return err
}

func (c *requestContext) String(code int, s string) error {
	c.response.Header().Set("Content-Type", "text/plain; charset=utf-8")
	c.response.WriteHeader(code)
	_, err := io.WriteString(c.response, s)
	return err
}

func (c *requestContext) NoContent(code int) error {
	c.response.WriteHeader(code)
	return nil
}

func (c *requestContext) Redirect(code int, url string) error {
	http.Redirect(c.response, c.request, url, code)
	return nil
}

func (c *requestContext) Error(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(code, message, opts...)
}

func (c *requestContext) Written() bool {
	return c.response.Written()
}

func (c *requestContext) Logger() *slog.Logger {
	return c.logger
}

func (c *requestContext) LogDebug(msg string, attrs ...any) {
	c.logger.DebugContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogInfo(msg string, attrs ...any) {
	c.logger.InfoContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogWarn(msg string, attrs ...any) {
	c.logger.WarnContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogError(msg string, attrs ...any) {
	c.logger.ErrorContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) Set(key, value any) {
	ctx := context.WithValue(c.request.Context(), key, value)
	c.request = c.request.WithContext(ctx)
}

func (c *requestContext) Get(key any) any {
	return c.request.Context().Value(key)
}
