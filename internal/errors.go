package internal

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors of the dispatch pipeline.
var (
	ErrRouteNotFound        = errors.New("engine: route not found")
	ErrUnauthorized         = errors.New("engine: login required")
	ErrResolution           = errors.New("engine: parameter resolution failed")
	ErrUnsupportedType      = errors.New("engine: unsupported parameter type")
	ErrSessionNotConfigured = errors.New("engine: session manager not configured")
	ErrNoRenderer           = errors.New("engine: renderer not configured")
)

// ResolutionError describes a parameter that could not be resolved.
// Index is the position among the declared parameters of Action.
type ResolutionError struct {
	Err    error
	Action string
	Type   string
	Index  int
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("engine: resolve %s param #%d (%s): %v", e.Action, e.Index, e.Type, e.Err)
}

// Unwrap makes errors.Is match both ErrResolution and the cause.
func (e *ResolutionError) Unwrap() []error {
	return []error{ErrResolution, e.Err}
}

// HTTPError is an error carrying a response status code.
type HTTPError struct {
	// Err is the underlying error, logged but never shown to users.
	Err error

	// Message is the user-facing error message.
	Message string

	// RequestID is the request tracking ID.
	RequestID string

	Code int
}

func (e *HTTPError) Error() string {
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func (e *HTTPError) StatusCode() int {
	return e.Code
}

func (e *HTTPError) StatusText() string {
	return http.StatusText(e.Code)
}

// HTTPErrorOption configures an HTTPError.
type HTTPErrorOption func(*HTTPError)

// NewHTTPError creates a new HTTPError with the given status code and message.
func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	e := &HTTPError{Code: code, Message: message}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func WithRequestID(id string) HTTPErrorOption {
	return func(e *HTTPError) {
		e.RequestID = id
	}
}

func WithError(err error) HTTPErrorOption {
	return func(e *HTTPError) {
		e.Err = err
	}
}

// Convenience constructors for the codes the runtime produces.

func ErrBadRequest(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, message, opts...)
}

func ErrForbidden(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusForbidden, message, opts...)
}

func ErrNotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusNotFound, message, opts...)
}

func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusInternalServerError, message, opts...)
}

// IsHTTPError reports whether err wraps an HTTPError.
func IsHTTPError(err error) bool {
	return AsHTTPError(err) != nil
}

// AsHTTPError extracts the HTTPError from an error chain.
// Returns nil if there is none.
func AsHTTPError(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return nil
}

// StatusCode maps an error to the response status code:
// HTTPError codes win, then the dispatch sentinels, else 500.
func StatusCode(err error) int {
	if httpErr := AsHTTPError(err); httpErr != nil && httpErr.Code != 0 {
		return httpErr.Code
	}
	switch {
	case errors.Is(err, ErrRouteNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// Messages written for the runtime's own failures.
const (
	notFoundMessage  = "404 Not Found"
	forbiddenMessage = "403 Forbidden: You must be logged in to access this page."
	internalMessage  = "500 Internal Server Error"
)

func routeNotFound(path string) *HTTPError {
	return ErrNotFound(notFoundMessage, WithError(fmt.Errorf("%w: %s", ErrRouteNotFound, path)))
}

func unauthorized() *HTTPError {
	return ErrForbidden(forbiddenMessage, WithError(ErrUnauthorized))
}

func resolutionFailed(err error) *HTTPError {
	return ErrInternal(internalMessage, WithError(err))
}
