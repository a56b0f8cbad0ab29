package middlewares

import (
	"github.com/google/uuid"

	"github.com/kroobeet/engine/internal"
	"github.com/kroobeet/engine/pkg/logger"
)

type requestIDKey struct{}

// maxRequestIDLength bounds upstream IDs copied into headers and logs.
const maxRequestIDLength = 128

// DefaultRequestIDHeaders are checked in order for an upstream request ID.
var DefaultRequestIDHeaders = []string{"X-Request-ID", "X-Correlation-ID"}

type requestID struct {
	generate func() string
	headers  []string
	echo     string
}

type RequestIDOption func(*requestID)

// WithRequestIDHeaders replaces the headers searched for an upstream ID.
func WithRequestIDHeaders(headers ...string) RequestIDOption {
	return func(r *requestID) { r.headers = headers }
}

// WithRequestIDGenerator sets the function that mints new IDs.
// Defaults to uuid.NewString.
func WithRequestIDGenerator(gen func() string) RequestIDOption {
	return func(r *requestID) {
		if gen != nil {
			r.generate = gen
		}
	}
}

// WithRequestIDResponseHeader sets the response header carrying the ID.
func WithRequestIDResponseHeader(header string) RequestIDOption {
	return func(r *requestID) {
		if header != "" {
			r.echo = header
		}
	}
}

// RequestID tags every request with an ID. An upstream ID from the first
// matching header is reused when it is short printable ASCII; otherwise a
// new one is generated. The ID is echoed in the response.
func RequestID(opts ...RequestIDOption) internal.Middleware {
	cfg := &requestID{
		generate: uuid.NewString,
		headers:  DefaultRequestIDHeaders,
		echo:     "X-Request-ID",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			id := cfg.upstream(c)
			if id == "" {
				id = cfg.generate()
			}
			c.Set(requestIDKey{}, id)
			c.SetHeader(cfg.echo, id)
			return next(c)
		}
	}
}

func (r *requestID) upstream(c internal.Context) string {
	for _, h := range r.headers {
		if v := c.Header(h); v != "" {
			if validRequestID(v) {
				return v
			}
			return ""
		}
	}
	return ""
}

func validRequestID(s string) bool {
	if len(s) > maxRequestIDLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] <= ' ' || s[i] > '~' {
			return false
		}
	}
	return true
}

// GetRequestID returns the request ID, or "" when RequestID did not run.
func GetRequestID(c internal.Context) string {
	id, _ := c.Get(requestIDKey{}).(string)
	return id
}

// RequestIDExtractor adds "request_id" to every log entry of the request.
func RequestIDExtractor() logger.ContextExtractor {
	return logger.StringValue(requestIDKey{}, "request_id")
}
