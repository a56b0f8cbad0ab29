package internal

import (
	"bufio"
	"net"
	"net/http"
)

// ResponseWriter records the status and body size of a response.
// It belongs to one request and is not safe for concurrent use.
type ResponseWriter struct {
	http.ResponseWriter
	status int
	size   int64
	sent   bool
}

// NewResponseWriter wraps w. A *ResponseWriter is returned as is, so
// every layer of a request sees the same state.
func NewResponseWriter(w http.ResponseWriter) *ResponseWriter {
	if rw, ok := w.(*ResponseWriter); ok {
		return rw
	}
	return &ResponseWriter{ResponseWriter: w, status: http.StatusOK}
}

// WriteHeader sends code unless a header was already sent.
func (w *ResponseWriter) WriteHeader(code int) {
	if w.sent {
		return
	}
	w.sent = true
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *ResponseWriter) Write(b []byte) (int, error) {
	if !w.sent {
		w.WriteHeader(w.status)
	}
	n, err := w.ResponseWriter.Write(b)
	w.size += int64(n)
	return n, err
}

// Status is the code sent, or 200 before anything was written.
func (w *ResponseWriter) Status() int { return w.status }

// Size is the number of body bytes written.
func (w *ResponseWriter) Size() int64 { return w.size }

// Written reports whether the header has gone out.
func (w *ResponseWriter) Written() bool { return w.sent }

func (w *ResponseWriter) Flush() {
	_ = http.NewResponseController(w.ResponseWriter).Flush()
}

func (w *ResponseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	return http.NewResponseController(w.ResponseWriter).Hijack()
}

// Unwrap exposes the wrapped writer to http.ResponseController.
func (w *ResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
