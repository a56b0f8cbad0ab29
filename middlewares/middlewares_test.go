package middlewares_test

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kroobeet/engine/internal"
	"github.com/kroobeet/engine/middlewares"
	"github.com/kroobeet/engine/pkg/logger"
)

func newApp(log *slog.Logger, routes func(r *internal.Router), mw ...internal.Middleware) *internal.App {
	return internal.New(
		internal.WithCustomLogger(log),
		internal.WithMiddleware(mw...),
		internal.WithRoutes(routes),
	)
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRecover(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf))

	app := newApp(log, func(r *internal.Router) {
		r.AddRoute("/boom", internal.Handle("boom", func(internal.Context) error {
			panic(errors.New("exploded"))
		}))
		r.AddRoute("/fine", internal.Handle("fine", func(c internal.Context) error {
			return c.String(http.StatusOK, "fine")
		}))
	}, middlewares.Recover())

	rec := serve(app, httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), "500 Internal Server Error")
	require.NotContains(t, rec.Body.String(), "exploded")
	require.Contains(t, buf.String(), "panic recovered")

	rec = serve(app, httptest.NewRequest(http.MethodGet, "/fine", nil))
	require.Equal(t, "fine", rec.Body.String())
}

func TestRecover_PanicError(t *testing.T) {
	t.Parallel()

	var captured error
	handler := middlewares.Recover()(func(internal.Context) error {
		panic(errors.New("exploded"))
	})

	app := newApp(logger.NewNope(), func(r *internal.Router) {
		r.AddRoute("/", internal.Handle("panics", func(c internal.Context) error {
			captured = handler(c)
			return captured
		}))
	})

	rec := serve(app, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	pe, ok := middlewares.AsPanicError(captured)
	require.True(t, ok)
	require.NotEmpty(t, pe.Stack)
	require.EqualError(t, errors.Unwrap(pe), "exploded")
}

func TestRecover_DisablePrintStack(t *testing.T) {
	t.Parallel()

	var captured error
	handler := middlewares.Recover(middlewares.WithRecoverDisablePrintStack())(func(internal.Context) error {
		panic("plain")
	})

	app := newApp(logger.NewNope(), func(r *internal.Router) {
		r.AddRoute("/", internal.Handle("panics", func(c internal.Context) error {
			captured = handler(c)
			return captured
		}))
	})

	rec := serve(app, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	pe, ok := middlewares.AsPanicError(captured)
	require.True(t, ok)
	require.Equal(t, "plain", pe.Value)
	require.Nil(t, pe.Stack)
	require.NoError(t, errors.Unwrap(pe))
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithExtractors(middlewares.RequestIDExtractor()))

	app := newApp(log, func(r *internal.Router) {
		r.AddRoute("/", internal.Handle("id", func(c internal.Context) error {
			c.LogInfo("handling")
			return c.String(http.StatusOK, middlewares.GetRequestID(c))
		}))
	}, middlewares.RequestID())

	t.Run("generates", func(t *testing.T) {
		rec := serve(app, httptest.NewRequest(http.MethodGet, "/", nil))
		id := rec.Header().Get("X-Request-ID")
		require.Len(t, id, 36)
		require.Equal(t, id, rec.Body.String())
	})

	t.Run("reuses upstream header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Correlation-ID", "upstream-7")
		rec := serve(app, req)
		require.Equal(t, "upstream-7", rec.Header().Get("X-Request-ID"))
		require.Equal(t, "upstream-7", rec.Body.String())
		require.Contains(t, buf.String(), `"request_id":"upstream-7"`)
	})

	t.Run("replaces malformed upstream id", func(t *testing.T) {
		for _, bad := range []string{"has space", strings.Repeat("x", 129)} {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("X-Request-ID", bad)
			rec := serve(app, req)
			require.Len(t, rec.Header().Get("X-Request-ID"), 36)
		}
	})
}

func TestRequestID_Options(t *testing.T) {
	t.Parallel()

	app := newApp(logger.NewNope(), func(r *internal.Router) {
		r.AddRoute("/", internal.Handle("id", func(c internal.Context) error {
			return c.NoContent(http.StatusNoContent)
		}))
	}, middlewares.RequestID(
		middlewares.WithRequestIDHeaders("X-Trace"),
		middlewares.WithRequestIDGenerator(func() string { return "fixed" }),
		middlewares.WithRequestIDResponseHeader("X-Trace"),
	))

	rec := serve(app, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, "fixed", rec.Header().Get("X-Trace"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Trace", "mine")
	rec = serve(app, req)
	require.Equal(t, "mine", rec.Header().Get("X-Trace"))
}

func TestAccessLog(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf))

	app := newApp(log, func(r *internal.Router) {
		r.AddRoute("/ok", internal.Handle("ok", func(c internal.Context) error {
			return c.String(http.StatusOK, "ok")
		}))
	}, middlewares.AccessLog())

	serve(app, httptest.NewRequest(http.MethodGet, "/ok", nil))
	require.Contains(t, buf.String(), `"path":"/ok"`)
	require.Contains(t, buf.String(), `"status":200`)

	buf.Reset()
	serve(app, httptest.NewRequest(http.MethodGet, "/missing", nil))
	require.Contains(t, buf.String(), `"status":404`)
}

func TestSecureHeaders(t *testing.T) {
	t.Parallel()

	app := newApp(logger.NewNope(), func(r *internal.Router) {}, middlewares.SecureHeaders())

	rec := serve(app, httptest.NewRequest(http.MethodGet, "/anything", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "SAMEORIGIN", rec.Header().Get("X-Frame-Options"))
	require.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}
