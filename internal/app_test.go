package internal_test

import (
	"context"
	"errors"
	"net"
	"net/http"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kroobeet/engine/internal"
)

func TestApp_HealthChecks(t *testing.T) {
	t.Parallel()

	healthy := true
	app := newApp(t, func(r *internal.Router) {
		r.AddRoute("/{any}", internal.Handle("catch", text("routed")))
	}, internal.WithHealthChecks(
		internal.WithReadinessCheck("db", func(context.Context) error {
			if healthy {
				return nil
			}
			return errors.New("down")
		}),
	))

	rec := do(app, http.MethodGet, "/health/live")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "OK", rec.Body.String())

	rec = do(app, http.MethodGet, "/health/ready")
	require.Equal(t, http.StatusOK, rec.Code)

	healthy = false
	rec = do(app, http.MethodGet, "/health/ready")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = do(app, http.MethodGet, "/other")
	require.Equal(t, "routed", rec.Body.String())
}

func TestApp_StaticFiles(t *testing.T) {
	t.Parallel()

	assets := fstest.MapFS{
		"resources/css/home.css": &fstest.MapFile{Data: []byte("body{}")},
	}
	app := newApp(t, func(r *internal.Router) {
		r.AddRoute("/", internal.Handle("home", text("home")))
	}, internal.WithStaticFiles("/resources/", assets, "resources"))

	rec := do(app, http.MethodGet, "/resources/css/home.css")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "body{}", rec.Body.String())
	require.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))

	rec = do(app, http.MethodGet, "/resources/css/")
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(app, http.MethodGet, "/")
	require.Equal(t, "home", rec.Body.String())
}

func TestApp_ErrorHandler(t *testing.T) {
	t.Parallel()

	var seen error
	app := newApp(t, func(r *internal.Router) {
		r.AddRoute("/private", internal.Handle("private", text("secret")), true)
		r.AddRoute("/fail", internal.Handle("fail", func(c internal.Context) error {
			return errors.New("boom")
		}))
		r.AddRoute("/written", internal.Handle("written", func(c internal.Context) error {
			_ = c.String(http.StatusAccepted, "partial")
			return errors.New("late")
		}))
	}, internal.WithErrorHandler(func(c internal.Context, err error) error {
		seen = err
		return c.String(internal.StatusCode(err), "custom: "+internal.ErrorMessage(err))
	}))

	rec := do(app, http.MethodGet, "/nowhere")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "custom: 404 Not Found", rec.Body.String())
	require.ErrorIs(t, seen, internal.ErrRouteNotFound)

	rec = do(app, http.MethodGet, "/private")
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.ErrorIs(t, seen, internal.ErrUnauthorized)

	rec = do(app, http.MethodGet, "/fail")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "custom: 500 Internal Server Error", rec.Body.String())

	rec = do(app, http.MethodGet, "/written")
	require.Equal(t, http.StatusAccepted, rec.Code)
	require.Equal(t, "partial", rec.Body.String())
}

func TestApp_FailingErrorHandlerFallsBack(t *testing.T) {
	t.Parallel()

	app := newApp(t, func(*internal.Router) {},
		internal.WithErrorHandler(func(internal.Context, error) error {
			return errors.New("no template")
		}))

	rec := do(app, http.MethodGet, "/missing")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "404 Not Found")
}

func TestApp_MiddlewareSharesSession(t *testing.T) {
	t.Parallel()

	var order []string
	mw := func(name string) internal.Middleware {
		return func(next internal.HandlerFunc) internal.HandlerFunc {
			return func(c internal.Context) error {
				order = append(order, name)
				c.Session().Set("seen_by", name)
				return next(c)
			}
		}
	}

	app := newApp(t, func(r *internal.Router) {
		r.AddRoute("/", internal.Handle("home", func(c internal.Context) error {
			v, _ := c.Session().Get("seen_by")
			return c.String(http.StatusOK, v.(string))
		}))
	}, internal.WithMiddleware(mw("first"), mw("second")))

	rec := do(app, http.MethodGet, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "second", rec.Body.String())
	require.Equal(t, []string{"first", "second"}, order)
}

func TestApp_HandlersRegisterInOrder(t *testing.T) {
	t.Parallel()

	app := internal.New(
		internal.WithHandlers(pages{}),
		internal.WithRoutes(func(r *internal.Router) {
			r.AddRoute("/about", internal.Handle("shadowed", text("shadowed")))
		}),
	)

	routes := app.Router().Routes()
	require.Len(t, routes, 2)
	require.Equal(t, "pages.about", routes[0].Action.Name())

	rec := do(app, http.MethodGet, "/about")
	require.Equal(t, "about", rec.Body.String())
}

type pages struct{}

func (pages) Routes(r *internal.Router) {
	r.AddRoute("/about", internal.Handle("pages.about", text("about")))
}

func TestApp_Run(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	started := make(chan struct{})
	var stopped bool

	app := internal.New(
		internal.WithStartupHook(func(context.Context) error {
			close(started)
			return nil
		}),
		internal.WithShutdownHook(func(context.Context) error {
			stopped = true
			return nil
		}),
	)

	done := make(chan error, 1)
	go func() {
		done <- app.Run("127.0.0.1:0", internal.WithContext(ctx), internal.ShutdownTimeout(time.Second))
	}()

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("startup hook not called")
	}
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
	require.True(t, stopped)
}

func TestApp_RunStartupFailure(t *testing.T) {
	t.Parallel()

	var stopped bool
	app := internal.New(internal.WithShutdownHook(func(context.Context) error {
		stopped = true
		return nil
	}))
	err := app.Run("127.0.0.1:0", internal.StartupHook(func(context.Context) error {
		return errors.New("migrations failed")
	}))
	require.ErrorContains(t, err, "migrations failed")
	require.True(t, stopped, "shutdown hooks run after a failed startup")
}

func TestApp_RunListenFailure(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	var started, stopped bool
	app := internal.New(
		internal.WithStartupHook(func(context.Context) error {
			started = true
			return nil
		}),
		internal.WithShutdownHook(func(context.Context) error {
			stopped = true
			return nil
		}),
	)
	err = app.Run(ln.Addr().String())
	require.Error(t, err)
	require.True(t, started)
	require.True(t, stopped, "shutdown hooks run when the listener cannot bind")
}
