package engine_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kroobeet/engine"
	"github.com/kroobeet/engine/migrations"
	"github.com/kroobeet/engine/pkg/db"
	"github.com/kroobeet/engine/pkg/session"
)

// greeter is a controller built per request.
type greeter struct {
	router  *engine.Router
	session *engine.Session
	prefix  string
}

func newGreeter(r *engine.Router, s *engine.Session, prefix string) *greeter {
	return &greeter{router: r, session: s, prefix: prefix}
}

func (g *greeter) hello(c engine.Context, name string) error {
	return c.String(http.StatusOK, g.prefix+name)
}

func (g *greeter) sum(c engine.Context, a, b int) error {
	return c.String(http.StatusOK, strings.Repeat("+", a+b))
}

func (g *greeter) login(c engine.Context) error {
	g.session.Start(c)
	g.session.Login("tester")
	g.session.Update(c)
	return c.NoContent(http.StatusNoContent)
}

type greetings struct{}

func (greetings) Routes(r *engine.Router) {
	engine.Provide(r, func() string { return "hello, " })
	ctl := engine.Controller3("greeter", newGreeter)

	r.AddRoute("/hello/{name}", engine.Action1(ctl, "hello", (*greeter).hello))
	r.AddRoute("/sum/{a}/{b}", engine.Action2(ctl, "sum", (*greeter).sum))
	r.AddRoute("/login", engine.Action0(ctl, "login", (*greeter).login))
	r.AddRoute("/private", engine.Handle("private", func(c engine.Context) error {
		return c.String(http.StatusOK, "secret for "+c.Session().Username())
	}), true)
}

func newApp(t *testing.T) *engine.App {
	t.Helper()
	ctx := context.Background()

	conn, err := db.Open(ctx, db.Config{Driver: db.DialectSQLite, DSN: ":memory:"})
	if err != nil {
		t.Fatalf("db.Open() error = %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	fsys, err := migrations.For(string(conn.Dialect()))
	if err != nil {
		t.Fatalf("migrations.For() error = %v", err)
	}
	if err := db.Migrate(ctx, conn, fsys, "", nil); err != nil {
		t.Fatalf("db.Migrate() error = %v", err)
	}

	return engine.New(
		engine.WithSession(session.NewSQLStore(conn)),
		engine.WithHandlers(greetings{}),
	)
}

func get(h http.Handler, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestNew(t *testing.T) {
	app := engine.New()
	if app == nil {
		t.Fatal("New() returned nil")
	}

	rec := get(app, "/")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "404 Not Found" {
		t.Errorf("body = %q, want %q", got, "404 Not Found")
	}
}

func TestControllers(t *testing.T) {
	app := newApp(t)

	tests := []struct {
		path string
		code int
		body string
	}{
		{"/hello/world", http.StatusOK, "hello, world"},
		{"/sum/2/3", http.StatusOK, "+++++"},
		{"/sum/2/x", http.StatusInternalServerError, "500 Internal Server Error\n"},
		{"/hello/a/b", http.StatusNotFound, "404 Not Found\n"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := get(app, tt.path)
			if rec.Code != tt.code {
				t.Errorf("status = %d, want %d", rec.Code, tt.code)
			}
			if rec.Body.String() != tt.body {
				t.Errorf("body = %q, want %q", rec.Body.String(), tt.body)
			}
		})
	}
}

func TestLoginGate(t *testing.T) {
	app := newApp(t)

	rec := get(app, "/private")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
	if !strings.Contains(rec.Body.String(), "You must be logged in") {
		t.Errorf("body = %q", rec.Body.String())
	}

	rec = get(app, "/login")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("login status = %d", rec.Code)
	}

	var sid *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.DefaultCookieName {
			sid = c
		}
	}
	if sid == nil {
		t.Fatal("no session cookie")
	}

	rec = get(app, "/private", sid)
	if rec.Code != http.StatusOK || rec.Body.String() != "secret for tester" {
		t.Errorf("got %d %q", rec.Code, rec.Body.String())
	}
}

func TestStatusCode(t *testing.T) {
	if got := engine.StatusCode(engine.NewHTTPError(http.StatusTeapot, "tea")); got != http.StatusTeapot {
		t.Errorf("StatusCode() = %d", got)
	}
	if got := engine.StatusCode(engine.ErrUnauthorized); got != http.StatusForbidden {
		t.Errorf("StatusCode(ErrUnauthorized) = %d", got)
	}
	if got := engine.StatusCode(errors.New("boom")); got != http.StatusInternalServerError {
		t.Errorf("StatusCode(boom) = %d", got)
	}
}
