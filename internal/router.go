package internal

import (
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strings"
	"sync"
)

// placeholder matches a named path segment such as {id}.
var placeholder = regexp.MustCompile(`\{(\w+)\}`)

// Route maps a path pattern to an Action.
type Route struct {
	Action       Action
	matcher      *regexp.Regexp
	Pattern      string
	RequiresAuth bool
}

// Router owns the ordered route table and drives dispatch.
//
// Routes are tried in registration order and the first full-path match wins,
// however specific a later route may be. Matching ignores the HTTP method.
// Path captures are bound to action parameters by position, not by name.
//
// Routes and providers are registered during setup; after that the Router
// is safe for concurrent dispatch.
type Router struct {
	logger    *slog.Logger
	providers map[any]any
	routes    []Route
	mu        sync.RWMutex
}

// NewRouter creates an empty Router.
func NewRouter() *Router {
	return &Router{
		logger:    slog.New(slog.DiscardHandler),
		providers: make(map[any]any),
	}
}

func (r *Router) setLogger(l *slog.Logger) {
	if l != nil {
		r.logger = l
	}
}

// AddRoute registers an action for pattern. Each {name} placeholder
// matches one non-empty path segment; the rest of the pattern matches
// literally. A duplicate pattern never wins over the earlier one.
//
//	r.AddRoute("/", home)
//	r.AddRoute("/dashboard", dashboard, true)
//	r.AddRoute("/user/{id}", showUser, true)
func (r *Router) AddRoute(pattern string, a Action, requiresAuth ...bool) {
	route := Route{
		Pattern:      pattern,
		Action:       a,
		RequiresAuth: len(requiresAuth) > 0 && requiresAuth[0],
		matcher:      compilePattern(pattern),
	}

	r.mu.Lock()
	r.routes = append(r.routes, route)
	r.mu.Unlock()
}

// compilePattern anchors pattern to the whole path, turning every
// placeholder into a ([^/]+) capture.
func compilePattern(pattern string) *regexp.Regexp {
	var b strings.Builder
	b.WriteByte('^')
	last := 0
	for _, loc := range placeholder.FindAllStringIndex(pattern, -1) {
		b.WriteString(regexp.QuoteMeta(pattern[last:loc[0]]))
		b.WriteString(`([^/]+)`)
		last = loc[1]
	}
	b.WriteString(regexp.QuoteMeta(pattern[last:]))
	b.WriteByte('$')
	return regexp.MustCompile(b.String())
}

// Match returns the first route matching path and its captures in order.
func (r *Router) Match(path string) (Route, []string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, route := range r.routes {
		if m := route.matcher.FindStringSubmatch(path); m != nil {
			return route, m[1:], true
		}
	}
	return Route{}, nil, false
}

// Dispatch routes the request held by c.
//
// An unmatched path fails with ErrRouteNotFound (404). A protected route
// runs the Auth Gate before anything else and fails with ErrUnauthorized
// (403) without building the controller. Resolution failures surface as
// a 500 HTTPError wrapping a *ResolutionError.
func (r *Router) Dispatch(c Context) error {
	path := c.Request().URL.Path

	route, captures, ok := r.Match(path)
	if !ok {
		return routeNotFound(path)
	}

	c.Set(paramsKey{}, captures)
	r.logger.DebugContext(c.Context(), "route matched",
		slog.String("pattern", route.Pattern),
		slog.String("action", route.Action.Name()),
	)

	if route.RequiresAuth {
		if err := authorize(c); err != nil {
			return err
		}
	}

	return route.Action.invoke(c, r, captures)
}

// Routes returns a copy of the route table in registration order.
func (r *Router) Routes() []Route {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Route(nil), r.routes...)
}

// URL builds a path from pattern, filling placeholders with params in order.
// Placeholders without a matching param are left as is, so URL with no
// params returns pattern unchanged.
//
//	r.URL("/user/{id}", 42) // "/user/42"
func (r *Router) URL(pattern string, params ...any) string {
	if len(params) == 0 {
		return pattern
	}

	i := 0
	return placeholder.ReplaceAllStringFunc(pattern, func(m string) string {
		if i >= len(params) {
			return m
		}
		v := url.PathEscape(fmt.Sprint(params[i]))
		i++
		return v
	})
}
