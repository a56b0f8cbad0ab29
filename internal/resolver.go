package internal

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/kroobeet/engine/pkg/session"
)

type paramKind uint8

const (
	kindUntyped paramKind = iota
	kindRouter
	kindSession
	kindContext
	kindInt
	kindInt64
	kindString
	kindOther
)

// param is a declared parameter, classified once at registration.
type param struct {
	typ  string
	kind paramKind
	// alloc builds a fresh instance for pointer types without a provider.
	alloc func() any
}

// declare classifies T. Only the empty interface counts as untyped;
// other interface types resolve through providers like any other type.
func declare[T any]() param {
	switch any((*T)(nil)).(type) {
	case *any:
		return param{kind: kindUntyped, typ: "any"}
	case *Context:
		return param{kind: kindContext, typ: "engine.Context"}
	}

	var zero T
	p := param{typ: strings.TrimPrefix(fmt.Sprintf("%T", (*T)(nil)), "*")}
	switch any(zero).(type) {
	case *Router:
		p.kind = kindRouter
	case *session.Session:
		p.kind = kindSession
	case int:
		p.kind = kindInt
	case int64:
		p.kind = kindInt64
	case string:
		p.kind = kindString
	default:
		p.kind = kindOther
		if t := reflect.TypeFor[T](); t.Kind() == reflect.Pointer {
			elem := t.Elem()
			p.alloc = func() any { return reflect.New(elem).Interface() }
		}
	}
	return p
}

// resolve produces the value of the parameter at index:
//
//  1. untyped: nil
//  2. *Router: the router
//  3. *session.Session: the request's session
//  4. Context: the request context
//  5. a capture at the same index: int and int64 parsed strictly,
//     string raw, anything else an error
//  6. a registered provider for T, else a new instance for pointer
//     types, else the zero value
func resolve[T any](c Context, r *Router, p param, index int, pool []string) (T, error) {
	var zero T

	switch p.kind {
	case kindUntyped:
		return zero, nil
	case kindRouter:
		return any(r).(T), nil
	case kindSession:
		s := c.Session()
		if s == nil {
			return zero, ErrSessionNotConfigured
		}
		return any(s).(T), nil
	case kindContext:
		return any(c).(T), nil
	}

	if index < len(pool) {
		raw := pool[index]
		switch p.kind {
		case kindInt:
			n, err := strconv.Atoi(raw)
			if err != nil {
				return zero, err
			}
			return any(n).(T), nil
		case kindInt64:
			n, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return zero, err
			}
			return any(n).(T), nil
		case kindString:
			return any(raw).(T), nil
		default:
			return zero, ErrUnsupportedType
		}
	}

	if v, ok := provided[T](r); ok {
		return v, nil
	}
	if p.alloc != nil {
		return p.alloc().(T), nil
	}
	return zero, nil
}

type providerKey[T any] struct{}

// Provide registers the default instance factory for T. It is used for
// parameters of type T that no earlier rule resolves. The factory takes
// no arguments; its own dependencies are captured when it is declared.
//
//	engine.Provide(r, func() *user.Repository { return users })
func Provide[T any](r *Router, fn func() T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[providerKey[T]{}] = fn
}

func provided[T any](r *Router) (T, bool) {
	r.mu.RLock()
	fn, ok := r.providers[providerKey[T]{}]
	r.mu.RUnlock()

	if !ok {
		var zero T
		return zero, false
	}
	return fn.(func() T)(), true
}

// resolution collects arguments for one call and keeps the first failure.
type resolution struct {
	c    Context
	r    *Router
	err  error
	name string
	pool []string
}

func arg[T any](rs *resolution, p param, index int) T {
	if rs.err != nil {
		var zero T
		return zero
	}
	v, err := resolve[T](rs.c, rs.r, p, index, rs.pool)
	if err != nil {
		rs.err = &ResolutionError{Action: rs.name, Index: index, Type: p.typ, Err: err}
	}
	return v
}
