package internal

// Action is the target of a route: a controller built per request and
// one of its methods. Actions are declared with the typed helpers below,
// so every dependency a controller or method takes is known at compile time.
//
//	users := engine.Controller2("user", handlers.NewUser)
//	r.AddRoute("/user/{id}", engine.Action1(users, "show", (*handlers.User).Show), true)
//
// The request Context is passed to every method ahead of the resolved
// parameters and does not count toward their positions.
type Action struct {
	invoke func(c Context, r *Router, pool []string) error
	name   string
}

// Name returns "controller.method".
func (a Action) Name() string {
	return a.name
}

// Handle wraps a plain HandlerFunc as an Action with no controller.
func Handle(name string, h HandlerFunc) Action {
	return Action{
		name: name,
		invoke: func(c Context, _ *Router, _ []string) error {
			return h(c)
		},
	}
}

// Controller builds a fresh T for every dispatched request.
// Constructor parameters are resolved without path captures.
type Controller[T any] struct {
	build func(c Context, r *Router) (T, error)
	name  string
}

// Name returns the controller name used in logs and errors.
func (ctl Controller[T]) Name() string {
	return ctl.name
}

func Controller0[T any](name string, fn func() T) Controller[T] {
	return Controller[T]{
		name: name,
		build: func(Context, *Router) (T, error) {
			return fn(), nil
		},
	}
}

func Controller1[T, A any](name string, fn func(A) T) Controller[T] {
	pa := declare[A]()
	return Controller[T]{
		name: name,
		build: func(c Context, r *Router) (T, error) {
			rs := &resolution{c: c, r: r, name: name}
			a := arg[A](rs, pa, 0)
			if rs.err != nil {
				var zero T
				return zero, rs.err
			}
			return fn(a), nil
		},
	}
}

func Controller2[T, A, B any](name string, fn func(A, B) T) Controller[T] {
	pa, pb := declare[A](), declare[B]()
	return Controller[T]{
		name: name,
		build: func(c Context, r *Router) (T, error) {
			rs := &resolution{c: c, r: r, name: name}
			a := arg[A](rs, pa, 0)
			b := arg[B](rs, pb, 1)
			if rs.err != nil {
				var zero T
				return zero, rs.err
			}
			return fn(a, b), nil
		},
	}
}

func Controller3[T, A, B, C any](name string, fn func(A, B, C) T) Controller[T] {
	pa, pb, pc := declare[A](), declare[B](), declare[C]()
	return Controller[T]{
		name: name,
		build: func(c Context, r *Router) (T, error) {
			rs := &resolution{c: c, r: r, name: name}
			a := arg[A](rs, pa, 0)
			b := arg[B](rs, pb, 1)
			d := arg[C](rs, pc, 2)
			if rs.err != nil {
				var zero T
				return zero, rs.err
			}
			return fn(a, b, d), nil
		},
	}
}

func Action0[T any](ctl Controller[T], method string, fn func(T, Context) error) Action {
	name := ctl.name + "." + method
	return Action{
		name: name,
		invoke: func(c Context, r *Router, _ []string) error {
			t, err := ctl.build(c, r)
			if err != nil {
				return resolutionFailed(err)
			}
			return fn(t, c)
		},
	}
}

func Action1[T, A any](ctl Controller[T], method string, fn func(T, Context, A) error) Action {
	name := ctl.name + "." + method
	pa := declare[A]()
	return Action{
		name: name,
		invoke: func(c Context, r *Router, pool []string) error {
			t, err := ctl.build(c, r)
			if err != nil {
				return resolutionFailed(err)
			}
			rs := &resolution{c: c, r: r, name: name, pool: pool}
			a := arg[A](rs, pa, 0)
			if rs.err != nil {
				return resolutionFailed(rs.err)
			}
			return fn(t, c, a)
		},
	}
}

func Action2[T, A, B any](ctl Controller[T], method string, fn func(T, Context, A, B) error) Action {
	name := ctl.name + "." + method
	pa, pb := declare[A](), declare[B]()
	return Action{
		name: name,
		invoke: func(c Context, r *Router, pool []string) error {
			t, err := ctl.build(c, r)
			if err != nil {
				return resolutionFailed(err)
			}
			rs := &resolution{c: c, r: r, name: name, pool: pool}
			a := arg[A](rs, pa, 0)
			b := arg[B](rs, pb, 1)
			if rs.err != nil {
				return resolutionFailed(rs.err)
			}
			return fn(t, c, a, b)
		},
	}
}

func Action3[T, A, B, C any](ctl Controller[T], method string, fn func(T, Context, A, B, C) error) Action {
	name := ctl.name + "." + method
	pa, pb, pc := declare[A](), declare[B](), declare[C]()
	return Action{
		name: name,
		invoke: func(c Context, r *Router, pool []string) error {
			t, err := ctl.build(c, r)
			if err != nil {
				return resolutionFailed(err)
			}
			rs := &resolution{c: c, r: r, name: name, pool: pool}
			a := arg[A](rs, pa, 0)
			b := arg[B](rs, pb, 1)
			d := arg[C](rs, pc, 2)
			if rs.err != nil {
				return resolutionFailed(rs.err)
			}
			return fn(t, c, a, b, d)
		},
	}
}
