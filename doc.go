// Package engine is a small web runtime: an ordered path router,
// typed dependency injection into controllers, a login gate and
// database-backed sessions.
//
// # Routes
//
// Routes are tried in the order they were added and the first full-path
// match wins. A {name} placeholder matches one path segment. The HTTP
// method is not part of the match.
//
//	app := engine.New(
//	    engine.WithSession(session.NewSQLStore(conn)),
//	    engine.WithRenderer(views),
//	    engine.WithRoutes(func(r *engine.Router) {
//	        home := engine.Controller1("home", handlers.NewHome)
//	        users := engine.Controller3("user", handlers.NewUser)
//
//	        r.AddRoute("/", engine.Action0(home, "index", (*handlers.Home).Index))
//	        r.AddRoute("/user/{id}", engine.Action1(users, "show", (*handlers.User).Show), true)
//	    }),
//	)
//
// # Dependency resolution
//
// Constructor and method parameters are resolved by declared type:
// *engine.Router, *engine.Session and engine.Context are supplied by the
// runtime. Other parameters take the path capture at the same position
// (int, int64 or string), then a factory registered with [Provide].
// Pointer types without a factory get a fresh instance of their element
// type; other types get the zero value. Captures bind by position, not by
// placeholder name. A capture that does not parse as an integer fails the
// request with 500.
//
// # Access control
//
// Routes added with requiresAuth run the login gate first. Without a
// logged-in session the request ends with 403 and the controller is never
// built. [RequireLogin] applies the same gate as middleware.
//
// # Sessions
//
// Every request carries one unstarted [Session]. Start resumes or creates
// the persisted record, collecting expired ones first; Update persists the
// in-memory view; Destroy removes it. See package session.
package engine
