// Package internal provides the core types and implementation for the engine.
//
// This package is internal and should not be used directly. Import
// "github.com/kroobeet/engine" instead, which re-exports the public API.
//
// # Core Types
//
//   - App: mounts the Router behind chi, binds sessions, runs the server
//   - Router: ordered route table, first full-path match wins
//   - Action, Controller: typed constructors and methods the Router invokes
//   - Context: request/response access, session, rendering and logging
//   - HandlerFunc, Middleware, ErrorHandler: the handler chain
//
// # Dispatch
//
// Every request that is not a static file or a health probe reaches
// Router.Dispatch. The path (without query string) is matched against
// each route in registration order. On a match the captures are stored
// on the request, the login gate runs when the route requires it, the
// controller is built from resolved constructor arguments and the method
// is called with resolved parameters.
//
//	r := internal.NewRouter()
//	users := internal.Controller1("user", newUserController)
//	r.AddRoute("/user/{id}", internal.Action1(users, "show", (*userController).Show), true)
//
// # Resolution
//
// Parameters are resolved by type in this order: the Router, the
// request Session, the request Context, the path capture at the same
// position (int, int64 or string only), a factory registered with
// Provide, a new instance for pointer types, and finally the zero value.
// Only the empty interface resolves to nil.
//
// # Errors
//
// Handlers return errors. StatusCode maps them: *HTTPError carries its own
// code, ErrRouteNotFound is 404, ErrUnauthorized is 403, everything else
// is 500. A configured ErrorHandler may render the response; otherwise a
// plain text body is written.
package internal
