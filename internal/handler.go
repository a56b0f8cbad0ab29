package internal

// HandlerFunc is the signature for request handlers.
// Returning a non-nil error hands the request to the ErrorHandler.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc to add cross-cutting concerns.
// Middleware can inspect the request, short-circuit processing,
// or wrap the response.
//
// Example:
//
//	func Admin(next engine.HandlerFunc) engine.HandlerFunc {
//	    return func(c engine.Context) error {
//	        if c.Session().Username() != "admin" {
//	            return c.Redirect(302, "/login")
//	        }
//	        return next(c)
//	    }
//	}
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler handles errors returned from handlers.
type ErrorHandler func(Context, error) error
