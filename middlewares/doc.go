// Package middlewares provides HTTP middleware for engine applications.
//
//	app := engine.New(
//	    engine.WithLogger("web", middlewares.RequestIDExtractor()),
//	    engine.WithMiddleware(
//	        middlewares.RequestID(),
//	        middlewares.AccessLog(),
//	        middlewares.Recover(),
//	        middlewares.SecureHeaders(),
//	    ),
//	)
//
// Middleware runs in the order given, before route dispatch, so every
// request passes through it including those answered with 403 or 404.
//
// Recover converts panics into *PanicError values; the application error
// handler answers them with 500. RequestID reuses an upstream X-Request-ID
// or generates a UUID, and RequestIDExtractor adds it to log entries.
package middlewares
