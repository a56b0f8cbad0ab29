package middlewares

import "github.com/kroobeet/engine/internal"

// SecureHeaders forbids framing by other origins and MIME sniffing.
func SecureHeaders() internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			c.SetHeader("X-Frame-Options", "SAMEORIGIN")
			c.SetHeader("Content-Security-Policy", "frame-ancestors 'self'")
			c.SetHeader("X-Content-Type-Options", "nosniff")
			c.SetHeader("Referrer-Policy", "same-origin")
			return next(c)
		}
	}
}
