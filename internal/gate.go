package internal

import "log/slog"

// authorize starts the request session and fails with a 403 HTTPError
// wrapping ErrUnauthorized unless a user is logged in.
func authorize(c Context) error {
	s := c.Session()
	if s == nil {
		return unauthorized()
	}

	s.Start(c.Context())
	if !s.IsLoggedIn() {
		c.LogDebug("login required", slog.String("path", c.Request().URL.Path))
		return unauthorized()
	}
	return nil
}

// RequireLogin rejects requests without a logged-in session.
// It is the same gate protected routes run, usable as route or
// global middleware.
func RequireLogin(next HandlerFunc) HandlerFunc {
	return func(c Context) error {
		if err := authorize(c); err != nil {
			return err
		}
		return next(c)
	}
}
