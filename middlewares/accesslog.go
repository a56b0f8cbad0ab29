package middlewares

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/kroobeet/engine/internal"
)

// AccessLog logs one line per request after the inner chain returns.
// Requests answered with 5xx are logged at warn level.
func AccessLog() internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			start := time.Now()
			err := next(c)

			status := http.StatusOK
			if rw, ok := c.Response().(interface{ Status() int }); ok && rw.Status() != 0 {
				status = rw.Status()
			}

			attrs := []any{
				slog.String("method", c.Request().Method),
				slog.String("path", c.Request().URL.Path),
				slog.Int("status", status),
				slog.Duration("duration", time.Since(start)),
			}
			if status >= http.StatusInternalServerError {
				c.LogWarn("request completed", attrs...)
			} else {
				c.LogInfo("request completed", attrs...)
			}
			return err
		}
	}
}
