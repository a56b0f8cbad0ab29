// Package logger builds log/slog loggers with context extraction and
// optional Sentry forwarding.
//
//	log := logger.New(
//		logger.WithLevel(slog.LevelDebug),
//		logger.WithExtractors(logger.StringValue(requestIDKey, "request_id")),
//		logger.WithSentry(logger.SentryConfig{DSN: os.Getenv("SENTRY_DSN")}),
//	)
//
// Extractors run on every log call, so request-scoped values are always
// current. With a Sentry DSN, errors create issues and warnings are stored
// as logs; if Sentry fails to initialize the logger keeps writing to its
// output only.
package logger
