package logger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// ErrUnknownLevel is returned by ParseLevel for unrecognized level names.
var ErrUnknownLevel = errors.New("logger: unknown level")

// Format selects the record encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

type config struct {
	output     io.Writer
	format     Format
	extractors []ContextExtractor
	sentry     *SentryConfig
	level      slog.Level
}

// Option configures New.
type Option func(*config)

// WithLevel sets the minimum level written to the output.
func WithLevel(level slog.Level) Option {
	return func(c *config) {
		c.level = level
	}
}

// WithOutput sets the destination. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		if w != nil {
			c.output = w
		}
	}
}

// WithFormat sets the encoding. Defaults to JSON.
func WithFormat(f Format) Option {
	return func(c *config) {
		c.format = f
	}
}

// WithExtractors adds context extractors applied on every log call.
func WithExtractors(extractors ...ContextExtractor) Option {
	return func(c *config) {
		c.extractors = append(c.extractors, extractors...)
	}
}

// WithSentry also forwards warnings and errors to Sentry.
// An empty DSN leaves Sentry disabled.
func WithSentry(cfg SentryConfig) Option {
	return func(c *config) {
		if cfg.DSN != "" {
			c.sentry = &cfg
		}
	}
}

// New creates a structured logger. Without options it writes JSON at
// info level to stdout.
func New(opts ...Option) *slog.Logger {
	cfg := &config{
		output: os.Stdout,
		format: FormatJSON,
		level:  slog.LevelInfo,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	handlerOpts := &slog.HandlerOptions{Level: cfg.level}

	var h slog.Handler
	if cfg.format == FormatText {
		h = slog.NewTextHandler(cfg.output, handlerOpts)
	} else {
		h = slog.NewJSONHandler(cfg.output, handlerOpts)
	}

	if cfg.sentry != nil {
		sh, err := newSentryHandler(*cfg.sentry)
		if err != nil {
			slog.New(h).Error("failed to initialize Sentry", slog.Any("error", err))
		} else {
			h = newMultiHandler(h, sh)
		}
	}

	return slog.New(NewLogHandlerDecorator(h, cfg.extractors...))
}

// ParseLevel converts debug, info, warn or error to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
}
