package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kroobeet/engine/pkg/logger"
)

type ctxKey struct{}

func TestNew_JSONWithExtractors(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithExtractors(logger.StringValue(ctxKey{}, "request_id"), nil),
	)

	ctx := context.WithValue(context.Background(), ctxKey{}, "req-1")
	log.InfoContext(ctx, "served", slog.Int("status", 200))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	require.Equal(t, "served", rec["msg"])
	require.Equal(t, "req-1", rec["request_id"])
	require.InDelta(t, 200, rec["status"], 0)
}

func TestNew_SkipsEmptyExtraction(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithExtractors(logger.StringValue(ctxKey{}, "request_id")),
	)
	log.With("component", "web").InfoContext(context.Background(), "no id")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	require.NotContains(t, rec, "request_id")
	require.Equal(t, "web", rec["component"])
}

func TestNew_LevelAndFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithFormat(logger.FormatText),
		logger.WithLevel(slog.LevelWarn),
	)

	log.Info("hidden")
	require.Empty(t, buf.String())

	log.Warn("shown")
	require.Contains(t, buf.String(), "msg=shown")
}

func TestNew_EmptySentryDSN(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithSentry(logger.SentryConfig{}))
	log.Error("boom")
	require.Contains(t, buf.String(), "boom")
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"", slog.LevelInfo},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{" error ", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := logger.ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		require.Equal(t, tt.want, got, tt.in)
	}

	_, err := logger.ParseLevel("loud")
	require.True(t, errors.Is(err, logger.ErrUnknownLevel))
}

func TestNewNope(t *testing.T) {
	t.Parallel()

	log := logger.NewNope()
	require.False(t, log.Enabled(context.Background(), slog.LevelError))
}
