package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kroobeet/engine/pkg/session"
)

func TestNewSweeper_InvalidSchedule(t *testing.T) {
	m, _, _ := newManager(t)

	_, err := session.NewSweeper(m, "every now and then")
	require.ErrorIs(t, err, session.ErrInvalidSchedule)
}

func TestSweeper_RunOnce(t *testing.T) {
	m, store, clk := newManager(t)
	ctx := context.Background()
	now := clk.now().Unix()

	require.NoError(t, store.Create(ctx, &session.Record{ID: "old", Data: `{}`, LastActivity: now - 7200}))
	require.NoError(t, store.Create(ctx, &session.Record{ID: "new", Data: `{}`, LastActivity: now}))

	sw, err := session.NewSweeper(m, "@every 1h")
	require.NoError(t, err)

	n, err := sw.RunOnce(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	_, err = store.Get(ctx, "new")
	require.NoError(t, err)
}

func TestSweeper_StartStop(t *testing.T) {
	m, _, _ := newManager(t)

	sw, err := session.NewSweeper(m, "@every 1h")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	require.NoError(t, sw.Start(ctx))
	require.NoError(t, sw.Stop(ctx))
}
