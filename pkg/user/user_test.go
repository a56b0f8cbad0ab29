package user_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/kroobeet/engine/migrations"
	"github.com/kroobeet/engine/pkg/db"
	"github.com/kroobeet/engine/pkg/user"
)

func newRepo(t *testing.T) *user.Repository {
	t.Helper()
	ctx := context.Background()

	conn, err := db.Open(ctx, db.Config{Driver: db.DialectSQLite, DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	fsys, err := migrations.For(string(conn.Dialect()))
	require.NoError(t, err)
	require.NoError(t, db.Migrate(ctx, conn, fsys, "", nil))

	return user.NewRepository(conn, user.WithBcryptCost(bcrypt.MinCost))
}

func TestRepository_CreateAndFind(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	u, err := repo.Create(ctx, "  alice ", "secret")
	require.NoError(t, err)
	require.Positive(t, u.ID)
	require.Equal(t, "alice", u.Username)
	require.NotEqual(t, "secret", u.PasswordHash)

	byName, err := repo.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, u.ID, byName.ID)

	byID, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "alice", byID.Username)
	require.Equal(t, u.PasswordHash, byID.PasswordHash)
}

func TestRepository_NotFound(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	_, err := repo.FindByUsername(ctx, "nobody")
	require.ErrorIs(t, err, user.ErrNotFound)

	_, err = repo.FindByID(ctx, 404)
	require.ErrorIs(t, err, user.ErrNotFound)
}

func TestRepository_CreateValidation(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, "   ", "secret")
	require.ErrorIs(t, err, user.ErrEmptyField)

	_, err = repo.Create(ctx, "bob", "")
	require.ErrorIs(t, err, user.ErrEmptyField)

	_, err = repo.Create(ctx, "bob", "secret")
	require.NoError(t, err)

	_, err = repo.Create(ctx, "bob", "other")
	require.ErrorIs(t, err, user.ErrUsernameTaken)
}

func TestRepository_Authenticate(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, "carol", "s3cret")
	require.NoError(t, err)

	u, err := repo.Authenticate(ctx, "carol", "s3cret")
	require.NoError(t, err)
	require.Equal(t, "carol", u.Username)

	_, err = repo.Authenticate(ctx, "carol", "wrong")
	require.ErrorIs(t, err, user.ErrInvalidCredentials)

	_, err = repo.Authenticate(ctx, "dave", "s3cret")
	require.ErrorIs(t, err, user.ErrInvalidCredentials)
}
