package db_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/habedi/tokenkeeper/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepo(t *testing.T) db.CredentialRepository {
	t.Helper()
	db.Path = filepath.Join(t.TempDir(), "credentials.db")
	require.NoError(t, db.InitDB())
	t.Cleanup(func() {
		_ = db.CloseDB()
	})
	return db.NewCredentialRepository(db.Db)
}

func TestCredentialRepositorySetAndGet(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "access_token", "A1"))

	value, err := repo.Get(ctx, "access_token")
	require.NoError(t, err)
	assert.Equal(t, "A1", value)
}

func TestCredentialRepositorySetOverwrites(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "access_token", "A1"))
	require.NoError(t, repo.Set(ctx, "access_token", "A2"))

	value, err := repo.Get(ctx, "access_token")
	require.NoError(t, err)
	assert.Equal(t, "A2", value)
}

func TestCredentialRepositoryMissingKeyIsEmpty(t *testing.T) {
	repo := setupRepo(t)

	value, err := repo.Get(context.Background(), "nope")

	require.NoError(t, err)
	assert.Empty(t, value)
}

func TestCredentialRepositoryDelete(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.Set(ctx, "access_token", "A1"))
	require.NoError(t, repo.Set(ctx, "refresh_token", "R1"))

	require.NoError(t, repo.Delete(ctx, "access_token", "refresh_token"))

	access, err := repo.Get(ctx, "access_token")
	require.NoError(t, err)
	refresh, err := repo.Get(ctx, "refresh_token")
	require.NoError(t, err)
	assert.Empty(t, access)
	assert.Empty(t, refresh)
}

func TestUninitializedRepositoryFails(t *testing.T) {
	repo := db.NewCredentialRepository(nil)
	ctx := context.Background()

	_, err := repo.Get(ctx, "access_token")
	assert.Error(t, err)

	assert.Error(t, repo.Set(ctx, "access_token", "A1"))
	assert.Error(t, repo.Delete(ctx, "access_token"))
}
