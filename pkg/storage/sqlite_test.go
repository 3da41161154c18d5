package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})
	return store
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	store := setupSQLiteStore(t)
	ctx := context.Background()

	_, err := store.Get(ctx, KeyUser)
	assert.True(t, errors.Is(err, ErrNotFound))

	require.NoError(t, store.Put(ctx, KeyUser, []byte(`{"email":"a@b.c"}`)))

	got, err := store.Get(ctx, KeyUser)
	require.NoError(t, err)
	assert.JSONEq(t, `{"email":"a@b.c"}`, string(got))

	require.NoError(t, store.Delete(ctx, KeyUser))
	_, err = store.Get(ctx, KeyUser)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestSQLiteStoreUpsertReplacesValue(t *testing.T) {
	store := setupSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, KeyCart, []byte("v1")))
	require.NoError(t, store.Put(ctx, KeyCart, []byte("v2")))

	got, err := store.Get(ctx, KeyCart)
	require.NoError(t, err)
	assert.Equal(t, "v2", string(got))
}

func TestSQLiteStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	first, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, first.Put(context.Background(), KeyCart, []byte("persisted")))
	require.NoError(t, first.Close())

	second, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer second.Close()

	got, err := second.Get(context.Background(), KeyCart)
	require.NoError(t, err)
	assert.Equal(t, "persisted", string(got))
}
