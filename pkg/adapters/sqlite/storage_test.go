package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/tempnotes/pkg/core"
)

func setupStorage(t *testing.T, dsn string) *Storage {
	t.Helper()
	s, err := Open(dsn, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.Initialize(context.Background()))
	return s
}

func TestGet_NotExists_ReturnsNilNil(t *testing.T) {
	s := setupStorage(t, ":memory:")

	v, err := s.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestSet_UpsertOverwritesValue(t *testing.T) {
	ctx := context.Background()
	s := setupStorage(t, ":memory:")

	require.NoError(t, s.Set(ctx, "k", []byte("old")))
	require.NoError(t, s.Set(ctx, "k", []byte("new")))

	v, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), v)

	var rows int
	require.NoError(t, s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM kv`).Scan(&rows))
	assert.Equal(t, 1, rows)
}

func TestInitialize_IsIdempotent(t *testing.T) {
	s := setupStorage(t, ":memory:")
	require.NoError(t, s.Initialize(context.Background()))
}

func TestStorage_PersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "notes.db")

	first, err := Open(dsn, nil)
	require.NoError(t, err)
	require.NoError(t, first.Initialize(ctx))
	require.NoError(t, first.Set(ctx, "tempnotes-data", []byte(`[]`)))
	require.NoError(t, first.Close())

	second := setupStorage(t, dsn)
	v, err := second.Get(ctx, "tempnotes-data")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(v))

	assert.Equal(t, "sqlite", second.ComponentType())
	assert.Equal(t, dsn, second.State().(StorageState).DSN)
}

func TestStorage_ReadOnly(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "notes.db")

	writer := setupStorage(t, path)
	require.NoError(t, writer.Set(ctx, "tempnotes-data", []byte(`[]`)))
	require.NoError(t, writer.Close())

	s, err := Open("file:"+path+"?mode=ro", nil, WithReadOnly())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.Initialize(ctx))

	v, err := s.Get(ctx, "tempnotes-data")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(v))

	err = s.Set(ctx, "tempnotes-data", []byte(`[{}]`))
	assert.ErrorIs(t, err, core.ErrReadOnly)
	assert.True(t, s.State().(StorageState).ReadOnly)
}
