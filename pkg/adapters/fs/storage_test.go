package fs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/tempnotes/pkg/core"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	s := NewStorage(Config{Path: filepath.Join(t.TempDir(), "data")})
	require.NoError(t, s.Initialize(context.Background()))
	return s
}

func TestStorage_GetSet(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage(t)

	v, err := s.Get(ctx, "tempnotes-data")
	require.NoError(t, err)
	assert.Nil(t, v, "absent key reads as nil")

	require.NoError(t, s.Set(ctx, "tempnotes-data", []byte(`[]`)))
	require.NoError(t, s.Set(ctx, "tempnotes-data", []byte(`[{"id":"a"}]`)))

	v, err = s.Get(ctx, "tempnotes-data")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"a"}]`, string(v))

	_, err = os.Stat(filepath.Join(s.Path, "tempnotes-data.json"))
	assert.NoError(t, err)
}

func TestStorage_RejectsUnsafeKeys(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage(t)

	for _, key := range []string{"", "..", "a/b", `a\b`, TempFilePrefix + "x"} {
		assert.ErrorIs(t, s.Set(ctx, key, []byte("x")), ErrInvalidKey, key)
		_, err := s.Get(ctx, key)
		assert.ErrorIs(t, err, ErrInvalidKey, key)
	}
}

func TestStorage_Initialize(t *testing.T) {
	ctx := context.Background()

	t.Run("creates directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "data")
		require.NoError(t, NewStorage(Config{Path: dir}).Initialize(ctx))
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("must exist", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "missing")
		assert.Error(t, NewStorage(Config{Path: dir, MustExist: true}).Initialize(ctx))
	})

	t.Run("removes stale temp files", func(t *testing.T) {
		dir := t.TempDir()
		stale := filepath.Join(dir, TempFilePrefix+"old")
		require.NoError(t, os.WriteFile(stale, []byte("x"), 0644))

		require.NoError(t, NewStorage(Config{Path: dir}).Initialize(ctx))
		_, err := os.Stat(stale)
		assert.True(t, os.IsNotExist(err))
	})
}

func TestStorage_ReadOnly(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "k.json"), []byte("v"), 0644))

	s := NewStorage(Config{Path: dir, ReadOnly: true})
	require.NoError(t, s.Initialize(ctx))

	v, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(v))
	assert.ErrorIs(t, s.Set(ctx, "k", []byte("w")), core.ErrReadOnly)
}

func TestStorage_WatchReportsExternalWrites(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s := newTestStorage(t)

	changes, err := s.Watch(ctx, "tempnotes-data")
	require.NoError(t, err)

	// Another process writing the file directly.
	require.NoError(t, os.WriteFile(filepath.Join(s.Path, "tempnotes-data.json"), []byte("[]"), 0644))

	select {
	case c := <-changes:
		assert.Equal(t, "tempnotes-data", c.Key)
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for change")
	}

	// Writes to other keys are ignored.
	require.NoError(t, s.Set(ctx, "other", []byte("[]")))
	select {
	case c := <-changes:
		t.Fatalf("unexpected change for %s", c.Key)
	case <-time.After(200 * time.Millisecond):
	}

	assert.Equal(t, 1, s.State().(StorageState).Watchers)

	cancel()
	for {
		select {
		case _, ok := <-changes:
			if !ok {
				return
			}
		case <-time.After(2 * time.Second):
			t.Fatal("watch did not stop")
		}
	}
}

func TestStorage_State(t *testing.T) {
	s := newTestStorage(t)
	require.NoError(t, s.Set(context.Background(), "k", []byte("v")))

	state := s.State().(StorageState)
	assert.Equal(t, s.Path, state.Path)
	assert.NotNil(t, state.LastWrite)
	assert.Equal(t, "fs", s.ComponentType())
}
