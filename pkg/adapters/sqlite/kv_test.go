package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/camnotes/pkg/core"
)

func openTemp(t *testing.T) (*KV, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "db", "camnotes.db")
	kv, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })
	return kv, path
}

func TestKV_GetSet(t *testing.T) {
	ctx := context.Background()
	kv, _ := openTemp(t)

	_, ok, err := kv.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Set(ctx, "k", []byte("one")))
	require.NoError(t, kv.Set(ctx, "k", []byte("two")))

	value, ok, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "two", string(value))
}

func TestKV_SnapshotSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	kv, path := openTemp(t)

	notes := []core.Note{
		{ID: "note_2.jpg", FileURI: "/n/note_2.jpg", Caption: "b"},
		{ID: "note_1.jpg", FileURI: "/n/note_1.jpg", Caption: "a", LibraryRef: "asset://1"},
	}
	require.NoError(t, core.NewSnapshots(kv, "").Save(ctx, notes))
	require.NoError(t, kv.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := core.NewSnapshots(reopened, "").Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, notes, got)
}

func TestKV_ClosedDatabase(t *testing.T) {
	ctx := context.Background()
	kv, _ := openTemp(t)
	require.NoError(t, kv.Close())

	err := core.NewSnapshots(kv, "").Save(ctx, nil)
	require.ErrorIs(t, err, core.ErrPersistenceFailed)
}
