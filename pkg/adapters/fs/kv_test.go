package fs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/camnotes/pkg/core"
)

func TestKV(t *testing.T) {
	ctx := context.Background()

	t.Run("Missing Key", func(t *testing.T) {
		kv := NewKV(t.TempDir(), nil)
		value, ok, err := kv.Get(ctx, "absent")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, value)
	})

	t.Run("Set Then Get", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "state")
		kv := NewKV(dir, nil)

		require.NoError(t, kv.Set(ctx, core.DefaultSnapshotKey, []byte(`[1]`)))
		require.NoError(t, kv.Set(ctx, core.DefaultSnapshotKey, []byte(`[2]`)))

		value, ok, err := kv.Get(ctx, core.DefaultSnapshotKey)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, `[2]`, string(value))

		// The key's slash must not create a subdirectory.
		assert.Equal(t, dir, filepath.Dir(kv.Path(core.DefaultSnapshotKey)))

		st := kv.State().(KVState)
		assert.Equal(t, 2, st.Writes)
	})

	t.Run("Unwritable Directory", func(t *testing.T) {
		root := t.TempDir()
		blocker := filepath.Join(root, "file")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

		kv := NewKV(filepath.Join(blocker, "sub"), nil)
		require.Error(t, kv.Set(ctx, "k", []byte("v")))
	})

	t.Run("Cancelled Context", func(t *testing.T) {
		kv := NewKV(t.TempDir(), nil)
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		require.ErrorIs(t, kv.Set(cctx, "k", []byte("v")), context.Canceled)
	})
}

func TestKV_WithSnapshots(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	snaps := core.NewSnapshots(NewKV(dir, nil), "")
	notes := []core.Note{{ID: "note_1.jpg", FileURI: "/x/note_1.jpg", Caption: "beach"}}
	require.NoError(t, snaps.Save(ctx, notes))

	got, err := core.NewSnapshots(NewKV(dir, nil), "").Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, notes, got)
}
