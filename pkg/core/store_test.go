package core_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/camnotes/pkg/core"
)

func seedNote(f *fixture, n int) core.Note {
	uri := fmt.Sprintf("%s/note_%d.jpg", durableDir, n)
	f.files.Put(uri, []byte("photo"))
	return core.Note{ID: fmt.Sprintf("note_%d.jpg", n), FileURI: uri}
}

func ids(notes []core.Note) []string {
	out := make([]string, 0, len(notes))
	for _, n := range notes {
		out = append(out, n.ID)
	}
	return out
}

func TestStore_AppendIsNewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		before := f.store.Len()
		require.NoError(t, f.store.Append(ctx, seedNote(f, i)))
		assert.Equal(t, before+1, f.store.Len())
	}

	want := []string{"note_5.jpg", "note_4.jpg", "note_3.jpg", "note_2.jpg", "note_1.jpg"}
	if diff := cmp.Diff(want, ids(f.store.Items())); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestStore_AppendRollsBackOnSaveFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.store.Append(ctx, seedNote(f, 1)))
	before := f.store.Items()

	f.backend.FailSet = true
	err := f.store.Append(ctx, seedNote(f, 2))
	require.ErrorIs(t, err, core.ErrPersistenceFailed)

	if diff := cmp.Diff(before, f.store.Items()); diff != "" {
		t.Errorf("items changed after failed append (-before +after):\n%s", diff)
	}
}

func TestStore_AppendRejectsDuplicateID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	note := seedNote(f, 1)
	require.NoError(t, f.store.Append(ctx, note))
	require.ErrorIs(t, f.store.Append(ctx, note), core.ErrDuplicateID)
	assert.Equal(t, 1, f.store.Len())
}

func TestStore_AppendRejectsMissingID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	note := seedNote(f, 1)
	note.ID = ""
	require.ErrorIs(t, f.store.Append(ctx, note), core.ErrInvalidNote)
	assert.Equal(t, 0, f.store.Len())
}

func TestStore_UpdateCaption(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.Append(ctx, seedNote(f, 1)))

	require.NoError(t, f.store.UpdateCaption(ctx, "note_1.jpg", "sunset"))
	got, ok := f.store.Get("note_1.jpg")
	require.True(t, ok)
	assert.Equal(t, "sunset", got.Caption)

	t.Run("Unchanged Caption Still Persists", func(t *testing.T) {
		sets := f.backend.Sets
		require.NoError(t, f.store.UpdateCaption(ctx, "note_1.jpg", "sunset"))
		assert.Equal(t, sets+1, f.backend.Sets)
	})

	t.Run("Unknown ID", func(t *testing.T) {
		err := f.store.UpdateCaption(ctx, "missing", "x")
		require.ErrorIs(t, err, core.ErrNotFound)
	})

	t.Run("Save Failure Keeps Old Caption", func(t *testing.T) {
		f.backend.FailSet = true
		defer func() { f.backend.FailSet = false }()

		require.ErrorIs(t, f.store.UpdateCaption(ctx, "note_1.jpg", "other"), core.ErrPersistenceFailed)
		got, _ := f.store.Get("note_1.jpg")
		assert.Equal(t, "sunset", got.Caption)
	})
}

func TestStore_Remove(t *testing.T) {
	ctx := context.Background()

	t.Run("Deletes Entry And File", func(t *testing.T) {
		f := newFixture(t)
		note := seedNote(f, 1)
		require.NoError(t, f.store.Append(ctx, note))

		require.NoError(t, f.store.Remove(ctx, note.ID))
		_, ok := f.store.Get(note.ID)
		assert.False(t, ok)
		assert.False(t, f.files.Exists(note.FileURI))
	})

	t.Run("Removal Stands When Discard Fails", func(t *testing.T) {
		f := newFixture(t)
		note := seedNote(f, 1)
		require.NoError(t, f.store.Append(ctx, note))

		f.files.FailDelete = true
		require.NoError(t, f.store.Remove(ctx, note.ID))

		_, ok := f.store.Get(note.ID)
		assert.False(t, ok)
		assert.Equal(t, []string{note.FileURI}, f.files.Deletes)
	})

	t.Run("Save Failure Keeps Entry And File", func(t *testing.T) {
		f := newFixture(t)
		note := seedNote(f, 1)
		require.NoError(t, f.store.Append(ctx, note))

		f.backend.FailSet = true
		require.ErrorIs(t, f.store.Remove(ctx, note.ID), core.ErrPersistenceFailed)

		_, ok := f.store.Get(note.ID)
		assert.True(t, ok)
		assert.True(t, f.files.Exists(note.FileURI))
		assert.Empty(t, f.files.Deletes)
	})

	t.Run("Unknown ID", func(t *testing.T) {
		f := newFixture(t)
		require.ErrorIs(t, f.store.Remove(ctx, "missing"), core.ErrNotFound)
	})
}

func TestStore_AttachLibraryRefOverwrites(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.Append(ctx, seedNote(f, 1)))

	require.NoError(t, f.store.AttachLibraryRef(ctx, "note_1.jpg", "asset://a"))
	require.NoError(t, f.store.AttachLibraryRef(ctx, "note_1.jpg", "asset://b"))

	got, _ := f.store.Get("note_1.jpg")
	assert.Equal(t, "asset://b", got.LibraryRef)
	assert.True(t, got.Exported())

	require.ErrorIs(t, f.store.AttachLibraryRef(ctx, "missing", "asset://c"), core.ErrNotFound)
}

func TestStore_RoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		require.NoError(t, f.store.Append(ctx, seedNote(f, i)))
	}
	require.NoError(t, f.store.UpdateCaption(ctx, "note_2.jpg", "middle"))
	require.NoError(t, f.store.AttachLibraryRef(ctx, "note_3.jpg", "asset://3"))
	require.NoError(t, f.store.Remove(ctx, "note_1.jpg"))
	want := f.store.Items()

	// Fresh process over the same backend.
	f.wire(t)
	require.NoError(t, f.store.Load(ctx))

	if diff := cmp.Diff(want, f.store.Items()); diff != "" {
		t.Errorf("reloaded snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestStore_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("Missing Key Is Empty", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.store.Load(ctx))
		assert.Equal(t, 0, f.store.Len())
	})

	t.Run("Corrupt Snapshot Is Empty", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.backend.Set(ctx, core.DefaultSnapshotKey, []byte("{not json")))
		require.NoError(t, f.store.Load(ctx))
		assert.Equal(t, 0, f.store.Len())
	})

	t.Run("Backend Error Is Returned", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.store.Append(ctx, seedNote(f, 1)))
		f.backend.FailGet = true

		require.Error(t, f.store.Load(ctx))
		assert.Equal(t, 1, f.store.Len(), "failed load must not clear the store")
	})
}

func TestStore_ItemsIsACopy(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.Append(ctx, seedNote(f, 1)))

	items := f.store.Items()
	items[0].Caption = "mutated"

	got, _ := f.store.Get("note_1.jpg")
	assert.Empty(t, got.Caption)
}

func TestStore_Watch(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := f.store.Watch(ctx)

	require.NoError(t, f.store.Append(ctx, seedNote(f, 1)))
	require.NoError(t, f.store.UpdateCaption(ctx, "note_1.jpg", "x"))
	require.NoError(t, f.store.Remove(ctx, "note_1.jpg"))

	f.backend.FailSet = true
	_ = f.store.Append(ctx, seedNote(f, 2))

	var got []core.EventType
	timeout := time.After(time.Second)
	for len(got) < 3 {
		select {
		case e := <-events:
			assert.Equal(t, "note_1.jpg", e.ID)
			got = append(got, e.Type)
		case <-timeout:
			t.Fatalf("timeout, received %v", got)
		}
	}
	assert.Equal(t, []core.EventType{core.EventCreate, core.EventModify, core.EventDelete}, got)

	select {
	case e := <-events:
		t.Errorf("unexpected event for failed mutation: %v", e)
	default:
	}

	cancel()
	require.Eventually(t, func() bool {
		_, open := <-events
		return !open
	}, time.Second, 10*time.Millisecond)
}
