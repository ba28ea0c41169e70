package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// DefaultEventBuffer is the per-subscriber buffer of Store.Watch.
const DefaultEventBuffer = 100

// Store is the single owner of the note list.
//
// Every mutation builds a complete new list, saves it through Snapshots and only
// then swaps it in, so a failed save leaves the in-memory list untouched.
// Mutations are serialized; readers always receive copies.
type Store struct {
	snapshots   *Snapshots
	files       *Files
	logger      *slog.Logger
	eventBuffer int

	mu    sync.RWMutex
	items []Note

	subMu   sync.Mutex
	subs    map[int]chan Event
	nextSub int
	dropped int
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithEventBuffer sets the buffer size of each Watch channel.
func WithEventBuffer(size int) StoreOption {
	return func(s *Store) {
		if size > 0 {
			s.eventBuffer = size
		}
	}
}

// NewStore creates an empty Store. Call Load to populate it from the backend.
func NewStore(snapshots *Snapshots, files *Files, logger *slog.Logger, opts ...StoreOption) *Store {
	s := &Store{
		snapshots:   snapshots,
		files:       files,
		logger:      orDiscard(logger),
		eventBuffer: DefaultEventBuffer,
		items:       []Note{},
		subs:        make(map[int]chan Event),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the in-memory list with the persisted snapshot.
// A corrupt snapshot is logged and treated as an empty store.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes, err := s.snapshots.Load(ctx)
	if errors.Is(err, ErrDeserialization) {
		s.logger.WarnContext(ctx, "stored notes are unreadable, starting empty", "key", s.snapshots.Key(), "error", err)
		s.items = []Note{}
		return nil
	}
	if err != nil {
		return err
	}
	s.items = notes
	s.logger.DebugContext(ctx, "notes loaded", "count", len(notes))
	return nil
}

// Items returns a copy of the notes, newest first.
func (s *Store) Items() []Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Note, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of notes.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Get returns the note with the given id.
func (s *Store) Get(id string) (Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := indexOf(s.items, id); i >= 0 {
		return s.items[i], true
	}
	return Note{}, false
}

// Append prepends note and persists the new list.
func (s *Store) Append(ctx context.Context, note Note) error {
	if note.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidNote)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if indexOf(s.items, note.ID) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateID, note.ID)
	}

	next := make([]Note, 0, len(s.items)+1)
	next = append(next, note)
	next = append(next, s.items...)

	return s.commit(ctx, next, EventCreate, note.ID)
}

// UpdateCaption replaces the caption of note id and persists, even if the caption is unchanged.
func (s *Store) UpdateCaption(ctx context.Context, id, caption string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.items, id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	next := append([]Note(nil), s.items...)
	next[i].Caption = caption

	return s.commit(ctx, next, EventModify, id)
}

// AttachLibraryRef records ref as the media library reference of note id,
// overwriting any earlier one.
func (s *Store) AttachLibraryRef(ctx context.Context, id, ref string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.items, id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	next := append([]Note(nil), s.items...)
	next[i].LibraryRef = ref

	return s.commit(ctx, next, EventModify, id)
}

// Remove deletes note id, persists the reduced list and then discards the
// note's file. The removal stands even if the file cannot be deleted.
func (s *Store) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.items, id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	removed := s.items[i]

	next := make([]Note, 0, len(s.items)-1)
	next = append(next, s.items[:i]...)
	next = append(next, s.items[i+1:]...)

	if err := s.commit(ctx, next, EventDelete, id); err != nil {
		return err
	}

	if s.files != nil {
		s.files.Discard(ctx, removed.FileURI)
	}
	return nil
}

// commit saves next and swaps it in. Must be called with s.mu held.
func (s *Store) commit(ctx context.Context, next []Note, evType EventType, id string) error {
	if err := s.snapshots.Save(ctx, next); err != nil {
		s.logger.ErrorContext(ctx, "failed to persist notes", "op", evType, "id", id, "error", err)
		return err
	}
	s.items = next
	s.publish(Event{Type: evType, ID: id, Timestamp: time.Now().Unix()})
	return nil
}

// Watch returns a channel receiving an Event for every committed mutation.
// The channel is closed when ctx is done. Events are dropped for a subscriber
// whose buffer is full.
func (s *Store) Watch(ctx context.Context) <-chan Event {
	ch := make(chan Event, s.eventBuffer)

	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	s.subMu.Unlock()

	go func() {
		<-ctx.Done()
		s.subMu.Lock()
		delete(s.subs, id)
		close(ch)
		s.subMu.Unlock()
	}()

	return ch
}

func (s *Store) publish(e Event) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	for _, ch := range s.subs {
		select {
		case ch <- e:
		default:
			s.dropped++
			s.logger.Debug("event dropped for slow subscriber", "event", e.String())
		}
	}
}

func indexOf(items []Note, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}
