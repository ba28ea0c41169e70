package core

import (
	"context"
	"encoding/json"
	"fmt"
)

// DefaultSnapshotKey is the backend key holding the note list.
const DefaultSnapshotKey = "@camera-notes/notes"

// Snapshots reads and writes the whole note list as a single JSON value.
// There are no partial updates: every Save replaces the previous snapshot.
type Snapshots struct {
	backend Backend
	key     string
}

// NewSnapshots creates a Snapshots over backend. An empty key selects DefaultSnapshotKey.
func NewSnapshots(backend Backend, key string) *Snapshots {
	if key == "" {
		key = DefaultSnapshotKey
	}
	return &Snapshots{backend: backend, key: key}
}

// Key returns the backend key used for the snapshot.
func (s *Snapshots) Key() string {
	return s.key
}

// Load returns the stored note list, or an empty list if nothing was ever saved.
// Corrupt data yields ErrDeserialization.
func (s *Snapshots) Load(ctx context.Context) ([]Note, error) {
	data, ok, err := s.backend.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %q: %w", s.key, err)
	}
	if !ok || len(data) == 0 {
		return []Note{}, nil
	}

	var notes []Note
	if err := json.Unmarshal(data, &notes); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeserialization, err)
	}
	if notes == nil {
		notes = []Note{}
	}
	return notes, nil
}

// Save replaces the stored snapshot with items.
func (s *Snapshots) Save(ctx context.Context, items []Note) error {
	if items == nil {
		items = []Note{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("%w: encode snapshot: %v", ErrPersistenceFailed, err)
	}
	if err := s.backend.Set(ctx, s.key, data); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistenceFailed, err)
	}
	return nil
}
