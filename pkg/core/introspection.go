package core

import (
	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	Notes           int    `json:"notes" yaml:"notes"`
	SnapshotKey     string `json:"snapshot_key" yaml:"snapshot_key"`
	Subscribers     int    `json:"subscribers" yaml:"subscribers"`
	DroppedEvents   int    `json:"dropped_events" yaml:"dropped_events"`
	EventBufferSize int    `json:"event_buffer_size" yaml:"event_buffer_size"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	s.mu.RLock()
	n := len(s.items)
	s.mu.RUnlock()

	s.subMu.Lock()
	defer s.subMu.Unlock()

	return StoreState{
		Notes:           n,
		SnapshotKey:     s.snapshots.Key(),
		Subscribers:     len(s.subs),
		DroppedEvents:   s.dropped,
		EventBufferSize: s.eventBuffer,
	}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "store"
}

// DraftsState exposes the controller state for observability.
type DraftsState struct {
	State  DraftState `json:"state" yaml:"state"`
	Mode   DraftMode  `json:"mode,omitempty" yaml:"mode,omitempty"`
	NoteID string     `json:"note_id,omitempty" yaml:"note_id,omitempty"`
}

// State implements introspection.Introspectable.
func (d *Drafts) State() any {
	d.mu.RLock()
	defer d.mu.RUnlock()

	st := DraftsState{State: d.state}
	if d.draft != nil {
		st.Mode = d.draft.Mode
		st.NoteID = d.draft.Base.ID
	}
	return st
}

// ComponentType implements introspection.Component.
func (d *Drafts) ComponentType() string {
	return "drafts"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)
var _ introspection.Introspectable = (*Drafts)(nil)
var _ introspection.Component = (*Drafts)(nil)
