package core

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
)

// DraftState is the state of the draft controller.
type DraftState string

const (
	StateIdle      DraftState = "idle"
	StateCapturing DraftState = "capturing"
	StateDrafting  DraftState = "drafting"
)

// DraftsConfig wires the collaborators of a Drafts controller.
// Library may be nil, which disables the export taken right after a capture.
type DraftsConfig struct {
	Store       *Store
	Files       *Files
	Camera      Camera
	Permissions Permissions
	Library     MediaLibrary
	Logger      *slog.Logger
}

// Drafts drives a single editing session:
//
//	idle -> capturing -> drafting(create) -> idle
//	idle -> drafting(edit) -> idle
//
// Only one draft may be open at a time.
type Drafts struct {
	store  *Store
	files  *Files
	camera Camera
	perms  Permissions
	lib    MediaLibrary
	logger *slog.Logger

	// op serializes operations; mu guards the observable state so readers
	// do not wait for a capture in flight.
	op    sync.Mutex
	mu    sync.RWMutex
	state DraftState
	draft *Draft
}

// NewDrafts creates an idle controller.
func NewDrafts(cfg DraftsConfig) *Drafts {
	return &Drafts{
		store:  cfg.Store,
		files:  cfg.Files,
		camera: cfg.Camera,
		perms:  cfg.Permissions,
		lib:    cfg.Library,
		logger: orDiscard(cfg.Logger),
		state:  StateIdle,
	}
}

// Current returns a copy of the open draft, if any.
func (d *Drafts) Current() (Draft, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.draft == nil {
		return Draft{}, false
	}
	return *d.draft, true
}

// Status returns the controller state.
func (d *Drafts) Status() DraftState {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.state
}

// BeginCapture takes a photo, moves it into durable storage and opens a create draft.
func (d *Drafts) BeginCapture(ctx context.Context) (Draft, error) {
	if err := d.claim(StateCapturing, nil); err != nil {
		return Draft{}, err
	}
	d.op.Lock()
	defer d.op.Unlock()

	if err := ensurePermission(ctx, d.perms, PermissionCamera); err != nil {
		d.setState(StateIdle, nil)
		d.logger.InfoContext(ctx, "capture not started", "error", err)
		return Draft{}, err
	}

	transient, err := d.camera.Capture(ctx)
	if err != nil {
		d.setState(StateIdle, nil)
		return Draft{}, fmt.Errorf("%w: %v", ErrCaptureIO, err)
	}

	fileURI, err := d.files.Materialize(ctx, transient)
	if err != nil {
		d.setState(StateIdle, nil)
		return Draft{}, err
	}

	note := Note{
		ID:      filepath.Base(fileURI),
		FileURI: fileURI,
	}
	note.LibraryRef = d.exportIfPermitted(ctx, fileURI)

	draft := Draft{Mode: ModeCreate, Base: note}
	d.setState(StateDrafting, &draft)
	d.logger.DebugContext(ctx, "draft opened", "mode", ModeCreate, "id", note.ID)
	return draft, nil
}

// BeginEdit opens an edit draft for note, seeded with its current caption.
func (d *Drafts) BeginEdit(ctx context.Context, note Note) (Draft, error) {
	draft := Draft{Mode: ModeEdit, Base: note, Caption: note.Caption}
	if err := d.claim(StateDrafting, &draft); err != nil {
		return Draft{}, err
	}
	d.logger.DebugContext(ctx, "draft opened", "mode", ModeEdit, "id", note.ID)
	return draft, nil
}

// UpdateCaption replaces the caption buffer of the open draft.
func (d *Drafts) UpdateCaption(text string) error {
	d.op.Lock()
	defer d.op.Unlock()

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.draft == nil {
		return fmt.Errorf("%w: no open draft", ErrInvalidState)
	}
	d.draft.Caption = text
	return nil
}

// Commit writes the open draft to the store and closes it.
// If the store refuses the change the draft stays open so the caller can retry.
func (d *Drafts) Commit(ctx context.Context) (Note, error) {
	d.op.Lock()
	defer d.op.Unlock()

	draft, ok := d.Current()
	if !ok {
		return Note{}, fmt.Errorf("%w: no open draft", ErrInvalidState)
	}

	note := draft.Base
	note.Caption = strings.TrimSpace(draft.Caption)

	var err error
	switch draft.Mode {
	case ModeCreate:
		err = d.store.Append(ctx, note)
	case ModeEdit:
		err = d.store.UpdateCaption(ctx, note.ID, note.Caption)
		if err == nil {
			if stored, ok := d.store.Get(note.ID); ok {
				note = stored
			}
		}
	default:
		err = fmt.Errorf("%w: unknown draft mode %q", ErrInvalidState, draft.Mode)
	}
	if err != nil {
		d.logger.WarnContext(ctx, "draft kept after failed commit", "mode", draft.Mode, "id", note.ID, "error", err)
		return Note{}, err
	}

	d.setState(StateIdle, nil)
	return note, nil
}

// Cancel closes the open draft without saving it. A create draft's file is
// discarded; an edit draft leaves the stored note and its file untouched.
func (d *Drafts) Cancel(ctx context.Context) {
	d.op.Lock()
	defer d.op.Unlock()

	draft, ok := d.Current()
	d.setState(StateIdle, nil)
	if !ok {
		return
	}

	if draft.Mode == ModeCreate {
		d.files.Discard(ctx, draft.Base.FileURI)
	}
	d.logger.DebugContext(ctx, "draft cancelled", "mode", draft.Mode, "id", draft.Base.ID)
}

// claim moves an idle controller to state in one step, so a second Begin
// fails at once instead of queueing behind a capture in flight.
func (d *Drafts) claim(state DraftState, draft *Draft) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state != StateIdle {
		return fmt.Errorf("%w: controller is %s", ErrInvalidState, d.state)
	}
	d.state = state
	d.draft = draft
	return nil
}

func (d *Drafts) setState(state DraftState, draft *Draft) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state = state
	d.draft = draft
}

// exportIfPermitted saves fileURI to the media library when permission was
// already granted. It never prompts and never fails the capture.
func (d *Drafts) exportIfPermitted(ctx context.Context, fileURI string) string {
	if d.lib == nil {
		return ""
	}

	var ref string
	Advisory(ctx, d.logger, "export after capture", func(ctx context.Context) error {
		granted, err := d.perms.Status(ctx, PermissionMedia)
		if err != nil || !granted {
			return err
		}
		ref, err = d.lib.CreateAsset(ctx, fileURI)
		return err
	})
	return ref
}
