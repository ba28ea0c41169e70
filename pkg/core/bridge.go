package core

import (
	"context"
	"fmt"
	"log/slog"
)

// Bridge exports stored notes to the device media library and hands them to
// the sharing service. It works on persisted notes, independently of drafts.
type Bridge struct {
	store  *Store
	perms  Permissions
	lib    MediaLibrary
	sharer Sharer
	logger *slog.Logger
}

// NewBridge creates a Bridge.
func NewBridge(store *Store, perms Permissions, lib MediaLibrary, sharer Sharer, logger *slog.Logger) *Bridge {
	return &Bridge{
		store:  store,
		perms:  perms,
		lib:    lib,
		sharer: sharer,
		logger: orDiscard(logger),
	}
}

// ExportToLibrary adds note's photo to the media library, requesting the
// permission once if needed, and returns the new library reference.
// Repeated calls create new assets; the caller decides what to keep.
func (b *Bridge) ExportToLibrary(ctx context.Context, note Note) (string, error) {
	if b.lib == nil {
		return "", fmt.Errorf("no media library configured")
	}
	if err := ensurePermission(ctx, b.perms, PermissionMedia); err != nil {
		return "", err
	}

	ref, err := b.lib.CreateAsset(ctx, note.FileURI)
	if err != nil {
		return "", fmt.Errorf("export %s to library: %w", note.ID, err)
	}
	b.logger.InfoContext(ctx, "note exported", "id", note.ID, "ref", ref)
	return ref, nil
}

// SaveToLibrary exports note id and records the returned reference on it.
func (b *Bridge) SaveToLibrary(ctx context.Context, id string) (Note, error) {
	note, ok := b.store.Get(id)
	if !ok {
		return Note{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	ref, err := b.ExportToLibrary(ctx, note)
	if err != nil {
		return Note{}, err
	}
	if err := b.store.AttachLibraryRef(ctx, id, ref); err != nil {
		return Note{}, err
	}

	note.LibraryRef = ref
	return note, nil
}

// Share hands note's photo to the sharing service. It has no persisted effect.
func (b *Bridge) Share(ctx context.Context, note Note) error {
	if b.sharer == nil {
		return ErrSharingUnavailable
	}
	ok, err := b.sharer.Available(ctx)
	if err != nil {
		return fmt.Errorf("check sharing: %w", err)
	}
	if !ok {
		return ErrSharingUnavailable
	}

	if err := b.sharer.Share(ctx, note.FileURI); err != nil {
		return fmt.Errorf("share %s: %w", note.ID, err)
	}
	return nil
}
