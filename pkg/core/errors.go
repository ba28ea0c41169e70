package core

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	// ErrPermissionDenied is matched by every *PermissionError.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrCaptureIO reports a capture that could not be taken or copied into durable storage.
	ErrCaptureIO = errors.New("capture failed")
	// ErrPersistenceFailed reports a snapshot that could not be written.
	// In-memory state has been rolled back when it is returned from a Store mutation.
	ErrPersistenceFailed = errors.New("persistence failed")
	// ErrDeserialization reports a stored snapshot that could not be decoded.
	ErrDeserialization = errors.New("snapshot is corrupt")
	// ErrSharingUnavailable reports that the sharing service is absent.
	ErrSharingUnavailable = errors.New("sharing is not available on this device")
	// ErrNotFound reports an id that does not reference a stored note.
	ErrNotFound = errors.New("note not found")
	// ErrInvalidNote reports a note that cannot be stored, e.g. one without an id.
	ErrInvalidNote = errors.New("invalid note")
	// ErrDuplicateID reports an append whose id is already stored.
	ErrDuplicateID = errors.New("note id already exists")
	// ErrInvalidState reports a draft operation issued in the wrong controller state.
	ErrInvalidState = errors.New("invalid draft state")
	// ErrNoSession is returned by cameras that have no active capture session.
	ErrNoSession = errors.New("no active capture session")
)

// PermissionKind names a device permission.
type PermissionKind string

const (
	PermissionCamera PermissionKind = "camera"
	PermissionMedia  PermissionKind = "media"
)

// PermissionError is returned when a permission was refused after being requested.
type PermissionError struct {
	Kind PermissionKind
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("%s %s", e.Kind, ErrPermissionDenied)
}

// Is makes errors.Is(err, ErrPermissionDenied) hold for any kind.
func (e *PermissionError) Is(target error) bool {
	return target == ErrPermissionDenied
}

// IsPermissionDenied reports whether err was caused by a refused permission of the given kind.
func IsPermissionDenied(err error, kind PermissionKind) bool {
	var pe *PermissionError
	return errors.As(err, &pe) && pe.Kind == kind
}
