package core

import "context"

// Backend is a key-value store holding opaque blobs.
// A Set must replace the whole value atomically.
type Backend interface {
	// Get returns the value stored under key. ok is false if the key is absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
}

// FileStore is the app-private durable file storage.
type FileStore interface {
	// Copy copies the file at from to the location to.
	Copy(ctx context.Context, from, to string) error

	// Delete removes uri. A missing file is not an error.
	Delete(ctx context.Context, uri string) error
}

// Camera produces a raw image at a transient location.
type Camera interface {
	Capture(ctx context.Context) (transientURI string, err error)
}

// MediaLibrary is the device-wide, permissioned photo collection.
type MediaLibrary interface {
	// CreateAsset adds a copy of fileURI to the library and returns an opaque reference to it.
	CreateAsset(ctx context.Context, fileURI string) (ref string, err error)
}

// Permissions queries and requests device permissions.
type Permissions interface {
	// Status reports whether kind is currently granted, without prompting.
	Status(ctx context.Context, kind PermissionKind) (bool, error)

	// Request asks the user for kind and reports the outcome.
	Request(ctx context.Context, kind PermissionKind) (bool, error)
}

// Sharer hands a file to an OS-level sharing mechanism.
type Sharer interface {
	Available(ctx context.Context) (bool, error)
	Share(ctx context.Context, fileURI string) error
}
