package camnotes

import (
	"log/slog"

	"github.com/aretw0/camnotes/internal/platform"
	"github.com/aretw0/camnotes/pkg/core"
)

// --- Types ---

// App is the assembled note system.
type App = platform.App

// Note is a persisted camera note.
type Note = core.Note

// Draft is an open editing session.
type Draft = core.Draft

// --- Configuration ---

// Option defines a functional option for configuring an App.
type Option = platform.Option

// WithLogger sets the logger shared by every component.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithBackend injects a custom key/value backend.
func WithBackend(backend core.Backend) Option {
	return platform.WithBackend(backend)
}

// WithAdapter selects the snapshot backend by name ("fs" or "sqlite").
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithFileStore replaces the filesystem used for note photos.
func WithFileStore(files core.FileStore) Option {
	return platform.WithFileStore(files)
}

// WithCamera sets the capture source.
func WithCamera(camera core.Camera) Option {
	return platform.WithCamera(camera)
}

// WithMediaLibrary injects a media library.
func WithMediaLibrary(lib core.MediaLibrary) Option {
	return platform.WithMediaLibrary(lib)
}

// WithLibraryDir enables the directory-backed media library.
func WithLibraryDir(dir string) Option {
	return platform.WithLibraryDir(dir)
}

// WithSharer sets the sharing service.
func WithSharer(sharer core.Sharer) Option {
	return platform.WithSharer(sharer)
}

// WithPermissions sets the permission service.
func WithPermissions(perms core.Permissions) Option {
	return platform.WithPermissions(perms)
}

// WithSnapshotKey overrides the backend key holding the note list.
func WithSnapshotKey(key string) Option {
	return platform.WithSnapshotKey(key)
}

// WithEventBuffer sets the per-subscriber buffer of Store.Watch.
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// WithForceTemp forces the data directory into the temporary sandbox.
func WithForceTemp(force bool) Option {
	return platform.WithForceTemp(force)
}

// WithDevSafety controls the sandbox applied when running via `go run`.
func WithDevSafety(enabled bool) Option {
	return platform.WithDevSafety(enabled)
}

// --- Factory ---

// New assembles an App rooted at dataDir.
func New(dataDir string, opts ...Option) (*App, error) {
	return platform.New(dataDir, opts...)
}

// --- Safety & Utils ---

// ResolveDataDir determines the actual data directory based on safety rules.
func ResolveDataDir(dataDir string, forceTemp bool) string {
	return platform.ResolveDataDir(dataDir, forceTemp)
}

// IsDevRun checks if the current process is running via `go run` or `go test`.
func IsDevRun() bool {
	return platform.IsDevRun()
}

// FindDataRoot recursively looks upwards for a .camnotes directory.
func FindDataRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}
