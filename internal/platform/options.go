package platform

import (
	"log/slog"

	"github.com/aretw0/camnotes/pkg/core"
)

// options holds the internal configuration for a camnotes App.
type options struct {
	logger      *slog.Logger
	backend     core.Backend
	adapter     string
	files       core.FileStore
	camera      core.Camera
	library     core.MediaLibrary
	libraryDir  string
	sharer      core.Sharer
	permissions core.Permissions
	snapshotKey string
	eventBuffer int
	forceTemp   bool
	devSafety   bool
}

// Option defines a functional option for configuring an App.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		adapter:     "fs",
		snapshotKey: core.DefaultSnapshotKey,
		devSafety:   true,
	}
}

// WithLogger sets the logger shared by every component.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithBackend injects a custom key/value backend (e.g. an in-memory fake).
// If provided, the adapter named by WithAdapter is skipped.
func WithBackend(backend core.Backend) Option {
	return func(o *options) {
		o.backend = backend
	}
}

// WithAdapter selects the snapshot backend by name: "fs" (default) or "sqlite".
func WithAdapter(name string) Option {
	return func(o *options) {
		o.adapter = name
	}
}

// WithFileStore replaces the filesystem used for note photos.
func WithFileStore(files core.FileStore) Option {
	return func(o *options) {
		o.files = files
	}
}

// WithCamera sets the capture source. Defaults to a FileCamera with no
// session, so BeginCapture fails until a real source is configured.
func WithCamera(camera core.Camera) Option {
	return func(o *options) {
		o.camera = camera
	}
}

// WithMediaLibrary injects a media library. It takes precedence over WithLibraryDir.
func WithMediaLibrary(lib core.MediaLibrary) Option {
	return func(o *options) {
		o.library = lib
	}
}

// WithLibraryDir enables the directory-backed media library rooted at dir.
func WithLibraryDir(dir string) Option {
	return func(o *options) {
		o.libraryDir = dir
	}
}

// WithSharer sets the sharing service. Defaults to the system clipboard.
func WithSharer(sharer core.Sharer) Option {
	return func(o *options) {
		o.sharer = sharer
	}
}

// WithPermissions sets the permission service.
// Defaults to a policy that prompts nobody and therefore refuses every request.
func WithPermissions(perms core.Permissions) Option {
	return func(o *options) {
		o.permissions = perms
	}
}

// WithSnapshotKey overrides the backend key holding the note list.
func WithSnapshotKey(key string) Option {
	return func(o *options) {
		o.snapshotKey = key
	}
}

// WithEventBuffer sets the per-subscriber buffer of Store.Watch.
// Zero means default (100).
func WithEventBuffer(size int) Option {
	return func(o *options) {
		o.eventBuffer = size
	}
}

// WithForceTemp forces the data directory into the temporary sandbox.
func WithForceTemp(force bool) Option {
	return func(o *options) {
		o.forceTemp = force
	}
}

// WithDevSafety controls the sandbox applied when running via `go run`.
// By default (true) the data directory is re-rooted under the system temp dir.
//
// CAUTION: Only disable this if you are sure your code is safe.
func WithDevSafety(enabled bool) Option {
	return func(o *options) {
		o.devSafety = enabled
	}
}
