package platform

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/aretw0/introspection"
	"github.com/aretw0/lifecycle"

	"github.com/aretw0/camnotes/pkg/adapters/device"
	"github.com/aretw0/camnotes/pkg/adapters/fs"
	lifecycleadapter "github.com/aretw0/camnotes/pkg/adapters/lifecycle"
	"github.com/aretw0/camnotes/pkg/adapters/sqlite"
	"github.com/aretw0/camnotes/pkg/core"
)

// Layout of a data directory.
const (
	NotesDir  = "notes"
	StateDir  = "state"
	SQLiteDB  = "camnotes.db"
	AdapterFS = "fs"
	AdapterDB = "sqlite"
)

// App is the assembled note system: the store, the draft controller and the
// media bridge, sharing one backend and one file area.
type App struct {
	DataDir string
	Store   *core.Store
	Drafts  *core.Drafts
	Bridge  *core.Bridge
	Files   *core.Files

	backend core.Backend
	perms   core.Permissions
	logger  *slog.Logger
	closers []io.Closer
}

// New assembles an App rooted at dataDir. Nothing is read until Bootstrap.
//
//	app, err := platform.New("./data", platform.WithAdapter("sqlite"))
func New(dataDir string, opts ...Option) (*App, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	logger := o.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	useTemp := o.forceTemp || (IsDevRun() && o.devSafety)
	resolved := ResolveDataDir(dataDir, useTemp)
	if useTemp && resolved != filepath.Clean(dataDir) {
		logger.Warn("running in SAFE MODE (dev sandbox)", "original_path", dataDir, "resolved_path", resolved)
	}

	app := &App{DataDir: resolved, logger: logger}

	backend, err := app.openBackend(o)
	if err != nil {
		return nil, err
	}
	app.backend = backend

	fileStore := o.files
	if fileStore == nil {
		fileStore = fs.NewFileStore()
	}

	lib := o.library
	if lib == nil && o.libraryDir != "" {
		lib = device.NewLibrary(o.libraryDir, fileStore)
	}

	camera := o.camera
	if camera == nil {
		camera = &device.FileCamera{}
	}

	perms := o.permissions
	if perms == nil {
		perms = device.NewGrants(nil, nil)
	}
	app.perms = perms

	sharer := o.sharer
	if sharer == nil {
		sharer = device.NewClipboardSharer()
	}

	app.Files = core.NewFiles(fileStore, filepath.Join(resolved, NotesDir), logger)
	app.Store = core.NewStore(
		core.NewSnapshots(backend, o.snapshotKey),
		app.Files,
		logger,
		core.WithEventBuffer(o.eventBuffer),
	)
	app.Drafts = core.NewDrafts(core.DraftsConfig{
		Store:       app.Store,
		Files:       app.Files,
		Camera:      camera,
		Permissions: perms,
		Library:     lib,
		Logger:      logger,
	})
	app.Bridge = core.NewBridge(app.Store, perms, lib, sharer, logger)

	return app, nil
}

func (a *App) openBackend(o *options) (core.Backend, error) {
	if o.backend != nil {
		return o.backend, nil
	}

	switch o.adapter {
	case AdapterFS, "":
		return fs.NewKV(filepath.Join(a.DataDir, StateDir), a.logger), nil
	case AdapterDB:
		kv, err := sqlite.Open(filepath.Join(a.DataDir, SQLiteDB))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", core.ErrPersistenceFailed, err)
		}
		a.closers = append(a.closers, kv)
		return kv, nil
	default:
		return nil, fmt.Errorf("unknown adapter: %s", o.adapter)
	}
}

// Bootstrap asks for the camera and media permissions and loads the stored
// notes. The three steps run independently: permission failures are only
// logged, and the returned error is the load error, if any.
func (a *App) Bootstrap(ctx context.Context) error {
	for _, kind := range []core.PermissionKind{core.PermissionCamera, core.PermissionMedia} {
		granted, err := a.perms.Request(ctx, kind)
		switch {
		case err != nil:
			a.logger.Warn("permission request failed", "kind", kind, "error", err)
		case !granted:
			a.logger.Info("permission not granted", "kind", kind)
		}
	}

	if err := a.Store.Load(ctx); err != nil {
		return fmt.Errorf("load notes: %w", err)
	}
	return nil
}

// Events streams store mutations as a lifecycle.Source until ctx is done.
func (a *App) Events(ctx context.Context) lifecycle.Source {
	return lifecycleadapter.NewSource(a.Store.Watch(ctx))
}

// Components lists the introspectable parts of the App.
func (a *App) Components() []introspection.Component {
	comps := []introspection.Component{a.Store, a.Drafts}
	if c, ok := a.backend.(introspection.Component); ok {
		comps = append(comps, c)
	}
	return comps
}

// Close releases the backend.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	a.closers = nil
	return errors.Join(errs...)
}
