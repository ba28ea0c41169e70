package core_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/aretw0/camnotes/pkg/core"
)

var errInjected = errors.New("injected failure")

// MemoryBackend implements core.Backend in memory. Set can be made to fail.
type MemoryBackend struct {
	mu      sync.Mutex
	data    map[string][]byte
	FailSet bool
	FailGet bool
	Sets    int
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: make(map[string][]byte)}
}

func (m *MemoryBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailGet {
		return nil, false, errInjected
	}
	v, ok := m.data[key]
	return append([]byte(nil), v...), ok, nil
}

func (m *MemoryBackend) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSet {
		return errInjected
	}
	m.Sets++
	m.data[key] = append([]byte(nil), value...)
	return nil
}

// MemoryFiles implements core.FileStore over a map of path -> content.
type MemoryFiles struct {
	mu         sync.Mutex
	files      map[string][]byte
	FailCopy   bool
	FailDelete bool
	Deletes    []string
}

func NewMemoryFiles() *MemoryFiles {
	return &MemoryFiles{files: make(map[string][]byte)}
}

func (m *MemoryFiles) Put(path string, content []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = content
}

func (m *MemoryFiles) Exists(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.files[path]
	return ok
}

func (m *MemoryFiles) Copy(ctx context.Context, from, to string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailCopy {
		return errInjected
	}
	src, ok := m.files[from]
	if !ok {
		return fmt.Errorf("open %s: file does not exist", from)
	}
	m.files[to] = append([]byte(nil), src...)
	return nil
}

func (m *MemoryFiles) Delete(ctx context.Context, uri string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Deletes = append(m.Deletes, uri)
	if m.FailDelete {
		return errInjected
	}
	delete(m.files, uri)
	return nil
}

// StubCamera writes a new transient file into MemoryFiles on every capture.
type StubCamera struct {
	Files *MemoryFiles
	Err   error
	n     int
}

func (c *StubCamera) Capture(ctx context.Context) (string, error) {
	if c.Err != nil {
		return "", c.Err
	}
	c.n++
	uri := fmt.Sprintf("/cache/camera/capture-%d.jpg", c.n)
	c.Files.Put(uri, []byte(uri))
	return uri, nil
}

// BlockingCamera signals Started once a capture begins and holds it until
// Release is closed, then defers to Camera.
type BlockingCamera struct {
	Camera  core.Camera
	Started chan struct{}
	Release chan struct{}
}

func (c *BlockingCamera) Capture(ctx context.Context) (string, error) {
	close(c.Started)
	<-c.Release
	return c.Camera.Capture(ctx)
}

// StubPermissions grants what is listed in Granted; Request answers with Answer.
type StubPermissions struct {
	Granted  map[core.PermissionKind]bool
	Answer   map[core.PermissionKind]bool
	Requests map[core.PermissionKind]int
}

func NewStubPermissions() *StubPermissions {
	return &StubPermissions{
		Granted:  make(map[core.PermissionKind]bool),
		Answer:   make(map[core.PermissionKind]bool),
		Requests: make(map[core.PermissionKind]int),
	}
}

func (p *StubPermissions) Status(ctx context.Context, kind core.PermissionKind) (bool, error) {
	return p.Granted[kind], nil
}

func (p *StubPermissions) Request(ctx context.Context, kind core.PermissionKind) (bool, error) {
	p.Requests[kind]++
	if p.Answer[kind] {
		p.Granted[kind] = true
	}
	return p.Answer[kind], nil
}

// StubLibrary returns sequential asset references.
type StubLibrary struct {
	Fail   bool
	Assets []string
}

func (l *StubLibrary) CreateAsset(ctx context.Context, fileURI string) (string, error) {
	if l.Fail {
		return "", errInjected
	}
	l.Assets = append(l.Assets, fileURI)
	return fmt.Sprintf("asset://%d", len(l.Assets)), nil
}

// StubSharer records shared files.
type StubSharer struct {
	Unavailable bool
	Shared      []string
}

func (s *StubSharer) Available(ctx context.Context) (bool, error) {
	return !s.Unavailable, nil
}

func (s *StubSharer) Share(ctx context.Context, fileURI string) error {
	s.Shared = append(s.Shared, fileURI)
	return nil
}

// fixture wires every component over the fakes.
type fixture struct {
	backend *MemoryBackend
	files   *MemoryFiles
	camera  *StubCamera
	perms   *StubPermissions
	library *StubLibrary
	sharer  *StubSharer

	snapshots *core.Snapshots
	lifecycle *core.Files
	store     *core.Store
	drafts    *core.Drafts
	bridge    *core.Bridge
}

const durableDir = "/data/notes"

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		backend: NewMemoryBackend(),
		files:   NewMemoryFiles(),
		perms:   NewStubPermissions(),
		library: &StubLibrary{},
		sharer:  &StubSharer{},
	}
	f.camera = &StubCamera{Files: f.files}
	f.perms.Granted[core.PermissionCamera] = true
	f.wire(t)
	return f
}

// wire (re)builds the components over the same fakes, like a process restart.
func (f *fixture) wire(t *testing.T) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f.snapshots = core.NewSnapshots(f.backend, "")
	f.lifecycle = core.NewFiles(f.files, durableDir, logger)
	f.store = core.NewStore(f.snapshots, f.lifecycle, logger)
	f.drafts = core.NewDrafts(core.DraftsConfig{
		Store:       f.store,
		Files:       f.lifecycle,
		Camera:      f.camera,
		Permissions: f.perms,
		Library:     f.library,
		Logger:      logger,
	})
	f.bridge = core.NewBridge(f.store, f.perms, f.library, f.sharer, logger)
}
