package fs

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/lifecycle/pkg/core/worker"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/camnotes/pkg/core"
)

// DefaultInboxPattern matches the photo formats accepted from an inbox.
const DefaultInboxPattern = "**/*.{jpg,jpeg,png,heic,JPG,JPEG,PNG,HEIC}"

// InboxConfig configures an InboxCamera.
type InboxConfig struct {
	Dir          string
	Pattern      string        // doublestar pattern, relative to Dir
	Settle       time.Duration // quiet period before a new file counts as complete
	Buffer       int           // arrivals kept while nobody is capturing
	Logger       *slog.Logger
	ErrorHandler func(error)
}

// InboxCamera is a core.Camera fed by photos that appear in a directory,
// e.g. a tethered camera or a phone sync folder. Capture blocks until the
// next photo arrives. The camera only has a session while the worker runs.
type InboxCamera struct {
	*worker.BaseWorker
	config    InboxConfig
	watcher   *fsnotify.Watcher
	debouncer *debouncer
	cancel    context.CancelFunc
	arrivals  chan string
	done      chan struct{}

	mu     sync.RWMutex
	active bool
}

// NewInboxCamera creates a stopped InboxCamera.
func NewInboxCamera(config InboxConfig) *InboxCamera {
	if config.Pattern == "" {
		config.Pattern = DefaultInboxPattern
	}
	if config.Settle <= 0 {
		config.Settle = 50 * time.Millisecond
	}
	if config.Buffer <= 0 {
		config.Buffer = 16
	}
	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}
	return &InboxCamera{
		BaseWorker: worker.NewBaseWorker("inbox-camera"),
		config:     config,
		arrivals:   make(chan string, config.Buffer),
	}
}

// Capture implements core.Camera. It returns the path of the next photo to
// land in the inbox, which stays owned by the inbox.
func (c *InboxCamera) Capture(ctx context.Context) (string, error) {
	c.mu.RLock()
	active, done := c.active, c.done
	c.mu.RUnlock()
	if !active {
		return "", core.ErrNoSession
	}

	select {
	case path := <-c.arrivals:
		return path, nil
	case <-done:
		return "", core.ErrNoSession
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Start begins watching the inbox.
func (c *InboxCamera) Start(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	status := c.State().Status
	if status != worker.StatusCreated && status != worker.StatusPending {
		return fmt.Errorf("inbox camera already started (status: %s)", status)
	}

	if err := os.MkdirAll(c.config.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create inbox: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := addRecursive(watcher, c.config.Dir); err != nil {
		_ = watcher.Close()
		return err
	}

	c.watcher = watcher
	c.debouncer = newDebouncer(c.config.Settle)
	c.setActive(true, make(chan struct{}))

	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	c.SetStatus(worker.StatusRunning)
	return c.StartFunc(runCtx, c.run)
}

// Stop ends the session; blocked captures return core.ErrNoSession.
func (c *InboxCamera) Stop(ctx context.Context) error {
	if c.cancel != nil {
		c.StopRequested = true
		c.cancel()
	}

	return c.BaseWorker.Stop(ctx)
}

func (c *InboxCamera) State() worker.State {
	return c.ExportState(func(s *worker.State) {
		s.Metadata = map[string]string{
			worker.MetadataType: string(worker.TypeGoroutine),
			"inbox":             c.config.Dir,
			"pattern":           c.config.Pattern,
		}
	})
}

func (c *InboxCamera) setActive(active bool, done chan struct{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = active
	if done != nil {
		c.done = done
	}
}

func addRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}

// matches reports whether path is a photo under the inbox that fits the pattern.
func (c *InboxCamera) matches(path string) bool {
	rel, err := filepath.Rel(c.config.Dir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return false
	}
	if strings.HasPrefix(filepath.Base(rel), ".") {
		return false
	}
	ok, err := doublestar.Match(c.config.Pattern, filepath.ToSlash(rel))
	return err == nil && ok
}

// processEvent queues completed photos and follows new subdirectories.
func (c *InboxCamera) processEvent(ctx context.Context, event fsnotify.Event) bool {
	c.config.Logger.Debug("event received", "name", event.Name, "op", event.Op.String())

	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return false
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := addRecursive(c.watcher, event.Name); err != nil {
				c.handleWatcherError(err)
			}
			return false
		}
	}

	if !c.matches(event.Name) {
		return false
	}

	path := event.Name
	c.debouncer.add(path, func() {
		if _, err := os.Stat(path); err != nil {
			return
		}
		select {
		case c.arrivals <- path:
			c.config.Logger.Info("photo arrived", "path", path)
		case <-ctx.Done():
		default:
			c.config.Logger.Warn("inbox buffer full, photo ignored", "path", path)
		}
	})
	return true
}

func (c *InboxCamera) handleWatcherError(err error) {
	c.config.Logger.Error("fsnotify error", "error", err)
	if c.config.ErrorHandler != nil {
		c.config.ErrorHandler(err)
	}
}

// run is the main event loop for the inbox worker.
func (c *InboxCamera) run(ctx context.Context) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			panicErr := fmt.Errorf("inbox panic: %v", recovered)

			if c.config.Logger.Enabled(ctx, slog.LevelDebug) {
				c.config.Logger.Error("inbox panic", "error", panicErr, "stack", string(debug.Stack()))
			} else {
				c.config.Logger.Error("inbox panic", "error", panicErr)
			}
			err = panicErr
		}
	}()
	defer func() {
		c.mu.Lock()
		c.active = false
		close(c.done)
		c.mu.Unlock()
	}()
	defer c.watcher.Close()

	err = c.mainEventLoop(ctx)

	// Let in-flight settle timers finish before the session closes.
	c.debouncer.stopAndWait(5 * time.Second)

	return err
}

func (c *InboxCamera) mainEventLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-c.watcher.Events:
			if !ok {
				if c.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			c.processEvent(ctx, event)

		case wErr, ok := <-c.watcher.Errors:
			if !ok {
				if c.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			c.handleWatcherError(wErr)
		}
	}
}

var _ core.Camera = (*InboxCamera)(nil)
