package core

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const (
	// FilePrefix is the name prefix of every materialized photo.
	FilePrefix = "note_"
	// DefaultExt is used when the transient capture has no extension.
	DefaultExt = ".jpg"
)

// Files moves captures into durable storage and removes them when they are abandoned.
type Files struct {
	store  FileStore
	dir    string
	logger *slog.Logger
	now    func() time.Time

	mu   sync.Mutex
	last int64
}

// NewFiles creates a Files that materializes captures into dir.
func NewFiles(store FileStore, dir string, logger *slog.Logger) *Files {
	return &Files{
		store:  store,
		dir:    dir,
		logger: orDiscard(logger),
		now:    time.Now,
	}
}

// Dir returns the durable directory.
func (f *Files) Dir() string {
	return f.dir
}

// Materialize copies the capture at transientURI into the durable directory
// under a new time-derived name and returns the durable location.
func (f *Files) Materialize(ctx context.Context, transientURI string) (string, error) {
	if transientURI == "" {
		return "", fmt.Errorf("%w: empty capture location", ErrCaptureIO)
	}

	ext := strings.ToLower(filepath.Ext(transientURI))
	if ext == "" {
		ext = DefaultExt
	}
	dest := filepath.Join(f.dir, fmt.Sprintf("%s%d%s", FilePrefix, f.nextStamp(), ext))

	if err := f.store.Copy(ctx, transientURI, dest); err != nil {
		return "", fmt.Errorf("%w: copy %s: %v", ErrCaptureIO, transientURI, err)
	}
	f.logger.DebugContext(ctx, "capture materialized", "from", transientURI, "to", dest)
	return dest, nil
}

// Discard deletes fileURI. It never fails: cleanup is advisory.
func (f *Files) Discard(ctx context.Context, fileURI string) {
	if fileURI == "" {
		return
	}
	Advisory(ctx, f.logger, "discard "+fileURI, func(ctx context.Context) error {
		return f.store.Delete(ctx, fileURI)
	})
}

// nextStamp returns the current unix millisecond, bumped past the last one handed out
// so names stay unique within the process even for captures in the same millisecond.
func (f *Files) nextStamp() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	stamp := f.now().UnixMilli()
	if stamp <= f.last {
		stamp = f.last + 1
	}
	f.last = stamp
	return stamp
}
