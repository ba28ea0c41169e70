package device

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/camnotes/pkg/core"
)

// RefScheme prefixes every reference returned by Library.
const RefScheme = "media://"

// Library is a core.MediaLibrary kept in a shared directory (for example
// ~/Pictures/camnotes). Every export creates a new asset.
type Library struct {
	Dir   string
	files core.FileStore
	now   func() time.Time

	mu   sync.Mutex
	last int64
}

// NewLibrary creates a Library in dir that copies assets through files.
func NewLibrary(dir string, files core.FileStore) *Library {
	return &Library{Dir: dir, files: files, now: time.Now}
}

// CreateAsset implements core.MediaLibrary.
func (l *Library) CreateAsset(ctx context.Context, fileURI string) (string, error) {
	base := strings.TrimSuffix(filepath.Base(fileURI), filepath.Ext(fileURI))
	name := fmt.Sprintf("IMG_%d_%s%s", l.stamp(), base, filepath.Ext(fileURI))

	if err := l.files.Copy(ctx, fileURI, filepath.Join(l.Dir, name)); err != nil {
		return "", fmt.Errorf("create asset: %w", err)
	}
	return RefScheme + name, nil
}

// Resolve returns the file behind a reference created by this library.
func (l *Library) Resolve(ref string) (string, bool) {
	name, ok := strings.CutPrefix(ref, RefScheme)
	if !ok || name == "" || strings.ContainsRune(name, filepath.Separator) {
		return "", false
	}
	return filepath.Join(l.Dir, name), true
}

func (l *Library) stamp() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	s := l.now().UnixNano()
	if s <= l.last {
		s = l.last + 1
	}
	l.last = s
	return s
}

var _ core.MediaLibrary = (*Library)(nil)
