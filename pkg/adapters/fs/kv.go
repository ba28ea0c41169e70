package fs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"github.com/aretw0/camnotes/pkg/core"
)

// KV implements core.Backend with one file per key.
// Every Set replaces the file atomically, so readers never observe a partial value.
type KV struct {
	Dir    string
	logger *slog.Logger

	mu     sync.RWMutex
	writes int
}

// NewKV creates a KV rooted at dir.
func NewKV(dir string, logger *slog.Logger) *KV {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &KV{Dir: dir, logger: logger}
}

// Path returns the file that holds key.
func (k *KV) Path(key string) string {
	return filepath.Join(k.Dir, url.PathEscape(key)+".json")
}

// Get implements core.Backend.
func (k *KV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	k.mu.RLock()
	defer k.mu.RUnlock()

	data, err := os.ReadFile(k.Path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read key %q: %w", key, err)
	}
	return data, true, nil
}

// Set implements core.Backend.
func (k *KV) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	k.mu.Lock()
	defer k.mu.Unlock()

	path := k.Path(key)
	if err := writeFileAtomic(path, bytes.NewReader(value), 0644); err != nil {
		return err
	}
	k.writes++
	k.logger.DebugContext(ctx, "key written", "key", key, "path", path, "bytes", len(value))
	return nil
}

var _ core.Backend = (*KV)(nil)
