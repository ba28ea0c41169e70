package fs

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/aretw0/camnotes/pkg/core"
)

// FileStore implements core.FileStore on the local filesystem.
type FileStore struct{}

// NewFileStore returns a FileStore.
func NewFileStore() *FileStore {
	return &FileStore{}
}

// Copy copies from to to. The destination is written atomically and its
// directory is created if needed.
func (s *FileStore) Copy(ctx context.Context, from, to string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	src, err := os.Open(from)
	if err != nil {
		return fmt.Errorf("failed to open source: %w", err)
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat source: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("source %s is a directory", from)
	}

	return writeFileAtomic(to, src, 0644)
}

// Delete removes uri. A missing file is success.
func (s *FileStore) Delete(ctx context.Context, uri string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Remove(uri); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete %s: %w", uri, err)
	}
	return nil
}

var _ core.FileStore = (*FileStore)(nil)
