package device

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aretw0/camnotes/pkg/core"
)

// FileCamera "captures" by copying an existing image into a transient
// location, the way a real camera leaves its output in a cache directory.
type FileCamera struct {
	Source  string // image to capture; empty means no active session
	TempDir string // transient directory, os.TempDir() when empty
}

// Capture implements core.Camera.
func (c *FileCamera) Capture(ctx context.Context) (string, error) {
	if c.Source == "" {
		return "", core.ErrNoSession
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	src, err := os.Open(c.Source)
	if err != nil {
		return "", fmt.Errorf("open source image: %w", err)
	}
	defer src.Close()

	tmp, err := os.CreateTemp(c.TempDir, "capture-*"+filepath.Ext(c.Source))
	if err != nil {
		return "", fmt.Errorf("create transient capture: %w", err)
	}
	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write transient capture: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("close transient capture: %w", err)
	}
	return tmp.Name(), nil
}

var _ core.Camera = (*FileCamera)(nil)
