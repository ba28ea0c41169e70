package fs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
)

// writeFileAtomic writes r to filename through a temp file and a rename,
// creating the parent directory when missing.
func writeFileAtomic(filename string, r io.Reader, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", filename, err)
	}

	if err := atomic.WriteFile(filename, r); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}

	if err := os.Chmod(filename, perm); err != nil {
		return fmt.Errorf("failed to chmod %s: %w", filename, err)
	}
	return nil
}
