package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// MarkerDir marks the root of a camnotes data directory.
const MarkerDir = ".camnotes"

// FindRoot recursively looks upwards for a data root indicator
// (a .camnotes directory or a camnotes.yaml file) and returns its absolute path.
func FindRoot(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		if hasFile(dir, MarkerDir) || hasFile(dir, "camnotes.yaml") {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("root not found")
}

func hasFile(dir, name string) bool {
	path := filepath.Join(dir, name)
	_, err := os.Stat(path)
	return err == nil
}
