package platform

import (
	"os"
	"path/filepath"
	"strings"
)

// IsDevRun checks if the current process is running via `go run` or `go test`.
// It relies on the fact that these commands build binaries in temporary directories.
func IsDevRun() bool {
	exe, err := os.Executable()
	if err != nil {
		return false
	}

	tempDir := os.TempDir()
	if strings.HasPrefix(strings.ToLower(exe), strings.ToLower(tempDir)) {
		return true
	}

	if strings.HasSuffix(exe, ".test") || strings.HasSuffix(exe, ".test.exe") {
		return true
	}

	return false
}

// ResolveDataDir determines the directory the App actually uses.
// With forceTemp it re-roots dataDir under <tmp>/camnotes-dev, unless the
// path already lives inside the temp directory.
func ResolveDataDir(dataDir string, forceTemp bool) string {
	if !forceTemp {
		if dataDir == "" {
			return "."
		}
		return dataDir
	}

	clean := filepath.Clean(dataDir)
	tempRoot := os.TempDir()

	rel, err := filepath.Rel(tempRoot, clean)
	if err == nil && filepath.IsAbs(clean) && !strings.HasPrefix(rel, "..") {
		return clean
	}

	name := filepath.Base(clean)
	if dataDir == "" || name == "." || name == string(os.PathSeparator) {
		name = "default"
	}

	return filepath.Join(tempRoot, "camnotes-dev", name)
}
