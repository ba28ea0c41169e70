package e2e

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// buildBinary builds the camnotes binary in the specified directory and returns its path.
func buildBinary(t *testing.T, dir string) string {
	t.Helper()
	bin := filepath.Join(dir, "camnotes.exe")
	// Assumes tests are running from tests/e2e.
	buildCmd := exec.Command("go", "build", "-o", bin, "../../cmd/camnotes")
	if out, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build camnotes: %v\n%s", err, string(out))
	}
	return bin
}

// cli runs the binary in dir with an isolated HOME and the given extra env.
type cli struct {
	bin string
	dir string
	env []string
}

func (c cli) run(args ...string) (string, error) {
	cmd := exec.Command(c.bin, args...)
	cmd.Dir = c.dir
	cmd.Env = append(os.Environ(), "HOME="+filepath.Join(c.dir, "home"))
	cmd.Env = append(cmd.Env, c.env...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	if err != nil {
		return stdout.String() + stderr.String(), err
	}
	return stdout.String(), nil
}

func (c cli) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := c.run(args...)
	if err != nil {
		t.Fatalf("camnotes %v failed in %s: %v\n%s", args, c.dir, err, out)
	}
	return out
}
