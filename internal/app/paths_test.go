package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDataDirHonoursExplicitEnv(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "custom")
	t.Setenv(DirEnv, dir)

	if got := DataDir(); got != dir {
		t.Fatalf("expected %q, got %q", dir, got)
	}
	if got := DefaultDBPath(); got != filepath.Join(dir, "plano.db") {
		t.Fatalf("unexpected db path %q", got)
	}
	if got := DefaultConfigPath(); got != filepath.Join(dir, "config.yaml") {
		t.Fatalf("unexpected config path %q", got)
	}
	if got := DefaultLogPath(); got != filepath.Join(dir, "plano.log") {
		t.Fatalf("unexpected log path %q", got)
	}
}

func TestDataDirFallsBackToXDG(t *testing.T) {
	xdgDir := filepath.Join(t.TempDir(), "xdg")
	t.Setenv(DirEnv, "")
	t.Setenv("XDG_DATA_HOME", xdgDir)

	got := DataDir()
	if got != filepath.Join(xdgDir, "plano") {
		t.Fatalf("expected xdg data dir, got %q", got)
	}
}

func TestExpandPathResolvesHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home dir: %v", err)
	}
	got := ExpandPath("~/plano.db")
	if !strings.HasPrefix(got, home) {
		t.Fatalf("expected %q to start with %q", got, home)
	}
	if ExpandPath("/tmp/x.db") != "/tmp/x.db" {
		t.Fatalf("absolute path should be unchanged")
	}
}

func TestEnsureDBDirCreatesParent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "plano.db")
	if err := EnsureDBDir(path); err != nil {
		t.Fatalf("ensure db dir: %v", err)
	}
	if st, err := os.Stat(filepath.Dir(path)); err != nil || !st.IsDir() {
		t.Fatalf("expected directory to exist: %v", err)
	}
}
