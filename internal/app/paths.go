package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	homedir "github.com/mitchellh/go-homedir"
)

const (
	appDirName     = "plano"
	dbFileName     = "plano.db"
	configFileName = "config.yaml"
	logFileName    = "plano.log"

	// DirEnv overrides every default location when set.
	DirEnv = "PLANO_DIR"
)

// DataDir is where the database and logs live: $PLANO_DIR, then
// $XDG_DATA_HOME/plano.
func DataDir() string {
	if explicit := os.Getenv(DirEnv); explicit != "" {
		return ExpandPath(explicit)
	}
	xdg.Reload()
	return filepath.Join(xdg.DataHome, appDirName)
}

// ConfigDir holds config.yaml: $PLANO_DIR, then $XDG_CONFIG_HOME/plano.
func ConfigDir() string {
	if explicit := os.Getenv(DirEnv); explicit != "" {
		return ExpandPath(explicit)
	}
	xdg.Reload()
	return filepath.Join(xdg.ConfigHome, appDirName)
}

func DefaultDBPath() string {
	return filepath.Join(DataDir(), dbFileName)
}

func DefaultConfigPath() string {
	return filepath.Join(ConfigDir(), configFileName)
}

func DefaultLogPath() string {
	return filepath.Join(DataDir(), logFileName)
}

// ExpandPath resolves a leading "~" against the user's home directory.
// Paths that cannot be expanded are returned unchanged.
func ExpandPath(path string) string {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return path
	}
	return expanded
}

func EnsureDBDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create db directory: %w", err)
	}
	return nil
}
