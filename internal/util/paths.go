// Package util holds small path helpers shared across skilldex.
package util

import (
	"os"
	"path/filepath"
	"strings"
)

// HomeDir returns the user's home directory.
func HomeDir() string {
	home, _ := os.UserHomeDir()
	return home
}

// ConfigPath returns the skilldex configuration directory.
func ConfigPath() string {
	return filepath.Join(HomeDir(), ".skilldex")
}

// ExpandPath expands a leading ~ to the home directory and resolves relative
// paths against baseDir. Returns "" for empty input.
func ExpandPath(path, baseDir string) string {
	if path == "" {
		return ""
	}

	if path == "~" {
		return HomeDir()
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(HomeDir(), path[2:])
	}

	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(baseDir, path)
}
