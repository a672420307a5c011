package utils

import (
	"os"
	"path/filepath"

	"github.com/MoosaTae/license-plate-ocr/pkg/version"
)

// GetDataPath resolves a relative data file path like "data/province_list.txt"
// It searches the current directory first, then walks up toward the project
// root, so the binaries work from cmd/ subdirectories too
func GetDataPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}

	// Try current directory first
	if _, err := os.Stat(path); err == nil {
		return path
	}

	// Try to find project root by walking up
	cwd, err := os.Getwd()
	if err != nil {
		return path
	}

	dir := cwd
	for i := 0; i < 10; i++ { // Limit depth to prevent infinite loop
		candidate := filepath.Join(dir, path)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}

		// Move up one directory
		parent := filepath.Dir(dir)
		if parent == dir {
			break // Reached root
		}
		dir = parent
	}

	// Fallback to the path as given
	return path
}

// GetAppDataPath returns the path to an application data file
func GetAppDataPath(filename string) (string, error) {
	var appDataDir string

	if appData := os.Getenv("APPDATA"); appData != "" {
		// Windows
		appDataDir = filepath.Join(appData, version.AppName)
	} else if home := os.Getenv("HOME"); home != "" {
		// Linux/macOS
		appDataDir = filepath.Join(home, ".local", "share", version.AppName)
	} else {
		// Fallback
		appDataDir = version.AppName
	}

	if err := os.MkdirAll(appDataDir, 0755); err != nil {
		return "", err
	}

	return filepath.Join(appDataDir, filename), nil
}
