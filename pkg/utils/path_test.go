package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir changes the working directory for the duration of the test.
// Equivalent of t.Chdir, which requires Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestGetDataPathAbsolute(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "plates.csv")
	assert.Equal(t, abs, GetDataPath(abs))
}

func TestGetDataPathWalksUp(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "data"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "data", "provinces.txt"), []byte("x"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "cmd", "server"), 0755))

	chdir(t, filepath.Join(root, "cmd", "server"))

	resolved := GetDataPath(filepath.Join("data", "provinces.txt"))
	_, err := os.Stat(resolved)
	assert.NoError(t, err, "resolved path should exist: %s", resolved)
}

func TestGetDataPathMissingFallsBack(t *testing.T) {
	chdir(t, t.TempDir())

	rel := filepath.Join("data", "nope.txt")
	assert.Equal(t, rel, GetDataPath(rel))
}
