package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteTree creates the given files under rootDir.
// File paths are slash-separated and relative to rootDir, e.g. "2/1/1.png".
func WriteTree(t testing.TB, rootDir string, files map[string][]byte) {
	t.Helper()

	for name, data := range files {
		filePath := filepath.Join(rootDir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
		require.NoError(t, os.WriteFile(filePath, data, 0644))
	}
}

// MakeDirs creates the given (possibly empty) directories under rootDir.
func MakeDirs(t testing.TB, rootDir string, dirs ...string) {
	t.Helper()

	for _, dir := range dirs {
		require.NoError(t, os.MkdirAll(filepath.Join(rootDir, filepath.FromSlash(dir)), 0755))
	}
}
