package fileutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "report.txt")

	require.NoError(t, WriteFileAtomic(testFile, []byte("hello world"), 0o644))

	data, err := os.ReadFile(testFile)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(data))

	info, err := os.Stat(testFile)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	entries, err := os.ReadDir(tmpDir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temp files should remain")
	assert.Equal(t, "report.txt", entries[0].Name())
}

func TestWriteFileAtomicOverwrite(t *testing.T) {
	t.Parallel()

	testFile := filepath.Join(t.TempDir(), "report.txt")
	require.NoError(t, WriteFileAtomic(testFile, []byte("initial"), 0o644))
	require.NoError(t, WriteFileAtomic(testFile, []byte("updated content"), 0o644))

	data, err := os.ReadFile(testFile)
	require.NoError(t, err)
	assert.Equal(t, "updated content", string(data))
}

func TestWriteFileAtomicMissingDirectory(t *testing.T) {
	t.Parallel()

	err := WriteFileAtomic(filepath.Join(t.TempDir(), "missing", "report.txt"), []byte("x"), 0o644)
	assert.Error(t, err)
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	type report struct {
		Rounds int     `json:"rounds"`
		Edge   float64 `json:"house_edge"`
	}

	testFile := filepath.Join(t.TempDir(), "nested", "report.json")
	require.NoError(t, WriteJSON(testFile, report{Rounds: 100, Edge: 0.5}))

	data, err := os.ReadFile(testFile)
	require.NoError(t, err)

	var got report
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, report{Rounds: 100, Edge: 0.5}, got)
	assert.Contains(t, string(data), "\n  \"rounds\": 100")
}

func TestWriteJSONEncodeError(t *testing.T) {
	t.Parallel()

	err := WriteJSON(filepath.Join(t.TempDir(), "bad.json"), map[string]any{"ch": make(chan int)})
	assert.Error(t, err)
}
