package utils

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	neighbour := filepath.Join(dir, "out", "keep.png")
	path := filepath.Join(dir, "out", "chart.png")

	require.NoError(t, WriteFileAtomic(neighbour, func(w io.Writer) error {
		_, err := w.Write([]byte("keep"))
		return err
	}))
	require.NoError(t, WriteFileAtomic(path, func(w io.Writer) error {
		_, err := w.Write([]byte("chart"))
		return err
	}))

	buf, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(buf), "chart")

	buf, err = os.ReadFile(neighbour)
	require.NoError(t, err)
	assert.Equal(t, string(buf), "keep")

	entries, err := os.ReadDir(filepath.Join(dir, "out"))
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestWriteFileAtomic_FailureKeepsOldFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.png")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	failure := errors.New("render failed")
	err := WriteFileAtomic(path, func(w io.Writer) error { return failure })
	assert.ErrorIs(t, err, failure)

	buf, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(buf), "old")

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	assert.True(t, FileExists(dir))
	assert.False(t, FileExists(filepath.Join(dir, "missing")))
}
