package fileutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomicLeavesNoTempFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "highscore")

	require.NoError(t, WriteFileAtomic(path, []byte("first"), 0o600))
	require.NoError(t, WriteFileAtomic(path, []byte("second"), 0o600))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "highscore", entries[0].Name())
}

func TestWriteFileAtomicMissingDir(t *testing.T) {
	t.Parallel()

	err := WriteFileAtomic(filepath.Join(t.TempDir(), "nope", "highscore"), []byte("1"), 0o644)
	assert.Error(t, err)
}

func TestReadWriteInt(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "highscore")

	n, err := ReadInt(path)
	require.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, WriteInt(path, 2300))
	n, err = ReadInt(path)
	require.NoError(t, err)
	assert.Equal(t, 2300, n)
}

func TestReadIntGarbage(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "highscore")
	require.NoError(t, os.WriteFile(path, []byte("lots\n"), 0o644))

	_, err := ReadInt(path)
	assert.Error(t, err)
}
