package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithTempFileRemovesFileOnSuccess(t *testing.T) {
	dir := t.TempDir()
	var seen string

	err := WithTempFile(dir, "chart-*.png", []byte("png-bytes"), func(path string) error {
		seen = path
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "png-bytes", string(data))
		assert.Equal(t, ".png", filepath.Ext(path))
		return nil
	})

	require.NoError(t, err)
	assert.NoFileExists(t, seen)
	entries, _ := os.ReadDir(dir)
	assert.Empty(t, entries)
}

func TestWithTempFileRemovesFileOnFailure(t *testing.T) {
	dir := t.TempDir()
	cause := errors.New("embed failed")
	var seen string

	err := WithTempFile(dir, "chart-*.png", []byte("x"), func(path string) error {
		seen = path
		return cause
	})

	assert.ErrorIs(t, err, cause)
	assert.NoFileExists(t, seen)
}

func TestWithTempFileToleratesCallbackRemovingFile(t *testing.T) {
	err := WithTempFile(t.TempDir(), "chart-*.png", nil, func(path string) error {
		return os.Remove(path)
	})

	assert.NoError(t, err)
}

func TestWithTempFileCreateFailure(t *testing.T) {
	called := false
	missing := filepath.Join(t.TempDir(), "does-not-exist")

	err := WithTempFile(missing, "chart-*.png", []byte("x"), func(string) error {
		called = true
		return nil
	})

	assert.Error(t, err)
	assert.False(t, called)
}
