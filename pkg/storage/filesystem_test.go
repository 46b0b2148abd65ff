package storage

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageSaveAndOpen(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	name, err := store.Save("2026/rcpt-1.pdf", []byte("%PDF-1.4"))
	require.NoError(t, err)
	assert.Equal(t, "2026/rcpt-1.pdf", name)

	file, err := store.Open(name)
	require.NoError(t, err)
	defer file.Close() //nolint:errcheck
	data, err := io.ReadAll(file)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), data)
}

func TestLocalStorageDelete(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	name, err := store.Save("rcpt-2.pdf", []byte("%PDF-1.4"))
	require.NoError(t, err)
	require.NoError(t, store.Delete(name))

	_, err = store.Open(name)
	assert.Error(t, err)

	// Deleting an absent file is a no-op.
	assert.NoError(t, store.Delete("never-existed.pdf"))
}

func TestLocalStorageCleanupOlderThan(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir)
	require.NoError(t, err)

	stale, err := store.Save("old/rcpt-old.pdf", []byte("%PDF-1.4"))
	require.NoError(t, err)
	fresh, err := store.Save("rcpt-new.pdf", []byte("%PDF-1.4"))
	require.NoError(t, err)

	past := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(dir, stale), past, past))

	deleted, err := store.CleanupOlderThan(24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join("old", "rcpt-old.pdf")}, deleted)

	_, err = store.Open(stale)
	assert.Error(t, err)
	file, err := store.Open(fresh)
	require.NoError(t, err)
	file.Close() //nolint:errcheck
}
