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

func TestLocalStorageSaveOpenDelete(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	rel, err := store.Save("job-1/schedule.pdf", []byte("%PDF-fake"))
	require.NoError(t, err)
	assert.Equal(t, "job-1/schedule.pdf", rel)

	file, err := store.Open(rel)
	require.NoError(t, err)
	content, err := io.ReadAll(file)
	require.NoError(t, file.Close())
	require.NoError(t, err)
	assert.Equal(t, "%PDF-fake", string(content))

	require.NoError(t, store.Delete(rel))
	_, err = store.Open(rel)
	assert.Error(t, err)

	require.NoError(t, store.Delete(rel), "deleting a missing file is not an error")
}

func TestLocalStorageCleanupOlderThan(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir)
	require.NoError(t, err)

	old, err := store.Save("old/schedule.ics", []byte("BEGIN:VCALENDAR"))
	require.NoError(t, err)
	stale := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(dir, old), stale, stale))

	fresh, err := store.Save("fresh/schedule.ics", []byte("BEGIN:VCALENDAR"))
	require.NoError(t, err)

	deleted, err := store.CleanupOlderThan(time.Hour)
	require.NoError(t, err)
	assert.Equal(t, []string{old}, deleted)

	_, err = store.Open(fresh)
	assert.NoError(t, err)
}
