package walk

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchIteratorEmitsPathOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "watched.txt")
	require.NoError(t, os.WriteFile(path, []byte("initial"), 0644))

	wi, err := NewWatchIterator([]string{dir})
	require.NoError(t, err)
	defer wi.Close()

	require.NoError(t, os.WriteFile(path, []byte("changed"), 0644))

	select {
	case got := <-wi.Changes:
		assert.Equal(t, path, got)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a change notification")
	}
}

func TestWatchIteratorCloseStopsEmitting(t *testing.T) {
	dir := t.TempDir()
	wi, err := NewWatchIterator([]string{dir})
	require.NoError(t, err)
	require.NoError(t, wi.Close())

	select {
	case _, ok := <-wi.Changes:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("Changes channel was not closed after Close")
	}
}
