package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteProducesOneEvent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "windows.csv")
	require.NoError(t, os.WriteFile(path, []byte("a\n"), 0o644))

	w, err := New(path, 50*time.Millisecond)
	require.NoError(t, err)
	defer w.Close()

	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte("a\nb\n"), 0o644))
	}

	select {
	case got := <-w.Events():
		assert.Equal(t, path, got)
	case <-time.After(3 * time.Second):
		t.Fatal("no event after write")
	}

	// the burst was debounced into that single event
	select {
	case <-w.Events():
		t.Fatal("unexpected second event")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestOtherFilesIgnored(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "windows.csv")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	w, err := New(path, 20*time.Millisecond)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.csv"), []byte("x"), 0o644))
	select {
	case <-w.Events():
		t.Fatal("event for unrelated file")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestMissingDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "gone", "w.csv"), 0)
	assert.ErrorContains(t, err, "watch directory")
}

func TestCloseTwice(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "w.csv"), 0)
	require.NoError(t, err)
	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}
