package player

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMediaWatcherSeesChanges(t *testing.T) {
	dir := t.TempDir()
	media := filepath.Join(dir, "promo.mp4")
	require.NoError(t, os.WriteFile(media, []byte("v1"), 0644))

	mw, err := NewMediaWatcher(media, 10*time.Millisecond)
	require.NoError(t, err)
	defer mw.Close()

	assert.False(t, mw.RefreshPending())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0644))
	time.Sleep(100 * time.Millisecond)
	assert.False(t, mw.RefreshPending())

	require.NoError(t, os.WriteFile(media, []byte("v2"), 0644))
	assert.Eventually(t, mw.RefreshPending, time.Second, 5*time.Millisecond)
}

func TestMediaWatcherSeesReplacement(t *testing.T) {
	dir := t.TempDir()
	media := filepath.Join(dir, "promo.mp4")

	mw, err := NewMediaWatcher(media, 10*time.Millisecond)
	require.NoError(t, err)
	defer mw.Close()

	tmp := filepath.Join(dir, "upload.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte("new"), 0644))
	require.NoError(t, os.Rename(tmp, media))

	assert.Eventually(t, mw.RefreshPending, time.Second, 5*time.Millisecond)
}

func TestMediaWatcherMissingDirectory(t *testing.T) {
	_, err := NewMediaWatcher(filepath.Join(t.TempDir(), "nope", "promo.mp4"), time.Millisecond)
	assert.Error(t, err)
}
