package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsDefinitionFile(t *testing.T) {
	assert.True(t, isDefinitionFile("/srv/acf-json/group_5a1b2c3d4e5f6.json"))
	assert.False(t, isDefinitionFile("/srv/acf-json/README.md"))
	assert.False(t, isDefinitionFile("/srv/acf-json/.group.json"))
}

func TestWatcher_SignalsOnceForBurst(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir, 50*time.Millisecond)
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Stop()

	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "group_5a1b2c3d4e5f6.json"), []byte(`{}`), 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	select {
	case <-w.Changes:
	case <-time.After(2 * time.Second):
		t.Fatal("no change signalled")
	}

	select {
	case <-w.Changes:
		t.Fatal("burst signalled more than once")
	case <-time.After(200 * time.Millisecond):
	}
}
