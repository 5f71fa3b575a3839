package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, DefaultConfig().Save(path))

	changed := make(chan *Config, 4)
	w, err := NewWatcher(path, dir, func(c *Config) { changed <- c })
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	defer w.Stop()

	cfg := DefaultConfig()
	cfg.UI.PageSize = 42
	require.NoError(t, cfg.Save(path))

	select {
	case got := <-changed:
		assert.Equal(t, 42, got.UI.PageSize)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not report the change")
	}
	assert.GreaterOrEqual(t, w.Reloads(), 1)
}

func TestWatcher_IgnoresInvalidConfig(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, DefaultConfig().Save(path))

	changed := make(chan *Config, 4)
	w, err := NewWatcher(path, dir, func(c *Config) { changed <- c })
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	require.NoError(t, os.WriteFile(path, []byte("ui:\n  page_size: 0\n"), 0644))
	// Unrelated files in the same directory are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1\n"), 0644))

	select {
	case c := <-changed:
		t.Fatalf("invalid config should not be applied, got page size %d", c.UI.PageSize)
	case <-time.After(600 * time.Millisecond):
	}
	assert.Zero(t, w.Reloads())
}

func TestWatcher_StopWithoutStart(t *testing.T) {
	w, err := NewWatcher(filepath.Join(t.TempDir(), "config.yaml"), "", nil)
	require.NoError(t, err)
	w.Stop()
}

func TestWatcher_MissingDirectory(t *testing.T) {
	w, err := NewWatcher(filepath.Join(t.TempDir(), "nope", "config.yaml"), "", nil)
	require.NoError(t, err)
	defer w.Stop()
	assert.Error(t, w.Start(context.Background()))
}
