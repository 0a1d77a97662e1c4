package config

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatch_Reloads(t *testing.T) {
	dir := t.TempDir()
	_, err := WriteDefault(dir, false)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	changes := make(chan Settings, 4)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, dir, func(s Settings) { changes <- s }, nil)
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(Path(dir), []byte("log_level: debug\n"), 0o644))

	select {
	case s := <-changes:
		assert.Equal(t, "debug", s.LogLevel)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after config write")
	}

	cancel()
	require.NoError(t, <-done)
}

func TestWatch_BadFileKeepsWatching(t *testing.T) {
	dir := t.TempDir()
	_, err := WriteDefault(dir, false)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errs := make(chan error, 4)
	changes := make(chan Settings, 4)
	go func() {
		_ = Watch(ctx, dir, func(s Settings) { changes <- s }, func(err error) { errs <- err })
	}()

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(Path(dir), []byte("backend: postgres\n"), 0o644))
	select {
	case err := <-errs:
		assert.ErrorContains(t, err, "backend")
	case <-time.After(5 * time.Second):
		t.Fatal("no error for unknown backend")
	}

	require.NoError(t, os.WriteFile(Path(dir), []byte("log_level: warn\n"), 0o644))
	select {
	case s := <-changes:
		assert.Equal(t, "warn", s.LogLevel)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher stopped after a bad file")
	}
}

func TestWatch_MissingDir(t *testing.T) {
	err := Watch(context.Background(), "/nonexistent/fleetops", func(Settings) {}, nil)
	assert.Error(t, err)
}
