package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebouncedRebuild(t *testing.T) {
	root := t.TempDir()

	rebuilds := make(chan []string, 4)
	tw, err := New(root, 100*time.Millisecond, func(_ context.Context, changed []string) error {
		rebuilds <- changed
		return nil
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = tw.Run(ctx, nil)
	}()

	// A burst of writes inside the debounce window collapses into one rebuild.
	for i := 0; i < 3; i++ {
		path := filepath.Join(root, fmt.Sprintf("file-%d.hbs", i))
		require.NoError(t, os.WriteFile(path, []byte("<div></div>"), 0o644))
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case changed := <-rebuilds:
		assert.NotEmpty(t, changed)
	case <-time.After(3 * time.Second):
		t.Fatal("rebuild was not triggered")
	}

	select {
	case <-rebuilds:
		t.Fatal("burst triggered more than one rebuild")
	case <-time.After(300 * time.Millisecond):
	}

	cancel()
	<-done
}

func TestNewDirectoriesAreWatched(t *testing.T) {
	root := t.TempDir()

	rebuilds := make(chan []string, 4)
	tw, err := New(root, 50*time.Millisecond, func(_ context.Context, changed []string) error {
		rebuilds <- changed
		return nil
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = tw.Run(ctx, nil) }()

	sub := filepath.Join(root, "atoms", "button")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	select {
	case <-rebuilds:
	case <-time.After(3 * time.Second):
		t.Fatal("directory creation did not trigger a rebuild")
	}

	// Writes inside the freshly created directory must also be seen.
	require.NoError(t, os.WriteFile(filepath.Join(sub, "pattern.json"), []byte("{}"), 0o644))

	select {
	case changed := <-rebuilds:
		assert.NotEmpty(t, changed)
	case <-time.After(3 * time.Second):
		t.Fatal("write in new directory did not trigger a rebuild")
	}
}

func TestRebuildErrorKeepsWatcherRunning(t *testing.T) {
	root := t.TempDir()

	var calls atomic.Int64
	var errs atomic.Int64
	tw, err := New(root, 50*time.Millisecond, func(context.Context, []string) error {
		if calls.Add(1) == 1 {
			return fmt.Errorf("rebuild failed")
		}
		return nil
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		_ = tw.Run(ctx, func(error) { errs.Add(1) })
	}()

	require.NoError(t, os.WriteFile(filepath.Join(root, "a.hbs"), []byte("x"), 0o644))
	require.Eventually(t, func() bool { return errs.Load() == 1 }, 3*time.Second, 20*time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(root, "b.hbs"), []byte("y"), 0o644))
	require.Eventually(t, func() bool { return calls.Load() >= 2 }, 3*time.Second, 20*time.Millisecond)
}

func TestRunStopsOnContextCancel(t *testing.T) {
	tw, err := New(t.TempDir(), 50*time.Millisecond, func(context.Context, []string) error { return nil })
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- tw.Run(ctx, nil) }()

	cancel()
	select {
	case err := <-errc:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestHiddenFilesIgnored(t *testing.T) {
	root := t.TempDir()

	rebuilds := make(chan []string, 1)
	tw, err := New(root, 50*time.Millisecond, func(_ context.Context, changed []string) error {
		rebuilds <- changed
		return nil
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = tw.Run(ctx, nil) }()

	require.NoError(t, os.WriteFile(filepath.Join(root, ".swapfile"), []byte("x"), 0o644))

	select {
	case changed := <-rebuilds:
		t.Fatalf("hidden file triggered a rebuild: %v", changed)
	case <-time.After(300 * time.Millisecond):
	}
}
