// Package watcher reruns the validate and build stages whenever the
// component tree changes on disk. Rapid bursts of filesystem events are
// debounced into a single rebuild.
package watcher

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// RebuildFunc is invoked after each debounced batch of changes.
type RebuildFunc func(ctx context.Context, changed []string) error

// TreeWatcher watches a component tree recursively with debouncing.
type TreeWatcher struct {
	root     string
	delay    time.Duration
	watcher  *fsnotify.Watcher
	rebuild  RebuildFunc
	mu       sync.Mutex
	pending  []string
	timer    *time.Timer
	rebuildC chan []string
}

// New creates a watcher over root. delay controls how long the watcher waits
// after the last event before triggering a rebuild.
func New(root string, delay time.Duration, rebuild RebuildFunc) (*TreeWatcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	tw := &TreeWatcher{
		root:     root,
		delay:    delay,
		watcher:  fsWatcher,
		rebuild:  rebuild,
		rebuildC: make(chan []string, 1),
	}
	if err := tw.addRecursive(root); err != nil {
		fsWatcher.Close()
		return nil, err
	}

	return tw, nil
}

// addRecursive registers root and every non-hidden subdirectory.
func (tw *TreeWatcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(entry.Name(), ".") {
			return filepath.SkipDir
		}

		return tw.watcher.Add(path)
	})
}

// Run processes filesystem events until the context is canceled. Rebuild
// failures are reported through the returned channel read; the watcher keeps
// running so the next change can succeed.
func (tw *TreeWatcher) Run(ctx context.Context, onError func(error)) error {
	defer tw.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-tw.watcher.Events:
			if !ok {
				return nil
			}
			tw.handleEvent(event)
		case err, ok := <-tw.watcher.Errors:
			if !ok {
				return nil
			}
			if onError != nil {
				onError(err)
			}
		case changed := <-tw.rebuildC:
			if err := tw.rebuild(ctx, changed); err != nil && onError != nil {
				onError(err)
			}
		}
	}
}

func (tw *TreeWatcher) handleEvent(event fsnotify.Event) {
	if strings.HasPrefix(filepath.Base(event.Name), ".") {
		return
	}

	// New directories must be registered for events of their own.
	if event.Op.Has(fsnotify.Create) {
		_ = tw.addRecursive(event.Name)
	}

	tw.mu.Lock()
	defer tw.mu.Unlock()

	tw.pending = append(tw.pending, event.Name)
	if tw.timer != nil {
		tw.timer.Stop()
	}
	tw.timer = time.AfterFunc(tw.delay, tw.flush)
}

func (tw *TreeWatcher) flush() {
	tw.mu.Lock()
	changed := tw.pending
	tw.pending = nil
	tw.mu.Unlock()

	if len(changed) == 0 {
		return
	}
	select {
	case tw.rebuildC <- changed:
	default:
	}
}
