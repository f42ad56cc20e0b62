package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sourcegraph/conc"

	"github.com/kazz187/tasktrack/internal/task"
)

// watchDebounceInterval is the delay after a filesystem event before the
// listing is rendered again.
const watchDebounceInterval = 100 * time.Millisecond

type lister struct {
	svc      *task.Service
	filter   task.Filter
	order    task.Order
	renderer task.Renderer
	w        io.Writer
}

func (l *lister) list(ctx context.Context) error {
	entries, err := l.svc.List(ctx, l.filter, l.order)
	if err != nil {
		return err
	}
	return l.renderer.Render(l.w, entries, l.filter)
}

// watch lists once and then again after every change to path until ctx is
// done. A listing that fails after the first one is logged and skipped.
func (l *lister) watch(ctx context.Context, path string) error {
	if err := l.list(ctx); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the parent directory, not the file itself: saves replace the file
	// with a rename, which changes the inode.
	dir := filepath.Dir(path)
	name := filepath.Base(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch directory %s: %w", dir, err)
	}
	slog.DebugContext(ctx, "watching task file", "dir", dir, "file", name)

	changed := make(chan struct{}, 1)
	loopCtx, cancel := context.WithCancel(ctx)
	var wg conc.WaitGroup
	defer wg.Wait()
	defer cancel()
	wg.Go(func() {
		watchEvents(loopCtx, watcher, name, changed)
	})

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-changed:
			if _, err := fmt.Fprintln(l.w); err != nil {
				return err
			}
			if err := l.list(ctx); err != nil {
				slog.WarnContext(ctx, "failed to list tasks", "error", err)
			}
		}
	}
}

// watchEvents forwards debounced create, write and rename events for name to
// changed until ctx is done or the watcher is closed.
func watchEvents(ctx context.Context, watcher *fsnotify.Watcher, name string, changed chan<- struct{}) {
	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			slog.DebugContext(ctx, "detected filesystem event", "op", event.Op.String(), "name", event.Name)

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(watchDebounceInterval, func() {
				select {
				case changed <- struct{}{}:
				default:
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			slog.WarnContext(ctx, "watch error", "error", err)

		case <-ctx.Done():
			return
		}
	}
}
