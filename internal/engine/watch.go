package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long Watch waits after the last source change
// before rebuilding.
const DefaultDebounce = 200 * time.Millisecond

// BuildFunc receives the outcome of each build triggered by Watch.
type BuildFunc func(*Result, error)

// Watch builds once, then rebuilds whenever a source file in SourceDir is
// written, created, removed or renamed. Builds run serially on the calling
// goroutine; Watch returns when ctx is cancelled.
func (e *Engine) Watch(ctx context.Context, debounce time.Duration, fn BuildFunc) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(e.cfg.SourceDir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", e.cfg.SourceDir, err)
	}

	e.logger.Info("watching for changes", "source_dir", e.cfg.SourceDir)
	fn(e.Build(ctx))

	var (
		timer   *time.Timer
		trigger <-chan time.Time
	)
	stop := func() {
		if timer != nil {
			timer.Stop()
		}
	}
	defer stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if !isSource(event.Name) {
				continue
			}
			e.logger.Debug("source changed", "file", event.Name, "op", event.Op.String())
			stop()
			timer = time.NewTimer(debounce)
			trigger = timer.C

		case <-trigger:
			trigger = nil
			res, err := e.Build(ctx)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			fn(res, err)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			e.logger.Warn("watcher error", "error", err)
		}
	}
}
