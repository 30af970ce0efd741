package cli

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce groups the bursts of events editors produce on save.
const DefaultDebounce = 200 * time.Millisecond

// RunWatch merges once, then merges again every time an input model (or the
// manifest) changes, until sc is cancelled. Merge errors are logged and the
// watcher keeps waiting for a fix.
func RunWatch(sc *SignalContext, opts RunOptions, logger *slog.Logger) error {
	scene, err := ResolveScene(opts)
	if err != nil {
		return err
	}
	files := make([]string, 0, len(scene.Robots)+1)
	for _, r := range scene.Robots {
		files = append(files, r.File)
	}
	if opts.ConfigPath != "" {
		files = append(files, opts.ConfigPath)
	}

	out := opts.stdout()
	printSystemMessage(out, "Watching %d files.", len(files))
	err = Watch(sc, files, DefaultDebounce, logger, func(ctx context.Context) error {
		// re-read the manifest so edits to it apply on the next merge
		scene, err := ResolveScene(opts)
		if err != nil {
			return err
		}
		_, err = RunMerge(ctx, opts, scene, logger)
		return err
	})
	if sig := sc.Signal(); sig != nil {
		printSystemMessage(out, "Stopping (signal: %v)", sig)
	}
	return err
}

// Watch calls run once, then again after every change to one of files,
// debounced by debounce. It returns nil when ctx is cancelled.
func Watch(ctx context.Context, files []string, debounce time.Duration, logger *slog.Logger, run func(context.Context) error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Directories are watched rather than files so that atomic saves
	// (write to temp, rename over) keep being seen.
	watched := make(map[string]bool, len(files))
	dirs := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return err
		}
		watched[abs] = true
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		dirs[dir] = true
	}

	runOnce := func() {
		if err := run(ctx); err != nil {
			logger.Error("Merge failed, waiting for changes", "err", err)
		}
	}
	runOnce()

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Stopping watcher")
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !watched[filepath.Clean(ev.Name)] || !isChange(ev) {
				continue
			}
			logger.Debug("Change detected", "file", ev.Name, "op", ev.Op.String())
			timer.Reset(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error", "err", err)
		case <-timer.C:
			runOnce()
		}
	}
}

func isChange(ev fsnotify.Event) bool {
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}
