package scene

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the scene file at path whenever it changes and passes each
// successfully loaded scene to onLoad. Files that fail to load are logged and
// skipped, so a half-saved edit keeps the previous scene on screen.
//
// The containing directory is watched because editors often replace files by
// rename. Watching stops when ctx is done. onLoad runs on the watcher goroutine.
func Watch(ctx context.Context, path string, log *slog.Logger, onLoad func(*Scene)) error {
	if log == nil {
		log = slog.Default()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("scene: watch: %w", err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("scene: watch: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return fmt.Errorf("scene: watch: %w", err)
	}

	go func() {
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != abs {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
					continue
				}
				s, err := LoadFile(abs)
				if err != nil {
					log.Warn("scene reload failed", slog.String("path", abs), slog.Any("err", err))
					continue
				}
				log.Info("scene reloaded", slog.String("path", abs), slog.Int("primitives", len(s.Primitives)))
				onLoad(s)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Warn("scene watcher error", slog.Any("err", err))
			}
		}
	}()
	return nil
}
