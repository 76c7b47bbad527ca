package ml

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// WatchArtifact logs changes to the model file until ctx is done. The loaded
// model is never swapped; a restart picks up the new artifact. The directory is
// watched so atomic replace-by-rename is seen too.
func WatchArtifact(ctx context.Context, path string, logger *zap.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	go func() {
		defer watcher.Close()
		target := filepath.Clean(path)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
					logger.Warn("model artifact changed on disk, restart to load it",
						zap.String("path", path),
						zap.String("op", event.Op.String()),
					)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Error("model watcher error", zap.Error(err))
			}
		}
	}()
	return nil
}
