package profile

import (
	"context"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/matzehuels/chartfit/pkg/errors"
	"github.com/matzehuels/chartfit/pkg/observability"
)

// reloadDebounce coalesces the burst of events editors emit on save.
const reloadDebounce = 200 * time.Millisecond

// Watch reloads the profile at path into store whenever the file changes,
// until ctx is cancelled. The parent directory is watched so that editors
// replacing the file atomically are picked up. A file that fails to load or
// validate is logged and ignored; the previous snapshot stays published.
func Watch(ctx context.Context, path string, store *Store, logger *log.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create watcher")
	}
	defer watcher.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "resolve %s", path)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "watch %s", filepath.Dir(abs))
	}
	logger.Debug("watching profile", "path", abs)

	timer := time.NewTimer(reloadDebounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(reloadDebounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("profile watcher error", "error", err)

		case <-timer.C:
			err := reload(abs, store, logger)
			observability.Pipeline().OnProfileReload(ctx, abs, err)
		}
	}
}

func reload(path string, store *Store, logger *log.Logger) error {
	next, err := Load(path)
	if err == nil {
		_, err = store.Swap(next)
	}
	if err != nil {
		logger.Warn("profile reload rejected, keeping previous", "path", path, "error", errors.UserMessage(err))
		return err
	}
	logger.Info("profile reloaded", "path", path)
	return nil
}
