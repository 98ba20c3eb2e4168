package fswatch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bnema/workshop-sync/internal/application"
	"github.com/bnema/workshop-sync/internal/domain"
	"github.com/bnema/workshop-sync/internal/ports"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Waiter blocks until a directory is created, using filesystem notifications
// on its parent instead of polling. When a watch cannot be installed it
// defers to the fallback waiter.
type Waiter struct {
	settings application.ReadinessSettings
	fallback ports.ReadinessWaiter
	logger   zerolog.Logger
}

var _ ports.ReadinessWaiter = (*Waiter)(nil)

func NewWaiter(settings application.ReadinessSettings, fallback ports.ReadinessWaiter, logger zerolog.Logger) *Waiter {
	return &Waiter{settings: settings, fallback: fallback, logger: logger}
}

func (w *Waiter) WaitForDir(ctx context.Context, path string) error {
	path = filepath.Clean(path)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		w.logger.Debug().Err(err).Msg("fsnotify unavailable, polling instead")
		return w.fallback.WaitForDir(ctx, path)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		w.logger.Debug().Err(err).Str("path", filepath.Dir(path)).Msg("cannot watch staging root, polling instead")
		return w.fallback.WaitForDir(ctx, path)
	}

	// The directory may have appeared before the watch was installed.
	if isDir(path) {
		return nil
	}

	budget := w.settings.Budget()
	timer := time.NewTimer(budget)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			if isDir(path) {
				return nil
			}
			if w.settings.Lenient {
				w.logger.Warn().Str("path", path).Dur("waited", budget).Msg("staging directory did not appear, continuing")
				return nil
			}
			return fmt.Errorf("%w: %s missing after %s", domain.ErrStagingNotReady, path, budget)
		case event, ok := <-watcher.Events:
			if !ok {
				return w.fallback.WaitForDir(ctx, path)
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				if isDir(path) {
					return nil
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return w.fallback.WaitForDir(ctx, path)
			}
			w.logger.Debug().Err(err).Msg("fsnotify error")
		}
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
