package internal

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/starford/raido/pkg/config"
)

// watchConfig watches the config file for changes and re-applies the log
// level until ctx is cancelled. Only the level is hot-reloaded; address and
// store settings still require a restart.
//
// The parent directory is watched rather than the file itself: many editors
// replace the file via rename on save, which would silently detach a watch
// on the file path.
func watchConfig(ctx context.Context, path string, level *slog.LevelVar, logger *slog.Logger) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Warn("config watcher: init failed", slog.String("error", err.Error()))
		return
	}
	defer w.Close()

	dir := filepath.Dir(path)
	if err := w.Add(dir); err != nil {
		logger.Warn("config watcher: watch failed",
			slog.String("dir", dir),
			slog.String("error", err.Error()))
		return
	}

	logger.Info("config watcher: started", slog.String("path", path))

	// reloadTimer debounces bursts of write events from a single save.
	var reloadTimer *time.Timer
	var reloadCh <-chan time.Time

	scheduleReload := func() {
		if reloadTimer == nil {
			reloadTimer = time.NewTimer(200 * time.Millisecond)
			reloadCh = reloadTimer.C
		} else {
			reloadTimer.Reset(200 * time.Millisecond)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if reloadTimer != nil {
				reloadTimer.Stop()
			}
			logger.Info("config watcher: stopped")
			return

		case <-reloadCh:
			cfg := NewDefaultConfig()
			if err := config.Load(path, cfg); err != nil {
				logger.Warn("config watcher: reload failed", slog.String("error", err.Error()))
				continue
			}
			if cfg.App.LogLevel != level.Level() {
				logger.Info("config watcher: log level changed",
					slog.String("from", level.Level().String()),
					slog.String("to", cfg.App.LogLevel.String()))
				level.Set(cfg.App.LogLevel)
			}

		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(path) {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) != 0 {
				scheduleReload()
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return
			}
			logger.Error("config watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}
