package assets

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the manifest from path whenever the file is written or
// recreated, until ctx is done. onReload, if non-nil, is called after each
// reload with its error. A manifest that fails to parse leaves the current
// entries in place.
func (m *Manifest) Watch(ctx context.Context, path string, onReload func(error)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("assets: watch: %w", err)
	}
	defer w.Close()

	// Watch the directory so editors that replace the file are seen.
	dir := filepath.Dir(path)
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("assets: watch %s: %w", dir, err)
	}
	target := filepath.Clean(path)
	logger := slog.Default().With("component", "assets")

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			err := m.reload(path)
			if err != nil {
				logger.Warn("manifest reload failed", "path", path, "error", err)
			} else {
				logger.Info("manifest reloaded", "path", path, "version", m.Version())
			}
			if onReload != nil {
				onReload(err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("manifest watcher error", "error", err)
		}
	}
}

func (m *Manifest) reload(path string) error {
	next, err := Load(path)
	if err != nil {
		return err
	}
	m.Replace(next.All())
	return nil
}
