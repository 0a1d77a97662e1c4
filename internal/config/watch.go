package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDelay collapses the burst of events an editor save produces.
const reloadDelay = 200 * time.Millisecond

// Watch reloads config.yaml whenever it changes and passes the new
// settings to onChange. A file that fails to load is passed to onError
// and the previous settings stay in effect. Watch blocks until ctx is
// done.
//
// The directory is watched rather than the file so that editors which
// save by rename are still seen.
func Watch(ctx context.Context, configDir string, onChange func(Settings), onError func(error)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create config watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(configDir); err != nil {
		return fmt.Errorf("watch %s: %w", configDir, err)
	}
	target := filepath.Clean(Path(configDir))

	timer := time.NewTimer(reloadDelay)
	timer.Stop()
	defer timer.Stop()

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
			timer.Reset(reloadDelay)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			if onError != nil {
				onError(err)
			}
		case <-timer.C:
			s, err := Load(configDir)
			if err != nil {
				if onError != nil {
					onError(err)
				}
				continue
			}
			onChange(s)
		}
	}
}
