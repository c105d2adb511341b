package config

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// WatchFile watches the directory containing path and invokes onChange
// once per write/create/rename event that targets path itself. Editors
// and deploy tooling commonly replace a config file atomically (write a
// temp file, rename over the original), which shows up as a Rename/
// Create on the directory rather than a Write on the file itself, so
// the whole directory is watched rather than the single path.
//
// keyrxd has no in-process config-reload path (the engine's compiled
// profile and capacities are fixed for the process's lifetime), so
// onChange is expected to trigger a restart rather than a live reload;
// see cmd/keyrxd/commands/start.go's --watch-config handling.
func WatchFile(path string, onChange func()) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create config file watcher: %w", err)
	}

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch config directory %q: %w", dir, err)
	}

	target := filepath.Clean(path)
	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
					onChange()
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return watcher, nil
}
