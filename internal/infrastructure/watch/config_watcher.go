package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ConfigWatcher watches a single calendar config file and invokes a reload
// callback when it changes. Holiday edits change every projected completion
// date, so the callback is expected to reseed holidays and drop all cached
// forecasts.
type ConfigWatcher struct {
	watcher    *fsnotify.Watcher
	configPath string
	debounce   time.Duration
	onChange   func()
}

// NewConfigWatcher creates a watcher for the given config file.
func NewConfigWatcher(configPath string, debounce time.Duration, onChange func()) (*ConfigWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if debounce == 0 {
		debounce = 500 * time.Millisecond
	}
	return &ConfigWatcher{
		watcher:    w,
		configPath: filepath.Clean(configPath),
		debounce:   debounce,
		onChange:   onChange,
	}, nil
}

// Run starts the event loop. It blocks until the context is cancelled.
// The containing directory is watched rather than the file itself so
// rename-based atomic saves are still observed.
func (w *ConfigWatcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	if err := w.watcher.Add(filepath.Dir(w.configPath)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(w.configPath), err)
	}

	debouncer := NewDebouncer(w.debounce, func() {
		if w.onChange != nil {
			w.onChange()
		}
	})
	defer debouncer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.configPath {
				continue
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) {
				continue
			}
			debouncer.Trigger()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch error: %w", err)
		}
	}
}
