package dataset

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// SourceWatcher calls onChange when one of the watched source files is
// written, created, renamed or removed. Bursts of events are debounced.
type SourceWatcher struct {
	watcher  *fsnotify.Watcher
	files    map[string]struct{}
	debounce time.Duration
	onChange func(path string)
}

// NewSourceWatcher watches the directories holding the given local files.
// Remote paths are ignored.
func NewSourceWatcher(paths []string, debounce time.Duration, onChange func(path string)) (*SourceWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	files := make(map[string]struct{})
	dirs := make(map[string]struct{})
	for _, p := range paths {
		if p == "" || IsRemote(p) {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			w.Close()
			return nil, fmt.Errorf("resolve %s: %w", p, err)
		}
		files[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			w.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	return &SourceWatcher{watcher: w, files: files, debounce: debounce, onChange: onChange}, nil
}

// Run blocks until ctx is cancelled or the watcher is closed.
func (w *SourceWatcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	var (
		mu      sync.Mutex
		pending = make(map[string]*time.Timer)
	)
	defer func() {
		mu.Lock()
		for _, t := range pending {
			t.Stop()
		}
		mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			path := event.Name
			mu.Lock()
			if t, exists := pending[path]; exists {
				t.Reset(w.debounce)
			} else {
				pending[path] = time.AfterFunc(w.debounce, func() {
					mu.Lock()
					delete(pending, path)
					mu.Unlock()
					w.onChange(path)
				})
			}
			mu.Unlock()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("[SourceWatcher] watch error: %v", err)
		}
	}
}

func (w *SourceWatcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	_, ok := w.files[abs]
	return ok
}
