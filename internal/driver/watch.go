package driver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
)

const DefaultDebounce = 150 * time.Millisecond

// Watcher reports batches of changed source files under a set of roots.
// Directories created while watching are picked up automatically.
type Watcher struct {
	fsw      *fsnotify.Watcher
	filter   *SourceFilter
	debounce time.Duration
	// OnError receives watcher errors; nil drops them.
	OnError func(error)
}

// NewWatcher watches roots recursively, skipping the same directories as
// ListSources. debounce <= 0 selects DefaultDebounce.
func NewWatcher(roots []string, filter *SourceFilter, debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	w := &Watcher{fsw: fsw, filter: filter, debounce: debounce}
	for _, root := range roots {
		if err := w.addTree(root); err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

func (w *Watcher) addTree(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return w.fsw.Add(root)
	}
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && skipDir(d.Name()) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

// WatchList returns the watched paths, sorted.
func (w *Watcher) WatchList() []string {
	list := w.fsw.WatchList()
	slices.Sort(list)
	return list
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return false
	}
	if !IsSource(ev.Name) || w.filter.Excluded(ev.Name) {
		return false
	}
	return !skipDir(filepath.Base(ev.Name))
}

// Run blocks until ctx is done or the watcher is closed, calling onChange
// with the sorted, deduplicated set of changed files after each quiet
// period. onChange runs on the Run goroutine.
func (w *Watcher) Run(ctx context.Context, onChange func([]string)) error {
	pending := make(map[string]struct{})
	timer := time.NewTimer(w.debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() && !skipDir(filepath.Base(ev.Name)) {
					if err := w.addTree(ev.Name); err != nil {
						w.report(err)
					}
					continue
				}
			}
			if !w.relevant(ev) {
				continue
			}
			pending[ev.Name] = struct{}{}
			timer.Reset(w.debounce)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			batch := make([]string, 0, len(pending))
			for p := range pending {
				batch = append(batch, p)
			}
			clear(pending)
			slices.Sort(batch)
			onChange(batch)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.report(err)
		}
	}
}

func (w *Watcher) report(err error) {
	if w.OnError != nil && !errors.Is(err, fsnotify.ErrClosed) {
		w.OnError(err)
	}
}

func (w *Watcher) Close() error {
	return w.fsw.Close()
}
