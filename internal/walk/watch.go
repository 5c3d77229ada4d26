package walk

import (
	"github.com/fsnotify/fsnotify"

	"github.com/standardbeagle/gscan/internal/debug"
)

// WatchIterator re-emits a file's absolute path on Changes whenever it
// is written to. It backs the CLI's convenience --watch flag; the core
// scan pipeline (C1-C8) never depends on it and runs a complete, finite
// scan whether or not watch mode is active.
type WatchIterator struct {
	watcher *fsnotify.Watcher
	Changes chan string
}

// NewWatchIterator starts watching every directory in dirs for write
// events.
func NewWatchIterator(dirs []string) (*WatchIterator, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, d := range dirs {
		if err := w.Add(d); err != nil {
			debug.LogOrchestrator("watch: failed to add %s: %v", d, err)
		}
	}

	wi := &WatchIterator{watcher: w, Changes: make(chan string, 64)}
	go wi.run()
	return wi, nil
}

func (wi *WatchIterator) run() {
	defer close(wi.Changes)
	for {
		select {
		case ev, ok := <-wi.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				wi.Changes <- ev.Name
			}
		case err, ok := <-wi.watcher.Errors:
			if !ok {
				return
			}
			debug.LogOrchestrator("watch error: %v", err)
		}
	}
}

// Close stops watching and releases the underlying handle.
func (wi *WatchIterator) Close() error {
	return wi.watcher.Close()
}
