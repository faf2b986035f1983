package watcher

import (
	"context"
	"fmt"
	"iter"
	"path/filepath"
	"sync"
	"time"
	"unique"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/zerr"

	"go.pindown.dev/pindown/internal/core/domain"
	"go.pindown.dev/pindown/internal/core/ports"
)

var _ ports.Watcher = (*Watcher)(nil)

const eventChannelBuffer = 16

// Watcher implements manifest watching using fsnotify. It watches the
// manifest's directory rather than the file itself, because editors
// replace files via rename on save, which would drop an inode watch.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	logger    ports.Logger
	window    time.Duration
	target    unique.Handle[string]
	debouncer *Debouncer
	events    chan ports.WatchEvent
	stopCh    chan struct{}
	stopOnce  sync.Once
}

// NewWatcher creates a new manifest watcher.
func NewWatcher(logger ports.Logger) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrWatchFailed.Error())
	}
	return &Watcher{
		fsWatcher: fsWatcher,
		logger:    logger,
		window:    DefaultDebounceWindow,
		events:    make(chan ports.WatchEvent, eventChannelBuffer),
		stopCh:    make(chan struct{}),
	}, nil
}

// WithWindow overrides the debounce window.
func (w *Watcher) WithWindow(window time.Duration) *Watcher {
	w.window = window
	return w
}

// Start begins watching the directory containing the given file.
func (w *Watcher) Start(ctx context.Context, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrWatchFailed.Error()), "path", path)
	}
	w.target = unique.Make(filepath.Clean(abs))

	dir := filepath.Dir(abs)
	if err := w.fsWatcher.Add(dir); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrWatchFailed.Error()), "dir", dir)
	}

	w.debouncer = NewDebouncer(w.window, func(events []ports.WatchEvent) {
		for _, event := range events {
			select {
			case w.events <- event:
			case <-w.stopCh:
				return
			}
		}
	})

	go w.processEvents(ctx)

	w.logger.Debug(fmt.Sprintf("watching %s", abs))
	return nil
}

// Stop stops the watcher and releases all resources.
func (w *Watcher) Stop() error {
	w.stopOnce.Do(func() { close(w.stopCh) })
	return w.fsWatcher.Close()
}

// Events returns an iterator of debounced manifest events. The iterator
// ends when the watcher is stopped.
func (w *Watcher) Events() iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for {
			select {
			case <-w.stopCh:
				return
			case event := <-w.events:
				if !yield(event) {
					return
				}
			}
		}
	}
}

// processEvents filters raw fsnotify events down to the watched manifest
// and feeds them through the debouncer.
func (w *Watcher) processEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.target.Value() {
				continue
			}
			op, ok := convertOp(event.Op)
			if !ok {
				continue
			}
			w.debouncer.Add(event.Name, op)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn(fmt.Sprintf("file watcher error: %v", err))
		}
	}
}

// convertOp maps an fsnotify operation to a ports.WatchOp. Chmod events
// carry no content change and are dropped.
func convertOp(op fsnotify.Op) (ports.WatchOp, bool) {
	switch {
	case op.Has(fsnotify.Write):
		return ports.OpWrite, true
	case op.Has(fsnotify.Create):
		return ports.OpCreate, true
	case op.Has(fsnotify.Remove):
		return ports.OpRemove, true
	case op.Has(fsnotify.Rename):
		return ports.OpRename, true
	default:
		return 0, false
	}
}
