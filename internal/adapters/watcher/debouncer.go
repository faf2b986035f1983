// Package watcher implements manifest change watching for the watch command.
package watcher

import (
	"sync"
	"time"
	"unique"

	"go.pindown.dev/pindown/internal/core/ports"
)

// DefaultDebounceWindow is the default time window for coalescing file events.
// Editors that save atomically emit several events per write; one re-run per
// burst is enough.
const DefaultDebounceWindow = 250 * time.Millisecond

// Debouncer coalesces rapid file system events into batched notifications.
// When the same path changes several times inside the window, the latest
// operation wins.
type Debouncer struct {
	mu       sync.Mutex
	pending  map[unique.Handle[string]]ports.WatchOp
	timer    *time.Timer
	window   time.Duration
	callback func(events []ports.WatchEvent)
}

// NewDebouncer creates a new debouncer with the given time window and callback.
func NewDebouncer(window time.Duration, callback func(events []ports.WatchEvent)) *Debouncer {
	return &Debouncer{
		pending:  make(map[unique.Handle[string]]ports.WatchOp),
		window:   window,
		callback: callback,
	}
}

// Add records a file event, restarting the debounce window.
func (d *Debouncer) Add(path string, op ports.WatchOp) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending[unique.Make(path)] = op

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.fire)
}

// fire is called when the debounce window expires.
func (d *Debouncer) fire() {
	d.mu.Lock()

	if len(d.pending) == 0 {
		d.timer = nil
		d.mu.Unlock()
		return
	}

	events := d.drainLocked()
	d.timer = nil
	d.mu.Unlock()

	if d.callback != nil {
		go d.callback(events)
	}
}

// Flush immediately delivers all pending events, blocking until the callback
// completes. Suitable for shutdown paths where work must finish first.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		if !d.timer.Stop() {
			// Timer already fired, let it complete rather than delivering twice.
			d.mu.Unlock()
			return
		}
		d.timer = nil
	}

	events := d.drainLocked()
	d.mu.Unlock()

	if len(events) > 0 && d.callback != nil {
		d.callback(events)
	}
}

func (d *Debouncer) drainLocked() []ports.WatchEvent {
	events := make([]ports.WatchEvent, 0, len(d.pending))
	for handle, op := range d.pending {
		events = append(events, ports.WatchEvent{
			Path:      handle.Value(),
			Operation: op,
		})
	}
	d.pending = make(map[unique.Handle[string]]ports.WatchOp)
	return events
}
