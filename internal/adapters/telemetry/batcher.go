// Package telemetry bridges OpenTelemetry spans to the renderer that
// drives terminal output.
package telemetry

import (
	"bytes"
	"errors"
	"sync"
	"time"
)

const (
	// DefaultBatchBytes is the buffer size that forces a flush when no
	// limit is given.
	DefaultBatchBytes = 4096
	// DefaultBatchInterval is the flush interval when none is given.
	DefaultBatchInterval = 50 * time.Millisecond
)

// Batcher buffers span output until a byte limit or time limit is
// reached, so per-fetch progress notes reach the renderer in chunks
// instead of one event per write. It is safe for concurrent use.
type Batcher struct {
	maxBytes int
	interval time.Duration
	onFlush  func([]byte)

	mu     sync.Mutex
	buffer *bytes.Buffer
	ticker *time.Ticker
	stopCh chan struct{}
	closed bool
}

// NewBatcher returns a running Batcher. Zero or negative limits fall
// back to the defaults. Call Close to stop the background ticker.
func NewBatcher(maxBytes int, interval time.Duration, onFlush func([]byte)) *Batcher {
	if maxBytes <= 0 {
		maxBytes = DefaultBatchBytes
	}
	if interval <= 0 {
		interval = DefaultBatchInterval
	}

	b := &Batcher{
		maxBytes: maxBytes,
		interval: interval,
		onFlush:  onFlush,
		buffer:   new(bytes.Buffer),
		stopCh:   make(chan struct{}),
	}

	b.ticker = time.NewTicker(interval)
	go b.run()

	return b
}

// Write appends p to the buffer and flushes once the byte limit is
// reached.
func (b *Batcher) Write(p []byte) (n int, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return 0, errors.New("batcher is closed")
	}

	n, err = b.buffer.Write(p)
	if err != nil {
		return n, err
	}

	if b.buffer.Len() >= b.maxBytes {
		b.flushLocked()
		// A size-triggered flush restarts the clock.
		b.ticker.Reset(b.interval)
	}

	return n, nil
}

// Flush hands any buffered bytes to the callback.
func (b *Batcher) Flush() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.flushLocked()
}

// Close stops the ticker and performs a final flush. Writes after
// Close fail.
func (b *Batcher) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}

	b.closed = true
	close(b.stopCh)
	b.flushLocked()
	return nil
}

func (b *Batcher) run() {
	for {
		select {
		case <-b.ticker.C:
			b.Flush()
		case <-b.stopCh:
			b.ticker.Stop()
			return
		}
	}
}

// flushLocked must be called with mu held. The callback runs under the
// lock to keep chunks ordered, so it has to be fast.
func (b *Batcher) flushLocked() {
	if b.buffer.Len() == 0 {
		return
	}

	data := make([]byte, b.buffer.Len())
	copy(data, b.buffer.Bytes())
	b.buffer.Reset()

	if b.onFlush != nil {
		b.onFlush(data)
	}
}
