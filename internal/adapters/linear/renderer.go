// Package linear provides a synchronous, line-buffered renderer for CI
// and other non-interactive environments.
package linear

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"go.pindown.dev/pindown/internal/ui/output"
	"go.pindown.dev/pindown/internal/ui/style"
)

// Renderer implements ports.Renderer for non-interactive runs. It
// prints chronological lines with package name prefixes: progress and
// status go to stderr, fetch output to stdout.
type Renderer struct {
	stdout io.Writer
	stderr io.Writer
	output *termenv.Output

	mu      sync.Mutex
	fetches map[string]*fetchState // spanID -> state
	buffers map[string]*bytes.Buffer
}

type fetchState struct {
	name      string
	startTime time.Time
}

// NewRenderer creates a linear renderer. Nil writers fall back to the
// process streams.
func NewRenderer(stdout, stderr io.Writer) *Renderer {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	return &Renderer{
		stdout:  stdout,
		stderr:  stderr,
		output:  output.NewWithProfile(stderr, output.ColorProfileANSI),
		fetches: make(map[string]*fetchState),
		buffers: make(map[string]*bytes.Buffer),
	}
}

// Start is a no-op; the linear renderer prints synchronously.
func (r *Renderer) Start(_ context.Context) error {
	return nil
}

// Stop flushes all remaining buffers.
func (r *Renderer) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for spanID := range r.buffers {
		r.flushBufferLocked(spanID)
	}

	return nil
}

// Wait is a no-op; there is no render loop to wait for.
func (r *Renderer) Wait() error {
	return nil
}

// OnPlan prints the set of packages about to resolve.
func (r *Renderer) OnPlan(packages []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, _ = fmt.Fprintf(r.stderr, "Resolving %d package(s): %s\n",
		len(packages), strings.Join(packages, ", "))
}

// OnFetchStart prints a fetch start message.
func (r *Renderer) OnFetchStart(spanID, name string, startTime time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.fetches[spanID] = &fetchState{
		name:      name,
		startTime: startTime,
	}
	r.buffers[spanID] = new(bytes.Buffer)

	prefix := r.output.String(fmt.Sprintf("[%s]", name)).Faint().String()
	_, _ = fmt.Fprintf(r.stderr, "%s fetching releases...\n", prefix)
}

// OnFetchLog buffers output and prints complete lines with the package
// prefix.
func (r *Renderer) OnFetchLog(spanID string, data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fetch, ok := r.fetches[spanID]
	if !ok {
		return
	}

	buf := r.buffers[spanID]
	buf.Write(data)

	for {
		line, err := buf.ReadBytes('\n')
		if err != nil {
			// Incomplete line, put it back.
			if len(line) > 0 {
				newBuf := new(bytes.Buffer)
				newBuf.Write(line)
				r.buffers[spanID] = newBuf
			}
			break
		}

		r.printLineLocked(fetch.name, line)
	}
}

// OnFetchDone flushes the remaining buffer and prints the outcome.
func (r *Renderer) OnFetchDone(spanID string, endTime time.Time, version string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fetch, ok := r.fetches[spanID]
	if !ok {
		return
	}

	r.flushBufferLocked(spanID)

	duration := endTime.Sub(fetch.startTime)
	prefix := fmt.Sprintf("[%s]", fetch.name)

	switch {
	case err != nil:
		symbol := r.output.String(style.Cross).Foreground(termenv.ANSIRed).String()
		_, _ = fmt.Fprintf(r.stderr, "%s %s failed after %v: %v\n",
			prefix, symbol, duration, err)
	case version != "":
		symbol := r.output.String(style.Check).Foreground(termenv.ANSIGreen).String()
		_, _ = fmt.Fprintf(r.stderr, "%s %s pinned %s in %v\n",
			prefix, symbol, version, duration)
	default:
		symbol := r.output.String(style.Check).Foreground(termenv.ANSIGreen).String()
		_, _ = fmt.Fprintf(r.stderr, "%s %s done in %v\n",
			prefix, symbol, duration)
	}

	delete(r.fetches, spanID)
	delete(r.buffers, spanID)
}

// flushBufferLocked prints whatever is left in a fetch buffer.
// Must be called with r.mu held.
func (r *Renderer) flushBufferLocked(spanID string) {
	fetch, ok := r.fetches[spanID]
	if !ok {
		return
	}

	buf := r.buffers[spanID]
	if buf.Len() > 0 {
		r.printLineLocked(fetch.name, buf.Bytes())
		buf.Reset()
	}
}

// printLineLocked prints one line with the package name prefix.
// Must be called with r.mu held.
func (r *Renderer) printLineLocked(name string, line []byte) {
	line = bytes.TrimSuffix(line, []byte("\n"))
	line = bytes.TrimSuffix(line, []byte("\r"))

	if len(line) == 0 {
		return
	}

	_, _ = fmt.Fprintf(r.stdout, "[%s] %s\n", name, string(line))
}
