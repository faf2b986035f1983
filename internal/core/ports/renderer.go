package ports

import (
	"context"
	"time"
)

// Renderer is the abstraction for output rendering.
// It decouples resolution progress from presentation logic, allowing
// the same event stream to drive either a rich TUI or linear CI logs.
//
//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// Start initializes the renderer and begins its lifecycle.
	// For asynchronous renderers (like TUI), this may launch background goroutines.
	Start(ctx context.Context) error

	// Stop signals the renderer to stop accepting new events and prepare for shutdown.
	// It should flush any buffered output.
	Stop() error

	// Wait blocks until the renderer has fully terminated.
	// For synchronous renderers, this may return immediately.
	Wait() error

	// OnPlan is called once linting has passed, with the package names
	// to resolve in manifest order.
	OnPlan(packages []string)

	// OnFetchStart is called when a package's release list starts loading.
	// spanID: unique identifier for this fetch
	// name: the package name
	// startTime: when the fetch started
	OnFetchStart(spanID, name string, startTime time.Time)

	// OnFetchLog is called when a fetch emits a progress note, such as
	// a cache hit or the number of releases considered.
	OnFetchLog(spanID string, data []byte)

	// OnFetchDone is called when a package finishes resolving.
	// version: the pinned version, empty on failure
	// err: nil if a version was pinned
	OnFetchDone(spanID string, endTime time.Time, version string, err error)
}
