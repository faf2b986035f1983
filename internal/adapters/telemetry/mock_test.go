package telemetry_test

import (
	"context"
	"sync"
	"time"
)

// recordingRenderer is a simple counting test double for ports.Renderer.
type recordingRenderer struct {
	mu       sync.Mutex
	plans    [][]string
	starts   int
	logs     [][]byte
	dones    int
	versions []string
}

func (r *recordingRenderer) Start(_ context.Context) error { return nil }
func (r *recordingRenderer) Stop() error                   { return nil }
func (r *recordingRenderer) Wait() error                   { return nil }

func (r *recordingRenderer) OnPlan(packages []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plans = append(r.plans, packages)
}

func (r *recordingRenderer) OnFetchStart(_, _ string, _ time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.starts++
}

func (r *recordingRenderer) OnFetchLog(_ string, data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs = append(r.logs, data)
}

func (r *recordingRenderer) OnFetchDone(_ string, _ time.Time, version string, _ error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dones++
	r.versions = append(r.versions, version)
}

func (r *recordingRenderer) planCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.plans)
}

func (r *recordingRenderer) logCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.logs)
}
