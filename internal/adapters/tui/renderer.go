package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Renderer wraps the TUI Bubble Tea model as a ports.Renderer.
type Renderer struct {
	program *tea.Program
	model   *Model
	errCh   chan error
}

// NewRenderer creates a new TUI renderer.
func NewRenderer(model *Model, opts ...tea.ProgramOption) *Renderer {
	program := tea.NewProgram(model, opts...)
	return &Renderer{
		program: program,
		model:   model,
		errCh:   make(chan error, 1),
	}
}

// Start launches the TUI in a background goroutine.
func (r *Renderer) Start(_ context.Context) error {
	go func() {
		_, err := r.program.Run()
		r.errCh <- err
	}()
	return nil
}

// Stop signals the TUI to quit.
func (r *Renderer) Stop() error {
	r.program.Quit()
	return nil
}

// Wait blocks until the TUI has terminated.
func (r *Renderer) Wait() error {
	return <-r.errCh
}

// OnPlan forwards the resolution plan to the TUI.
func (r *Renderer) OnPlan(packages []string) {
	r.program.Send(MsgPlan{Packages: packages})
}

// OnFetchStart forwards fetch start events to the TUI.
func (r *Renderer) OnFetchStart(spanID, name string, startTime time.Time) {
	r.program.Send(MsgFetchStart{
		SpanID:    spanID,
		Name:      name,
		StartTime: startTime,
	})
}

// OnFetchLog forwards fetch progress notes to the TUI.
func (r *Renderer) OnFetchLog(spanID string, data []byte) {
	r.program.Send(MsgFetchLog{
		SpanID: spanID,
		Data:   data,
	})
}

// OnFetchDone forwards fetch completion events to the TUI.
func (r *Renderer) OnFetchDone(spanID string, endTime time.Time, version string, err error) {
	r.program.Send(MsgFetchDone{
		SpanID:  spanID,
		EndTime: endTime,
		Version: version,
		Err:     err,
	})
}

// Program returns the underlying Bubble Tea program.
func (r *Renderer) Program() *tea.Program {
	return r.program
}
