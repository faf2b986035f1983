// Package tui renders resolution progress as an interactive terminal list.
package tui

import (
	"io"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"

	"go.pindown.dev/pindown/internal/ui/output"
	"go.pindown.dev/pindown/internal/ui/style"
)

// NewModel creates a new TUI model with default settings.
func NewModel(w io.Writer) *Model {
	if w == nil {
		w = os.Stderr
	}

	out := output.New(w)
	lipgloss.SetColorProfile(out.Profile)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(style.Teal)

	return &Model{
		Rows:       make([]*PackageRow, 0),
		RowMap:     make(map[string]*PackageRow),
		SpanMap:    make(map[string]*PackageRow),
		FollowMode: true,
		spinner:    s,
	}
}

// WithDisableTick disables the spinner tick loop so tests can drive the
// model deterministically.
func (m *Model) WithDisableTick() *Model {
	m.disableTick = true
	return m
}
