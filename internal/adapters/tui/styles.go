package tui

import (
	"github.com/charmbracelet/lipgloss"
	"go.pindown.dev/pindown/internal/ui/style"
)

var (
	rowPendingStyle = lipgloss.NewStyle().
			Foreground(style.Slate)

	rowFetchingStyle = lipgloss.NewStyle().
				Foreground(style.Teal).
				Bold(true)

	rowPinnedStyle = lipgloss.NewStyle().
			Foreground(style.Green)

	rowFailedStyle = lipgloss.NewStyle().
			Foreground(style.Red)

	selectedStyle = lipgloss.NewStyle().
			Foreground(style.Teal).
			Bold(true)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Background(style.Teal).
			Foreground(style.White)

	hintStyle = lipgloss.NewStyle().
			Foreground(style.Slate).
			Faint(true)
)
