package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"go.pindown.dev/pindown/internal/ui/style"
)

const nameColumnWidth = 24

// View renders the UI.
func (m *Model) View() string {
	if m.ListHeight == 0 {
		return "Initializing..."
	}

	var s strings.Builder

	s.WriteString(titleStyle.Render("pindown") + "\n\n")

	start := m.ListOffset
	end := m.ListOffset + m.ListHeight
	if end > len(m.Rows) {
		end = len(m.Rows)
	}
	if start > end {
		start = end
	}

	for i := start; i < end; i++ {
		s.WriteString(m.renderRow(i, m.Rows[i]) + "\n")
	}

	s.WriteString("\n" + m.footer())

	return s.String()
}

func (m *Model) renderRow(index int, row *PackageRow) string {
	icon := m.rowIcon(row)
	st := statusStyle(row)

	// Highlight selected row
	var cursor string
	if index == m.SelectedIdx {
		cursor = selectedStyle.Render("> ")
		// If not Pinned/Failed, highlight the text as well
		if row.Status != StatusPinned && row.Status != StatusFailed {
			st = selectedStyle
		}
	} else {
		cursor = "  "
	}

	content := fmt.Sprintf("%s %-*s %s", icon, nameColumnWidth, row.Name, rowDetail(row))
	return cursor + st.Render(content)
}

func (m *Model) rowIcon(row *PackageRow) string {
	switch row.Status {
	case StatusFetching:
		return m.spinner.View()
	case StatusPinned:
		return style.Check
	case StatusFailed:
		return style.Cross
	default: // Pending
		return style.Circle
	}
}

func statusStyle(row *PackageRow) lipgloss.Style {
	switch row.Status {
	case StatusFetching:
		return rowFetchingStyle
	case StatusPinned:
		return rowPinnedStyle
	case StatusFailed:
		return rowFailedStyle
	default: // Pending
		return rowPendingStyle
	}
}

func rowDetail(row *PackageRow) string {
	switch row.Status {
	case StatusFetching:
		if row.Detail != "" {
			return row.Detail
		}
		return "fetching releases..."
	case StatusPinned:
		elapsed := row.Elapsed.Round(time.Millisecond)
		if row.Version == "" {
			return fmt.Sprintf("done in %v", elapsed)
		}
		return fmt.Sprintf("==%s in %v", row.Version, elapsed)
	case StatusFailed:
		if row.Err != nil {
			return row.Err.Error()
		}
		return "failed"
	default: // Pending
		return "waiting"
	}
}

func (m *Model) footer() string {
	var pinned, failed int
	for _, row := range m.Rows {
		switch row.Status {
		case StatusPinned:
			pinned++
		case StatusFailed:
			failed++
		}
	}

	counts := fmt.Sprintf("%d/%d pinned", pinned, len(m.Rows))
	if failed > 0 {
		counts += fmt.Sprintf(", %d failed", failed)
	}

	return hintStyle.Render(counts + "   j/k move   esc follow   q quit")
}
