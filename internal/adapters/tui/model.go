package tui

import (
	"bytes"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// chromeHeight is the number of lines taken by the title bar and footer.
const chromeHeight = 4

// PackageStatus represents the current state of a package in the UI list.
type PackageStatus string

const (
	// StatusPending indicates the package is waiting for a worker slot.
	StatusPending PackageStatus = "Pending"
	// StatusFetching indicates releases are being fetched and filtered.
	StatusFetching PackageStatus = "Fetching"
	// StatusPinned indicates a version satisfying the constraint was chosen.
	StatusPinned PackageStatus = "Pinned"
	// StatusFailed indicates resolution failed for the package.
	StatusFailed PackageStatus = "Failed"
)

// PackageRow represents a single package in the UI list.
type PackageRow struct {
	Name      string
	Status    PackageStatus
	Version   string
	Detail    string
	Err       error
	StartTime time.Time
	Elapsed   time.Duration

	partial []byte
}

// consumeLog folds streamed fetch output into the row, keeping the most
// recent complete line as the detail and buffering any trailing partial.
func (r *PackageRow) consumeLog(data []byte) {
	r.partial = append(r.partial, data...)
	for {
		idx := bytes.IndexByte(r.partial, '\n')
		if idx < 0 {
			return
		}
		line := bytes.TrimRight(r.partial[:idx], "\r")
		if len(line) > 0 {
			r.Detail = string(line)
		}
		r.partial = r.partial[idx+1:]
	}
}

// Model represents the main TUI state.
type Model struct {
	Rows        []*PackageRow
	RowMap      map[string]*PackageRow
	SpanMap     map[string]*PackageRow
	SelectedIdx int
	ListOffset  int
	ListHeight  int
	Width       int
	FollowMode  bool

	spinner     spinner.Model
	disableTick bool
}

// Init starts the spinner tick loop.
func (m *Model) Init() tea.Cmd {
	if m.disableTick {
		return nil
	}
	return m.spinner.Tick
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case spinner.TickMsg:
		return m.handleTick(msg)
	case MsgPlan:
		return m.handlePlan(msg)
	case MsgFetchStart:
		return m.handleFetchStart(msg)
	case MsgFetchLog:
		return m.handleFetchLog(msg)
	case MsgFetchDone:
		return m.handleFetchDone(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "k", "up":
		if m.SelectedIdx > 0 {
			m.SelectedIdx--
			m.FollowMode = false
			m.ensureVisible()
		}
	case "j", "down":
		if m.SelectedIdx < len(m.Rows)-1 {
			m.SelectedIdx++
			m.FollowMode = false
			m.ensureVisible()
		}
	case "esc":
		m.FollowMode = true
		m.followSelect()
	}
	return m, nil
}

func (m *Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.Width = msg.Width
	m.ListHeight = msg.Height - chromeHeight
	if m.ListHeight < 1 {
		m.ListHeight = 1
	}
	m.ensureVisible()
	return m, nil
}

func (m *Model) handleTick(msg spinner.TickMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func (m *Model) handlePlan(msg MsgPlan) (tea.Model, tea.Cmd) {
	m.Rows = make([]*PackageRow, 0, len(msg.Packages))
	m.RowMap = make(map[string]*PackageRow, len(msg.Packages))
	m.SpanMap = make(map[string]*PackageRow)

	for _, name := range msg.Packages {
		if _, ok := m.RowMap[name]; ok {
			continue
		}
		row := &PackageRow{Name: name, Status: StatusPending}
		m.Rows = append(m.Rows, row)
		m.RowMap[name] = row
	}

	m.SelectedIdx = 0
	m.ListOffset = 0
	return m, nil
}

func (m *Model) handleFetchStart(msg MsgFetchStart) (tea.Model, tea.Cmd) {
	row, ok := m.RowMap[msg.Name]
	if !ok {
		// Spans outside the plan, such as the resolve root, have no row.
		return m, nil
	}

	row.Status = StatusFetching
	row.StartTime = msg.StartTime
	m.SpanMap[msg.SpanID] = row

	if m.FollowMode {
		m.followSelect()
	}
	return m, nil
}

func (m *Model) handleFetchLog(msg MsgFetchLog) (tea.Model, tea.Cmd) {
	if row, ok := m.SpanMap[msg.SpanID]; ok {
		row.consumeLog(msg.Data)
	}
	return m, nil
}

func (m *Model) handleFetchDone(msg MsgFetchDone) (tea.Model, tea.Cmd) {
	row, ok := m.SpanMap[msg.SpanID]
	if !ok {
		return m, nil
	}
	delete(m.SpanMap, msg.SpanID)

	row.Elapsed = msg.EndTime.Sub(row.StartTime)
	if msg.Err != nil {
		row.Status = StatusFailed
		row.Err = msg.Err
	} else {
		row.Status = StatusPinned
		row.Version = msg.Version
	}

	if m.FollowMode {
		m.followSelect()
	}
	return m, nil
}

// followSelect keeps the cursor on the first in-flight fetch.
func (m *Model) followSelect() {
	for i, row := range m.Rows {
		if row.Status == StatusFetching {
			m.SelectedIdx = i
			m.ensureVisible()
			return
		}
	}
}

func (m *Model) ensureVisible() {
	if m.ListHeight <= 0 {
		return
	}
	if m.SelectedIdx < m.ListOffset {
		m.ListOffset = m.SelectedIdx
	} else if m.SelectedIdx >= m.ListOffset+m.ListHeight {
		m.ListOffset = m.SelectedIdx - m.ListHeight + 1
	}
}
