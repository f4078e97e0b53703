package tui

import (
	"bytes"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/taskscript/internal/adapters/telemetry"
)

const (
	taskListWidthRatio = 0.3
	logPaneBorderWidth = 4
	logPaneChrome      = 3
)

// TaskStatus represents the current state of a task.
type TaskStatus string

const (
	// StatusPending indicates the task is waiting to start.
	StatusPending TaskStatus = "Pending"
	// StatusRunning indicates the task is currently executing.
	StatusRunning TaskStatus = "Running"
	// StatusDone indicates the task completed successfully.
	StatusDone TaskStatus = "Done"
	// StatusError indicates the task failed.
	StatusError TaskStatus = "Error"
)

// TaskNode represents a single task in the UI list.
type TaskNode struct {
	Name   string
	Status TaskStatus
	Logs   bytes.Buffer
	// Runs counts how many times the task started. Tasks invoked with different arguments run more than once.
	Runs int
}

// Model represents the main TUI state.
type Model struct {
	Tasks   []*TaskNode
	TaskMap map[string]*TaskNode
	SpanMap map[string]*TaskNode

	Viewport       viewport.Model
	ActiveTaskName string

	// ListHeight is the number of task rows that fit on screen; zero shows every task.
	ListHeight  int
	ListOffset  int
	SelectedIdx int

	// FollowMode moves the selection to whichever task started most recently.
	FollowMode bool
	// Inspect keeps the program running after MsgRunFinished.
	Inspect bool

	Finished bool
	Err      error
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages and updates the model state.
//
//nolint:cyclop // one case per message type
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// Split screen: 30% for task list, 70% for logs
		listWidth := int(float64(msg.Width) * taskListWidthRatio)
		m.Viewport.Width = msg.Width - listWidth - logPaneBorderWidth
		m.Viewport.Height = msg.Height - logPaneChrome

		header := titleStyle.Render("TASKS") + "\n\n"
		m.ListHeight = msg.Height - lipgloss.Height(header)
		m.ensureVisible()
		m.refreshViewport()

	case telemetry.MsgInitTasks:
		m.Tasks = make([]*TaskNode, len(msg.Tasks))
		m.TaskMap = make(map[string]*TaskNode, len(msg.Tasks))
		m.SpanMap = make(map[string]*TaskNode)
		for i, name := range msg.Tasks {
			node := &TaskNode{Name: name, Status: StatusPending}
			m.Tasks[i] = node
			m.TaskMap[name] = node
		}
		m.SelectedIdx = 0
		m.ListOffset = 0

	case telemetry.MsgTaskStart:
		m.startTask(msg)

	case telemetry.MsgTaskLog:
		if node, ok := m.SpanMap[msg.SpanID]; ok {
			node.Logs.Write(msg.Data)
			if node.Name == m.ActiveTaskName {
				m.refreshViewport()
			}
		}

	case telemetry.MsgTaskComplete:
		if node, ok := m.SpanMap[msg.SpanID]; ok {
			if msg.Err != nil {
				node.Status = StatusError
			} else {
				node.Status = StatusDone
			}
		}

	case telemetry.MsgRunFinished:
		m.Finished = true
		m.Err = msg.Err
		if !m.Inspect {
			return m, tea.Quit
		}

	default:
		var cmd tea.Cmd
		m.Viewport, cmd = m.Viewport.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.SelectedIdx > 0 {
			m.FollowMode = false
			m.selectTask(m.SelectedIdx - 1)
		}
	case "down", "j":
		if m.SelectedIdx < len(m.Tasks)-1 {
			m.FollowMode = false
			m.selectTask(m.SelectedIdx + 1)
		}
	case "f":
		m.FollowMode = !m.FollowMode
	default:
		var cmd tea.Cmd
		m.Viewport, cmd = m.Viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) startTask(msg telemetry.MsgTaskStart) {
	node, ok := m.TaskMap[msg.Name]
	if !ok {
		return
	}
	node.Status = StatusRunning
	node.Runs++
	m.SpanMap[msg.SpanID] = node

	if !m.FollowMode {
		return
	}
	for i, task := range m.Tasks {
		if task == node {
			m.selectTask(i)
			return
		}
	}
}

func (m *Model) selectTask(idx int) {
	m.SelectedIdx = idx
	m.ActiveTaskName = m.Tasks[idx].Name
	m.ensureVisible()
	m.refreshViewport()
}

// ensureVisible slides the list window so the selected task is on screen.
func (m *Model) ensureVisible() {
	if m.ListHeight <= 0 {
		m.ListOffset = 0
		return
	}
	if m.SelectedIdx < m.ListOffset {
		m.ListOffset = m.SelectedIdx
	}
	if m.SelectedIdx >= m.ListOffset+m.ListHeight {
		m.ListOffset = m.SelectedIdx - m.ListHeight + 1
	}
}

func (m *Model) refreshViewport() {
	node, ok := m.TaskMap[m.ActiveTaskName]
	if !ok {
		return
	}
	m.Viewport.SetContent(WrapLog(node.Logs.String(), m.Viewport.Width))
	m.Viewport.GotoBottom()
}
