package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// View renders the task list next to the log pane of the selected task.
func (m *Model) View() string {
	if m.Viewport.Height == 0 {
		return "Initializing..."
	}

	body := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.taskList(),
		m.logPane(),
	)
	return lipgloss.JoinVertical(lipgloss.Left, body, m.statusLine())
}

// WrapLog wraps log output to width, breaking long words when needed.
// A non-positive width leaves the text as is.
func WrapLog(s string, width int) string {
	if width <= 0 {
		return s
	}
	return ansi.Wrap(s, width, "")
}

func (m *Model) taskList() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("TASKS") + "\n\n")

	end := len(m.Tasks)
	if m.ListHeight > 0 && m.ListOffset+m.ListHeight < end {
		end = m.ListOffset + m.ListHeight
	}

	for i := m.ListOffset; i < end; i++ {
		task := m.Tasks[i]

		var style lipgloss.Style
		var icon string
		switch task.Status {
		case StatusRunning:
			style = taskRunningStyle
			icon = "●"
		case StatusDone:
			style = taskDoneStyle
			icon = "✓"
		case StatusError:
			style = taskErrorStyle
			icon = "✗"
		default:
			style = taskPendingStyle
			icon = "○"
		}

		line := fmt.Sprintf("%s %s", icon, task.Name)
		if task.Runs > 1 {
			line += fmt.Sprintf(" ×%d", task.Runs)
		}
		if i == m.SelectedIdx {
			line = selectedStyle.Render("> ") + style.Render(line)
		} else {
			line = "  " + style.Render(line)
		}

		s.WriteString(line + "\n")
	}

	return listStyle.Render(s.String())
}

func (m *Model) logPane() string {
	var header string
	switch {
	case m.ActiveTaskName == "":
		header = titleStyle.Render("LOGS (Waiting...)")
	case m.FollowMode:
		header = titleStyle.Render("LOGS: " + m.ActiveTaskName + " (Following)")
	default:
		header = titleStyle.Render("LOGS: " + m.ActiveTaskName + " (Manual)")
	}

	return logStyle.Render(
		lipgloss.JoinVertical(
			lipgloss.Left,
			header,
			m.Viewport.View(),
		),
	)
}

func (m *Model) statusLine() string {
	switch {
	case !m.Finished:
		return hintStyle.Render("↑/↓ select • f follow • q quit")
	case m.Err != nil:
		return taskErrorStyle.Render("Run failed: " + m.Err.Error() + " (press q to exit)")
	default:
		return taskDoneStyle.Render("Run finished (press q to exit)")
	}
}
