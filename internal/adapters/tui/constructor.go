// Package tui renders a running task graph as an interactive terminal view.
package tui

import "github.com/charmbracelet/bubbles/viewport"

// NewModel creates a new TUI model with default settings.
// When inspect is set the view stays open after the run finishes until the user quits.
func NewModel(inspect bool) *Model {
	return &Model{
		Tasks:      make([]*TaskNode, 0),
		TaskMap:    make(map[string]*TaskNode),
		SpanMap:    make(map[string]*TaskNode),
		Viewport:   viewport.New(0, 0),
		FollowMode: true,
		Inspect:    inspect,
	}
}
