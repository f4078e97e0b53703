package tui_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/taskscript/internal/adapters/tui"
)

func TestNewModel(t *testing.T) {
	m := tui.NewModel(false)

	assert.NotNil(t, m.Tasks)
	assert.Empty(t, m.Tasks)
	assert.NotNil(t, m.TaskMap)
	assert.Empty(t, m.TaskMap)
	assert.NotNil(t, m.SpanMap)
	assert.Empty(t, m.SpanMap)
	assert.True(t, m.FollowMode, "FollowMode should be true by default")
	assert.False(t, m.Inspect)
	assert.Nil(t, m.Init())

	assert.True(t, tui.NewModel(true).Inspect)
}
