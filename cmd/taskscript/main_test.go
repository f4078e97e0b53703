package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/taskscript/internal/app"
)

const manifest = `version: "1"
tasks:
  - signature: "Clean()"
    cmd: ["true"]
  - signature: "Build(int)"
    params:
      - {name: count, type: int}
    dependsOn: ["Clean"]
    cmd: ["true"]
  - signature: "Broken()"
    cmd: ["false"]
`

func TestRun(t *testing.T) {
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
	}()

	tests := []struct {
		name         string
		args         []string
		expectedExit int
	}{
		{name: "Run with arguments", args: []string{"taskscript", "run", "Build", "3"}, expectedExit: 0},
		{name: "Run in terminal view", args: []string{"taskscript", "run", "--tui", "Build", "count=3"}, expectedExit: 0},
		{name: "Missing argument", args: []string{"taskscript", "run", "Build"}, expectedExit: 1},
		{name: "Failing command", args: []string{"taskscript", "run", "Broken"}, expectedExit: 1},
		{name: "Unknown task", args: []string{"taskscript", "run", "Deploy"}, expectedExit: 1},
		{name: "List", args: []string{"taskscript", "list"}, expectedExit: 0},
		{name: "Plan", args: []string{"taskscript", "plan", "Build"}, expectedExit: 0},
		{name: "Explicit config", args: []string{"taskscript", "-c", "taskscript.yaml", "plan", "Build"}, expectedExit: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			err := os.WriteFile(filepath.Join(tmpDir, "taskscript.yaml"), []byte(manifest), 0o600)
			require.NoError(t, err)
			t.Chdir(tmpDir)

			os.Args = tt.args
			exitCode := run(headless)
			assert.Equal(t, tt.expectedExit, exitCode)
		})
	}
}

func headless(c *app.Components) {
	c.App.WithTeaOptions(tea.WithInput(nil), tea.WithOutput(io.Discard), tea.WithoutRenderer())
}

func TestRun_ReportsFailure(t *testing.T) {
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
	}()

	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "taskscript.yaml"), []byte(manifest), 0o600))
	t.Chdir(tmpDir)

	var out bytes.Buffer
	os.Args = []string{"taskscript", "run", "Broken"}
	exitCode := run(func(c *app.Components) {
		headless(c)
		c.Logger.SetOutput(&out)
	})

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, out.String(), "level=ERROR")
	assert.Contains(t, out.String(), "task execution failed")
	assert.Contains(t, out.String(), "task=Broken")
}

func TestRun_MissingManifest(t *testing.T) {
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
	}()

	t.Chdir(t.TempDir())
	os.Args = []string{"taskscript", "-c", "nope.yaml", "list"}
	assert.Equal(t, 1, run())
}
