package domain_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/taskscript/internal/core/domain"
)

func names(tasks []*domain.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.FullName()
	}
	return out
}

func TestGraph_AddTask(t *testing.T) {
	g := domain.NewGraph()
	require.NoError(t, g.AddTask(mustTask(t, "Build()")))
	require.NoError(t, g.AddTask(mustTask(t, "Group.Build()")))

	err := g.AddTask(mustTask(t, "Build(int)", domain.Parameter{Name: "n", Type: domain.TypeInt}))
	require.ErrorIs(t, err, domain.ErrTaskAlreadyExists)
	assert.Equal(t, "Build", metadata(t, err)["task_name"])

	assert.Equal(t, 2, g.TaskCount())
}

func TestGraph_Task(t *testing.T) {
	g := domain.NewGraph()
	build := mustTask(t, "Build()")
	require.NoError(t, g.AddTask(build))

	got, err := g.Task("Build")
	require.NoError(t, err)
	assert.Same(t, build, got)

	_, err = g.Task("Missing")
	require.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestGraph_Tasks_InsertionOrder(t *testing.T) {
	g := domain.NewGraph()
	for _, sig := range []string{"Zeta()", "Alpha()", "Mid.Task()"} {
		require.NoError(t, g.AddTask(mustTask(t, sig)))
	}

	assert.Equal(t, []string{"Zeta", "Alpha", "Mid.Task"}, names(slices.Collect(g.Tasks())))

	// Early termination stops iteration.
	count := 0
	for range g.Tasks() {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func TestGraph_Link(t *testing.T) {
	g := domain.NewGraph()
	require.NoError(t, g.AddTask(mustTask(t, "Pack()")))
	require.NoError(t, g.AddTask(mustTask(t, "Test()")))

	require.NoError(t, g.Link("Pack", "Test"))
	pack, err := g.Task("Pack")
	require.NoError(t, err)
	assert.Equal(t, []string{"Test"}, names(pack.Dependencies()))

	t.Run("MissingDependent", func(t *testing.T) {
		err := g.Link("Nope", "Test")
		require.ErrorIs(t, err, domain.ErrTaskNotFound)
	})

	t.Run("MissingDependency", func(t *testing.T) {
		err := g.Link("Pack", "Nope")
		require.ErrorIs(t, err, domain.ErrMissingDependency)
		meta := metadata(t, err)
		assert.Equal(t, "Nope", meta["dependency"])
		assert.Equal(t, "Pack", meta["task_name"])
	})

	t.Run("Cycle", func(t *testing.T) {
		err := g.Link("Test", "Pack")
		require.ErrorIs(t, err, domain.ErrCyclicDependency)
	})

	t.Run("Self", func(t *testing.T) {
		err := g.Link("Pack", "Pack")
		require.ErrorIs(t, err, domain.ErrRecursiveDependency)
	})
}

func TestGraph_Plan(t *testing.T) {
	// Release -> [Pack, Docs]; Pack -> [Test, Compile]; Test -> [Compile]; Docs -> [Compile].
	g := domain.NewGraph()
	for _, sig := range []string{"Release()", "Pack()", "Docs()", "Test()", "Compile()", "Unrelated()"} {
		require.NoError(t, g.AddTask(mustTask(t, sig)))
	}
	require.NoError(t, g.Link("Release", "Pack"))
	require.NoError(t, g.Link("Release", "Docs"))
	require.NoError(t, g.Link("Pack", "Test"))
	require.NoError(t, g.Link("Pack", "Compile"))
	require.NoError(t, g.Link("Test", "Compile"))
	require.NoError(t, g.Link("Docs", "Compile"))

	tests := []struct {
		target   string
		expected []string
	}{
		{"Release", []string{"Compile", "Test", "Pack", "Docs", "Release"}},
		{"Pack", []string{"Compile", "Test", "Pack"}},
		{"Compile", []string{"Compile"}},
		{"Unrelated", []string{"Unrelated"}},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			plan, err := g.Plan(tt.target)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, names(plan))
		})
	}

	_, err := g.Plan("Missing")
	require.ErrorIs(t, err, domain.ErrTaskNotFound)
}
