package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/taskscript/cmd/taskscript/commands"
	"go.trai.ch/taskscript/internal/adapters/telemetry"
	"go.trai.ch/taskscript/internal/app"
	"go.trai.ch/taskscript/internal/build"
	"go.trai.ch/taskscript/internal/core/domain"
	"go.trai.ch/taskscript/internal/core/ports/mocks"
	"go.trai.ch/taskscript/internal/engine/scheduler"
	"go.uber.org/mock/gomock"
)

type cliTestMocks struct {
	loader       *mocks.MockConfigLoader
	moduleLoader *mocks.MockModuleLoader
	logger       *mocks.MockLogger
}

func setupCLI(t *testing.T) (*commands.CLI, *bytes.Buffer, cliTestMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := cliTestMocks{
		loader:       mocks.NewMockConfigLoader(ctrl),
		moduleLoader: mocks.NewMockModuleLoader(ctrl),
		logger:       mocks.NewMockLogger(ctrl),
	}
	m.logger.EXPECT().Debug(gomock.Any()).AnyTimes()

	sched := scheduler.NewScheduler(telemetry.NewNoOpTracer(), m.logger)
	a := app.New(m.loader, m.moduleLoader, sched, m.logger)

	cli := commands.New(a, m.logger)
	var out bytes.Buffer
	cli.SetOut(&out)
	return cli, &out, m
}

func script() *domain.Script {
	scopes := []domain.Scope{{Name: domain.DefaultRootContainer, Accessibility: domain.AccessPublic, IsStatic: true}}
	summary := "<summary>Builds everything.</summary>"
	return &domain.Script{
		Root: domain.DefaultRootContainer,
		Candidates: []domain.Candidate{
			{
				Accessibility: domain.AccessPublic, IsStatic: true, ReturnsVoid: true,
				Scopes: scopes, Signature: "Clean()",
			},
			{
				Accessibility: domain.AccessPublic, IsStatic: true, ReturnsVoid: true,
				Scopes: scopes, Signature: "Build(int)", Documentation: &summary,
				Parameters: []domain.Parameter{{Name: "count", Type: domain.TypeInt}},
			},
		},
		Edges: []domain.Edge{{Dependent: "Build", Dependency: "Clean"}},
	}
}

// argsModule records the arguments of every call.
type argsModule struct {
	calls [][]domain.TaskArgument
}

func (m *argsModule) EntryPoint(_, _ string) (domain.Callable, error) {
	return domain.CallableFunc(func(_ context.Context, args []domain.TaskArgument) error {
		m.calls = append(m.calls, args)
		return nil
	}), nil
}

func TestRun_Success(t *testing.T) {
	cli, _, m := setupCLI(t)
	s := script()
	module := &argsModule{}

	m.loader.EXPECT().Load("manifest.yaml").Return(s, nil)
	m.moduleLoader.EXPECT().Load(gomock.Any(), s).Return(module, nil)

	cli.SetArgs([]string{"-c", "manifest.yaml", "run", "Build", "-5"})
	require.NoError(t, cli.Execute(context.Background()))

	require.Len(t, module.calls, 2)
	assert.Empty(t, module.calls[0])
	assert.Equal(t, []domain.TaskArgument{domain.Positional(domain.IntValue(-5))}, module.calls[1],
		"arguments after the target are not parsed as flags")
}

func TestRun_NoTargets(t *testing.T) {
	cli, _, _ := setupCLI(t)
	cli.SetArgs([]string{"run"})
	assert.NoError(t, cli.Execute(context.Background()))
}

func TestRun_Failure(t *testing.T) {
	cli, _, m := setupCLI(t)
	loadErr := errors.New("manifest not found")
	m.loader.EXPECT().Load("").Return(nil, loadErr)

	cli.SetArgs([]string{"run", "Build", "1"})
	err := cli.Execute(context.Background())
	require.ErrorIs(t, err, loadErr)
}

func TestVerboseFlag(t *testing.T) {
	cli, _, m := setupCLI(t)
	m.logger.EXPECT().SetLevel(domain.LogLevelDebug)
	m.loader.EXPECT().Load("").Return(script(), nil)

	cli.SetArgs([]string{"--verbose", "plan", "Clean"})
	require.NoError(t, cli.Execute(context.Background()))
}

func TestList(t *testing.T) {
	cli, out, m := setupCLI(t)
	m.loader.EXPECT().Load("").Return(script(), nil)

	cli.SetArgs([]string{"list"})
	require.NoError(t, cli.Execute(context.Background()))

	lines := bytes.Split(bytes.TrimSpace(out.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	assert.Contains(t, string(lines[0]), "* Build")
	assert.Contains(t, string(lines[0]), "Build(int)")
	assert.Contains(t, string(lines[0]), "Builds everything.")
	assert.Contains(t, string(lines[1]), "Clean()")
	assert.NotContains(t, string(lines[1]), "*")
}

func TestPlan(t *testing.T) {
	cli, out, m := setupCLI(t)
	m.loader.EXPECT().Load("").Return(script(), nil)

	cli.SetArgs([]string{"plan", "Build"})
	require.NoError(t, cli.Execute(context.Background()))
	assert.Equal(t, "1. Clean\n2. Build\n", out.String())
}

func TestPlan_RequiresTarget(t *testing.T) {
	cli, _, _ := setupCLI(t)
	cli.SetArgs([]string{"plan"})
	require.Error(t, cli.Execute(context.Background()))
}

func TestVersion(t *testing.T) {
	cli, out, _ := setupCLI(t)
	cli.SetArgs([]string{"version"})
	require.NoError(t, cli.Execute(context.Background()))
	assert.Equal(t, "taskscript version "+build.Version+"\n", out.String())
}

func TestRoot_Help(t *testing.T) {
	cli, out, _ := setupCLI(t)
	cli.SetArgs([]string{"--help"})
	require.NoError(t, cli.Execute(context.Background()))
	assert.Contains(t, out.String(), "run")
	assert.Contains(t, out.String(), "plan")
}
