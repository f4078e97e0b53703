package app_test

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/taskscript/internal/adapters/telemetry"
	"go.trai.ch/taskscript/internal/app"
	"go.trai.ch/taskscript/internal/core/domain"
	"go.trai.ch/taskscript/internal/core/ports/mocks"
	"go.trai.ch/taskscript/internal/engine/scheduler"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

const configPath = "taskscript.yaml"

func candidate(signature, doc string, params ...domain.Parameter) domain.Candidate {
	c := domain.Candidate{
		Accessibility: domain.AccessPublic,
		IsStatic:      true,
		ReturnsVoid:   true,
		Parameters:    params,
		Scopes:        []domain.Scope{{Name: domain.DefaultRootContainer, Accessibility: domain.AccessPublic, IsStatic: true}},
		Signature:     signature,
	}
	if doc != "" {
		c.Documentation = &doc
	}
	return c
}

func sampleScript() *domain.Script {
	return &domain.Script{
		Root:   domain.DefaultRootContainer,
		Digest: "sha256:test",
		Candidates: []domain.Candidate{
			candidate("Test()", ""),
			candidate("Build(int)", "<summary>Compiles it.</summary>", domain.Parameter{Name: "count", Type: domain.TypeInt}),
			candidate("Clean()", "<summary>Removes output.</summary>"),
		},
		Edges: []domain.Edge{
			{Dependent: "Build", Dependency: "Clean"},
			{Dependent: "Test", Dependency: "Clean"},
		},
	}
}

// recordingModule binds every entry point to a callable that records its calls.
type recordingModule struct {
	mu    sync.Mutex
	calls []string
	fail  map[string]error
}

func (m *recordingModule) EntryPoint(_, name string) (domain.Callable, error) {
	return domain.CallableFunc(func(_ context.Context, args []domain.TaskArgument) error {
		m.mu.Lock()
		defer m.mu.Unlock()
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = a.String()
		}
		m.calls = append(m.calls, name+"("+strings.Join(parts, ",")+")")
		return m.fail[name]
	}), nil
}

type appTestMocks struct {
	loader       *mocks.MockConfigLoader
	moduleLoader *mocks.MockModuleLoader
	logger       *mocks.MockLogger
}

func setupApp(t *testing.T) (*app.App, appTestMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := appTestMocks{
		loader:       mocks.NewMockConfigLoader(ctrl),
		moduleLoader: mocks.NewMockModuleLoader(ctrl),
		logger:       mocks.NewMockLogger(ctrl),
	}
	m.logger.EXPECT().Debug(gomock.Any()).AnyTimes()

	sched := scheduler.NewScheduler(telemetry.NewNoOpTracer(), m.logger)
	return app.New(m.loader, m.moduleLoader, sched, m.logger), m
}

func TestApp_Run(t *testing.T) {
	a, m := setupApp(t)
	script := sampleScript()
	module := &recordingModule{}

	m.loader.EXPECT().Load(configPath).Return(script, nil)
	m.moduleLoader.EXPECT().Load(gomock.Any(), script).Return(module, nil)

	err := a.Run(context.Background(), configPath, "Build", []string{"count=3"}, app.RunOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Clean()", "Build(count=3)"}, module.calls)
}

func TestApp_Run_NoTarget(t *testing.T) {
	a, _ := setupApp(t)
	err := a.Run(context.Background(), configPath, "", nil, app.RunOptions{})
	require.ErrorIs(t, err, domain.ErrNoTargetsSpecified)
}

func TestApp_Run_LoadError(t *testing.T) {
	a, m := setupApp(t)
	loadErr := errors.New("no manifest")
	m.loader.EXPECT().Load(configPath).Return(nil, loadErr)

	err := a.Run(context.Background(), configPath, "Build", nil, app.RunOptions{})
	require.ErrorIs(t, err, loadErr)
	assert.Contains(t, err.Error(), "failed to load configuration")
}

func TestApp_Run_InvalidCandidate(t *testing.T) {
	a, m := setupApp(t)
	script := sampleScript()
	script.Candidates[0].IsStatic = false
	m.loader.EXPECT().Load(configPath).Return(script, nil)

	err := a.Run(context.Background(), configPath, "Build", nil, app.RunOptions{})
	require.ErrorIs(t, err, domain.ErrSignatureViolation)
}

func TestApp_Run_Cycle(t *testing.T) {
	a, m := setupApp(t)
	script := sampleScript()
	script.Edges = append(script.Edges, domain.Edge{Dependent: "Clean", Dependency: "Build"})
	m.loader.EXPECT().Load(configPath).Return(script, nil)

	err := a.Run(context.Background(), configPath, "Build", nil, app.RunOptions{})
	require.ErrorIs(t, err, domain.ErrCyclicDependency)
}

func TestApp_Run_BindError(t *testing.T) {
	a, m := setupApp(t)
	script := sampleScript()
	m.loader.EXPECT().Load(configPath).Return(script, nil)

	m.moduleLoader.EXPECT().Load(gomock.Any(), script).Return(missingModule{}, nil)

	err := a.Run(context.Background(), configPath, "Build", nil, app.RunOptions{})
	require.ErrorIs(t, err, domain.ErrEntryPointNotFound)

	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	assert.Equal(t, "Test", zErr.Metadata()["task"])
}

type missingModule struct{}

func (missingModule) EntryPoint(declaringType, name string) (domain.Callable, error) {
	return nil, zerr.With(zerr.Wrap(domain.ErrEntryPointNotFound, "no such entry point"), "type", declaringType+"."+name)
}

func TestApp_Run_ModuleLoadError(t *testing.T) {
	a, m := setupApp(t)
	script := sampleScript()
	loadErr := errors.New("working directory is not accessible")
	m.loader.EXPECT().Load(configPath).Return(script, nil)
	m.moduleLoader.EXPECT().Load(gomock.Any(), script).Return(nil, loadErr)

	err := a.Run(context.Background(), configPath, "Build", nil, app.RunOptions{})
	require.ErrorIs(t, err, loadErr)
}

func TestApp_Run_TaskFailure(t *testing.T) {
	a, m := setupApp(t)
	script := sampleScript()
	boom := errors.New("exit status 2")
	module := &recordingModule{fail: map[string]error{"Clean": boom}}

	m.loader.EXPECT().Load(configPath).Return(script, nil)
	m.moduleLoader.EXPECT().Load(gomock.Any(), script).Return(module, nil)

	err := a.Run(context.Background(), configPath, "Build", []string{"1"}, app.RunOptions{})
	require.ErrorIs(t, err, domain.ErrTaskExecutionFailed)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"Clean()"}, module.calls)
}

func headlessOptions() []tea.ProgramOption {
	return []tea.ProgramOption{
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
		tea.WithoutRenderer(),
		tea.WithoutSignalHandler(),
	}
}

func TestApp_Run_TUI(t *testing.T) {
	a, m := setupApp(t)
	a.WithTeaOptions(headlessOptions()...)
	script := sampleScript()
	module := &recordingModule{}

	m.loader.EXPECT().Load(configPath).Return(script, nil)
	m.moduleLoader.EXPECT().Load(gomock.Any(), script).Return(module, nil)
	gomock.InOrder(
		m.logger.EXPECT().SetOutput(io.Discard),
		m.logger.EXPECT().SetOutput(os.Stderr),
	)

	err := a.Run(context.Background(), configPath, "Test", nil, app.RunOptions{TUI: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"Clean()", "Test()"}, module.calls)
}

func TestApp_Run_TUIFailure(t *testing.T) {
	a, m := setupApp(t)
	a.WithTeaOptions(headlessOptions()...)
	script := sampleScript()
	boom := errors.New("exit status 1")
	module := &recordingModule{fail: map[string]error{"Test": boom}}

	m.loader.EXPECT().Load(configPath).Return(script, nil)
	m.moduleLoader.EXPECT().Load(gomock.Any(), script).Return(module, nil)
	m.logger.EXPECT().SetOutput(gomock.Any()).Times(2)

	err := a.Run(context.Background(), configPath, "Test", nil, app.RunOptions{TUI: true})
	require.ErrorIs(t, err, domain.ErrTaskExecutionFailed)
	require.ErrorIs(t, err, boom)
}

func TestApp_List(t *testing.T) {
	a, m := setupApp(t)
	m.loader.EXPECT().Load(configPath).Return(sampleScript(), nil)

	infos, err := a.List(context.Background(), configPath)
	require.NoError(t, err)

	assert.Equal(t, []app.TaskInfo{
		{Name: "Build", Signature: "Build(int)", Summary: "Compiles it.", RequiresArguments: true},
		{Name: "Clean", Signature: "Clean()", Summary: "Removes output."},
		{Name: "Test", Signature: "Test()"},
	}, infos)
}

func TestApp_Plan(t *testing.T) {
	a, m := setupApp(t)
	m.loader.EXPECT().Load(configPath).Return(sampleScript(), nil)

	plan, err := a.Plan(context.Background(), configPath, "Build")
	require.NoError(t, err)
	assert.Equal(t, []string{"Clean", "Build"}, plan)

	_, err = a.Plan(context.Background(), configPath, "")
	require.ErrorIs(t, err, domain.ErrNoTargetsSpecified)
}

func TestApp_Plan_UnknownTarget(t *testing.T) {
	a, m := setupApp(t)
	m.loader.EXPECT().Load(configPath).Return(sampleScript(), nil)

	_, err := a.Plan(context.Background(), configPath, "Deploy")
	require.ErrorIs(t, err, domain.ErrTaskNotFound)
}
