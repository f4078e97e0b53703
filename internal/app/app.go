// Package app implements the application layer for taskscript.
package app

import (
	"context"
	"errors"
	"io"
	"os"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/taskscript/internal/adapters/telemetry"
	"go.trai.ch/taskscript/internal/adapters/tui"
	"go.trai.ch/taskscript/internal/core/domain"
	"go.trai.ch/taskscript/internal/core/ports"
	"go.trai.ch/taskscript/internal/engine/scheduler"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	moduleLoader ports.ModuleLoader
	scheduler    *scheduler.Scheduler
	logger       ports.Logger
	teaOptions   []tea.ProgramOption
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	moduleLoader ports.ModuleLoader,
	sched *scheduler.Scheduler,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		moduleLoader: moduleLoader,
		scheduler:    sched,
		logger:       log,
	}
}

// WithTeaOptions adds bubbletea program options to the App.
// This is primarily used for testing to disable input/output.
func (a *App) WithTeaOptions(opts ...tea.ProgramOption) *App {
	a.teaOptions = append(a.teaOptions, opts...)
	return a
}

// RunOptions configuration for the Run method.
type RunOptions struct {
	// TUI renders progress in an interactive terminal view instead of log lines.
	TUI bool
	// Inspect keeps the TUI open after the run completes.
	Inspect bool
}

// TaskInfo describes one task for listing.
type TaskInfo struct {
	Name              string
	Signature         string
	Summary           string
	RequiresArguments bool
}

// Run loads the script at configPath and invokes target with rawArgs after its prerequisites.
// Arguments of the form name=value are passed by name, anything else positionally.
func (a *App) Run(ctx context.Context, configPath, target string, rawArgs []string, opts RunOptions) error {
	if target == "" {
		return domain.ErrNoTargetsSpecified
	}

	_, graph, err := a.load(ctx, configPath, true)
	if err != nil {
		return err
	}

	args := make([]domain.RawArgument, len(rawArgs))
	for i, s := range rawArgs {
		args[i] = domain.ParseRawArgument(s)
	}

	if opts.TUI {
		return a.runWithTUI(ctx, graph, target, args, opts.Inspect)
	}
	return a.scheduler.Run(ctx, graph, target, args)
}

// runWithTUI drives the run from a second goroutine while a Bubble Tea program renders it.
// Quitting the program cancels the run.
func (a *App) runWithTUI(
	ctx context.Context,
	graph *domain.Graph,
	target string,
	args []domain.RawArgument,
	inspect bool,
) error {
	plan, err := graph.Plan(target)
	if err != nil {
		return err
	}
	names := make([]string, len(plan))
	for i, t := range plan {
		names[i] = t.FullName()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	optsTea := append([]tea.ProgramOption{tea.WithContext(ctx)}, a.teaOptions...)
	program := tea.NewProgram(tui.NewModel(inspect), optsTea...)

	bridge := telemetry.NewTUIBridge(program)
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(bridge))
	defer func() {
		_ = tp.Shutdown(context.Background())
	}()
	tracer := telemetry.NewOTelTracerFromProvider(tp, telemetry.InstrumentationName, telemetry.WithLogSink(bridge.Log))
	sched := a.scheduler.WithTracer(tracer)

	// Log lines would corrupt the alternate screen; task output reaches the view through the bridge.
	a.logger.SetOutput(io.Discard)
	defer a.logger.SetOutput(os.Stderr)

	var runErr error
	var g errgroup.Group

	g.Go(func() error {
		defer cancel()
		if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return zerr.Wrap(err, "terminal interface failed")
		}
		return nil
	})

	g.Go(func() error {
		program.Send(telemetry.MsgInitTasks{Tasks: names})
		runErr = sched.Run(ctx, graph, target, args)
		program.Send(telemetry.MsgRunFinished{Err: runErr})
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	return runErr
}

// List loads the script at configPath and describes its tasks ordered by qualified name.
func (a *App) List(ctx context.Context, configPath string) ([]TaskInfo, error) {
	_, graph, err := a.load(ctx, configPath, false)
	if err != nil {
		return nil, err
	}

	infos := make([]TaskInfo, 0, graph.TaskCount())
	for task := range graph.Tasks() {
		infos = append(infos, TaskInfo{
			Name:              task.FullName(),
			Signature:         task.DisplayName(),
			Summary:           task.Summary(),
			RequiresArguments: task.HasRequiredParameters(),
		})
	}
	slices.SortFunc(infos, func(x, y TaskInfo) int {
		return strings.Compare(x.Name, y.Name)
	})
	return infos, nil
}

// Plan loads the script at configPath and returns the qualified names of the tasks
// running target would execute, prerequisites first.
func (a *App) Plan(ctx context.Context, configPath, target string) ([]string, error) {
	if target == "" {
		return nil, domain.ErrNoTargetsSpecified
	}

	_, graph, err := a.load(ctx, configPath, false)
	if err != nil {
		return nil, err
	}

	plan, err := graph.Plan(target)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(plan))
	for i, t := range plan {
		names[i] = t.FullName()
	}
	return names, nil
}
