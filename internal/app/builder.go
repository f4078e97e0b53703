package app

import (
	"context"
	"fmt"

	"go.trai.ch/taskscript/internal/core/domain"
	"go.trai.ch/zerr"
)

// load reads the script at configPath and builds its task graph: every candidate is
// validated into a task, every declared edge is linked and, when bind is set, every task
// is bound to its entry point.
func (a *App) load(ctx context.Context, configPath string, bind bool) (*domain.Script, *domain.Graph, error) {
	script, err := a.configLoader.Load(configPath)
	if err != nil {
		return nil, nil, zerr.Wrap(err, "failed to load configuration")
	}

	graph, err := buildGraph(script)
	if err != nil {
		return nil, nil, err
	}
	a.logger.Debug(fmt.Sprintf("loaded %d tasks from script %s", graph.TaskCount(), script.Digest))

	if !bind {
		return script, graph, nil
	}

	module, err := a.moduleLoader.Load(ctx, script)
	if err != nil {
		return nil, nil, zerr.Wrap(err, "failed to load entry points")
	}
	for task := range graph.Tasks() {
		if err := task.Bind(module); err != nil {
			return nil, nil, zerr.With(err, "task", task.FullName())
		}
	}

	return script, graph, nil
}

func buildGraph(script *domain.Script) (*domain.Graph, error) {
	validator := domain.NewValidator(script.Root)
	graph := domain.NewGraph()

	for _, c := range script.Candidates {
		task, err := validator.NewTask(c)
		if err != nil {
			return nil, err
		}
		if err := graph.AddTask(task); err != nil {
			return nil, err
		}
	}

	for _, e := range script.Edges {
		if err := graph.Link(e.Dependent, e.Dependency); err != nil {
			return nil, err
		}
	}

	return graph, nil
}
