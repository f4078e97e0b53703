// Package scheduler drives the invocation of a task and its prerequisites.
package scheduler

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.trai.ch/taskscript/internal/core/domain"
	"go.trai.ch/taskscript/internal/core/ports"
	"go.trai.ch/zerr"
)

// RootSpanName is the name of the span that encloses a whole run.
const RootSpanName = "run"

// Scheduler executes a target task after its prerequisites, one invocation at a time.
type Scheduler struct {
	tracer ports.Tracer
	logger ports.Logger

	mu         sync.RWMutex
	taskStatus map[string]domain.InvocationStatus
}

// NewScheduler creates a new Scheduler.
func NewScheduler(tracer ports.Tracer, logger ports.Logger) *Scheduler {
	return &Scheduler{
		tracer:     tracer,
		logger:     logger,
		taskStatus: make(map[string]domain.InvocationStatus),
	}
}

// WithTracer returns a scheduler that shares s's logger but reports to tracer.
func (s *Scheduler) WithTracer(tracer ports.Tracer) *Scheduler {
	return NewScheduler(tracer, s.logger)
}

func (s *Scheduler) updateStatus(name string, status domain.InvocationStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.taskStatus[name] = status
}

func (s *Scheduler) resetStatus() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.taskStatus)
}

// skip records that an invocation was not repeated. A task that already ran in this
// run keeps its status.
func (s *Scheduler) skip(task *domain.Task, args []domain.TaskArgument) {
	s.logger.Debug(fmt.Sprintf("skipping %s: already invoked with the same arguments", describe(task, args)))

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.taskStatus[task.FullName()]; !ok {
		s.taskStatus[task.FullName()] = domain.InvocationSkipped
	}
}

// Run invokes target with args after invoking each of its prerequisites.
//
// Prerequisites are visited depth-first in the order they were declared and are called
// without arguments. An invocation equal to one that already ran is skipped.
// The first failure stops the run and is returned wrapping ErrTaskExecutionFailed.
func (s *Scheduler) Run(ctx context.Context, graph *domain.Graph, target string, args []domain.RawArgument) error {
	if target == "" {
		return domain.ErrNoTargetsSpecified
	}

	task, err := graph.Task(target)
	if err != nil {
		return err
	}

	resolved, err := domain.ResolveArguments(task.Parameters(), args)
	if err != nil {
		return zerr.With(err, "task", task.FullName())
	}

	plan, err := graph.Plan(target)
	if err != nil {
		return err
	}
	names := make([]string, len(plan))
	for i, t := range plan {
		names[i] = t.FullName()
	}

	s.resetStatus()
	ctx, span := s.tracer.Start(ctx, RootSpanName, ports.WithAttribute("target", task.FullName()))
	defer span.End()
	s.tracer.EmitPlan(ctx, names)

	if err := s.invoke(ctx, task, resolved); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

// invoke runs task after its prerequisites. A prerequisite that already ran has had its
// own prerequisites run too, so its subtree is not walked again.
func (s *Scheduler) invoke(ctx context.Context, task *domain.Task, args []domain.TaskArgument) error {
	for _, dep := range task.Dependencies() {
		depArgs, err := domain.ResolveArguments(dep.Parameters(), nil)
		if err != nil {
			err = zerr.With(err, "task", dep.FullName())
			return zerr.With(err, "required_by", task.FullName())
		}
		if dep.Invoked(depArgs) {
			s.skip(dep, depArgs)
			continue
		}
		if err := s.invoke(ctx, dep, depArgs); err != nil {
			return err
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	name := task.FullName()
	if task.Invoked(args) {
		s.skip(task, args)
		return nil
	}

	ctx, span := s.tracer.Start(ctx, name,
		ports.WithAttribute("task.signature", task.DisplayName()),
		ports.WithAttribute("task.arguments", formatArgs(args)),
	)
	defer span.End()

	s.logger.Debug("invoking " + describe(task, args))
	if err := task.Invoke(ports.ContextWithSpan(ctx, span), args); err != nil {
		span.RecordError(err)
		s.updateStatus(name, domain.InvocationFailed)
		return zerr.With(fmt.Errorf("%w: %w", domain.ErrTaskExecutionFailed, err), "task", name)
	}

	span.SetAttribute("task.status", string(domain.InvocationCompleted))
	s.updateStatus(name, domain.InvocationCompleted)
	return nil
}

func formatArgs(args []domain.TaskArgument) []string {
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = a.String()
	}
	return out
}

func describe(task *domain.Task, args []domain.TaskArgument) string {
	return task.FullName() + "(" + strings.Join(formatArgs(args), ", ") + ")"
}
