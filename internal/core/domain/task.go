package domain

import (
	"context"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// Task represents a validated, named unit of buildable work in a script.
// A Task is not safe for concurrent use: the graph is wired and bound by one driver
// before any invocation, and invocations run sequentially.
type Task struct {
	signature  string
	root       string
	summary    string
	parameters []Parameter

	dependencies []*Task
	invocations  invocationSet
	callable     Callable
}

// NewTask validates c against the default root container and returns the resulting task.
func NewTask(c Candidate) (*Task, error) {
	return NewValidator(DefaultRootContainer).NewTask(c)
}

// NewTask validates c and returns the resulting task.
func (v *Validator) NewTask(c Candidate) (*Task, error) {
	summary, err := v.Validate(c)
	if err != nil {
		return nil, err
	}
	return &Task{
		signature:   c.Signature,
		root:        v.RootContainer,
		summary:     summary,
		parameters:  slices.Clone(c.Parameters),
		invocations: make(invocationSet),
	}, nil
}

// FullName returns the qualified name, e.g. "Group.Sub.Build".
func (t *Task) FullName() string {
	return FullNameOf(t.signature)
}

// Name returns the last segment of the qualified name.
func (t *Task) Name() string {
	return ShortNameOf(t.FullName())
}

// DisplayName returns the full display signature including the parameter list.
func (t *Task) DisplayName() string {
	return t.signature
}

// DeclaringType returns the compiled type path that declares the task's entry point.
func (t *Task) DeclaringType() string {
	return DeclaringTypeOf(t.root, t.FullName())
}

// Summary returns the documentation summary, or "" when the task is undocumented.
func (t *Task) Summary() string {
	return t.summary
}

// IsGlobal reports whether the task is declared directly under the root container.
func (t *Task) IsGlobal() bool {
	return IsGlobalName(t.FullName())
}

// HasRequiredParameters reports whether any parameter lacks a default value.
func (t *Task) HasRequiredParameters() bool {
	return slices.ContainsFunc(t.parameters, func(p Parameter) bool { return !p.HasDefault })
}

// Parameters returns the declared parameters in declaration order.
func (t *Task) Parameters() []Parameter {
	return slices.Clone(t.parameters)
}

// Dependencies returns the task's immediate prerequisites in the order they were added.
func (t *Task) Dependencies() []*Task {
	return slices.Clone(t.dependencies)
}

// String returns the qualified name.
func (t *Task) String() string {
	return t.FullName()
}

// AddDependency makes dependency an immediate prerequisite of t.
// It fails without modifying the graph when the edge would make t depend on itself.
func (t *Task) AddDependency(dependency *Task) error {
	if dependency == t {
		return zerr.With(zerr.Wrap(ErrRecursiveDependency, "a task cannot depend on itself"), "task", t.FullName())
	}

	if path := dependency.pathTo(t, make(map[*Task]bool)); path != nil {
		path = append(path, t.FullName())
		err := zerr.With(zerr.Wrap(ErrCyclicDependency, "dependency would close a cycle"), "cycle", strings.Join(path, " -> "))
		return zerr.With(err, "path", path)
	}

	t.dependencies = append(t.dependencies, dependency)
	return nil
}

// pathTo searches t's dependencies depth-first for target. When found, it returns the
// qualified names from target back up to t, each entry being a prerequisite of the next.
func (t *Task) pathTo(target *Task, visited map[*Task]bool) []string {
	for _, dep := range t.dependencies {
		if dep == target {
			return []string{target.FullName(), t.FullName()}
		}
		if visited[dep] {
			continue
		}
		visited[dep] = true
		if path := dep.pathTo(target, visited); path != nil {
			return append(path, t.FullName())
		}
	}
	return nil
}

// Bind resolves the task's entry point in m by declaring type and name.
// Binding errors from m are returned unchanged. A task can be bound only once.
func (t *Task) Bind(m Module) error {
	if t.callable != nil {
		return zerr.With(zerr.Wrap(ErrTaskAlreadyBound, "entry point already resolved"), "task", t.FullName())
	}

	c, err := m.EntryPoint(t.DeclaringType(), t.Name())
	if err != nil {
		return err
	}
	t.callable = c
	return nil
}

// IsBound reports whether the task has been bound to an entry point.
func (t *Task) IsBound() bool {
	return t.callable != nil
}

// Invoke calls the bound entry point with args unless an equal invocation already ran,
// in which case it does nothing. Errors from the entry point are returned unchanged.
func (t *Task) Invoke(ctx context.Context, args []TaskArgument) error {
	if t.callable == nil {
		return zerr.With(zerr.Wrap(ErrTaskNotBound, "task must be bound before it is invoked"), "task", t.FullName())
	}

	if !t.invocations.add(NewTaskInvocation(t, args)) {
		return nil
	}
	return t.callable.Call(ctx, args)
}

// Invoked reports whether t has already been invoked with arguments equal to args.
func (t *Task) Invoked(args []TaskArgument) bool {
	return t.invocations.contains(NewTaskInvocation(t, args))
}
