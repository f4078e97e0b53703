// Package domain contains the task model of a build script: validation of candidate
// methods, task naming, the dependency graph and invocation tracking.
package domain

import (
	"iter"

	"go.trai.ch/zerr"
)

// Graph indexes the tasks of one script by qualified name.
// Edges live on the tasks themselves; the graph is acyclic by construction.
type Graph struct {
	tasks map[string]*Task
	order []string
}

// NewGraph creates a new empty Graph.
func NewGraph() *Graph {
	return &Graph{
		tasks: make(map[string]*Task),
	}
}

// AddTask adds a task to the graph.
// It returns an error if a task with the same qualified name already exists.
func (g *Graph) AddTask(t *Task) error {
	name := t.FullName()
	if _, exists := g.tasks[name]; exists {
		return zerr.With(zerr.Wrap(ErrTaskAlreadyExists, "duplicate task"), "task_name", name)
	}
	g.tasks[name] = t
	g.order = append(g.order, name)
	return nil
}

// Task returns the task with the given qualified name.
func (g *Graph) Task(name string) (*Task, error) {
	t, ok := g.tasks[name]
	if !ok {
		return nil, zerr.With(zerr.Wrap(ErrTaskNotFound, "unknown task"), "task_name", name)
	}
	return t, nil
}

// Link makes the task named dependency a prerequisite of the task named dependent.
func (g *Graph) Link(dependent, dependency string) error {
	from, err := g.Task(dependent)
	if err != nil {
		return err
	}
	to, ok := g.tasks[dependency]
	if !ok {
		err := zerr.With(zerr.Wrap(ErrMissingDependency, "dependency is not a task"), "dependency", dependency)
		return zerr.With(err, "task_name", dependent)
	}
	return from.AddDependency(to)
}

// TaskCount returns the number of tasks in the graph.
func (g *Graph) TaskCount() int {
	return len(g.tasks)
}

// Tasks returns an iterator over all tasks in the order they were added.
func (g *Graph) Tasks() iter.Seq[*Task] {
	return func(yield func(*Task) bool) {
		for _, name := range g.order {
			if !yield(g.tasks[name]) {
				return
			}
		}
	}
}

// Plan returns the tasks that running target executes, prerequisites first.
// Prerequisites are visited depth-first in dependency-list order and appear once.
func (g *Graph) Plan(target string) ([]*Task, error) {
	root, err := g.Task(target)
	if err != nil {
		return nil, err
	}

	var order []*Task
	visited := make(map[*Task]bool)

	var visit func(t *Task)
	visit = func(t *Task) {
		visited[t] = true
		for _, dep := range t.dependencies {
			if !visited[dep] {
				visit(dep)
			}
		}
		order = append(order, t)
	}
	visit(root)

	return order, nil
}
