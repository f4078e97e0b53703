package domain

import (
	"bytes"
	"context"
	"slices"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Callable is an executable entry point a task is bound to.
type Callable interface {
	// Call executes the entry point with the given arguments.
	Call(ctx context.Context, args []TaskArgument) error
}

// CallableFunc adapts an ordinary function to the Callable interface.
type CallableFunc func(ctx context.Context, args []TaskArgument) error

// Call calls f(ctx, args).
func (f CallableFunc) Call(ctx context.Context, args []TaskArgument) error {
	return f(ctx, args)
}

// Module is compiled script output that entry points can be resolved from.
type Module interface {
	// EntryPoint returns the public static entry point called name declared by declaringType.
	// It returns an error wrapping ErrEntryPointNotFound when no such entry point exists.
	EntryPoint(declaringType, name string) (Callable, error)
}

// TaskInvocation identifies one execution of a task with a concrete argument list.
// Two invocations are equal when they refer to the same task and their arguments are equal by value.
type TaskInvocation struct {
	task *Task
	args []TaskArgument
}

// NewTaskInvocation returns the invocation identity of t called with args.
func NewTaskInvocation(t *Task, args []TaskArgument) TaskInvocation {
	return TaskInvocation{task: t, args: slices.Clone(args)}
}

// Task returns the invoked task.
func (i TaskInvocation) Task() *Task {
	return i.task
}

// Arguments returns a copy of the invocation's arguments.
func (i TaskInvocation) Arguments() []TaskArgument {
	return slices.Clone(i.args)
}

// Equal reports whether i and o identify the same execution.
func (i TaskInvocation) Equal(o TaskInvocation) bool {
	return i.task == o.task && bytes.Equal(i.canonical(), o.canonical())
}

// Key returns a digest of the invocation identity. Equal invocations have equal keys.
func (i TaskInvocation) Key() uint64 {
	d := xxhash.New()
	if i.task != nil {
		_, _ = d.WriteString(i.task.FullName())
	}
	_, _ = d.Write([]byte{0})
	_, _ = d.Write(i.canonical())
	return d.Sum64()
}

func (i TaskInvocation) canonical() []byte {
	b := strconv.AppendInt(nil, int64(len(i.args)), 10)
	b = append(b, '#')
	for _, a := range i.args {
		b = appendAtom(b, a.Name)
		b = a.Value.appendCanonical(b)
	}
	return b
}

// invocationSet records executed invocations, bucketed by key.
type invocationSet map[uint64][]TaskInvocation

// add records inv and reports whether it was not present before.
func (s invocationSet) add(inv TaskInvocation) bool {
	if s.contains(inv) {
		return false
	}
	k := inv.Key()
	s[k] = append(s[k], inv)
	return true
}

func (s invocationSet) contains(inv TaskInvocation) bool {
	for _, existing := range s[inv.Key()] {
		if existing.Equal(inv) {
			return true
		}
	}
	return false
}
