package domain

import "go.trai.ch/zerr"

var (
	// ErrSignatureViolation is returned when a candidate is not a public, static, void-returning,
	// non-generic method whose parameters are all passed by value and of a supported type.
	ErrSignatureViolation = zerr.New("invalid task signature")

	// ErrPlacementViolation is returned when a candidate is nested in a container that is not
	// public and static, or is not declared beneath the root container at all.
	ErrPlacementViolation = zerr.New("invalid task placement")

	// ErrInvalidDocumentation is returned when the documentation attached to a candidate is not well-formed.
	ErrInvalidDocumentation = zerr.New("invalid task documentation")

	// ErrRecursiveDependency is returned when a task is declared to depend on itself.
	ErrRecursiveDependency = zerr.New("task depends on itself")

	// ErrCyclicDependency is returned when adding a dependency would close a cycle.
	ErrCyclicDependency = zerr.New("cyclic dependency")

	// ErrEntryPointNotFound is returned when a task cannot be bound to a compiled entry point.
	ErrEntryPointNotFound = zerr.New("entry point not found")

	// ErrTaskAlreadyBound is returned when a task is bound more than once.
	ErrTaskAlreadyBound = zerr.New("task already bound")

	// ErrTaskNotBound is returned when a task is invoked before it was bound.
	ErrTaskNotBound = zerr.New("task not bound")

	// ErrTaskAlreadyExists is returned when attempting to add a task with a name that already exists.
	ErrTaskAlreadyExists = zerr.New("task already exists")

	// ErrMissingDependency is returned when a task references a dependency that doesn't exist in the graph.
	ErrMissingDependency = zerr.New("missing dependency")

	// ErrTaskNotFound is returned when a requested task is not found in the graph.
	ErrTaskNotFound = zerr.New("task not found")

	// ErrUnknownParameter is returned when a named argument matches no declared parameter.
	ErrUnknownParameter = zerr.New("unknown parameter")

	// ErrDuplicateArgument is returned when a parameter receives more than one argument.
	ErrDuplicateArgument = zerr.New("duplicate argument")

	// ErrTooManyArguments is returned when more positional arguments are supplied than parameters exist.
	ErrTooManyArguments = zerr.New("too many arguments")

	// ErrMissingArgument is returned when a parameter without a default value receives no argument.
	ErrMissingArgument = zerr.New("missing argument")

	// ErrInvalidArgument is returned when an argument value cannot be converted to its parameter type.
	ErrInvalidArgument = zerr.New("invalid argument")

	// ErrNoTargetsSpecified is returned when a run is requested without any target.
	ErrNoTargetsSpecified = zerr.New("no targets specified")

	// ErrTaskExecutionFailed wraps a failure raised by a task's entry point during a run.
	ErrTaskExecutionFailed = zerr.New("task execution failed")
)
