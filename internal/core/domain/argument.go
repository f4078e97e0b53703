package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// TaskArgument is a resolved value supplied for one invocation.
// An argument with an empty Name is positional.
type TaskArgument struct {
	Name  string
	Value Value
}

// Positional returns a positional argument.
func Positional(v Value) TaskArgument {
	return TaskArgument{Value: v}
}

// Named returns an argument bound to the parameter called name.
func Named(name string, v Value) TaskArgument {
	return TaskArgument{Name: name, Value: v}
}

// IsPositional reports whether the argument is bound by position.
func (a TaskArgument) IsPositional() bool {
	return a.Name == ""
}

// Equal reports whether a and o bind the same way and carry equal values.
func (a TaskArgument) Equal(o TaskArgument) bool {
	return a.Name == o.Name && a.Value.Equal(o.Value)
}

// String renders the argument as it is written on the command line.
func (a TaskArgument) String() string {
	if a.IsPositional() {
		return a.Value.String()
	}
	return a.Name + "=" + a.Value.String()
}

// RawArgument is an unparsed argument as received from the command line.
type RawArgument struct {
	Name  string
	Value string
}

// ParseRawArgument splits "name=value" into a named argument; anything else is positional.
func ParseRawArgument(s string) RawArgument {
	name, value, ok := strings.Cut(s, "=")
	if !ok || !isIdentifier(name) {
		return RawArgument{Value: s}
	}
	return RawArgument{Name: name, Value: value}
}

// ResolveArguments converts raw arguments into typed task arguments for the given parameters.
// Positional arguments bind in declaration order; named arguments bind by parameter name.
// The result keeps the order and binding style of raw.
func ResolveArguments(params []Parameter, raw []RawArgument) ([]TaskArgument, error) {
	bound := make([]bool, len(params))
	args := make([]TaskArgument, 0, len(raw))
	next := 0

	for _, r := range raw {
		idx := next
		if r.Name != "" {
			idx = parameterIndex(params, r.Name)
			if idx < 0 {
				return nil, zerr.With(zerr.Wrap(ErrUnknownParameter, "no parameter with this name"), "parameter", r.Name)
			}
		} else {
			if idx >= len(params) {
				return nil, zerr.With(zerr.Wrap(ErrTooManyArguments, "positional argument has no parameter"), "value", r.Value)
			}
			next++
		}

		p := params[idx]
		if bound[idx] {
			return nil, zerr.With(zerr.Wrap(ErrDuplicateArgument, "parameter bound twice"), "parameter", p.Name)
		}
		bound[idx] = true

		v, err := ParseValue(p.Type, r.Value)
		if err != nil {
			return nil, zerr.With(err, "parameter", p.Name)
		}
		args = append(args, TaskArgument{Name: r.Name, Value: v})
	}

	for i, p := range params {
		if !bound[i] && !p.HasDefault {
			return nil, zerr.With(zerr.Wrap(ErrMissingArgument, "parameter has no default value"), "parameter", p.Name)
		}
	}

	return args, nil
}

func parameterIndex(params []Parameter, name string) int {
	for i, p := range params {
		if p.Name == name {
			return i
		}
	}
	return -1
}
