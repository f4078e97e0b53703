// Package shell binds tasks to shell commands.
package shell

import (
	"context"
	"fmt"
	"os"

	"go.trai.ch/taskscript/internal/core/domain"
	"go.trai.ch/taskscript/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Module implements domain.Module over a set of prepared commands.
type Module struct {
	commands map[string]*Command
}

// EntryPoint returns the command declared for name on declaringType.
func (m *Module) EntryPoint(declaringType, name string) (domain.Callable, error) {
	c, ok := m.commands[entryKey(declaringType, name)]
	if !ok {
		err := zerr.With(zerr.Wrap(domain.ErrEntryPointNotFound, "no command declared"), "type", declaringType)
		return nil, zerr.With(err, "name", name)
	}
	return c, nil
}

// Len returns the number of entry points in the module.
func (m *Module) Len() int {
	return len(m.commands)
}

func entryKey(declaringType, name string) string {
	return declaringType + "." + name
}

// Loader implements ports.ModuleLoader by preparing one Command per entry point.
type Loader struct {
	logger ports.Logger
}

// NewLoader creates a new Loader.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{
		logger: logger,
	}
}

// Load prepares the commands of every entry point in script concurrently.
// It fails when a working directory does not exist or an entry point is declared twice.
func (l *Loader) Load(ctx context.Context, script *domain.Script) (domain.Module, error) {
	prepared := make([]*Command, len(script.EntryPoints))

	g, ctx := errgroup.WithContext(ctx)
	for i, ep := range script.EntryPoints {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			c, err := l.prepare(ep)
			if err != nil {
				return zerr.With(zerr.With(err, "type", ep.DeclaringType), "name", ep.Name)
			}
			prepared[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	m := &Module{commands: make(map[string]*Command, len(prepared))}
	for i, ep := range script.EntryPoints {
		key := entryKey(ep.DeclaringType, ep.Name)
		if _, exists := m.commands[key]; exists {
			return nil, zerr.With(zerr.New("entry point declared twice"), "entry_point", key)
		}
		m.commands[key] = prepared[i]
	}
	return m, nil
}

func (l *Loader) prepare(ep domain.EntryPoint) (*Command, error) {
	if ep.WorkingDir != "" {
		info, err := os.Stat(ep.WorkingDir)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "working directory is not accessible"), "dir", ep.WorkingDir)
		}
		if !info.IsDir() {
			return nil, zerr.With(zerr.New("working directory is not a directory"), "dir", ep.WorkingDir)
		}
	}

	c := NewCommand(ep, l.logger)
	if c.Executable() == "" && len(ep.Command) > 0 {
		l.logger.Warn(fmt.Sprintf("executable %q for %s.%s not found on PATH", ep.Command[0], ep.DeclaringType, ep.Name))
	}
	return c, nil
}
