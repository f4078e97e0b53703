package shell

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.trai.ch/taskscript/internal/core/domain"
	"go.trai.ch/taskscript/internal/core/ports"
	"go.trai.ch/zerr"
)

// ArgumentEnvPrefix prefixes the environment variable each named argument is exported as.
const ArgumentEnvPrefix = "TASKSCRIPT_ARG_"

// Command is a domain.Callable that runs an external process.
// Positional arguments are appended to the command line and named arguments are exported
// as ArgumentEnvPrefix followed by the upper-cased parameter name.
type Command struct {
	argv       []string
	env        []string
	dir        string
	executable string
	logger     ports.Logger
}

// NewCommand prepares the command of ep. The environment is the process environment
// overridden by the entry point's own variables, and the executable is looked up on the
// resulting PATH.
func NewCommand(ep domain.EntryPoint, logger ports.Logger) *Command {
	c := &Command{
		argv:   ep.Command,
		env:    resolveEnvironment(os.Environ(), ep.Environment),
		dir:    ep.WorkingDir,
		logger: logger,
	}
	if len(c.argv) > 0 {
		c.executable = resolveExecutable(c.argv[0], c.env)
	}
	return c
}

// Executable returns the resolved path of the program, or "" when it could not be found.
func (c *Command) Executable() string {
	return c.executable
}

// Call runs the command with args. An empty command does nothing.
func (c *Command) Call(ctx context.Context, args []domain.TaskArgument) error {
	if len(c.argv) == 0 {
		return nil
	}

	name := c.argv[0]
	cmdArgs := append([]string(nil), c.argv[1:]...)
	env := append([]string(nil), c.env...)
	for _, a := range args {
		if a.IsPositional() {
			cmdArgs = append(cmdArgs, a.Value.String())
			continue
		}
		env = append(env, ArgumentEnvPrefix+strings.ToUpper(a.Name)+"="+a.Value.String())
	}

	executable := c.executable
	if executable == "" {
		executable = name
	}

	cmd := exec.CommandContext(ctx, executable, cmdArgs...) //nolint:gosec // user provided command

	// exec.CommandContext sets Args[0] to the executable path; keep the name as invoked.
	if len(cmd.Args) > 0 {
		cmd.Args[0] = name
	}
	cmd.Dir = c.dir
	cmd.Env = env

	stdout := newLineWriter(c.logger.Info)
	stderr := newLineWriter(c.logger.Warn)
	defer stdout.Flush()
	defer stderr.Flush()

	cmd.Stdout = stdout
	cmd.Stderr = stderr
	if span, ok := ports.SpanFromContext(ctx); ok {
		cmd.Stdout = io.MultiWriter(stdout, span)
		cmd.Stderr = io.MultiWriter(stderr, span)
	}

	if err := cmd.Run(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return zerr.With(zerr.Wrap(err, "command failed"), "exit_code", exitCode)
	}
	return nil
}

// resolveEnvironment merges taskEnv over sysEnv.
func resolveEnvironment(sysEnv []string, taskEnv map[string]string) []string {
	envMap := make(map[string]string, len(sysEnv)+len(taskEnv))
	for _, entry := range sysEnv {
		if k, v, ok := strings.Cut(entry, "="); ok {
			envMap[k] = v
		}
	}
	for k, v := range taskEnv {
		envMap[k] = v
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	return result
}

// resolveExecutable returns name itself when it is a path, or its location on env's PATH.
func resolveExecutable(name string, env []string) string {
	if strings.ContainsRune(name, filepath.Separator) {
		return name
	}
	if lp, err := lookPath(name, env); err == nil {
		return lp
	}
	return ""
}

// lookPath searches for an executable in the directories named by the PATH environment variable.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if strings.HasPrefix(e, "PATH=") {
			path = strings.TrimPrefix(e, "PATH=")
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
