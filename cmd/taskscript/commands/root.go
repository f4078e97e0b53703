// Package commands implements the CLI commands for taskscript.
package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/taskscript/internal/app"
	"go.trai.ch/taskscript/internal/build"
	"go.trai.ch/taskscript/internal/core/domain"
	"go.trai.ch/taskscript/internal/core/ports"
)

// CLI represents the command line interface for taskscript.
type CLI struct {
	app     *app.App
	logger  ports.Logger
	rootCmd *cobra.Command

	configPath string
	verbose    bool
}

// New creates a new CLI instance with the given app.
func New(a *app.App, log ports.Logger) *CLI {
	c := &CLI{
		app:    a,
		logger: log,
	}

	rootCmd := &cobra.Command{
		Use:           "taskscript",
		Short:         "Run the tasks declared by a build script",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if c.verbose {
				c.logger.SetLevel(domain.LogLevelDebug)
			}
		},
	}

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringVarP(&c.configPath, "config", "c", "",
		"Path to the task manifest or its directory (default: search upwards for taskscript.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Enable debug logging")

	c.rootCmd = rootCmd

	rootCmd.AddCommand(c.newRunCmd())
	rootCmd.AddCommand(c.newListCmd())
	rootCmd.AddCommand(c.newPlanCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOut redirects command output. Used for testing.
func (c *CLI) SetOut(w io.Writer) {
	c.rootCmd.SetOut(w)
}
