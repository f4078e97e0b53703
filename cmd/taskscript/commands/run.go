package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/taskscript/internal/app"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run TARGET [ARG...]",
		Short: "Run a task after its prerequisites",
		Long: `Run a task after its prerequisites.

Arguments of the form name=value bind to the parameter called name,
any other argument binds to the next parameter in declaration order.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				// Display command usage help without returning an error
				_ = cmd.Help()
				return nil
			}
			useTUI, _ := cmd.Flags().GetBool("tui")
			inspect, _ := cmd.Flags().GetBool("inspect")
			return c.app.Run(cmd.Context(), c.configPath, args[0], args[1:], app.RunOptions{
				TUI:     useTUI || inspect,
				Inspect: inspect,
			})
		},
	}
	// Everything after the target belongs to the task.
	cmd.Flags().SetInterspersed(false)
	cmd.Flags().BoolP("tui", "t", false, "Show progress in an interactive terminal view")
	cmd.Flags().BoolP("inspect", "i", false, "Keep the terminal view open after the run completes")
	return cmd
}
