package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func (c *CLI) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the tasks declared by the script",
		Long:  "List the tasks declared by the script. Tasks marked with * need arguments to run.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			infos, err := c.app.List(cmd.Context(), c.configPath)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, info := range infos {
				marker := " "
				if info.RequiresArguments {
					marker = "*"
				}
				_, _ = fmt.Fprintf(w, "%s %s\t%s\t%s\n", marker, info.Name, info.Signature, info.Summary)
			}
			return w.Flush()
		},
	}
}
