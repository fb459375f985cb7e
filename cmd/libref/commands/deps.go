package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newDepsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deps <project>",
		Short: "Print a project's flattened library dependencies in packaging order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadWorkspace(cmd); err != nil {
				return err
			}
			deps, err := c.app.Deps(args[0])
			if err != nil {
				return err
			}
			for i, p := range deps {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\n", i+1, p.Name(), p.Location())
			}
			return nil
		},
	}
}
