package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <project> <old-path> <new-path>",
		Short: "Rewrite a project's reference to a library that moved",
		Long: `Rewrite the declared path of a library reference after the library
directory moved. The declaration is updated in the project's property
file and rebound to the project at the new location.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadWorkspace(cmd); err != nil {
				return err
			}
			if err := c.app.Move(cmd.Context(), args[0], args[1], args[2]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "moved reference of %s: %s -> %s\n",
				args[0], args[1], args[2])
			return nil
		},
	}
}
