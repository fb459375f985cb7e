package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func (c *CLI) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Summarize every project in the workspace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.loadWorkspace(cmd); err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PROJECT\tKIND\tREFS\tDEPS\tTARGET\tSTATE")
			for _, s := range c.app.Status() {
				kind := "app"
				if s.Library {
					kind = "library"
				}
				state := "ok"
				if s.Missing {
					state = "missing refs"
				}
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\t%s\n",
					s.Name, kind, s.Refs, s.Deps, s.Target, state)
			}
			return w.Flush()
		},
	}
}
