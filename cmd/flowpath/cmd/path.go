package cmd

import (
	"github.com/spf13/cobra"

	"github.com/vanshika/flowpath/internal/service"
)

func newPathCmd(c *cli) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "path",
		Short: "Find the shortest path between two nodes",
		Long: `Find the minimum-weight directed path between two nodes of a flow.

An unreachable pair is reported as "No path found" and is not an error.

Examples:
  flowpath path --flow flow.json --from 1 --to 3
  flowpath path -f flow.yaml --from n0 --to n9 -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			elements, err := c.loadElements()
			if err != nil {
				return err
			}

			outcome, err := c.service.ShortestPath(cmd.Context(), service.ShortestPathRequest{
				Elements: elements,
				StartID:  from,
				EndID:    to,
			})
			if err != nil {
				return err
			}
			return renderPath(cmd.OutOrStdout(), c.output, outcome)
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "start node id")
	cmd.Flags().StringVar(&to, "to", "", "end node id")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
