package cmd

import (
	"github.com/spf13/cobra"
)

func newNodesCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "nodes",
		Short: "List the nodes selectable as start or end",
		Long: `List every node of a flow the way the editor's pickers show them,
including the placeholder entry.

Examples:
  flowpath nodes --flow flow.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			elements, err := c.loadElements()
			if err != nil {
				return err
			}
			choices, err := c.service.SelectableNodes(elements)
			if err != nil {
				return err
			}
			return renderOptions(cmd.OutOrStdout(), c.output, choices)
		},
	}
}
