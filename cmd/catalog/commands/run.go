package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Enrich products, write the side outputs and patch the page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			refresh, _ := cmd.Flags().GetStringArray("refresh")
			return c.runner.Run(cmd.Context(), c.configPath, refresh)
		},
	}
	cmd.Flags().StringArrayP("refresh", "r", nil, "ASIN to fetch again even when cached (repeatable)")
	return cmd
}
