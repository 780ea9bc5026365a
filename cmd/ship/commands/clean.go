package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/ship/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove recorded build state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			caches, err := cmd.Flags().GetBool("caches")
			if err != nil {
				return err
			}
			return c.app.Clean(cmd.Context(), app.CleanOptions{Caches: caches})
		},
	}
	cmd.Flags().BoolP("caches", "a", false, "Also delete compiled cache directories")
	return cmd
}
