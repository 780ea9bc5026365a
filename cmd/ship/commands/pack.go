package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newPackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pack [stages...]",
		Short: "Run the packaging stages",
		Long: "Run the packaging stages in dependency order. Without " +
			"arguments every stage runs; naming stages runs them and their " +
			"dependencies. Unchanged stages are skipped.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			force, err := cmd.Flags().GetBool("force")
			if err != nil {
				return err
			}
			return c.app.Pack(cmd.Context(), args, force)
		},
	}
	cmd.Flags().Bool("force", false, "Ignore recorded input hashes and rebuild everything")
	return cmd
}
