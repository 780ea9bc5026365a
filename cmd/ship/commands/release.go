package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newReleaseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "release [credential-file] [password]",
		Short: "Run the release pipeline",
		Long: "Run the release pipeline: toolchain check, lint, build, test, " +
			"optional signing and publish. Signing needs both the credential " +
			"file name and the password; anything less skips it.",
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var credentialFile, password string
			if len(args) > 0 {
				credentialFile = args[0]
			}
			if len(args) > 1 {
				password = args[1]
			}
			return c.app.Release(cmd.Context(), credentialFile, password)
		},
	}
}
