package commands

import (
	"github.com/spf13/cobra"
	"go.pindown.dev/pindown/internal/app"
)

func (c *CLI) newLintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lint",
		Short: "Check the manifest for malformed lines and conflicting constraints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Lint(cmd.Context(), app.LintOptions{
				Options: baseOptions(cmd),
			})
		},
	}
}
