package commands

import (
	"github.com/spf13/cobra"
	"go.pindown.dev/pindown/internal/app"
)

func (c *CLI) newWhyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "why <package>...",
		Short: "Show the justification recorded for a dependency",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Why(cmd.Context(), app.WhyOptions{
				Options:  baseOptions(cmd),
				Packages: args,
			})
		},
	}
}
