package commands

import (
	"github.com/spf13/cobra"
	"go.pindown.dev/pindown/internal/app"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch [-- command...]",
		Short: "Re-lint the manifest on every change, optionally running a command after clean passes",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Watch(cmd.Context(), app.WatchOptions{
				Options: baseOptions(cmd),
				Run:     args,
			})
		},
	}
}
