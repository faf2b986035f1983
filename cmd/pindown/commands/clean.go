package commands

import (
	"github.com/spf13/cobra"
	"go.pindown.dev/pindown/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove the index cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lock, _ := cmd.Flags().GetBool("lock")
			cacheDir, _ := cmd.Flags().GetString("cache-dir")

			opts := baseOptions(cmd)
			opts.CacheDir = cacheDir

			return c.app.Clean(cmd.Context(), app.CleanOptions{
				Options: opts,
				Lock:    lock,
			})
		},
	}
	cmd.Flags().Bool("lock", false, "Also remove the lockfile")
	cmd.Flags().String("cache-dir", "", "Directory for the index response cache")
	return cmd
}
