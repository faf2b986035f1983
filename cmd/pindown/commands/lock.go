package commands

import (
	"github.com/spf13/cobra"
	"go.pindown.dev/pindown/internal/app"
)

func (c *CLI) newLockCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lock",
		Short: "Resolve the manifest and write the lockfile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			emit, _ := cmd.Flags().GetString("emit")

			return c.app.Lock(cmd.Context(), app.LockOptions{
				ResolveOptions: resolverOptions(cmd),
				Emit:           emit,
			})
		},
	}
	addResolverFlags(cmd)
	cmd.Flags().String("emit", "", "Also write a fully pinned requirements file to this path")
	return cmd
}
