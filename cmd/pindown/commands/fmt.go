package commands

import (
	"github.com/spf13/cobra"
	"go.pindown.dev/pindown/internal/app"
)

func (c *CLI) newFmtCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fmt",
		Short: "Print the manifest in canonical form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			write, _ := cmd.Flags().GetBool("write")
			check, _ := cmd.Flags().GetBool("check")

			return c.app.Fmt(cmd.Context(), app.FmtOptions{
				Options: baseOptions(cmd),
				Write:   write,
				Check:   check,
			})
		},
	}
	cmd.Flags().BoolP("write", "w", false, "Rewrite the manifest in place instead of printing")
	cmd.Flags().Bool("check", false, "Exit non-zero if the manifest is not canonical")
	return cmd
}
