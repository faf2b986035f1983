package commands

import (
	"github.com/spf13/cobra"
	"go.pindown.dev/pindown/internal/app"
)

func (c *CLI) newDiffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff <before> <after>",
		Short: "Compare the requirements of two manifests",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			exitCode, _ := cmd.Flags().GetBool("exit-code")

			return c.app.Diff(cmd.Context(), app.DiffOptions{
				Options:  baseOptions(cmd),
				Before:   args[0],
				After:    args[1],
				ExitCode: exitCode,
			})
		},
	}
	cmd.Flags().Bool("exit-code", false, "Exit non-zero when the manifests differ")
	return cmd
}
