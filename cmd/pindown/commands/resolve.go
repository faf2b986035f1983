package commands

import (
	"github.com/spf13/cobra"
	"go.pindown.dev/pindown/internal/app"
)

func (c *CLI) newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Pin every requirement against the package index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Resolve(cmd.Context(), resolverOptions(cmd))
		},
	}
	addResolverFlags(cmd)
	return cmd
}

// addResolverFlags registers the flags shared by resolve and lock.
func addResolverFlags(cmd *cobra.Command) {
	cmd.Flags().String("index-url", "", "Base URL of the package index")
	cmd.Flags().String("index-file", "", "Resolve against a local index snapshot instead of the network")
	cmd.Flags().String("cache-dir", "", "Directory for the index response cache")
	cmd.Flags().Bool("offline", false, "Answer index queries from the cache only")
	cmd.Flags().Bool("pre", false, "Allow pre-release versions as candidates")
	cmd.Flags().String("strategy", "", "Pick the highest or lowest satisfying version")
	cmd.Flags().StringP("output-mode", "o", "auto", "Output mode: auto, tui, or linear")
	cmd.Flags().Bool("ci", false, "Use linear output mode (shorthand for --output-mode=linear)")
}

// resolverOptions reads the flags addResolverFlags registered.
func resolverOptions(cmd *cobra.Command) app.ResolveOptions {
	indexURL, _ := cmd.Flags().GetString("index-url")
	indexFile, _ := cmd.Flags().GetString("index-file")
	cacheDir, _ := cmd.Flags().GetString("cache-dir")
	offline, _ := cmd.Flags().GetBool("offline")
	pre, _ := cmd.Flags().GetBool("pre")
	strategy, _ := cmd.Flags().GetString("strategy")
	outputMode, _ := cmd.Flags().GetString("output-mode")
	ci, _ := cmd.Flags().GetBool("ci")

	// If --ci is set, override output-mode to "linear"
	if ci {
		outputMode = "linear"
	}

	opts := baseOptions(cmd)
	opts.IndexURL = indexURL
	opts.IndexFile = indexFile
	opts.CacheDir = cacheDir
	opts.Offline = offline
	opts.OutputMode = outputMode

	return app.ResolveOptions{
		Options:     opts,
		Prereleases: pre,
		Strategy:    strategy,
	}
}
