// Package main is the entry point for the pindown requirements tool.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.pindown.dev/pindown/cmd/pindown/commands"
	"go.pindown.dev/pindown/internal/app"
	"go.pindown.dev/pindown/internal/core/domain"
	_ "go.pindown.dev/pindown/internal/wiring"
)

// ComponentProvider is a function that returns the application components.
type ComponentProvider func(context.Context) (*app.Components, func(), error)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stderr, func(ctx context.Context) (*app.Components, func(), error) {
		c, _, err := graft.ExecuteFor[*app.Components](ctx)
		return c, func() {}, err
	}))
}

func run(
	ctx context.Context,
	args []string,
	stderr io.Writer,
	provider ComponentProvider,
	opts ...func(*app.App),
) int {
	// 0. Context with signal handling
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// 1. Initialize application components
	components, _, err := provider(ctx)
	if err != nil {
		// Logger is not available yet if initialization failed
		// Write directly to stderr passed in
		_, _ = fmt.Fprintln(stderr, "Error: "+err.Error())
		return 1
	}

	// Apply options
	for _, opt := range opts {
		opt(components.App)
	}

	// 2. Interface - CLI
	cli := commands.New(components.App)
	cli.SetArgs(args)
	cli.SetOutput(os.Stdout, stderr)

	// 3. Execution
	if err := cli.Execute(ctx); err != nil {
		if reportedAlready(err) {
			return 1
		}
		components.Logger.Error(err)
		return 1
	}
	return 0
}

// reportedAlready recognizes failures the command has already printed.
// Lint findings, resolution progress, and check-style exits reach the
// user on their own, so logging them again would duplicate the report.
func reportedAlready(err error) bool {
	return errors.Is(err, domain.ErrLintFailed) ||
		errors.Is(err, domain.ErrResolutionFailed) ||
		errors.Is(err, domain.ErrNotCanonical) ||
		errors.Is(err, domain.ErrManifestsDiffer)
}
