package app

import (
	"context"
	"fmt"

	"github.com/muesli/termenv"
	"go.pindown.dev/pindown/internal/core/domain"
	"go.pindown.dev/pindown/internal/ui/output"
	"go.trai.ch/zerr"
)

// DiffOptions configuration for the Diff method.
type DiffOptions struct {
	Options

	// Before and After are the two manifests to compare.
	Before string
	After  string

	// ExitCode makes differences exit non-zero, the git convention.
	ExitCode bool
}

// Diff compares the dependency view of two manifests. Comment moves,
// blank lines, and reordering are not differences.
func (a *App) Diff(_ context.Context, opts DiffOptions) error {
	before, err := a.manifests.Load(opts.Before)
	if err != nil {
		return err
	}
	after, err := a.manifests.Load(opts.After)
	if err != nil {
		return err
	}

	entries := domain.DiffManifests(before, after)

	if opts.JSON {
		if entries == nil {
			entries = []domain.DiffEntry{}
		}
		if err := a.printJSON(entries); err != nil {
			return err
		}
	} else {
		a.printDiff(entries)
	}

	if opts.ExitCode && len(entries) > 0 {
		return zerr.With(domain.ErrManifestsDiffer, "changes", len(entries))
	}
	return nil
}

// printDiff renders diff entries in the conventional +/-/~ form.
func (a *App) printDiff(entries []domain.DiffEntry) {
	out := output.NewWithProfile(a.stdout, output.ColorProfileANSI)

	for _, e := range entries {
		switch e.Kind {
		case domain.ChangeAdded:
			line := out.String("+ " + e.After).Foreground(termenv.ANSIGreen)
			fmt.Fprintln(a.stdout, line)
		case domain.ChangeRemoved:
			line := out.String("- " + e.Before).Foreground(termenv.ANSIRed)
			fmt.Fprintln(a.stdout, line)
		case domain.ChangeModified:
			line := out.String(fmt.Sprintf("~ %s -> %s", e.Before, e.After)).Foreground(termenv.ANSIYellow)
			fmt.Fprintln(a.stdout, line)
		}
	}
}
