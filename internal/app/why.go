package app

import (
	"context"
	"errors"
	"fmt"

	"go.pindown.dev/pindown/internal/core/domain"
	"go.trai.ch/zerr"
)

// WhyOptions configuration for the Why method.
type WhyOptions struct {
	Options

	// Packages are the names to explain, as given on the command line.
	Packages []string
}

// whyEntry is the machine-readable justification of one package.
type whyEntry struct {
	Package       string   `json:"package"`
	Declaration   string   `json:"declaration"`
	Path          string   `json:"path"`
	Line          int      `json:"line"`
	Justification []string `json:"justification"`
}

// Why prints the justification recorded for each package: the comment
// block above its declaration plus the inline comment.
func (a *App) Why(_ context.Context, opts WhyOptions) error {
	s, err := a.settingsFor(opts.Options)
	if err != nil {
		return err
	}

	m, err := a.manifests.Load(s.ManifestPath)
	if err != nil {
		return err
	}

	var errs error
	entries := make([]whyEntry, 0, len(opts.Packages))

	for _, raw := range opts.Packages {
		name := domain.NewPackageName(raw)
		req, ok := m.Requirement(name)
		if !ok {
			failure := zerr.With(domain.ErrPackageNotFound, "package", name.String())
			errs = errors.Join(errs, zerr.With(failure, "path", s.ManifestPath))
			continue
		}

		just := m.Justification(name)
		if just == nil {
			just = []string{}
		}
		entries = append(entries, whyEntry{
			Package:       name.String(),
			Declaration:   req.String(),
			Path:          m.Path,
			Line:          req.Line,
			Justification: just,
		})
	}

	if opts.JSON {
		if err := a.printJSON(entries); err != nil {
			return err
		}
		return errs
	}

	for i, e := range entries {
		if i > 0 {
			fmt.Fprintln(a.stdout)
		}
		fmt.Fprintf(a.stdout, "%s (%s:%d)\n", e.Declaration, e.Path, e.Line)
		if len(e.Justification) == 0 {
			fmt.Fprintln(a.stdout, "  (no justification recorded)")
			continue
		}
		for _, text := range e.Justification {
			fmt.Fprintf(a.stdout, "  # %s\n", text)
		}
	}
	return errs
}
