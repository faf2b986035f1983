package app

import (
	"context"
	"fmt"

	"go.pindown.dev/pindown/internal/core/domain"
	"go.pindown.dev/pindown/internal/engine/lint"
	"go.trai.ch/zerr"
)

// LintOptions configuration for the Lint method.
type LintOptions struct {
	Options
}

// Lint checks the manifest statically and prints every finding. The
// returned error is non-nil when any finding has error severity, so
// warnings alone keep the exit code at zero.
func (a *App) Lint(_ context.Context, opts LintOptions) error {
	s, err := a.settingsFor(opts.Options)
	if err != nil {
		return err
	}

	m, issues, err := a.manifests.LoadLenient(s.ManifestPath)
	if err != nil {
		return err
	}

	report := lint.Check(m, issues)

	if opts.JSON {
		if err := a.printJSON(report); err != nil {
			return err
		}
	} else {
		for _, f := range report.Findings {
			fmt.Fprintln(a.stdout, f.String())
		}
	}

	errs, warnings := report.Counts()
	if report.HasErrors() {
		failure := zerr.With(domain.ErrLintFailed, "path", s.ManifestPath)
		return zerr.With(failure, "errors", errs)
	}

	if !opts.JSON {
		if warnings > 0 {
			fmt.Fprintf(a.stdout, "%s: ok (%d warnings)\n", s.ManifestPath, warnings)
		} else {
			fmt.Fprintf(a.stdout, "%s: ok\n", s.ManifestPath)
		}
	}
	return nil
}

// loadLinted loads the manifest leniently and refuses to hand it on
// when lint finds errors. Findings go to stderr since the caller owns
// stdout for its own output.
func (a *App) loadLinted(path string) (*domain.Manifest, error) {
	m, issues, err := a.manifests.LoadLenient(path)
	if err != nil {
		return nil, err
	}

	report := lint.Check(m, issues)
	if report.HasErrors() {
		for _, f := range report.Findings {
			fmt.Fprintln(a.stderr, f.String())
		}
		errs, _ := report.Counts()
		failure := zerr.With(domain.ErrLintFailed, "path", path)
		return nil, zerr.With(failure, "errors", errs)
	}
	return m, nil
}
